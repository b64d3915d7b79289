// Package lint inspects every descriptor's dependency declarations, internal
// and external alike, and reports version disagreements. The report is
// purely advisory: linting never mutates the registry and never aborts a
// run.
package lint

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/vk/subgrid/internal/project"
)

// Entry records one dependency whose declared versions disagree.
type Entry struct {
	// Dependency is the name the conflicting declarations refer to.
	Dependency string
	// Versions are the distinct declared versions, ascending.
	Versions []string
	// DeclaredBy are the subprojects involved in the disagreement,
	// ascending. For an internal dependency this includes the target
	// subproject itself, standing in for its own descriptor version.
	DeclaredBy []string
}

// Report is the result of one lint pass: all dependencies with more than one
// distinct declared version, in ascending dependency order.
type Report struct {
	Entries []Entry
}

// Empty reports whether the lint pass found no conflicts.
func (r *Report) Empty() bool {
	return len(r.Entries) == 0
}

// Check scans the registry and builds a conflict report. It is a pure
// function of the registry: running it twice over the same input yields the
// same report.
func Check(reg *project.Registry) *Report {
	// versions[dep][version] -> set of declaring subprojects.
	versions := make(map[string]map[string]map[string]struct{})
	record := func(dep, version, declarer string) {
		if versions[dep] == nil {
			versions[dep] = make(map[string]map[string]struct{})
		}
		if versions[dep][version] == nil {
			versions[dep][version] = make(map[string]struct{})
		}
		versions[dep][version][declarer] = struct{}{}
	}

	for _, name := range reg.Names() {
		desc, _ := reg.Get(name)
		for _, dep := range desc.Dependencies {
			record(dep.Name, dep.Version, name)
			// An internal dependency is also checked against the target's
			// own descriptor version, declared by the target itself.
			if target, ok := reg.Get(dep.Name); ok {
				record(dep.Name, target.Version, target.Name)
			}
		}
	}

	report := &Report{}
	depNames := make([]string, 0, len(versions))
	for dep := range versions {
		depNames = append(depNames, dep)
	}
	sort.Strings(depNames)

	for _, dep := range depNames {
		byVersion := versions[dep]
		if len(byVersion) < 2 {
			continue
		}
		entry := Entry{Dependency: dep}
		declarers := make(map[string]struct{})
		for version, who := range byVersion {
			entry.Versions = append(entry.Versions, version)
			for declarer := range who {
				declarers[declarer] = struct{}{}
			}
		}
		sort.Strings(entry.Versions)
		for declarer := range declarers {
			entry.DeclaredBy = append(entry.DeclaredBy, declarer)
		}
		sort.Strings(entry.DeclaredBy)
		report.Entries = append(report.Entries, entry)
	}

	return report
}

// Render writes the report as an aligned table of dependency name,
// conflicting versions, and declaring subprojects.
func (r *Report) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEPENDENCY\tVERSIONS\tDECLARED BY")
	for _, entry := range r.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			entry.Dependency,
			strings.Join(entry.Versions, ", "),
			strings.Join(entry.DeclaredBy, ", "))
	}
	return tw.Flush()
}
