package project

import (
	"fmt"
	"sort"
)

// MergeProfile builds a synthetic aggregate descriptor covering the primary
// subproject and the given member set (normally the primary's dependency
// subtree). The aggregate keeps the primary's name, version, and root;
// dependencies are the union across all members with the first declaration
// winning on a name collision, and tags are the deduplicated union.
//
// Members are visited in ascending name order, so the aggregate is the same
// for every run over the same registry.
func MergeProfile(reg *Registry, primary string, members []string) (*Descriptor, error) {
	base, ok := reg.Get(primary)
	if !ok {
		return nil, fmt.Errorf("unknown subproject %q", primary)
	}

	ordered := make([]string, 0, len(members)+1)
	ordered = append(ordered, primary)
	for _, m := range members {
		if m != primary {
			ordered = append(ordered, m)
		}
	}
	sort.Strings(ordered[1:])

	merged := &Descriptor{
		Name:    base.Name,
		Version: base.Version,
		Root:    base.Root,
	}

	seenDeps := make(map[string]struct{})
	seenTags := make(map[string]struct{})
	for _, name := range ordered {
		desc, ok := reg.Get(name)
		if !ok {
			return nil, fmt.Errorf("aggregate member %q is not in the registry", name)
		}
		for _, dep := range desc.Dependencies {
			if _, dup := seenDeps[dep.Name]; dup {
				continue
			}
			seenDeps[dep.Name] = struct{}{}
			merged.Dependencies = append(merged.Dependencies, dep)
		}
		for _, tag := range desc.Tags {
			if _, dup := seenTags[tag]; dup {
				continue
			}
			seenTags[tag] = struct{}{}
			merged.Tags = append(merged.Tags, tag)
		}
	}

	return merged, nil
}
