// Package project defines the subproject descriptor model and the Registry
// of all subprojects discovered in a workspace.
//
// Discovery scans the directories named by the workspace configuration for
// descriptor files, parses each one, and registers the result. A descriptor
// that cannot be parsed excludes only that one unit: the rest of the
// workspace still loads, matching the tool's advisory posture towards
// individually broken units.
package project
