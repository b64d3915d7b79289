package project

// Dependency is a single (name, version) declaration from a subproject
// descriptor. The name may refer to another subproject in the same workspace
// or to an external library; the descriptor does not distinguish the two.
type Dependency struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Descriptor is the parsed build descriptor of one subproject. Descriptors
// are immutable once discovery has constructed them.
type Descriptor struct {
	Name         string       `yaml:"name"`
	Version      string       `yaml:"version"`
	Tags         []string     `yaml:"tags"`
	Dependencies []Dependency `yaml:"dependencies"`

	// Root is the directory containing the descriptor file. It is derived
	// during discovery, never declared in the file itself.
	Root string `yaml:"-"`
}

// HasTag reports whether the descriptor carries the given tag.
func (d *Descriptor) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
