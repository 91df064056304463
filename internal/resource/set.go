package resource

// Set is the ordered group of resource files one extraction keeps in sync.
type Set struct {
	// Files are the targets of writes, in resolution order.
	Files []*File
	// Lookup, when set, is the only file searched for value reuse.
	Lookup *File
	// ClassName is the generated localization class referenced from source.
	ClassName string
}

// Empty reports whether the set has no target files.
func (s Set) Empty() bool {
	return len(s.Files) == 0
}

// LookupScope returns the file used for value→key search: the configured
// lookup file, else the first target, else nil.
func (s Set) LookupScope() *File {
	if s.Lookup != nil {
		return s.Lookup
	}
	if len(s.Files) > 0 {
		return s.Files[0]
	}
	return nil
}

// Paths returns the target paths in order.
func (s Set) Paths() []string {
	paths := make([]string, len(s.Files))
	for i, f := range s.Files {
		paths[i] = f.Path()
	}
	return paths
}
