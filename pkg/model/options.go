package model

// FlatOption is an option positioned in the flattened selection list.
type FlatOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Depth int    `json:"depth"`
}

// FlattenOptions walks an option tree in pre-order. Every node, parent or
// leaf, is selectable.
func FlattenOptions(options []Option) []FlatOption {
	if len(options) == 0 {
		return nil
	}
	var out []FlatOption
	var walk func([]Option, int)
	walk = func(opts []Option, depth int) {
		for _, opt := range opts {
			out = append(out, FlatOption{ID: opt.ID, Label: opt.Label, Depth: depth})
			if len(opt.Children) > 0 {
				walk(opt.Children, depth+1)
			}
		}
	}
	walk(options, 0)
	return out
}

// HasOption reports whether id appears anywhere in the option tree.
func HasOption(options []Option, id string) bool {
	for _, opt := range options {
		if opt.ID == id || HasOption(opt.Children, id) {
			return true
		}
	}
	return false
}
