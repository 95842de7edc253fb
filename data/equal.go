package data

// Equal reports whether two trees carry the same structure, values, and
// default flags. Instances of the same schema node (list and leaf-list
// entries) are compared as sets, so trees built from different record
// delivery orders compare equal.
func Equal(a, b *Tree) bool {
	return equalSets(a.roots, b.roots)
}

// EqualNode reports whether two subtrees are equal under the same rules.
func EqualNode(a, b *Node) bool {
	if a.Schema != b.Schema || a.Value != b.Value || a.Default != b.Default {
		return false
	}
	if len(a.keys) != len(b.keys) {
		return false
	}
	for i, kv := range a.keys {
		if b.keys[i] != kv {
			return false
		}
	}
	return equalSets(a.children, b.children)
}

func equalSets(as, bs []*Node) bool {
	if len(as) != len(bs) {
		return false
	}
	used := make([]bool, len(bs))
outer:
	for _, a := range as {
		for i, b := range bs {
			if used[i] || !a.sameIdentity(b) {
				continue
			}
			if !EqualNode(a, b) {
				return false
			}
			used[i] = true
			continue outer
		}
		return false
	}
	return true
}
