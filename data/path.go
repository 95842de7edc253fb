package data

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadPath is returned for paths that cannot be parsed at all, before any
// schema resolution is attempted.
var ErrBadPath = errors.New("malformed data path")

// Step is one parsed segment of an absolute data path.
type Step struct {
	// Module is the module prefix, "" when the segment had none. Only the
	// first step of a path is required to carry one.
	Module string

	// Name is the node name.
	Name string

	// Keys are the segment's predicates in written order. List-entry
	// predicates use the key leaf name; a leaf-list value predicate uses
	// the name ".".
	Keys []KeyVal
}

// KeyVal is one key-name/value pair from a path predicate.
type KeyVal struct {
	Name  string
	Value string
}

// Key returns the value for the named key and whether it was present.
func (s Step) Key(name string) (string, bool) {
	for _, kv := range s.Keys {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// String renders the step back to its path form.
func (s Step) String() string {
	var b strings.Builder
	if s.Module != "" {
		b.WriteString(s.Module)
		b.WriteByte(':')
	}
	b.WriteString(s.Name)
	for _, kv := range s.Keys {
		fmt.Fprintf(&b, "[%s='%s']", kv.Name, kv.Value)
	}
	return b.String()
}

// ParsePath parses an absolute, fully-keyed data path such as
//
//	/example:system/server[name='a']/address
//	/example:system/dns[.='10.0.0.1']
//
// Predicates accept single or double quotes. No schema resolution happens
// here; unknown names fail later, during the upsert walk.
func ParsePath(path string) ([]Step, error) {
	if path == "" || path[0] != '/' {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrBadPath, path)
	}
	var steps []Step
	i := 1
	for i < len(path) {
		start := i
		for i < len(path) && path[i] != '/' && path[i] != '[' {
			i++
		}
		seg := path[start:i]
		if seg == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrBadPath, path)
		}
		step := Step{Name: seg}
		if c := strings.IndexByte(seg, ':'); c >= 0 {
			step.Module, step.Name = seg[:c], seg[c+1:]
		}
		if step.Name == "" {
			return nil, fmt.Errorf("%w: %q has an empty node name", ErrBadPath, path)
		}

		for i < len(path) && path[i] == '[' {
			kv, next, err := parsePredicate(path, i)
			if err != nil {
				return nil, err
			}
			step.Keys = append(step.Keys, kv)
			i = next
		}
		steps = append(steps, step)

		if i < len(path) {
			if path[i] != '/' {
				return nil, fmt.Errorf("%w: %q: unexpected %q after predicate", ErrBadPath, path, path[i])
			}
			i++
			if i == len(path) {
				return nil, fmt.Errorf("%w: %q has a trailing slash", ErrBadPath, path)
			}
		}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrBadPath)
	}
	return steps, nil
}

// parsePredicate parses one "[name='value']" starting at the '[' at pos.
// Returns the pair and the index just past the closing ']'.
func parsePredicate(path string, pos int) (KeyVal, int, error) {
	i := pos + 1
	start := i
	for i < len(path) && path[i] != '=' && path[i] != ']' {
		i++
	}
	if i >= len(path) || path[i] != '=' {
		return KeyVal{}, 0, fmt.Errorf("%w: %q: predicate without '='", ErrBadPath, path)
	}
	name := strings.TrimSpace(path[start:i])
	if name == "" {
		return KeyVal{}, 0, fmt.Errorf("%w: %q: predicate without a key name", ErrBadPath, path)
	}
	i++
	if i >= len(path) || (path[i] != '\'' && path[i] != '"') {
		return KeyVal{}, 0, fmt.Errorf("%w: %q: predicate value must be quoted", ErrBadPath, path)
	}
	quote := path[i]
	i++
	vstart := i
	for i < len(path) && path[i] != quote {
		i++
	}
	if i >= len(path) {
		return KeyVal{}, 0, fmt.Errorf("%w: %q: unterminated predicate value", ErrBadPath, path)
	}
	value := path[vstart:i]
	i++
	if i >= len(path) || path[i] != ']' {
		return KeyVal{}, 0, fmt.Errorf("%w: %q: predicate not closed", ErrBadPath, path)
	}
	return KeyVal{Name: name, Value: value}, i + 1, nil
}
