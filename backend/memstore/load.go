package memstore

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg/oj"

	"github.com/netconf-go/getkit/data"
	"github.com/netconf-go/getkit/pkg/types"
)

// Load parses a JSON record fixture and adds every record to the given
// datastore. The format is a flat array:
//
//	[
//	  {"path": "/example:system/hostname", "value": "r1", "default": true},
//	  {"path": "/example:system/ntp"},
//	  {"path": "/example:system/server[name='a']/address", "value": "10.0.0.1"}
//	]
func (s *Store) Load(ds types.Datastore, src []byte) (int, error) {
	v, err := oj.Parse(src)
	if err != nil {
		return 0, fmt.Errorf("memstore: parse fixture: %w", err)
	}
	arr, ok := v.([]any)
	if !ok {
		return 0, fmt.Errorf("memstore: fixture must be a JSON array, got %T", v)
	}
	n := 0
	for _, raw := range arr {
		obj, ok := raw.(map[string]any)
		if !ok {
			return n, fmt.Errorf("memstore: fixture entry must be an object, got %T", raw)
		}
		rec := data.Record{}
		rec.Path, _ = obj["path"].(string)
		rec.Value, _ = obj["value"].(string)
		rec.Default, _ = obj["default"].(bool)
		if rec.Path == "" {
			return n, fmt.Errorf("memstore: fixture entry without a path")
		}
		if err := s.Add(ds, rec); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// LoadFile reads and loads a JSON record fixture file.
func (s *Store) LoadFile(ds types.Datastore, path string) (int, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("memstore: read fixture: %w", err)
	}
	n, err := s.Load(ds, src)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}
