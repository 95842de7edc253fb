package get

import (
	"strings"

	"github.com/netconf-go/getkit/schema"
)

// DefaultSelectors expands the "no filter" case: one wildcard selector per
// registered module that defines at least one data node. Modules holding
// only RPC and notification definitions contribute nothing to a data
// retrieval and are skipped.
func DefaultSelectors(idx *schema.Index) []string {
	var sels []string
	for _, m := range idx.Modules() {
		if m.HasData() {
			sels = append(sels, "/"+m.Name+":*")
		}
	}
	return sels
}

// classify returns the virtual source owning the selector, or nil for a
// backend-store selector.
func (s *Session) classify(selector string) VirtualSource {
	for _, src := range s.sources {
		if strings.HasPrefix(selector, src.Prefix()) {
			return src
		}
	}
	return nil
}
