package get

import (
	"errors"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/netconf-go/getkit/schema"
)

// Session binds a schema index, a backend store, and a set of virtual
// sources into a reusable materialization service. Sessions are cheap and
// long-lived; each Materialize call is one self-contained operation.
type Session struct {
	idx     *schema.Index
	backend Backend
	sources []VirtualSource
	opt     Options
	log     *slog.Logger
}

// NewSession creates a session. The index and backend are required; virtual
// sources are registered separately so callers can pick which ones exist.
func NewSession(idx *schema.Index, backend Backend, opt Options) (*Session, error) {
	if idx == nil {
		return nil, errors.New("session requires a schema index")
	}
	if backend == nil {
		return nil, errors.New("session requires a backend")
	}
	return &Session{
		idx:     idx,
		backend: backend,
		opt:     opt,
		log:     opt.logger(),
	}, nil
}

// RegisterSource adds a virtual source. Selectors under the source's prefix
// are served from its tree instead of the backend. Register all sources
// before the first Materialize call.
func (s *Session) RegisterSource(src VirtualSource) {
	s.sources = append(s.sources, src)
}

// Index returns the session's schema index.
func (s *Session) Index() *schema.Index { return s.idx }

// newOperationID returns a fresh identifier for one operation's log lines.
func newOperationID() string {
	return ulid.Make().String()
}
