package get

import (
	"io"
	"log/slog"

	"github.com/netconf-go/getkit/pkg/types"
)

// Options configures a Session. The zero value is usable: running
// datastore, explicit with-defaults mode, validation on, logging off.
type Options struct {
	// Datastore selects which datastore backend reads target.
	Datastore types.Datastore

	// WithDefaults is the RFC 6243 disclosure mode carried to the reply
	// layer. The engine itself never branches on it.
	WithDefaults types.WithDefaultsMode

	// SkipValidation disables the post-assembly validation walk. Meant
	// for tests that assemble deliberately partial trees.
	SkipValidation bool

	// Logger receives debug/info logging. Nil discards everything.
	Logger *slog.Logger
}

// logger returns the configured logger or a discarding one.
func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
