package types

import "fmt"

// WithDefaultsMode is the RFC 6243 default-value disclosure mode requested
// for a retrieval operation. The materialization engine carries the mode
// opaquely; only the reply layer acts on it.
type WithDefaultsMode uint8

const (
	// WDExplicit reports only nodes that were explicitly set. This is the
	// basic mode advertised by default.
	WDExplicit WithDefaultsMode = iota

	// WDReportAll reports all nodes including schema defaults.
	WDReportAll

	// WDReportAllTagged reports all nodes and tags default ones.
	WDReportAllTagged

	// WDTrim omits any node whose value equals the schema default.
	WDTrim
)

// String returns the RFC 6243 identifier for the mode.
func (m WithDefaultsMode) String() string {
	switch m {
	case WDReportAll:
		return "report-all"
	case WDReportAllTagged:
		return "report-all-tagged"
	case WDTrim:
		return "trim"
	default:
		return "explicit"
	}
}

// ParseWithDefaults parses the RFC 6243 string form of a with-defaults mode.
// An empty string selects WDExplicit, the capability default.
func ParseWithDefaults(s string) (WithDefaultsMode, error) {
	switch s {
	case "", "explicit":
		return WDExplicit, nil
	case "report-all":
		return WDReportAll, nil
	case "report-all-tagged":
		return WDReportAllTagged, nil
	case "trim":
		return WDTrim, nil
	default:
		return 0, fmt.Errorf("unknown with-defaults mode %q", s)
	}
}
