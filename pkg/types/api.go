package types

import "fmt"

// SchemaKind identifies what sort of data node a schema node describes.
type SchemaKind uint8

const (
	// KindLeaf is a single scalar value.
	KindLeaf SchemaKind = iota

	// KindLeafList is a multi-instance scalar; each instance is identified
	// by its value.
	KindLeafList

	// KindContainer is an interior node. A presence container's existence
	// is itself meaningful data (see schema.Node.Presence).
	KindContainer

	// KindList is a multi-instance interior node; instances are identified
	// by their key values.
	KindList

	// KindAnydata is an opaque data blob carried as a scalar.
	KindAnydata

	// KindRPC and KindNotification describe operations rather than data.
	// They are never addressable by a data path; they exist so a schema
	// module can be recognized as having no data definitions at all.
	KindRPC
	KindNotification
)

// String returns the YANG-style keyword for the kind.
func (k SchemaKind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindLeafList:
		return "leaf-list"
	case KindContainer:
		return "container"
	case KindList:
		return "list"
	case KindAnydata:
		return "anydata"
	case KindRPC:
		return "rpc"
	case KindNotification:
		return "notification"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// HasValue reports whether nodes of this kind carry a scalar value.
func (k SchemaKind) HasValue() bool {
	return k == KindLeaf || k == KindLeafList || k == KindAnydata
}

// IsData reports whether nodes of this kind appear in a data tree.
func (k SchemaKind) IsData() bool {
	return k != KindRPC && k != KindNotification
}

// ParseSchemaKind parses the YANG-style keyword form of a kind.
func ParseSchemaKind(s string) (SchemaKind, error) {
	switch s {
	case "leaf":
		return KindLeaf, nil
	case "leaf-list":
		return KindLeafList, nil
	case "container":
		return KindContainer, nil
	case "list":
		return KindList, nil
	case "anydata":
		return KindAnydata, nil
	case "rpc":
		return KindRPC, nil
	case "notification":
		return KindNotification, nil
	default:
		return 0, fmt.Errorf("unknown schema kind %q", s)
	}
}

// ViewMode selects which class of data an operation returns.
type ViewMode uint8

const (
	// ViewFull returns configuration and state data (a <get>).
	ViewFull ViewMode = iota

	// ViewConfigOnly returns configuration data only (a <get-config>).
	// Selectors that target state-only virtual sources are skipped.
	ViewConfigOnly
)

// String returns a short human-readable name for the mode.
func (m ViewMode) String() string {
	if m == ViewConfigOnly {
		return "config-only"
	}
	return "full"
}

// Datastore identifies which datastore a backend read targets.
type Datastore uint8

const (
	DSRunning Datastore = iota
	DSStartup
	DSCandidate
)

// String returns the NETCONF datastore name.
func (d Datastore) String() string {
	switch d {
	case DSStartup:
		return "startup"
	case DSCandidate:
		return "candidate"
	default:
		return "running"
	}
}

// ParseDatastore parses a NETCONF datastore name.
func ParseDatastore(s string) (Datastore, error) {
	switch s {
	case "running":
		return DSRunning, nil
	case "startup":
		return DSStartup, nil
	case "candidate":
		return DSCandidate, nil
	default:
		return 0, fmt.Errorf("unknown datastore %q", s)
	}
}
