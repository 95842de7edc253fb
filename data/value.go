package data

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/netconf-go/getkit/pkg/types"
	"github.com/netconf-go/getkit/schema"
)

// ErrBadValue is returned when a record's value cannot be coerced to its
// target node's kind or scalar type.
var ErrBadValue = errors.New("record value does not fit target node")

// checkValue verifies a record value against the target schema node.
// Interior kinds must carry no value; scalar kinds are checked against the
// schema's scalar type. Values stay strings in the tree; this is a
// coercibility check, not a conversion.
func checkValue(sn *schema.Node, value string) error {
	if !sn.Kind.HasValue() {
		if value != "" {
			return fmt.Errorf("%w: %s %q carries value %q", ErrBadValue, sn.Kind, sn.PathString(), value)
		}
		return nil
	}
	if sn.Kind == types.KindAnydata {
		return nil
	}
	return checkScalar(sn, value)
}

func checkScalar(sn *schema.Node, value string) error {
	var err error
	switch sn.Type {
	case "", "string":
		return nil
	case "boolean":
		if value != "true" && value != "false" {
			err = fmt.Errorf("not a boolean")
		}
	case "int8", "int16", "int32", "int64":
		_, err = strconv.ParseInt(value, 10, intBits(sn.Type))
	case "uint8", "uint16", "uint32", "uint64":
		_, err = strconv.ParseUint(value, 10, intBits(sn.Type))
	case "decimal64":
		_, err = strconv.ParseFloat(value, 64)
	default:
		// Unrecognized types (identityref, enumeration, ...) pass through;
		// the backend already validated them against the full model.
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid %s for %s", ErrBadValue, value, sn.Type, sn.PathString())
	}
	return nil
}

func intBits(typ string) int {
	switch typ {
	case "int8", "uint8":
		return 8
	case "int16", "uint16":
		return 16
	case "int32", "uint32":
		return 32
	default:
		return 64
	}
}
