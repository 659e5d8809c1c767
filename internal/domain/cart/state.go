package cart

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// ItemState is the lifecycle tag of a cart item. The only legal transitions are
// Active -> Deleted (remove, clear) and Deleted -> Active (restore on add).
type ItemState string

const (
	ItemActive  ItemState = "active"
	ItemDeleted ItemState = "deleted"
)

func (s ItemState) Valid() bool {
	return s == ItemActive || s == ItemDeleted
}

func (s ItemState) String() string { return string(s) }

func (s ItemState) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid item state %q", string(s))
	}
	return string(s), nil
}

func (s *ItemState) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*s = ItemActive
		return nil
	default:
		return fmt.Errorf("scan item state: unsupported type %T", src)
	}
	st := ItemState(strings.ToLower(strings.TrimSpace(raw)))
	if !st.Valid() {
		return fmt.Errorf("scan item state: unknown value %q", raw)
	}
	*s = st
	return nil
}
