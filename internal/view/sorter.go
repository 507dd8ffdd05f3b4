package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"junction-admin-backend/internal/parse"
)

// Direction of a sort descriptor.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortDescriptor is the active (field, direction) pair driving table order.
type SortDescriptor struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// DefaultDescriptor is used when no persisted descriptor exists.
var DefaultDescriptor = SortDescriptor{Field: "name", Direction: Ascending}

// FieldKind selects the comparator applied to a sortable field. Adding a
// sortable field to a table is a Schema entry, not a new code branch.
type FieldKind int

const (
	KindRaw FieldKind = iota // generic string comparison of the printed value
	KindString
	KindNumber
	KindTime
	KindVersion // firmware version strings, compared numerically per segment
)

// Schema maps field identifiers to their comparator kind. Fields absent from
// the schema fall back to KindRaw.
type Schema map[string]FieldKind

// SortForest orders root-level siblings by the descriptor and returns a new
// root slice. The builder's bucket rule survives sorting: containers sort
// among themselves and stay ahead of standalone entities under any
// descriptor. Children keep their existing order; the general device table
// never re-sorts inside a subtree. Inputs are not mutated.
func SortForest(f *Forest, d SortDescriptor, schema Schema) []*Node {
	var containers, standalone []*Node
	for _, r := range f.Roots {
		if r.Entity.IsContainer {
			containers = append(containers, r)
		} else {
			standalone = append(standalone, r)
		}
	}
	return append(sortNodes(containers, d, schema), sortNodes(standalone, d, schema)...)
}

// SortGatewayForest orders the gateway table: roots by the descriptor and,
// independently, each container's direct children by the same descriptor.
// Returns a new forest; the input is not mutated.
func SortGatewayForest(f *Forest, d SortDescriptor, schema Schema) []*Node {
	roots := sortNodes(f.Roots, d, schema)
	out := make([]*Node, len(roots))
	for i, r := range roots {
		cp := &Node{Entity: r.Entity, Level: r.Level}
		cp.Children = sortNodes(r.Children, d, schema)
		out[i] = cp
	}
	return out
}

// sortNodes returns a stably sorted copy of nodes. Descending flips the
// comparator's sign, never the final slice, so ties keep their input order
// under either direction.
func sortNodes(nodes []*Node, d SortDescriptor, schema Schema) []*Node {
	out := make([]*Node, len(nodes))
	copy(out, nodes)
	sign := 1
	if d.Direction == Descending {
		sign = -1
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sign*compareField(out[i].Entity, out[j].Entity, d.Field, schema) < 0
	})
	return out
}

func compareField(a, b Entity, field string, schema Schema) int {
	kind := KindRaw
	if schema != nil {
		kind = schema[field]
	}
	av := a.Fields[field]
	bv := b.Fields[field]

	switch kind {
	case KindString:
		return strings.Compare(lowerString(av), lowerString(bv))
	case KindNumber:
		an, bn := asNumber(av), asNumber(bv)
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case KindTime:
		am, bm := asMillis(av), asMillis(bv)
		switch {
		case am < bm:
			return -1
		case am > bm:
			return 1
		}
		return 0
	case KindVersion:
		return parse.Compare(asVersion(av), asVersion(bv))
	default:
		return strings.Compare(rawString(av), rawString(bv))
	}
}

func lowerString(v any) string {
	return strings.ToLower(rawString(v))
}

// rawString renders a field value for comparison; missing values compare as
// the empty string and therefore sort first ascending.
func rawString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// asNumber coerces the usual numeric shapes; missing values compare as 0.
func asNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// asMillis reduces a timestamp to epoch milliseconds; missing or zero times
// compare as the epoch and sort first ascending.
func asMillis(v any) int64 {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return 0
		}
		return t.UnixMilli()
	case *time.Time:
		if t == nil || t.IsZero() {
			return 0
		}
		return t.UnixMilli()
	}
	return 0
}

// asVersion parses a firmware version field; unparsable values collapse to
// the zero version and sort first ascending.
func asVersion(v any) parse.Version {
	ver, err := parse.ParseVersion(rawString(v))
	if err != nil {
		return parse.Version{}
	}
	return ver
}
