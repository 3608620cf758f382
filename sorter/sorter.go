// Package sorter parses sorting strings (e.g. "name:asc,created_at:desc") into
// structured options and applies them to in-memory slices.
package sorter

import (
	"cmp"
	"slices"
	"strings"
)

type (
	SortOpts []Opt

	SortDirection string
)

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"

	// expectedPartsCount is the expected number of parts in a sort option (field:direction).
	expectedPartsCount = 2
)

// MakeFromStr parses a sorting string (e.g., "name:asc,created_at:desc") into a slice of Opt.
// It filters out invalid or disallowed fields and directions, ensuring only valid options are returned.
// The allowedFields parameter specifies the list of fields that are permitted for sorting.
func MakeFromStr(sortString string, allowedFields ...string) SortOpts {
	if sortString == "" {
		return nil
	}

	var options []Opt
	pairs := strings.SplitSeq(sortString, ",")
	for pair := range pairs {
		parts := strings.Split(pair, ":")
		if len(parts) != expectedPartsCount {
			continue
		}

		key := strings.TrimSpace(parts[0])
		if !slices.Contains(allowedFields, key) {
			continue
		}

		direction := strings.ToLower(strings.TrimSpace(parts[1]))
		if direction != string(Asc) && direction != string(Desc) {
			continue
		}

		options = append(options, Opt{
			F: key,
			D: SortDirection(direction),
		})
	}

	return options
}

// Make creates a slice of Opt from a variadic list of Opt.
// It is a convenience function for creating a slice of sorting options
// without manually initializing a slice.
func Make(sortOptions ...Opt) SortOpts {
	return sortOptions
}

// Opt represents a single sorting option, consisting of a field and a direction.
type Opt struct {
	F string        // F is the field to sort by.
	D SortDirection // D is the sorting direction (asc or desc).
}

// Fields maps sortable field names to comparators of T.
// A comparator returns a negative number when a sorts before b in ascending order.
type Fields[T any] map[string]func(a, b T) int

// Names returns the field names, for use as the allowed fields of MakeFromStr.
func (f Fields[T]) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Apply sorts items in place by opts. Earlier options take precedence and
// equal elements keep their original order. Options naming unknown fields are skipped.
func Apply[T any](items []T, opts SortOpts, fields Fields[T]) {
	if len(opts) == 0 {
		return
	}

	slices.SortStableFunc(items, func(a, b T) int {
		for _, opt := range opts {
			compare, ok := fields[opt.F]
			if !ok {
				continue
			}
			c := compare(a, b)
			if opt.D == Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

// By builds a comparator from a key extractor of an ordered type.
func By[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}
