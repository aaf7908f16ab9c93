// Package chip projects a filter model into a flat list of removable
// "active filter" descriptors and maps a removal back onto the model.
package chip

import (
	"fmt"
	"strconv"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
)

// Kind says which part of the model a chip stands for.
type Kind uint8

const (
	KindFilter Kind = iota
	KindNode
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindFilter:
		return "filter"
	case KindNode:
		return "node"
	case KindScalar:
		return "scalar"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Chip is one independently removable unit of non-default state.
//
// ID is stable for the life of the underlying state: filter chips are keyed
// by the entry's synthetic ID, not its position, so removing one entry does
// not rename the chips of its siblings.
type Chip struct {
	ID   string
	Kind Kind

	// KindFilter
	Category filter.Category
	EntryID  int
	Index    int

	// KindNode
	Slot ancestry.Slot

	// KindScalar
	Scalar filter.Scalar

	Label string
	Value string
}

// Text renders the chip as a single line.
func (c Chip) Text() string {
	var prefix string

	switch c.Kind {
	case KindFilter:
		prefix = c.Category.String() + ": "
	case KindNode:
		prefix = c.Slot.String() + ": "
	}

	if c.Value == "" {
		return prefix + c.Label
	}

	return prefix + c.Label + " " + c.Value
}

// Labels resolves display text for every kind of identity a chip shows.
type Labels interface {
	filter.Catalog
	ancestry.Characters
	SupportCard(id int) (string, bool)
}

// Find returns the chip with the given ID.
func Find(chips []Chip, id string) (Chip, bool) {
	for _, c := range chips {
		if c.ID == id {
			return c, true
		}
	}

	return Chip{}, false
}

// FilterChipID is the chip ID of a filter entry.
func FilterChipID(entryID int) string {
	return "f" + strconv.Itoa(entryID)
}

// NodeChipID is the chip ID of a tree slot.
func NodeChipID(s ancestry.Slot) string {
	return "node:" + s.String()
}

// ScalarChipID is the chip ID of a scalar.
func ScalarChipID(s filter.Scalar) string {
	return "scalar:" + s.String()
}
