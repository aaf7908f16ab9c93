package filter

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
)

// snapshot is the on-disk session form of a Model. Unlike the share token
// it keeps synthetic entry IDs so they stay stable between invocations.
type snapshot struct {
	Filters map[string][]FactorFilter `json:"filters,omitempty"`
	Tree    [ancestry.NumSlots]int    `json:"tree"`
	Scalars Scalars                   `json:"scalars"`
	NextID  int                       `json:"next_id"`
}

// MarshalJSON encodes the model as a session snapshot.
func (m *Model) MarshalJSON() ([]byte, error) {
	snap := snapshot{
		Filters: make(map[string][]FactorFilter),
		Tree:    m.tree.Identities(),
		Scalars: m.scalars,
		NextID:  m.nextID,
	}

	for c := Category(0); c < numCategories; c++ {
		if len(m.lists[c]) > 0 {
			snap.Filters[c.String()] = m.lists[c]
		}
	}

	return json.Marshal(snap)
}

// UnmarshalJSON decodes a session snapshot. Tree nodes get placeholder
// display fields; call [ancestry.Tree.Refresh] to resolve names.
func (m *Model) UnmarshalJSON(data []byte) error {
	snap := snapshot{Scalars: DefaultScalars()}

	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	fresh := New()
	fresh.scalars = snap.Scalars

	maxID := 0

	for name, entries := range snap.Filters {
		c, err := ParseCategory(name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}

		for _, e := range entries {
			if e.ID <= 0 {
				return fmt.Errorf("%w: %s entry without id", ErrInvalidSnapshot, c)
			}

			if _, _, dup := fresh.Find(e.ID); dup {
				return fmt.Errorf("%w: duplicate entry id %d", ErrInvalidSnapshot, e.ID)
			}

			if !ValidLevel(e.Min) || !ValidLevel(e.Max) {
				return fmt.Errorf("%w: %s entry %d: %w", ErrInvalidSnapshot, c, e.ID, ErrLevelOutOfRange)
			}

			if e.FactorID < Wildcard {
				e.FactorID = Wildcard
			}

			if e.FactorID > MaxFactorID {
				return fmt.Errorf("%w: %s entry %d: %w", ErrInvalidSnapshot, c, e.ID, ErrFactorTooLarge)
			}

			fresh.lists[c] = append(fresh.lists[c], e)
			maxID = max(maxID, e.ID)
		}
	}

	for i, id := range snap.Tree {
		if id > 0 {
			fresh.tree.Assign(ancestry.Slot(i), id, nil)
		}
	}

	fresh.nextID = max(snap.NextID, maxID+1)

	*m = *fresh

	return nil
}
