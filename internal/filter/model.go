// Package filter holds the search filter model: per-category lists of
// factor filters, the ancestry tree and the scalar thresholds.
//
// Every mutation goes through a [Model] method so callers can decide when
// the change affects the live query. The compiled query itself lives in
// package spark.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
)

// Model is the aggregate filter state of one session.
// It is single-owner: no method is safe for concurrent use.
type Model struct {
	lists   [numCategories][]FactorFilter
	tree    *ancestry.Tree
	scalars Scalars
	nextID  int
}

// New returns a model with every field at its default.
func New() *Model {
	return &Model{
		tree:    ancestry.NewTree(),
		scalars: DefaultScalars(),
		nextID:  1,
	}
}

// Tree returns the model's ancestry tree. Mutations through it are
// mutations of the model.
func (m *Model) Tree() *ancestry.Tree {
	return m.tree
}

// Entries returns a copy of the list for c.
func (m *Model) Entries(c Category) []FactorFilter {
	c.mustValid()

	return slices.Clone(m.lists[c])
}

// Len returns the number of entries in c.
func (m *Model) Len(c Category) int {
	c.mustValid()

	return len(m.lists[c])
}

// Add appends a filter with the unconstrained range [1,9] and returns it.
//
// Level capping for main-parent categories happens at compile time, so the
// stored range is always [1,9]. For single-valued categories an existing
// entry is evicted first.
//
// The returned bool is false when factorID is the wildcard: a fresh "any"
// row is a placeholder and must not trigger a query emission yet.
// A factorID above [MaxFactorID] is a caller defect and panics.
func (m *Model) Add(c Category, factorID int) (FactorFilter, bool) {
	c.mustValid()

	if factorID > MaxFactorID {
		panic(fmt.Sprintf("filter: factor id %d out of range", factorID))
	}

	if c.SingleValued() && len(m.lists[c]) > 0 {
		m.lists[c] = slices.Delete(m.lists[c], 0, 1)
	}

	if factorID < Wildcard {
		factorID = Wildcard
	}

	entry := FactorFilter{
		ID:       m.allocID(),
		FactorID: factorID,
		Min:      MinLevel,
		Max:      MaxLevel,
	}

	m.lists[c] = append(m.lists[c], entry)

	return entry, factorID != Wildcard
}

// Remove deletes the entry at index and returns it.
// An index outside the list is a caller defect and panics.
func (m *Model) Remove(c Category, index int) FactorFilter {
	c.mustValid()

	if index < 0 || index >= len(m.lists[c]) {
		panic(fmt.Sprintf("filter: remove %s[%d] out of range (len %d)", c, index, len(m.lists[c])))
	}

	removed := m.lists[c][index]
	m.lists[c] = slices.Delete(m.lists[c], index, index+1)

	return removed
}

// Find locates an entry by its synthetic ID.
func (m *Model) Find(id int) (Category, int, bool) {
	for c := Category(0); c < numCategories; c++ {
		for i, e := range m.lists[c] {
			if e.ID == id {
				return c, i, true
			}
		}
	}

	return 0, 0, false
}

// RemoveEntry deletes the entry with the given synthetic ID.
func (m *Model) RemoveEntry(id int) (Category, error) {
	c, i, ok := m.Find(id)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}

	m.Remove(c, i)

	return c, nil
}

// SetFactor changes the factor of an entry. A value <= 0 makes it a wildcard;
// a value above [MaxFactorID] is rejected.
func (m *Model) SetFactor(id, factorID int) error {
	c, i, ok := m.Find(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}

	if factorID < Wildcard {
		factorID = Wildcard
	}

	if factorID > MaxFactorID {
		return fmt.Errorf("%w: %d", ErrFactorTooLarge, factorID)
	}

	m.lists[c][i].FactorID = factorID

	return nil
}

// SetRange changes the level range of an entry. Both bounds must be level
// digits; min > max is accepted and compiles to nothing.
func (m *Model) SetRange(id, lo, hi int) error {
	if !ValidLevel(lo) || !ValidLevel(hi) {
		return fmt.Errorf("%w: %d-%d", ErrLevelOutOfRange, lo, hi)
	}

	c, i, ok := m.Find(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}

	m.lists[c][i].Min = lo
	m.lists[c][i].Max = hi

	return nil
}

// Scalars returns a copy of the scalar thresholds.
func (m *Model) Scalars() Scalars {
	return m.scalars
}

// SetSupport selects a support card and its minimum limit break.
func (m *Model) SetSupport(cardID, limitBreak int) {
	m.scalars.SupportCardID = max(cardID, 0)
	m.scalars.LimitBreak = min(max(limitBreak, 0), MaxLimitBreak)
}

// SetMinWins sets the minimum win count.
func (m *Model) SetMinWins(n int) {
	m.scalars.MinWins = max(n, 0)
}

// SetMinWhiteSparks sets the minimum white spark count.
func (m *Model) SetMinWhiteSparks(n int) {
	m.scalars.MinWhiteSparks = max(n, 0)
}

// SetMinRank sets the rank floor.
func (m *Model) SetMinRank(n int) {
	m.scalars.MinRank = max(n, DefaultMinRank)
}

// SetMaxFollowers sets the follower ceiling.
func (m *Model) SetMaxFollowers(n int) {
	m.scalars.MaxFollowers = max(n, 0)
}

// SetSearchIDs sets the free-text identity search.
func (m *Model) SetSearchIDs(s string) {
	m.scalars.SearchIDs = strings.TrimSpace(s)
}

// ResetScalar restores s to its default.
func (m *Model) ResetScalar(s Scalar) {
	m.scalars.reset(s)
}

// Clone returns a deep copy.
func (m *Model) Clone() *Model {
	c := &Model{
		tree:    m.tree.Clone(),
		scalars: m.scalars,
		nextID:  m.nextID,
	}

	for i := range m.lists {
		c.lists[i] = slices.Clone(m.lists[i])
	}

	return c
}

func (m *Model) allocID() int {
	if m.nextID < 1 {
		m.nextID = 1
	}

	id := m.nextID
	m.nextID++

	return id
}
