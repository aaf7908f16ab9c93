package filter

import "math"

// Wildcard is the FactorID meaning "any factor in the category".
const Wildcard = 0

// MaxFactorID is the largest factor id whose spark ids (id*10 + level)
// still fit in an int.
const MaxFactorID = (math.MaxInt - MaxLevel) / 10

// FactorFilter is one user-specified constraint within a category.
//
// Min and Max are an inclusive level range in [1,9]. Min <= Max is not
// enforced; an inverted range contributes nothing to the query.
type FactorFilter struct {
	// ID is a synthetic identity, stable for the life of the entry.
	// It is not part of the shareable token.
	ID       int `json:"id"`
	FactorID int `json:"factor_id"`
	Min      int `json:"min"`
	Max      int `json:"max"`
}

// IsWildcard reports whether the entry matches any factor.
func (f FactorFilter) IsWildcard() bool {
	return f.FactorID <= Wildcard
}

// Descriptor is one catalog entry for a colour class.
type Descriptor struct {
	ID   int    `json:"id"   yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Catalog enumerates the factors available to a category.
// Implementations are expected to be cached and cheap to call.
type Catalog interface {
	Lookup(c Category) []Descriptor
}

// CatalogFunc adapts a function to [Catalog].
type CatalogFunc func(c Category) []Descriptor

// Lookup calls f(c).
func (f CatalogFunc) Lookup(c Category) []Descriptor {
	return f(c)
}

// ValidFactorID reports whether id is the wildcard or a factor id that
// can be turned into spark ids.
func ValidFactorID(id int) bool {
	return id >= Wildcard && id <= MaxFactorID
}

// ValidLevel reports whether l is a single level digit.
func ValidLevel(l int) bool {
	return l >= MinLevel && l <= MaxLevel
}
