package filter

import (
	"fmt"
	"strings"
)

// Scalar defaults. A scalar equal to its default is "no constraint".
const (
	DefaultLimitBreak   = 0
	DefaultMinRank      = 1
	DefaultMaxFollowers = 999
	MaxLimitBreak       = 4
)

// Scalars holds the independent thresholds and the support selection.
type Scalars struct {
	// SupportCardID selects a support card; 0 means none.
	SupportCardID int `json:"support_card_id"`
	LimitBreak    int `json:"limit_break"`

	MinWins        int    `json:"min_wins"`
	MinWhiteSparks int    `json:"min_white_sparks"`
	MinRank        int    `json:"min_rank"`
	MaxFollowers   int    `json:"max_followers"`
	SearchIDs      string `json:"search_ids"`
}

// DefaultScalars returns the scalars of a fresh model.
func DefaultScalars() Scalars {
	return Scalars{
		LimitBreak:   DefaultLimitBreak,
		MinRank:      DefaultMinRank,
		MaxFollowers: DefaultMaxFollowers,
	}
}

// Scalar names one independently resettable unit of scalar state.
type Scalar uint8

const (
	// ScalarSupport covers the support card together with its limit break.
	ScalarSupport Scalar = iota
	ScalarMinWins
	ScalarMinWhiteSparks
	ScalarMinRank
	ScalarMaxFollowers
	ScalarSearchIDs

	numScalars
)

var scalarNames = [numScalars]string{
	ScalarSupport:        "support",
	ScalarMinWins:        "min-wins",
	ScalarMinWhiteSparks: "min-white",
	ScalarMinRank:        "rank",
	ScalarMaxFollowers:   "max-followers",
	ScalarSearchIDs:      "search",
}

// AllScalars returns every scalar in display order.
func AllScalars() []Scalar {
	all := make([]Scalar, 0, numScalars)
	for s := Scalar(0); s < numScalars; s++ {
		all = append(all, s)
	}

	return all
}

func (s Scalar) String() string {
	if s >= numScalars {
		return fmt.Sprintf("scalar(%d)", uint8(s))
	}

	return scalarNames[s]
}

// ParseScalar resolves a scalar name as typed by a user.
func ParseScalar(name string) (Scalar, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for s, n := range scalarNames {
		if n == name {
			return Scalar(s), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownScalar, name)
}

// IsDefault reports whether scalar s of sc is unset.
func (sc Scalars) IsDefault(s Scalar) bool {
	def := DefaultScalars()

	switch s {
	case ScalarSupport:
		return sc.SupportCardID == def.SupportCardID && sc.LimitBreak == def.LimitBreak
	case ScalarMinWins:
		return sc.MinWins == def.MinWins
	case ScalarMinWhiteSparks:
		return sc.MinWhiteSparks == def.MinWhiteSparks
	case ScalarMinRank:
		return sc.MinRank == def.MinRank
	case ScalarMaxFollowers:
		return sc.MaxFollowers == def.MaxFollowers
	case ScalarSearchIDs:
		return strings.TrimSpace(sc.SearchIDs) == def.SearchIDs
	default:
		panic(fmt.Sprintf("filter: undeclared scalar %d", uint8(s)))
	}
}

// reset restores scalar s to its default.
func (sc *Scalars) reset(s Scalar) {
	def := DefaultScalars()

	switch s {
	case ScalarSupport:
		sc.SupportCardID = def.SupportCardID
		sc.LimitBreak = def.LimitBreak
	case ScalarMinWins:
		sc.MinWins = def.MinWins
	case ScalarMinWhiteSparks:
		sc.MinWhiteSparks = def.MinWhiteSparks
	case ScalarMinRank:
		sc.MinRank = def.MinRank
	case ScalarMaxFollowers:
		sc.MaxFollowers = def.MaxFollowers
	case ScalarSearchIDs:
		sc.SearchIDs = def.SearchIDs
	default:
		panic(fmt.Sprintf("filter: undeclared scalar %d", uint8(s)))
	}
}
