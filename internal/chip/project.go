package chip

import (
	"fmt"
	"strconv"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
)

const anyLabel = "Any"

var scalarTitles = map[filter.Scalar]string{
	filter.ScalarMinWins:        "Wins",
	filter.ScalarMinWhiteSparks: "White sparks",
	filter.ScalarMinRank:        "Rank",
	filter.ScalarMaxFollowers:   "Followers",
	filter.ScalarSearchIDs:      "Trainer",
}

// Project lists one chip per non-default unit of state: every filter
// entry, every populated tree node, the support selection and every
// changed threshold. Output depends only on m and labels.
func Project(m *filter.Model, labels Labels) []Chip {
	var chips []Chip

	for _, c := range filter.Categories() {
		var catalog []filter.Descriptor
		if labels != nil {
			catalog = labels.Lookup(c)
		}

		for i, e := range m.Entries(c) {
			if c.Scope() == filter.ScopeOptional && e.IsWildcard() {
				continue
			}

			chips = append(chips, Chip{
				ID:       FilterChipID(e.ID),
				Kind:     KindFilter,
				Category: c,
				EntryID:  e.ID,
				Index:    i,
				Label:    factorLabel(e, catalog),
				Value:    filterValue(c, e),
			})
		}
	}

	tree := m.Tree()
	for _, s := range ancestry.Slots() {
		n := tree.Node(s)
		if n.Empty() {
			continue
		}

		chips = append(chips, Chip{
			ID:    NodeChipID(s),
			Kind:  KindNode,
			Slot:  s,
			Label: ancestry.Label(n.Identity, labels),
		})
	}

	sc := m.Scalars()
	for _, s := range filter.AllScalars() {
		if sc.IsDefault(s) {
			continue
		}

		label, value := scalarText(s, sc, labels)
		chips = append(chips, Chip{
			ID:     ScalarChipID(s),
			Kind:   KindScalar,
			Scalar: s,
			Label:  label,
			Value:  value,
		})
	}

	return chips
}

// ApplyRemoval undoes the state c stands for. Callers recompile afterwards.
// A filter chip whose entry no longer exists returns an error wrapping
// [filter.ErrEntryNotFound].
func ApplyRemoval(m *filter.Model, c Chip) error {
	switch c.Kind {
	case KindFilter:
		cat, _, ok := m.Find(c.EntryID)
		if !ok || cat != c.Category {
			return fmt.Errorf("%w: chip %s", filter.ErrEntryNotFound, c.ID)
		}

		_, err := m.RemoveEntry(c.EntryID)

		return err
	case KindNode:
		m.Tree().Clear(c.Slot)

		return nil
	case KindScalar:
		m.ResetScalar(c.Scalar)

		return nil
	default:
		panic(fmt.Sprintf("chip: unknown kind %d", uint8(c.Kind)))
	}
}

// FormatRange renders a level range the way filter chips show it.
// max is clamped to limit first.
//
//	3..3   -> "3"
//	4..cap -> "4+"
//	1..5   -> "≤5"
//	else   -> "2-5"
func FormatRange(lo, hi, limit int) string {
	hi = min(hi, limit)

	switch {
	case lo == hi:
		return strconv.Itoa(lo)
	case lo > filter.MinLevel && hi == limit:
		return strconv.Itoa(lo) + "+"
	case lo == filter.MinLevel && hi < limit:
		return "≤" + strconv.Itoa(hi)
	default:
		return fmt.Sprintf("%d-%d", lo, hi)
	}
}

func filterValue(c filter.Category, e filter.FactorFilter) string {
	if c.Scope() == filter.ScopeOptional {
		return ""
	}

	return FormatRange(e.Min, e.Max, c.Cap())
}

func factorLabel(e filter.FactorFilter, catalog []filter.Descriptor) string {
	if e.IsWildcard() {
		return anyLabel
	}

	for _, d := range catalog {
		if d.ID == e.FactorID && d.Text != "" {
			return d.Text
		}
	}

	return fmt.Sprintf("ID: %d", e.FactorID)
}

func scalarText(s filter.Scalar, sc filter.Scalars, labels Labels) (string, string) {
	switch s {
	case filter.ScalarSupport:
		label := "Support"

		if sc.SupportCardID > 0 {
			label = fmt.Sprintf("ID: %d", sc.SupportCardID)

			if labels != nil {
				if name, ok := labels.SupportCard(sc.SupportCardID); ok && name != "" {
					label = name
				}
			}
		}

		if sc.LimitBreak > 0 {
			return label, "LB " + strconv.Itoa(sc.LimitBreak) + "+"
		}

		return label, ""
	case filter.ScalarMinWins:
		return scalarTitles[s], "≥" + strconv.Itoa(sc.MinWins)
	case filter.ScalarMinWhiteSparks:
		return scalarTitles[s], "≥" + strconv.Itoa(sc.MinWhiteSparks)
	case filter.ScalarMinRank:
		return scalarTitles[s], "≥" + strconv.Itoa(sc.MinRank)
	case filter.ScalarMaxFollowers:
		return scalarTitles[s], "≤" + strconv.Itoa(sc.MaxFollowers)
	case filter.ScalarSearchIDs:
		return scalarTitles[s], sc.SearchIDs
	default:
		panic(fmt.Sprintf("chip: undeclared scalar %d", uint8(s)))
	}
}
