package spark

import (
	"fmt"
	"reflect"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
)

// Query is the compiled search request. Unset fields are omitted from the
// wire form; the backend treats absence as "no constraint".
type Query struct {
	BlueSparks  [][]int `json:"blue_sparks,omitempty"`
	PinkSparks  [][]int `json:"pink_sparks,omitempty"`
	GreenSparks [][]int `json:"green_sparks,omitempty"`
	WhiteSparks [][]int `json:"white_sparks,omitempty"`

	BlueNineStar  bool `json:"blue_nine_star,omitempty"`
	PinkNineStar  bool `json:"pink_nine_star,omitempty"`
	GreenNineStar bool `json:"green_nine_star,omitempty"`
	WhiteNineStar bool `json:"white_nine_star,omitempty"`

	MainBlueSparks  []int `json:"main_parent_blue_sparks,omitempty"`
	MainPinkSparks  []int `json:"main_parent_pink_sparks,omitempty"`
	MainGreenSparks []int `json:"main_parent_green_sparks,omitempty"`
	MainWhiteSparks []int `json:"main_parent_white_sparks,omitempty"`

	MinMainBlueFactors  *int `json:"min_main_blue_factors,omitempty"`
	MinMainPinkFactors  *int `json:"min_main_pink_factors,omitempty"`
	MinMainGreenFactors *int `json:"min_main_green_factors,omitempty"`
	MinMainWhiteFactors *int `json:"min_main_white_factors,omitempty"`

	OptionalWhiteSparks     []int `json:"optional_white_sparks,omitempty"`
	OptionalMainWhiteSparks []int `json:"optional_main_white_sparks,omitempty"`

	PlayerCharaID *int `json:"player_chara_id,omitempty"`
	MainParentID  *int `json:"main_parent_id,omitempty"`
	ParentLeftID  *int `json:"parent_left_id,omitempty"`
	ParentRightID *int `json:"parent_right_id,omitempty"`

	SupportCardID *int `json:"support_card_id,omitempty"`
	MinLimitBreak *int `json:"min_limit_break,omitempty"`

	MinWinCount    *int   `json:"min_win_count,omitempty"`
	MinWhiteCount  *int   `json:"min_white_count,omitempty"`
	MinParentRank  *int   `json:"min_parent_rank,omitempty"`
	MaxFollowerNum *int   `json:"max_follower_num,omitempty"`
	TrainerID      string `json:"trainer_id,omitempty"`
}

// IsEmpty reports whether the query carries no constraint at all.
func (q Query) IsEmpty() bool {
	return reflect.ValueOf(q).IsZero()
}

// Compile builds the query for m, resolving wildcards through catalog.
func Compile(m *filter.Model, catalog filter.Catalog) Query {
	var q Query

	for _, c := range filter.Categories() {
		entries := m.Entries(c)
		if len(entries) == 0 {
			continue
		}

		switch c.Scope() {
		case filter.ScopeGlobal:
			groups, nine := q.globalFields(c)
			*groups = ExpandToGroups(entries, catalog.Lookup(c), c.Cap())
			*nine = NineStar(entries)
		case filter.ScopeMainParent:
			flat, threshold := q.mainFields(c)
			*flat = ExpandToFlatIDs(entries, catalog.Lookup(c), c.Cap())
			*threshold = intPtr(MaxMin(entries))
		case filter.ScopeOptional:
			*q.optionalField(c) = ExpandToFactorIDs(entries)
		}
	}

	tree := m.Tree().DeriveScalars()
	q.PlayerCharaID = positive(tree.Target)
	q.MainParentID = positive(tree.MainParent)
	q.ParentLeftID = positive(tree.MainGrandparent1)
	q.ParentRightID = positive(tree.MainGrandparent2)

	sc := m.Scalars()
	q.SupportCardID = positive(sc.SupportCardID)
	q.MinLimitBreak = positive(sc.LimitBreak)

	if !sc.IsDefault(filter.ScalarMinWins) {
		q.MinWinCount = intPtr(sc.MinWins)
	}

	if !sc.IsDefault(filter.ScalarMinWhiteSparks) {
		q.MinWhiteCount = intPtr(sc.MinWhiteSparks)
	}

	if !sc.IsDefault(filter.ScalarMinRank) {
		q.MinParentRank = intPtr(sc.MinRank)
	}

	if !sc.IsDefault(filter.ScalarMaxFollowers) {
		q.MaxFollowerNum = intPtr(sc.MaxFollowers)
	}

	if !sc.IsDefault(filter.ScalarSearchIDs) {
		q.TrainerID = sc.SearchIDs
	}

	return q
}

func (q *Query) globalFields(c filter.Category) (*[][]int, *bool) {
	switch c {
	case filter.Blue:
		return &q.BlueSparks, &q.BlueNineStar
	case filter.Pink:
		return &q.PinkSparks, &q.PinkNineStar
	case filter.Green:
		return &q.GreenSparks, &q.GreenNineStar
	case filter.White:
		return &q.WhiteSparks, &q.WhiteNineStar
	default:
		panic(fmt.Sprintf("spark: %s is not a global category", c))
	}
}

func (q *Query) mainFields(c filter.Category) (*[]int, **int) {
	switch c {
	case filter.MainBlue:
		return &q.MainBlueSparks, &q.MinMainBlueFactors
	case filter.MainPink:
		return &q.MainPinkSparks, &q.MinMainPinkFactors
	case filter.MainGreen:
		return &q.MainGreenSparks, &q.MinMainGreenFactors
	case filter.MainWhite:
		return &q.MainWhiteSparks, &q.MinMainWhiteFactors
	default:
		panic(fmt.Sprintf("spark: %s is not a main-parent category", c))
	}
}

func (q *Query) optionalField(c filter.Category) *[]int {
	switch c {
	case filter.OptionalWhite:
		return &q.OptionalWhiteSparks
	case filter.OptionalMainWhite:
		return &q.OptionalMainWhiteSparks
	default:
		panic(fmt.Sprintf("spark: %s is not an optional category", c))
	}
}

func intPtr(n int) *int {
	return &n
}

func positive(n int) *int {
	if n <= 0 {
		return nil
	}

	return &n
}
