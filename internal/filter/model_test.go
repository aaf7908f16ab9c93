package filter_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
)

func Test_New_Model_Has_Defaults_When_Created(t *testing.T) {
	t.Parallel()

	m := filter.New()

	for _, c := range filter.Categories() {
		if got := m.Len(c); got != 0 {
			t.Errorf("Len(%s)=%d, want=0", c, got)
		}
	}

	assert.True(t, m.Tree().IsEmpty(), "tree should be empty")

	diff := cmp.Diff(filter.DefaultScalars(), m.Scalars())
	assert.Empty(t, diff, "scalars mismatch")
}

func Test_Add_Appends_Full_Range_Entry_When_Factor_Given(t *testing.T) {
	t.Parallel()

	m := filter.New()

	entry, affects := m.Add(filter.Blue, 17)

	assert.True(t, affects, "concrete factor should affect the query")

	want := filter.FactorFilter{ID: 1, FactorID: 17, Min: 1, Max: 9}
	assert.Empty(t, cmp.Diff(want, entry), "returned entry mismatch")
	assert.Empty(t, cmp.Diff([]filter.FactorFilter{want}, m.Entries(filter.Blue)), "stored list mismatch")
}

func Test_Add_Reports_No_Effect_When_Factor_Is_Wildcard(t *testing.T) {
	t.Parallel()

	m := filter.New()

	entry, affects := m.Add(filter.White, filter.Wildcard)

	assert.False(t, affects, "wildcard add should not affect the query")
	assert.True(t, entry.IsWildcard(), "entry should be a wildcard")

	// Negative factor ids are normalized to the wildcard.
	entry, affects = m.Add(filter.White, -5)

	assert.False(t, affects)
	assert.Equal(t, filter.Wildcard, entry.FactorID)
}

func Test_Add_Evicts_Previous_Entry_When_Category_Single_Valued(t *testing.T) {
	t.Parallel()

	m := filter.New()
	m.Add(filter.MainGreen, 100101)
	second, _ := m.Add(filter.MainGreen, 100201)

	got := m.Entries(filter.MainGreen)
	assert.Empty(t, cmp.Diff([]filter.FactorFilter{second}, got))

	// Other main categories keep appending.
	m.Add(filter.MainBlue, 1)
	m.Add(filter.MainBlue, 2)
	assert.Equal(t, 2, m.Len(filter.MainBlue))
}

func Test_Remove_Shifts_Later_Entries_When_Index_Valid(t *testing.T) {
	t.Parallel()

	m := filter.New()
	a, _ := m.Add(filter.Pink, 11)
	b, _ := m.Add(filter.Pink, 12)
	c, _ := m.Add(filter.Pink, 21)

	removed := m.Remove(filter.Pink, 1)

	assert.Equal(t, b, removed)
	assert.Empty(t, cmp.Diff([]filter.FactorFilter{a, c}, m.Entries(filter.Pink)))
}

func Test_Remove_Panics_When_Index_Out_Of_Range(t *testing.T) {
	t.Parallel()

	m := filter.New()
	m.Add(filter.Blue, 1)

	assert.Panics(t, func() { m.Remove(filter.Blue, 1) })
	assert.Panics(t, func() { m.Remove(filter.Blue, -1) })
	assert.Panics(t, func() { m.Remove(filter.Category(200), 0) })
}

func Test_Entries_Returns_Copy_When_Caller_Mutates(t *testing.T) {
	t.Parallel()

	m := filter.New()
	m.Add(filter.Blue, 1)

	list := m.Entries(filter.Blue)
	list[0].FactorID = 99

	assert.Equal(t, 1, m.Entries(filter.Blue)[0].FactorID)
}

func Test_SetRange_Validates_Levels_When_Called(t *testing.T) {
	t.Parallel()

	m := filter.New()
	e, _ := m.Add(filter.Blue, 1)

	require.NoError(t, m.SetRange(e.ID, 5, 3), "inverted range is accepted")
	assert.Equal(t, 5, m.Entries(filter.Blue)[0].Min)
	assert.Equal(t, 3, m.Entries(filter.Blue)[0].Max)

	require.ErrorIs(t, m.SetRange(e.ID, 0, 3), filter.ErrLevelOutOfRange)
	require.ErrorIs(t, m.SetRange(e.ID, 1, 10), filter.ErrLevelOutOfRange)
	require.ErrorIs(t, m.SetRange(e.ID+1, 1, 2), filter.ErrEntryNotFound)
}

func Test_SetFactor_Updates_Entry_When_ID_Exists(t *testing.T) {
	t.Parallel()

	m := filter.New()
	e, _ := m.Add(filter.Green, filter.Wildcard)

	require.NoError(t, m.SetFactor(e.ID, 100101))
	assert.Equal(t, 100101, m.Entries(filter.Green)[0].FactorID)

	require.NoError(t, m.SetFactor(e.ID, -1))
	assert.True(t, m.Entries(filter.Green)[0].IsWildcard())

	require.ErrorIs(t, m.SetFactor(42, 1), filter.ErrEntryNotFound)
}

func Test_Factor_IDs_Are_Bounded_When_Spark_IDs_Would_Overflow(t *testing.T) {
	t.Parallel()

	m := filter.New()
	e, _ := m.Add(filter.Blue, filter.MaxFactorID)

	require.NoError(t, m.SetFactor(e.ID, filter.MaxFactorID))
	require.ErrorIs(t, m.SetFactor(e.ID, filter.MaxFactorID+1), filter.ErrFactorTooLarge)
	assert.Equal(t, filter.MaxFactorID, m.Entries(filter.Blue)[0].FactorID, "rejected value is not stored")

	assert.Panics(t, func() { m.Add(filter.Blue, filter.MaxFactorID+1) })

	assert.True(t, filter.ValidFactorID(filter.Wildcard))
	assert.False(t, filter.ValidFactorID(-1))
}

func Test_Find_And_RemoveEntry_Use_Stable_IDs_When_Siblings_Removed(t *testing.T) {
	t.Parallel()

	m := filter.New()
	a, _ := m.Add(filter.White, 200011)
	b, _ := m.Add(filter.White, 200021)

	cat, err := m.RemoveEntry(a.ID)
	require.NoError(t, err)
	assert.Equal(t, filter.White, cat)

	c, idx, ok := m.Find(b.ID)
	require.True(t, ok)
	assert.Equal(t, filter.White, c)
	assert.Equal(t, 0, idx)

	_, err = m.RemoveEntry(a.ID)
	require.ErrorIs(t, err, filter.ErrEntryNotFound)

	// IDs are never reused.
	next, _ := m.Add(filter.White, 200161)
	assert.Equal(t, 3, next.ID)
}

func Test_Scalar_Setters_Clamp_When_Out_Of_Range(t *testing.T) {
	t.Parallel()

	m := filter.New()
	m.SetSupport(-3, 9)
	m.SetMinWins(-1)
	m.SetMinWhiteSparks(-1)
	m.SetMinRank(0)
	m.SetMaxFollowers(-10)
	m.SetSearchIDs("  12 34  ")

	want := filter.Scalars{
		SupportCardID:  0,
		LimitBreak:     filter.MaxLimitBreak,
		MinWins:        0,
		MinWhiteSparks: 0,
		MinRank:        filter.DefaultMinRank,
		MaxFollowers:   0,
		SearchIDs:      "12 34",
	}

	assert.Empty(t, cmp.Diff(want, m.Scalars()))
}

func Test_ResetScalar_Restores_Only_That_Scalar_When_Called(t *testing.T) {
	t.Parallel()

	m := filter.New()
	m.SetSupport(30028, 2)
	m.SetMinWins(5)
	m.SetMinRank(3)

	m.ResetScalar(filter.ScalarSupport)
	m.ResetScalar(filter.ScalarMinRank)

	sc := m.Scalars()
	assert.True(t, sc.IsDefault(filter.ScalarSupport))
	assert.True(t, sc.IsDefault(filter.ScalarMinRank))
	assert.False(t, sc.IsDefault(filter.ScalarMinWins))
	assert.Equal(t, 5, sc.MinWins)
}

func Test_Clone_Is_Independent_When_Original_Mutated(t *testing.T) {
	t.Parallel()

	m := filter.New()
	e, _ := m.Add(filter.Blue, 1)
	m.Tree().Assign(ancestry.Target, 100101, nil)

	c := m.Clone()

	require.NoError(t, m.SetRange(e.ID, 4, 4))
	m.Add(filter.Blue, 2)
	m.Tree().Clear(ancestry.Target)
	m.SetMinWins(9)

	assert.Equal(t, 1, c.Len(filter.Blue))
	assert.Equal(t, 1, c.Entries(filter.Blue)[0].Min)
	assert.Equal(t, 100101, c.Tree().Node(ancestry.Target).Identity)
	assert.Equal(t, 0, c.Scalars().MinWins)
}

func Test_ParseCategory_Resolves_Names_When_Known(t *testing.T) {
	t.Parallel()

	for _, c := range filter.Categories() {
		got, err := filter.ParseCategory(" " + c.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := filter.ParseCategory("purple")
	require.ErrorIs(t, err, filter.ErrUnknownCategory)
}

func Test_Category_Properties_When_Queried(t *testing.T) {
	t.Parallel()

	tests := []struct {
		c      filter.Category
		scope  filter.Scope
		color  filter.Color
		limit  int
		single bool
	}{
		{filter.Blue, filter.ScopeGlobal, filter.ColorBlue, 9, false},
		{filter.White, filter.ScopeGlobal, filter.ColorWhite, 9, false},
		{filter.MainPink, filter.ScopeMainParent, filter.ColorPink, 3, false},
		{filter.MainGreen, filter.ScopeMainParent, filter.ColorGreen, 3, true},
		{filter.OptionalWhite, filter.ScopeOptional, filter.ColorWhite, 9, false},
		{filter.OptionalMainWhite, filter.ScopeOptional, filter.ColorWhite, 9, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.scope, tc.c.Scope(), "%s scope", tc.c)
		assert.Equal(t, tc.color, tc.c.Color(), "%s color", tc.c)
		assert.Equal(t, tc.limit, tc.c.Cap(), "%s cap", tc.c)
		assert.Equal(t, tc.single, tc.c.SingleValued(), "%s single-valued", tc.c)
	}

	assert.Equal(t, 10, filter.NumCategories)
}
