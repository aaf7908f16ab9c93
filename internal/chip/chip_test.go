package chip_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/chip"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
)

type fakeLabels struct{}

func (fakeLabels) Lookup(c filter.Category) []filter.Descriptor {
	if c.Color() == filter.ColorBlue {
		return []filter.Descriptor{{ID: 1, Text: "Speed"}, {ID: 2, Text: "Stamina"}}
	}

	return nil
}

func (fakeLabels) Character(id int) (ancestry.Profile, bool) {
	if id == 100101 {
		return ancestry.Profile{ID: id, Name: "Special Week"}, true
	}

	return ancestry.Profile{}, false
}

func (fakeLabels) SupportCard(id int) (string, bool) {
	if id == 30028 {
		return "Kitasan Black", true
	}

	return "", false
}

func texts(chips []chip.Chip) []string {
	out := make([]string, 0, len(chips))
	for _, c := range chips {
		out = append(out, c.ID+" "+c.Text())
	}

	return out
}

func Test_Project_Lists_Nothing_When_Model_Fresh(t *testing.T) {
	t.Parallel()

	assert.Empty(t, chip.Project(filter.New(), fakeLabels{}))
}

func Test_Project_Lists_Every_Non_Default_Unit_When_Model_Populated(t *testing.T) {
	t.Parallel()

	m := filter.New()
	speed, _ := m.Add(filter.Blue, 1)
	require.NoError(t, m.SetRange(speed.ID, 3, 9))
	m.Add(filter.MainBlue, filter.Wildcard)
	m.Add(filter.MainBlue, 7)
	m.Add(filter.OptionalWhite, filter.Wildcard)
	m.Add(filter.OptionalWhite, 200351)
	m.Tree().Assign(ancestry.Target, 100101, nil)
	m.Tree().Assign(ancestry.Parent2, 100201, nil)
	m.SetSupport(30028, 2)
	m.SetMaxFollowers(100)

	want := []string{
		"f1 blue: Speed 3+",
		"f2 main-blue: Any 1-3",
		"f3 main-blue: ID: 7 1-3",
		"f5 optional-white: ID: 200351",
		"node:target target: Special Week",
		"node:p2 p2: ID: 100201",
		"scalar:support Kitasan Black LB 2+",
		"scalar:max-followers Followers ≤100",
	}

	assert.Equal(t, want, texts(chip.Project(m, fakeLabels{})))
}

func Test_Project_Falls_Back_To_IDs_When_Labels_Nil(t *testing.T) {
	t.Parallel()

	m := filter.New()
	m.Add(filter.Blue, 1)
	m.SetSupport(30028, 0)

	want := []string{"f1 blue: ID: 1 1-9", "scalar:support ID: 30028"}
	assert.Equal(t, want, texts(chip.Project(m, nil)))
}

func Test_FormatRange_Renders_Shorthand_When_Range_Matches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lo, hi, limit int
		want          string
	}{
		{3, 3, 9, "3"},
		{4, 9, 9, "4+"},
		{1, 5, 9, "≤5"},
		{2, 5, 9, "2-5"},
		{1, 9, 9, "1-9"},
		{2, 9, 3, "2+"},
		{1, 9, 3, "1-3"},
		{3, 9, 3, "3"},
		{5, 3, 9, "5-3"},
	}

	for _, tc := range tests {
		if got := chip.FormatRange(tc.lo, tc.hi, tc.limit); got != tc.want {
			t.Errorf("FormatRange(%d, %d, %d)=%q, want=%q", tc.lo, tc.hi, tc.limit, got, tc.want)
		}
	}
}

func Test_ApplyRemoval_Undoes_Only_That_Unit_When_Chip_Removed(t *testing.T) {
	t.Parallel()

	m := filter.New()
	m.Add(filter.Pink, 11)
	m.Add(filter.Pink, 12)
	m.Tree().Assign(ancestry.Parent1, 100101, nil)
	m.Tree().Assign(ancestry.Parent1Grandparent1, 100201, nil)
	m.SetMinWins(3)

	chips := chip.Project(m, fakeLabels{})

	first, ok := chip.Find(chips, "f1")
	require.True(t, ok)
	require.NoError(t, chip.ApplyRemoval(m, first))

	// Sibling keeps its chip ID after the removal.
	_, ok = chip.Find(chip.Project(m, fakeLabels{}), "f2")
	assert.True(t, ok)

	node, ok := chip.Find(chips, "node:p1")
	require.True(t, ok)
	require.NoError(t, chip.ApplyRemoval(m, node))
	assert.True(t, m.Tree().IsEmpty(), "clearing p1 clears its grandparents")

	wins, ok := chip.Find(chips, "scalar:min-wins")
	require.True(t, ok)
	require.NoError(t, chip.ApplyRemoval(m, wins))

	assert.Equal(t, []string{"f2 pink: ID: 12 1-9"}, texts(chip.Project(m, fakeLabels{})))

	require.ErrorIs(t, chip.ApplyRemoval(m, first), filter.ErrEntryNotFound)
}

func Test_ApplyRemoval_Keeps_Other_Chips_When_Any_Chip_Removed(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		m := filter.New()

		for iter, count := 0, rapid.IntRange(0, 6).Draw(t, "filters"); iter < count; iter++ {
			c := filter.Category(rapid.IntRange(0, filter.NumCategories-1).Draw(t, "category"))
			m.Add(c, rapid.IntRange(0, 50).Draw(t, "factor"))
		}

		for _, s := range ancestry.Slots() {
			if rapid.Bool().Draw(t, "filled") {
				m.Tree().Assign(s, rapid.IntRange(1001, 1010).Draw(t, "family")*100+1, nil)
			}
		}

		m.SetMinWins(rapid.IntRange(0, 3).Draw(t, "wins"))
		m.SetSearchIDs(rapid.SampledFrom([]string{"", "42"}).Draw(t, "search"))

		before := chip.Project(m, nil)
		if len(before) == 0 {
			return
		}

		target := rapid.SampledFrom(before).Draw(t, "chip")
		if err := chip.ApplyRemoval(m, target); err != nil {
			t.Fatalf("remove %s: %v", target.ID, err)
		}

		after := chip.Project(m, nil)
		if _, ok := chip.Find(after, target.ID); ok {
			t.Fatalf("chip %s still present after removal", target.ID)
		}

		// Only a node chip can take other chips with it: its subtree.
		for _, c := range before {
			if c.ID == target.ID {
				continue
			}

			if _, ok := chip.Find(after, c.ID); ok {
				continue
			}

			if target.Kind != chip.KindNode || c.Kind != chip.KindNode {
				t.Fatalf("removing %s also removed %s", target.ID, c.ID)
			}
		}
	})
}

func Test_Project_Is_Stable_When_Called_Twice(t *testing.T) {
	t.Parallel()

	m := filter.New()
	m.Add(filter.White, 200011)
	m.Add(filter.MainPink, filter.Wildcard)
	m.Tree().Assign(ancestry.Parent1Grandparent2, 100101, nil)
	m.SetSearchIDs("123")

	first := chip.Project(m, fakeLabels{})
	second := chip.Project(m, fakeLabels{})

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("projection changed between calls (-first +second):\n%s", diff)
	}
}
