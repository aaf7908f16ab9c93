package spark_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/spark"
)

var testCatalog = filter.CatalogFunc(func(c filter.Category) []filter.Descriptor {
	switch c.Color() {
	case filter.ColorBlue:
		return twoFactors
	case filter.ColorWhite:
		return []filter.Descriptor{{ID: 200011, Text: "Right-Handed"}}
	default:
		return nil
	}
})

func compact(t *testing.T, q spark.Query) string {
	t.Helper()

	data, err := json.Marshal(q)
	require.NoError(t, err)

	return string(data)
}

func Test_Compile_Yields_Empty_Query_When_Model_Fresh(t *testing.T) {
	t.Parallel()

	q := spark.Compile(filter.New(), testCatalog)

	assert.True(t, q.IsEmpty())
	assert.Equal(t, "{}", compact(t, q))
}

func Test_Compile_Emits_Groups_Only_When_Global_Filter_Given(t *testing.T) {
	t.Parallel()

	m := filter.New()
	e, _ := m.Add(filter.Blue, 17)
	require.NoError(t, m.SetRange(e.ID, 3, 9))

	q := spark.Compile(m, testCatalog)

	assert.Equal(t, [][]int{{173, 174, 175, 176, 177, 178, 179}}, q.BlueSparks)
	assert.False(t, q.BlueNineStar, "min 3 is not a nine-star demand")
	assert.Equal(t, `{"blue_sparks":[[173,174,175,176,177,178,179]]}`, compact(t, q))
}

func Test_Compile_Sets_Threshold_When_Main_Parent_Filters_Given(t *testing.T) {
	t.Parallel()

	m := filter.New()
	a, _ := m.Add(filter.MainBlue, 10)
	b, _ := m.Add(filter.MainBlue, 20)
	require.NoError(t, m.SetRange(a.ID, 2, 9))
	require.NoError(t, m.SetRange(b.ID, 1, 1))

	q := spark.Compile(m, testCatalog)

	assert.Equal(t, []int{102, 103, 201}, q.MainBlueSparks)
	require.NotNil(t, q.MinMainBlueFactors)
	assert.Equal(t, 2, *q.MinMainBlueFactors)
}

func Test_Compile_Expands_Wildcard_Level_Major_When_Global(t *testing.T) {
	t.Parallel()

	m := filter.New()
	e, _ := m.Add(filter.Blue, filter.Wildcard)
	require.NoError(t, m.SetRange(e.ID, 8, 9))

	q := spark.Compile(m, testCatalog)

	assert.Equal(t, [][]int{{108, 208, 109, 209}}, q.BlueSparks)
	assert.False(t, q.BlueNineStar, "min 8 does not demand nine stars")

	require.NoError(t, m.SetRange(e.ID, 9, 9))

	q = spark.Compile(m, testCatalog)

	assert.Equal(t, [][]int{{109, 209}}, q.BlueSparks)
	assert.True(t, q.BlueNineStar)
}

func Test_Compile_Drops_Wildcards_When_Category_Optional(t *testing.T) {
	t.Parallel()

	m := filter.New()
	m.Add(filter.OptionalWhite, filter.Wildcard)

	assert.True(t, spark.Compile(m, testCatalog).IsEmpty())

	m.Add(filter.OptionalWhite, 200351)
	m.Add(filter.OptionalMainWhite, 200011)

	q := spark.Compile(m, testCatalog)
	assert.Equal(t, []int{200351}, q.OptionalWhiteSparks)
	assert.Equal(t, []int{200011}, q.OptionalMainWhiteSparks)
}

func Test_Compile_Omits_Scalars_When_At_Defaults(t *testing.T) {
	t.Parallel()

	m := filter.New()
	m.SetMinWins(0)
	m.SetMaxFollowers(filter.DefaultMaxFollowers)
	m.SetMinWhiteSparks(3)
	m.SetSupport(30028, 0)
	m.Tree().Assign(ancestry.Parent2, 100101, nil)

	got := compact(t, spark.Compile(m, testCatalog))

	assert.Equal(t, `{"support_card_id":30028,"min_white_count":3}`, got)
}
