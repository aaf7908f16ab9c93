package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/catalog"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
)

func Test_Default_Indexes_Factors_By_Colour_When_Loaded(t *testing.T) {
	t.Parallel()

	md := catalog.Default()

	blue := md.Lookup(filter.Blue)
	require.NotEmpty(t, blue)
	assert.Equal(t, filter.Descriptor{ID: 1, Text: "Speed"}, blue[0])

	// Main-parent and global categories of one colour share descriptors.
	assert.Equal(t, md.Lookup(filter.White), md.Lookup(filter.OptionalMainWhite))

	p, ok := md.Character(100701)
	require.True(t, ok)
	assert.Equal(t, "Gold Ship", p.Name)

	name, ok := md.SupportCard(30028)
	require.True(t, ok)
	assert.Equal(t, "Kitasan Black", name)
}

func Test_Nil_MasterData_Is_Empty_When_Queried(t *testing.T) {
	t.Parallel()

	var md *catalog.MasterData

	assert.Nil(t, md.Lookup(filter.Blue))
	assert.Nil(t, md.Characters())

	_, ok := md.Character(100101)
	assert.False(t, ok)

	_, ok = md.SupportCard(1)
	assert.False(t, ok)
}

func Test_Parse_Rejects_Data_When_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "not yaml", data: "factors: [unterminated"},
		{name: "unknown colour", data: "factors:\n  purple:\n    - {id: 1, text: X}\n"},
		{name: "zero factor id", data: "factors:\n  blue:\n    - {id: 0, text: X}\n"},
		{name: "duplicate factor id", data: "factors:\n  blue:\n    - {id: 1, text: X}\n    - {id: 1, text: Y}\n"},
		{name: "negative character id", data: "characters:\n  - {id: -1, name: X}\n"},
		{name: "zero support id", data: "support_cards:\n  - {id: 0, name: X}\n"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := catalog.Parse([]byte(tc.data))
			require.ErrorIs(t, err, catalog.ErrCatalogInvalid)
		})
	}
}

func Test_Load_Reads_File_When_Path_Given(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "master.yaml")
	require.NoError(t, os.WriteFile(path, []byte("factors:\n  blue:\n    - {id: 7, text: Acceleration}\n"), 0o600))

	md, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []filter.Descriptor{{ID: 7, Text: "Acceleration"}}, md.Lookup(filter.MainBlue))
	assert.Empty(t, md.Lookup(filter.Pink))

	_, err = catalog.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, catalog.ErrCatalogRead)

	md, err = catalog.Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, md.Lookup(filter.Pink), "empty path uses the embedded data")
}

func Test_ResolveFactor_Accepts_IDs_Names_And_Any_When_Valid(t *testing.T) {
	t.Parallel()

	md := catalog.Default()

	tests := []struct {
		input string
		want  int
	}{
		{input: "speed", want: 1},
		{input: "  Stamina ", want: 2},
		{input: "42", want: 42},
		{input: "any", want: filter.Wildcard},
		{input: "", want: filter.Wildcard},
	}

	for _, tc := range tests {
		got, err := md.ResolveFactor(filter.Blue, tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}

	_, err := md.ResolveFactor(filter.Pink, "Speed")
	require.ErrorIs(t, err, catalog.ErrUnknownFactor, "names resolve within the category colour only")

	_, err = md.ResolveFactor(filter.Blue, "-3")
	require.ErrorIs(t, err, catalog.ErrUnknownFactor)

	_, err = md.ResolveFactor(filter.Blue, "1844674407370955161")
	require.ErrorIs(t, err, catalog.ErrUnknownFactor, "ids that overflow spark ids are rejected")
}

func Test_ResolveCharacter_Prefers_Lowest_ID_When_Name_Shared(t *testing.T) {
	t.Parallel()

	data := "characters:\n  - {id: 300, name: Twin}\n  - {id: 200, name: twin}\n  - {id: 100, name: Other}\n"

	md, err := catalog.Parse([]byte(data))
	require.NoError(t, err)

	got, err := md.ResolveCharacter("TWIN")
	require.NoError(t, err)
	assert.Equal(t, 200, got)

	got, err = md.ResolveCharacter("555501")
	require.NoError(t, err)
	assert.Equal(t, 555501, got, "numeric identities need not be in the catalog")

	_, err = md.ResolveCharacter("Nobody")
	require.ErrorIs(t, err, catalog.ErrUnknownCharacter)

	_, err = md.ResolveCharacter("0")
	require.ErrorIs(t, err, catalog.ErrUnknownCharacter)
}
