package session_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/catalog"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/session"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/spark"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/token"
)

type recorder struct {
	queries []spark.Query
}

func (r *recorder) Emit(q spark.Query) error {
	r.queries = append(r.queries, q)

	return nil
}

func newSession(t *testing.T) (*session.Session, *recorder) {
	t.Helper()

	rec := &recorder{}

	return session.New(catalog.Default(), session.WithEmitter(rec)), rec
}

func Test_Flush_Does_Nothing_When_Nothing_Pending(t *testing.T) {
	t.Parallel()

	s, rec := newSession(t)

	emitted, err := s.Flush()
	require.NoError(t, err)
	assert.False(t, emitted)
	assert.Empty(t, rec.queries)
}

func Test_Add_Marks_Pending_Only_When_Factor_Concrete(t *testing.T) {
	t.Parallel()

	s, rec := newSession(t)

	s.Add(filter.White, filter.Wildcard)
	assert.False(t, s.Pending(), "placeholder row does not change the query")

	e := s.Add(filter.Blue, 1)
	assert.True(t, s.Pending())

	emitted, err := s.Flush()
	require.NoError(t, err)
	assert.True(t, emitted)
	assert.False(t, s.Pending())

	require.Len(t, rec.queries, 1)
	assert.Equal(t, [][]int{{11, 12, 13, 14, 15, 16, 17, 18, 19}}, rec.queries[0].BlueSparks)

	require.NoError(t, s.SetRange(e.ID, 9, 9))
	assert.True(t, s.Pending())

	require.ErrorIs(t, s.SetRange(e.ID, 0, 9), filter.ErrLevelOutOfRange)
	require.ErrorIs(t, s.SetFactor(999, 2), filter.ErrEntryNotFound)
}

func Test_Remove_Marks_Pending_When_Row_Is_Placeholder(t *testing.T) {
	t.Parallel()

	s, rec := newSession(t)
	s.Add(filter.OptionalWhite, filter.Wildcard)

	s.Remove(filter.OptionalWhite, 0)
	assert.True(t, s.Pending())

	_, err := s.Flush()
	require.NoError(t, err)
	require.Len(t, rec.queries, 1)
	assert.True(t, rec.queries[0].IsEmpty())
}

func Test_Flush_Keeps_Pending_When_Emitter_Fails(t *testing.T) {
	t.Parallel()

	boom := errors.New("backend down")
	s := session.New(catalog.Default(), session.WithEmitter(session.EmitterFunc(func(spark.Query) error {
		return boom
	})))

	s.Add(filter.Pink, 11)

	emitted, err := s.Flush()
	require.ErrorIs(t, err, boom)
	assert.False(t, emitted)
	assert.True(t, s.Pending())
}

func Test_Assign_Resolves_Through_Catalog_When_Known(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	n := s.Assign(ancestry.Parent1, 100701)
	assert.Equal(t, "Gold Ship", n.Name)
	assert.True(t, s.Pending())

	q := s.Query()
	require.NotNil(t, q.MainParentID)
	assert.Equal(t, 100701, *q.MainParentID)

	s.Clear(ancestry.Parent1)
	assert.Nil(t, s.Query().MainParentID)
}

func Test_RemoveChip_Removes_Only_That_Unit_When_ID_Known(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	s.Add(filter.Blue, 1)
	s.UpdateScalars(func(m *filter.Model) { m.SetMinWins(4) })

	_, err := s.Flush()
	require.NoError(t, err)

	c, err := s.RemoveChip("scalar:min-wins")
	require.NoError(t, err)
	assert.Equal(t, "Wins ≥4", c.Text())
	assert.True(t, s.Pending())

	chips := s.Chips()
	require.Len(t, chips, 1)
	assert.Equal(t, "f1", chips[0].ID)

	_, err = s.RemoveChip("scalar:min-wins")
	require.ErrorIs(t, err, session.ErrChipNotFound)
}

func Test_Restore_Leaves_Model_When_Token_Invalid(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	s.Add(filter.Blue, 2)
	_, _ = s.Flush()

	before := s.Encode()

	err := s.Restore("%%%")
	require.ErrorIs(t, err, session.ErrRestoreFailed)
	require.ErrorIs(t, err, token.ErrInvalidToken)

	assert.Equal(t, before, s.Encode())
	assert.False(t, s.Pending())
}

func Test_Restore_Replaces_Model_When_Token_Valid(t *testing.T) {
	t.Parallel()

	src, _ := newSession(t)
	src.Add(filter.MainWhite, 200431)
	src.Assign(ancestry.Target, 100101)
	src.UpdateScalars(func(m *filter.Model) { m.SetSupport(30028, 3) })

	dst, rec := newSession(t)
	dst.Add(filter.Pink, 11)

	require.NoError(t, dst.Restore(src.Encode()))
	assert.True(t, dst.Pending())

	_, err := dst.Flush()
	require.NoError(t, err)
	require.Len(t, rec.queries, 1)
	assert.Equal(t, src.Query(), rec.queries[0])
	assert.Equal(t, "Special Week", dst.Model().Tree().Node(ancestry.Target).Name)
}

func Test_Reset_Restores_Defaults_When_Called(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	s.Add(filter.Green, 100101)
	s.ResetScalar(filter.ScalarMinRank)
	s.Reset()

	assert.Empty(t, s.Chips())
	assert.True(t, s.Pending())
}

func Test_Model_Returns_Copy_When_Caller_Mutates(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	s := session.New(nil, session.WithID(id))
	assert.Equal(t, id, s.ID())

	m := s.Model()
	m.Add(filter.Blue, 1)

	assert.Equal(t, 0, s.Model().Len(filter.Blue))
	assert.False(t, s.Pending())
}
