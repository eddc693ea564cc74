package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "bookshelf_backend/internals/features/books/model"
	"bookshelf_backend/internals/features/reading/dto"
	"bookshelf_backend/internals/features/reading/model"
	helper "bookshelf_backend/internals/helpers"
	"bookshelf_backend/internals/helpers/dbtime"
)

type books map[string]bookModel.Book

func (b books) Find(_ context.Context, id string) (*bookModel.Book, error) {
	bk, ok := b[id]
	if !ok {
		return nil, helper.BookNotFound(id)
	}
	return &bk, nil
}

type memStore struct {
	mu   sync.Mutex
	rows map[string]model.ReadingStatus
	// raceOnce makes the next Find miss a row that Create then collides with
	raceOnce *model.ReadingStatus
}

func newMemStore() *memStore { return &memStore{rows: map[string]model.ReadingStatus{}} }

func key(userID, bookID string) string { return userID + "|" + bookID }

func (m *memStore) Find(_ context.Context, userID, bookID string, _ bool) (*model.ReadingStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raceOnce != nil {
		return nil, nil
	}
	r, ok := m.rows[key(userID, bookID)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memStore) Create(_ context.Context, row *model.ReadingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raceOnce != nil {
		m.rows[key(m.raceOnce.UserID, m.raceOnce.BookID)] = *m.raceOnce
		m.raceOnce = nil
	}
	k := key(row.UserID, row.BookID)
	if _, ok := m.rows[k]; ok {
		return model.ErrAlreadyTracked
	}
	m.rows[k] = *row
	return nil
}

func (m *memStore) Save(_ context.Context, row *model.ReadingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[key(row.UserID, row.BookID)] = *row
	return nil
}

func (m *memStore) Delete(_ context.Context, userID, bookID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(userID, bookID)
	if _, ok := m.rows[k]; !ok {
		return helper.ReadingStatusNotFound()
	}
	delete(m.rows, k)
	return nil
}

func (m *memStore) List(_ context.Context, userID string, offset, limit int) ([]model.ReadingStatus, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ReadingStatus
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func intp(v int) *int { return &v }

var (
	clock0 = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	lib    = books{
		"p300":    {ID: "p300", PageCount: intp(300)},
		"unknown": {ID: "unknown"},
	}
)

func newSvc(store *memStore, at time.Time) *ReadingService {
	s := NewReadingService(lib, store)
	s.now = func() time.Time { return at }
	return s
}

func TestUpsert_PageDerivesProgress(t *testing.T) {
	row, created, err := newSvc(newMemStore(), clock0).Upsert(context.Background(), "u1", "p300",
		dto.UpsertReadingStatusRequest{Status: model.CurrentlyReading, CurrentPage: intp(150)})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 150, row.CurrentPage)
	assert.Equal(t, 50, row.ProgressPercentage)
}

func TestUpsert_ProgressDerivesPage(t *testing.T) {
	row, _, err := newSvc(newMemStore(), clock0).Upsert(context.Background(), "u1", "p300",
		dto.UpsertReadingStatusRequest{Status: model.CurrentlyReading, ProgressPercentage: intp(75)})
	require.NoError(t, err)
	assert.Equal(t, 225, row.CurrentPage)
	assert.Equal(t, 75, row.ProgressPercentage)
}

func TestUpsert_UnknownPageCountStoresAsGiven(t *testing.T) {
	row, _, err := newSvc(newMemStore(), clock0).Upsert(context.Background(), "u1", "unknown",
		dto.UpsertReadingStatusRequest{Status: model.CurrentlyReading, CurrentPage: intp(40)})
	require.NoError(t, err)
	assert.Equal(t, 40, row.CurrentPage)
	assert.Equal(t, 0, row.ProgressPercentage)
}

func TestUpsert_PageBeyondEndClampsProgress(t *testing.T) {
	row, _, err := newSvc(newMemStore(), clock0).Upsert(context.Background(), "u1", "p300",
		dto.UpsertReadingStatusRequest{Status: model.Read, CurrentPage: intp(320)})
	require.NoError(t, err)
	assert.Equal(t, 100, row.ProgressPercentage)
}

func TestUpsert_StartDateSetOnceAndKept(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	row, _, err := newSvc(store, clock0).Upsert(ctx, "u1", "p300", dto.UpsertReadingStatusRequest{Status: model.CurrentlyReading})
	require.NoError(t, err)
	require.NotNil(t, row.StartDate)
	assert.Equal(t, clock0, *row.StartDate)
	assert.Nil(t, row.FinishDate)

	later := clock0.Add(72 * time.Hour)
	row, created, err := newSvc(store, later).Upsert(ctx, "u1", "p300", dto.UpsertReadingStatusRequest{Status: model.DidNotFinish})
	require.NoError(t, err)
	assert.False(t, created)
	require.NotNil(t, row.StartDate)
	assert.Equal(t, clock0, *row.StartDate, "a later status change keeps the start date")

	row, _, err = newSvc(store, later).Upsert(ctx, "u1", "p300", dto.UpsertReadingStatusRequest{Status: model.CurrentlyReading})
	require.NoError(t, err)
	assert.Equal(t, clock0, *row.StartDate, "re-entering currently_reading keeps it too")

	row, _, err = newSvc(store, later).Upsert(ctx, "u1", "p300", dto.UpsertReadingStatusRequest{Status: model.Read})
	require.NoError(t, err)
	require.NotNil(t, row.FinishDate)
	assert.Equal(t, later, *row.FinishDate)
}

func TestUpsert_CallerDatesWin(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	start, err := dbtime.Parse("2025-05-01")
	require.NoError(t, err)

	row, _, err := newSvc(store, clock0).Upsert(ctx, "u1", "p300",
		dto.UpsertReadingStatusRequest{Status: model.CurrentlyReading, StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, start.Time, *row.StartDate)

	earlier, err := dbtime.Parse("2025-04-15")
	require.NoError(t, err)
	row, _, err = newSvc(store, clock0).Upsert(ctx, "u1", "p300",
		dto.UpsertReadingStatusRequest{Status: model.CurrentlyReading, StartDate: &earlier})
	require.NoError(t, err)
	assert.Equal(t, earlier.Time, *row.StartDate, "an explicit value overwrites")
}

func TestUpsert_KeepsOmittedFields(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	review := "loved it"

	_, _, err := newSvc(store, clock0).Upsert(ctx, "u1", "p300",
		dto.UpsertReadingStatusRequest{Status: model.CurrentlyReading, CurrentPage: intp(30), Rating: intp(4), Review: &review})
	require.NoError(t, err)

	row, _, err := newSvc(store, clock0).Upsert(ctx, "u1", "p300", dto.UpsertReadingStatusRequest{Status: model.CurrentlyReading})
	require.NoError(t, err)
	assert.Equal(t, 30, row.CurrentPage)
	assert.Equal(t, 10, row.ProgressPercentage)
	assert.Equal(t, 4, *row.Rating)
	assert.Equal(t, "loved it", *row.Review)
}

func TestUpsert_LostCreateRaceBecomesUpdate(t *testing.T) {
	store := newMemStore()
	earlier := clock0.Add(-time.Hour)
	store.raceOnce = &model.ReadingStatus{UserID: "u1", BookID: "p300", Status: model.WantToRead, StartDate: &earlier, CreatedAt: earlier}

	row, created, err := newSvc(store, clock0).Upsert(context.Background(), "u1", "p300",
		dto.UpsertReadingStatusRequest{Status: model.CurrentlyReading, CurrentPage: intp(60)})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, model.CurrentlyReading, row.Status)
	assert.Equal(t, 20, row.ProgressPercentage)
	assert.Equal(t, earlier, *row.StartDate, "the winner's start date survives")
}

func TestUpsert_BookNotFound(t *testing.T) {
	_, _, err := newSvc(newMemStore(), clock0).Upsert(context.Background(), "u1", "ghost", dto.UpsertReadingStatusRequest{Status: model.Read})
	assert.True(t, errors.Is(err, helper.ErrBookNotFound))
}

func TestGetAndRemove(t *testing.T) {
	store := newMemStore()
	svc := newSvc(store, clock0)
	ctx := context.Background()

	_, err := svc.Get(ctx, "u1", "p300")
	assert.True(t, errors.Is(err, helper.ErrReadingStatusNotFound))
	assert.True(t, errors.Is(svc.Remove(ctx, "u1", "p300"), helper.ErrReadingStatusNotFound))

	_, _, err = svc.Upsert(ctx, "u1", "p300", dto.UpsertReadingStatusRequest{Status: model.WantToRead})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "u1", "p300")
	require.NoError(t, err)
	assert.Equal(t, model.WantToRead, got.Status)

	require.NoError(t, svc.Remove(ctx, "u1", "p300"))
	_, err = svc.Get(ctx, "u1", "p300")
	assert.True(t, errors.Is(err, helper.ErrReadingStatusNotFound))
}
