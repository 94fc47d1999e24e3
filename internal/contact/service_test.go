package contact

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedTime = time.Date(2025, 8, 20, 9, 30, 0, 0, time.UTC)

func newTestService(store Store) *Service {
	s := NewService(store, zap.NewNop())
	s.now = func() time.Time { return fixedTime }
	return s
}

type failingStore struct{ MemoryStore }

func (*failingStore) Save(context.Context, Record) error { return errors.New("disk full") }

func TestService_Submit(t *testing.T) {
	store := NewMemoryStore()
	svc := newTestService(store)
	id := uuid.MustParse("7b0c8a2e-5d1f-4a3b-9c6e-2f4d8e1a0b3c")
	svc.newID = func() uuid.UUID { return id }

	in := validInquiry()
	in.Name = "  Jane Doe  "
	receipt, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, Receipt{ID: id, ReceivedAt: fixedTime}, receipt)

	recs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Jane Doe", recs[0].Name, "stored inquiries are normalized")
	assert.Equal(t, receipt, recs[0].Receipt)
}

func TestService_SubmitInvalid(t *testing.T) {
	store := NewMemoryStore()
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), Inquiry{Name: "Jane"})
	assert.True(t, errors.Is(err, ErrInvalid))

	recs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recs, "invalid inquiries are not stored")
}

func TestService_SubmitStoreFailure(t *testing.T) {
	svc := newTestService(&failingStore{})

	_, err := svc.Submit(context.Background(), validInquiry())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "disk full")
}

func TestService_DuplicatesAreKept(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, nil)

	a, err := svc.Submit(context.Background(), validInquiry())
	require.NoError(t, err)
	b, err := svc.Submit(context.Background(), validInquiry())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	recs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	for i := range 3 {
		in := validInquiry()
		in.Name = []string{"first", "second", "third"}[i]
		rec := Record{
			Receipt: Receipt{ID: uuid.New(), ReceivedAt: fixedTime.Add(time.Duration(i) * time.Minute)},
			Inquiry: in,
		}
		require.NoError(t, store.Save(ctx, rec))
	}

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Name)
	assert.Equal(t, "first", all[2].Name)
	assert.Equal(t, ProjectResidential, all[0].ProjectType)
	assert.True(t, all[0].ReceivedAt.Equal(fixedTime.Add(2*time.Minute)))

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "second", limited[1].Name)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewMemoryStore().Save(ctx, Record{}), context.Canceled)
}

func TestSQLStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "armour.db")
	store, err := OpenSQLStore(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	testStore(t, store)
	require.NoError(t, store.Close())

	reopened, err := OpenSQLStore(context.Background(), path)
	require.NoError(t, err)
	defer reopened.Close()
	recs, err := reopened.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recs, 3, "inquiries survive reopening")
}

func TestSQLStore_DuplicateID(t *testing.T) {
	store, err := OpenSQLStore(context.Background(), ":memory:")
	require.NoError(t, err)
	defer store.Close()

	rec := Record{Receipt: Receipt{ID: uuid.New(), ReceivedAt: fixedTime}, Inquiry: validInquiry()}
	require.NoError(t, store.Save(context.Background(), rec))
	assert.Error(t, store.Save(context.Background(), rec))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, StoreMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, StoreSQLite, filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, "postgres", "")
	assert.ErrorContains(t, err, `unknown contact store "postgres"`)

	_, err = Open(ctx, StoreSQLite, "")
	assert.Error(t, err)
}
