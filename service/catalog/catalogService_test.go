// service/catalog/catalog_service_test.go
package catalogsvc_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ax71/Uts-Bookify/model"
	catalogrepo "github.com/ax71/Uts-Bookify/repository/catalog"
	catalogsvc "github.com/ax71/Uts-Bookify/service/catalog"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	listFn   func(ctx context.Context) ([]model.Book, error)
	detailFn func(ctx context.Context, id int64) (*model.Book, error)
	insertFn func(ctx context.Context, b model.Book) (*model.Book, error)
	updateFn func(ctx context.Context, id int64, p model.BookPatch) error
	deleteFn func(ctx context.Context, id int64) error

	listCalls int
}

func (m *repoMock) List(ctx context.Context) ([]model.Book, error) {
	m.listCalls++
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}
func (m *repoMock) Detail(ctx context.Context, id int64) (*model.Book, error) {
	return m.detailFn(ctx, id)
}
func (m *repoMock) Insert(ctx context.Context, b model.Book) (*model.Book, error) {
	return m.insertFn(ctx, b)
}
func (m *repoMock) Update(ctx context.Context, id int64, p model.BookPatch) error {
	return m.updateFn(ctx, id, p)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func seeded() *repoMock {
	return &repoMock{
		listFn: func(ctx context.Context) ([]model.Book, error) {
			return []model.Book{
				{ID: 2, Title: "Neuromancer", Author: "William Gibson", Category: "SciFi", Price: 5},
				{ID: 1, Title: "Dune", Author: "Frank Herbert", Category: "SciFi", Price: 10},
			}, nil
		},
	}
}

// --- tests ---

func TestList_LoadsOnceThenServesFromCache(t *testing.T) {
	m := seeded()
	svc := catalogsvc.New(m, nil, discard())

	ctx := context.Background()
	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, m.listCalls)
}

func TestRefresh_ReplacesCacheWholesale(t *testing.T) {
	m := seeded()
	svc := catalogsvc.New(m, nil, discard())

	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))

	m.listFn = func(ctx context.Context) ([]model.Book, error) {
		return []model.Book{{ID: 3, Title: "Snow Crash", Price: 7}}, nil
	}
	require.NoError(t, svc.Refresh(ctx))

	books, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, int64(3), books[0].ID)

	_, err = svc.ByID(1)
	require.ErrorIs(t, err, catalogsvc.ErrBookNotFound)
}

func TestRefresh_FailureKeepsOldCache(t *testing.T) {
	m := seeded()
	svc := catalogsvc.New(m, nil, discard())

	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))

	m.listFn = func(ctx context.Context) ([]model.Book, error) {
		return nil, errors.New("store down")
	}
	require.Error(t, svc.Refresh(ctx))

	books, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
}

func TestByIDAndPriceOf(t *testing.T) {
	svc := catalogsvc.New(seeded(), nil, discard())
	require.NoError(t, svc.Refresh(context.Background()))

	b, err := svc.ByID(1)
	require.NoError(t, err)
	require.Equal(t, "Dune", b.Title)

	p, err := svc.PriceOf(2)
	require.NoError(t, err)
	require.Equal(t, 5.0, p)

	_, err = svc.PriceOf(99)
	require.ErrorIs(t, err, catalogsvc.ErrBookNotFound)
}

func TestSearch(t *testing.T) {
	svc := catalogsvc.New(seeded(), nil, discard())
	ctx := context.Background()

	byTitle, err := svc.Search(ctx, "dune", "")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	require.Equal(t, "Dune", byTitle[0].Title)

	byAuthor, err := svc.Search(ctx, "gibson", "")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)

	byCategory, err := svc.Search(ctx, "", "scifi")
	require.NoError(t, err)
	require.Len(t, byCategory, 2)

	none, err := svc.Search(ctx, "dune", "Cooking")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestCreate_WritesThroughAndPrepends(t *testing.T) {
	m := seeded()
	m.insertFn = func(ctx context.Context, b model.Book) (*model.Book, error) {
		b.ID = 9
		return &b, nil
	}
	svc := catalogsvc.New(m, nil, discard())
	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))

	created, err := svc.Create(ctx, model.Book{Title: "Hyperion", Price: 8})
	require.NoError(t, err)
	require.Equal(t, int64(9), created.ID)

	books, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(9), books[0].ID)

	cached, err := svc.ByID(9)
	require.NoError(t, err)
	require.Equal(t, "Hyperion", cached.Title)
}

func TestCreate_RejectsBadPayload(t *testing.T) {
	svc := catalogsvc.New(seeded(), nil, discard())

	_, err := svc.Create(context.Background(), model.Book{Title: "", Price: 1})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), model.Book{Title: "x", Price: -1})
	require.Error(t, err)
}

func TestUpdate_PatchesCacheInPlace(t *testing.T) {
	m := seeded()
	m.updateFn = func(ctx context.Context, id int64, p model.BookPatch) error { return nil }
	svc := catalogsvc.New(m, nil, discard())
	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))

	price := 12.5
	updated, err := svc.Update(ctx, 1, model.BookPatch{Price: &price})
	require.NoError(t, err)
	require.Equal(t, 12.5, updated.Price)
	require.Equal(t, "Dune", updated.Title)

	cached, err := svc.ByID(1)
	require.NoError(t, err)
	require.Equal(t, 12.5, cached.Price)
}

func TestUpdate_UncachedReadsRowBack(t *testing.T) {
	m := seeded()
	m.updateFn = func(ctx context.Context, id int64, p model.BookPatch) error { return nil }
	m.detailFn = func(ctx context.Context, id int64) (*model.Book, error) {
		return &model.Book{ID: id, Title: "Dune", Price: 12.5}, nil
	}
	// no Refresh: the cache has never loaded this book
	svc := catalogsvc.New(m, nil, discard())

	price := 12.5
	updated, err := svc.Update(context.Background(), 1, model.BookPatch{Price: &price})
	require.NoError(t, err)
	require.Equal(t, 12.5, updated.Price)

	cached, err := svc.ByID(1)
	require.NoError(t, err)
	require.Equal(t, "Dune", cached.Title)
}

func TestUpdate_UncachedGoneBetweenWriteAndReadBack(t *testing.T) {
	m := seeded()
	m.updateFn = func(ctx context.Context, id int64, p model.BookPatch) error { return nil }
	m.detailFn = func(ctx context.Context, id int64) (*model.Book, error) {
		return nil, catalogrepo.ErrNotFound
	}
	svc := catalogsvc.New(m, nil, discard())

	price := 12.5
	_, err := svc.Update(context.Background(), 1, model.BookPatch{Price: &price})
	require.ErrorIs(t, err, catalogsvc.ErrBookNotFound)
}

func TestUpdate_MissingBook(t *testing.T) {
	m := seeded()
	m.updateFn = func(ctx context.Context, id int64, p model.BookPatch) error {
		return catalogrepo.ErrNotFound
	}
	svc := catalogsvc.New(m, nil, discard())

	price := 1.0
	_, err := svc.Update(context.Background(), 99, model.BookPatch{Price: &price})
	require.ErrorIs(t, err, catalogsvc.ErrBookNotFound)
}

func TestDelete_RemovesFromCache(t *testing.T) {
	m := seeded()
	m.deleteFn = func(ctx context.Context, id int64) error { return nil }
	svc := catalogsvc.New(m, nil, discard())
	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))

	require.NoError(t, svc.Delete(ctx, 1))

	_, err := svc.ByID(1)
	require.ErrorIs(t, err, catalogsvc.ErrBookNotFound)

	books, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
}

func TestDelete_MissingBook(t *testing.T) {
	m := seeded()
	m.deleteFn = func(ctx context.Context, id int64) error { return catalogrepo.ErrNotFound }
	svc := catalogsvc.New(m, nil, discard())

	require.ErrorIs(t, svc.Delete(context.Background(), 99), catalogsvc.ErrBookNotFound)
}
