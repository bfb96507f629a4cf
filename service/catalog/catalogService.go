package catalogsvc

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/ax71/Uts-Bookify/model"
	bookinforepo "github.com/ax71/Uts-Bookify/repository/bookinfo"
	catalogrepo "github.com/ax71/Uts-Bookify/repository/catalog"
	"golang.org/x/sync/singleflight"
)

var ErrBookNotFound = errors.New("book not found")

type Repo interface {
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Insert(ctx context.Context, b model.Book) (*model.Book, error)
	Update(ctx context.Context, id int64, p model.BookPatch) error
	Delete(ctx context.Context, id int64) error
}

// Service mirrors the book catalog in memory. Reads are served from the
// cache; writes go to the store first and patch the cache on success.
type Service interface {
	Refresh(ctx context.Context) error
	List(ctx context.Context) ([]model.Book, error)
	Search(ctx context.Context, query, category string) ([]model.Book, error)
	Detail(ctx context.Context, bookID int64) (*model.Book, error)
	ByID(bookID int64) (*model.Book, error)
	PriceOf(bookID int64) (float64, error)

	Create(ctx context.Context, b model.Book) (*model.Book, error)
	Update(ctx context.Context, id int64, p model.BookPatch) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	r    Repo
	info bookinforepo.Repo // optional metadata enrichment, may be nil
	log  *slog.Logger

	sfg singleflight.Group // collapses concurrent refreshes

	mu     sync.RWMutex
	byID   map[int64]model.Book
	books  []model.Book // store order: created_at DESC
	loaded bool
}

func New(r Repo, info bookinforepo.Repo, log *slog.Logger) Service {
	return &service{r: r, info: info, log: log, byID: map[int64]model.Book{}}
}

// Refresh fetches the full catalog and replaces the cache wholesale,
// last fetch wins.
func (s *service) Refresh(ctx context.Context) error {
	_, err, _ := s.sfg.Do("refresh", func() (interface{}, error) {
		books, err := s.r.List(ctx)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]model.Book, len(books))
		for _, b := range books {
			byID[b.ID] = b
		}

		s.mu.Lock()
		s.books = books
		s.byID = byID
		s.loaded = true
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

func (s *service) List(ctx context.Context) ([]model.Book, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Book, len(s.books))
	copy(out, s.books)
	return out, nil
}

// Search filters the cached catalog the way the storefront does: substring
// match on title/author/category/description, optional exact category.
func (s *service) Search(ctx context.Context, query, category string) ([]model.Book, error) {
	books, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		if category != "" && !strings.EqualFold(b.Category, category) {
			continue
		}
		if q != "" && !matches(b, q) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func matches(b model.Book, q string) bool {
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q) ||
		strings.Contains(strings.ToLower(b.Category), q) ||
		strings.Contains(strings.ToLower(b.Description), q)
}

// Detail loads the catalog on first use, then answers from the cache.
func (s *service) Detail(ctx context.Context, bookID int64) (*model.Book, error) {
	if _, err := s.List(ctx); err != nil {
		return nil, err
	}
	return s.ByID(bookID)
}

func (s *service) ByID(bookID int64) (*model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.byID[bookID]
	if !ok {
		return nil, ErrBookNotFound
	}
	return &b, nil
}

func (s *service) PriceOf(bookID int64) (float64, error) {
	b, err := s.ByID(bookID)
	if err != nil {
		return 0, err
	}
	return b.Price, nil
}

func (s *service) Create(ctx context.Context, b model.Book) (*model.Book, error) {
	if b.Title == "" || b.Price < 0 || b.Stock < 0 {
		return nil, errors.New("invalid payload")
	}

	s.enrich(ctx, &b)

	created, err := s.r.Insert(ctx, b)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.byID[created.ID] = *created
	// newest first, matching store order
	s.books = append([]model.Book{*created}, s.books...)
	s.mu.Unlock()
	return created, nil
}

// enrich backfills author/description from the external books API.
// Best effort only: failures are logged and the create proceeds.
func (s *service) enrich(ctx context.Context, b *model.Book) {
	if s.info == nil || (b.Author != "" && b.Description != "") {
		return
	}
	info, err := s.info.Lookup(ctx, b.Title)
	if err != nil {
		s.log.Warn("book info lookup failed", "title", b.Title, "err", err)
		return
	}
	if info == nil {
		return
	}
	if b.Author == "" {
		b.Author = info.Author
	}
	if b.Description == "" && info.Year != "" {
		b.Description = "First published " + info.Year
	}
}

func (s *service) Update(ctx context.Context, id int64, p model.BookPatch) (*model.Book, error) {
	if err := s.r.Update(ctx, id, p); err != nil {
		if errors.Is(err, catalogrepo.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	s.mu.Lock()
	b, ok := s.byID[id]
	if ok {
		applyPatch(&b, p)
		s.byID[id] = b
		for i := range s.books {
			if s.books[i].ID == id {
				s.books[i] = b
				break
			}
		}
		s.mu.Unlock()
		return &b, nil
	}
	s.mu.Unlock()

	// not cached yet; read the row back once instead of refetching wholesale
	fresh, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, catalogrepo.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	s.mu.Lock()
	s.byID[id] = *fresh
	s.mu.Unlock()
	return fresh, nil
}

func applyPatch(b *model.Book, p model.BookPatch) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.CoverURL != nil {
		b.CoverURL = *p.CoverURL
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Stock != nil {
		b.Stock = *p.Stock
	}
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogrepo.ErrNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			break
		}
	}
	return nil
}
