package checkoutsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ax71/Uts-Bookify/model"
)

var (
	// ErrCheckoutFailed wraps any store failure during checkout; the cart
	// is left untouched when it is returned.
	ErrCheckoutFailed = errors.New("checkout failed")
	// ErrRollbackFailed means the compensating header delete failed too:
	// the store is left with an orphaned header and someone should look.
	ErrRollbackFailed = errors.New("checkout rollback failed")
)

// Catalog resolves cart lines to priced books at time of purchase.
type Catalog interface {
	ByID(bookID int64) (*model.Book, error)
}

// Carts is the slice of the cart service checkout needs.
type Carts interface {
	Lines(userID int64) []model.CartLine
	Clear(userID int64)
}

// Store persists transactions using the two-step strategy: header first,
// items second, compensating delete when the second step fails.
type Store interface {
	InsertHeader(ctx context.Context, userID int64, total float64) (*model.Transaction, error)
	InsertItems(ctx context.Context, txnID int64, items []model.TransactionItem) error
	DeleteHeader(ctx context.Context, txnID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error)
}

type Service interface {
	// Checkout converts the user's cart into a persisted transaction.
	// An empty cart is a no-op returning (nil, nil).
	Checkout(ctx context.Context, userID int64) (*model.Transaction, error)
	History(ctx context.Context, userID int64) ([]model.Transaction, error)
}

type service struct {
	store   Store
	catalog Catalog
	carts   Carts
	log     *slog.Logger

	mu      sync.Mutex
	history map[int64][]model.Transaction // only for users whose history is loaded
}

func New(store Store, catalog Catalog, carts Carts, log *slog.Logger) Service {
	return &service{
		store:   store,
		catalog: catalog,
		carts:   carts,
		log:     log,
		history: map[int64][]model.Transaction{},
	}
}

func (s *service) Checkout(ctx context.Context, userID int64) (*model.Transaction, error) {
	lines := s.carts.Lines(userID)
	if len(lines) == 0 {
		return nil, nil
	}

	// Snapshot prices before any write. A stale line referencing a missing
	// book aborts the checkout; it never prices at zero.
	items := make([]model.TransactionItem, 0, len(lines))
	var total float64
	for _, ln := range lines {
		b, err := s.catalog.ByID(ln.BookID)
		if err != nil {
			return nil, fmt.Errorf("resolve book %d: %w", ln.BookID, err)
		}
		items = append(items, model.TransactionItem{
			BookID:     b.ID,
			BookTitle:  b.Title,
			BookAuthor: b.Author,
			CoverURL:   b.CoverURL,
			Quantity:   ln.Quantity,
			Price:      b.Price,
		})
		total += b.Price * float64(ln.Quantity)
	}

	header, err := s.store.InsertHeader(ctx, userID, total)
	if err != nil {
		return nil, fmt.Errorf("%w: insert header: %w", ErrCheckoutFailed, err)
	}

	if err := s.store.InsertItems(ctx, header.ID, items); err != nil {
		// Compensating delete: the store gives no cross-request atomicity,
		// so the header must not be left dangling.
		if delErr := s.store.DeleteHeader(ctx, header.ID); delErr != nil {
			s.log.Error("orphaned transaction header left in store",
				"txn_id", header.ID, "user_id", userID, "insert_err", err, "delete_err", delErr)
			return nil, fmt.Errorf("%w: insert items: %v, delete header: %w", ErrRollbackFailed, err, delErr)
		}
		return nil, fmt.Errorf("%w: insert items: %w", ErrCheckoutFailed, err)
	}

	txn := *header
	txn.Items = items

	s.carts.Clear(userID)

	s.mu.Lock()
	if hist, ok := s.history[userID]; ok {
		s.history[userID] = append([]model.Transaction{txn}, hist...)
	}
	s.mu.Unlock()

	return &txn, nil
}

// History serves the cached list when loaded, otherwise reads through to
// the store and caches the result.
func (s *service) History(ctx context.Context, userID int64) ([]model.Transaction, error) {
	s.mu.Lock()
	hist, ok := s.history[userID]
	s.mu.Unlock()
	if ok {
		out := make([]model.Transaction, len(hist))
		copy(out, hist)
		return out, nil
	}

	listed, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.history[userID] = listed
	s.mu.Unlock()

	out := make([]model.Transaction, len(listed))
	copy(out, listed)
	return out, nil
}
