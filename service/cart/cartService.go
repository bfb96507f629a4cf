package cartsvc

import (
	"errors"
	"sync"

	"github.com/ax71/Uts-Bookify/model"
)

var ErrInvalidQuantity = errors.New("invalid quantity")

// PriceResolver is the slice of the catalog cache the ledger needs: unit
// price lookup for a cached book.
type PriceResolver interface {
	PriceOf(bookID int64) (float64, error)
}

// Service keeps one in-memory ledger per user. Ledgers are process-local
// and unpersisted: they reset only on Clear or a successful checkout.
type Service interface {
	Add(userID, bookID int64, qty int) error
	UpdateQuantity(userID, bookID int64, qty int)
	Remove(userID, bookID int64)
	Clear(userID int64)
	Lines(userID int64) []model.CartLine
	Total(userID int64) (float64, error)

	// DropBook removes a deleted book from every live ledger.
	DropBook(bookID int64)
}

type service struct {
	prices PriceResolver

	mu      sync.Mutex
	ledgers map[int64]*ledger
}

func New(prices PriceResolver) Service {
	return &service{prices: prices, ledgers: map[int64]*ledger{}}
}

// ledger is a mapping book id -> quantity plus insertion order, so listings
// stay stable across mutations.
type ledger struct {
	qty   map[int64]int
	order []int64
}

func (s *service) ledgerOf(userID int64) *ledger {
	l, ok := s.ledgers[userID]
	if !ok {
		l = &ledger{qty: map[int64]int{}}
		s.ledgers[userID] = l
	}
	return l
}

func (s *service) Add(userID, bookID int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.ledgerOf(userID)
	if _, ok := l.qty[bookID]; !ok {
		l.order = append(l.order, bookID)
	}
	l.qty[bookID] += qty
	return nil
}

// UpdateQuantity overwrites an existing line's quantity; zero or less
// removes it. An absent line is left alone: only Add inserts lines, so
// updates cannot smuggle in books that never passed the add checks.
func (s *service) UpdateQuantity(userID, bookID int64, qty int) {
	if qty <= 0 {
		s.Remove(userID, bookID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.ledgers[userID]
	if !ok {
		return
	}
	if _, ok := l.qty[bookID]; !ok {
		return
	}
	l.qty[bookID] = qty
}

func (s *service) Remove(userID, bookID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.ledgers[userID]
	if !ok {
		return
	}
	l.remove(bookID)
}

func (s *service) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, userID)
}

func (s *service) Lines(userID int64) []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.ledgers[userID]
	if !ok {
		return nil
	}
	out := make([]model.CartLine, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, model.CartLine{BookID: id, Quantity: l.qty[id]})
	}
	return out
}

// Total sums price x quantity over the ledger. A line whose book is missing
// from the catalog fails the whole computation instead of pricing at zero.
func (s *service) Total(userID int64) (float64, error) {
	lines := s.Lines(userID)

	var total float64
	for _, ln := range lines {
		price, err := s.prices.PriceOf(ln.BookID)
		if err != nil {
			return 0, err
		}
		total += price * float64(ln.Quantity)
	}
	return total, nil
}

func (s *service) DropBook(bookID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.ledgers {
		l.remove(bookID)
	}
}

func (l *ledger) remove(bookID int64) {
	if _, ok := l.qty[bookID]; !ok {
		return
	}
	delete(l.qty, bookID)
	for i, id := range l.order {
		if id == bookID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}
