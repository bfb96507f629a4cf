// repository/txn/repo.go
package txnrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ax71/Uts-Bookify/model"
)

var ErrNotFound = errors.New("transaction not found")

// Repo talks to the transaction tables. Header and item writes are separate
// requests on purpose: the checkout coordinator owns the compensating delete
// when the second step fails.
type Repo interface {
	InsertHeader(ctx context.Context, userID int64, total float64) (*model.Transaction, error)
	InsertItems(ctx context.Context, txnID int64, items []model.TransactionItem) error
	DeleteHeader(ctx context.Context, txnID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) InsertHeader(ctx context.Context, userID int64, total float64) (*model.Transaction, error) {
	const q = `
	INSERT INTO transactions (user_id, total_price)
	VALUES ($1, $2)
	RETURNING id, created_at`
	t := &model.Transaction{UserID: userID, TotalPrice: total}
	if err := r.db.QueryRowContext(ctx, q, userID, total).Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repo) InsertItems(ctx context.Context, txnID int64, items []model.TransactionItem) error {
	const q = `
	INSERT INTO transaction_items (transaction_id, book_id, quantity, price)
	VALUES ($1, $2, $3, $4)`
	for _, it := range items {
		if _, err := r.db.ExecContext(ctx, q, txnID, it.BookID, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return nil
}

// DeleteHeader removes a transaction header; items go with it via cascade.
func (r *repo) DeleteHeader(ctx context.Context, txnID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, txnID)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error) {
	const qHeaders = `
	SELECT id, user_id, total_price, created_at
	FROM transactions
	WHERE user_id = $1
	ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, qHeaders, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transaction
	index := map[int64]int{}
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.TotalPrice, &t.CreatedAt); err != nil {
			return nil, err
		}
		index[t.ID] = len(out)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	// Items joined against the live book row for the display snapshot;
	// a deleted book leaves blank title/author but keeps the priced line.
	const qItems = `
	SELECT ti.transaction_id, ti.book_id,
	       COALESCE(b.title, ''), COALESCE(b.author, ''), COALESCE(b.cover_url, ''),
	       ti.quantity, ti.price
	FROM transaction_items ti
	JOIN transactions t ON t.id = ti.transaction_id
	LEFT JOIN books b ON b.id = ti.book_id
	WHERE t.user_id = $1
	ORDER BY ti.transaction_id, ti.id`
	itemRows, err := r.db.QueryContext(ctx, qItems, userID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var txnID int64
		var it model.TransactionItem
		if err := itemRows.Scan(&txnID, &it.BookID, &it.BookTitle, &it.BookAuthor,
			&it.CoverURL, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		if i, ok := index[txnID]; ok {
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out, itemRows.Err()
}
