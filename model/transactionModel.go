// model/transaction.go
package model

import "time"

// Transaction is an immutable purchase record. Items carry the price at
// time of purchase, decoupled from the live book price.
type Transaction struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	TotalPrice float64           `json:"total_price"`
	Items      []TransactionItem `json:"items"`
	CreatedAt  time.Time         `json:"created_at"`
}

type TransactionItem struct {
	BookID     int64   `json:"book_id"`
	BookTitle  string  `json:"book_title"`
	BookAuthor string  `json:"book_author"`
	CoverURL   string  `json:"cover_url,omitempty"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"` // unit price at purchase
}
