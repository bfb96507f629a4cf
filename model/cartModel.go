// model/cart.go
package model

// CartLine is one entry of a cart ledger: at most one line per book,
// quantity always positive.
type CartLine struct {
	BookID   int64 `json:"book_id"`
	Quantity int   `json:"quantity"`
}
