// model/book.go
package model

import "time"

type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Price       float64   `json:"price"`
	CoverURL    string    `json:"cover_url"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Stock       int64     `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookPatch carries a partial update; nil fields are left untouched.
type BookPatch struct {
	Title       *string  `json:"title,omitempty"`
	Author      *string  `json:"author,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CoverURL    *string  `json:"cover_url,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Stock       *int64   `json:"stock,omitempty"`
}
