package catalogrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ax71/Uts-Bookify/model"
)

var ErrNotFound = errors.New("book not found")

type Repo interface {
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Insert(ctx context.Context, b model.Book) (*model.Book, error)
	Update(ctx context.Context, id int64, p model.BookPatch) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	const q = `
	SELECT id, title, author, price, cover_url, description, category, stock, created_at
	FROM books
	ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.CoverURL,
			&b.Description, &b.Category, &b.Stock, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
	SELECT id, title, author, price, cover_url, description, category, stock, created_at
	FROM books
	WHERE id = $1`
	var b model.Book
	err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.Title, &b.Author, &b.Price,
		&b.CoverURL, &b.Description, &b.Category, &b.Stock, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Insert writes a new book; the database assigns id and created_at.
func (r *repo) Insert(ctx context.Context, b model.Book) (*model.Book, error) {
	const q = `
	INSERT INTO books (title, author, price, cover_url, description, category, stock)
	VALUES ($1,$2,$3,$4,$5,$6,$7)
	RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.Price, b.CoverURL, b.Description, b.Category, b.Stock,
	).Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Update applies only the non-nil fields of the patch.
func (r *repo) Update(ctx context.Context, id int64, p model.BookPatch) error {
	const q = `
	UPDATE books
	SET title       = COALESCE($2, title),
	    author      = COALESCE($3, author),
	    price       = COALESCE($4, price),
	    cover_url   = COALESCE($5, cover_url),
	    description = COALESCE($6, description),
	    category    = COALESCE($7, category),
	    stock       = COALESCE($8, stock)
	WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id,
		p.Title, p.Author, p.Price, p.CoverURL, p.Description, p.Category, p.Stock)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return ErrNotFound
	}
	return nil
}
