package book

type CreateBookReq struct {
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author"`
	Price       float64 `json:"price" validate:"gte=0"`
	CoverURL    string  `json:"cover_url" validate:"omitempty,url"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Stock       int64   `json:"stock" validate:"gte=0"`
}

type UpdateBookReq struct {
	Title       *string  `json:"title,omitempty"`
	Author      *string  `json:"author,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	CoverURL    *string  `json:"cover_url,omitempty" validate:"omitempty,url"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Stock       *int64   `json:"stock,omitempty" validate:"omitempty,gte=0"`
}
