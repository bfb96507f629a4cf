package cart

type AddItemReq struct {
	BookID   int64 `json:"book_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
}

type UpdateItemReq struct {
	// zero removes the line
	Quantity int `json:"quantity" validate:"gte=0"`
}
