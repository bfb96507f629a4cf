package cart

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	cartsvc "github.com/ax71/Uts-Bookify/service/cart"
	catalogsvc "github.com/ax71/Uts-Bookify/service/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc     cartsvc.Service
	Catalog catalogsvc.Service
	V       *validator.Validate
	Log     *slog.Logger
}

// GET /v1/cart
func (h *Controller) View(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	lines := h.Svc.Lines(uid)
	total, err := h.Svc.Total(uid)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrBookNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "cart references a missing book"})
		}
		h.Log.Error("cart total error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": lines, "total": total})
}

// POST /v1/cart/items
func (h *Controller) Add(c echo.Context) error {
	var req AddItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  echo.Map{"book_id": "required, gt 0", "quantity": "required, gt 0"},
		})
	}
	uid, _ := c.Get("user_id").(int64)

	// the ledger itself does not validate stock; clamp here like the storefront does
	b, err := h.Catalog.Detail(c.Request().Context(), req.BookID)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("cart add error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if b.Stock == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"message": "out of stock"})
	}
	qty := req.Quantity
	if int64(qty) > b.Stock {
		qty = int(b.Stock)
	}

	if err := h.Svc.Add(uid, req.BookID, qty); err != nil {
		if errors.Is(err, cartsvc.ErrInvalidQuantity) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid quantity"})
		}
		h.Log.Error("cart add error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"items": h.Svc.Lines(uid)})
}

// PUT /v1/cart/items/:bookId
func (h *Controller) UpdateQuantity(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"quantity": "gte 0"}})
	}
	uid, _ := c.Get("user_id").(int64)

	h.Svc.UpdateQuantity(uid, bookID, req.Quantity)
	return c.JSON(http.StatusOK, echo.Map{"items": h.Svc.Lines(uid)})
}

// DELETE /v1/cart/items/:bookId
func (h *Controller) Remove(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	h.Svc.Remove(uid, bookID)
	return c.JSON(http.StatusOK, echo.Map{"items": h.Svc.Lines(uid)})
}

// DELETE /v1/cart
func (h *Controller) Clear(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	h.Svc.Clear(uid)
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}
