package checkout

import (
	"errors"
	"log/slog"
	"net/http"

	catalogsvc "github.com/ax71/Uts-Bookify/service/catalog"
	checkoutsvc "github.com/ax71/Uts-Bookify/service/checkout"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc checkoutsvc.Service
	Log *slog.Logger
}

// POST /v1/checkout
// @Summary      Checkout
// @Description  Convert the current cart into a persisted transaction
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  map[string]any "empty cart, nothing done"
// @Success      201  {object}  map[string]any
// @Failure      409  {object}  map[string]any "cart references a missing book"
// @Failure      500  {object}  map[string]any
// @Router       /v1/checkout [post]
func (h *Controller) Checkout(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	txn, err := h.Svc.Checkout(c.Request().Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, catalogsvc.ErrBookNotFound):
			return c.JSON(http.StatusConflict, echo.Map{"message": "cart references a missing book"})
		case errors.Is(err, checkoutsvc.ErrRollbackFailed):
			h.Log.Error("checkout rollback failed", "user_id", uid, "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "checkout failed, store may be inconsistent"})
		case errors.Is(err, checkoutsvc.ErrCheckoutFailed):
			h.Log.Error("checkout failed", "user_id", uid, "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "checkout failed"})
		default:
			h.Log.Error("checkout error", "user_id", uid, "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	if txn == nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "cart is empty"})
	}
	return c.JSON(http.StatusCreated, txn)
}
