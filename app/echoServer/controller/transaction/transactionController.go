package transaction

import (
	"log/slog"
	"net/http"

	checkoutsvc "github.com/ax71/Uts-Bookify/service/checkout"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc checkoutsvc.Service
	Log *slog.Logger
}

// GET /v1/transactions
func (h *Controller) List(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	rows, err := h.Svc.History(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("transaction list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
