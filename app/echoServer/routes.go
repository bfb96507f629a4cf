package echoServer

import (
	"net/http"

	"github.com/ax71/Uts-Bookify/app/echoServer/controller/auth"
	"github.com/ax71/Uts-Bookify/app/echoServer/controller/book"
	"github.com/ax71/Uts-Bookify/app/echoServer/controller/cart"
	"github.com/ax71/Uts-Bookify/app/echoServer/controller/checkout"
	"github.com/ax71/Uts-Bookify/app/echoServer/controller/transaction"
	"github.com/ax71/Uts-Bookify/app/echoServer/jwtx"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth        *auth.Controller
	Book        *book.Controller
	Cart        *cart.Controller
	Checkout    *checkout.Controller
	Transaction *transaction.Controller
	JWTSecret   string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Auth
	grp := e.Group("/v1")
	grp.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id + role extraction for downstream handlers
	grp.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			role, err := jwtx.RoleFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", uid)
			ctx.Set("role", role)
			return next(ctx)
		}
	})

	// Books
	grp.GET("/books", c.Book.List)
	grp.GET("/books/:id", c.Book.Detail)
	// Admin endpoints
	grp.POST("/books", c.Book.Create)
	grp.PATCH("/books/:id", c.Book.Update)
	grp.DELETE("/books/:id", c.Book.Delete)

	// Cart
	grp.GET("/cart", c.Cart.View)
	grp.DELETE("/cart", c.Cart.Clear)
	grp.POST("/cart/items", c.Cart.Add)
	grp.PUT("/cart/items/:bookId", c.Cart.UpdateQuantity)
	grp.DELETE("/cart/items/:bookId", c.Cart.Remove)

	// Checkout + history
	grp.POST("/checkout", c.Checkout.Checkout)
	grp.GET("/transactions", c.Transaction.List)
}
