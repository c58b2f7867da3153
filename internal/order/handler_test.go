package order

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/vzeeee/Qkart-Backend2/internal/cart"
	"github.com/vzeeee/Qkart-Backend2/internal/lock"
	"github.com/vzeeee/Qkart-Backend2/internal/user"
)

func makeCheckoutApp(t *testing.T, wallet int64, address string, items []cart.CartItem) *fiber.App {
	t.Helper()

	users := user.NewInMemoryRepository([]user.User{
		{ID: 42, WalletMoney: wallet, Address: address},
	})
	carts := cart.NewInMemoryRepository()
	if items != nil {
		if _, err := carts.Create(cart.Cart{UserID: 42, Items: items}); err != nil {
			t.Fatalf("seeding cart failed: %v", err)
		}
	}
	svc := NewService(NewInMemoryRepository(users, carts), carts, users, testCfg, lock.NewKeyed())
	handler := NewHandler(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims := jwt.MapClaims{"user_id": id}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	handler.RegisterProtectedRoutes(app)
	return app
}

func TestCheckoutRoute_Success(t *testing.T) {
	app := makeCheckoutApp(t, 30, "221B Baker Street, London", twoLineCart)

	req := httptest.NewRequest("POST", "/api/v1/cart/checkout", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"total":25`) {
		t.Fatalf("expected total 25 in response, got %s", string(b))
	}

	// order shows up in history
	req = httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for orders, got %d", res.StatusCode)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"orderID"`) {
		t.Fatalf("expected an order in history, got %s", string(b))
	}
}

func TestCheckoutRoute_StatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		wallet  int64
		address string
		items   []cart.CartItem
		want    int
	}{
		{"no cart", 30, "221B Baker Street, London", nil, fiber.StatusNotFound},
		{"empty cart", 30, "221B Baker Street, London", []cart.CartItem{}, fiber.StatusBadRequest},
		{"address not set", 30, testCfg.DefaultAddress, twoLineCart, fiber.StatusBadRequest},
		{"insufficient balance", 20, "221B Baker Street, London", twoLineCart, fiber.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := makeCheckoutApp(t, tc.wallet, tc.address, tc.items)

			req := httptest.NewRequest("POST", "/api/v1/cart/checkout", nil)
			req.Header.Set("X-User-ID", "42")
			res, _ := app.Test(req)
			if res.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, res.StatusCode)
			}
		})
	}
}

func TestCheckoutRoute_Unauthenticated(t *testing.T) {
	app := makeCheckoutApp(t, 30, "221B Baker Street, London", twoLineCart)

	res, _ := app.Test(httptest.NewRequest("POST", "/api/v1/cart/checkout", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}
