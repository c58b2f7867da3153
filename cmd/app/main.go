package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/vzeeee/Qkart-Backend2/internal/cart"
	"github.com/vzeeee/Qkart-Backend2/internal/config"
	"github.com/vzeeee/Qkart-Backend2/internal/lock"
	"github.com/vzeeee/Qkart-Backend2/internal/logger"
	"github.com/vzeeee/Qkart-Backend2/internal/order"
	"github.com/vzeeee/Qkart-Backend2/internal/product"
	"github.com/vzeeee/Qkart-Backend2/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "qkart-backend", Level: cfg.LogLevel})

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	userRepo := user.NewPostgresRepository(db)
	productRepo := product.NewPostgresRepository(db)
	cartRepo := cart.NewPostgresRepository(db)
	orderRepo := order.NewPostgresRepository(db)

	seedProducts(productRepo, log)

	// one lock table so cart mutation and checkout for the same user
	// serialize against each other
	locks := lock.NewKeyed()

	userService := user.NewService(userRepo, cfg)
	productService := product.NewService(productRepo)
	cartService := cart.NewService(cartRepo, productRepo, locks)
	orderService := order.NewService(orderRepo, cartRepo, userRepo, cfg, locks)

	userHandler := user.NewHandler(userService, cfg)
	productHandler := product.NewHandler(productService)
	cartHandler := cart.NewHandler(cartService, productService)
	orderHandler := order.NewHandler(orderService)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(requestLogger(log))

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		return app.Listen(cfg.Addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		return app.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("request",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)
		return err
	}
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            "userId" SERIAL PRIMARY KEY,
            name TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            "walletMoney" BIGINT NOT NULL DEFAULT 0,
            address TEXT NOT NULL DEFAULT '',
            "createdAt" TEXT,
            "updatedAt" TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            "productID" SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            category TEXT NOT NULL DEFAULT '',
            cost BIGINT NOT NULL DEFAULT 0,
            rating INT NOT NULL DEFAULT 0,
            image TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            "cartID" TEXT PRIMARY KEY,
            "userID" INT NOT NULL,
            items JSONB NOT NULL DEFAULT '[]',
            version INT NOT NULL DEFAULT 0,
            "createdAt" TEXT,
            "updatedAt" TEXT
        )`,
		`CREATE INDEX IF NOT EXISTS carts_user_idx ON carts ("userID")`,
		`CREATE TABLE IF NOT EXISTS orders (
            "orderID" TEXT PRIMARY KEY,
            "userID" INT NOT NULL,
            items JSONB NOT NULL DEFAULT '[]',
            total BIGINT NOT NULL DEFAULT 0,
            "paymentOption" TEXT,
            "createdAt" TEXT
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

// seedProducts loads a small starter catalog into an empty database so the
// app is usable right after first boot.
func seedProducts(repo product.Repository, log *slog.Logger) {
	n, err := repo.Count()
	if err != nil {
		log.Warn("could not count products", "error", err)
		return
	}
	if n > 0 {
		return
	}

	seed := []product.Product{
		{Name: "UNIFACTOR Mens Running Shoes", Category: "Fashion", Cost: 50, Rating: 5},
		{Name: "YONEX Smash Badminton Racquet", Category: "Sports", Cost: 100, Rating: 5},
		{Name: "Tan Leatherette Weekender Duffle", Category: "Fashion", Cost: 150, Rating: 4},
		{Name: "The Minimalist Slim Leather Watch", Category: "Electronics", Cost: 60, Rating: 5},
		{Name: "Stylecon 9 Seater RHS Sofa Set", Category: "Home & Kitchen", Cost: 180, Rating: 4},
	}
	for _, p := range seed {
		if _, err := repo.Create(p); err != nil {
			log.Warn("could not seed product", "name", p.Name, "error", err)
		}
	}
	log.Info("seeded starter catalog", "count", len(seed))
}
