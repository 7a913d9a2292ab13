package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/navkar-traders/billing-backend/internal/config"
	authhandler "github.com/navkar-traders/billing-backend/internal/delivery/http/handler/auth"
	customerhandler "github.com/navkar-traders/billing-backend/internal/delivery/http/handler/customer"
	invoicehandler "github.com/navkar-traders/billing-backend/internal/delivery/http/handler/invoice"
	ledgerhandler "github.com/navkar-traders/billing-backend/internal/delivery/http/handler/ledger"
	paymenthandler "github.com/navkar-traders/billing-backend/internal/delivery/http/handler/payment"
	producthandler "github.com/navkar-traders/billing-backend/internal/delivery/http/handler/product"
	"github.com/navkar-traders/billing-backend/internal/delivery/middleware"
	"github.com/navkar-traders/billing-backend/internal/repository/postgres"
	authuc "github.com/navkar-traders/billing-backend/internal/usecase/auth"
	customeruc "github.com/navkar-traders/billing-backend/internal/usecase/customer"
	invoiceuc "github.com/navkar-traders/billing-backend/internal/usecase/invoice"
	ledgeruc "github.com/navkar-traders/billing-backend/internal/usecase/ledger"
	payuc "github.com/navkar-traders/billing-backend/internal/usecase/payment"
	productuc "github.com/navkar-traders/billing-backend/internal/usecase/product"
)

func RegisterRoutes(app *fiber.App, cfg config.Config, db *pgxpool.Pool) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	api := app.Group("/api")

	// Auth wiring
	userRepo := postgres.NewUserRepo(db)
	userFinder := &userFinderAdapter{repo: userRepo}
	loginUC := authuc.NewLoginUsecase(userFinder, cfg.JWTSecret, cfg.JWTExpiresMinutes)
	loginHandler := authhandler.NewLoginHandler(loginUC)

	// Public route
	api.Post("/login", loginHandler.Handle)

	// Everything registered after this requires a valid token
	jwtMW := middleware.NewJWTMiddleware(cfg.JWTSecret)
	api.Use(jwtMW.Protect())
	protected := api

	protected.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"id":    c.Locals("user_id"),
			"email": c.Locals("user_email"),
			"role":  c.Locals("user_role"),
		})
	})

	// Customers wiring
	customerRepo := postgres.NewCustomerRepo(db)
	customerStore := postgres.NewCustomerStoreAdapter(customerRepo)
	customerUC := customeruc.New(customerStore)
	customerH := customerhandler.New(customerUC)

	// Products wiring
	productRepo := postgres.NewProductRepo(db)
	productStore := postgres.NewProductStoreAdapter(productRepo)
	productUC := productuc.New(productStore)
	productH := producthandler.New(productUC)

	// Invoices wiring
	invoiceRepo := postgres.NewInvoiceRepo(db)
	invoiceStore := postgres.NewInvoiceStoreAdapter(invoiceRepo, db)
	invoiceUC := invoiceuc.New(invoiceStore)
	invoiceH := invoicehandler.New(invoiceUC)

	// Payments wiring
	paymentRepo := postgres.NewPaymentRepo(db)
	paymentStore := postgres.NewPaymentStoreAdapter(paymentRepo)
	paymentUC := payuc.New(paymentStore)
	paymentH := paymenthandler.New(paymentUC)

	// Ledger wiring
	ledgerStore := postgres.NewLedgerStoreAdapter(db)
	ledgerUC := ledgeruc.New(ledgerStore)
	ledgerH := ledgerhandler.New(ledgerUC)

	// Customer routes
	protected.Post("/customers", customerH.Create)
	protected.Get("/customers", customerH.List)
	protected.Get("/customers/:id", customerH.GetByID)
	protected.Patch("/customers/:id", customerH.Update)
	protected.Delete("/customers/:id", middleware.RequireRole(authuc.RoleAdmin), customerH.Delete)

	// Product routes
	protected.Post("/products", productH.Create)
	protected.Get("/products", productH.List)
	protected.Patch("/products/:id", productH.Update)
	protected.Delete("/products/:id", middleware.RequireRole(authuc.RoleAdmin), productH.Delete)

	// Invoice routes
	protected.Post("/invoices", invoiceH.Create)
	protected.Get("/invoices", invoiceH.List)
	protected.Get("/invoices/:id", invoiceH.GetByID)

	// Payment routes
	protected.Post("/invoices/:id/payments", paymentH.CreateForInvoice)
	protected.Get("/invoices/:id/payments", paymentH.ListForInvoice)

	// Ledger route
	protected.Get("/ledger", ledgerH.Get)
}

type userFinderAdapter struct {
	repo *postgres.UserRepo
}

func (a *userFinderAdapter) FindByEmail(ctx context.Context, email string) (*authuc.User, error) {
	r, err := a.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &authuc.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		IsActive:     r.IsActive,
	}, nil
}
