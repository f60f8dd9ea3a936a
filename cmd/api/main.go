package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/mfn0002-png/terangaFil-backend/internal/modules/auth"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/catalog"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/notification"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/order"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/payment"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/plan"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/settlement"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/shipping"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/supplier"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Phase 1: Identity & Suppliers ───────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo)
	auth.NewHandler(authService).RegisterRoutes(router)

	supplierRepo := supplier.NewPostgresRepository(db)
	supplierService := supplier.NewService(supplierRepo)
	supplierHandler := supplier.NewHandler(supplierService)
	supplierHandler.RegisterRoutes(router)

	// ── Phase 2: Plans & Catalog ────────────────────────────
	planRepo := plan.NewPostgresRepository(db)
	planService := plan.NewService(planRepo, supplierRepo)
	plan.NewHandler(planService).RegisterRoutes(router)

	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo, supplierRepo, planRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	shippingRepo := shipping.NewPostgresRepository(db)
	shippingService := shipping.NewService(shippingRepo, supplierRepo)
	shipping.NewHandler(shippingService).RegisterRoutes(router)

	// ── Phase 3: Notifications ──────────────────────────────
	notificationRepo := notification.NewPostgresRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notification.NewHandler(notificationService).RegisterRoutes(router)

	// ── Phase 4: Orders ─────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, catalogRepo, shippingRepo, notificationService)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Phase 5: Payments (PayDunya) ────────────────────────
	gateway := payment.NewPayDunyaGateway(payment.PayDunyaConfig{
		BaseURL:     os.Getenv("PAYDUNYA_BASE_URL"),
		MasterKey:   os.Getenv("PAYDUNYA_MASTER_KEY"),
		PrivateKey:  os.Getenv("PAYDUNYA_PRIVATE_KEY"),
		Token:       os.Getenv("PAYDUNYA_TOKEN"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		BackendURL:  os.Getenv("BACKEND_URL"),
		Sandbox:     os.Getenv("PAYDUNYA_MODE") != "live",
	})

	paymentRepo := payment.NewPostgresRepository(db)
	paymentService := payment.NewService(paymentRepo, orderRepo, gateway)
	payment.NewHandler(paymentService).RegisterRoutes(router)

	// ── Phase 6: Settlement & Payouts ───────────────────────
	payoutRepo := settlement.NewPostgresRepository(db)
	settlementService := settlement.NewService(payoutRepo, orderRepo, supplierRepo,
		planRepo, shippingRepo, paymentRepo, gateway, notificationService,
		settlement.Config{
			AdminPhoneNumber:   os.Getenv("ADMIN_PAYMENT_NUMBER"),
			AdminPaymentMethod: os.Getenv("ADMIN_PAYMENT_METHOD"),
		})
	settlementHandler := settlement.NewHandler(settlementService)
	settlementHandler.RegisterRoutes(router)

	// ── Operator routes ─────────────────────────────────────
	router.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(auth.RequireRole("ADMIN"))
		supplierHandler.RegisterAdminRoutes(r)
		settlementHandler.RegisterAdminRoutes(r)
	})

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Teranga Fil API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
