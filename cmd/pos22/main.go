package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/The-Charles-Factor/pos22/internal/api/handlers"
	"github.com/The-Charles-Factor/pos22/internal/api/middleware"
	"github.com/The-Charles-Factor/pos22/internal/cache"
	"github.com/The-Charles-Factor/pos22/internal/config"
	"github.com/The-Charles-Factor/pos22/internal/health"
	"github.com/The-Charles-Factor/pos22/internal/metrics"
	repository "github.com/The-Charles-Factor/pos22/internal/repositories"
	redisrepo "github.com/The-Charles-Factor/pos22/internal/repositories/redis"
	service "github.com/The-Charles-Factor/pos22/internal/services"
	"github.com/The-Charles-Factor/pos22/pkg/gateway"
	"github.com/The-Charles-Factor/pos22/pkg/sendgrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisRepo, err := redisrepo.NewRedisRepo(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	productCache := cache.NewRedisCache(redisRepo.Client(), &cfg.Cache)

	// Simulated payment rails: one gateway for card/cash checkouts at the
	// till, one for payroll bank transfers.
	cardGateway := gateway.NewSimulated(cfg.POS.GatewayStageDelay)
	bankGateway := gateway.NewSimulatedBankTransfer(cfg.POS.BankStageDelay)

	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	notificationService := service.NewNotificationService(emailService, cfg.POS.Currency, cfg.POS.LowStockAlertEmail)

	userService := service.NewUserService(redisRepo, &cfg.Security)
	authHandler := handlers.NewAuthHandler(userService)
	productService := service.NewProductService(repos.Product, productCache)
	productHandler := handlers.NewProductHandler(productService)
	salesService := service.NewSalesService(repos.Product, repos.Sale, productCache, cardGateway, notificationService, &cfg.POS)
	cartHandler := handlers.NewCartHandler(salesService)
	salesHandler := handlers.NewSalesHandler(salesService)
	payrollService := service.NewPayrollService(repos.Employee, bankGateway)
	employeeHandler := handlers.NewEmployeeHandler(payrollService)
	reportService := service.NewReportService(repos.Sale, repos.Product)
	reportHandler := handlers.NewReportHandler(reportService)
	authMiddleware := middleware.NewAuthMiddleware(userService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/auth/login", authHandler.Login())
	routerMux.HandleFunc("GET /api/v1/auth/me", authMiddleware.Authenticate(authHandler.Profile()))

	routerMux.HandleFunc("GET /api/v1/products", authMiddleware.Authenticate(productHandler.ListProducts()))
	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.Authenticate(middleware.RequireRole("manager", productHandler.CreateProduct())))
	routerMux.HandleFunc("GET /api/v1/products/low-stock", authMiddleware.Authenticate(productHandler.ListLowStock()))
	routerMux.HandleFunc("GET /api/v1/products/categories", authMiddleware.Authenticate(productHandler.ListCategories()))
	routerMux.HandleFunc("GET /api/v1/products/scan/{code}", authMiddleware.Authenticate(productHandler.ScanProduct()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.GetProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.Authenticate(middleware.RequireRole("manager", productHandler.UpdateProduct())))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", authMiddleware.Authenticate(middleware.RequireRole("manager", productHandler.DeleteProduct())))

	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.UpdateLine()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.RemoveLine()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))

	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(salesHandler.Checkout()))
	routerMux.HandleFunc("POST /api/v1/checkout/reset", authMiddleware.Authenticate(salesHandler.ResetCheckout()))
	routerMux.HandleFunc("GET /api/v1/sales", authMiddleware.Authenticate(salesHandler.ListSales()))
	routerMux.HandleFunc("GET /api/v1/sales/{id}", authMiddleware.Authenticate(salesHandler.GetSale()))

	routerMux.HandleFunc("GET /api/v1/employees", authMiddleware.Authenticate(middleware.RequireRole("manager", employeeHandler.ListEmployees())))
	routerMux.HandleFunc("POST /api/v1/employees", authMiddleware.Authenticate(middleware.RequireRole("manager", employeeHandler.CreateEmployee())))
	routerMux.HandleFunc("GET /api/v1/employees/{id}", authMiddleware.Authenticate(middleware.RequireRole("manager", employeeHandler.GetEmployee())))
	routerMux.HandleFunc("PUT /api/v1/employees/{id}", authMiddleware.Authenticate(middleware.RequireRole("manager", employeeHandler.UpdateEmployee())))
	routerMux.HandleFunc("DELETE /api/v1/employees/{id}", authMiddleware.Authenticate(middleware.RequireRole("admin", employeeHandler.DeleteEmployee())))
	routerMux.HandleFunc("POST /api/v1/payroll/run", authMiddleware.Authenticate(middleware.RequireRole("manager", employeeHandler.RunPayroll())))
	routerMux.HandleFunc("GET /api/v1/payroll/payments", authMiddleware.Authenticate(middleware.RequireRole("manager", employeeHandler.ListPayrollPayments())))

	routerMux.HandleFunc("GET /api/v1/reports/summary", authMiddleware.Authenticate(middleware.RequireRole("manager", reportHandler.Summary())))
	routerMux.HandleFunc("GET /api/v1/reports/dashboard", authMiddleware.Authenticate(reportHandler.Dashboard()))

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
