package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	echoSwagger "github.com/swaggo/echo-swagger"

	"tableside/internal/analytics"
	"tableside/internal/caching"
	"tableside/internal/config"
	"tableside/internal/handlers"
	"tableside/internal/jobs"
	"tableside/internal/jobs/background"
	"tableside/internal/middleware"
	"tableside/internal/repositories"
	"tableside/internal/services"
	"tableside/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using generated secret")
	}

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	var imageSvc services.ImageService
	if cfg.MinioAccessKey != "" {
		imageSvc, err = services.NewImageService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("Failed to initialize image storage: %v", err)
		}
		if err := imageSvc.EnsureBucketExists(context.Background()); err != nil {
			log.Printf("WARN: Could not ensure image bucket exists: %v", err)
		}
	} else {
		log.Printf("MINIO_ACCESS_KEY not set, menu image uploads disabled")
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	menuRepo := repositories.NewMenuRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	orderItemRepo := repositories.NewOrderItemRepo(pool)
	tableRepo := repositories.NewTableRepo(pool)
	staffRepo := repositories.NewStaffRepo(pool)
	customerRepo := repositories.NewCustomerRepo(pool)
	inventoryRepo := repositories.NewInventoryRepo(pool)
	reservationRepo := repositories.NewReservationRepo(pool)

	// Services
	authSvc := services.NewAuthService(userRepo, cacheSvc, jwtSecret)
	menuSvc := services.NewMenuService(menuRepo, cacheSvc)
	tableReleaser := services.NewTableReleaser(tableRepo)
	orderSvc := services.NewOrderService(orderRepo, orderItemRepo, menuRepo, cacheSvc, tableReleaser)
	tableSvc := services.NewTableService(tableRepo)
	staffSvc := services.NewStaffService(staffRepo)
	customerSvc := services.NewCustomerService(customerRepo)
	inventorySvc := services.NewInventoryService(inventoryRepo)
	reservationSvc := services.NewReservationService(reservationRepo, tableRepo)
	analyticsSvc := analytics.NewAnalyticsService(orderRepo, orderItemRepo, tableRepo, staffRepo, cacheSvc)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	menuHandlers := handlers.NewMenuHandlers(menuSvc, imageSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	tableHandlers := handlers.NewTableHandlers(tableSvc)
	staffHandlers := handlers.NewStaffHandlers(staffSvc)
	customerHandlers := handlers.NewCustomerHandlers(customerSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(inventorySvc)
	reservationHandlers := handlers.NewReservationHandlers(reservationSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(analyticsSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	alerts := jobs.NewInventoryAlerts(inventoryRepo)
	scheduler := background.NewJobScheduler(analyticsSvc, alerts, reservationRepo)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.POST("/auth/signup", authHandlers.Signup)
	api.POST("/auth/login", authHandlers.Login)

	sessionAuth, err := middleware.SessionAuth(cacheSvc, jwtSecret, cfg.JWKSURL)
	if err != nil {
		log.Fatalf("Failed to initialize auth middleware: %v", err)
	}
	protected := api.Group("", sessionAuth)

	protected.POST("/auth/logout", authHandlers.Logout)
	protected.GET("/auth/me", authHandlers.Me)

	protected.GET("/menu", menuHandlers.ListMenuItems)
	protected.POST("/menu", menuHandlers.CreateMenuItem)
	protected.GET("/menu/:id", menuHandlers.GetMenuItem)
	protected.PUT("/menu/:id", menuHandlers.UpdateMenuItem)
	protected.DELETE("/menu/:id", menuHandlers.DeleteMenuItem)
	protected.POST("/menu/:id/image", menuHandlers.UploadMenuImage)

	protected.GET("/orders", orderHandlers.ListOrders)
	protected.POST("/orders", orderHandlers.CreateOrder)
	protected.GET("/orders/:id", orderHandlers.GetOrder)
	protected.PUT("/orders/:id/status", orderHandlers.UpdateOrderStatus)
	protected.POST("/orders/:id/items", orderHandlers.AddOrderItem)

	protected.GET("/tables", tableHandlers.ListTables)
	protected.POST("/tables", tableHandlers.CreateTable)
	protected.PUT("/tables/:id/status", tableHandlers.UpdateTableStatus)

	protected.GET("/staff", staffHandlers.ListStaff)
	protected.POST("/staff", staffHandlers.CreateStaff)
	protected.GET("/staff/:id", staffHandlers.GetStaff)
	protected.PUT("/staff/:id", staffHandlers.UpdateStaff)
	protected.DELETE("/staff/:id", staffHandlers.DeleteStaff)

	protected.GET("/customers", customerHandlers.ListCustomers)
	protected.POST("/customers", customerHandlers.CreateCustomer)
	protected.GET("/customers/:id", customerHandlers.GetCustomer)
	protected.PUT("/customers/:id", customerHandlers.UpdateCustomer)
	protected.DELETE("/customers/:id", customerHandlers.DeleteCustomer)

	protected.GET("/inventory", inventoryHandlers.ListInventory)
	protected.GET("/inventory/low-stock", inventoryHandlers.ListLowStock)
	protected.POST("/inventory", inventoryHandlers.CreateInventoryItem)
	protected.GET("/inventory/:id", inventoryHandlers.GetInventoryItem)
	protected.PUT("/inventory/:id", inventoryHandlers.UpdateInventoryItem)
	protected.DELETE("/inventory/:id", inventoryHandlers.DeleteInventoryItem)

	protected.GET("/reservations", reservationHandlers.ListReservations)
	protected.POST("/reservations", reservationHandlers.CreateReservation)
	protected.GET("/reservations/:id", reservationHandlers.GetReservation)
	protected.PUT("/reservations/:id", reservationHandlers.UpdateReservation)
	protected.DELETE("/reservations/:id", reservationHandlers.DeleteReservation)

	protected.GET("/dashboard/stats", dashboardHandlers.GetStats)
	protected.GET("/dashboard/weekly-sales", dashboardHandlers.GetWeeklySales)
	protected.GET("/dashboard/popular-dishes", dashboardHandlers.GetPopularDishes)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
