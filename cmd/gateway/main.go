package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/cart"
	"github.com/dukalink/storefront-gateway/internal/config"
	"github.com/dukalink/storefront-gateway/internal/handler"
	"github.com/dukalink/storefront-gateway/internal/middleware"
	"github.com/dukalink/storefront-gateway/internal/service"
	"github.com/dukalink/storefront-gateway/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis (session store + catalog cache)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("connected to Redis")

	// Commerce backend
	backend := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	// Stores
	sessions := session.NewRedisStore(redisClient, cfg.Session.TTL)
	carts := cart.NewStore()

	// Services
	authSvc := service.NewAuthService(backend, sessions, carts, cfg.Session.Secret, cfg.Session.TTL)
	catalogSvc := service.NewCatalogService(backend, redisClient)
	checkoutSvc := service.NewCheckoutService(backend, backend)
	customerOrders := service.NewCustomerOrders(backend)
	orderWorkflow := service.NewOrderWorkflow(backend, backend, log)
	couponSvc := service.NewCouponService(backend)
	notificationSvc := service.NewNotificationService(backend)
	reviewSvc := service.NewReviewService(backend)
	reportSvc := service.NewReportService(backend)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	productH := handler.NewProductHandler(catalogSvc)
	cartH := handler.NewCartHandler(carts, catalogSvc)
	checkoutH := handler.NewCheckoutHandler(carts, checkoutSvc)
	orderH := handler.NewOrderHandler(customerOrders)
	adminOrderH := handler.NewAdminOrderHandler(orderWorkflow)
	couponH := handler.NewCouponHandler(couponSvc)
	notificationH := handler.NewNotificationHandler(notificationSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(redisClient, backend)

	// Router
	router := gin.Default()
	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	authed := middleware.SessionMiddleware(cfg.Session.Secret, sessions)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/logout", authed, authH.Logout)
		auth.GET("/me", authed, authH.Me)

		products := v1.Group("/products")
		products.GET("", productH.List)
		products.GET("/:id", productH.GetByID)
		products.GET("/:id/variants", productH.ListVariants)
		products.GET("/:id/reviews", reviewH.ListForProduct)

		cartRoutes := v1.Group("/cart", authed)
		cartRoutes.GET("", cartH.GetCart)
		cartRoutes.POST("/items", cartH.AddItem)
		cartRoutes.PUT("/items/:key", cartH.UpdateItem)
		cartRoutes.DELETE("/items/:key", cartH.DeleteItem)
		cartRoutes.DELETE("", cartH.Clear)

		checkoutRoutes := v1.Group("/checkout", authed)
		checkoutRoutes.POST("/check", checkoutH.Check)
		checkoutRoutes.POST("", checkoutH.Submit)

		orders := v1.Group("/orders", authed)
		orders.GET("", orderH.ListOrders)
		orders.GET("/:id", orderH.GetOrder)
		orders.POST("/:id/confirm-receipt", orderH.ConfirmReceipt)
		orders.POST("/:id/cancel", orderH.CancelOrder)

		coupons := v1.Group("/coupons", authed)
		coupons.POST("/validate", couponH.Validate)

		notifications := v1.Group("/notifications", authed)
		notifications.GET("", notificationH.List)
		notifications.PATCH("/:id/read", notificationH.MarkRead)

		reviews := v1.Group("/reviews", authed)
		reviews.POST("", reviewH.Create)

		admin := v1.Group("/admin", authed, middleware.RequireRole("admin"))
		admin.GET("/orders", adminOrderH.ListOrders)
		admin.GET("/orders/:id", adminOrderH.GetOrder)
		admin.PATCH("/orders/:id/status", adminOrderH.UpdateStatus)
		admin.DELETE("/orders/:id", adminOrderH.DeleteOrder)

		admin.POST("/products", productH.Create)
		admin.PUT("/products/:id", productH.Update)
		admin.DELETE("/products/:id", productH.Delete)
		admin.POST("/variants", productH.CreateVariant)
		admin.PUT("/variants/:id", productH.UpdateVariant)
		admin.DELETE("/variants/:id", productH.DeleteVariant)

		admin.GET("/coupons", couponH.List)
		admin.POST("/coupons", couponH.Create)
		admin.PATCH("/coupons/:id/deactivate", couponH.Deactivate)

		admin.GET("/reviews", reviewH.ListAll)
		admin.DELETE("/reviews/:id", reviewH.Delete)

		admin.GET("/reports/sales", reportH.Sales)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	cancel()
	log.Info("server stopped")
}
