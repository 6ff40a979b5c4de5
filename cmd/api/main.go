package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"servicemarket/internal/database"
	"servicemarket/internal/middleware"
	"servicemarket/internal/modules/auth"
	"servicemarket/internal/modules/booking"
	"servicemarket/internal/modules/catalog"
	"servicemarket/internal/modules/checkout"
	"servicemarket/internal/modules/notify"
	"servicemarket/internal/modules/payment"
	"servicemarket/internal/modules/review"
	jwtsvc "servicemarket/internal/pkg/jwt"
	"servicemarket/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	defaultCallingCharge := 15.0
	if v := os.Getenv("DEFAULT_CALLING_CHARGE"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Fatalf("invalid DEFAULT_CALLING_CHARGE: %v", err)
		}
		defaultCallingCharge = parsed
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	checkoutStore := repository.NewCheckoutStore(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	hub := notify.NewHub()
	defer hub.Close()
	sender := notify.NewSender(hub)
	wsHandler := notify.NewWSHandler(hub, j)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(serviceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	checkoutService := checkout.NewService(checkoutStore, sender, defaultCallingCharge)
	checkoutHandler := checkout.NewHandler(checkoutService)

	bookingService := booking.NewService(bookingRepo, sender)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(bookingRepo, sender)
	paymentHandler := payment.NewHandler(paymentService)

	reviewService := review.NewService(reviewRepo, bookingRepo)
	reviewHandler := review.NewHandler(reviewService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/ws/notifications", wsHandler.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)

			clientOnly := protected.Group("/")
			clientOnly.Use(middleware.RequireRole("client"))
			{
				checkoutHandler.RegisterRoutes(clientOnly)
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
