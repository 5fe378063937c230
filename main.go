package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Laib363/E-Commerce-Project/config"
	"github.com/Laib363/E-Commerce-Project/controllers"
	"github.com/Laib363/E-Commerce-Project/database"
	"github.com/Laib363/E-Commerce-Project/logger"
	"github.com/Laib363/E-Commerce-Project/middleware"
	"github.com/Laib363/E-Commerce-Project/repository"
	"github.com/Laib363/E-Commerce-Project/routes"
	"github.com/Laib363/E-Commerce-Project/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Connect(cfg.MongoURI, cfg.DBName); err != nil {
		logger.Log.Fatal("Could not connect to MongoDB", zap.Error(err))
	}
	defer database.Close()

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(indexCtx); err != nil {
		logger.Log.Fatal("Could not create indexes", zap.Error(err))
	}
	cancel()

	imageStore, err := services.NewCloudinaryStore(
		cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		logger.Log.Fatal("Could not configure image store", zap.Error(err))
	}

	userRepo := repository.NewMongoUserRepository(database.DB)
	listingRepo := repository.NewMongoListingRepository(database.DB)
	orderRepo := repository.NewMongoOrderRepository(database.DB)

	authService := services.NewAuthService(userRepo)
	listingService := services.NewListingService(listingRepo, userRepo, imageStore)
	cartService := services.NewCartService(userRepo, listingRepo)
	orderService := services.NewOrderService(orderRepo, userRepo, listingRepo)

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60, // 1 week
		HttpOnly: true,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(sessions.Sessions("session", store))
	r.Use(middleware.CurrentUser(userRepo))
	r.LoadHTMLGlob("templates/*.html")

	routes.Register(r, routes.Deps{
		Auth:         controllers.NewAuthController(authService),
		Listings:     controllers.NewListingController(listingService),
		Cart:         controllers.NewCartController(cartService),
		Orders:       controllers.NewOrderController(orderService),
		ListingRepo:  listingRepo,
		LoginLimiter: middleware.NewRateLimiter(rate.Every(time.Second), 5, 10*time.Minute),
	})

	logger.Log.Info("Server starting", zap.String("port", cfg.Port))
	// The wrapper lets HTML forms reach PUT/DELETE routes via ?_method=.
	if err := http.ListenAndServe(":"+cfg.Port, middleware.MethodOverride(r)); err != nil {
		logger.Log.Fatal("Server error", zap.Error(err))
	}
}
