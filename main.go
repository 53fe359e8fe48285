package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"timevault/internal/cart"
	"timevault/internal/config"
	"timevault/internal/database"
	"timevault/internal/handlers"
	"timevault/internal/middleware"
	"timevault/internal/mirror"
	"timevault/internal/payments"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureWatchIndexes(db); err != nil {
		log.Printf("⚠️ watch index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("⚠️ cart index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsureSerialIndexes(db); err != nil {
		log.Printf("⚠️ serial index warning: %v", err)
	}
	if err := database.EnsureWishlistIndexes(db); err != nil {
		log.Printf("⚠️ wishlist index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.AppEnv.RedisAddr,
		Password: config.AppEnv.RedisPassword,
	})
	cartStore := cart.NewRedisStore(redisClient)

	cartSvc := mirror.NewService(mirror.NewMongoCollection(db))

	mockProvider := payments.NewMockProvider()

	var paypalProvider payments.Provider
	if config.AppEnv.PayPalClientID != "" {
		provider, err := payments.NewPayPalProvider(
			config.AppEnv.PayPalClientID,
			config.AppEnv.PayPalSecret,
			config.AppEnv.PayPalBase,
		)
		if err != nil {
			log.Fatal(err)
		}
		paypalProvider = provider
	} else {
		log.Println("[PAYMENTS] [WARN] PayPal credentials not set, paypal method disabled")
	}

	r := gin.Default()
	r.Static("/public", "./public")

	r.POST("/auth/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.POST("/auth/login", handlers.Login(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))
	r.POST("/auth/refresh", handlers.Refresh(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/logout", handlers.Logout(db))

	r.POST("/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	r.GET("/watches", handlers.GetWatches(db))
	r.GET("/watches/:id", handlers.GetWatch(db))
	r.GET("/serials/:serialNumber", handlers.LookupSerial(db))
	r.GET("/orders/track/:orderNumber", handlers.TrackOrder(db))

	// anonymous session cart, keyed by the X-Session-ID header
	session := r.Group("/cart")
	{
		session.GET("", handlers.GetSessionCart(cartStore))
		session.POST("/items", handlers.AddSessionCartItem(db, cartStore))
		session.PUT("/items/:id", handlers.UpdateSessionCartItem(cartStore))
		session.DELETE("/items/:id", handlers.RemoveSessionCartItem(cartStore))
		session.DELETE("", handlers.ClearSessionCart(cartStore))
	}

	user := r.Group("/user")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/cart", handlers.GetCart(cartSvc))
		user.POST("/cart", handlers.AddToCart(db, cartSvc))
		user.PUT("/cart/:id", handlers.UpdateCartEntry(cartSvc))
		user.DELETE("/cart/:id", handlers.RemoveCartEntry(cartSvc))
		user.DELETE("/cart", handlers.ClearCart(cartSvc))
		user.POST("/cart/merge", handlers.MergeSessionCart(cartSvc))

		user.POST("/checkout/paypal", handlers.CreatePayPalOrder(cartSvc, paypalProvider, config.AppEnv.Currency))
		user.POST("/checkout", handlers.Checkout(handlers.NewOrderStore(db), cartSvc, mockProvider, paypalProvider, config.AppEnv.Currency))

		user.GET("/orders", handlers.GetMyOrders(db))
		user.GET("/transactions", handlers.GetMyTransactions(db))

		user.GET("/wishlist", handlers.GetWishlist(db))
		user.POST("/wishlist", handlers.AddToWishlist(db))
		user.DELETE("/wishlist/:watchId", handlers.RemoveFromWishlist(db))

		user.POST("/listings", handlers.CreateListing(db))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/watches", handlers.GetAllWatches(db))
		admin.POST("/watches", handlers.CreateWatch(db))
		admin.PUT("/watches/:id", handlers.UpdateWatch(db))
		admin.DELETE("/watches/:id", handlers.DeleteWatch(db))

		admin.GET("/serials", handlers.GetSerialRecords(db))
		admin.POST("/serials", handlers.CreateSerialRecord(db))

		admin.GET("/orders", handlers.GetAllOrders(db))
		admin.GET("/orders/stream", handlers.StreamOrders(db))
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
