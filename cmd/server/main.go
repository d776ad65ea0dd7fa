package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ethioshop-backend/internal/chat"
	"ethioshop-backend/internal/config"
	"ethioshop-backend/internal/controller"
	"ethioshop-backend/internal/email"
	"ethioshop-backend/internal/middleware"
	"ethioshop-backend/internal/payment"
	"ethioshop-backend/internal/rabbit"
	"ethioshop-backend/internal/repository"
	"ethioshop-backend/internal/service"
)

func main() {
	cfg := config.Load()

	// Conexión a MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.MongoDBName)

	// Repositorios
	userRepo := repository.NewMongoUserRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	bundleRepo := repository.NewMongoBundleRepository(db)
	referralRepo := repository.NewMongoReferralRepository(db)
	discountRepo := repository.NewMongoDiscountRepository(db)
	notificationRepo := repository.NewMongoNotificationRepository(db)
	activityRepo := repository.NewMongoActivityRepository(db)
	cartRepo := repository.NewMongoCartRepository(db)
	wishlistRepo := repository.NewMongoWishlistRepository(db)
	returnRepo := repository.NewMongoReturnRepository(db)
	categoryRepo := repository.NewMongoCategoryRepository(db)
	feedbackRepo := repository.NewMongoFeedbackRepository(db)
	supportRepo := repository.NewMongoSupportRepository(db)

	// Conexión a RabbitMQ
	conn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("Error conectando a RabbitMQ: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Error creando canal en RabbitMQ: %v", err)
	}
	publisher, err := rabbit.NewOrderPlacedPublisher(ch)
	if err != nil {
		log.Fatalf("Error declarando exchange order_placed: %v", err)
	}

	// Colaboradores externos
	mailer := email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	stripeGateway := payment.NewStripeGateway(cfg.StripeKey)
	mobileGateway := payment.NewMobileGateway()

	// Servicios
	authService := service.NewAuthService(cfg.JWTSecret)
	userService := service.NewUserService(userRepo, referralRepo, orderRepo, notificationRepo,
		activityRepo, productRepo, authService)
	orderService := service.NewOrderService(service.OrderDeps{
		Orders:        orderRepo,
		Products:      productRepo,
		Bundles:       bundleRepo,
		Users:         userRepo,
		Referrals:     referralRepo,
		Notifications: notificationRepo,
		Activities:    activityRepo,
		Mailer:        mailer,
		Events:        publisher,
		Payments:      stripeGateway,
	})
	productService := service.NewProductService(productRepo, orderRepo, userRepo, notificationRepo)
	bundleService := service.NewBundleService(bundleRepo, productRepo)
	discountService := service.NewDiscountService(discountRepo)
	returnService := service.NewReturnService(returnRepo, orderRepo, notificationRepo)
	cartService := service.NewCartService(cartRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	activityService := service.NewActivityService(activityRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo, orderRepo)
	supportService := service.NewSupportService(supportRepo)

	// Chat en vivo
	chatHub := chat.NewHub(chat.NewMongoStore(db), activityRepo)
	go chatHub.Run()
	chatHandler := chat.NewHandler(chatHub, authService)

	// Handlers
	userCtrl := controller.NewUserController(userService)
	orderCtrl := controller.NewOrderController(orderService)
	productCtrl := controller.NewProductController(productService)
	bundleCtrl := controller.NewBundleController(bundleService)
	discountCtrl := controller.NewDiscountController(discountService)
	returnCtrl := controller.NewReturnController(returnService)
	cartCtrl := controller.NewCartController(cartService)
	wishlistCtrl := controller.NewWishlistController(wishlistService)
	notificationCtrl := controller.NewNotificationController(notificationService)
	activityCtrl := controller.NewActivityController(activityService)
	categoryCtrl := controller.NewCategoryController(categoryService)
	feedbackCtrl := controller.NewFeedbackController(feedbackService)
	supportCtrl := controller.NewSupportController(supportService)
	paymentCtrl := controller.NewPaymentController(stripeGateway, mobileGateway)

	// Router
	r := gin.Default()
	api := r.Group("/api")

	// Rutas públicas
	api.POST("/users/register", userCtrl.Register)
	api.POST("/users/login", userCtrl.Login)
	api.GET("/products", productCtrl.GetProducts)
	api.GET("/products/:id", productCtrl.GetProduct)
	api.GET("/products/:id/related", productCtrl.GetRelated)
	api.GET("/bundles", bundleCtrl.GetBundles)
	api.GET("/bundles/:id", bundleCtrl.GetBundle)
	api.GET("/categories", categoryCtrl.GetCategories)
	api.GET("/chat/ws/:conversationId", chatHandler.Serve)

	// Rutas protegidas (requieren token)
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(authService))

	auth.GET("/users/profile", userCtrl.Profile)
	auth.PUT("/users/profile", userCtrl.UpdateProfile)
	auth.POST("/users/apply-referral-discount", userCtrl.ApplyReferralDiscount)
	auth.DELETE("/users/account", userCtrl.DeleteAccount)

	auth.POST("/orders", orderCtrl.PlaceOrder)
	auth.GET("/orders/my-orders", orderCtrl.GetMyOrders)
	auth.GET("/orders/:id", orderCtrl.GetOrder)
	auth.PUT("/orders/:id/cancel", orderCtrl.CancelOrder)

	auth.GET("/products/recommendations", productCtrl.GetRecommendations)
	auth.POST("/products/:id/reviews", productCtrl.AddReview)

	auth.POST("/discounts/validate", discountCtrl.ValidateDiscount)

	auth.GET("/cart", cartCtrl.GetCart)
	auth.POST("/cart", cartCtrl.SaveCart)

	auth.GET("/wishlist", wishlistCtrl.GetWishlist)
	auth.POST("/wishlist", wishlistCtrl.AddItem)
	auth.DELETE("/wishlist/:productId", wishlistCtrl.RemoveItem)

	auth.GET("/notifications", notificationCtrl.GetNotifications)
	auth.PUT("/notifications/:id", notificationCtrl.UpdateNotification)

	auth.GET("/activities/my-activity", activityCtrl.GetMyActivity)

	auth.POST("/returns", returnCtrl.CreateReturn)
	auth.GET("/returns/my-returns", returnCtrl.GetMyReturns)

	auth.POST("/feedback", feedbackCtrl.SubmitFeedback)
	auth.GET("/feedback/order/:orderId", feedbackCtrl.GetOrderFeedback)
	auth.POST("/support", supportCtrl.SubmitRequest)
	auth.GET("/support/my-requests", supportCtrl.GetMyRequests)

	auth.POST("/payments/create-intent", paymentCtrl.CreateIntent)
	auth.POST("/payments/telebirr", paymentCtrl.PayWithTelebirr)
	auth.POST("/payments/mpesa", paymentCtrl.PayWithMpesa)

	auth.GET("/chat/history/:conversationId", chatHandler.History)

	// Rutas admin
	admin := auth.Group("")
	admin.Use(middleware.AdminOnly())

	admin.GET("/users", userCtrl.GetUsers)
	admin.PUT("/users/:id", userCtrl.UpdateUser)
	admin.DELETE("/users/:id", userCtrl.DeleteUser)
	admin.GET("/users/referrals", userCtrl.GetReferrals)

	admin.GET("/orders", orderCtrl.GetAllOrders)
	admin.PUT("/orders/:id/status", orderCtrl.UpdateStatus)
	admin.GET("/orders/analytics", orderCtrl.Analytics)

	admin.POST("/products", productCtrl.CreateProduct)
	admin.PUT("/products/:id", productCtrl.UpdateProduct)
	admin.DELETE("/products/:id", productCtrl.DeleteProduct)
	admin.PUT("/products/:id/reviews/:reviewId/approve", productCtrl.ApproveReview)
	admin.GET("/products/analytics/reviews", productCtrl.ReviewAnalytics)
	admin.GET("/products/analytics/category-sales", productCtrl.CategorySales)

	admin.POST("/bundles", bundleCtrl.CreateBundle)
	admin.PUT("/bundles/:id", bundleCtrl.UpdateBundle)
	admin.DELETE("/bundles/:id", bundleCtrl.DeleteBundle)

	admin.POST("/categories", categoryCtrl.CreateCategory)
	admin.PUT("/categories/:id", categoryCtrl.UpdateCategory)
	admin.DELETE("/categories/:id", categoryCtrl.DeleteCategory)

	admin.GET("/discounts", discountCtrl.GetDiscounts)
	admin.POST("/discounts", discountCtrl.CreateDiscount)
	admin.PUT("/discounts/:id", discountCtrl.UpdateDiscount)
	admin.DELETE("/discounts/:id", discountCtrl.DeleteDiscount)

	admin.GET("/returns", returnCtrl.GetAllReturns)
	admin.PUT("/returns/:id", returnCtrl.ResolveReturn)

	admin.GET("/activities", activityCtrl.GetActivities)
	admin.GET("/activities/trends", activityCtrl.GetTrends)
	admin.GET("/activities/heatmap", activityCtrl.GetHeatmap)

	// Ejecutar servidor
	log.Printf("EthioShop backend ejecutándose en puerto %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
