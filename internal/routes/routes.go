package routes

import (
	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/handlers"
	"lavoir_back_end/internal/handlers/admin"
	"lavoir_back_end/internal/handlers/user"
	"lavoir_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Authentification
	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", middleware.LoginRateLimit(), handlers.Login)
		auth.POST("/login/phone", middleware.PhoneLoginRateLimit(), handlers.PhoneLogin)
		auth.POST("/code/request", middleware.OTPRateLimit(), handlers.RequestLoginCode)
		auth.POST("/code/verify", handlers.VerifyLoginCode)
		auth.POST("/refresh", handlers.Refresh)
		auth.POST("/logout", handlers.Logout)
		auth.GET("/:provider", handlers.BeginAuth)
		auth.GET("/:provider/callback", handlers.CallbackAuth)
	}

	// Webhook Stripe : signé par Stripe, donc hors authentification
	api.POST("/payments/webhook", handlers.StripeWebhook)

	// Catalogue public
	catalog := api.Group("/catalog")
	{
		catalog.GET("/products", user.ListProducts)
		catalog.GET("/products/search", user.SearchProducts)
		catalog.GET("/services", user.ListTypesOfService)
		catalog.GET("/deliveries", user.ListDeliveryTypes)
	}

	// Espace client
	client := api.Group("/")
	client.Use(middleware.AuthRequired())
	{
		client.GET("/me", user.Me)
		client.PUT("/me", user.UpdateProfile)
		client.PUT("/me/address", user.UpsertAddress)
		client.DELETE("/me/address", user.DeleteAddress)
		client.POST("/me/device", user.RegisterFCMToken)

		client.POST("/orders", user.CreateOrder)
		client.GET("/orders", user.OrderHistory)
		client.GET("/orders/active", user.ActiveOrders)
		client.GET("/orders/:id", user.GetOrder)
		client.POST("/orders/:id/cancel", user.CancelOrder)
		client.GET("/orders/:id/receipt", user.Receipt)
		client.POST("/orders/:id/payment-intent", user.CreatePaymentIntent)

		client.GET("/notifications", user.Notifications)
		client.GET("/notifications/unread", user.UnreadCount)
		client.POST("/notifications/:id/read", user.MarkNotificationRead)
		client.POST("/notifications/read-all", user.MarkAllNotificationsRead)
	}

	// Espace équipe : Admin et AdminAssistant. Les restrictions fines
	// (Paid, Cancelled) sont tranchées dans le service, pas ici.
	staff := api.Group("/admin")
	staff.Use(middleware.AuthRequired(), middleware.RequireStaff)
	{
		staff.GET("/orders", admin.ListOrders)
		staff.GET("/orders/status/:status", admin.ListOrdersByStatus)
		staff.PUT("/orders/:id/status", admin.UpdateOrderStatus)

		staff.POST("/notifications", admin.SendNotification)
	}

	// Réservé aux administrateurs pleins
	full := api.Group("/admin")
	full.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		full.DELETE("/orders/:id", admin.DeleteOrder)
		full.PUT("/orders/:id/price", admin.UpdateOrderPrice)

		full.POST("/products", admin.CreateProduct)
		full.PUT("/products/:id", admin.UpdateProduct)
		full.DELETE("/products/:id", admin.DeleteProduct)

		full.POST("/services", admin.CreateTypeOfService)
		full.PUT("/services/:id", admin.UpdateTypeOfService)
		full.DELETE("/services/:id", admin.DeleteTypeOfService)

		full.POST("/deliveries", admin.CreateDeliveryType)
		full.PUT("/deliveries/:id", admin.UpdateDeliveryType)
		full.DELETE("/deliveries/:id", admin.DeleteDeliveryType)

		full.GET("/coupons", admin.ListCoupons)
		full.POST("/coupons", admin.CreateCoupon)
		full.PUT("/coupons/:id", admin.UpdateCoupon)
		full.DELETE("/coupons/:id", admin.DeleteCoupon)

		full.GET("/users", admin.ListUsers)
		full.GET("/users/phone/:phone", admin.GetUserByPhone)
		full.GET("/users/:id", admin.GetUser)
		full.PUT("/users/:id/role", admin.SetUserRole)
		full.DELETE("/users/:id", admin.DeleteUser)

		full.POST("/notifications/broadcast", admin.BroadcastNotification)
	}
}
