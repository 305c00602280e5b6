package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/controllers"
	"github.com/dapurcake/cakeshop-app/live"
	"github.com/dapurcake/cakeshop-app/middlewares"
	"github.com/dapurcake/cakeshop-app/services"
)

// SetupRouter merakit seluruh endpoint. Suppressor dan cache dishare
// dengan ChangeMonitor supaya mutasi lokal dikenali saat change feed
// meng-echo-nya.
func SetupRouter(db *gorm.DB, suppressor *live.Suppressor, cache *live.OrderCache) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limiter global per IP. Harus dipasang sebelum route
	// didaftarkan; gin membekukan chain handler saat registrasi.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// Service inti
	approval := services.NewOrderApproval(db, suppressor)

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	customerCtrl := controllers.NewCustomerController(db)
	cakeCtrl := controllers.NewCakeController(db)
	assetCtrl := controllers.NewAssetController(db)
	ingredientCtrl := controllers.NewIngredientController(db)
	inventoryCtrl := controllers.NewInventoryController(db, approval.Ledger)
	orderCtrl := controllers.NewOrderController(db, approval, cache)
	paymentCtrl := controllers.NewPaymentController(db, approval)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// WebSocket untuk sesi admin/staff (token via query string)
	ws := r.Group("/live")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/ws", controllers.LiveHandler)
	}

	// Katalog bisa dilihat tanpa login
	r.GET("/cakes", cakeCtrl.GetAllCakes)
	r.GET("/cakes/:cake_id", cakeCtrl.GetCakeByID)
	r.GET("/assets", assetCtrl.GetAllAssets)
	r.GET("/assets/:asset_id", assetCtrl.GetAssetByID)

	// ----------------------------------------------------------------
	//                      PROTECTED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)

		// Orders + state machine
		auth.GET("/orders", orderCtrl.GetAllOrders)
		auth.GET("/orders/feed", orderCtrl.GetOrderFeed)
		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.GET("/orders/:order_id/availability", orderCtrl.CheckAvailability)
		auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		auth.PATCH("/orders/:order_id", orderCtrl.UpdateOrderSchedule)

		// Payments (auto-approval lewat state machine)
		auth.GET("/orders/:order_id/payment", paymentCtrl.GetPaymentByOrder)
		auth.PATCH("/orders/:order_id/payment", paymentCtrl.UpdatePaymentStatus)

		// Inventory ledger
		auth.GET("/inventory", inventoryCtrl.GetAllInventory)
		auth.GET("/inventory/low-stock", inventoryCtrl.GetLowStock)
		auth.GET("/inventory/:ingredient_id", inventoryCtrl.GetInventoryByIngredient)
		auth.PATCH("/inventory/:ingredient_id", inventoryCtrl.AdjustInventory)

		// Katalog (mutasi admin-only dicek di controller)
		auth.POST("/cakes", cakeCtrl.CreateCake)
		auth.PUT("/cakes/:cake_id/recipe", cakeCtrl.SetCakeRecipe)
		auth.PATCH("/cakes/:cake_id", cakeCtrl.UpdateCake)
		auth.DELETE("/cakes/:cake_id", cakeCtrl.DeleteCake)

		auth.POST("/assets", assetCtrl.CreateAsset)
		auth.PUT("/assets/:asset_id/recipe", assetCtrl.SetAssetRecipe)
		auth.DELETE("/assets/:asset_id", assetCtrl.DeleteAsset)

		auth.GET("/ingredients", ingredientCtrl.GetAllIngredients)
		auth.POST("/ingredients", ingredientCtrl.CreateIngredient)
		auth.PATCH("/ingredients/:ingredient_id", ingredientCtrl.UpdateIngredient)
		auth.DELETE("/ingredients/:ingredient_id", ingredientCtrl.DeleteIngredient)

		auth.GET("/customers", customerCtrl.GetAllCustomers)
		auth.POST("/customers", customerCtrl.CreateCustomer)
		auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)

		auth.GET("/notifications", notificationCtrl.GetAllNotifications)
		auth.POST("/notifications", notificationCtrl.CreateNotification)
		auth.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
		auth.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkNotificationRead)

		// Hapus data hanya untuk admin
		admin := auth.Group("/")
		admin.Use(middlewares.RequireRoles("admin"))
		{
			admin.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
		}
	}

	return r
}
