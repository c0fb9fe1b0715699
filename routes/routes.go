package routes

import (
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	secret := h.Cfg.JWTSecret

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		public.GET("/restaurants", h.ListRestaurants)
		public.GET("/restaurants/featured", h.FeaturedRestaurants)
		public.GET("/restaurants/search", h.SearchRestaurants)
		public.GET("/restaurants/:id", h.GetRestaurant)

		public.GET("/foods", h.ListFoods)
		public.GET("/foods/featured", h.FeaturedFoods)
		public.GET("/foods/search", h.SearchFoods)
		public.GET("/foods/:id", h.GetFood)
		public.GET("/foods/restaurant/:id", h.FoodsByRestaurant)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(secret))
	{
		auth.GET("/auth/me", h.Me)
		auth.PUT("/auth/update-profile", h.UpdateProfile)

		auth.POST("/orders", h.PlaceOrder)
		auth.GET("/orders/user", h.MyOrders)
		auth.GET("/orders/:id", h.GetOrder)
		auth.GET("/orders/:id/qr", h.OrderQR)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(secret), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/dashboard", h.Dashboard)

		admin.GET("/orders", h.AdminOrders)
		admin.PUT("/orders/:id/status", h.UpdateOrderStatus)
		admin.PUT("/orders/:id/assign-delivery", h.AssignDelivery)

		admin.GET("/restaurants", h.ListRestaurants)
		admin.POST("/restaurants", h.CreateRestaurant)
		admin.PUT("/restaurants/:id", h.UpdateRestaurant)

		admin.GET("/foods", h.ListFoods)
		admin.POST("/foods", h.CreateFood)
		admin.PUT("/foods/:id", h.UpdateFood)

		admin.GET("/users", h.AdminUsers)
		admin.GET("/delivery-partners", h.DeliveryPartners)
	}
}
