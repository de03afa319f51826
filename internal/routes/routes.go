package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/kirana/internal/config"
	"github.com/example/kirana/internal/expenses"
	"github.com/example/kirana/internal/handlers"
	"github.com/example/kirana/internal/middleware"
	"github.com/example/kirana/internal/orders"
	"github.com/example/kirana/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)

	orderStore := orders.NewGormStore(db)
	expenseLedger := expenses.NewLedger(db)

	authHandler := handlers.NewAuthHandler(db, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(db, orderStore, telegramService)
	orderHandler := handlers.NewOrderHandler(orderStore)
	profileHandler := handlers.NewProfileHandler(db)
	adminHandler := handlers.NewAdminHandler(orderStore, expenseLedger)
	expenseHandler := handlers.NewExpenseHandler(expenseLedger)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Customer routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Post("/checkout", checkoutHandler.Checkout)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)
	protected.Post("/profile/favorites/:productId", profileHandler.AddFavorite)
	protected.Delete("/profile/favorites/:productId", profileHandler.RemoveFavorite)

	// Admin routes
	admin := protected.Group("/admin", middleware.AdminOnly(db))

	admin.Get("/orders", adminHandler.ListAllOrders)
	admin.Put("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.Get("/stats", adminHandler.DashboardStats)
	admin.Get("/revenue", adminHandler.RevenueChart)

	admin.Get("/expenses", expenseHandler.ListExpenses)
	admin.Post("/expenses", expenseHandler.CreateExpense)
	admin.Put("/expenses/:id", expenseHandler.UpdateExpense)
	admin.Delete("/expenses/:id", expenseHandler.DeleteExpense)
	admin.Get("/expense-categories", expenseHandler.ListExpenseCategories)
}
