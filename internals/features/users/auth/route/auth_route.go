// file: internals/features/users/auth/route/auth_route.go
package route

import (
	controller "pendudukku_backend/internals/features/users/auth/controller"
	rateLimiter "pendudukku_backend/internals/middlewares"
	authMiddleware "pendudukku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	// ==========================
	// Base: /api/auth
	// ==========================
	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/logout", authController.Logout)

	// 🔐 Protected
	baseAuth.Get("/me", authMiddleware.AuthMiddleware(), authController.Me)
}
