package authRoutes

import (
	authController "techstorm/controllers/auth"
	"techstorm/middleware"
	authValidator "techstorm/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", middleware.RegisterRateLimiter(), authValidator.Register(), authController.Register)
	authGroup.Post("/login", middleware.LoginRateLimiter(), authValidator.Login(), authController.Login)
	authGroup.Post("/forgot-password", middleware.ForgotPasswordRateLimiter(), authValidator.ForgotPassword(), authController.ForgotPassword)
	authGroup.Post("/reset-password", authValidator.ResetPassword(), authController.ResetPassword)

	authGroup.Get("/me", middleware.JWTMiddleware, middleware.LoadUser, authController.Me)
	authGroup.Patch("/profile", middleware.JWTMiddleware, middleware.LoadUser, authValidator.UpdateProfile(), authController.UpdateProfile)
	authGroup.Post("/password", middleware.JWTMiddleware, middleware.LoadUser, authValidator.ChangePassword(), authController.ChangePassword)
	authGroup.Post("/logout", middleware.JWTMiddleware, authController.Logout)
	authGroup.Get("/login-history", middleware.JWTMiddleware, authValidator.LoginHistoryList(), authController.LoginHistoryList)
}
