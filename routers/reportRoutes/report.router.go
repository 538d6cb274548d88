package reportRoutes

import (
	reportController "techstorm/controllers/reports"
	"techstorm/middleware"
	"techstorm/models"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	reportGroup := app.Group("/reports", middleware.JWTMiddleware)

	reportGroup.Get("/admin-dashboard", adminOnly, reportController.AdminDashboard)
	reportGroup.Get("/mentor-dashboard", middleware.RequireRoles(models.RoleMentor, models.RoleAdmin), reportController.MentorDashboard)
	reportGroup.Get("/platform", adminOnly, reportController.PlatformReport)
	reportGroup.Get("/platform/export", adminOnly, reportController.ExportPlatformReport)
}
