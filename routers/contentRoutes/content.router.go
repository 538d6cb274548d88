package contentRoutes

import (
	contentController "techstorm/controllers/content"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/validators"
	contentValidator "techstorm/validators/content"

	"github.com/gofiber/fiber/v2"
)

func SetupContentRoutes(app *fiber.App) {
	contentGroup := app.Group("/content", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleMentor, models.RoleAdmin))

	contentGroup.Post("/modules", contentValidator.CreateModule(), contentController.CreateModule)
	contentGroup.Patch("/modules/:id", validators.ID(), contentValidator.UpdateModule(), contentController.UpdateModule)
	contentGroup.Delete("/modules/:id", validators.ID(), contentController.DeleteModule)

	contentGroup.Post("/lessons", contentValidator.CreateLesson(), contentController.CreateLesson)
	contentGroup.Patch("/lessons/:id", validators.ID(), contentValidator.UpdateLesson(), contentController.UpdateLesson)
	contentGroup.Delete("/lessons/:id", validators.ID(), contentController.DeleteLesson)

	contentGroup.Post("/reorder", contentValidator.Reorder(), contentController.Reorder)

	contentGroup.Post("/quizzes", contentValidator.UpsertQuiz(), contentController.UpsertQuiz)
	contentGroup.Post("/quizzes/generate-ai", contentValidator.GenerateQuiz(), contentController.GenerateQuiz)
	contentGroup.Post("/questions", contentValidator.CreateQuestion(), contentController.CreateQuestion)
	contentGroup.Delete("/questions/:id", validators.ID(), contentController.DeleteQuestion)

	contentGroup.Post("/assignments", contentValidator.UpsertAssignment(), contentController.UpsertAssignment)
}
