package studentRoutes

import (
	studentController "techstorm/controllers/students"
	"techstorm/middleware"
	"techstorm/validators"
	studentValidator "techstorm/validators/students"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentRoutes(app *fiber.App) {
	studentGroup := app.Group("/students", middleware.JWTMiddleware, middleware.LoadUser)

	studentGroup.Get("/dashboard", studentController.Dashboard)
	studentGroup.Get("/my-courses", studentController.MyCourses)
	studentGroup.Get("/enrolled-courses", studentController.EnrolledCourses)
	studentGroup.Get("/achievements", studentController.Achievements)
	studentGroup.Get("/grades", studentController.Grades)

	studentGroup.Get("/courses/:id/content", validators.ID(), studentController.CourseContent)
	studentGroup.Get("/courses/:id/enrolled", validators.ID(), studentController.CheckEnrollment)

	studentGroup.Post("/enroll", studentValidator.Enroll(), studentController.Enroll)
	studentGroup.Delete("/enroll/:courseId", validators.ParamID("courseId", "courseId"), studentController.Unenroll)

	studentGroup.Post("/lessons/:id/complete", validators.ID(), studentValidator.CompleteLesson(), studentController.CompleteLesson)
	studentGroup.Post("/quizzes/:id/submit", validators.ID(), studentValidator.SubmitQuiz(), studentController.SubmitQuiz)
	studentGroup.Post("/assignments/:id/submit", validators.ID(), studentValidator.SubmitAssignment(), studentController.SubmitAssignment)
}
