package routes

import (
	"github.com/attthulll/Learnsphere---Backend/backend/controllers"
	"github.com/attthulll/Learnsphere---Backend/backend/middleware"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, svc *services.Services, jwt *utils.JWTIssuer) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Middleware
	authMiddleware := middleware.AuthMiddleware(jwt)
	adminMiddleware := middleware.AdminMiddleware()
	instructorMiddleware := middleware.InstructorMiddleware()

	// Auth routes
	authController := controllers.NewAuthController(svc)
	userController := controllers.NewUserController(svc)
	auth := app.Group("/api/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/me", authMiddleware, userController.GetProfile)

	// Categories routes
	categoryController := controllers.NewCategoryController(svc)
	categories := app.Group("/api/categories")
	categories.Get("/", categoryController.GetCategories)
	categories.Post("/", authMiddleware, adminMiddleware, categoryController.CreateCategory)
	categories.Put("/:id", authMiddleware, adminMiddleware, categoryController.UpdateCategory)
	categories.Delete("/:id", authMiddleware, adminMiddleware, categoryController.DeleteCategory)

	// Courses routes. Fixed paths are registered before the :courseId ones.
	overviewController := controllers.NewOverviewController(svc)
	coursesController := controllers.NewCoursesController(svc)
	progressController := controllers.NewProgressController(svc)
	reviewController := controllers.NewReviewController(svc)

	courses := app.Group("/api/courses")
	courses.Get("/", overviewController.SearchCourses)
	courses.Post("/", authMiddleware, instructorMiddleware, coursesController.CreateCourse)

	courses.Get("/instructor/my-courses", authMiddleware, instructorMiddleware, coursesController.GetMyCourses)
	courses.Get("/instructor/:instructorId", overviewController.GetInstructorProfile)
	courses.Get("/student/enrolled", authMiddleware, coursesController.GetEnrolledCourses)
	courses.Get("/student/progress", authMiddleware, progressController.GetProgressOverview)

	courses.Get("/:courseId/reviews", reviewController.GetReviews)
	courses.Post("/:courseId/review", authMiddleware, reviewController.AddReview)
	courses.Post("/:courseId/enroll", authMiddleware, progressController.Enroll)
	courses.Get("/:courseId/progress", authMiddleware, progressController.GetProgress)
	courses.Get("/:courseId/certificate", authMiddleware, progressController.GetCertificate)
	courses.Post("/:courseId/modules/:moduleId/complete", authMiddleware, progressController.CompleteModule)

	courses.Post("/:courseId/modules", authMiddleware, instructorMiddleware, coursesController.AddModule)
	courses.Put("/:courseId/modules/:moduleId", authMiddleware, instructorMiddleware, coursesController.UpdateModule)
	courses.Delete("/:courseId/modules/:moduleId", authMiddleware, instructorMiddleware, coursesController.DeleteModule)

	courses.Get("/:courseId", authMiddleware, coursesController.GetCourse)
	courses.Put("/:courseId", authMiddleware, instructorMiddleware, coursesController.UpdateCourse)
	courses.Delete("/:courseId", authMiddleware, instructorMiddleware, coursesController.DeleteCourse)

	// Admin routes
	adminController := controllers.NewAdminController(svc)
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Get("/stats", adminController.GetStats)
	admin.Get("/users", adminController.GetUsers)
	admin.Delete("/users/:id", adminController.DeleteUser)
	admin.Get("/courses", adminController.GetCourses)
	admin.Delete("/courses/:id", adminController.DeleteCourse)
	admin.Get("/reviews", adminController.GetReviews)
	admin.Delete("/reviews/:courseId/:reviewId", adminController.DeleteReview)
	admin.Get("/instructors/pending", adminController.GetPendingInstructors)
	admin.Put("/instructors/:id/approve", adminController.ApproveInstructor)
	admin.Put("/instructors/:id/reject", adminController.RejectInstructor)
}
