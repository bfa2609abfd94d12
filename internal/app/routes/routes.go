package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/web79/smiportal/internal/app/controllers"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/middleware"
)

// SetupRouter configures all application routes under /api
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	userController *controllers.UserController,
	evaluationController *controllers.EvaluationController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	api.GET("/health", healthController.Health)

	// --- Public routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	students := api.Group("/students")
	{
		students.GET("", studentController.GetStudents)
		students.GET("/:id", studentController.GetStudentByID)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", courseController.GetCourses)
		courses.GET("/:id", courseController.GetCourseByID)
	}

	api.GET("/users", userController.GetUsers)

	// --- Authenticated routes (any staff role) ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/students", studentController.CreateStudent)
		authenticated.GET("/students/export", studentController.ExportStudents)
		authenticated.PATCH("/students/:id", studentController.UpdateStudent)

		authenticated.POST("/courses", courseController.CreateCourse)
		authenticated.PATCH("/courses/:id", courseController.UpdateCourse)
		authenticated.DELETE("/courses/:id", courseController.DeleteCourse)

		authenticated.POST("/evaluations", evaluationController.SendEvaluation)

		// Super-admin only
		superAdmin := authenticated.Group("")
		superAdmin.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
		{
			superAdmin.DELETE("/students/:id", studentController.DeleteStudent)
			superAdmin.POST("/users", userController.CreateUser)
		}
	}
}
