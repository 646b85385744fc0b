package routes

import (
	"github.com/gin-gonic/gin"

	"taskmanager/controllers"
	"taskmanager/middleware"
	"taskmanager/storage"
)

// Deps holds everything the router needs, passed in explicitly so the
// handlers carry no ambient state.
type Deps struct {
	Tasks       storage.TaskStore
	Users       storage.UserStore
	JWTSecret   []byte
	RequireAuth bool
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	taskController := controllers.TaskController{Store: deps.Tasks}
	authController := controllers.AuthController{Users: deps.Users, JWTSecret: deps.JWTSecret}

	auth := r.Group("/api/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)

	tasks := r.Group("/api/tasks")
	if deps.RequireAuth {
		tasks.Use(middleware.AuthMiddleware(deps.JWTSecret))
	}
	tasks.GET("", taskController.GetTasks)
	tasks.GET("/stats", taskController.GetTaskStats)
	tasks.POST("", taskController.CreateTask)
	tasks.PUT("/:id", taskController.UpdateTask)
	tasks.DELETE("/:id", taskController.DeleteTask)

	return r
}
