package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/fastygo/taskboard/api/handler"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Posts  *apiHandler.PostsHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()
	r.RedirectTrailingSlash = false

	r.GET("/health", handlers.Health.Check)

	api := r.Group("/api/v1")

	api.GET("/tasks", handlers.Task.ListTasks)
	api.POST("/tasks", handlers.Task.CreateTask)
	api.DELETE("/tasks", handlers.Task.ClearTasks)
	api.GET("/tasks/stats", handlers.Task.Stats)
	api.GET("/tasks/{id}", handlers.Task.GetTask)
	api.PATCH("/tasks/{id}", handlers.Task.UpdateTask)
	api.PUT("/tasks/{id}", handlers.Task.UpdateTask)
	api.DELETE("/tasks/{id}", handlers.Task.DeleteTask)
	api.POST("/tasks/{id}/toggle", handlers.Task.ToggleTask)

	api.GET("/posts", handlers.Posts.ListPosts)
	api.POST("/posts/reload", handlers.Posts.Reload)

	return r
}
