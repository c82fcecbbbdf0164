package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/linskybing/hr-console-go/handlers"
	"github.com/linskybing/hr-console-go/middleware"
	"github.com/linskybing/hr-console-go/session"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handlers, store session.Store) {
	r.Use(middleware.CORSMiddleware())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/login", h.Auth.Login)
	r.POST("/auth/register", h.Auth.Register)
	r.GET("/auth/status", h.Auth.Status)

	auth := r.Group("/")
	auth.Use(middleware.RequireSession(store))
	{
		auth.POST("/auth/change-password", h.Auth.ChangePassword)
		auth.POST("/auth/logout", h.Auth.Logout)

		auth.GET("/ws", h.Hub.Serve)

		employees := auth.Group("/employees")
		{
			employees.GET("", h.Employee.List)
			employees.DELETE("/:id", h.Employee.Delete)
			employees.POST("/editor", h.Employee.OpenEditor)
			employees.GET("/editor", h.Employee.GetEditor)
			employees.DELETE("/editor", h.Employee.CloseEditor)
			employees.PUT("/editor/value", h.Employee.SetValue)
			employees.POST("/editor/submit", h.Employee.Submit)
		}

		form := auth.Group("/form")
		{
			form.GET("", h.Form.Get)
			form.PUT("", h.Form.Save)
			form.POST("/load", h.Form.Load)
			form.POST("/fields", h.Form.AddField)
			form.PATCH("/fields/:id", h.Form.UpdateField)
			form.DELETE("/fields/:id", h.Form.RemoveField)
			form.PUT("/fields/:id/options", h.Form.SetOptions)
			form.POST("/reorder", h.Form.Reorder)
			form.POST("/expand", h.Form.Expand)
			form.GET("/definitions", h.Form.ListDefinitions)
			form.POST("/definitions", h.Form.CreateDefinition)
			form.PUT("/definitions/:id", h.Form.UpdateDefinition)
			form.DELETE("/definitions/:id", h.Form.DeleteDefinition)
		}
	}
}
