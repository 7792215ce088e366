package routes

import (
	"net/http"
	"slices"

	"whisp/config"
	"whisp/controllers"
	"whisp/middleware"
	"whisp/store"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth    *controllers.AuthController
	Message *controllers.MessageController
	WS      *controllers.WSController
}

// Register wires the whole HTTP surface onto the engine.
func Register(r *gin.Engine, ctrl Controllers, users store.UserStore, cfg *config.Config) {
	r.Use(corsMiddleware(cfg.CORS.Origins))

	r.Static("/uploads", cfg.Upload.Dir)

	guard := middleware.AuthMiddleware(users, cfg)

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", ctrl.Auth.Signup)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/logout", ctrl.Auth.Logout)
		auth.PUT("/updateProfile", guard, ctrl.Auth.UpdateProfile)
		auth.GET("/check", ctrl.Auth.CheckAuth)
	}

	message := r.Group("/api/message", guard)
	{
		message.GET("/user", ctrl.Message.GetUsersForSidebar)
		message.GET("/:id", ctrl.Message.GetMessages)
		message.POST("/send/:id", ctrl.Message.SendMessage)
	}

	r.GET("/api/ws", guard, ctrl.WS.Handler)
}

// corsMiddleware admits the configured SPA origins with credentials.
func corsMiddleware(origins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && slices.Contains(origins, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
