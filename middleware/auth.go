package middleware

import (
	"whisp/apperrors"
	"whisp/config"
	"whisp/models"
	"whisp/store"
	"whisp/utils"

	"github.com/gin-gonic/gin"
)

// CtxUser is the gin context key the guard stores the resolved user
// under.
const CtxUser = "user"

// AuthMiddleware is the session guard: cookie -> verified token ->
// live user record on the context. Every failure is the same 401
// shape; no distinction leaks to the caller beyond the message.
func AuthMiddleware(users store.UserStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.AuthCookie)
		if err != nil || token == "" {
			abort(c, apperrors.ErrNoToken)
			return
		}

		userID, err := utils.ParseToken(token, cfg)
		if err != nil {
			abort(c, apperrors.ErrInvalidToken)
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			abort(c, apperrors.Internal("Authentication failed"))
			return
		}
		if user == nil {
			abort(c, apperrors.Unauthorized("User not found"))
			return
		}

		c.Set(CtxUser, user)
		c.Next()
	}
}

// CurrentUser returns the user the guard attached. Only valid behind
// AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(CtxUser).(*models.User)
}

func abort(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus(), gin.H{"message": err.Message})
}
