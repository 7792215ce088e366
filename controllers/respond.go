package controllers

import (
	"whisp/apperrors"
	"whisp/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps any error to the single {"message": ...}
// envelope. Internal causes are logged, never surfaced.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	app := apperrors.FromError(err)
	if app.Code == apperrors.CodeInternal || app.Code == apperrors.CodeUploadFailed {
		log.WithField("path", c.FullPath()).WithError(err).Error("request failed")
	}
	c.JSON(app.HTTPStatus(), gin.H{"message": app.Message})
}
