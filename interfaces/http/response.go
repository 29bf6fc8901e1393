package http

import (
	"errors"

	"channel-insights/domain/apperror"
	"channel-insights/domain/dto"
	"channel-insights/infrastructure/logger"
	"channel-insights/interfaces/middleware"

	"github.com/gin-gonic/gin"
)

// respondError writes the notification-shaped error body for err
func respondError(ctx *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	kind := apperror.Kind(err)

	entry := logger.GetLogger().WithFields(map[string]interface{}{
		"request_id": middleware.RequestID(ctx),
		"kind":       kind,
		"error":      err.Error(),
	})
	if kind == "internal" {
		entry.Error("Action failed")
	} else {
		entry.Info("Action rejected")
	}

	ctx.JSON(status, dto.Res{
		Error:     true,
		Kind:      kind,
		Message:   userMessage(err),
		RequestID: middleware.RequestID(ctx),
	})
}

func userMessage(err error) string {
	var perr *apperror.ProviderError
	if errors.As(err, &perr) {
		return perr.Message
	}
	return err.Error()
}
