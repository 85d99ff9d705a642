package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khalari/khalari/internal/content"
	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/learner"
	"github.com/khalari/khalari/internal/payment"
	"github.com/khalari/khalari/internal/roadmap"
)

// Response is the envelope of every API reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Message: "success", Data: data})
}

func fail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{Code: code, Message: message})
}

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, roadmap.ErrModuleIndex), errors.Is(err, engine.ErrNoRoadmap):
		return http.StatusNotFound
	case errors.Is(err, roadmap.ErrModuleLocked), errors.Is(err, roadmap.ErrModuleCompleted):
		return http.StatusConflict
	case errors.Is(err, learner.ErrInvalidAmount), errors.Is(err, payment.ErrUnknownPack),
		errors.Is(err, payment.ErrFailed):
		return http.StatusBadRequest
	case errors.Is(err, payment.ErrSignature), errors.Is(err, ErrToken):
		return http.StatusUnauthorized
	case errors.Is(err, content.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func failErr(c *gin.Context, err error) {
	fail(c, statusOf(err), err.Error())
}
