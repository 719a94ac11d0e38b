package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GetHealth godoc
// @Summary Health check
// @Description Reports whether the service is up.
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func GetHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
