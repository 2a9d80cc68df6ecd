package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck godoc
// @ID          healthCheck
// @Summary     Liveness probe
// @Description Answers with a fixed plain-text body while the server is up.
// @Tags        Health
// @Produce     plain
// @Success     200  {string}  string  "It works!"
// @Router      / [get]
func (h *Handlers) HealthCheck(c *gin.Context) {
	_, span := tracer.Start(c.Request.Context(), "health check")
	defer span.End()

	c.String(http.StatusOK, "It works!")
}
