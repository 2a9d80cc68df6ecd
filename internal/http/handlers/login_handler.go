package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tbourn/go-error-codes/internal/http/middleware"
)

// LoginRequest is the request body for POST /login.
type LoginRequest struct {
	UserName string `json:"userName" binding:"required" example:"alice"`
	Password string `json:"password" example:"s3cret"`
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Accepts any well-formed credentials.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
//
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  httperr.Body  "Bad request"
// @Router      /login [post]
func (h *Handlers) Login(c *gin.Context) {
	_, span := tracer.Start(c.Request.Context(), "login")
	defer span.End()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	span.SetAttributes(attribute.String("user_name", req.UserName))

	lg := middleware.LoggerFrom(c)
	lg.Info().Str("user_name", req.UserName).Msg("login")

	ok(c, http.StatusOK, MessageResponse{Message: "Authorization succeeded"})
}
