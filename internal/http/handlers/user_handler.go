package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tbourn/go-error-codes/internal/http/middleware"
	"github.com/tbourn/go-error-codes/internal/usecases"
)

// RegisterUserRequest is the request body for POST /users.
type RegisterUserRequest struct {
	UserName string `json:"userName" binding:"required" example:"alice"`
	Password string `json:"password" example:"s3cret"`
}

// RegisterUser godoc
// @ID          registerUser
// @Summary     Register a user
// @Description Registers a user. Failures carry an application error code:
// @Description 1 (unexpected), 2 (repository), 10000 (weak password),
// @Description 10001 (user already exists).
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterUserRequest  true  "User to register"
//
// @Success     200
// @Failure     400  {object}  httperr.Body  "Bad request or weak password"
// @Failure     409  {object}  httperr.Body  "User already exists"
// @Failure     500  {object}  httperr.Body  "Internal error"
// @Router      /users [post]
func (h *Handlers) RegisterUser(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "register user")
	defer span.End()

	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	span.SetAttributes(attribute.String("user_name", req.UserName))

	lg := middleware.LoggerFrom(c)
	// Use cases log through the context logger.
	ctx = lg.WithContext(ctx)

	err := h.users.RegisterUser(ctx, usecases.RegistrationUser{
		UserName: req.UserName,
		Password: req.Password,
	})
	if err != nil {
		resp := registerUserResponse(err)
		span.RecordError(resp)
		span.SetStatus(codes.Error, resp.Error())

		lg.Warn().
			Str("user_name", req.UserName).
			Int("status", resp.StatusCode()).
			Uint32("error_code", resp.ErrorCode()).
			Msg("register user failed")

		fail(c, resp)
		return
	}

	c.Status(http.StatusOK)
}
