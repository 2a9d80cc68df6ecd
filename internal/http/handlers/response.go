package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-error-codes/internal/http/middleware"
	"github.com/tbourn/go-error-codes/pkg/httperr"
)

// MessageResponse is the body of successful commands.
type MessageResponse struct {
	Message string `json:"message" example:"Authorization succeeded"`
}

// fail renders err as the uniform error body and aborts the request.
//
// Errors that are not httperr.ResponseError become a 500 with a null error
// code. Server errors (>=500) are logged using the request-scoped logger.
func fail(c *gin.Context, err error) {
	resp := httperr.Render(err)

	if resp.Status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Err(err).
			Int("status", resp.Status).
			Msg("api error")
	}

	httperr.Abort(c, resp)
}

// failBind attaches a request binding error and leaves the rendering to
// httperr.ErrorHandler: a 400 with the canonical reason phrase and a null
// error code. The error itself never reaches the client.
func failBind(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.Status(http.StatusBadRequest)
	c.Abort()
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
