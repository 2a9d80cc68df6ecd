package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKey is the Gin context key under which Abort records the written
// Response, for metrics and access logs.
const ContextKey = "httperr.response"

// Abort writes r and stops the handler chain.
func Abort(c *gin.Context, r Response) {
	c.Set(ContextKey, r)
	h := c.Writer.Header()
	for k, vv := range r.Header {
		h.Del(k)
		for _, v := range vv {
			h.Add(k, v)
		}
	}
	c.Data(r.Status, r.Header.Get("Content-Type"), r.Body)
	c.Abort()
}

// FromContext returns the error response written for the request, if any.
func FromContext(c *gin.Context) (Response, bool) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return Response{}, false
	}
	r, ok := v.(Response)
	return r, ok
}

// Write renders err (see Render) and stops the handler chain.
func Write(c *gin.Context, err error) {
	Abort(c, Render(err))
}

// ErrorHandler returns a middleware that renders failures nothing else
// rendered. After the chain runs, and only if no body was written:
//   - the last error attached with c.Error is rendered with Render, unless
//     it is not a ResponseError and the handler already set a status >= 400,
//     in which case that status is rendered with FromStatus (bind errors);
//   - otherwise a status >= 400 is rendered with FromStatus.
//
// Install it early so that it wraps the whole chain, including the 404 and
// 405 fallbacks.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		status := c.Writer.Status()
		if last := c.Errors.Last(); last != nil {
			var re ResponseError
			if errors.As(last.Err, &re) || status < http.StatusBadRequest {
				Abort(c, Render(last.Err))
				return
			}
		}
		if status >= http.StatusBadRequest {
			Abort(c, FromStatus(status))
		}
	}
}
