package middleware_requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const Header = "X-Request-ID"

// New assigns every request a correlation id, honoring one supplied
// by the caller.
func New() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set("request_id", id)
		ctx.Writer.Header().Set(Header, id)
		ctx.Next()
	}
}
