package admin

import (
	"github.com/swiftcart/internal/provider"

	handlershared "github.com/swiftcart/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// Handler 后台处理器
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}
