package controller

import (
	"errors"
	"net/http"

	"storefront-go-server/api/middleware"
	domainErrors "storefront-go-server/domain/errors"

	"github.com/gin-gonic/gin"
)

// --- 通用响应结构 ---

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse 消息响应结构
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// respondError 把领域错误映射为 HTTP 状态码
// 映射关系集中在一处，所有 Controller 共用
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domainErrors.ErrStoreNotFound),
		errors.Is(err, domainErrors.ErrPageNotFound),
		errors.Is(err, domainErrors.ErrProductNotFound),
		errors.Is(err, domainErrors.ErrVersionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainErrors.ErrDuplicatePageType),
		errors.Is(err, domainErrors.ErrDuplicateVersion),
		errors.Is(err, domainErrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domainErrors.ErrMaxPagesExceeded),
		errors.Is(err, domainErrors.ErrTierRequired),
		errors.Is(err, domainErrors.ErrProtectedPage),
		errors.Is(err, domainErrors.ErrCurrentVersionProtected):
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// callerID 从 Context 取出 Clerk 用户 ID（由 ClerkAuth 中间件注入）
// 取不到说明路由漏挂了认证中间件，直接 401
func callerID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(middleware.ContextKeyUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "未获取到用户信息"})
		return "", false
	}
	return userID.(string), true
}
