package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hookgenie-api/pkg/logger"
)

const (
	// SessionIDHeader 会话 ID 头，用量与历史均按会话隔离
	SessionIDHeader = "X-Session-ID"
	sessionIDKey    = "session_id"
	maxSessionIDLen = 128
)

// Session 解析会话 ID；缺失或非法时签发新的并通过响应头回传
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(SessionIDHeader))
		if !validSessionID(sessionID) {
			sessionID = uuid.New().String()
		}

		c.Set(sessionIDKey, sessionID)
		ctx := logger.WithContext(c.Request.Context(), logger.SessionIDKey, sessionID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(SessionIDHeader, sessionID)

		c.Next()
	}
}

// SessionID 返回当前请求的会话 ID
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// 会话 ID 会拼进存储 key，只接受可打印且不含分隔符的字符
func validSessionID(id string) bool {
	if id == "" || len(id) > maxSessionIDLen {
		return false
	}
	for _, r := range id {
		if r <= ' ' || r == ':' || r > '~' {
			return false
		}
	}
	return true
}
