package middleware

import (
	"tracker/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware tạo requestId nếu chưa có và gán vào context
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			// Tạo requestId mới
			requestID = uuid.NewString()
		}

		// Gán vào context để dùng trong controller hoặc service
		c.Set(constants.ContextRequestID, requestID)

		// Gán lại header
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}

// RequestID lấy requestId của request hiện tại
func RequestID(c *gin.Context) string {
	return c.GetString(constants.ContextRequestID)
}
