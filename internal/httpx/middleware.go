package httpx

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	ridKey          = "rid"
	maxRIDLen       = 64
)

// RequestID reuses the caller's X-Request-ID when it looks sane and mints a
// uuid otherwise. The id is echoed back and stored for RID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if !validRID(rid) {
			rid = uuid.NewString()
		}
		c.Set(ridKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

func validRID(s string) bool {
	if s == "" || len(s) > maxRIDLen {
		return false
	}
	for _, r := range s {
		ok := r == '-' || r == '_' || r == '.' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !ok {
			return false
		}
	}
	return true
}

// Logger writes one access line per request. Probes on /healthz are skipped.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.Request.URL.Path == "/healthz" {
			return
		}
		log.Printf("[http] rid=%s %s %s status=%d bytes=%d ip=%s dur=%s",
			RID(c), c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			c.Writer.Size(), c.ClientIP(), time.Since(start))
	}
}

// RID returns the request id set by RequestID, for log lines inside handlers.
func RID(c *gin.Context) string {
	return c.GetString(ridKey)
}
