package middleware

import (
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/cwhitfield/cert-tracker/internal/logger"
)

// RequestID tags every request with an id (client-supplied or fresh)
// and logs method, path, status and duration on completion.
func RequestID(log *logger.Logger) gin.HandlerFunc {
  requestLog := log.With("Middleware", "RequestID")
  return func(c *gin.Context) {
    id := c.GetHeader("X-Request-ID")
    if id == "" {
      id = uuid.NewString()
    }
    c.Header("X-Request-ID", id)
    c.Set("request_id", id)

    start := time.Now()
    c.Next()

    requestLog.Info("request",
      "id", id,
      "method", c.Request.Method,
      "path", c.Request.URL.Path,
      "status", c.Writer.Status(),
      "duration", time.Since(start),
    )
  }
}
