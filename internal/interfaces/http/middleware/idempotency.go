package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"estate-hub.backend/pkg/redis"
	"github.com/gin-gonic/gin"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type responseRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response for a repeated
// Idempotency-Key, so retried offer submissions do not create duplicates.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		var userID string
		if v, ok := c.Get(UserIDKey); ok {
			userID = fmt.Sprint(v)
		}
		storageKey := fmt.Sprintf("idempotency:%s:%s", userID, key)
		ctx := c.Request.Context()

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			// Redis being down must not block the request itself.
			c.Next()
			return
		}
		if !acquired {
			val, err := redisGet(ctx, storageKey)
			if err != nil || val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"error": "Request already in progress",
					"code":  "ERR_IDEMPOTENCY_CONFLICT",
				})
				return
			}
			var cached cachedResponse
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.Header("X-Idempotency-Replay", "true")
				c.Data(cached.Status, "application/json", []byte(cached.Body))
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Request already processed",
				"code":  "ERR_IDEMPOTENCY_CONFLICT",
			})
			return
		}

		recorder := &responseRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			// Only successful outcomes are pinned. Releasing the key on a
			// failure lets the client correct the request and reuse it.
			_ = redisDel(ctx, storageKey)
			return
		}

		payload, err := json.Marshal(cachedResponse{Status: status, Body: recorder.body.String()})
		if err != nil {
			_ = redisDel(ctx, storageKey)
			return
		}
		_ = redisSet(ctx, storageKey, string(payload), RetentionDuration)
	}
}
