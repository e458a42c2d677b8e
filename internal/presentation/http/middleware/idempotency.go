package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/endurancy/fiscal-api/internal/domain/entity"
	"github.com/endurancy/fiscal-api/internal/domain/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the cached response when a request carries an
// Idempotency-Key that was already processed for the same organization.
// Requests without a key proceed normally.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		organizationID := requestOrganizationID(c)

		existing, err := config.Repo.GetByKey(c.Request.Context(), idempotencyKey, organizationID)
		if err != nil {
			c.Next()
			return
		}

		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only successful responses are cached; a failed request must stay
		// retriable with the same key.
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:            idempotencyKey,
			OrganizationID: organizationID,
			Endpoint:       c.Request.Method + " " + c.FullPath(),
			ResponseCode:   c.Writer.Status(),
			ResponseBody:   blw.body.String(),
			ExpiresAt:      time.Now().Add(IdempotencyKeyTTL),
		}

		_ = config.Repo.Create(c.Request.Context(), ikey)
	}
}

// requestOrganizationID resolves the organization behind a request: the
// authenticated token first, then route parameters, then the request body.
// The body is restored so handlers can still bind it.
func requestOrganizationID(c *gin.Context) uuid.UUID {
	if id := resolveOrganizationID(c); id != uuid.Nil {
		return id
	}

	if c.Request.Body == nil {
		return uuid.Nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return uuid.Nil
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))

	var body struct {
		OrganizationID string `json:"organization_id"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(body.OrganizationID)
	if err != nil {
		return uuid.Nil
	}
	return id
}
