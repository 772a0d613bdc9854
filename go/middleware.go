package shopserver

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

const (
	// HeaderRequestID carries the request id in both directions.
	HeaderRequestID = "X-Request-ID"
	// HeaderQueryCount reports how many SQL statements served the request.
	HeaderQueryCount = "X-Query-Count"
)

// RequestID reuses the caller's X-Request-ID or assigns a new one, and logs
// one line per request.
func RequestID(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)
		c.Header(HeaderRequestID, id)

		start := time.Now()
		c.Next()

		attrs := []any{
			slog.String("request.id", id),
			slog.String("http.method", c.Request.Method),
			slog.String("http.route", c.FullPath()),
			slog.Int("http.status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		}
		if counter := platformpostgres.QueryCounterFrom(c.Request.Context()); counter != nil {
			attrs = append(attrs, slog.Int("db.statements", counter.Count()))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
			logger.ErrorContext(c.Request.Context(), "request failed", attrs...)
			return
		}
		logger.InfoContext(c.Request.Context(), "request served", attrs...)
	}
}

// QueryCount attaches a statement counter to the request context.
// Handlers report it through the X-Query-Count header.
func QueryCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _ := platformpostgres.WithQueryCounter(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func writeQueryCount(c *gin.Context) {
	if counter := platformpostgres.QueryCounterFrom(c.Request.Context()); counter != nil {
		c.Header(HeaderQueryCount, strconv.Itoa(counter.Count()))
	}
}
