package middleware

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/twitter-clone-api/internal/constants"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

// ctxHandler adds request scoped values to every record.
type ctxHandler struct {
	slog.Handler
}

func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		r.AddAttrs(slog.String("request_id", rid))
	}
	if uid, ok := ctx.Value(userIDKey).(uint64); ok {
		r.AddAttrs(slog.Uint64("user_id", uid))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ctxHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ctxHandler) WithGroup(name string) slog.Handler {
	return &ctxHandler{h.Handler.WithGroup(name)}
}

// NewLogger builds the application logger: JSON in production, text otherwise.
func NewLogger(w io.Writer, production, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(&ctxHandler{handler})
}

// RequestID assigns each request an ID, reusing the caller's X-Request-ID if present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(constants.ContextKeyRequestID, rid)
		c.Header(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey, rid))
		c.Next()
	}
}

// RequestLogger logs every request after it is handled
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []any{
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("route", c.FullPath()),
			slog.String("ip", c.ClientIP()),
			slog.Duration("latency", time.Since(start)),
		}

		ctx := c.Request.Context()
		if len(c.Errors) > 0 {
			fields = append(fields, slog.String("error", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.ErrorContext(ctx, "request failed", fields...)
		case c.Writer.Status() >= 400:
			logger.WarnContext(ctx, "request rejected", fields...)
		default:
			logger.InfoContext(ctx, "request processed", fields...)
		}
	}
}
