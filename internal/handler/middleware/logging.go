package middleware

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxRequestIDKey = "request_id"

type Logger struct {
	logger *slog.Logger
}

// NewLogger builds the process-wide slog logger: JSON in release mode,
// text otherwise, timestamps rendered in the configured timezone.
func NewLogger(cfg config.LogConfig) *Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	timezone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(timezone).Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return &Logger{logger: logger}
}

func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

// LoggingMiddleware logs one line per request on completion, leveled by
// status. The request id it assigns travels on the context for handlers
// that want to correlate.
func LoggingMiddleware(_ *slog.Logger, cfg config.LogConfig) gin.HandlerFunc {
	l := NewLogger(cfg)
	return l.middleware()
}

func (l *Logger) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set(ctxRequestIDKey, requestID)

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID, ok := GetUserID(c); ok {
			attrs = append(attrs, "user_id", userID.String())
		}
		if key := c.GetHeader("Idempotency-Key"); key != "" {
			attrs = append(attrs, "idempotency_key", key)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			l.logger.Error("request completed", attrs...)
		case status >= 400:
			l.logger.Warn("request completed", attrs...)
		default:
			l.logger.Info("request completed", attrs...)
		}
	}
}

func GetRequestID(c *gin.Context) string {
	if v, exists := c.Get(ctxRequestIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
