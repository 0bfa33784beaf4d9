package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ribeirogab/portfolio/internal/i18n"
)

const (
	localeKey       = "locale"
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// LocaleFrom returns the locale the locale middleware resolved for the request.
func LocaleFrom(c *gin.Context) (i18n.Locale, bool) {
	v, ok := c.Get(localeKey)
	if !ok {
		return "", false
	}
	l, ok := v.(i18n.Locale)
	return l, ok
}

// RequestIDFrom returns the id assigned to the request, if any.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// requestIDMiddleware propagates X-Request-ID or assigns a new one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// localeMiddleware redirects unprefixed page paths to their localized form and
// records the resolved locale for everything it lets through.
func localeMiddleware(rw i18n.Rewriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The escaped form keeps %3F and %2F from turning into a query or a new segment.
		d := rw.Rewrite(c.Request.URL.EscapedPath(), c.Request.URL.RawQuery, c.GetHeader("Accept-Language"))

		if d.Action == i18n.Redirect {
			c.Header("Vary", "Accept-Language")
			c.Redirect(http.StatusTemporaryRedirect, d.Target)
			c.Abort()
			return
		}

		c.Set(localeKey, d.Locale)
		c.Next()
	}
}

// requestLogger is gin's logger with the request id appended. Health checks are skipped.
func requestLogger() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/health"},
		Formatter: func(p gin.LogFormatterParams) string {
			rid, _ := p.Keys[requestIDKey].(string)
			return fmt.Sprintf("[GIN] %s | %3d | %13v | %15s | %-7s %#v | %s\n%s",
				p.TimeStamp.Format(time.RFC3339),
				p.StatusCode,
				p.Latency,
				p.ClientIP,
				p.Method,
				p.Path,
				rid,
				p.ErrorMessage,
			)
		},
	})
}
