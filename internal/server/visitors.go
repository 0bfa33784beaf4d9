package server

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ribeirogab/portfolio/internal/i18n"
)

// VisitorLog writes one line per successful page view. Client addresses are
// never logged: they are hashed with a salt that lives only in memory.
type VisitorLog struct {
	salt    string
	matcher i18n.Matcher
	logf    func(format string, args ...any)
}

// NewVisitorLog creates a visitor log that skips the paths the matcher exempts.
func NewVisitorLog(salt string, matcher i18n.Matcher) *VisitorLog {
	return &VisitorLog{salt: salt, matcher: matcher, logf: log.Printf}
}

// HashIP hashes an address for privacy (consistent per address and salt).
func (v *VisitorLog) HashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + v.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// Middleware records page views after the handler ran.
func (v *VisitorLog) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.Request.URL.Path
		if v.matcher.IsAPI(path) || v.matcher.Exempt(path) {
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			return
		}

		if c.Writer.Status() != http.StatusOK {
			return
		}

		locale, _ := LocaleFrom(c)
		v.logf("visit path=%s locale=%s visitor=%s ua=%q", path, locale, v.HashIP(c.ClientIP()), c.Request.UserAgent())
	}
}
