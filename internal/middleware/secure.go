package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// SecureHeaders sets the standard security response headers. In production it
// also redirects plain HTTP requests, trusting X-Forwarded-Proto from the proxy.
func SecureHeaders(isProduction bool) gin.HandlerFunc {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        isProduction,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !isProduction,
	})

	return func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("secure headers blocked request", slog.String("error", err.Error()))
			c.Abort()
			return
		}
		// Process writes the redirect itself when it rejects a plain HTTP request.
		if status := c.Writer.Status(); status >= http.StatusMultipleChoices && status < http.StatusBadRequest {
			c.Abort()
			return
		}
		c.Next()
	}
}
