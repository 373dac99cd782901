package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CORSConfig returns CORS middleware restricted to the configured domain
func CORSConfig(domain string) echo.MiddlewareFunc {
	if domain == "" {
		// Fallback to localhost for development
		return middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:  []string{"http://localhost:4200", "http://localhost:3000"},
			AllowMethods:  []string{echo.GET, echo.POST, echo.OPTIONS},
			AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
			ExposeHeaders: []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
			MaxAge:        86400, // 24 hours
		})
	}

	// Production CORS configuration - restrict to HTTPS only for production
	allowedOrigins := []string{
		"https://" + domain,
	}

	// Only allow HTTP for explicit non-production domains
	if isLocal(domain) {
		allowedOrigins = append(allowedOrigins, "http://"+domain)
	}

	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		ExposeHeaders: []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
		MaxAge:        86400,
	})
}

// SecurityHeaders adds security headers to all responses
func SecurityHeaders(domain string) echo.MiddlewareFunc {
	csp := "default-src 'none'; frame-ancestors 'self'"
	if domain != "" && !isLocal(domain) {
		csp = "default-src 'none'; frame-ancestors https://" + domain
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()
			header.Set("X-Content-Type-Options", "nosniff")
			header.Set("X-Frame-Options", "SAMEORIGIN")
			header.Set("Referrer-Policy", "no-referrer")
			header.Set("Content-Security-Policy", csp)
			header.Set("Permissions-Policy",
				"geolocation=(), microphone=(), camera=(), payment=(), usb=()")

			// HSTS only when the request came through HTTPS, directly or via a proxy
			if c.Request().Header.Get(echo.HeaderXForwardedProto) == "https" || c.Request().TLS != nil {
				header.Set(echo.HeaderStrictTransportSecurity, "max-age=31536000; includeSubDomains")
			}

			return next(c)
		}
	}
}

func isLocal(domain string) bool {
	return strings.Contains(domain, "localhost") || strings.Contains(domain, "127.0.0.1")
}
