package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// Secure returns the security-header middleware. This API serves JSON only,
// so the CSP denies everything and framing is refused outright. Development
// mode suppresses the TLS-dependent headers for plain-HTTP local runs.
func Secure(isDevelopment bool) func(next http.Handler) http.Handler {
	s := secure.New(secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
	})
	return s.Handler
}
