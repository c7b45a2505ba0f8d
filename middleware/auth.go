package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"meetnote/pkg/logger"
)

// Route guard for the notes app. Private prefixes need a session cookie;
// everything else passes through. The backend owns token verification — we
// only check that an accessToken is a well-formed, unexpired JWT, which is
// enough to bounce obviously dead sessions to the sign-in page without a
// round trip.

var privatePrefixes = []string{"/api/notes", "/api/profile", "/api/users/me"}
var publicPrefixes = []string{"/sign-in", "/sign-up"}

const signInPath = "/sign-in"

func RouteGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		for _, p := range publicPrefixes {
			if strings.HasPrefix(path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		private := false
		for _, p := range privatePrefixes {
			if strings.HasPrefix(path, p) {
				private = true
				break
			}
		}
		if !private {
			next.ServeHTTP(w, r)
			return
		}

		if !hasSession(r) {
			http.Redirect(w, r, signInPath, http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func hasSession(r *http.Request) bool {
	if access, err := r.Cookie("accessToken"); err == nil && access.Value != "" {
		if tokenAlive(access.Value) {
			return true
		}
		logger.Sugar.Debugf("accessToken expired or malformed, falling back to sessionId")
	}
	if session, err := r.Cookie("sessionId"); err == nil && session.Value != "" {
		return true
	}
	return false
}

// tokenAlive parses without verifying the signature; the signing secret
// lives with the backend.
func tokenAlive(raw string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if exp == nil {
		// no expiry claim, let the backend decide
		return true
	}
	return exp.After(time.Now())
}
