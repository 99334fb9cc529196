package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/TodayDesign/vercel-project-dashboard/internal/api/response"
	"github.com/TodayDesign/vercel-project-dashboard/internal/crypto"
)

// Realm is advertised in the WWW-Authenticate challenge.
const Realm = "Vercel Dashboard"

// Credentials holds the dashboard login. When PasswordHash is set it is
// checked with argon2id and Password is ignored.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

func (c Credentials) configured() bool {
	return c.Username != "" && (c.Password != "" || c.PasswordHash != "")
}

func (c Credentials) match(username, password string) bool {
	userOK := crypto.EqualConstantTime(username, c.Username)
	var passOK bool
	if c.PasswordHash != "" {
		passOK = crypto.VerifyPassword(password, c.PasswordHash)
	} else {
		passOK = crypto.EqualConstantTime(password, c.Password)
	}
	return userOK && passOK
}

// BasicAuth returns a middleware that requires HTTP basic credentials
// matching creds on every request.
func BasicAuth(creds Credentials) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.WriteUnauthorized(w, Realm, "Authorization header required")
				return
			}

			username, password, ok := parseBasic(header)
			if !ok {
				response.WriteUnauthorized(w, Realm, "Invalid authorization format")
				return
			}

			if !creds.configured() {
				response.WriteUnauthorized(w, Realm, "Authentication not configured")
				return
			}

			if !creds.match(username, password) {
				response.WriteUnauthorized(w, Realm, "Invalid credentials")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// parseBasic decodes a "Basic base64(user:pass)" header. The password may
// contain colons; both parts must be non-empty.
func parseBasic(header string) (username, password string, ok bool) {
	encoded, found := strings.CutPrefix(header, "Basic ")
	if !found {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", false
	}
	username, password, found = strings.Cut(string(decoded), ":")
	if !found || username == "" || password == "" {
		return "", "", false
	}
	return username, password, true
}
