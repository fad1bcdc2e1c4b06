// Package auth resolves an opaque session token to a user id. Credential
// management, login and registration live outside this system; handlers only
// consume "user id or none".
package auth

import (
	"net/http"
	"strings"
)

// SessionCookie is the cookie carrying a session token.
const SessionCookie = "session"

// Authenticator resolves the requesting user, reporting false when the
// request carries no valid session.
type Authenticator interface {
	UserID(r *http.Request) (string, bool)
}

// TokenAuthenticator resolves users from a static token table. Tokens are
// accepted as a bearer Authorization header or a session cookie.
type TokenAuthenticator struct {
	tokens map[string]string
}

// NewTokenAuthenticator instantiates an authenticator over a token -> user id
// table.
func NewTokenAuthenticator(tokens map[string]string) *TokenAuthenticator {
	return &TokenAuthenticator{tokens: tokens}
}

func (a *TokenAuthenticator) UserID(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimPrefix(header, "Bearer ")
		if userID, ok := a.tokens[token]; ok {
			return userID, true
		}
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if userID, ok := a.tokens[cookie.Value]; ok {
			return userID, true
		}
	}
	return "", false
}
