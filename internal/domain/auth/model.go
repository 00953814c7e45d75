// Package auth provides the credential store access and session
// authentication for the reporting API.
package auth

import (
	"time"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// User is a system account. Rows are created at provisioning time and only
// ever read on the request path.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// Session is an established login session. The token is a signed claim of
// the user's identity and travels in an HttpOnly cookie (or Authorization
// header); no server-side session state is kept.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}
