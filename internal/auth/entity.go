package auth

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of the session token minted by Exchange.
type SessionClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenResponse is the JSON body written by CreateToken.
type TokenResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}
