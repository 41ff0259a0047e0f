package dto

import "time"

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido y su expiración.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// VerifyRequest body opcional para POST /api/auth/verify (alternativa al header Bearer).
type VerifyRequest struct {
	Token string `json:"token"`
}

// VerifyResponse resultado de validar un token.
type VerifyResponse struct {
	Valid     bool      `json:"valid"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
