// Package dto defines data transfer objects for the auth HTTP API.
package dto

import "shadowdark_backend/internal/feature/auth/usecase"

// RefreshReq is the body of POST /auth/refresh and POST /auth/logout.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required,len=64,hexadecimal"`
}

// TokenRes is returned after sign-in and refresh.
type TokenRes struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// FromTokens converts usecase tokens to the API shape. ExpiresIn is in seconds.
func FromTokens(t *usecase.Tokens) TokenRes {
	return TokenRes{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(t.ExpiresIn.Seconds()),
	}
}
