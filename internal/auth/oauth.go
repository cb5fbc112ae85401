package auth

import (
	"golang.org/x/oauth2"
)

const (
	// Garmin OAuth endpoints
	AuthURL  = "https://connect.garmin.com/oauth2Confirm"
	TokenURL = "https://diauth.garmin.com/di-oauth2-service/oauth/token"
)

// Scopes required for wellness and workout data
var Scopes = []string{
	"wellness:read",
	"workouts:read",
}

// Config holds the OAuth client credentials
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "http://localhost:8089/callback"
}

// NewOAuthConfig creates an oauth2.Config from our Config
func NewOAuthConfig(cfg Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: TokenURL,
		},
		RedirectURL: cfg.RedirectURL,
		Scopes:      Scopes,
	}
}

// AuthResult contains the token and user info from successful auth
type AuthResult struct {
	Token  *oauth2.Token
	UserID string
}

// ExtractUserID extracts the user ID from the token extras.
// Garmin includes the API user id in the token response.
func ExtractUserID(token *oauth2.Token) string {
	if id, ok := token.Extra("userId").(string); ok {
		return id
	}
	return ""
}
