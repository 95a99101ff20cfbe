// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// ProviderDiscord is the only sign-in provider currently wired.
const ProviderDiscord = "discord"

// User is an account established through an external identity provider.
// Provider and Subject together identify the account.
type User struct {
	ID          uint
	Provider    string
	Subject     string
	Email       string
	DisplayName string
	AvatarURL   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExternalIdentity is what a provider tells us about the signed-in person.
type ExternalIdentity struct {
	Provider    string
	Subject     string
	Email       string
	DisplayName string
	AvatarURL   *string
}
