package models

import "time"

// Channel is the delivery channel of an OTP challenge.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

func (c Channel) IsValid() bool {
	return c == ChannelWhatsApp || c == ChannelEmail
}

// OTPChallenge is a pending one-time code for a phone number or email address.
// A newer challenge for the same target replaces the previous one.
type OTPChallenge struct {
	Target    string
	Channel   Channel
	Code      string
	ExpiresAt time.Time
	UsedAt    *time.Time
	Attempts  int
}
