package entity

import (
	"time"
)

// User is the aggregate root of the credential store.
// Passwords are stored as bcrypt hashes in Password field.
// OTP and OTPExpiresAt are cleared once the email is verified.
type User struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Password         string     `json:"-"`
	Role             Role       `json:"role"`
	IsVerified       bool       `json:"isVerified"`
	OTP              *string    `json:"-"`
	OTPExpiresAt     *time.Time `json:"-"`
	ShippingLocation string     `json:"shippingLocation"`
	ShippingPhone    string     `json:"shippingPhone"`
	AvatarURL        string     `json:"avatarUrl,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// OTPMatches reports whether code is the user's pending code and has not expired at now.
func (u *User) OTPMatches(code string, now time.Time) bool {
	if u.OTP == nil || u.OTPExpiresAt == nil || code == "" {
		return false
	}
	return *u.OTP == code && now.Before(*u.OTPExpiresAt)
}

// MarkVerified consumes the OTP.
func (u *User) MarkVerified() {
	u.IsVerified = true
	u.OTP = nil
	u.OTPExpiresAt = nil
}
