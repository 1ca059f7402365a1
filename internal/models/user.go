package models

import (
	"strings"
	"time"

	"github.com/baharkarakas/ppob-wallet/internal/money"
)

type User struct {
	ID           int64       `json:"-"`
	Email        string      `json:"email"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	PasswordHash string      `json:"-"`
	Balance      money.Money `json:"-"`
	ProfileImage *string     `json:"profile_image"`
	CreatedAt    time.Time   `json:"-"`
}

// Normalize trims whitespace and lower-cases the email, which is the login key.
func (u *User) Normalize() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
}

// Profile is the public view of a user.
type Profile struct {
	Email        string  `json:"email"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	ProfileImage *string `json:"profile_image"`
}

func (u User) Profile() Profile {
	return Profile{
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ProfileImage: u.ProfileImage,
	}
}
