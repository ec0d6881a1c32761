package models

import "time"

type User struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"` // never serialized

	IsVerified           bool    `json:"is_verified"`
	VerificationToken    *string `json:"-"` // single-use, cleared once consumed
	NewsletterSubscribed bool    `json:"newsletter_subscribed"`

	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
	IsActive  bool       `json:"is_active"`
}

// Snapshot is the public user shape returned by the API. The password hash
// and the verification token never leave the server.
type Snapshot struct {
	ID         int     `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	IsVerified bool    `json:"isVerified"`
	CreatedAt  string  `json:"createdAt"`
	LastLogin  *string `json:"lastLogin"`
}

func (u *User) Snapshot() Snapshot {
	s := Snapshot{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Phone:      u.Phone,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.LastLogin != nil {
		t := u.LastLogin.UTC().Format(time.RFC3339)
		s.LastLogin = &t
	}
	return s
}

type RegisterRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Password   string `json:"password"`
	Newsletter bool   `json:"newsletter"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}
