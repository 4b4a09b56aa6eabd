package domain

import (
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User corresponds to the users table.
type User struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	UserName     string    `json:"userName" gorm:"column:user_name;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Bio          string    `json:"bio"`
	Avatar       string    `json:"avatar"`
	Role         string    `json:"role" gorm:"not null;default:'user'"`
	Active       bool      `json:"active" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) Normalize() {
	u.UserName = strings.ToLower(strings.TrimSpace(u.UserName))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

const (
	TokenActivation    = "activation"
	TokenPasswordReset = "password_reset"
)

// UserToken is a single-use token for activation or password reset.
type UserToken struct {
	ID        int        `gorm:"primaryKey"`
	UserID    int        `gorm:"index;not null"`
	Token     string     `gorm:"uniqueIndex;not null"`
	Type      string     `gorm:"not null"`
	ExpiresAt time.Time  `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time
}

func (UserToken) TableName() string { return "user_tokens" }

// Usable reports whether the token can still be consumed at now.
func (t *UserToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}

// Caller is the identity attached to a request by the auth guard.
type Caller struct {
	UserID int
	Role   string
}

func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// ID returns the caller's user id, 0 for an anonymous request.
func (c *Caller) ID() int {
	if c == nil {
		return 0
	}
	return c.UserID
}
