package models

import (
	"strings"
	"time"
)

// DefaultUserRole is assigned when a synced user has no role.
const DefaultUserRole = "user"

// User is a community member keyed by its external identity (Firebase UID).
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:128"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	PhotoURL    string    `json:"photo_url"`
	DisplayName string    `json:"display_name"`
	Company     string    `json:"company"`
	Role        string    `json:"role" gorm:"size:30;default:user"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserCompact is the minimal user shape embedded in other payloads.
type UserCompact struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

// Label returns the best available human-readable name, or "" if none is set.
func (u *User) Label() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.DisplayName
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Label(), PhotoURL: u.PhotoURL}
}

// SyncUserRequest defines the request body for upserting a user from the client.
type SyncUserRequest struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	PhotoURL    string `json:"photo_url"`
	DisplayName string `json:"displayName"`
	PhotoURLAlt string `json:"photoURL"`
	Company     string `json:"company"`
	Role        string `json:"role"`
}

// ToUser applies the naming and photo fallbacks used when syncing.
func (r SyncUserRequest) ToUser() *User {
	u := &User{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		PhotoURL:    r.PhotoURL,
		DisplayName: r.DisplayName,
		Company:     r.Company,
		Role:        r.Role,
	}
	if u.Name == "" {
		u.Name = r.DisplayName
	}
	if u.Name == "" && r.Email != "" {
		u.Name, _, _ = strings.Cut(r.Email, "@")
	}
	if u.Name == "" {
		u.Name = "User"
	}
	if u.DisplayName == "" {
		u.DisplayName = r.Name
	}
	if u.PhotoURL == "" {
		u.PhotoURL = r.PhotoURLAlt
	}
	if u.Role == "" {
		u.Role = DefaultUserRole
	}
	return u
}
