// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole identifies what a user can do on the platform. It is assigned at
// signup and never changes afterwards.
type UserRole string

const (
	// RoleEntrepreneur can create and manage pitches.
	RoleEntrepreneur UserRole = "entrepreneur"
	// RoleInvestor can browse pitches and toggle interest in them.
	RoleInvestor UserRole = "investor"
	// RoleAdmin can manage any pitch and view platform stats.
	RoleAdmin UserRole = "admin"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleEntrepreneur, RoleInvestor, RoleAdmin:
		return true
	}
	return false
}

// User represents an account on the PitchBridge platform.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Role      UserRole       `gorm:"type:varchar(20);not null;index" json:"role"`
	Bio       string         `json:"bio"`
	Company   string         `json:"company"`
	Location  string         `json:"location"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Pitches   []Pitch        `gorm:"foreignKey:FounderID" json:"pitches,omitempty"`
}
