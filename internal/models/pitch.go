// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// PitchStatus describes the funding lifecycle of a pitch.
type PitchStatus string

const (
	// PitchStatusActive indicates a pitch is open for investor interest.
	PitchStatusActive PitchStatus = "active"
	// PitchStatusFunded indicates a pitch has reached its funding goal.
	PitchStatusFunded PitchStatus = "funded"
	// PitchStatusClosed indicates a pitch is no longer accepting interest.
	PitchStatusClosed PitchStatus = "closed"
)

// Valid reports whether the status is one of the known values.
func (s PitchStatus) Valid() bool {
	switch s {
	case PitchStatusActive, PitchStatusFunded, PitchStatusClosed:
		return true
	}
	return false
}

// Pitch represents a funding solicitation owned by one entrepreneur.
// FounderName and FounderEmail are denormalized at creation time so listings
// do not depend on a join against users.
type Pitch struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Title          string      `gorm:"not null" json:"title"`
	Description    string      `gorm:"type:text;not null" json:"description"`
	Category       string      `gorm:"size:60;index" json:"category"`
	FundingGoal    float64     `gorm:"not null" json:"funding_goal"`
	CurrentFunding float64     `gorm:"not null;default:0" json:"current_funding"`
	FounderID      uint        `gorm:"not null;index" json:"founder_id"`
	Founder        User        `gorm:"foreignKey:FounderID" json:"founder"`
	FounderName    string      `json:"founder_name"`
	FounderEmail   string      `json:"founder_email"`
	PitchDeckURL   string      `json:"pitch_deck_url,omitempty"`
	Status         PitchStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Tags           []string    `gorm:"serializer:json" json:"tags"`
	// InterestCount is not persisted; computed at query time
	InterestCount int `gorm:"->" json:"interest_count"`
	// Interested indicates whether the current requesting investor has
	// toggled interest in this pitch (computed)
	Interested bool `gorm:"->" json:"interested"`
	// InterestedInvestorIDs is loaded in a follow-up batch query
	InterestedInvestorIDs []uint         `gorm:"-" json:"interested_investor_ids"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

// PitchInterest is the membership record of an investor's interest in a
// pitch. The composite primary key guarantees at-most-once membership.
type PitchInterest struct {
	PitchID    uint      `gorm:"primaryKey;autoIncrement:false" json:"pitch_id"`
	InvestorID uint      `gorm:"primaryKey;autoIncrement:false" json:"investor_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (PitchInterest) TableName() string {
	return "pitch_interests"
}
