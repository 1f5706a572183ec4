package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationLog records one verification attempt for the verifier history view
type VerificationLog struct {
	gorm.Model
	TokenID        uint64    `json:"token_id" gorm:"index;not null"`
	VerifierWallet string    `json:"verifier_wallet" gorm:"index"`
	Valid          bool      `json:"valid"`
	ReasonCode     string    `json:"reason_code"`
	CheckedAt      time.Time `json:"checked_at"`
	IsDeleted      bool      `gorm:"default:false"`
}
