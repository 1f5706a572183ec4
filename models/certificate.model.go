package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate mirrors the on-chain certificate record. The contract is the
// source of truth for the signature, public key and revocation flag; this row
// is a cache kept in step by the issuing and revoking handlers and by the
// revocation reconciler.
type Certificate struct {
	gorm.Model
	TokenID                  uint64    `json:"token_id" gorm:"uniqueIndex;not null"`
	RequestID                uint      `json:"request_id" gorm:"index"`
	StudentName              string    `json:"student_name"`
	RegistrationNumber       string    `json:"registration_number"`
	Course                   string    `json:"course"`
	RecipientWallet          string    `json:"recipient_wallet" gorm:"index;not null"`
	InstitutionWalletAddress string    `json:"institution_wallet_address" gorm:"not null"`
	DigitalSignature         string    `json:"digital_signature" gorm:"not null"`
	MetadataURI              string    `json:"metadata_uri" gorm:"not null"`
	TransactionHash          string    `json:"transaction_hash"`
	IsRevoked                bool      `json:"is_revoked" gorm:"default:false"`
	IssuedAt                 time.Time `json:"issued_at"`
	IsDeleted                bool      `gorm:"default:false"`
}
