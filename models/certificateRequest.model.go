package models

import (
	"gorm.io/gorm"
)

// CertificateRequest represents a student's request for an academic certificate
type CertificateRequest struct {
	gorm.Model
	StudentName        string `json:"student_name" gorm:"not null"`
	RegistrationNumber string `json:"registration_number" gorm:"not null"`
	Course             string `json:"course" gorm:"not null"`
	InstitutionID      uint   `json:"institution_id" gorm:"index;not null"`
	InstitutionName    string `json:"institution_name"`
	WalletAddress      string `json:"wallet_address" gorm:"not null"` // student wallet
	Status             string `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	IsDeleted          bool   `gorm:"default:false"`
}
