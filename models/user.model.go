package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	WalletAddress string `json:"wallet_address" gorm:"unique;not null"`
	UserType      string `json:"user_type" gorm:"default:'STUDENT'"` // STUDENT, INSTITUTION, VERIFIER
	Name          string `json:"name" gorm:"default:''"`
	Email         string `json:"email" gorm:"default:''"`
	IsDeleted     bool   `gorm:"default:false"`
}
