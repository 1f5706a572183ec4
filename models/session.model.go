package models

import (
	"time"

	"gorm.io/gorm"
)

// Session tracks one login session lifecycle: created on login, closed on
// logout. The session id is carried in the JWT jti claim.
type Session struct {
	gorm.Model
	SessionID     string     `json:"session_id" gorm:"uniqueIndex;not null"`
	WalletAddress string     `json:"wallet_address" gorm:"index;not null"`
	IPAddress     string     `json:"ip_address"`
	LoggedOutAt   *time.Time `json:"logged_out_at"`
	IsDeleted     bool       `gorm:"default:false"`
}
