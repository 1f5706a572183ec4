package database

import (
	"context"
	"time"

	"educhain/certificate"
	"educhain/models"
)

// CertificateRecorder persists issuance outcomes to the mirror tables. It
// implements the issuance workflow's Recorder boundary.
type CertificateRecorder struct{}

// SaveCertificate writes the issued-certificate mirror row.
func (CertificateRecorder) SaveCertificate(ctx context.Context, rec certificate.Record) error {
	row := models.Certificate{
		TokenID:                  rec.TokenID,
		RequestID:                rec.RequestID,
		StudentName:              rec.StudentName,
		RegistrationNumber:       rec.RegistrationNumber,
		Course:                   rec.Course,
		RecipientWallet:          rec.RecipientWallet,
		InstitutionWalletAddress: rec.InstitutionWalletAddress,
		DigitalSignature:         rec.DigitalSignature,
		MetadataURI:              rec.MetadataURI,
		TransactionHash:          rec.TransactionHash,
		IssuedAt:                 time.Now(),
	}
	return Database.Db.WithContext(ctx).Create(&row).Error
}

// DeleteRequest removes the originating request from the pending set.
func (CertificateRecorder) DeleteRequest(ctx context.Context, requestID uint) error {
	return Database.Db.WithContext(ctx).
		Model(&models.CertificateRequest{}).
		Where("id = ?", requestID).
		Update("is_deleted", true).Error
}
