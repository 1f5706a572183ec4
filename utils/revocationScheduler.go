package utils

import (
	"context"
	"errors"
	"log"
	"time"

	"educhain/certificate"
	"educhain/database"
	"educhain/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[REVOCATION-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// reconcileRevocations re-reads on-chain revocation state for mirrored
// certificate records. The contract is authoritative; the mirror only ever
// moves not-revoked -> revoked.
func reconcileRevocations(ledger certificate.Ledger) {
	db := database.Database.Db

	var certs []models.Certificate
	if err := db.Where("is_revoked = false AND is_deleted = false").Find(&certs).Error; err != nil {
		logScheduler("Error fetching certificate mirror: " + err.Error())
		return
	}

	for _, cert := range certs {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		data, err := ledger.CertificateData(ctx, cert.TokenID)
		cancel()
		if err != nil {
			var notFound *certificate.NotFoundError
			if errors.As(err, &notFound) {
				logScheduler("Mirrored token missing on-chain: " + notFound.Error())
				continue
			}
			logScheduler("Error reading token state: " + err.Error())
			continue
		}

		if data.IsRevoked {
			if err := db.Model(&models.Certificate{}).
				Where("token_id = ?", cert.TokenID).
				Update("is_revoked", true).Error; err != nil {
				logScheduler("Error updating mirror: " + err.Error())
			} else {
				logScheduler("Marked token revoked in mirror")
			}
		}
	}
}

// StartRevocationScheduler runs the mirror reconciler every ten minutes
func StartRevocationScheduler(ledger certificate.Ledger) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("*/10 * * * *", func() {
		reconcileRevocations(ledger)
	})
	if err != nil {
		log.Fatalf("Failed to schedule revocation reconciler: %v", err)
	}
	c.Start()
	logScheduler("Revocation reconciler started")
	return c
}
