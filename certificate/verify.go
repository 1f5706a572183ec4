package certificate

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// VerificationResult is the outcome of one verification run. Metadata is only
// populated when the certificate is valid.
type VerificationResult struct {
	TokenID           uint64     `json:"token_id"`
	Valid             bool       `json:"valid"`
	ReasonCode        ReasonCode `json:"reason_code"`
	DigitalSignature  string     `json:"digital_signature"`
	RecoveredAddress  string     `json:"recovered_address"`
	DeclaredPublicKey string     `json:"declared_public_key"`
	Metadata          *Metadata  `json:"metadata,omitempty"`
}

// Verify runs the certificate verification workflow: read the on-chain
// record, fetch the pinned metadata, recompute the hash with the issuance
// serialization rule, recover the signer and compare against the declared
// public key and revocation flag. Read-only and idempotent.
func (s *Service) Verify(ctx context.Context, tokenID uint64) (*VerificationResult, error) {
	// Step 1: on-chain read.
	data, err := s.ledger.CertificateData(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	// Step 2: metadata fetch.
	md, err := s.fetcher.FetchMetadata(ctx, data.TokenURI)
	if err != nil {
		return nil, &MetadataFetchError{URI: data.TokenURI, Err: err}
	}
	md.Normalize()

	// Step 3: hash recomputation with the same canonical serialization used
	// at issuance.
	hash := ComputeHash(md.HashInput())

	result := &VerificationResult{
		TokenID:           tokenID,
		DigitalSignature:  data.DigitalSignature,
		DeclaredPublicKey: strings.ToLower(data.PublicKey),
	}

	// Step 4: revocation check. Revocation wins over every signature
	// outcome, recoverable or not, so it is decided before recovery.
	if data.IsRevoked {
		result.Valid = false
		result.ReasonCode = ReasonRevoked
		return result, nil
	}
	// Step 5: signature recovery, independent of the claimed public key.
	recovered, err := RecoverSigner(hash, data.DigitalSignature)
	if err != nil {
		// A signature that cannot be recovered can never match.
		result.Valid = false
		result.ReasonCode = ReasonSignatureMismatch
		return result, nil
	}
	result.RecoveredAddress = strings.ToLower(recovered.Hex())
	if recovered != common.HexToAddress(data.PublicKey) {
		result.Valid = false
		result.ReasonCode = ReasonSignatureMismatch
		return result, nil
	}

	result.Valid = true
	result.ReasonCode = ReasonNone
	result.Metadata = md
	return result, nil
}
