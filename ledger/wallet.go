package ledger

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"educhain/certificate"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Session is the institution wallet session: one account identity plus the
// signing capability used by the issuance workflow. It is initialized once at
// startup from the configured private key.
type Session struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSession loads a session from a hex-encoded private key. An empty key
// means no wallet is configured; callers should leave the signer nil so the
// workflow reports WalletUnavailable.
func NewSession(hexKey string) (*Session, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, fmt.Errorf("empty private key")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid institution private key: %w", err)
	}
	return &Session{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// Key returns the session's private key for transaction signing.
func (s *Session) Key() *ecdsa.PrivateKey { return s.key }

// Address returns the session's account address.
func (s *Session) Address() common.Address { return s.address }

// SignMessage signs a certificate hash in the personal-message format.
func (s *Session) SignMessage(hash string) (string, error) {
	return certificate.SignHash(hash, s.key)
}
