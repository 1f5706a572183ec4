package certificate

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// SemMarks holds the six semester marks exactly as submitted. Marks are kept
// as strings so the hash never depends on float formatting; numeric range
// checks happen in validation, not here.
type SemMarks struct {
	Sem1 string `json:"sem1"`
	Sem2 string `json:"sem2"`
	Sem3 string `json:"sem3"`
	Sem4 string `json:"sem4"`
	Sem5 string `json:"sem5"`
	Sem6 string `json:"sem6"`
}

// HashFields is the canonical field subset bound into the certificate hash.
// Key order is fixed by the struct layout; issuance and verification must
// serialize identically or signature recovery fails for legitimate
// certificates. Schema version 1 documents were hashed without semester
// marks, so SemMarks is a pointer and is omitted when nil.
type HashFields struct {
	StudentName        string    `json:"studentName"`
	RegistrationNumber string    `json:"registrationNumber"`
	Course             string    `json:"course"`
	CGPA               string    `json:"cgpa"`
	SemMarks           *SemMarks `json:"semMarks,omitempty"`
}

// ComputeHash returns the 0x-prefixed keccak256 digest of the canonical JSON
// serialization of f. Pure and deterministic: same fields, same digest.
func ComputeHash(f HashFields) string {
	data, err := json.Marshal(f)
	if err != nil {
		// HashFields contains only strings; Marshal cannot fail.
		panic(err)
	}
	return crypto.Keccak256Hash(data).Hex()
}

// SignHash signs the certificate hash with the given key using the Ethereum
// personal-message format: the digest actually signed is
// keccak256("\x19Ethereum Signed Message:\n" + len(hash) + hash).
// The returned signature is 0x-prefixed hex with V in {27, 28}.
func SignHash(hash string, key *ecdsa.PrivateKey) (string, error) {
	digest := accounts.TextHash([]byte(hash))
	sig, err := crypto.Sign(digest, key)
	if err != nil {
		return "", err
	}
	sig[64] += 27
	return hexutil.Encode(sig), nil
}

// RecoverSigner derives the signing address from a certificate hash and its
// signature, wrapping the hash in the same personal-message prefix used at
// signing time. No externally claimed key is consulted.
func RecoverSigner(hash, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("malformed signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}
	// Wallets return V as 27/28, go-ethereum expects 0/1.
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(accounts.TextHash([]byte(hash)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("signature recovery failed: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
