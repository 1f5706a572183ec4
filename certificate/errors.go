package certificate

import (
	"errors"
	"fmt"
)

// ReasonCode explains why a verification came back invalid.
type ReasonCode string

const (
	ReasonNone              ReasonCode = "none"
	ReasonRevoked           ReasonCode = "revoked"
	ReasonSignatureMismatch ReasonCode = "signature_mismatch"
)

// ErrWalletUnavailable is returned when issuance is attempted with no
// institution signing session configured.
var ErrWalletUnavailable = errors.New("no wallet session is available for signing")

var errNoImage = errors.New("no certificate image was provided")

// ValidationError reports a missing or out-of-range input field. It blocks the
// workflow before any external call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// UploadError wraps a failure to publish a blob to content-addressed storage.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload to content storage failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// SignerMismatchError is returned when the active signing account does not
// match the declared institution wallet address.
type SignerMismatchError struct {
	Active   string
	Declared string
}

func (e *SignerMismatchError) Error() string {
	return fmt.Sprintf("signing account %s does not match declared institution wallet %s", e.Active, e.Declared)
}

// MintError wraps a contract revert or transaction failure during mint. The
// underlying reason is surfaced verbatim.
type MintError struct {
	Reason string
	Err    error
}

func (e *MintError) Error() string {
	return fmt.Sprintf("mint failed: %s", e.Reason)
}

func (e *MintError) Unwrap() error { return e.Err }

// RevokeError wraps a contract revert or transaction failure during revoke.
type RevokeError struct {
	Reason string
	Err    error
}

func (e *RevokeError) Error() string {
	return fmt.Sprintf("revoke failed: %s", e.Reason)
}

func (e *RevokeError) Unwrap() error { return e.Err }

// NotFoundError is returned when the token does not exist on-chain.
type NotFoundError struct {
	TokenID uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("certificate token %d does not exist", e.TokenID)
}

// MetadataFetchError wraps a network or parse failure while retrieving the
// pinned metadata document.
type MetadataFetchError struct {
	URI string
	Err error
}

func (e *MetadataFetchError) Error() string {
	return fmt.Sprintf("failed to fetch metadata %s: %v", e.URI, e.Err)
}

func (e *MetadataFetchError) Unwrap() error { return e.Err }
