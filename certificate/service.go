package certificate

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Uploader publishes blobs to content-addressed storage and returns the
// content identifier (bare hash, no scheme).
type Uploader interface {
	UploadFile(ctx context.Context, name string, content []byte) (string, error)
	UploadJSON(ctx context.Context, name string, doc interface{}) (string, error)
}

// MintResult carries the outcome of a confirmed mint transaction.
type MintResult struct {
	TokenID uint64
	TxHash  string
}

// CertificateData is the on-chain state of one token as returned by the
// contract's read operation.
type CertificateData struct {
	DigitalSignature string
	PublicKey        string
	IsRevoked        bool
	TokenURI         string
}

// Ledger is the typed boundary over the certificate contract.
type Ledger interface {
	Mint(ctx context.Context, recipient common.Address, ipfsURI, digitalSignature, publicKey string) (MintResult, error)
	Revoke(ctx context.Context, tokenID uint64) (string, error)
	CertificateData(ctx context.Context, tokenID uint64) (CertificateData, error)
}

// Signer is the institution wallet session: one account identity plus the
// capability to sign a certificate hash in the personal-message format.
type Signer interface {
	Address() common.Address
	SignMessage(hash string) (string, error)
}

// MetadataFetcher resolves a metadata URI and decodes the pinned document.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, uri string) (*Metadata, error)
}

// Recorder persists the issuance outcome: the certificate record mirror and
// the removal of the originating request from the pending set.
type Recorder interface {
	SaveCertificate(ctx context.Context, rec Record) error
	DeleteRequest(ctx context.Context, requestID uint) error
}

// Record is the issued-certificate mirror handed to the Recorder.
type Record struct {
	TokenID                  uint64
	RequestID                uint
	StudentName              string
	RegistrationNumber       string
	Course                   string
	RecipientWallet          string
	InstitutionWalletAddress string
	DigitalSignature         string
	MetadataURI              string
	TransactionHash          string
}

// Service orchestrates the issuance and verification workflows. Each workflow
// call is strictly sequenced and holds no shared mutable state, so concurrent
// calls for different requests are safe. Signer may be nil when no wallet
// session is configured.
type Service struct {
	uploader Uploader
	ledger   Ledger
	signer   Signer
	fetcher  MetadataFetcher
	recorder Recorder
}

func NewService(uploader Uploader, ledger Ledger, signer Signer, fetcher MetadataFetcher, recorder Recorder) *Service {
	return &Service{
		uploader: uploader,
		ledger:   ledger,
		signer:   signer,
		fetcher:  fetcher,
		recorder: recorder,
	}
}
