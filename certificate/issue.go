package certificate

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IssueInput carries an approved request together with the fields the
// institution supplies on the issue form.
type IssueInput struct {
	RequestID          uint
	StudentName        string
	RegistrationNumber string
	Course             string
	RecipientWallet    string

	InstitutionName          string
	InstitutionWalletAddress string
	CGPA                     string
	SemMarks                 SemMarks

	ImageName string
	Image     []byte
}

// IssueResult reports everything a dashboard shows after a successful issue.
type IssueResult struct {
	TokenID          uint64 `json:"token_id"`
	TransactionHash  string `json:"transaction_hash"`
	CertificateHash  string `json:"certificate_hash"`
	DigitalSignature string `json:"digital_signature"`
	ImageURI         string `json:"image_uri"`
	MetadataURI      string `json:"metadata_uri"`
}

// Issue runs the certificate issuance workflow: publish image, compute hash,
// publish metadata, sign, mint, record. Steps run strictly in order with no
// retry and no rollback; a failure after the metadata pin leaves an orphaned
// document, which is accepted (pins are idempotent and cheap to re-publish).
func (s *Service) Issue(ctx context.Context, in IssueInput) (*IssueResult, error) {
	if err := validateIssueInput(in); err != nil {
		return nil, err
	}

	// Step 1: image publish.
	if len(in.Image) == 0 {
		return nil, &UploadError{Err: errNoImage}
	}
	imageHash, err := s.uploader.UploadFile(ctx, in.ImageName, in.Image)
	if err != nil {
		return nil, &UploadError{Err: err}
	}
	imageURI := "ipfs://" + imageHash

	// Step 2: hash computation over the canonical field subset.
	marks := in.SemMarks
	hash := ComputeHash(HashFields{
		StudentName:        in.StudentName,
		RegistrationNumber: in.RegistrationNumber,
		Course:             in.Course,
		CGPA:               in.CGPA,
		SemMarks:           &marks,
	})

	// Step 3: metadata publish.
	doc := Metadata{
		SchemaVersion:            SchemaVersion,
		Name:                     in.InstitutionName + " academic certificate",
		Description:              "Academic certificate issued to " + in.StudentName + " by " + in.InstitutionName,
		Image:                    imageURI,
		StudentName:              in.StudentName,
		RegistrationNumber:       in.RegistrationNumber,
		Course:                   in.Course,
		InstitutionName:          in.InstitutionName,
		InstitutionWalletAddress: in.InstitutionWalletAddress,
		CGPA:                     CGPABlock{CGPA: in.CGPA, SemMarks: in.SemMarks},
		CertificateHash:          hash,
	}
	metadataHash, err := s.uploader.UploadJSON(ctx, "certificate_data.json", doc)
	if err != nil {
		return nil, &UploadError{Err: err}
	}
	metadataURI := "ipfs://" + metadataHash

	// Step 4: signing. The active account must be the declared institution
	// wallet, compared case-insensitively.
	if s.signer == nil {
		return nil, ErrWalletUnavailable
	}
	active := s.signer.Address()
	if active != common.HexToAddress(in.InstitutionWalletAddress) {
		return nil, &SignerMismatchError{
			Active:   strings.ToLower(active.Hex()),
			Declared: strings.ToLower(in.InstitutionWalletAddress),
		}
	}
	signature, err := s.signer.SignMessage(hash)
	if err != nil {
		return nil, err
	}

	// Step 5: mint. Blocks until the transaction is confirmed.
	minted, err := s.ledger.Mint(ctx, common.HexToAddress(in.RecipientWallet), metadataURI, signature, in.InstitutionWalletAddress)
	if err != nil {
		return nil, err
	}

	// Step 6: persistence. The mint succeeded, so a store failure here is
	// surfaced but not compensated; the on-chain record already exists.
	rec := Record{
		TokenID:                  minted.TokenID,
		RequestID:                in.RequestID,
		StudentName:              in.StudentName,
		RegistrationNumber:       in.RegistrationNumber,
		Course:                   in.Course,
		RecipientWallet:          in.RecipientWallet,
		InstitutionWalletAddress: in.InstitutionWalletAddress,
		DigitalSignature:         signature,
		MetadataURI:              metadataURI,
		TransactionHash:          minted.TxHash,
	}
	if err := s.recorder.SaveCertificate(ctx, rec); err != nil {
		log.Printf("Certificate %d minted but record write failed: %v", minted.TokenID, err)
		return nil, err
	}
	if err := s.recorder.DeleteRequest(ctx, in.RequestID); err != nil {
		log.Printf("Certificate %d minted but request %d cleanup failed: %v", minted.TokenID, in.RequestID, err)
		return nil, err
	}

	return &IssueResult{
		TokenID:          minted.TokenID,
		TransactionHash:  minted.TxHash,
		CertificateHash:  hash,
		DigitalSignature: signature,
		ImageURI:         imageURI,
		MetadataURI:      metadataURI,
	}, nil
}

// validateIssueInput enforces the mint preconditions: all fields present,
// CGPA in [0,10], every semester mark in [0,100].
func validateIssueInput(in IssueInput) error {
	required := map[string]string{
		"studentName":              in.StudentName,
		"registrationNumber":       in.RegistrationNumber,
		"course":                   in.Course,
		"walletAddress":            in.RecipientWallet,
		"institutionWalletAddress": in.InstitutionWalletAddress,
		"cgpa":                     in.CGPA,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return &ValidationError{Field: field, Message: "is required"}
		}
	}

	cgpa, err := strconv.ParseFloat(in.CGPA, 64)
	if err != nil || cgpa < 0 || cgpa > 10 {
		return &ValidationError{Field: "cgpa", Message: "must be a number between 0 and 10"}
	}

	marks := map[string]string{
		"sem1": in.SemMarks.Sem1,
		"sem2": in.SemMarks.Sem2,
		"sem3": in.SemMarks.Sem3,
		"sem4": in.SemMarks.Sem4,
		"sem5": in.SemMarks.Sem5,
		"sem6": in.SemMarks.Sem6,
	}
	for field, value := range marks {
		mark, err := strconv.ParseFloat(value, 64)
		if err != nil || mark < 0 || mark > 100 {
			return &ValidationError{Field: field, Message: "must be a number between 0 and 100"}
		}
	}
	return nil
}
