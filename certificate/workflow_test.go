package certificate

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// fakePinner is an in-memory content store standing in for the pinning API
// and the gateway: it implements both Uploader and MetadataFetcher.
type fakePinner struct {
	files    map[string][]byte
	docs     map[string]*Metadata
	seq      int
	failFile bool
	failJSON bool
}

func newFakePinner() *fakePinner {
	return &fakePinner{
		files: make(map[string][]byte),
		docs:  make(map[string]*Metadata),
	}
}

func (f *fakePinner) nextHash() string {
	f.seq++
	return "Qm" + strconv.Itoa(f.seq)
}

func (f *fakePinner) UploadFile(ctx context.Context, name string, content []byte) (string, error) {
	if f.failFile {
		return "", fmt.Errorf("pinning API unreachable")
	}
	hash := f.nextHash()
	f.files[hash] = content
	return hash, nil
}

func (f *fakePinner) UploadJSON(ctx context.Context, name string, doc interface{}) (string, error) {
	if f.failJSON {
		return "", fmt.Errorf("pinning API unreachable")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	var md Metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return "", err
	}
	hash := f.nextHash()
	f.docs[hash] = &md
	return hash, nil
}

func (f *fakePinner) FetchMetadata(ctx context.Context, uri string) (*Metadata, error) {
	hash := uri
	if len(uri) > 7 && uri[:7] == "ipfs://" {
		hash = uri[7:]
	}
	md, ok := f.docs[hash]
	if !ok {
		return nil, fmt.Errorf("gateway returned 404")
	}
	copied := *md
	return &copied, nil
}

// fakeLedger keeps token state in memory and fails like the real contract
// binding does.
type fakeLedger struct {
	nextToken  uint64
	records    map[uint64]CertificateData
	mintReason string
	lastMint   struct {
		Recipient common.Address
		URI       string
		Signature string
		PublicKey string
	}
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: make(map[uint64]CertificateData)}
}

func (l *fakeLedger) Mint(ctx context.Context, recipient common.Address, ipfsURI, digitalSignature, publicKey string) (MintResult, error) {
	if l.mintReason != "" {
		return MintResult{}, &MintError{Reason: l.mintReason, Err: fmt.Errorf("%s", l.mintReason)}
	}
	l.nextToken++
	l.records[l.nextToken] = CertificateData{
		DigitalSignature: digitalSignature,
		PublicKey:        publicKey,
		IsRevoked:        false,
		TokenURI:         ipfsURI,
	}
	l.lastMint.Recipient = recipient
	l.lastMint.URI = ipfsURI
	l.lastMint.Signature = digitalSignature
	l.lastMint.PublicKey = publicKey
	return MintResult{TokenID: l.nextToken, TxHash: fmt.Sprintf("0xtx%d", l.nextToken)}, nil
}

func (l *fakeLedger) Revoke(ctx context.Context, tokenID uint64) (string, error) {
	data, ok := l.records[tokenID]
	if !ok {
		return "", &RevokeError{Reason: "execution reverted: nonexistent token"}
	}
	data.IsRevoked = true
	l.records[tokenID] = data
	return fmt.Sprintf("0xrevoke%d", tokenID), nil
}

func (l *fakeLedger) CertificateData(ctx context.Context, tokenID uint64) (CertificateData, error) {
	data, ok := l.records[tokenID]
	if !ok {
		return CertificateData{}, &NotFoundError{TokenID: tokenID}
	}
	return data, nil
}

// testSigner signs with a generated key, mirroring the wallet session.
type testSigner struct {
	key *ecdsa.PrivateKey
}

func newTestSigner() (*testSigner, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &testSigner{key: key}, nil
}

func (s *testSigner) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

func (s *testSigner) SignMessage(hash string) (string, error) {
	return SignHash(hash, s.key)
}

// fakeRecorder captures persistence calls.
type fakeRecorder struct {
	saved   []Record
	deleted []uint
	saveErr error
}

func (r *fakeRecorder) SaveCertificate(ctx context.Context, rec Record) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, rec)
	return nil
}

func (r *fakeRecorder) DeleteRequest(ctx context.Context, requestID uint) error {
	r.deleted = append(r.deleted, requestID)
	return nil
}

func validIssueInput(institutionWallet string) IssueInput {
	return IssueInput{
		RequestID:                42,
		StudentName:              "Alice",
		RegistrationNumber:       "R100",
		Course:                   "CS",
		RecipientWallet:          "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		InstitutionName:          "Sahrdaya College of Engineering",
		InstitutionWalletAddress: institutionWallet,
		CGPA:                     "8.5",
		SemMarks: SemMarks{
			Sem1: "80", Sem2: "81", Sem3: "82",
			Sem4: "83", Sem5: "84", Sem6: "85",
		},
		ImageName: "certificate.png",
		Image:     []byte("png-bytes"),
	}
}
