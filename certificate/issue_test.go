package certificate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueHappyPath(t *testing.T) {
	pinner := newFakePinner()
	chain := newFakeLedger()
	signer, err := newTestSigner()
	require.NoError(t, err)
	recorder := &fakeRecorder{}

	svc := NewService(pinner, chain, signer, pinner, recorder)
	result, err := svc.Issue(context.Background(), validIssueInput(signer.Address().Hex()))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), result.TokenID)
	assert.True(t, strings.HasPrefix(result.ImageURI, "ipfs://"))
	assert.True(t, strings.HasPrefix(result.MetadataURI, "ipfs://"))
	assert.NotEqual(t, result.ImageURI, result.MetadataURI)

	// The signature binds the institution key to the computed hash.
	recovered, err := RecoverSigner(result.CertificateHash, result.DigitalSignature)
	require.NoError(t, err)
	assert.Equal(t, signer.Address(), recovered)

	// Mint received the student's wallet and the metadata URI.
	assert.Equal(t, result.MetadataURI, chain.lastMint.URI)
	assert.Equal(t, signer.Address().Hex(), chain.lastMint.PublicKey)

	// The pinned document embeds the image URI and the hash.
	md, err := pinner.FetchMetadata(context.Background(), result.MetadataURI)
	require.NoError(t, err)
	assert.Equal(t, result.ImageURI, md.Image)
	assert.Equal(t, result.CertificateHash, md.CertificateHash)
	assert.Equal(t, SchemaVersion, md.SchemaVersion)

	// Persistence ran: record saved, originating request removed.
	require.Len(t, recorder.saved, 1)
	assert.Equal(t, uint64(1), recorder.saved[0].TokenID)
	assert.Equal(t, []uint{42}, recorder.deleted)
}

func TestIssueMissingImage(t *testing.T) {
	pinner := newFakePinner()
	signer, err := newTestSigner()
	require.NoError(t, err)
	svc := NewService(pinner, newFakeLedger(), signer, pinner, &fakeRecorder{})

	in := validIssueInput(signer.Address().Hex())
	in.Image = nil

	_, err = svc.Issue(context.Background(), in)
	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
}

func TestIssueUploaderFailure(t *testing.T) {
	pinner := newFakePinner()
	pinner.failFile = true
	signer, err := newTestSigner()
	require.NoError(t, err)
	svc := NewService(pinner, newFakeLedger(), signer, pinner, &fakeRecorder{})

	_, err = svc.Issue(context.Background(), validIssueInput(signer.Address().Hex()))
	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
}

func TestIssueValidation(t *testing.T) {
	pinner := newFakePinner()
	signer, err := newTestSigner()
	require.NoError(t, err)
	svc := NewService(pinner, newFakeLedger(), signer, pinner, &fakeRecorder{})

	tests := []struct {
		name   string
		mutate func(*IssueInput)
		field  string
	}{
		{"cgpa above range", func(in *IssueInput) { in.CGPA = "10.5" }, "cgpa"},
		{"cgpa not numeric", func(in *IssueInput) { in.CGPA = "ten" }, "cgpa"},
		{"mark above range", func(in *IssueInput) { in.SemMarks.Sem2 = "101" }, "sem2"},
		{"mark negative", func(in *IssueInput) { in.SemMarks.Sem6 = "-1" }, "sem6"},
		{"missing student", func(in *IssueInput) { in.StudentName = " " }, "studentName"},
		{"missing recipient", func(in *IssueInput) { in.RecipientWallet = "" }, "walletAddress"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in := validIssueInput(signer.Address().Hex())
			test.mutate(&in)

			_, err := svc.Issue(context.Background(), in)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, test.field, validationErr.Field)
		})
	}
}

func TestIssueWalletUnavailable(t *testing.T) {
	pinner := newFakePinner()
	svc := NewService(pinner, newFakeLedger(), nil, pinner, &fakeRecorder{})

	_, err := svc.Issue(context.Background(), validIssueInput("0x8ba1f109551bD432803012645Ac136ddd64DBA72"))
	assert.ErrorIs(t, err, ErrWalletUnavailable)
}

func TestIssueSignerMismatch(t *testing.T) {
	pinner := newFakePinner()
	signer, err := newTestSigner()
	require.NoError(t, err)
	svc := NewService(pinner, newFakeLedger(), signer, pinner, &fakeRecorder{})

	// Declared institution wallet differs from the active session account.
	in := validIssueInput("0x0000000000000000000000000000000000000001")

	_, err = svc.Issue(context.Background(), in)
	var mismatch *SignerMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, strings.ToLower(signer.Address().Hex()), mismatch.Active)
}

func TestIssueSignerMatchIsCaseInsensitive(t *testing.T) {
	pinner := newFakePinner()
	chain := newFakeLedger()
	signer, err := newTestSigner()
	require.NoError(t, err)
	svc := NewService(pinner, chain, signer, pinner, &fakeRecorder{})

	in := validIssueInput(strings.ToUpper(strings.TrimPrefix(signer.Address().Hex(), "0x")))
	in.InstitutionWalletAddress = "0x" + in.InstitutionWalletAddress

	_, err = svc.Issue(context.Background(), in)
	require.NoError(t, err)
}

func TestIssueMintFailureSurfacesReason(t *testing.T) {
	pinner := newFakePinner()
	chain := newFakeLedger()
	chain.mintReason = "execution reverted: recipient is zero address"
	signer, err := newTestSigner()
	require.NoError(t, err)
	recorder := &fakeRecorder{}
	svc := NewService(pinner, chain, signer, pinner, recorder)

	_, err = svc.Issue(context.Background(), validIssueInput(signer.Address().Hex()))
	var mintErr *MintError
	require.ErrorAs(t, err, &mintErr)
	assert.Equal(t, "execution reverted: recipient is zero address", mintErr.Reason)

	// No persistence after a failed mint, but the orphaned metadata pin is
	// accepted and stays behind.
	assert.Empty(t, recorder.saved)
	assert.Empty(t, recorder.deleted)
	assert.Len(t, pinner.docs, 1)
}

func TestIssueRecorderFailureSurfaces(t *testing.T) {
	pinner := newFakePinner()
	chain := newFakeLedger()
	signer, err := newTestSigner()
	require.NoError(t, err)
	recorder := &fakeRecorder{saveErr: errors.New("connection refused")}
	svc := NewService(pinner, chain, signer, pinner, recorder)

	_, err = svc.Issue(context.Background(), validIssueInput(signer.Address().Hex()))
	require.Error(t, err)

	// The mint itself went through; only the mirror write failed.
	assert.Len(t, chain.records, 1)
}
