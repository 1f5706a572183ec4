package ipfs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"educhain/certificate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFile(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		gotBody, _ = io.ReadAll(file)
		w.Write([]byte(`{"IpfsHash":"QmFileHash"}`))
	}))
	defer srv.Close()

	client := NewClient("test-jwt", srv.URL, "https://ipfs.io/ipfs/")
	hash, err := client.UploadFile(context.Background(), "certificate.png", []byte("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "QmFileHash", hash)
	assert.Equal(t, "/pinning/pinFileToIPFS", gotPath)
	assert.Equal(t, "Bearer test-jwt", gotAuth)
	assert.Equal(t, []byte("png-bytes"), gotBody)
}

func TestUploadJSON(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"IpfsHash":"QmJsonHash"}`))
	}))
	defer srv.Close()

	client := NewClient("test-jwt", srv.URL, "https://ipfs.io/ipfs/")
	hash, err := client.UploadJSON(context.Background(), "alice-cert", map[string]string{"a": "b"})
	require.NoError(t, err)

	assert.Equal(t, "QmJsonHash", hash)
	assert.Equal(t, "/pinning/pinJSONToIPFS", gotPath)
	assert.Equal(t, map[string]interface{}{"a": "b"}, gotBody["pinataContent"])
	meta, ok := gotBody["pinataMetadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice-cert", meta["name"])
}

func TestUploadErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", 500, `{"error":"boom"}`},
		{"unauthorized", 401, `{"error":"bad token"}`},
		{"empty hash", 200, `{"IpfsHash":""}`},
		{"malformed body", 200, `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewClient("test-jwt", srv.URL, "https://ipfs.io/ipfs/")
			_, err := client.UploadJSON(context.Background(), "doc", map[string]string{})
			assert.Error(t, err)
		})
	}
}

func TestResolveURI(t *testing.T) {
	client := NewClient("jwt", "https://api.pinata.cloud", "https://ipfs.io/ipfs")

	assert.Equal(t, "https://ipfs.io/ipfs/QmAbc", client.ResolveURI("ipfs://QmAbc"))
	assert.Equal(t, "https://example.com/doc.json", client.ResolveURI("https://example.com/doc.json"))
}

func TestFetchMetadata(t *testing.T) {
	doc := certificate.Metadata{
		SchemaVersion:      2,
		StudentName:        "Alice",
		RegistrationNumber: "R100",
		Course:             "CS",
		CGPA:               certificate.CGPABlock{CGPA: "8.5"},
		CertificateHash:    "0xabc",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ipfs/QmDoc" {
			w.WriteHeader(404)
			return
		}
		json.NewEncoder(w).Encode(doc)
	}))
	defer srv.Close()

	client := NewClient("jwt", "https://api.pinata.cloud", srv.URL+"/ipfs/")

	md, err := client.FetchMetadata(context.Background(), "ipfs://QmDoc")
	require.NoError(t, err)
	assert.Equal(t, &doc, md)

	_, err = client.FetchMetadata(context.Background(), "ipfs://QmMissing")
	assert.Error(t, err)
}

func TestFetchMetadataMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"studentName": 42}`))
	}))
	defer srv.Close()

	client := NewClient("jwt", "https://api.pinata.cloud", srv.URL+"/")
	_, err := client.FetchMetadata(context.Background(), "ipfs://QmBad")
	assert.Error(t, err)
}
