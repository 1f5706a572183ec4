package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"educhain/certificate"

	"github.com/go-resty/resty/v2"
)

// Client talks to a Pinata-style pinning API and to a public IPFS gateway.
// Uploads return the bare content hash; callers build ipfs:// URIs from it.
type Client struct {
	pin     *resty.Client
	fetch   *resty.Client
	gateway string
}

// NewClient builds a client for the pinning API at baseURL, authenticated
// with the Pinata JWT. gateway is the HTTP prefix used to resolve ipfs://
// URIs for fetching, e.g. "https://ipfs.io/ipfs/".
func NewClient(jwt, baseURL, gateway string) *Client {
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return &Client{
		pin:     resty.New().SetBaseURL(baseURL).SetAuthToken(jwt),
		fetch:   resty.New(),
		gateway: gateway,
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// UploadFile pins a blob and returns its content hash.
func (c *Client) UploadFile(ctx context.Context, name string, content []byte) (string, error) {
	resp, err := c.pin.R().
		SetContext(ctx).
		SetFileReader("file", name, bytes.NewReader(content)).
		Post("/pinning/pinFileToIPFS")
	if err != nil {
		return "", err
	}
	return parsePinResponse(resp)
}

// UploadJSON pins a JSON document and returns its content hash.
func (c *Client) UploadJSON(ctx context.Context, name string, doc interface{}) (string, error) {
	resp, err := c.pin.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"pinataContent":  doc,
			"pinataMetadata": map[string]string{"name": name},
		}).
		Post("/pinning/pinJSONToIPFS")
	if err != nil {
		return "", err
	}
	return parsePinResponse(resp)
}

func parsePinResponse(resp *resty.Response) (string, error) {
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("pinning API returned %d: %s", resp.StatusCode(), resp.String())
	}
	var pin pinResponse
	if err := json.Unmarshal(resp.Body(), &pin); err != nil {
		return "", fmt.Errorf("invalid pinning API response: %w", err)
	}
	if pin.IpfsHash == "" {
		return "", fmt.Errorf("pinning API returned no hash")
	}
	return pin.IpfsHash, nil
}

// ResolveURI translates an ipfs:// URI into a fetchable gateway URL. Other
// URIs pass through unchanged.
func (c *Client) ResolveURI(uri string) string {
	if hash, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		return c.gateway + hash
	}
	return uri
}

// FetchMetadata retrieves and decodes a pinned certificate metadata document.
func (c *Client) FetchMetadata(ctx context.Context, uri string) (*certificate.Metadata, error) {
	resp, err := c.fetch.R().SetContext(ctx).Get(c.ResolveURI(uri))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway returned %d", resp.StatusCode())
	}
	var md certificate.Metadata
	if err := json.Unmarshal(resp.Body(), &md); err != nil {
		return nil, fmt.Errorf("malformed metadata document: %w", err)
	}
	return &md, nil
}
