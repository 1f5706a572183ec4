package ledger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"educhain/certificate"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// certificateABI is the fixed contract interface: mint, revoke and read
// operations for certificate tokens plus the minted/revoked events.
const certificateABI = `[
	{"type":"function","name":"mintCertificate","stateMutability":"nonpayable","inputs":[{"name":"recipient","type":"address"},{"name":"ipfsURI","type":"string"},{"name":"digitalSignature","type":"string"},{"name":"publicKey","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"revokeCertificate","stateMutability":"nonpayable","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"getCertificateData","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"digitalSignature","type":"string"},{"name":"publicKey","type":"string"},{"name":"isRevoked","type":"bool"},{"name":"tokenURI","type":"string"}]},
	{"type":"event","name":"CertificateMinted","inputs":[{"name":"recipient","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true},{"name":"ipfsURI","type":"string","indexed":false}],"anonymous":false},
	{"type":"event","name":"CertificateRevoked","inputs":[{"name":"tokenId","type":"uint256","indexed":true}],"anonymous":false}
]`

// Client is a typed binding over the certificate contract. Mint and Revoke
// block until the transaction is mined; reads go through eth_call.
type Client struct {
	eth      *ethclient.Client
	contract *bind.BoundContract
	abi      abi.ABI
	auth     *bind.TransactOpts
}

// Dial connects to the RPC endpoint and binds the contract at address. The
// key funds and signs the mint/revoke transactions.
func Dial(rpcURL, contractAddress string, chainID int64, key *ecdsa.PrivateKey) (*Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ledger RPC: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(certificateABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate ABI: %w", err)
	}

	// Without a key the client is read-only; mint and revoke will refuse.
	var auth *bind.TransactOpts
	if key != nil {
		auth, err = bind.NewKeyedTransactorWithChainID(key, big.NewInt(chainID))
		if err != nil {
			return nil, fmt.Errorf("failed to build transactor: %w", err)
		}
	}

	contract := bind.NewBoundContract(common.HexToAddress(contractAddress), parsed, eth, eth, eth)
	return &Client{eth: eth, contract: contract, abi: parsed, auth: auth}, nil
}

// Mint calls mintCertificate and waits for confirmation. The token id is read
// back from the CertificateMinted event in the receipt.
func (c *Client) Mint(ctx context.Context, recipient common.Address, ipfsURI, digitalSignature, publicKey string) (certificate.MintResult, error) {
	if c.auth == nil {
		return certificate.MintResult{}, &certificate.MintError{Reason: "no transaction key configured", Err: certificate.ErrWalletUnavailable}
	}
	opts := *c.auth
	opts.Context = ctx

	tx, err := c.contract.Transact(&opts, "mintCertificate", recipient, ipfsURI, digitalSignature, publicKey)
	if err != nil {
		return certificate.MintResult{}, &certificate.MintError{Reason: err.Error(), Err: err}
	}

	receipt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		return certificate.MintResult{}, &certificate.MintError{Reason: err.Error(), Err: err}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		err := fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
		return certificate.MintResult{}, &certificate.MintError{Reason: err.Error(), Err: err}
	}

	tokenID, ok := c.mintedTokenID(receipt.Logs)
	if !ok {
		err := fmt.Errorf("no CertificateMinted event in receipt %s", tx.Hash().Hex())
		return certificate.MintResult{}, &certificate.MintError{Reason: err.Error(), Err: err}
	}

	return certificate.MintResult{TokenID: tokenID, TxHash: tx.Hash().Hex()}, nil
}

// mintedTokenID extracts the indexed token id from the CertificateMinted log.
func (c *Client) mintedTokenID(logs []*types.Log) (uint64, bool) {
	eventID := c.abi.Events["CertificateMinted"].ID
	for _, entry := range logs {
		if len(entry.Topics) >= 3 && entry.Topics[0] == eventID {
			return new(big.Int).SetBytes(entry.Topics[2].Bytes()).Uint64(), true
		}
	}
	return 0, false
}

// Revoke calls revokeCertificate and waits for confirmation. Returns the
// transaction hash.
func (c *Client) Revoke(ctx context.Context, tokenID uint64) (string, error) {
	if c.auth == nil {
		return "", &certificate.RevokeError{Reason: "no transaction key configured", Err: certificate.ErrWalletUnavailable}
	}
	opts := *c.auth
	opts.Context = ctx

	tx, err := c.contract.Transact(&opts, "revokeCertificate", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", &certificate.RevokeError{Reason: err.Error(), Err: err}
	}

	receipt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		return "", &certificate.RevokeError{Reason: err.Error(), Err: err}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		err := fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
		return "", &certificate.RevokeError{Reason: err.Error(), Err: err}
	}
	return tx.Hash().Hex(), nil
}

// CertificateData reads (digitalSignature, publicKey, isRevoked, tokenURI)
// for one token. A revert for a missing token surfaces as NotFoundError.
func (c *Client) CertificateData(ctx context.Context, tokenID uint64) (certificate.CertificateData, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getCertificateData", new(big.Int).SetUint64(tokenID))
	if err != nil {
		if isMissingTokenRevert(err) {
			return certificate.CertificateData{}, &certificate.NotFoundError{TokenID: tokenID}
		}
		return certificate.CertificateData{}, err
	}
	if len(out) != 4 {
		return certificate.CertificateData{}, fmt.Errorf("unexpected getCertificateData output arity %d", len(out))
	}

	return certificate.CertificateData{
		DigitalSignature: out[0].(string),
		PublicKey:        out[1].(string),
		IsRevoked:        out[2].(bool),
		TokenURI:         out[3].(string),
	}, nil
}

// isMissingTokenRevert inspects the revert reason for the nonexistent-token
// cases the contract and the ERC-721 base produce.
func isMissingTokenRevert(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "nonexistent token") ||
		strings.Contains(msg, "invalid token") ||
		strings.Contains(msg, "execution reverted")
}
