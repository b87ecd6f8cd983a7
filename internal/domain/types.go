package domain

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainBaseMainnet     Chain = "eip155:8453"
	ChainBaseSepolia     Chain = "eip155:84532"
)

// IsValidChain checks if a chain is an EVM chain in CAIP-2 format
func IsValidChain(chain Chain) bool {
	_, err := chain.ChainID()
	return err == nil
}

// ChainID returns the numeric EVM chain id, e.g. 1 for "eip155:1"
func (c Chain) ChainID() (*big.Int, error) {
	reference, ok := strings.CutPrefix(string(c), "eip155:")
	if !ok || reference == "" {
		return nil, fmt.Errorf("unsupported chain: %s", c)
	}

	id, ok := new(big.Int).SetString(reference, 10)
	if !ok || id.Sign() <= 0 {
		return nil, fmt.Errorf("invalid chain reference: %s", c)
	}

	return id, nil
}

func (c Chain) String() string {
	return string(c)
}

// Stream is a category of ledger events tracked with its own cursor
type Stream string

const (
	StreamModels   Stream = "models"
	StreamLicenses Stream = "licenses"
	StreamPayments Stream = "payments"
)

// AllStreams lists the streams in the order the scheduler advances them
var AllStreams = []Stream{StreamModels, StreamLicenses, StreamPayments}

// Valid checks if the stream is known
func (s Stream) Valid() bool {
	return s == StreamModels || s == StreamLicenses || s == StreamPayments
}

func (s Stream) String() string {
	return string(s)
}

// LicenseKind is the license type recorded at purchase time
type LicenseKind string

const (
	LicenseKindPerpetual    LicenseKind = "perpetual"
	LicenseKindSubscription LicenseKind = "subscription"
)

// LicenseKindFromUint8 maps the on-chain enum to a LicenseKind
func LicenseKindFromUint8(kind uint8) (LicenseKind, error) {
	switch kind {
	case 0:
		return LicenseKindPerpetual, nil
	case 1:
		return LicenseKindSubscription, nil
	default:
		return "", fmt.Errorf("unknown license kind: %d", kind)
	}
}

// Position is the location of a log on the ledger
type Position struct {
	Block    uint64 `json:"block"`
	LogIndex uint64 `json:"log_index"`
}

// After reports whether p is strictly later than o
func (p Position) After(o Position) bool {
	if p.Block != o.Block {
		return p.Block > o.Block
	}
	return p.LogIndex > o.LogIndex
}

// IsValidAddress checks if the address is a 20-byte hex string
func IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

// NormalizeAddress returns the lowercase 0x-prefixed form of an address
func NormalizeAddress(address string) string {
	return strings.ToLower(common.HexToAddress(address).Hex())
}

// NormalizeAddresses normalizes a list of addresses in place
func NormalizeAddresses(addresses []string) []string {
	for i, address := range addresses {
		addresses[i] = NormalizeAddress(address)
	}
	return addresses
}

// ParseAmount parses a positive decimal integer amount in the smallest token unit
func ParseAmount(amount string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(amount, 10)
	if !ok || value.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return value, nil
}

// ParseModelID parses a positive decimal model id
func ParseModelID(modelID string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(modelID), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidModelID, modelID)
	}
	return id, nil
}

// NormalizeTxHash validates a 32-byte hex transaction hash and returns its lowercase form
func NormalizeTxHash(txHash string) (string, error) {
	hash := strings.ToLower(strings.TrimSpace(txHash))
	if !strings.HasPrefix(hash, "0x") || len(hash) != 66 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTxHash, txHash)
	}
	if _, err := hex.DecodeString(hash[2:]); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTxHash, txHash)
	}
	return hash, nil
}
