package splitter

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/feral-file/ff-model-indexer/internal/domain"
)

// Shares is the distribution of one payment
type Shares struct {
	Seller      *uint256.Int
	Creator     *uint256.Int
	Marketplace *uint256.Int
}

var bpsDenominator = uint256.NewInt(domain.BPS_DENOMINATOR)

// ComputeShares splits amount with floor division.
// The seller receives the remainder so the three shares always sum to amount.
func ComputeShares(amount *uint256.Int, royaltyBps, marketplaceBps uint16) (Shares, error) {
	if uint32(royaltyBps)+uint32(marketplaceBps) > domain.BPS_DENOMINATOR {
		return Shares{}, fmt.Errorf("%w: royalty %d + marketplace %d exceeds %d bps",
			domain.ErrInvalidSplit, royaltyBps, marketplaceBps, domain.BPS_DENOMINATOR)
	}
	if amount == nil {
		return Shares{}, domain.ErrInvalidAmount
	}

	marketplace, overflow := new(uint256.Int).MulDivOverflow(amount, uint256.NewInt(uint64(marketplaceBps)), bpsDenominator)
	if overflow {
		return Shares{}, fmt.Errorf("%w: marketplace share overflows", domain.ErrInvalidAmount)
	}
	creator, overflow := new(uint256.Int).MulDivOverflow(amount, uint256.NewInt(uint64(royaltyBps)), bpsDenominator)
	if overflow {
		return Shares{}, fmt.Errorf("%w: creator share overflows", domain.ErrInvalidAmount)
	}

	seller := new(uint256.Int).Sub(amount, marketplace)
	seller.Sub(seller, creator)

	return Shares{
		Seller:      seller,
		Creator:     creator,
		Marketplace: marketplace,
	}, nil
}

// parseAmount parses a positive decimal amount that fits in 256 bits
func parseAmount(amount string) (*uint256.Int, error) {
	value, err := domain.ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	result, overflow := uint256.FromBig(value)
	if overflow {
		return nil, fmt.Errorf("%w: %q exceeds 256 bits", domain.ErrInvalidAmount, amount)
	}
	return result, nil
}

// parseBalance parses a stored non-negative balance
func parseBalance(balance string) (*uint256.Int, error) {
	if balance == "" {
		return new(uint256.Int), nil
	}
	value, err := uint256.FromDecimal(balance)
	if err != nil {
		return nil, fmt.Errorf("invalid stored balance %q: %w", balance, err)
	}
	return value, nil
}
