package ethereum

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-model-indexer/internal/adapter"
	"github.com/feral-file/ff-model-indexer/internal/domain"
)

// Dial connects to an RPC endpoint and refuses it unless it serves the configured chain
func Dial(ctx context.Context, dialer adapter.EthClientDialer, rpcURL string, chain domain.Chain) (adapter.EthClient, error) {
	expected, err := chain.ChainID()
	if err != nil {
		return nil, err
	}

	client, err := dialer.Dial(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc: %w", err)
	}

	actual, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if actual.Cmp(expected) != 0 {
		client.Close()
		return nil, fmt.Errorf("rpc serves chain %s, configured chain is %s", actual, chain)
	}

	return client, nil
}
