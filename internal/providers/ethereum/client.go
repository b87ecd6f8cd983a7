package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-model-indexer/internal/adapter"
	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/logger"
)

// LedgerClient is the read/write surface of the ledger used by the indexer
//
//go:generate mockgen -source=client.go -destination=../../mocks/ledger_client.go -package=mocks -mock_names=LedgerClient=MockLedgerClient
type LedgerClient interface {
	// GetLogs returns the logs of the given contracts and topics in [from, to]
	GetLogs(ctx context.Context, from, to uint64, addresses []common.Address, topics [][]common.Hash) ([]types.Log, error)

	// ReadView calls a view function at the latest block and returns its unpacked outputs
	ReadView(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...any) ([]any, error)

	// SendTransaction signs and submits a call with the configured payer key
	SendTransaction(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...any) (common.Hash, error)

	// GetReceipt returns the receipt of a transaction, nil while it is pending
	GetReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)

	// LatestBlock returns the latest block number
	LatestBlock(ctx context.Context) (uint64, error)

	// ChainID returns the chain this client talks to
	ChainID() domain.Chain
}

// ClientConfig configures the ledger client
type ClientConfig struct {
	// CallTimeout bounds every individual RPC call
	CallTimeout time.Duration
	// RateLimitRPS throttles RPC calls, 0 disables throttling
	RateLimitRPS   float64
	RateLimitBurst int
	// PayerKey is the hex private key used by SendTransaction, empty disables it
	PayerKey string
	// MaxLogRange is the initial block span of a single eth_getLogs call
	MaxLogRange uint64
	// Retry configures backoff for transient RPC failures
	Retry adapter.RetryPolicy
}

const defaultMaxLogRange = 10_000

type ledgerClient struct {
	chain   domain.Chain
	chainID *big.Int
	client  adapter.EthClient
	config  ClientConfig
	limiter *rate.Limiter

	payerKey  *ecdsa.PrivateKey
	payerAddr common.Address
	// serializes nonce selection and submission
	sendMu sync.Mutex
}

// NewClient creates a ledger client over an ethclient connection
func NewClient(chain domain.Chain, client adapter.EthClient, config ClientConfig) (LedgerClient, error) {
	chainID, err := chain.ChainID()
	if err != nil {
		return nil, err
	}
	if config.MaxLogRange == 0 {
		config.MaxLogRange = defaultMaxLogRange
	}
	if config.CallTimeout == 0 {
		config.CallTimeout = 30 * time.Second
	}
	if config.Retry.MaxElapsedTime == 0 {
		config.Retry = adapter.DefaultRetryPolicy
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if config.RateLimitRPS > 0 {
		burst := config.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RateLimitRPS), burst)
	}

	c := &ledgerClient{
		chain:   chain,
		chainID: chainID,
		client:  client,
		config:  config,
		limiter: limiter,
	}

	if config.PayerKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(config.PayerKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid payer key: %w", err)
		}
		c.payerKey = key
		c.payerAddr = crypto.PubkeyToAddress(key.PublicKey)
	}

	return c, nil
}

func (c *ledgerClient) ChainID() domain.Chain {
	return c.chain
}

// call waits for the rate limiter and runs fn with a per-call timeout
func (c *ledgerClient) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	callCtx, cancel := context.WithTimeout(ctx, c.config.CallTimeout)
	defer cancel()
	return fn(callCtx)
}

// LatestBlock returns the latest block number
func (c *ledgerClient) LatestBlock(ctx context.Context) (uint64, error) {
	var number uint64
	err := c.call(ctx, func(ctx context.Context) error {
		var err error
		number, err = c.client.BlockNumber(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return number, nil
}

// GetLogs fetches logs in chunks, halving the chunk size when the provider
// rejects a range for returning too many results
func (c *ledgerClient) GetLogs(ctx context.Context, from, to uint64, addresses []common.Address, topics [][]common.Hash) ([]types.Log, error) {
	if from > to {
		return nil, nil
	}

	var allLogs []types.Log
	stepSize := c.config.MaxLogRange
	currentFrom := from

	for currentFrom <= to {
		currentTo := currentFrom + stepSize - 1
		if currentTo > to || currentTo < currentFrom {
			currentTo = to
		}

		query := ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(currentFrom),
			ToBlock:   new(big.Int).SetUint64(currentTo),
			Addresses: addresses,
			Topics:    topics,
		}

		logs, err := c.filterLogsWithRetry(ctx, query)
		if err == nil {
			allLogs = append(allLogs, logs...)
			currentFrom = currentTo + 1
			if currentTo == to {
				break
			}
			continue
		}

		if !isTooManyResultsError(err) || stepSize == 1 {
			return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", currentFrom, currentTo, err)
		}

		stepSize = stepSize / 2
		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("oldStepSize", stepSize*2),
			zap.Uint64("newStepSize", stepSize),
			zap.Uint64("fromBlock", currentFrom),
			zap.Uint64("toBlock", currentTo))
	}

	return allLogs, nil
}

// filterLogsWithRetry retries transient failures; result-size errors are returned immediately
func (c *ledgerClient) filterLogsWithRetry(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	var logs []types.Log
	operation := func() error {
		err := c.call(ctx, func(ctx context.Context) error {
			var err error
			logs, err = c.client.FilterLogs(ctx, query)
			return err
		})
		if err != nil && (isTooManyResultsError(err) || ctx.Err() != nil) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.config.Retry.InitialInterval
	b.MaxInterval = c.config.Retry.MaxInterval
	b.MaxElapsedTime = c.config.Retry.MaxElapsedTime

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return logs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum") ||
		strings.Contains(errStr, "block range")
}

// ReadView packs a view call, executes it at the latest block and unpacks the outputs
func (c *ledgerClient) ReadView(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...any) ([]any, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	var result []byte
	err = c.call(ctx, func(ctx context.Context) error {
		var err error
		result, err = c.client.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}

	values, err := contractABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}

	return values, nil
}

// SendTransaction signs a legacy transaction with the payer key and submits it
func (c *ledgerClient) SendTransaction(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...any) (common.Hash, error) {
	if c.payerKey == nil {
		return common.Hash{}, domain.ErrSignerNotConfigured
	}

	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	var (
		nonce    uint64
		gasPrice *big.Int
		gasLimit uint64
	)
	err = c.call(ctx, func(ctx context.Context) error {
		var err error
		if nonce, err = c.client.PendingNonceAt(ctx, c.payerAddr); err != nil {
			return fmt.Errorf("failed to get nonce: %w", err)
		}
		if gasPrice, err = c.client.SuggestGasPrice(ctx); err != nil {
			return fmt.Errorf("failed to suggest gas price: %w", err)
		}
		gasLimit, err = c.client.EstimateGas(ctx, ethereum.CallMsg{From: c.payerAddr, To: &contract, Data: data})
		if err != nil {
			return fmt.Errorf("failed to estimate gas: %w", err)
		}
		return nil
	})
	if err != nil {
		return common.Hash{}, err
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &contract,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.payerKey)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	err = c.call(ctx, func(ctx context.Context) error {
		return c.client.SendTransaction(ctx, signed)
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.InfoCtx(ctx, "Transaction submitted",
		zap.String("method", method),
		zap.String("contract", contract.Hex()),
		zap.String("txHash", signed.Hash().Hex()))

	return signed.Hash(), nil
}

// GetReceipt returns the receipt of a transaction, or nil when it is not mined yet
func (c *ledgerClient) GetReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := c.call(ctx, func(ctx context.Context) error {
		var err error
		receipt, err = c.client.TransactionReceipt(ctx, txHash)
		return err
	})
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return receipt, nil
}
