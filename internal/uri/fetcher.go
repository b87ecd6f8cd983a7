package uri

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/feral-file/ff-model-indexer/internal/adapter"
	"github.com/feral-file/ff-model-indexer/internal/logger"
)

// Config holds configuration for the metadata fetcher
type Config struct {
	// IPFSGateways is the list of IPFS gateways to try, in order
	IPFSGateways []string
	// ArweaveGateways is the list of Arweave gateways to try, in order
	ArweaveGateways []string
	// MaxBodySize caps the bytes read from a response, 0 means unlimited
	MaxBodySize int64
}

// ErrNotJSON is returned when a fetched document is not JSON
var ErrNotJSON = errors.New("document is not JSON")

// Fetcher defines the interface for fetching JSON metadata documents
//
//go:generate mockgen -source=fetcher.go -destination=../mocks/uri_fetcher.go -package=mocks -mock_names=Fetcher=MockFetcher
type Fetcher interface {
	// Fetch retrieves a JSON document from ipfs://, ar://, http(s):// or data: URIs.
	// Each attempt against a gateway is bounded by timeout.
	Fetch(ctx context.Context, uri string, timeout time.Duration) ([]byte, error)
}

type fetcher struct {
	httpClient adapter.HTTPClient
	config     Config
}

// NewFetcher creates a new metadata fetcher
func NewFetcher(httpClient adapter.HTTPClient, config Config) Fetcher {
	return &fetcher{
		httpClient: httpClient,
		config:     config,
	}
}

func (f *fetcher) Fetch(ctx context.Context, uri string, timeout time.Duration) ([]byte, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, fmt.Errorf("empty uri")
	}

	if strings.HasPrefix(uri, "data:") {
		return f.fetchDataURI(uri)
	}

	candidates, err := f.candidates(uri)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, candidate := range candidates {
		body, err := f.fetchOne(ctx, candidate, timeout)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		logger.DebugCtx(ctx, "Metadata gateway attempt failed", zap.String("url", candidate), zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", candidate, err))
	}

	return nil, fmt.Errorf("failed to fetch %s: %w", uri, errors.Join(errs...))
}

func (f *fetcher) fetchOne(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, err := f.httpClient.GetBody(ctx, url, f.config.MaxBodySize)
	if err != nil {
		return nil, err
	}

	if !isJSON(body) {
		return nil, fmt.Errorf("%w: detected %s", ErrNotJSON, mimetype.Detect(body).String())
	}

	return body, nil
}

func (f *fetcher) fetchDataURI(uri string) ([]byte, error) {
	parsed, err := ParseDataURI(uri)
	if err != nil {
		return nil, err
	}
	if !isJSON(parsed.Data) {
		return nil, fmt.Errorf("%w: data URI declared %s", ErrNotJSON, parsed.MimeType)
	}
	return parsed.Data, nil
}

// candidates returns the URLs to try for a URI, gateways in configured order
func (f *fetcher) candidates(uri string) ([]string, error) {
	if cid, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		cid = strings.TrimPrefix(cid, "ipfs/")
		return gatewayURLs(f.config.IPFSGateways, "ipfs/"+cid, "IPFS")
	}

	if txID, ok := strings.CutPrefix(uri, "ar://"); ok {
		return gatewayURLs(f.config.ArweaveGateways, txID, "Arweave")
	}

	// IPFS gateway URLs (e.g., https://example.com/ipfs/QmXxx) are tried against the configured gateways first
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		if _, path, ok := strings.Cut(uri, "/ipfs/"); ok && path != "" && len(f.config.IPFSGateways) > 0 {
			urls, _ := gatewayURLs(f.config.IPFSGateways, "ipfs/"+path, "IPFS")
			return append(urls, uri), nil
		}
		return []string{uri}, nil
	}

	return nil, fmt.Errorf("unsupported uri scheme: %s", uri)
}

func gatewayURLs(gateways []string, path string, name string) ([]string, error) {
	if len(gateways) == 0 {
		return nil, fmt.Errorf("no %s gateways configured", name)
	}

	urls := make([]string, 0, len(gateways))
	for _, gateway := range gateways {
		urls = append(urls, strings.TrimRight(gateway, "/")+"/"+path)
	}
	return urls, nil
}

func isJSON(body []byte) bool {
	return mimetype.Detect(body).Is("application/json")
}
