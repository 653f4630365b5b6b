// Package verify checks that the RPC endpoints of enabled chains answer
// with the chain id their descriptor claims.
package verify

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/0xPuncker/polkacommerce-wallet/pkg/types"
	"github.com/0xPuncker/polkacommerce-wallet/pkg/utils"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const statusCacheKey = "rpc_status:%d"

// Status is the outcome of checking one RPC endpoint.
type Status struct {
	ChainID         uint64    `json:"chain_id"`
	ChainName       string    `json:"chain_name"`
	RPC             string    `json:"rpc"`
	Reachable       bool      `json:"reachable"`
	ReportedChainID uint64    `json:"reported_chain_id,omitempty"`
	Match           bool      `json:"match"`
	Latency         string    `json:"latency,omitempty"`
	CheckedAt       time.Time `json:"checked_at"`
	Error           string    `json:"error,omitempty"`
}

type chainIDClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

type dialFunc func(ctx context.Context, rawurl string) (chainIDClient, error)

type Verifier struct {
	logger      *logrus.Logger
	cache       *cache.Cache
	timeout     time.Duration
	concurrency int
	dial        dialFunc
}

func New(logger *logrus.Logger, timeout, cacheTTL time.Duration) *Verifier {
	return &Verifier{
		logger:      logger,
		cache:       cache.New(cacheTTL, 2*cacheTTL),
		timeout:     timeout,
		concurrency: 5,
		dial:        dialEthClient,
	}
}

func dialEthClient(ctx context.Context, rawurl string) (chainIDClient, error) {
	client, err := ethclient.DialContext(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Check queries every HTTP RPC URL of c and caches the result.
func (v *Verifier) Check(ctx context.Context, c types.Chain) []Status {
	var statuses []Status
	for _, endpoints := range c.RPCURLs {
		for _, rpc := range endpoints.HTTP {
			statuses = append(statuses, v.checkEndpoint(ctx, c, rpc))
		}
	}

	v.cache.Set(fmt.Sprintf(statusCacheKey, c.ID), statuses, cache.DefaultExpiration)
	return statuses
}

func (v *Verifier) checkEndpoint(ctx context.Context, c types.Chain, rpc string) Status {
	status := Status{
		ChainID:   c.ID,
		ChainName: c.Name,
		RPC:       rpc,
		CheckedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	start := time.Now()
	client, err := v.dial(ctx, rpc)
	if err != nil {
		status.Error = fmt.Sprintf("failed to connect to RPC: %v", err)
		v.logger.Debugf("%s (%d): %s", c.Name, c.ID, status.Error)
		return status
	}
	defer client.Close()

	reported, err := client.ChainID(ctx)
	if err != nil {
		status.Error = fmt.Sprintf("failed to get chain ID: %v", err)
		v.logger.Debugf("%s (%d): %s", c.Name, c.ID, status.Error)
		return status
	}

	status.Reachable = true
	status.Latency = utils.FormatElapsed(time.Since(start))
	status.ReportedChainID = reported.Uint64()
	status.Match = reported.IsUint64() && status.ReportedChainID == c.ID

	if !status.Match {
		v.logger.WithFields(logrus.Fields{
			"chain":       c.Name,
			"expected_id": c.ID,
			"reported_id": reported.String(),
			"rpc":         rpc,
		}).Warn("RPC reports a different chain id")
	}

	return status
}

// CheckAll checks every chain concurrently and returns the statuses keyed
// by chain id.
func (v *Verifier) CheckAll(ctx context.Context, chains []types.Chain) map[uint64][]Status {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		semaphore = make(chan struct{}, v.concurrency)
		results   = make(map[uint64][]Status, len(chains))
	)

	for _, c := range chains {
		wg.Add(1)
		go func(c types.Chain) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			statuses := v.Check(ctx, c)

			mu.Lock()
			results[c.ID] = statuses
			mu.Unlock()
		}(c)
	}

	wg.Wait()
	return results
}

// Cached returns the last statuses recorded for a chain id.
func (v *Verifier) Cached(chainID uint64) ([]Status, bool) {
	value, found := v.cache.Get(fmt.Sprintf(statusCacheKey, chainID))
	if !found {
		return nil, false
	}
	statuses, ok := value.([]Status)
	return statuses, ok
}

// Healthy reports whether at least one endpoint answered with the right id.
func Healthy(statuses []Status) bool {
	for _, s := range statuses {
		if s.Match {
			return true
		}
	}
	return false
}
