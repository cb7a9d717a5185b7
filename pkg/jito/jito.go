// Package jito submits transactions through the Jito block engine for
// priority inclusion. Swap builds are unaffected; this is an alternate
// send path plumbed in through txbuilder.
package jito

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	jitorpc "github.com/jito-labs/jito-go-rpc"
)

const (
	MainnetBlockEngine = "https://mainnet.block-engine.jito.wtf/api/v1"
	TestnetBlockEngine = "https://testnet.block-engine.jito.wtf/api/v1"
)

// MainnetBlockEngines lists the regional mainnet endpoints. Rotating
// across them spreads the per-endpoint rate limit.
var MainnetBlockEngines = []string{
	"https://mainnet.block-engine.jito.wtf/api/v1",
	"https://amsterdam.mainnet.block-engine.jito.wtf/api/v1",
	"https://frankfurt.mainnet.block-engine.jito.wtf/api/v1",
	"https://ny.mainnet.block-engine.jito.wtf/api/v1",
	"https://tokyo.mainnet.block-engine.jito.wtf/api/v1",
}

// MainnetTipAccounts are the published Jito tip accounts. They change
// rarely, so picking one locally avoids a getTipAccounts round trip.
var MainnetTipAccounts = []solana.PublicKey{
	solana.MustPublicKeyFromBase58("96gYZGLnJYVFmbjzopPSU6QiEV5fGqZNyN9nmNhvrZU5"),
	solana.MustPublicKeyFromBase58("HFqU5x63VTqvQss8hp11i4wVV8bD44PvwucfZ2bU7gRe"),
	solana.MustPublicKeyFromBase58("Cw8CFyM9FkoMi7K7Crf6HNQqf4uEMzpKw6QNghXLvLkY"),
	solana.MustPublicKeyFromBase58("ADaUMid9yfUytqMBgopwjb2DTLSokTSzL1zt6iGPaS49"),
	solana.MustPublicKeyFromBase58("DfXygSm4jCyNCybVYYK6DwvWqjKee8pbDmJGcLWNDXjh"),
	solana.MustPublicKeyFromBase58("ADuUkR4vqLUMWXxW9gh6D6L8pMSawimctcNZ5pGwDcEt"),
	solana.MustPublicKeyFromBase58("DttWaMuVvTiduZRnguLF7jNxTgiMBZ1hyAumKUiL2KRL"),
	solana.MustPublicKeyFromBase58("3AVi9Tg9Uo68tJfuvoKvqKNWKkC5wPdSSdeBnizKZ6jT"),
}

// RandomTipAccount picks a tip account from the local list without any
// network call.
func RandomTipAccount() solana.PublicKey {
	return MainnetTipAccounts[rand.Intn(len(MainnetTipAccounts))]
}

// TipInstruction builds a native transfer paying lamports to a random
// tip account. Append it to a bundle's last transaction.
func TipInstruction(from solana.PublicKey, lamports uint64) solana.Instruction {
	return system.NewTransferInstruction(lamports, from, RandomTipAccount()).Build()
}

// Client talks to the Jito block engine with endpoint rotation and
// retry on rate limiting.
type Client struct {
	endpoints  []string
	uuid       string
	next       uint32
	maxRetries int
	retryDelay time.Duration
}

// NewClient targets a single endpoint. Empty endpoint means mainnet;
// uuid is optional and may be empty.
func NewClient(endpoint, uuid string) *Client {
	if endpoint == "" {
		endpoint = MainnetBlockEngine
	}
	return &Client{
		endpoints:  []string{endpoint},
		uuid:       uuid,
		maxRetries: 3,
		retryDelay: 200 * time.Millisecond,
	}
}

// NewClientWithEndpoints rotates round-robin across several endpoints,
// failing over when one rate-limits.
func NewClientWithEndpoints(endpoints []string, uuid string) *Client {
	if len(endpoints) == 0 {
		endpoints = MainnetBlockEngines
	}
	return &Client{
		endpoints:  endpoints,
		uuid:       uuid,
		maxRetries: len(endpoints) + 2,
		retryDelay: 100 * time.Millisecond,
	}
}

// WithRetries overrides the retry count and delay.
func (c *Client) WithRetries(maxRetries int, retryDelay time.Duration) *Client {
	c.maxRetries = maxRetries
	c.retryDelay = retryDelay
	return c
}

func (c *Client) nextClient() *jitorpc.JitoJsonRpcClient {
	idx := atomic.AddUint32(&c.next, 1)
	return jitorpc.NewJitoJsonRpcClient(c.endpoints[int(idx)%len(c.endpoints)], c.uuid)
}

func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "Rate limit") ||
		strings.Contains(msg, "congested") ||
		strings.Contains(msg, "429")
}

// SendTransaction submits one signed transaction as a single-entry
// bundle and returns its first signature.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	txBytes, err := tx.MarshalBinary()
	if err != nil {
		return solana.Signature{}, fmt.Errorf("marshal transaction: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(txBytes)

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if err := ctx.Err(); err != nil {
			return solana.Signature{}, err
		}
		raw, err := c.nextClient().SendBundle([][]string{{encoded}})
		if err != nil {
			lastErr = err
			if isRateLimited(err) {
				time.Sleep(c.retryDelay)
				continue
			}
			return solana.Signature{}, fmt.Errorf("jito send: %w", err)
		}
		var bundleID string
		if err := json.Unmarshal(raw, &bundleID); err != nil {
			return solana.Signature{}, fmt.Errorf("unmarshal bundle response: %w", err)
		}
		if len(tx.Signatures) > 0 {
			return tx.Signatures[0], nil
		}
		return solana.Signature{}, nil
	}
	return solana.Signature{}, fmt.Errorf("jito send failed after %d retries: %w", c.maxRetries, lastErr)
}

// SendBundle submits several signed transactions as one atomic bundle
// and returns the bundle id.
func (c *Client) SendBundle(ctx context.Context, txs []*solana.Transaction) (string, error) {
	if len(txs) == 0 {
		return "", fmt.Errorf("bundle requires at least one transaction")
	}
	encoded := make([]string, 0, len(txs))
	for _, tx := range txs {
		txBytes, err := tx.MarshalBinary()
		if err != nil {
			return "", fmt.Errorf("marshal transaction: %w", err)
		}
		encoded = append(encoded, base64.StdEncoding.EncodeToString(txBytes))
	}

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		raw, err := c.nextClient().SendBundle([][]string{encoded})
		if err != nil {
			lastErr = err
			if isRateLimited(err) {
				time.Sleep(c.retryDelay)
				continue
			}
			return "", fmt.Errorf("jito send bundle: %w", err)
		}
		var bundleID string
		if err := json.Unmarshal(raw, &bundleID); err != nil {
			return "", fmt.Errorf("unmarshal bundle response: %w", err)
		}
		return bundleID, nil
	}
	return "", fmt.Errorf("jito send bundle failed after %d retries: %w", c.maxRetries, lastErr)
}

// GetBundleStatuses looks up the on-chain status of submitted bundles.
func (c *Client) GetBundleStatuses(ctx context.Context, bundleIDs []string) (*jitorpc.BundleStatusResponse, error) {
	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		statuses, err := c.nextClient().GetBundleStatuses(bundleIDs)
		if err != nil {
			lastErr = err
			if isRateLimited(err) {
				time.Sleep(c.retryDelay)
				continue
			}
			return nil, fmt.Errorf("get bundle statuses: %w", err)
		}
		return statuses, nil
	}
	return nil, fmt.Errorf("get bundle statuses failed after %d retries: %w", c.maxRetries, lastErr)
}
