package pumpswap_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"

	sdkconfig "github.com/solkit/pumpswap-go-sdk/pkg/config"
	"github.com/solkit/pumpswap-go-sdk/pkg/pumpswap"
	sdkrpc "github.com/solkit/pumpswap-go-sdk/pkg/rpc"
)

// Integration tests run against live mainnet RPC and are driven by
// environment variables:
//
//	PUMPSWAP_TEST_RPC_URL: RPC endpoint (default: public mainnet)
//	PUMPSWAP_TEST_MINT:    token mint with an active PumpSwap pool
//	PUMPSWAP_TEST_USER:    wallet pubkey used for read-only build checks

func integrationConfig(t *testing.T) (*sdkrpc.Client, solana.PublicKey) {
	t.Helper()

	mintStr := os.Getenv("PUMPSWAP_TEST_MINT")
	if mintStr == "" {
		t.Skip("PUMPSWAP_TEST_MINT not set, skipping integration test")
	}
	mint, err := solana.PublicKeyFromBase58(mintStr)
	if err != nil {
		t.Fatalf("parse PUMPSWAP_TEST_MINT: %v", err)
	}

	cfg := sdkconfig.DefaultRPCConfig()
	if url := os.Getenv("PUMPSWAP_TEST_RPC_URL"); url != "" {
		cfg.RPCURL = url
	} else {
		cfg.RPCURL = solanarpc.MainNetBeta_RPC
	}
	cfg.Timeout = 30 * time.Second
	return sdkrpc.NewClient(cfg), mint
}

func TestFindPoolAndReserves(t *testing.T) {
	client, mint := integrationConfig(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sdk, err := pumpswap.New(client)
	if err != nil {
		t.Fatalf("init sdk: %v", err)
	}

	pool, err := sdk.FindPool(ctx, mint)
	if err != nil {
		t.Fatalf("find pool: %v", err)
	}
	t.Logf("pool: %s", pool)

	reserves, err := sdk.GetReserves(ctx, pool, mint)
	if err != nil {
		t.Fatalf("get reserves: %v", err)
	}
	t.Logf("reserves: token=%d sol=%d", reserves.TokenReserve, reserves.SolReserve)

	if reserves.TokenReserve == 0 || reserves.SolReserve == 0 {
		t.Fatal("expected non-empty reserves on an active pool")
	}
}

func TestBuildBuyLive(t *testing.T) {
	client, mint := integrationConfig(t)

	userStr := os.Getenv("PUMPSWAP_TEST_USER")
	if userStr == "" {
		t.Skip("PUMPSWAP_TEST_USER not set, skipping integration test")
	}
	user, err := solana.PublicKeyFromBase58(userStr)
	if err != nil {
		t.Fatalf("parse PUMPSWAP_TEST_USER: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sdk, err := pumpswap.New(client)
	if err != nil {
		t.Fatalf("init sdk: %v", err)
	}

	instrs, quote, err := sdk.BuildBuy(ctx, mint, user, 1_000_000, pumpswap.DefaultSlippageBps)
	if err != nil {
		t.Fatalf("build buy: %v", err)
	}
	t.Logf("quote: out=%d bound=%d instructions=%d", quote.OutputAmount, quote.BoundAmount, len(instrs))

	if len(instrs) == 0 {
		t.Fatal("expected a non-empty instruction list")
	}
	if quote.BoundAmount < quote.InputAmount {
		t.Fatalf("bound %d below input %d", quote.BoundAmount, quote.InputAmount)
	}
}

func TestTokenPriceLive(t *testing.T) {
	client, mint := integrationConfig(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sdk, err := pumpswap.New(client)
	if err != nil {
		t.Fatalf("init sdk: %v", err)
	}

	price, ok := sdk.TokenPriceInSOL(ctx, mint)
	if !ok {
		t.Fatal("expected a price for an active pool")
	}
	if price <= 0 {
		t.Fatalf("expected positive price, got %f", float64(price))
	}
	t.Logf("price: %.12f SOL", float64(price))
}
