package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

func newPriceCmd(opts *globalOpts) *cobra.Command {
	var mintStr string
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Show the pool spot price of a token in SOL",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			deps, err := newDeps(cmd, opts, false)
			if err != nil {
				return err
			}
			mint, err := parsePubkey("mint", mintStr)
			if err != nil {
				return err
			}

			price, ok := deps.sdk.TokenPriceInSOL(ctx, mint)
			if !ok {
				return fmt.Errorf("no price available for %s", mint)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.12f SOL\n", float64(price))
			return nil
		},
	}
	cmd.Flags().StringVar(&mintStr, "mint", "", "token mint pubkey")
	_ = cmd.MarkFlagRequired("mint")
	return cmd
}

func newPoolCmd(opts *globalOpts) *cobra.Command {
	var mintStr string
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Locate a token's PumpSwap pool and show its reserves",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			deps, err := newDeps(cmd, opts, false)
			if err != nil {
				return err
			}
			mint, err := parsePubkey("mint", mintStr)
			if err != nil {
				return err
			}

			pool, err := deps.sdk.FindPool(ctx, mint)
			if err != nil {
				return err
			}
			reserves, err := deps.sdk.GetReserves(ctx, pool, mint)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pool=%s\ntoken_reserve=%d\nsol_reserve=%d\nspot_price_lamports=%d\n",
				pool, reserves.TokenReserve, reserves.SolReserve, reserves.SpotPrice())
			return nil
		},
	}
	cmd.Flags().StringVar(&mintStr, "mint", "", "token mint pubkey")
	_ = cmd.MarkFlagRequired("mint")
	return cmd
}

func parsePubkey(name, value string) (solana.PublicKey, error) {
	if value == "" {
		return solana.PublicKey{}, fmt.Errorf("%s is required", name)
	}
	pk, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("parse %s: %w", name, err)
	}
	return pk, nil
}
