package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/solkit/pumpswap-go-sdk/pkg/pumpswap"
	"github.com/solkit/pumpswap-go-sdk/pkg/txbuilder"
)

func newBuyCmd(opts *globalOpts) *cobra.Command {
	var (
		mintStr     string
		solLamports uint64
		slippageBps uint64
		preview     bool
	)
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy a token with SOL on its PumpSwap pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			deps, err := newDeps(cmd, opts, true)
			if err != nil {
				return err
			}
			mint, err := parsePubkey("mint", mintStr)
			if err != nil {
				return err
			}

			instrs, quote, err := deps.sdk.BuildBuy(ctx, mint, deps.signer.PublicKey(), solLamports, slippageBps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "quote: spend %d lamports, receive %d tokens, max spend %d\n",
				quote.InputAmount, quote.OutputAmount, quote.BoundAmount)

			if preview {
				printInstructions(cmd, instrs)
				return nil
			}

			sig, err := deps.builder.BuildSignSendAndConfirm(ctx, deps.signer, nil, txbuilder.ConfirmationConfirmed, instrs...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tx signature: %s\n", sig)
			return nil
		},
	}

	cmd.Flags().StringVar(&mintStr, "mint", "", "token mint pubkey")
	cmd.Flags().Uint64Var(&solLamports, "sol", 0, "SOL to spend, in lamports")
	cmd.Flags().Uint64Var(&slippageBps, "slippage-bps", pumpswap.DefaultSlippageBps, "slippage tolerance in basis points")
	cmd.Flags().BoolVar(&preview, "preview", false, "print instructions without sending")
	_ = cmd.MarkFlagRequired("mint")
	_ = cmd.MarkFlagRequired("sol")

	return cmd
}

func newSellCmd(opts *globalOpts) *cobra.Command {
	var (
		mintStr     string
		tokenIn     uint64
		slippageBps uint64
		preview     bool
	)
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Sell a token back to SOL (full balance unless --amount)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			deps, err := newDeps(cmd, opts, true)
			if err != nil {
				return err
			}
			mint, err := parsePubkey("mint", mintStr)
			if err != nil {
				return err
			}

			var (
				instrs []solana.Instruction
				quote  *pumpswap.SwapQuote
			)
			if tokenIn > 0 {
				instrs, quote, err = deps.sdk.BuildSellAmount(ctx, mint, deps.signer.PublicKey(), tokenIn, slippageBps)
			} else {
				instrs, quote, err = deps.sdk.BuildSell(ctx, mint, deps.signer.PublicKey(), slippageBps)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "quote: sell %d tokens, receive %d lamports, min receive %d\n",
				quote.InputAmount, quote.OutputAmount, quote.BoundAmount)

			if preview {
				printInstructions(cmd, instrs)
				return nil
			}

			sig, err := deps.builder.BuildSignSendAndConfirm(ctx, deps.signer, nil, txbuilder.ConfirmationConfirmed, instrs...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tx signature: %s\n", sig)
			return nil
		},
	}

	cmd.Flags().StringVar(&mintStr, "mint", "", "token mint pubkey")
	cmd.Flags().Uint64Var(&tokenIn, "amount", 0, "token amount to sell (0 sells the full balance)")
	cmd.Flags().Uint64Var(&slippageBps, "slippage-bps", pumpswap.DefaultSlippageBps, "slippage tolerance in basis points")
	cmd.Flags().BoolVar(&preview, "preview", false, "print instructions without sending")
	_ = cmd.MarkFlagRequired("mint")

	return cmd
}

func printInstructions(cmd *cobra.Command, instrs []solana.Instruction) {
	for i, ix := range instrs {
		data, _ := ix.Data()
		fmt.Fprintf(cmd.OutOrStdout(), "[%d] program=%s accounts=%d data=%d bytes\n",
			i, ix.ProgramID(), len(ix.Accounts()), len(data))
	}
}
