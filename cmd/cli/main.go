package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	sdkconfig "github.com/solkit/pumpswap-go-sdk/pkg/config"
	"github.com/solkit/pumpswap-go-sdk/pkg/jito"
	"github.com/solkit/pumpswap-go-sdk/pkg/pumpswap"
	sdkrpc "github.com/solkit/pumpswap-go-sdk/pkg/rpc"
	"github.com/solkit/pumpswap-go-sdk/pkg/txbuilder"
	"github.com/solkit/pumpswap-go-sdk/pkg/wallet"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOpts struct {
	rpcURL        string
	commitment    string
	keypairPath   string
	skipPreflight bool
	useJito       bool
	rateLimitRPS  float64
	logLevel      string
	timeoutSec    int
	strictPool    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	root := &cobra.Command{
		Use:   "pumpswap",
		Short: "PumpSwap AMM swap transaction builder",
	}

	root.PersistentFlags().StringVar(&opts.rpcURL, "rpc-url", os.Getenv("PUMPSWAP_RPC_URL"), "RPC endpoint (default mainnet if empty)")
	root.PersistentFlags().StringVar(&opts.commitment, "commitment", "confirmed", "RPC commitment level")
	root.PersistentFlags().StringVar(&opts.keypairPath, "keypair", os.Getenv("PUMPSWAP_KEYPAIR"), "path to solana-keygen json for the trading wallet")
	root.PersistentFlags().BoolVar(&opts.skipPreflight, "skip-preflight", false, "skip preflight checks on send")
	root.PersistentFlags().BoolVar(&opts.useJito, "jito", false, "send via Jito block engine")
	root.PersistentFlags().Float64Var(&opts.rateLimitRPS, "rate-limit-rps", 8, "rate limit RPS (0 to disable)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	root.PersistentFlags().IntVar(&opts.timeoutSec, "timeout-sec", 20, "RPC timeout seconds")
	root.PersistentFlags().BoolVar(&opts.strictPool, "strict-pool", false, "fail when a mint matches more than one pool")

	root.AddCommand(
		newConfigCmd(),
		newBuyCmd(opts),
		newSellCmd(opts),
		newPriceCmd(opts),
		newPoolCmd(opts),
	)

	return root
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show default config and address registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := sdkconfig.DefaultRPCConfig()
			addrs := sdkconfig.MainnetAddresses()
			fmt.Fprintf(cmd.OutOrStdout(), "network=%s\nrpc=%s\ncommitment=%s\n", cfg.Network, cfg.ResolveRPCURL(), cfg.Commitment)
			fmt.Fprintf(cmd.OutOrStdout(), "program=%s\nglobal_authority=%s\nfee_receiver=%s\nquote_mint=%s\n",
				addrs.Program, addrs.GlobalAuthority, addrs.FeeReceiver, addrs.QuoteMint)
			return nil
		},
	}
}

type runtimeDeps struct {
	sdk     *pumpswap.SDK
	builder *txbuilder.Builder
	signer  wallet.Signer
	rpc     *sdkrpc.Client
}

// newDeps wires RPC, SDK, and txbuilder from global flags. needSigner
// commands fail early without a keypair; read-only commands skip it.
func newDeps(cmd *cobra.Command, opts *globalOpts, needSigner bool) (*runtimeDeps, error) {
	cfg := sdkconfig.DefaultRPCConfig()
	if opts.rpcURL != "" {
		cfg.RPCURL = opts.rpcURL
	}
	if opts.commitment != "" {
		cfg.Commitment = opts.commitment
	}
	cfg.RateLimit.RPS = opts.rateLimitRPS
	if opts.timeoutSec > 0 {
		cfg.Timeout = time.Duration(opts.timeoutSec) * time.Second
	}
	log := zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger().Level(parseLogLevel(opts.logLevel))
	cfg.Logger = log

	client := sdkrpc.NewClient(cfg)

	sdkOpts := []pumpswap.Option{pumpswap.WithLogger(log)}
	if opts.strictPool {
		sdkOpts = append(sdkOpts, pumpswap.WithStrictPool())
	}
	sdk, err := pumpswap.New(client, sdkOpts...)
	if err != nil {
		return nil, err
	}

	builder := txbuilder.NewBuilder(client, solanarpc.CommitmentType(cfg.Commitment)).
		WithSkipPreflight(opts.skipPreflight)
	if opts.useJito {
		builder = builder.WithJito(jito.NewClientWithEndpoints(jito.MainnetBlockEngines, ""))
	}

	deps := &runtimeDeps{sdk: sdk, builder: builder, rpc: client}
	if needSigner {
		if opts.keypairPath == "" {
			if b58 := os.Getenv("PUMPSWAP_PRIVATE_KEY"); b58 != "" {
				signer, err := wallet.NewLocalFromBase58(b58)
				if err != nil {
					return nil, err
				}
				deps.signer = signer
				return deps, nil
			}
			return nil, fmt.Errorf("keypair is required (use --keypair or PUMPSWAP_PRIVATE_KEY)")
		}
		signer, err := wallet.NewLocalFromKeygen(opts.keypairPath)
		if err != nil {
			return nil, err
		}
		deps.signer = signer
	}
	return deps, nil
}

func parseLogLevel(lvl string) zerolog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
