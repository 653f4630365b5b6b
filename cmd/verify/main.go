package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/0xPuncker/polkacommerce-wallet/internal/config"
	"github.com/0xPuncker/polkacommerce-wallet/internal/registry"
	"github.com/0xPuncker/polkacommerce-wallet/internal/verify"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	chainsPath := flag.String("chains", "", "path to chains.yaml")
	timeout := flag.Duration("timeout", 10*time.Second, "timeout per RPC endpoint")
	printConfig := flag.Bool("print", false, "print the wallet config as JSON and exit")
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	selection, err := config.LoadChainSelection(*chainsPath)
	if err != nil {
		logger.Fatalf("Failed to load chain selection: %v", err)
	}

	walletConfig, err := registry.Build(registry.Options{
		EnableTestnets: registry.TestnetsEnabled(os.Getenv(registry.EnableTestnetsEnv)),
		Enabled:        selection.Enabled,
	})
	if err != nil {
		logger.Fatalf("Failed to build wallet config: %v", err)
	}

	if *printConfig {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(walletConfig); err != nil {
			logger.Fatalf("Failed to encode wallet config: %v", err)
		}
		return
	}

	verifier := verify.New(logger, *timeout, time.Minute)
	chains := walletConfig.Chains()
	results := verifier.CheckAll(context.Background(), chains)

	failed := 0
	for _, c := range chains {
		fmt.Printf("\n%s (chain id %d)\n", c.Name, c.ID)
		for _, s := range results[c.ID] {
			switch {
			case s.Match:
				fmt.Printf("  OK       %s (%s)\n", s.RPC, s.Latency)
			case s.Reachable:
				fmt.Printf("  MISMATCH %s reports chain id %d\n", s.RPC, s.ReportedChainID)
			default:
				fmt.Printf("  DOWN     %s: %s\n", s.RPC, s.Error)
			}
		}
		if !verify.Healthy(results[c.ID]) {
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d chains failed verification\n", failed, len(chains))
		os.Exit(1)
	}
	fmt.Printf("\nAll %d chains verified\n", len(chains))
}
