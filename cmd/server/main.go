package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/0xPuncker/polkacommerce-wallet/internal/api"
	"github.com/0xPuncker/polkacommerce-wallet/internal/config"
	"github.com/0xPuncker/polkacommerce-wallet/internal/cron"
	"github.com/0xPuncker/polkacommerce-wallet/internal/notifications"
	"github.com/0xPuncker/polkacommerce-wallet/internal/registry"
	"github.com/0xPuncker/polkacommerce-wallet/internal/verify"
	"github.com/dimiro1/banner"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

const bannerText = `
{{ .Title "Polkacommerce Wallet" "" 0 }}
{{ .AnsiBackground.BrightBlue }}{{ .AnsiColor.White }}
{{ .AnsiReset }}
`

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05-07:00",
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Unknown log level %q, using info", level)
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}

func main() {
	config.LoadEnv()

	banner.Init(colorable.NewColorableStdout(), true, true, strings.NewReader(bannerText))

	configPath := flag.String("config", "config/config.json", "path to config file")
	chainsPath := flag.String("chains", "", "path to chains.yaml (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	if *chainsPath != "" {
		cfg.Wallet.ChainsFile = *chainsPath
	}
	selection, err := config.LoadChainSelection(cfg.Wallet.ChainsFile)
	if err != nil {
		logger.Fatalf("Failed to load chain selection: %v", err)
	}

	walletConfig, err := registry.Build(registry.Options{
		EnableTestnets: cfg.Wallet.EnableTestnets,
		Enabled:        selection.Enabled,
	})
	if err != nil {
		logger.Fatalf("Failed to build wallet config: %v", err)
	}

	for _, c := range walletConfig.Chains() {
		logger.WithFields(logrus.Fields{
			"chain_id": c.ID,
			"testnet":  c.Testnet,
		}).Infof("Chain enabled: %s", c.Name)
	}

	timeout, cacheTTL := cfg.Verifier.Durations()
	verifier := verify.New(logger, timeout, cacheTTL)

	scheduler := cron.NewScheduler(logger, cfg.Jobs)
	verifyJob := cron.NewVerifyRPCsJob(walletConfig, verifier, logger, 3*timeout)
	if cfg.Slack.WebhookURL != "" {
		slack, err := notifications.NewSlackService(logger, cfg.Slack.WebhookURL)
		if err != nil {
			logger.Warnf("Failed to initialize Slack service: %v", err)
		} else {
			verifyJob.SetAlerter(slack)
		}
	}
	scheduler.RegisterTask(cron.VerifyRPCsTask, verifyJob.Run)

	if err := scheduler.LoadPredefinedJobs(cfg.Jobs.Predefined); err != nil {
		logger.Fatalf("Failed to load predefined jobs: %v", err)
	}

	go func() {
		if err := scheduler.RunTask(cron.VerifyRPCsTask); err != nil {
			logger.Warnf("Initial RPC verification: %v", err)
		}
	}()

	if err := scheduler.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := api.NewHandler(walletConfig, verifier, scheduler, logger)
	readTimeout, writeTimeout := cfg.Server.Timeouts()
	if err := api.StartServer(ctx, handler, cfg.Server.Port, readTimeout, writeTimeout); err != nil {
		logger.Errorf("%v", err)
	}
}
