package cron

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/0xPuncker/polkacommerce-wallet/internal/notifications"
	"github.com/0xPuncker/polkacommerce-wallet/internal/verify"
	"github.com/0xPuncker/polkacommerce-wallet/internal/wallet"
	"github.com/sirupsen/logrus"
)

const VerifyRPCsTask = "verify-rpcs"

// Alerter is told about chains that failed verification.
type Alerter interface {
	SendVerificationAlert(appName string, alerts []notifications.ChainAlert) error
}

// VerifyRPCsJob checks the RPC endpoints of every enabled chain.
type VerifyRPCsJob struct {
	config   *wallet.Config
	verifier *verify.Verifier
	logger   *logrus.Logger
	timeout  time.Duration
	alerter  Alerter
}

func NewVerifyRPCsJob(cfg *wallet.Config, verifier *verify.Verifier, logger *logrus.Logger, timeout time.Duration) *VerifyRPCsJob {
	return &VerifyRPCsJob{
		config:   cfg,
		verifier: verifier,
		logger:   logger,
		timeout:  timeout,
	}
}

func (j *VerifyRPCsJob) SetAlerter(alerter Alerter) {
	j.alerter = alerter
}

// Run fails when an endpoint answers with a chain id other than the one its
// descriptor declares. Unreachable endpoints are only logged.
func (j *VerifyRPCsJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	chains := j.config.Chains()
	j.logger.Infof("Verifying RPC endpoints of %d chains...", len(chains))

	results := j.verifier.CheckAll(ctx, chains)

	var (
		mismatched []string
		alerts     []notifications.ChainAlert
	)
	for _, c := range chains {
		statuses := results[c.ID]
		healthy := verify.Healthy(statuses)

		fields := logrus.Fields{
			"chain":     c.Name,
			"chain_id":  c.ID,
			"endpoints": len(statuses),
			"healthy":   healthy,
		}
		if healthy {
			j.logger.WithFields(fields).Info("Chain RPC verified")
		} else {
			j.logger.WithFields(fields).Warn("Chain RPC not verified")
		}

		var chainMismatches []string
		for _, s := range statuses {
			if s.Reachable && !s.Match {
				chainMismatches = append(chainMismatches, fmt.Sprintf("%s reports %d", s.RPC, s.ReportedChainID))
			}
		}
		for _, m := range chainMismatches {
			mismatched = append(mismatched, fmt.Sprintf("%s (%s)", c.Name, m))
		}

		switch {
		case len(chainMismatches) > 0:
			alerts = append(alerts, notifications.ChainAlert{
				ChainName: c.Name,
				ChainID:   c.ID,
				Problem:   notifications.ProblemMismatch,
				Detail:    strings.Join(chainMismatches, "\n"),
			})
		case !healthy:
			alerts = append(alerts, notifications.ChainAlert{
				ChainName: c.Name,
				ChainID:   c.ID,
				Problem:   notifications.ProblemUnreachable,
				Detail:    fmt.Sprintf("none of %d endpoints answered", len(statuses)),
			})
		}
	}

	if j.alerter != nil && len(alerts) > 0 {
		if err := j.alerter.SendVerificationAlert(j.config.AppName(), alerts); err != nil {
			j.logger.Warnf("Failed to send verification alert: %v", err)
		}
	}

	if len(mismatched) > 0 {
		sort.Strings(mismatched)
		return fmt.Errorf("chain id mismatch: %s", strings.Join(mismatched, ", "))
	}
	return nil
}
