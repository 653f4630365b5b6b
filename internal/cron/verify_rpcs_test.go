package cron

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/0xPuncker/polkacommerce-wallet/internal/notifications"
	"github.com/0xPuncker/polkacommerce-wallet/internal/verify"
	"github.com/0xPuncker/polkacommerce-wallet/internal/wallet"
	"github.com/0xPuncker/polkacommerce-wallet/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainIDServer(t *testing.T, chainIDHex string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":"%s"}`, req.ID, chainIDHex)
	}))
	t.Cleanup(server.Close)
	return server
}

func walletConfig(t *testing.T, id uint64, rpc string) *wallet.Config {
	t.Helper()
	cfg, err := wallet.GetDefaultConfig(wallet.Params{
		AppName:   "Polkacommerce",
		ProjectID: "POLKACOMMERCE",
		Chains: []types.Chain{{
			ID:             id,
			Name:           "Moonbase Alpha",
			NativeCurrency: types.NativeCurrency{Name: "Develop", Symbol: "DEV", Decimals: 18},
			RPCURLs: map[string]types.RPCEndpoints{
				types.DefaultEnvironment: {HTTP: []string{rpc}},
			},
		}},
		SSR: true,
	})
	require.NoError(t, err)
	return cfg
}

type recordingAlerter struct {
	appName string
	alerts  []notifications.ChainAlert
}

func (r *recordingAlerter) SendVerificationAlert(appName string, alerts []notifications.ChainAlert) error {
	r.appName = appName
	r.alerts = append(r.alerts, alerts...)
	return nil
}

func TestVerifyRPCsJob(t *testing.T) {
	tests := []struct {
		name          string
		reported      string
		expectErr     bool
		expectedAlert string
	}{
		{"matching chain id", "0x507", false, ""},
		{"mismatched chain id", "0x1", true, notifications.ProblemMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := chainIDServer(t, tt.reported)
			logger := quietLogger()
			verifier := verify.New(logger, time.Second, time.Minute)

			alerter := &recordingAlerter{}
			job := NewVerifyRPCsJob(walletConfig(t, 1287, server.URL), verifier, logger, 5*time.Second)
			job.SetAlerter(alerter)
			err := job.Run()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			statuses, found := verifier.Cached(1287)
			require.True(t, found)
			assert.Len(t, statuses, 1)

			if tt.expectedAlert == "" {
				assert.Empty(t, alerter.alerts)
				return
			}
			require.Len(t, alerter.alerts, 1)
			assert.Equal(t, "Polkacommerce", alerter.appName)
			assert.Equal(t, tt.expectedAlert, alerter.alerts[0].Problem)
			assert.Equal(t, uint64(1287), alerter.alerts[0].ChainID)
		})
	}
}

func TestVerifyRPCsJobUnreachable(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()

	logger := quietLogger()
	alerter := &recordingAlerter{}
	job := NewVerifyRPCsJob(walletConfig(t, 1287, url), verify.New(logger, time.Second, time.Minute), logger, 5*time.Second)
	job.SetAlerter(alerter)

	assert.NoError(t, job.Run())
	require.Len(t, alerter.alerts, 1)
	assert.Equal(t, notifications.ProblemUnreachable, alerter.alerts[0].Problem)
}
