package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/0xPuncker/polkacommerce-wallet/internal/cron"
	"github.com/0xPuncker/polkacommerce-wallet/internal/verify"
	"github.com/0xPuncker/polkacommerce-wallet/internal/wallet"
	"github.com/0xPuncker/polkacommerce-wallet/pkg/types"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	config    *wallet.Config
	verifier  *verify.Verifier
	logger    *logrus.Logger
	Scheduler *cron.Scheduler
}

type ChainsResponse struct {
	Chains []types.Chain `json:"chains"`
	Count  int           `json:"count"`
}

type ChainStatusResponse struct {
	ChainID   uint64          `json:"chain_id"`
	Name      string          `json:"name"`
	Healthy   bool            `json:"healthy"`
	Cached    bool            `json:"cached"`
	Endpoints []verify.Status `json:"endpoints"`
}

func NewHandler(cfg *wallet.Config, verifier *verify.Verifier, scheduler *cron.Scheduler, logger *logrus.Logger) *Handler {
	return &Handler{
		config:    cfg,
		verifier:  verifier,
		logger:    logger,
		Scheduler: scheduler,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *Handler) GetWalletConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	h.writeJSON(w, http.StatusOK, h.config)
}

func (h *Handler) ListChains(w http.ResponseWriter, r *http.Request) {
	chains := h.config.Chains()
	h.writeJSON(w, http.StatusOK, ChainsResponse{
		Chains: chains,
		Count:  len(chains),
	})
}

func (h *Handler) GetChain(w http.ResponseWriter, r *http.Request) {
	c, err := h.chainFromRequest(r)
	if err != nil {
		h.handleError(w, err, http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, c)
}

// GetChainStatus serves the cached RPC check for a chain, running a live
// check when nothing is cached yet.
func (h *Handler) GetChainStatus(w http.ResponseWriter, r *http.Request) {
	c, err := h.chainFromRequest(r)
	if err != nil {
		h.handleError(w, err, http.StatusNotFound)
		return
	}

	statuses, cached := h.verifier.Cached(c.ID)
	if !cached {
		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()
		statuses = h.verifier.Check(ctx, c)
	}

	h.writeJSON(w, http.StatusOK, ChainStatusResponse{
		ChainID:   c.ID,
		Name:      c.Name,
		Healthy:   verify.Healthy(statuses),
		Cached:    cached,
		Endpoints: statuses,
	})
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := h.Scheduler.ListJobs()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":        jobs,
		"active_jobs": len(jobs),
		"running":     h.Scheduler.IsRunning(),
	})
}

func (h *Handler) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	jobName := mux.Vars(r)["name"]

	enabled, description, err := h.Scheduler.GetJobStatus(jobName)
	if err != nil {
		h.handleError(w, err, http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":        jobName,
		"enabled":     enabled,
		"description": description,
	})
}

func (h *Handler) StartScheduler(w http.ResponseWriter, r *http.Request) {
	if err := h.Scheduler.Start(); err != nil {
		h.handleError(w, err, http.StatusConflict)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "scheduler started successfully",
	})
}

func (h *Handler) StopScheduler(w http.ResponseWriter, r *http.Request) {
	h.Scheduler.Stop()
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "scheduler stopped successfully",
	})
}

func (h *Handler) chainFromRequest(r *http.Request) (types.Chain, error) {
	raw := mux.Vars(r)["chainID"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return types.Chain{}, fmt.Errorf("invalid chain id %q", raw)
	}

	c, ok := h.config.Chain(id)
	if !ok {
		return types.Chain{}, fmt.Errorf("chain %d is not enabled", id)
	}
	return c, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) handleError(w http.ResponseWriter, err error, code int) {
	h.logger.Debug(err)
	h.writeJSON(w, code, map[string]string{
		"error": err.Error(),
	})
}
