package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/voxlink-ai/voxlink/internal/api/middleware"
	"github.com/voxlink-ai/voxlink/internal/domain"
	"github.com/voxlink-ai/voxlink/internal/service"
)

type SyncHandler struct {
	svc     *service.SyncService
	status  *service.StatusService
	gateway domain.GatewayFactory
}

func NewSyncHandler(svc *service.SyncService, status *service.StatusService, gateway domain.GatewayFactory) *SyncHandler {
	return &SyncHandler{svc: svc, status: status, gateway: gateway}
}

type importRequest struct {
	RemoteID string `json:"remote_id"`
}

func (h *SyncHandler) Import(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RemoteID == "" {
		writeError(w, http.StatusBadRequest, "remote_id is required")
		return
	}

	gw := h.gateway.ForTenant(tenant.RemoteAPIKey)
	agent, err := h.svc.ImportRemote(r.Context(), gw, tenant.ID, req.RemoteID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRemoteAgentNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrRemoteIDConflict):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadGateway, "failed to import agent: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, agent)
}

func (h *SyncHandler) SyncAll(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	gw := h.gateway.ForTenant(tenant.RemoteAPIKey)
	report, err := h.svc.SyncAll(r.Context(), gw, tenant.ID)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to sync account: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	gw := h.gateway.ForTenant(tenant.RemoteAPIKey)
	status, err := h.status.ComputeSyncStatus(r.Context(), gw, tenant.ID)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to compute sync status: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, status)
}
