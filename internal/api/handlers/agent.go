package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/voxlink-ai/voxlink/internal/api/middleware"
	"github.com/voxlink-ai/voxlink/internal/domain"
	"github.com/voxlink-ai/voxlink/internal/service"
	"github.com/voxlink-ai/voxlink/internal/translate"
)

type AgentHandler struct {
	svc     *service.SyncService
	gateway domain.GatewayFactory
}

func NewAgentHandler(svc *service.SyncService, gateway domain.GatewayFactory) *AgentHandler {
	return &AgentHandler{svc: svc, gateway: gateway}
}

func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var draft domain.AgentDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if draft.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "display_name is required")
		return
	}
	if draft.Status != "" && !domain.ValidAgentStatus(string(draft.Status)) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	gw := h.gateway.ForTenant(tenant.RemoteAPIKey)
	agent, err := h.svc.CreateLinked(r.Context(), gw, tenant.ID, draft)
	if err != nil {
		var vErr *translate.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeError(w, http.StatusBadRequest, vErr.Error())
		case errors.Is(err, service.ErrRemoteIDConflict):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadGateway, "failed to create agent: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, agent)
}

func (h *AgentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent id")
		return
	}

	agent, err := h.svc.GetByID(r.Context(), id, tenant.ID)
	if err != nil {
		if errors.Is(err, service.ErrAgentNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get agent")
		return
	}

	writeJSON(w, http.StatusOK, agent)
}

func (h *AgentHandler) GetByRemoteID(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	remoteID := chi.URLParam(r, "remoteId")
	if remoteID == "" {
		writeError(w, http.StatusBadRequest, "remote id is required")
		return
	}

	agent, err := h.svc.GetByRemoteID(r.Context(), remoteID, tenant.ID)
	if err != nil {
		if errors.Is(err, service.ErrAgentNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get agent")
		return
	}

	writeJSON(w, http.StatusOK, agent)
}

func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var opts domain.ListOpts
	if status := r.URL.Query().Get("status"); status != "" {
		if !domain.ValidAgentStatus(status) {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		s := domain.AgentStatus(status)
		opts.Status = &s
	}

	agents, err := h.svc.List(r.Context(), tenant.ID, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list agents")
		return
	}
	if agents == nil {
		agents = []domain.Agent{}
	}

	writeJSON(w, http.StatusOK, agents)
}

func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent id")
		return
	}

	var patch domain.AgentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.Status != nil && !domain.ValidAgentStatus(string(*patch.Status)) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	gw := h.gateway.ForTenant(tenant.RemoteAPIKey)
	result, err := h.svc.UpdateLinked(r.Context(), gw, tenant.ID, id, patch)
	if err != nil {
		var vErr *translate.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeError(w, http.StatusBadRequest, vErr.Error())
		case errors.Is(err, service.ErrAgentNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrRemoteIDConflict):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to update agent")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent id")
		return
	}

	gw := h.gateway.ForTenant(tenant.RemoteAPIKey)
	result, err := h.svc.DeleteLinked(r.Context(), gw, tenant.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrAgentNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete agent")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
