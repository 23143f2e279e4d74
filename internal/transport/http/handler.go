package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"quiz-setup-service/internal/app"
	"quiz-setup-service/internal/domain"
	"quiz-setup-service/internal/schedule"
)

// Handler exposes the setup wizard over JSON. Step views are the intended
// consumers: they persist their fragment through the config endpoints, then
// drive navigation through the wizard endpoints. Input validation beyond
// shape belongs to the step views; the endpoints here never gate forward
// movement themselves.
type Handler struct {
	service *app.SetupService
	flow    *app.FlowController
	log     zerolog.Logger
}

func NewHandler(service *app.SetupService, flow *app.FlowController, log zerolog.Logger) *Handler {
	return &Handler{service: service, flow: flow, log: log}
}

// Register mounts all routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/templates", h.listTemplates)
	mux.HandleFunc("POST /api/templates/apply", h.applyTemplate)
	mux.HandleFunc("GET /api/config", h.getConfig)
	mux.HandleFunc("PATCH /api/config", h.patchConfig)
	mux.HandleFunc("POST /api/config/reset", h.resetConfig)
	mux.HandleFunc("POST /api/config/purge", h.purgeConfig)
	mux.HandleFunc("PUT /api/rounds/{number}", h.updateRound)
	mux.HandleFunc("GET /api/estimate", h.estimate)
	mux.HandleFunc("POST /api/wizard/next", h.wizardNext)
	mux.HandleFunc("POST /api/wizard/back", h.wizardBack)
	mux.HandleFunc("POST /api/wizard/reset", h.wizardReset)
}

type stepResponse struct {
	Step      domain.WizardStep `json:"step"`
	Completed bool              `json:"completed,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.ListTemplates(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, templates)
}

func (h *Handler) applyTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID string `json:"templateId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TemplateID == "" {
		h.writeErrorMsg(w, http.StatusBadRequest, "templateId required")
		return
	}
	cfg, err := h.service.ApplyTemplate(r.Context(), req.TemplateID)
	if err == domain.ErrTemplateNotFound {
		h.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Store().GetConfig())
}

func (h *Handler) patchConfig(w http.ResponseWriter, r *http.Request) {
	var patch domain.ConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeErrorMsg(w, http.StatusBadRequest, "invalid config patch")
		return
	}
	cfg := h.service.Store().UpdateConfig(r.Context(), patch)
	h.writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) resetConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KeepSessionIDs bool `json:"keepSessionIds"`
	}
	// Body optional; an empty body means a full reset.
	_ = json.NewDecoder(r.Body).Decode(&req)
	h.service.Store().ResetConfig(r.Context(), req.KeepSessionIDs)
	h.writeJSON(w, http.StatusOK, stepResponse{Step: domain.StepSetup})
}

func (h *Handler) purgeConfig(w http.ResponseWriter, r *http.Request) {
	h.service.Store().Purge(r.Context())
	h.writeJSON(w, http.StatusOK, stepResponse{Step: domain.StepSetup})
}

func (h *Handler) updateRound(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil || number < 1 {
		h.writeErrorMsg(w, http.StatusBadRequest, "invalid round number")
		return
	}
	var edit app.RoundEdit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		h.writeErrorMsg(w, http.StatusBadRequest, "invalid round edit")
		return
	}
	cfg, err := h.service.UpdateRound(r.Context(), number, edit)
	if err == domain.ErrRoundNotFound {
		h.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) estimate(w http.ResponseWriter, r *http.Request) {
	strategy, err := schedule.ParseBreakStrategy(r.URL.Query().Get("strategy"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	est, err := h.service.Estimate(r.Context(), strategy)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, est)
}

func (h *Handler) wizardNext(w http.ResponseWriter, r *http.Request) {
	step, completed := h.flow.GoNext(r.Context())
	h.writeJSON(w, http.StatusOK, stepResponse{Step: step, Completed: completed})
}

func (h *Handler) wizardBack(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, stepResponse{Step: h.flow.GoBack(r.Context())})
}

func (h *Handler) wizardReset(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, stepResponse{Step: h.flow.ResetToFirst(r.Context())})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn().Err(err).Msg("response encode failed")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}
