package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Afox1/cngcare/internal/cngcare/core/model"
	"github.com/Afox1/cngcare/internal/cngcare/core/service"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// Handler serves the form page and the JSON API.
type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register adds every route to r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/", h.FormPage).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/maintenance", h.CheckSessionMaintenance).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/risk", h.AssessSessionRisk).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/report", h.GenerateReport).Methods(http.MethodPost)
	api.HandleFunc("/maintenance:evaluate", h.EvaluateMaintenance).Methods(http.MethodPost)
	api.HandleFunc("/risk:assess", h.AssessRisk).Methods(http.MethodPost)
	api.HandleFunc("/vehicles/{vehicle}/reports", h.ListReports).Methods(http.MethodGet)
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.CreateSession(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, sessionCreatedResponse{ID: snap.ID})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (h *Handler) CheckSessionMaintenance(w http.ResponseWriter, r *http.Request) {
	var req MaintenanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	check, err := h.svc.CheckSessionMaintenance(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, check)
}

func (h *Handler) AssessSessionRisk(w http.ResponseWriter, r *http.Request) {
	var req RiskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	check, err := h.svc.AssessSessionRisk(r.Context(), mux.Vars(r)["id"], req.toAnswers())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, check)
}

// GenerateReport answers with JSON by default, or with the PDF itself when
// called with ?format=pdf. Side effect outcomes of a raw PDF response are
// reported in X-Cngcare-* headers.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.GenerateReport(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "pdf" {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Report.Filename))
		w.Header().Set("X-Cngcare-Log", effectHeader(&out.Log))
		if out.Archive != nil {
			w.Header().Set("X-Cngcare-Archive", effectHeader(out.Archive))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out.Report.Content)
		return
	}

	respondJSON(w, http.StatusOK, newReportResponse(out))
}

func (h *Handler) EvaluateMaintenance(w http.ResponseWriter, r *http.Request) {
	var req MaintenanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	check, err := h.svc.CheckMaintenance(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, check)
}

func (h *Handler) AssessRisk(w http.ResponseWriter, r *http.Request) {
	var req RiskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	check, err := h.svc.AssessRisk(r.Context(), req.toAnswers())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, check)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondStructuredError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, "limit must be a non-negative integer", nil)
			return
		}
		limit = n
	}

	vehicle := mux.Vars(r)["vehicle"]
	records, err := h.svc.ListReports(r.Context(), vehicle, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []model.ReportRecord{}
	}
	respondJSON(w, http.StatusOK, reportListResponse{Vehicle: vehicle, Reports: records})
}

// decodeJSON reads a single JSON object into v. It writes the error
// response itself and reports whether the caller should continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		msg := "invalid JSON body: " + err.Error()
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		respondStructuredError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, msg, nil)
		return false
	}
	return true
}

func effectHeader(e *model.SideEffect) string {
	if e.OK {
		return "ok"
	}
	return "failed: " + e.Error
}
