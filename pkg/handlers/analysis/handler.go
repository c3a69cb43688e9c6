package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/de-tools/text-atlas/pkg/adapters"
	"github.com/de-tools/text-atlas/pkg/models/api"
	"github.com/de-tools/text-atlas/pkg/services/analysis"
	"github.com/de-tools/text-atlas/pkg/services/source"
	"github.com/de-tools/text-atlas/pkg/store/duckdb/reports"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
	maxBatchSources     = 100
	maxBodyBytes        = 10 << 20 // 10 MiB
	defaultDocumentName = "request"
)

type Handler struct {
	svc analysis.Service
}

func NewHandler(svc analysis.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.AnalyzeTextRequest
	if !decodeBody(w, r, &req, "invalid request body: expected {\"name\": string, \"text\": string}") {
		return
	}
	if req.Name == "" {
		req.Name = defaultDocumentName
	}

	report, err := h.svc.AnalyzeText(ctx, req.Name, req.Text)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("name", req.Name).Msg("failed to analyze text")
		http.Error(w, "failed to analyze text", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, adapters.MapDomainReportToAPIReport(*report))
}

func (h *Handler) AnalyzeSource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	const invalidSourceBody = "invalid request body: expected {\"uri\": string}"

	var req api.AnalyzeSourceRequest
	if !decodeBody(w, r, &req, invalidSourceBody) {
		return
	}
	if req.URI == "" {
		http.Error(w, invalidSourceBody, http.StatusBadRequest)
		return
	}

	report, err := h.svc.Analyze(ctx, req.URI)
	if errors.Is(err, source.ErrInputUnavailable) {
		logger.Warn().Err(err).Str("uri", req.URI).Msg("input unavailable")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("uri", req.URI).Msg("failed to analyze source")
		http.Error(w, "failed to analyze source", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, adapters.MapDomainReportToAPIReport(*report))
}

func (h *Handler) AnalyzeSources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	const invalidBatchBody = "invalid request body: expected {\"uris\": [string]} with 1 to 100 entries"

	var req api.AnalyzeSourcesRequest
	if !decodeBody(w, r, &req, invalidBatchBody) {
		return
	}
	if len(req.URIs) == 0 || len(req.URIs) > maxBatchSources || slices.Contains(req.URIs, "") {
		http.Error(w, invalidBatchBody, http.StatusBadRequest)
		return
	}

	results, err := h.svc.AnalyzeAll(ctx, req.URIs)
	if errors.Is(err, source.ErrInputUnavailable) {
		logger.Warn().Err(err).Int("sources", len(req.URIs)).Msg("input unavailable")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error().Err(err).Int("sources", len(req.URIs)).Msg("failed to analyze sources")
		http.Error(w, "failed to analyze sources", http.StatusInternalServerError)
		return
	}

	response := make([]api.Report, 0, len(results))
	for _, report := range results {
		response = append(response, adapters.MapDomainReportToAPIReport(report))
	}
	writeJSON(w, r, response)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			http.Error(w, "invalid 'limit'. Expected an integer between 1 and 500", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.svc.History(ctx, limit)
	if errors.Is(err, analysis.ErrHistoryDisabled) {
		http.Error(w, err.Error(), http.StatusNotImplemented)
		return
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list reports")
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, adapters.MapDomainRecordsToAPIRecords(records))
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	record, err := h.svc.Report(ctx, id)
	switch {
	case errors.Is(err, reports.ErrNotFound):
		http.Error(w, "report not found", http.StatusNotFound)
		return
	case errors.Is(err, analysis.ErrHistoryDisabled):
		http.Error(w, err.Error(), http.StatusNotImplemented)
		return
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Str("id", id).Msg("failed to get report")
		http.Error(w, "failed to get report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, adapters.MapDomainRecordToAPIRecord(*record))
}

// decodeBody reads a JSON body of at most maxBodyBytes into v and writes the
// error response itself when it cannot.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}, invalidMsg string) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, fmt.Sprintf("request body too large: limit is %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
		return false
	}
	http.Error(w, invalidMsg, http.StatusBadRequest)
	return false
}

func writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
