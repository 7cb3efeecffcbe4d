// internal/handler/admin.go
package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dangerclosesec/onboarding/internal/audit"
	"github.com/dangerclosesec/onboarding/internal/middleware"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/serializer"
	"github.com/dangerclosesec/onboarding/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves the operator API. Every route sits behind the admin
// bearer token middleware.
type AdminHandler struct {
	adminService  *service.AdminService
	pillarService *service.PillarService
	auditLogger   audit.Logger
}

func NewAdminHandler(adminService *service.AdminService, pillarService *service.PillarService, auditLogger audit.Logger) *AdminHandler {
	if auditLogger == nil {
		auditLogger = &audit.NoOpLogger{}
	}
	return &AdminHandler{
		adminService:  adminService,
		pillarService: pillarService,
		auditLogger:   auditLogger,
	}
}

type SearchResponse struct {
	BaseResponse
	Items  []map[string]any `json:"items"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type ResyncResponse struct {
	BaseResponse
	CRM CRMSummary `json:"crm"`
}

type PillarUpsertRequest struct {
	Description string `json:"default_description"`
}

func searchInput(r *http.Request) service.SearchInput {
	q := r.URL.Query()
	return service.SearchInput{
		Type:     q.Get("type"),
		Subtype:  q.Get("subtype"),
		Template: q.Get("template"),
		Query:    q.Get("q"),
		Limit:    queryInt(r, "limit", 0),
		Offset:   queryInt(r, "offset", 0),
	}
}

// Search handles GET /api/admin/submissions.
func (h *AdminHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := serializer.WithScope(r.Context(), serializer.ScopeAdmin)

	output, err := h.adminService.Search(ctx, searchInput(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	items := make([]map[string]any, 0, len(output.Items))
	for _, sub := range output.Items {
		view, err := serializer.View(ctx, sub)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		view["type"] = sub.Kind()
		items = append(items, view)
	}

	respondWithJSON(w, http.StatusOK, SearchResponse{
		BaseResponse: BaseResponse{Ok: true},
		Items:        items,
		Total:        output.Total,
		Limit:        output.Limit,
		Offset:       output.Offset,
	})
}

// Get handles GET /api/admin/submissions/{type}/{id}.
func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := submissionRef(w, r)
	if !ok {
		return
	}

	sub, err := h.adminService.Get(r.Context(), kind, id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	view, err := serializer.View(serializer.WithScope(r.Context(), serializer.ScopeAdmin), sub)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithData(w, http.StatusOK, string(kind), view)
}

// Resync handles POST /api/admin/submissions/{type}/{id}/resync.
func (h *AdminHandler) Resync(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := submissionRef(w, r)
	if !ok {
		return
	}

	report, err := h.adminService.Resync(r.Context(), kind, id)
	if report == nil && err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	h.record(r, audit.Entry{
		Action:     model.ActionResync,
		EntityType: string(kind),
		EntityID:   id.String(),
		Context:    map[string]any{"status": report.Status()},
	})
	code := http.StatusOK
	if err != nil {
		slog.WarnContext(r.Context(), "resync failed", "submission_id", id.String(), "error", err)
		code = http.StatusBadGateway
	}
	respondWithJSON(w, code, ResyncResponse{
		BaseResponse: BaseResponse{Ok: err == nil},
		CRM:          CRMSummary{Status: report.Status(), SyncReport: report},
	})
}

// Export handles GET /api/admin/export and streams an XLSX workbook.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	in := searchInput(r)

	var buf bytes.Buffer
	if err := h.adminService.Export(r.Context(), in, &buf); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	h.record(r, audit.Entry{
		Action:  model.ActionExport,
		Context: map[string]any{"type": in.Type, "subtype": in.Subtype, "template": in.Template, "q": in.Query},
	})

	filename := fmt.Sprintf("submissions-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "writing export", "error", err)
	}
}

// UpsertPillar handles PUT /api/admin/pillars/{name}.
func (h *AdminHandler) UpsertPillar(w http.ResponseWriter, r *http.Request) {
	var body PillarUpsertRequest
	if err := decodeJSON(r, &body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	pillar, err := h.pillarService.Upsert(r.Context(), chi.URLParam(r, "name"), body.Description)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	h.record(r, audit.Entry{Action: model.ActionPillarUpsert, EntityType: "pillar", EntityID: pillar.PillarName})
	respondWithData(w, http.StatusOK, "", pillar)
}

// record writes an audit entry for the calling admin. Audit failures are
// logged and never fail the request.
func (h *AdminHandler) record(r *http.Request, entry audit.Entry) {
	entry.Subject, _ = middleware.SubjectFromContext(r.Context())
	if err := h.auditLogger.LogAdminAction(r.Context(), entry, r); err != nil {
		slog.WarnContext(r.Context(), "audit log write failed", "action", entry.Action, "error", err)
	}
}

func submissionRef(w http.ResponseWriter, r *http.Request) (model.Kind, uuid.UUID, bool) {
	kind, ok := model.ParseKind(chi.URLParam(r, "type"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, "type must be campaign or organization")
		return "", uuid.Nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid submission ID format")
		return "", uuid.Nil, false
	}
	return kind, id, true
}
