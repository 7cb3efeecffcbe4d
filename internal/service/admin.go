// internal/service/admin.go
package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/export"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/repository"
	"github.com/google/uuid"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

type SearchInput struct {
	Type     string
	Subtype  string
	Template string
	Query    string
	Limit    int
	Offset   int
}

type SearchOutput struct {
	Items  []model.Submission `json:"items"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

// AdminService backs the operator surface: listing, re-mirroring and export.
type AdminService struct {
	repo repository.SubmissionRepositoryIface
	sync Syncer
}

// NewAdminService creates the service. sync may be nil when the CRM is disabled.
func NewAdminService(repo repository.SubmissionRepositoryIface, sync Syncer) *AdminService {
	return &AdminService{repo: repo, sync: sync}
}

// Search lists submissions of both kinds, newest first.
func (s *AdminService) Search(ctx context.Context, in SearchInput) (*SearchOutput, error) {
	filter, err := toFilter(in)
	if err != nil {
		return nil, err
	}

	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	items, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("searching submissions: %w", err)
	}
	return &SearchOutput{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func toFilter(in SearchInput) (repository.SubmissionFilter, error) {
	verr := domain.NewValidationError()
	filter := repository.SubmissionFilter{
		Subtype: strings.TrimSpace(in.Subtype),
		Query:   strings.TrimSpace(in.Query),
		Limit:   in.Limit,
		Offset:  in.Offset,
	}

	if t := strings.TrimSpace(in.Type); t != "" {
		kind, ok := model.ParseKind(t)
		if !ok {
			verr.Add("type", "must be campaign or organization")
		}
		filter.Kind = kind
	}
	if t := strings.TrimSpace(in.Template); t != "" {
		style := model.TemplateStyle(strings.ToLower(t))
		if !style.Valid() {
			verr.Add("template", "must be one of: modern, traditional, bold")
		}
		filter.Template = style
	}

	return filter, verr.OrNil()
}

// Get returns one submission by kind and id.
func (s *AdminService) Get(ctx context.Context, kind model.Kind, id uuid.UUID) (model.Submission, error) {
	return s.repo.FindByID(ctx, kind, id)
}

// Resync mirrors one submission to the CRM again.
func (s *AdminService) Resync(ctx context.Context, kind model.Kind, id uuid.UUID) (*SyncReport, error) {
	if s.sync == nil {
		return nil, domain.ErrCRMDisabled
	}

	sub, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return s.sync.Sync(ctx, sub)
}

// Export writes every submission matching in as an XLSX workbook.
func (s *AdminService) Export(ctx context.Context, in SearchInput, w io.Writer) error {
	filter, err := toFilter(in)
	if err != nil {
		return err
	}
	filter.Limit, filter.Offset = 0, 0

	items, _, err := s.repo.Search(ctx, filter)
	if err != nil {
		return fmt.Errorf("loading submissions for export: %w", err)
	}
	return export.WriteSubmissions(w, items)
}
