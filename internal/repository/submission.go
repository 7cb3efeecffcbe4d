// internal/repository/submission.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/slug"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// DefaultSlugAttempts bounds how often Create re-resolves a slug after losing
// a race for it.
const DefaultSlugAttempts = 5

type SubmissionRepositoryIface interface {
	Create(ctx context.Context, sub model.Submission) error
	Update(ctx context.Context, sub model.Submission) error
	SlugTaken(ctx context.Context, candidate, excludeID string) (bool, error)
	FindBySlug(ctx context.Context, slug string) (model.Submission, error)
	FindByID(ctx context.Context, kind model.Kind, id uuid.UUID) (model.Submission, error)
	UpdateCRMLinkage(ctx context.Context, kind model.Kind, id uuid.UUID, contactID, locationID string) error
	MarkOTPVerified(ctx context.Context, phone string) (int64, error)
	FindUnmirrored(ctx context.Context, kind model.Kind) ([]model.Submission, error)
	Search(ctx context.Context, filter SubmissionFilter) ([]model.Submission, int64, error)
}

// SubmissionFilter narrows Search. Zero values match everything.
type SubmissionFilter struct {
	Kind     model.Kind
	Subtype  string
	Template model.TemplateStyle
	Query    string
	Offset   int
	Limit    int
}

type SubmissionRepository struct {
	db          *gorm.DB
	basePath    string
	maxAttempts int
}

func NewSubmissionRepository(db *gorm.DB, basePath string) *SubmissionRepository {
	return &SubmissionRepository{db: db, basePath: basePath, maxAttempts: DefaultSlugAttempts}
}

// Create assigns a slug (when the record has none), derives the template URLs
// and inserts the record. The slug is claimed in slug_reservations within the
// same transaction; losing that claim to a concurrent insert re-resolves
// against the committed state.
func (r *SubmissionRepository) Create(ctx context.Context, sub model.Submission) error {
	base := sub.Base()
	assign := base.Slug == ""

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if assign {
				resolved, err := slug.Resolve(ctx, slugChecker(tx), sub.SlugRequest())
				if err != nil {
					return fmt.Errorf("resolving slug: %w", err)
				}
				base.Slug = resolved
			}
			base.ApplyTemplateURLs(r.basePath)

			if base.ID == uuid.Nil {
				base.ID = uuid.New()
			}

			reservation := &model.SlugReservation{Slug: base.Slug, Kind: sub.Kind(), SubmissionID: base.ID}
			if err := tx.Create(reservation).Error; err != nil {
				return fmt.Errorf("reserving slug: %w", err)
			}

			if err := tx.Create(sub).Error; err != nil {
				return fmt.Errorf("creating %s submission: %w", sub.Kind(), err)
			}
			return nil
		})
		if err == nil {
			return nil
		}

		if assign {
			base.Slug = ""
		}

		if !isUniqueViolation(err) {
			return fmt.Errorf("transaction failed: %w", err)
		}
		if !assign {
			return fmt.Errorf("%w: %q is already in use", domain.ErrSlugConflict, base.Slug)
		}

		lastErr = err
		slog.WarnContext(ctx, "slug claimed concurrently, resolving again",
			"kind", sub.Kind(),
			"attempt", attempt,
			"error", err,
		)
	}

	return fmt.Errorf("%w after %d attempts: %v", domain.ErrSlugConflict, r.maxAttempts, lastErr)
}

// Update saves every column except the identity, slug and derived URLs.
func (r *SubmissionRepository) Update(ctx context.Context, sub model.Submission) error {
	result := r.db.WithContext(ctx).Model(sub).
		Select("*").
		Omit("id", "slug", "modern_url", "traditional_url", "bold_url", "created_at").
		Updates(sub)
	if result.Error != nil {
		return fmt.Errorf("failed to update submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

// SlugTaken reports whether candidate is used by any record other than excludeID.
func (r *SubmissionRepository) SlugTaken(ctx context.Context, candidate, excludeID string) (bool, error) {
	return slugTaken(ctx, r.db, candidate, excludeID)
}

// FindBySlug looks in campaigns first, then organizations.
func (r *SubmissionRepository) FindBySlug(ctx context.Context, slug string) (model.Submission, error) {
	var campaign model.CampaignSubmission
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&campaign).Error
	if err == nil {
		return &campaign, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}

	var org model.OrganizationSubmission
	err = r.db.WithContext(ctx).Where("slug = ?", slug).First(&org).Error
	if err == nil {
		return &org, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSubmissionNotFound
	}
	return nil, fmt.Errorf("failed to find organization: %w", err)
}

func (r *SubmissionRepository) FindByID(ctx context.Context, kind model.Kind, id uuid.UUID) (model.Submission, error) {
	sub, err := newSubmission(kind)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).First(sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return sub, nil
}

// UpdateCRMLinkage stores the external contact and location ids. Empty values
// are stored as NULL.
func (r *SubmissionRepository) UpdateCRMLinkage(ctx context.Context, kind model.Kind, id uuid.UUID, contactID, locationID string) error {
	sub, err := newSubmission(kind)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(sub).Where("id = ?", id).Updates(map[string]any{
		"crm_contact_id":  nullable(contactID),
		"crm_location_id": nullable(locationID),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update crm linkage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

// MarkOTPVerified flags every record registered with phone as verified.
func (r *SubmissionRepository) MarkOTPVerified(ctx context.Context, phone string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.CampaignSubmission{}, &model.OrganizationSubmission{}} {
			result := tx.Model(m).Where("phone = ?", phone).Update("otp_verified", true)
			if result.Error != nil {
				return result.Error
			}
			total += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to mark otp verified: %w", err)
	}
	return total, nil
}

// FindUnmirrored returns records of kind that have no CRM contact yet, oldest first.
func (r *SubmissionRepository) FindUnmirrored(ctx context.Context, kind model.Kind) ([]model.Submission, error) {
	q := r.db.WithContext(ctx).Where("crm_contact_id IS NULL OR crm_contact_id = ''").Order("created_at ASC")

	switch kind {
	case model.KindCampaign:
		var rows []*model.CampaignSubmission
		if err := q.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to find unmirrored campaigns: %w", err)
		}
		return campaignsToSubmissions(rows), nil
	case model.KindOrganization:
		var rows []*model.OrganizationSubmission
		if err := q.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to find unmirrored organizations: %w", err)
		}
		return organizationsToSubmissions(rows), nil
	}
	return nil, domain.ErrInvalidSubmission
}

// Search returns matching records of both kinds, newest first, with the total
// number of matches before paging.
func (r *SubmissionRepository) Search(ctx context.Context, filter SubmissionFilter) ([]model.Submission, int64, error) {
	var (
		results []model.Submission
		total   int64
	)

	if filter.Kind == "" || filter.Kind == model.KindCampaign {
		var rows []*model.CampaignSubmission
		q := r.searchScope(ctx, filter, "campaign_subtype")
		if err := q.Find(&rows).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to search campaigns: %w", err)
		}
		results = append(results, campaignsToSubmissions(rows)...)
	}

	if filter.Kind == "" || filter.Kind == model.KindOrganization {
		var rows []*model.OrganizationSubmission
		q := r.searchScope(ctx, filter, "organization_subtype", "organization_name")
		if err := q.Find(&rows).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to search organizations: %w", err)
		}
		results = append(results, organizationsToSubmissions(rows)...)
	}

	sortNewestFirst(results)
	total = int64(len(results))

	return paginate(results, filter.Offset, filter.Limit), total, nil
}

// searchScope applies the filter to one table. extraText names additional
// columns matched by the free text query.
func (r *SubmissionRepository) searchScope(ctx context.Context, filter SubmissionFilter, subtypeColumn string, extraText ...string) *gorm.DB {
	q := r.db.WithContext(ctx)
	if filter.Subtype != "" {
		q = q.Where(subtypeColumn+" = ?", filter.Subtype)
	}
	if filter.Template != "" {
		q = q.Where("template_style = ?", filter.Template)
	}
	if filter.Query != "" {
		p := likePattern(filter.Query)
		group := r.db.Where("LOWER(first_name) LIKE ?", p).
			Or("LOWER(last_name) LIKE ?", p).
			Or("LOWER(email) LIKE ?", p).
			Or("slug LIKE ?", p)
		for _, col := range extraText {
			group = group.Or("LOWER("+col+") LIKE ?", p)
		}
		q = q.Where(group)
	}
	return q
}

// slugChecker answers slug.Checker against both submission tables and the
// reservations using db, which may be a transaction.
func slugChecker(db *gorm.DB) slug.CheckerFunc {
	return func(ctx context.Context, candidate, excludeID string) (bool, error) {
		return slugTaken(ctx, db, candidate, excludeID)
	}
}

func slugTaken(ctx context.Context, db *gorm.DB, candidate, excludeID string) (bool, error) {
	for _, m := range []any{&model.CampaignSubmission{}, &model.OrganizationSubmission{}} {
		q := db.WithContext(ctx).Model(m).Where("slug = ?", candidate)
		if excludeID != "" {
			q = q.Where("id <> ?", excludeID)
		}

		var count int64
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}

	var reserved int64
	q := db.WithContext(ctx).Model(&model.SlugReservation{}).Where("slug = ?", candidate)
	if excludeID != "" {
		q = q.Where("submission_id <> ?", excludeID)
	}
	if err := q.Count(&reserved).Error; err != nil {
		return false, err
	}
	return reserved > 0, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func newSubmission(kind model.Kind) (model.Submission, error) {
	switch kind {
	case model.KindCampaign:
		return &model.CampaignSubmission{}, nil
	case model.KindOrganization:
		return &model.OrganizationSubmission{}, nil
	}
	return nil, domain.ErrInvalidSubmission
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

func campaignsToSubmissions(rows []*model.CampaignSubmission) []model.Submission {
	subs := make([]model.Submission, len(rows))
	for i, row := range rows {
		subs[i] = row
	}
	return subs
}

func organizationsToSubmissions(rows []*model.OrganizationSubmission) []model.Submission {
	subs := make([]model.Submission, len(rows))
	for i, row := range rows {
		subs[i] = row
	}
	return subs
}

func sortNewestFirst(subs []model.Submission) {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].Base().CreatedAt.After(subs[j].Base().CreatedAt)
	})
}

func paginate(subs []model.Submission, offset, limit int) []model.Submission {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(subs) {
		return []model.Submission{}
	}
	subs = subs[offset:]
	if limit > 0 && limit < len(subs) {
		subs = subs[:limit]
	}
	return subs
}
