// internal/service/mirror.go
package service

import (
	"context"
	"strings"

	"github.com/dangerclosesec/onboarding/internal/auth"
	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/repository"
)

// MirrorInput identifies the site to render and carries the visitor's
// password when one was supplied.
type MirrorInput struct {
	Slug     string
	Template string
	Password string
}

// MirrorService serves stored submissions to the public site renderer.
type MirrorService struct {
	repo repository.SubmissionRepositoryIface
}

func NewMirrorService(repo repository.SubmissionRepositoryIface) *MirrorService {
	return &MirrorService{repo: repo}
}

// Get looks the slug up (campaigns first), enforces the password gate and
// applies the template override. The override changes only the returned
// value, never the stored record. Unknown template names are ignored.
func (s *MirrorService) Get(ctx context.Context, in MirrorInput) (model.Submission, error) {
	override := model.TemplateStyle(strings.ToLower(strings.TrimSpace(in.Template)))

	sub, err := s.repo.FindBySlug(ctx, strings.TrimSpace(in.Slug))
	if err != nil {
		return nil, err
	}

	b := sub.Base()
	if b.IsPasswordProtected {
		if in.Password == "" {
			return nil, domain.ErrPasswordRequired
		}
		if !auth.SecretsEqual(in.Password, b.PasswordValue()) {
			return nil, domain.ErrIncorrectPassword
		}
	}

	if override.Valid() {
		b.TemplateStyle = override
	}
	return sub, nil
}
