package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dangerclosesec/onboarding/internal/domain"
	"github.com/dangerclosesec/onboarding/internal/email"
	"github.com/dangerclosesec/onboarding/internal/mocks"
	"github.com/dangerclosesec/onboarding/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestShareService_Share(t *testing.T) {
	ctx := context.Background()

	t.Run("both channels", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSubmissionRepositoryIface(ctrl)
		texts := mocks.NewMockTextSender(ctrl)
		mailer := mocks.NewMockSender(ctrl)
		stored := storedCampaign("janedoe")

		repo.EXPECT().FindBySlug(gomock.Any(), "janedoe").Return(stored, nil)
		texts.EXPECT().SendText(gomock.Any(), "+15555550111", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, message string) error {
				assert.Contains(t, message, "Hi Sam")
				assert.Contains(t, message, stored.BoldURL)
				return nil
			})
		mailer.EXPECT().SendEmail(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, data email.EmailData) error {
				assert.Equal(t, "sam@example.com", data.To)
				assert.Equal(t, email.TemplateShare, data.TemplateName)
				return nil
			})

		svc := service.NewShareService(repo, texts, mailer, discardLogger())
		out, err := svc.Share(ctx, service.ShareInput{
			Slug:          "janedoe",
			Phone:         "+1 555 555 0111",
			Email:         "sam@example.com",
			RecipientName: "Sam",
			Template:      "bold",
		})
		require.NoError(t, err)
		assert.Equal(t, stored.BoldURL, out.Link)
		assert.True(t, out.Channels[service.ChannelSMS].Sent)
		assert.True(t, out.Channels[service.ChannelEmail].Sent)
	})

	t.Run("one channel failing still succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSubmissionRepositoryIface(ctrl)
		texts := mocks.NewMockTextSender(ctrl)

		repo.EXPECT().FindBySlug(gomock.Any(), "janedoe").Return(storedCampaign("janedoe"), nil)
		texts.EXPECT().SendText(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		svc := service.NewShareService(repo, texts, nil, discardLogger())
		out, err := svc.Share(ctx, service.ShareInput{Slug: "janedoe", Phone: "5555550111", Email: "sam@example.com"})
		require.NoError(t, err)
		assert.True(t, out.Channels[service.ChannelSMS].Sent)
		assert.False(t, out.Channels[service.ChannelEmail].Sent)
		assert.NotEmpty(t, out.Channels[service.ChannelEmail].Error)
	})

	t.Run("every channel failing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSubmissionRepositoryIface(ctrl)
		texts := mocks.NewMockTextSender(ctrl)

		repo.EXPECT().FindBySlug(gomock.Any(), "janedoe").Return(storedCampaign("janedoe"), nil)
		texts.EXPECT().SendText(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("carrier down"))

		svc := service.NewShareService(repo, texts, nil, discardLogger())
		out, err := svc.Share(ctx, service.ShareInput{Slug: "janedoe", Phone: "5555550111"})
		assert.ErrorIs(t, err, domain.ErrShareFailed)
		require.NotNil(t, out)
		assert.Equal(t, "delivery failed", out.Channels[service.ChannelSMS].Error)
	})

	t.Run("rejected before lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSubmissionRepositoryIface(ctrl)
		svc := service.NewShareService(repo, mocks.NewMockTextSender(ctrl), nil, discardLogger())

		_, err := svc.Share(ctx, service.ShareInput{Slug: "janedoe"})
		assert.ErrorIs(t, err, domain.ErrMissingShareChannel)

		_, err = svc.Share(ctx, service.ShareInput{Slug: "janedoe", Email: "nope"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "email")

		_, err = svc.Share(ctx, service.ShareInput{Slug: "janedoe", Phone: "5555550111", Template: "retro"})
		assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
	})

	t.Run("unknown slug", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSubmissionRepositoryIface(ctrl)
		repo.EXPECT().FindBySlug(gomock.Any(), "ghost").Return(nil, domain.ErrSubmissionNotFound)

		svc := service.NewShareService(repo, mocks.NewMockTextSender(ctrl), nil, discardLogger())
		_, err := svc.Share(ctx, service.ShareInput{Slug: "ghost", Phone: "5555550111"})
		assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
	})
}
