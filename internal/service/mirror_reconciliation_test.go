package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dangerclosesec/onboarding/internal/mocks"
	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMirrorReconciler_ReconcileAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSubmissionRepositoryIface(ctrl)
	syncer := mocks.NewMockSyncer(ctrl)

	first := storedCampaign("first")
	second := storedCampaign("second")
	org := &model.OrganizationSubmission{SubmissionBase: model.SubmissionBase{Slug: "org"}}

	repo.EXPECT().FindUnmirrored(gomock.Any(), model.KindCampaign).Return([]model.Submission{first, second}, nil)
	repo.EXPECT().FindUnmirrored(gomock.Any(), model.KindOrganization).Return([]model.Submission{org}, nil)
	syncer.EXPECT().Sync(gomock.Any(), first).Return(&service.SyncReport{ContactID: "c1"}, nil)
	syncer.EXPECT().Sync(gomock.Any(), second).Return(&service.SyncReport{}, errors.New("crm down"))
	syncer.EXPECT().Sync(gomock.Any(), org).Return(&service.SyncReport{ContactID: "c2"}, nil)

	r := service.NewMirrorReconciler(repo, syncer, time.Hour, discardLogger())
	r.SetBatchSize(1)

	res, err := r.ReconcileAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, service.ReconcileResult{Checked: 3, Synced: 2, Failed: 1}, res)
}

func TestMirrorReconciler_DryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSubmissionRepositoryIface(ctrl)
	syncer := mocks.NewMockSyncer(ctrl)

	repo.EXPECT().FindUnmirrored(gomock.Any(), model.KindCampaign).Return([]model.Submission{storedCampaign("a")}, nil)

	r := service.NewMirrorReconciler(repo, syncer, 0, discardLogger())
	r.SetDryRun(true)

	res, err := r.ReconcileKind(context.Background(), model.KindCampaign)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Checked)
	assert.Zero(t, res.Synced)
}

func TestMirrorReconciler_LookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSubmissionRepositoryIface(ctrl)

	repo.EXPECT().FindUnmirrored(gomock.Any(), model.KindCampaign).Return(nil, errors.New("db gone"))

	r := service.NewMirrorReconciler(repo, mocks.NewMockSyncer(ctrl), 0, discardLogger())
	_, err := r.ReconcileAll(context.Background())
	assert.ErrorContains(t, err, "db gone")
}

func TestMirrorReconciler_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSubmissionRepositoryIface(ctrl)
	repo.EXPECT().FindUnmirrored(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	r := service.NewMirrorReconciler(repo, mocks.NewMockSyncer(ctrl), 10*time.Millisecond, discardLogger())
	r.Start()
	time.Sleep(30 * time.Millisecond)
	r.Stop()
}
