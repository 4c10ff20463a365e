package transcoding

import (
	"context"
	"errors"
	"testing"

	"github.com/gnout1912/VieTube-sub001/internal/config"
	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/runners"
	"github.com/gnout1912/VieTube-sub001/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSourceURL = "https://uploads.example.com/source.mp4?X-Amz-Signature=abc"

func newTestRunnerBuilder(resolver *fakeResolver, store *fakeRunnerStore, sources *fakeSources, notifier *fakeNotifier) *RunnerJobBuilder {
	cfg := config.TranscodingConfig{Backend: config.BackendRunner}
	var n runners.Notifier
	if notifier != nil {
		n = notifier
	}
	return NewRunnerJobBuilder(cfg, resolver, store, sources, n, logger.NewNopLogger())
}

func dependsOnID(c runnerCreate) int64 {
	if c.dependsOn == nil {
		return 0
	}
	return c.dependsOn.ID
}

func TestRunnerJobBuilder_CreateJobs_Scenario(t *testing.T) {
	store := &fakeRunnerStore{}
	sources := &fakeSources{url: testSourceURL}
	notifier := &fakeNotifier{}
	b := newTestRunnerBuilder(&fakeResolver{priority: 10}, store, sources, notifier)

	plan := RenditionPlan{{optimize(1080, true)}, {webVideo(720)}, {webVideo(480)}}
	require.NoError(t, b.CreateJobs(context.Background(), plan, nil))

	require.Len(t, store.created, 3)
	root, p720, p480 := store.created[0], store.created[1], store.created[2]

	assert.Nil(t, root.dependsOn)
	assert.Equal(t, 9, root.opts.Priority)
	assert.Equal(t, models.RunnerJobWebVideoTranscoding, root.opts.Type)
	assert.Equal(t, models.RunnerJobPending, root.job.State)

	assert.Equal(t, root.job.ID, dependsOnID(p720))
	assert.Equal(t, 10, p720.opts.Priority)
	assert.Equal(t, models.RunnerJobWaitingForParentJob, p720.job.State)

	assert.Equal(t, p720.job.ID, dependsOnID(p480))
	assert.Equal(t, 10, p480.opts.Priority)

	for _, c := range store.created {
		assert.Equal(t, testSourceURL, c.opts.Payload.Input.VideoFileURL)
	}
	assert.Equal(t, 480, p480.opts.Payload.Output.Resolution)
	assert.Equal(t, 480, p480.opts.PrivatePayload.Resolution)
	assert.True(t, store.created[0].opts.PrivatePayload.HasChildren)

	assert.Equal(t, 1, sources.calls)
	assert.Equal(t, 1, notifier.calls)
}

func TestRunnerJobBuilder_ChainsSiblings(t *testing.T) {
	store := &fakeRunnerStore{}
	b := newTestRunnerBuilder(&fakeResolver{priority: 50}, store, &fakeSources{url: testSourceURL}, &fakeNotifier{})

	plan := RenditionPlan{{optimize(1080, false)}, {webVideo(720), hls(720)}, {hls(480)}}
	require.NoError(t, b.CreateJobs(context.Background(), plan, nil))

	require.Len(t, store.created, plan.PayloadCount())
	p0, p1, p2, p3 := store.created[0], store.created[1], store.created[2], store.created[3]
	assert.Nil(t, p0.dependsOn)
	assert.Equal(t, p0.job.ID, dependsOnID(p1))
	assert.Equal(t, p1.job.ID, dependsOnID(p2))
	assert.Equal(t, p2.job.ID, dependsOnID(p3))

	assert.Equal(t, models.RunnerJobWebVideoTranscoding, p1.opts.Type)
	assert.Equal(t, models.RunnerJobHLSTranscoding, p2.opts.Type)
	assert.Equal(t, models.RunnerJobHLSTranscoding, p3.opts.Type)
}

func TestRunnerJobBuilder_MergeAudioType(t *testing.T) {
	store := &fakeRunnerStore{}
	b := newTestRunnerBuilder(&fakeResolver{priority: 50}, store, &fakeSources{url: testSourceURL}, nil)

	merge := NewMergeAudioPayload(MergeAudioOptions{VideoID: testVideoID, Resolution: 720, FPS: 30})
	require.NoError(t, b.CreateJobs(context.Background(), RenditionPlan{{merge}}, nil))

	require.Len(t, store.created, 1)
	assert.Equal(t, models.RunnerJobAudioMergeTranscoding, store.created[0].opts.Type)
}

func TestRunnerJobBuilder_ClampsAtZero(t *testing.T) {
	store := &fakeRunnerStore{}
	b := newTestRunnerBuilder(&fakeResolver{priority: 0}, store, &fakeSources{url: testSourceURL}, &fakeNotifier{})

	require.NoError(t, b.CreateJobs(context.Background(), RenditionPlan{{optimize(1080, true)}, {webVideo(720)}}, nil))

	assert.Equal(t, 0, store.created[0].opts.Priority)
	assert.Equal(t, 0, store.created[1].opts.Priority)
}

func TestRunnerJobBuilder_RejectsTwoParentsWithoutSideEffects(t *testing.T) {
	resolver := &fakeResolver{priority: 10}
	store := &fakeRunnerStore{}
	sources := &fakeSources{url: testSourceURL}
	notifier := &fakeNotifier{}
	b := newTestRunnerBuilder(resolver, store, sources, notifier)

	err := b.CreateJobs(context.Background(), RenditionPlan{{optimize(1080, false), webVideo(720)}}, nil)

	var shapeErr *PlanShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Zero(t, resolver.calls)
	assert.Zero(t, store.calls)
	assert.Zero(t, sources.calls)
	assert.Zero(t, notifier.calls)
}

func TestRunnerJobBuilder_PriorityFailureCreatesNothing(t *testing.T) {
	store := &fakeRunnerStore{}
	notifier := &fakeNotifier{}
	b := newTestRunnerBuilder(&fakeResolver{err: ErrPriorityResolution}, store, &fakeSources{url: testSourceURL}, notifier)

	err := b.CreateJobs(context.Background(), RenditionPlan{{optimize(1080, false)}}, nil)

	assert.ErrorIs(t, err, ErrPriorityResolution)
	assert.Zero(t, store.calls)
	assert.Zero(t, notifier.calls)
}

func TestRunnerJobBuilder_InvalidVideoID(t *testing.T) {
	resolver := &fakeResolver{priority: 10}
	store := &fakeRunnerStore{}
	sources := &fakeSources{url: testSourceURL}
	b := newTestRunnerBuilder(resolver, store, sources, nil)

	payload := optimize(1080, false)
	payload.VideoID = "not-a-uuid"
	err := b.CreateJobs(context.Background(), RenditionPlan{{payload}}, nil)

	var shapeErr *PlanShapeError
	assert.True(t, errors.As(err, &shapeErr))
	assert.Zero(t, resolver.calls)
	assert.Zero(t, sources.calls)
	assert.Zero(t, store.calls)
}

func TestRunnerJobBuilder_SourceURLFailure(t *testing.T) {
	store := &fakeRunnerStore{}
	b := newTestRunnerBuilder(&fakeResolver{priority: 10}, store, &fakeSources{err: errors.New("no such key")}, nil)

	err := b.CreateJobs(context.Background(), RenditionPlan{{optimize(1080, false)}}, nil)

	var subErr *BackendSubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, "resolve input file url", subErr.Op)
	assert.Zero(t, store.calls)
}

func TestRunnerJobBuilder_StopsAtFirstFailedCreate(t *testing.T) {
	storeErr := errors.New("insert failed")
	store := &fakeRunnerStore{failAt: 2, err: storeErr}
	notifier := &fakeNotifier{}
	b := newTestRunnerBuilder(&fakeResolver{priority: 10}, store, &fakeSources{url: testSourceURL}, notifier)

	err := b.CreateJobs(context.Background(), RenditionPlan{{optimize(1080, false)}, {webVideo(720)}, {webVideo(480)}}, nil)

	var subErr *BackendSubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 2, store.calls)
	assert.Len(t, store.created, 1, "jobs created before the failure stay in place")
	assert.Zero(t, notifier.calls)
}

func TestRunnerJobBuilder_NotifierFailureIsNotReturned(t *testing.T) {
	store := &fakeRunnerStore{}
	notifier := &fakeNotifier{err: errors.New("publish failed")}
	b := newTestRunnerBuilder(&fakeResolver{priority: 10}, store, &fakeSources{url: testSourceURL}, notifier)

	require.NoError(t, b.CreateJobs(context.Background(), RenditionPlan{{optimize(1080, false)}}, nil))
	assert.Equal(t, 1, notifier.calls)
	assert.Len(t, store.created, 1)
}

func TestRunnerJobBuilder_TwoSubmissionsAreIndependent(t *testing.T) {
	store := &fakeRunnerStore{}
	notifier := &fakeNotifier{}
	b := newTestRunnerBuilder(&fakeResolver{priority: 10}, store, &fakeSources{url: testSourceURL}, notifier)
	plan := RenditionPlan{{optimize(1080, false)}, {webVideo(720)}}

	require.NoError(t, b.CreateJobs(context.Background(), plan, nil))
	require.NoError(t, b.CreateJobs(context.Background(), plan, nil))

	require.Len(t, store.created, 4)
	assert.Nil(t, store.created[2].dependsOn, "second graph starts a new root")
	assert.Equal(t, store.created[2].job.ID, dependsOnID(store.created[3]))
	assert.Equal(t, 2, notifier.calls)
}

func TestChainStage(t *testing.T) {
	var nextID int64 = 10
	var parents []int64
	create := func(p models.TranscodingPayload, dependsOn *models.RunnerJob) (*models.RunnerJob, error) {
		parents = append(parents, dependsOn.ID)
		nextID++
		return &models.RunnerJob{ID: nextID}, nil
	}

	last, err := chainStage(Stage{webVideo(720), hls(720), hls(480)}, &models.RunnerJob{ID: 10}, create)

	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11, 12}, parents)
	assert.Equal(t, int64(13), last.ID)
}
