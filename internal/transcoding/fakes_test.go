package transcoding

import (
	"context"
	"fmt"
	"sync"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/priority"
	"github.com/gnout1912/VieTube-sub001/internal/runners"
	"github.com/google/uuid"
)

type fakeResolver struct {
	priority int
	err      error
	calls    int
	classes  []priority.JobClass
}

func (f *fakeResolver) Resolve(ctx context.Context, actor *models.User, class priority.JobClass, fallback *int) (int, error) {
	f.calls++
	f.classes = append(f.classes, class)
	if f.err != nil {
		return 0, f.err
	}
	return f.priority, nil
}

type queueFlow struct {
	parent *models.QueueJob
	child  *models.QueueJob
}

type fakeQueueStore struct {
	mu        sync.Mutex
	submitted []*models.QueueJob
	flows     []queueFlow
	err       error
	nextID    int
}

func (f *fakeQueueStore) id() string {
	f.nextID++
	return fmt.Sprintf("job-%d", f.nextID)
}

func (f *fakeQueueStore) Submit(ctx context.Context, job *models.QueueJob) (*models.QueueJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	stored := *job
	stored.ID = f.id()
	f.submitted = append(f.submitted, &stored)
	return &stored, nil
}

func (f *fakeQueueStore) SubmitSequentialFlow(ctx context.Context, parent, child *models.QueueJob) (*models.QueueJob, *models.QueueJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, nil, f.err
	}
	p := *parent
	p.ID = f.id()
	c := *child
	c.ID = f.id()
	c.ParentID = p.ID
	f.flows = append(f.flows, queueFlow{parent: &p, child: &c})
	return &p, &c, nil
}

func (f *fakeQueueStore) calls() int {
	return len(f.submitted) + len(f.flows)
}

type fakeJobInfo struct {
	counts map[string]int64
	err    error
	calls  int
}

func newFakeJobInfo() *fakeJobInfo {
	return &fakeJobInfo{counts: make(map[string]int64)}
}

func (f *fakeJobInfo) IncreasePendingJobs(ctx context.Context, videoID string, counter models.JobInfoCounter) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	f.counts[videoID+"/"+string(counter)]++
	return f.counts[videoID+"/"+string(counter)], nil
}

type runnerCreate struct {
	opts      runners.CreateOptions
	dependsOn *models.RunnerJob
	job       *models.RunnerJob
}

type fakeRunnerStore struct {
	created []runnerCreate
	// failAt makes the n-th create call (1-based) fail with err.
	failAt int
	err    error
	nextID int64
	calls  int
}

func (f *fakeRunnerStore) Create(ctx context.Context, opts runners.CreateOptions, dependsOn *models.RunnerJob) (*models.RunnerJob, error) {
	f.calls++
	if f.failAt > 0 && f.calls == f.failAt {
		return nil, f.err
	}
	f.nextID++
	job := &models.RunnerJob{
		ID:       f.nextID,
		UUID:     uuid.New(),
		Type:     opts.Type,
		Priority: opts.Priority,
		State:    models.RunnerJobPending,
	}
	if dependsOn != nil {
		parentID := dependsOn.ID
		job.DependsOnRunnerJobID = &parentID
		job.State = models.RunnerJobWaitingForParentJob
	}
	f.created = append(f.created, runnerCreate{opts: opts, dependsOn: dependsOn, job: job})
	return job, nil
}

type fakeSources struct {
	url   string
	err   error
	calls int
}

func (f *fakeSources) GetSourceDownloadURL(ctx context.Context, videoID uuid.UUID) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) NotifyAvailableJobs(ctx context.Context) error {
	f.calls++
	return f.err
}

func (f *fakeNotifier) Close() error {
	return nil
}

const testVideoID = "9b2f3c1e-6a4d-4f0b-8c55-2d7e1a9f0c11"

func optimize(res int, higher bool) models.TranscodingPayload {
	return NewOptimizePayload(OptimizeOptions{VideoID: testVideoID, Resolution: res, FPS: 30, IsNewVideo: true, HigherPriority: higher})
}

func webVideo(res int) models.TranscodingPayload {
	return NewWebVideoPayload(WebVideoOptions{VideoID: testVideoID, Resolution: res, FPS: 30, IsNewVideo: true})
}

func hls(res int) models.TranscodingPayload {
	return NewHLSPayload(HLSOptions{VideoID: testVideoID, Resolution: res, FPS: 30, IsNewVideo: true})
}

func intPtr(v int) *int {
	return &v
}
