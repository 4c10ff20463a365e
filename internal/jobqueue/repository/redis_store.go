package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gnout1912/VieTube-sub001/internal/jobqueue"
	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Waiting set scores are priority<<32 + seq, so ZPOPMIN yields the most urgent
// job and, within one priority, the oldest.
const scoreShift = 1 << 32

// Moves the most urgent waiting job into the active set in one step, so a
// popped job is always recorded as in flight.
var claimScript = redis.NewScript(`
local popped = redis.call('ZPOPMIN', KEYS[1])
if #popped == 0 then
	return false
end
redis.call('ZADD', KEYS[2], ARGV[1], popped[1])
return popped[1]
`)

type queueRedisRepo struct {
	redisClient *redis.Client
	prefix      string
	now         func() time.Time
}

func NewQueueRedisRepo(redisClient *redis.Client, keyPrefix string) jobqueue.Store {
	prefix := "jobqueue"
	if keyPrefix != "" {
		prefix = keyPrefix + ":jobqueue"
	}
	return &queueRedisRepo{
		redisClient: redisClient,
		prefix:      prefix,
		now:         time.Now,
	}
}

func (q *queueRedisRepo) jobKey(id string) string {
	return q.prefix + ":job:" + id
}

func (q *queueRedisRepo) waitingKey(jobType models.QueueJobType) string {
	return q.prefix + ":" + string(jobType) + ":waiting"
}

func (q *queueRedisRepo) activeKey(jobType models.QueueJobType) string {
	return q.prefix + ":" + string(jobType) + ":active"
}

func (q *queueRedisRepo) childrenKey(parentID string) string {
	return q.prefix + ":children:" + parentID
}

func (q *queueRedisRepo) seqKey() string {
	return q.prefix + ":seq"
}

func (q *queueRedisRepo) nextScore(ctx context.Context, priority int) (float64, error) {
	seq, err := q.redisClient.Incr(ctx, q.seqKey()).Result()
	if err != nil {
		return 0, errors.Wrap(err, "failed to allocate job sequence")
	}
	return float64(jobqueue.ClampPriority(priority))*scoreShift + float64(seq), nil
}

func (q *queueRedisRepo) prepare(job *models.QueueJob, status models.JobStatus) *models.QueueJob {
	prepared := *job
	if prepared.ID == "" {
		prepared.ID = uuid.New().String()
	}
	prepared.Priority = jobqueue.ClampPriority(prepared.Priority)
	if prepared.MaxAttempts <= 0 {
		prepared.MaxAttempts = jobqueue.DefaultMaxAttempts
	}
	prepared.Status = status
	prepared.CreatedAt = q.now().UTC()
	return &prepared
}

func (q *queueRedisRepo) Submit(ctx context.Context, job *models.QueueJob) (*models.QueueJob, error) {
	prepared := q.prepare(job, models.JobStatusWaiting)
	data, err := json.Marshal(prepared)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal job")
	}
	score, err := q.nextScore(ctx, prepared.Priority)
	if err != nil {
		return nil, err
	}

	_, err = q.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, q.jobKey(prepared.ID), data, 0)
		pipe.ZAdd(ctx, q.waitingKey(prepared.Type), &redis.Z{Score: score, Member: prepared.ID})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to submit %s job", prepared.Type)
	}
	return prepared, nil
}

func (q *queueRedisRepo) SubmitSequentialFlow(ctx context.Context, parent, child *models.QueueJob) (*models.QueueJob, *models.QueueJob, error) {
	p := q.prepare(parent, models.JobStatusWaiting)
	c := q.prepare(child, models.JobStatusWaitingChildren)
	c.ParentID = p.ID

	parentData, err := json.Marshal(p)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to marshal parent job")
	}
	childData, err := json.Marshal(c)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to marshal child job")
	}
	score, err := q.nextScore(ctx, p.Priority)
	if err != nil {
		return nil, nil, err
	}

	_, err = q.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, q.jobKey(p.ID), parentData, 0)
		pipe.Set(ctx, q.jobKey(c.ID), childData, 0)
		pipe.RPush(ctx, q.childrenKey(p.ID), c.ID)
		pipe.ZAdd(ctx, q.waitingKey(p.Type), &redis.Z{Score: score, Member: p.ID})
		return nil
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to submit %s -> %s flow", p.Type, c.Type)
	}
	return p, c, nil
}

func (q *queueRedisRepo) Get(ctx context.Context, jobID string) (*models.QueueJob, error) {
	data, err := q.redisClient.Get(ctx, q.jobKey(jobID)).Bytes()
	if err == redis.Nil {
		return nil, errors.Wrap(jobqueue.ErrJobNotFound, jobID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get job")
	}
	job := &models.QueueJob{}
	if err := json.Unmarshal(data, job); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal job")
	}
	return job, nil
}

// Dequeue pops the most urgent waiting job of jobType and marks it active.
// It returns nil, nil when nothing is waiting. A claimed job stays in the
// active set until Complete or Fail, also when loading it fails here.
func (q *queueRedisRepo) Dequeue(ctx context.Context, jobType models.QueueJobType) (*models.QueueJob, error) {
	jobID, err := claimScript.Run(
		ctx,
		q.redisClient,
		[]string{q.waitingKey(jobType), q.activeKey(jobType)},
		q.now().Unix(),
	).Text()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to claim waiting job")
	}

	job, err := q.Get(ctx, jobID)
	if err != nil {
		return nil, errors.Wrapf(err, "claimed job %s left in active set", jobID)
	}
	job.Status = models.JobStatusActive
	job.Attempts++
	if err := q.save(ctx, job); err != nil {
		return nil, errors.Wrapf(err, "claimed job %s left in active set", jobID)
	}
	return job, nil
}

// Complete marks job completed and moves every job waiting on it into its
// waiting set.
func (q *queueRedisRepo) Complete(ctx context.Context, job *models.QueueJob) error {
	finished := q.now().UTC()
	job.Status = models.JobStatusCompleted
	job.FinishedAt = &finished
	job.Error = ""
	data, err := json.Marshal(job)
	if err != nil {
		return errors.Wrap(err, "failed to marshal job")
	}

	childIDs, err := q.redisClient.LRange(ctx, q.childrenKey(job.ID), 0, -1).Result()
	if err != nil {
		return errors.Wrap(err, "failed to list child jobs")
	}

	type release struct {
		job   *models.QueueJob
		data  []byte
		score float64
	}
	releases := make([]release, 0, len(childIDs))
	for _, childID := range childIDs {
		child, err := q.Get(ctx, childID)
		if err != nil {
			return err
		}
		child.Status = models.JobStatusWaiting
		childData, err := json.Marshal(child)
		if err != nil {
			return errors.Wrap(err, "failed to marshal child job")
		}
		score, err := q.nextScore(ctx, child.Priority)
		if err != nil {
			return err
		}
		releases = append(releases, release{job: child, data: childData, score: score})
	}

	_, err = q.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, q.jobKey(job.ID), data, 0)
		for _, r := range releases {
			pipe.Set(ctx, q.jobKey(r.job.ID), r.data, 0)
			pipe.ZAdd(ctx, q.waitingKey(r.job.Type), &redis.Z{Score: r.score, Member: r.job.ID})
		}
		pipe.Del(ctx, q.childrenKey(job.ID))
		pipe.ZRem(ctx, q.activeKey(job.Type), job.ID)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to complete job %s", job.ID)
	}
	return nil
}

// Fail records cause on job. The job goes back to waiting while it has
// attempts left; otherwise it is marked failed and its children stay parked.
func (q *queueRedisRepo) Fail(ctx context.Context, job *models.QueueJob, cause error) error {
	if cause != nil {
		job.Error = cause.Error()
	}
	if job.Attempts < job.MaxAttempts {
		job.Status = models.JobStatusWaiting
		data, err := json.Marshal(job)
		if err != nil {
			return errors.Wrap(err, "failed to marshal job")
		}
		score, err := q.nextScore(ctx, job.Priority)
		if err != nil {
			return err
		}
		_, err = q.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, q.jobKey(job.ID), data, 0)
			pipe.ZRem(ctx, q.activeKey(job.Type), job.ID)
			pipe.ZAdd(ctx, q.waitingKey(job.Type), &redis.Z{Score: score, Member: job.ID})
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "failed to requeue job %s", job.ID)
		}
		return nil
	}

	finished := q.now().UTC()
	job.Status = models.JobStatusFailed
	job.FinishedAt = &finished
	data, err := json.Marshal(job)
	if err != nil {
		return errors.Wrap(err, "failed to marshal job")
	}
	_, err = q.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, q.jobKey(job.ID), data, 0)
		pipe.ZRem(ctx, q.activeKey(job.Type), job.ID)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to mark job %s failed", job.ID)
	}
	return nil
}

func (q *queueRedisRepo) save(ctx context.Context, job *models.QueueJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return errors.Wrap(err, "failed to marshal job")
	}
	if err := q.redisClient.Set(ctx, q.jobKey(job.ID), data, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to save job %s", job.ID)
	}
	return nil
}
