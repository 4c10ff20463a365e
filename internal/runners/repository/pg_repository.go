package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/runners"
	"github.com/gnout1912/VieTube-sub001/pkg/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type runnerJobRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewRunnerJobRepo(db *sqlx.DB) runners.Store {
	return &runnerJobRepo{
		db:  db,
		now: time.Now,
	}
}

func (r *runnerJobRepo) Create(ctx context.Context, opts runners.CreateOptions, dependsOn *models.RunnerJob) (*models.RunnerJob, error) {
	if err := utils.ValidateStruct(ctx, opts); err != nil {
		return nil, fmt.Errorf("invalid runner job options: %w", err)
	}

	payload, err := json.Marshal(opts.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal runner job payload: %w", err)
	}
	privatePayload, err := json.Marshal(opts.PrivatePayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal runner job private payload: %w", err)
	}

	job := &models.RunnerJob{
		UUID:           uuid.New(),
		Type:           opts.Type,
		Payload:        payload,
		PrivatePayload: privatePayload,
		Priority:       opts.Priority,
		State:          models.RunnerJobPending,
		CreatedAt:      r.now().UTC(),
	}
	if dependsOn != nil {
		parentID := dependsOn.ID
		job.DependsOnRunnerJobID = &parentID
		job.State = models.RunnerJobWaitingForParentJob
	}

	if err := r.db.QueryRowxContext(
		ctx,
		r.db.Rebind(createRunnerJobQuery),
		job.UUID.String(),
		string(job.Type),
		[]byte(job.Payload),
		[]byte(job.PrivatePayload),
		job.Priority,
		string(job.State),
		job.DependsOnRunnerJobID,
		job.CreatedAt,
	).Scan(&job.ID); err != nil {
		return nil, fmt.Errorf("failed to create runner job: %w", err)
	}
	return job, nil
}

func (r *runnerJobRepo) GetByUUID(ctx context.Context, jobUUID string) (*models.RunnerJob, error) {
	job := &models.RunnerJob{}
	if err := r.db.GetContext(
		ctx,
		job,
		r.db.Rebind(getRunnerJobByUUIDQuery),
		jobUUID,
	); err != nil {
		return nil, fmt.Errorf("failed to get runner job: %w", err)
	}
	return job, nil
}
