package repository

import (
	"context"
	"fmt"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/videofiles"
	"github.com/go-redis/redis/v8"
)

const jobInfoKeyPrefix = "video:job-info:"

// Floors the counter at zero so a stray extra decrement cannot leave a video
// looking like it has negative pending work.
var decreaseScript = redis.NewScript(`
local v = redis.call('HINCRBY', KEYS[1], ARGV[1], -1)
if v < 0 then
	redis.call('HSET', KEYS[1], ARGV[1], 0)
	return 0
end
return v
`)

type videoRedisRepo struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewVideoRedisRepo(redisClient *redis.Client, keyPrefix string) videofiles.RedisRepository {
	return &videoRedisRepo{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
	}
}

func (v *videoRedisRepo) jobInfoKey(videoID string) string {
	if v.keyPrefix == "" {
		return jobInfoKeyPrefix + videoID
	}
	return v.keyPrefix + ":" + jobInfoKeyPrefix + videoID
}

func (v *videoRedisRepo) IncreasePendingJobs(ctx context.Context, videoID string, counter models.JobInfoCounter) (int64, error) {
	n, err := v.redisClient.HIncrBy(ctx, v.jobInfoKey(videoID), string(counter), 1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increase %s for video %s: %w", counter, videoID, err)
	}
	return n, nil
}

func (v *videoRedisRepo) DecreasePendingJobs(ctx context.Context, videoID string, counter models.JobInfoCounter) (int64, error) {
	n, err := decreaseScript.Run(ctx, v.redisClient, []string{v.jobInfoKey(videoID)}, string(counter)).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to decrease %s for video %s: %w", counter, videoID, err)
	}
	return n, nil
}

func (v *videoRedisRepo) GetPendingJobs(ctx context.Context, videoID string, counter models.JobInfoCounter) (int64, error) {
	n, err := v.redisClient.HGet(ctx, v.jobInfoKey(videoID), string(counter)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get %s for video %s: %w", counter, videoID, err)
	}
	return n, nil
}
