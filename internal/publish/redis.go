// internal/publish/redis.go
package publish

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	apperrors "exam-seating/internal/common/errors"
	"exam-seating/internal/common/logger"
	"exam-seating/internal/report"
)

// RedisPublisher writes a per-applicant lookup hash so the portal can answer
// "where do I sit" with a single HGETALL.
type RedisPublisher struct {
	client    *redis.Client
	keyPrefix string
	logger    logger.Logger
}

func NewRedisPublisher(client *redis.Client, keyPrefix string, log logger.Logger) *RedisPublisher {
	if keyPrefix == "" {
		keyPrefix = "examseat"
	}
	return &RedisPublisher{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    log.WithFields(map[string]interface{}{"publisher": "redis"}),
	}
}

func (p *RedisPublisher) seatKey(applicantID string) string {
	return fmt.Sprintf("%s:seat:%s", p.keyPrefix, applicantID)
}

func (p *RedisPublisher) runKey() string {
	return fmt.Sprintf("%s:run", p.keyPrefix)
}

// Publish writes every seat hash in a pipeline and records the run id last,
// so a half-written run never shows up as current.
func (p *RedisPublisher) Publish(ctx context.Context, runID string, rep *report.Report) error {
	pipe := p.client.Pipeline()
	count := 0
	for _, seat := range rep.Seats() {
		fields := map[string]interface{}{
			"runId":      runID,
			"programId":  seat.ProgramID,
			"examId":     seat.ExamID,
			"room":       seat.RoomLabel,
			"seatNumber": strconv.Itoa(seat.SeatNumber),
			"fullName":   seat.FullName,
			"building":   seat.Building,
			"floor":      seat.Floor,
		}
		pipe.HSet(ctx, p.seatKey(seat.ApplicantID), fields)
		count++
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.NewPublishFailedError("redis", err)
	}

	if err := p.client.Set(ctx, p.runKey(), runID, 0).Err(); err != nil {
		return apperrors.NewPublishFailedError("redis", err)
	}

	p.logger.Info("seat lookups published", map[string]interface{}{
		"runID": runID,
		"seats": count,
	})
	return nil
}

// Lookup fetches one applicant's seat hash. A missing key returns an empty
// map and no error.
func (p *RedisPublisher) Lookup(ctx context.Context, applicantID string) (map[string]string, error) {
	fields, err := p.client.HGetAll(ctx, p.seatKey(applicantID)).Result()
	if err != nil {
		return nil, apperrors.NewPublishFailedError("redis", err)
	}
	return fields, nil
}
