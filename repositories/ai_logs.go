package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"savoriq/llm"
	"savoriq/models"
)

type AILogRepository struct {
	col *mongo.Collection
}

func NewAILogRepository(db *mongo.Database) *AILogRepository {
	return &AILogRepository{col: db.Collection("ai_logs")}
}

func (r *AILogRepository) Insert(ctx context.Context, log models.AILog) (*mongo.InsertOneResult, error) {
	if log.RequestedAt.IsZero() {
		log.RequestedAt = time.Now()
	}
	return r.col.InsertOne(ctx, log)
}

// RecordCall stores an LLM call; it satisfies llm.CallRecorder.
func (r *AILogRepository) RecordCall(ctx context.Context, call llm.CallLog) error {
	_, err := r.Insert(ctx, AILogFromCall(call))
	return err
}

func AILogFromCall(call llm.CallLog) models.AILog {
	log := models.AILog{
		Purpose:        call.Purpose,
		ModelName:      call.ModelName,
		ModelVersion:   call.ModelVersion,
		InputTokens:    call.Usage.InputTokens,
		OutputTokens:   call.Usage.OutputTokens,
		TotalTokens:    call.Usage.TotalTokens,
		DurationMs:     call.Duration().Milliseconds(),
		InputPrompt:    call.Prompt,
		OutputResponse: call.Response,
		RequestedAt:    call.RequestedAt,
		CompletedAt:    call.CompletedAt,
	}
	if call.Err != nil {
		msg := call.Err.Error()
		log.ErrorMessage = &msg
	}
	return log
}
