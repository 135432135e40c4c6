package contextx

import (
	"context"
	"fmt"
)

// JobID identifies a background task run (scrape, retrain).
type JobID string

type contextKeyJobID struct{}

func (j JobID) String() string {
	return string(j)
}

func WithJobID(ctx context.Context, jobID JobID) context.Context {
	return context.WithValue(ctx, contextKeyJobID{}, jobID)
}

func JobIDFromContext(ctx context.Context) (JobID, error) {
	jobID, ok := ctx.Value(contextKeyJobID{}).(JobID)
	if !ok {
		return "", fmt.Errorf("job id: %w", ErrNoValue)
	}

	return jobID, nil
}
