package worker

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
)

const (
	TypeModelRetrain   = "model:retrain"
	TypeListingsScrape = "listings:scrape"

	QueueDefault = "default"

	retrainUniqueTTL = time.Hour
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// RetrainPayload: причина переобучения, попадает только в логи.
type RetrainPayload struct {
	Reason string `json:"reason"`
}

func NewRetrainTask(reason string) (*asynq.Task, error) {
	payload, err := json.Marshal(RetrainPayload{Reason: reason})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	// переобучение тяжёлое, дубликаты в очереди не нужны
	return asynq.NewTask(
		TypeModelRetrain,
		payload,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(2),
		asynq.Unique(retrainUniqueTTL),
	), nil
}

func NewScrapeTask() *asynq.Task {
	return asynq.NewTask(TypeListingsScrape, nil, asynq.Queue(QueueDefault), asynq.MaxRetry(1))
}
