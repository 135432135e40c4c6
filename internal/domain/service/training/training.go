// Package training собирает датасет, обучает модель и сохраняет её.
package training

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/rs/xid"

	"flat_price/internal/domain/entity"
	"flat_price/internal/domain/service/regression"
	"flat_price/pkg/contextx"
	"flat_price/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type ListingRepository interface {
	FetchAll(ctx context.Context) ([]entity.RawListing, error)
}

type DatasetBuilder interface {
	Build(ctx context.Context, listings []entity.RawListing) (entity.TrainingTable, error)
}

type ModelStore interface {
	Save(ctx context.Context, m *regression.Model) error
}

// Params: гиперпараметры одного прогона обучения.
type Params struct {
	TestSize    float64
	RandomState int64
	Regression  regression.Params
}

// Report: качество модели на отложенной выборке. Если TestSize равен нулю,
// метрики считаются по обучающей выборке.
type Report struct {
	Version   string
	TrainRows int
	TestRows  int
	R2        float64
	RMSE      float64
}

type Service struct {
	listings ListingRepository
	builder  DatasetBuilder
	store    ModelStore
	params   Params
	now      func() time.Time
}

func NewService(
	listings ListingRepository,
	builder DatasetBuilder,
	store ModelStore,
	params Params,
) *Service {
	return &Service{
		listings: listings,
		builder:  builder,
		store:    store,
		params:   params,
		now:      time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Retrain строит датасет по всем объявлениям из хранилища, обучает и
// сохраняет модель. Если датасет пуст, ничего не сохраняется.
func (s *Service) Retrain(ctx context.Context) (*regression.Model, Report, error) {
	listings, err := s.listings.FetchAll(ctx)
	if err != nil {
		return nil, Report{}, fmt.Errorf("listings.FetchAll: %w", err)
	}

	table, err := s.builder.Build(ctx, listings)
	if err != nil {
		return nil, Report{}, fmt.Errorf("builder.Build: %w", err)
	}

	model, report, err := s.Train(ctx, table)
	if err != nil {
		return nil, Report{}, err
	}

	if err := s.store.Save(ctx, model); err != nil {
		return nil, Report{}, fmt.Errorf("store.Save: %w", err)
	}

	return model, report, nil
}

// Train делит таблицу на обучающую и тестовую части, обучает модель и
// оценивает её. Модель не сохраняется.
func (s *Service) Train(ctx context.Context, table entity.TrainingTable) (*regression.Model, Report, error) {
	if !entity.SameFeatureNames(table.Columns) {
		return nil, Report{}, fmt.Errorf("unexpected columns %v", table.Columns)
	}

	train, test, err := Split(table, s.params.TestSize, s.params.RandomState)
	if err != nil {
		return nil, Report{}, err
	}

	model, err := regression.Fit(train, s.params.Regression)
	if err != nil {
		return nil, Report{}, fmt.Errorf("regression.Fit: %w", err)
	}

	model.Version = xid.New().String()
	model.TrainedAt = s.now().UTC()

	eval := test
	if eval.Len() == 0 {
		eval = train
	}

	predicted := make([]float64, eval.Len())
	for i, row := range eval.Rows {
		predicted[i] = model.Predict(row)
	}

	report := Report{
		Version:   model.Version,
		TrainRows: train.Len(),
		TestRows:  test.Len(),
		R2:        regression.R2(eval.Labels, predicted),
		RMSE:      regression.RMSE(eval.Labels, predicted),
	}

	logger(ctx).Info(
		"model trained",
		slog.String(logx.FieldModelVersion, report.Version),
		slog.Int("train-rows", report.TrainRows),
		slog.Int("test-rows", report.TestRows),
		slog.Float64("r2", report.R2),
		slog.Float64("rmse", report.RMSE),
	)

	return model, report, nil
}

// Split перемешивает строки генератором с зерном randomState и отделяет
// ceil(testSize*n) строк в тестовую часть. Одно и то же зерно даёт одно и то
// же разбиение.
func Split(table entity.TrainingTable, testSize float64, randomState int64) (entity.TrainingTable, entity.TrainingTable, error) {
	if testSize < 0 || testSize >= 1 {
		return entity.TrainingTable{}, entity.TrainingTable{}, fmt.Errorf("test size %v: out of [0, 1)", testSize)
	}

	n := table.Len()
	nTest := int(math.Ceil(testSize * float64(n)))

	if n-nTest < 1 {
		return entity.TrainingTable{}, entity.TrainingTable{}, errors.New("no rows left for training")
	}

	order := rand.New(rand.NewSource(randomState)).Perm(n) //nolint:gosec // reproducible split

	train := entity.NewTrainingTable()
	test := entity.NewTrainingTable()

	for pos, i := range order {
		if pos < nTest {
			test.Append(table.Rows[i], table.Labels[i])
		} else {
			train.Append(table.Rows[i], table.Labels[i])
		}
	}

	return train, test, nil
}
