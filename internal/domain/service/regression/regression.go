// Package regression обучает линейную модель с L2-регуляризацией на
// TrainingTable.
package regression

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"flat_price/internal/domain/entity"
)

// Params: гиперпараметры гребневой регрессии.
type Params struct {
	Alpha        float64
	FitIntercept bool
}

// Model: обученная модель в виде, пригодном для сериализации.
type Model struct {
	Version      string    `json:"version"`
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Alpha        float64   `json:"alpha"`
	TrainRows    int       `json:"train_rows"`
	TrainedAt    time.Time `json:"trained_at"`
}

// Predict: скалярное произведение признаков и коэффициентов плюс свободный
// член.
func (m *Model) Predict(v entity.FeatureVector) float64 {
	y := m.Intercept
	for i, c := range m.Coefficients {
		y += c * v[i]
	}
	return y
}

// Fit решает (XᵀX + αI)β = Xᵀy. При FitIntercept признаки и цена
// центрируются, а свободный член восстанавливается по средним.
func Fit(t entity.TrainingTable, p Params) (*Model, error) {
	n := t.Len()
	if n == 0 {
		return nil, errors.New("empty training table")
	}
	if len(t.Labels) != n {
		return nil, fmt.Errorf("rows %d, labels %d", n, len(t.Labels))
	}

	const k = entity.FeatureCount

	var xMean [k]float64
	var yMean float64

	if p.FitIntercept {
		for i, row := range t.Rows {
			for j := range k {
				xMean[j] += row[j]
			}
			yMean += t.Labels[i]
		}
		for j := range k {
			xMean[j] /= float64(n)
		}
		yMean /= float64(n)
	}

	x := mat.NewDense(n, k, nil)
	y := mat.NewVecDense(n, nil)

	for i, row := range t.Rows {
		for j := range k {
			x.Set(i, j, row[j]-xMean[j])
		}
		y.SetVec(i, t.Labels[i]-yMean)
	}

	var gram mat.Dense
	gram.Mul(x.T(), x)
	for j := range k {
		gram.Set(j, j, gram.At(j, j)+p.Alpha)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var beta mat.VecDense
	if err := beta.SolveVec(&gram, &xty); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("mat.SolveVec: %w", err)
		}
		// плохо обусловленная система всё равно даёт решение
	}

	m := &Model{
		Features:     append([]string(nil), entity.FeatureNames[:]...),
		Coefficients: make([]float64, k),
		Alpha:        p.Alpha,
		TrainRows:    n,
	}

	intercept := yMean
	for j := range k {
		c := beta.AtVec(j)
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("coefficient %s is not finite", entity.FeatureNames[j])
		}
		m.Coefficients[j] = c
		intercept -= c * xMean[j]
	}

	if p.FitIntercept {
		m.Intercept = intercept
	}

	return m, nil
}

// R2: коэффициент детерминации. Для константных меток возвращает 0.
func R2(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}

	var mean float64
	for _, y := range actual {
		mean += y
	}
	mean /= float64(len(actual))

	var ssRes, ssTot float64
	for i, y := range actual {
		ssRes += (y - predicted[i]) * (y - predicted[i])
		ssTot += (y - mean) * (y - mean)
	}

	if ssTot == 0 {
		return 0
	}

	return 1 - ssRes/ssTot
}

func RMSE(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}

	var sum float64
	for i, y := range actual {
		sum += (y - predicted[i]) * (y - predicted[i])
	}

	return math.Sqrt(sum / float64(len(actual)))
}
