package entity

// TrainingTable: плоская числовая таблица для обучения. Labels[i] содержит цену
// для Rows[i].
type TrainingTable struct {
	Columns []string
	Rows    []FeatureVector
	Labels  []float64
}

func NewTrainingTable() TrainingTable {
	return TrainingTable{
		Columns: append([]string(nil), FeatureNames[:]...),
	}
}

func (t *TrainingTable) Append(v FeatureVector, label float64) {
	t.Rows = append(t.Rows, v)
	t.Labels = append(t.Labels, label)
}

func (t TrainingTable) Len() int {
	return len(t.Rows)
}
