package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"flat_price/internal/domain/entity"
)

// LabelColumn: имя последней колонки файла датасета.
const LabelColumn = "price"

// WriteCSV пишет таблицу с заголовком FeatureNames + price.
func WriteCSV(w io.Writer, t entity.TrainingTable) error {
	cw := csv.NewWriter(w)

	header := append(append([]string(nil), t.Columns...), LabelColumn)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv.Write: %w", err)
	}

	record := make([]string, len(header))

	for i, row := range t.Rows {
		for j, x := range row {
			record[j] = strconv.FormatFloat(x, 'f', -1, 64)
		}
		record[len(record)-1] = strconv.FormatFloat(t.Labels[i], 'f', -1, 64)

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv.Write: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv.Flush: %w", err)
	}

	return nil
}

// ReadCSV читает файл, записанный WriteCSV. Заголовок обязан совпадать с
// FeatureNames, иначе строки нельзя отдать модели.
func ReadCSV(r io.Reader) (entity.TrainingTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = entity.FeatureCount + 1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return entity.TrainingTable{}, fmt.Errorf("csv.Read header: %w", err)
	}
	header = append([]string(nil), header...)

	if header[len(header)-1] != LabelColumn || !entity.SameFeatureNames(header[:len(header)-1]) {
		return entity.TrainingTable{}, fmt.Errorf("unexpected header %v", header)
	}

	table := entity.NewTrainingTable()

	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entity.TrainingTable{}, fmt.Errorf("csv.Read: %w", err)
		}

		var v entity.FeatureVector
		for j := range v {
			v[j], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return entity.TrainingTable{}, fmt.Errorf("line %d, column %s: %w", line, header[j], err)
			}
		}

		label, err := strconv.ParseFloat(record[len(record)-1], 64)
		if err != nil {
			return entity.TrainingTable{}, fmt.Errorf("line %d, column %s: %w", line, LabelColumn, err)
		}

		table.Append(v, label)
	}

	return table, nil
}
