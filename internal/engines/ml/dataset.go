package ml

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// splitSeed fixes the train/test shuffle so repeated runs over the same
// data produce the same split.
const splitSeed = 42

// Dataset holds tabular records keyed by column name.
type Dataset struct {
	Columns []string
	Records []map[string]any
}

// ParseRecords builds a dataset from a JSON array of objects. Column
// order is the sorted union of keys across records.
func ParseRecords(data any) (*Dataset, error) {
	list, ok := data.([]any)
	if !ok || len(list) == 0 {
		return nil, ErrNoData
	}

	columns := map[string]struct{}{}
	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: records must be objects", ErrInvalidData)
		}
		for k := range record {
			columns[k] = struct{}{}
		}
		records = append(records, record)
	}

	names := make([]string, 0, len(columns))
	for k := range columns {
		names = append(names, k)
	}
	sort.Strings(names)

	return &Dataset{Columns: names, Records: records}, nil
}

// Shape returns (rows, columns) of the raw data.
func (d *Dataset) Shape() [2]int {
	return [2]int{len(d.Records), len(d.Columns)}
}

// Split partitions record indices into train and test sets with a
// deterministic 80/20 shuffle.
func (d *Dataset) Split() (train, test []int) {
	n := len(d.Records)
	perm := rand.New(rand.NewSource(splitSeed)).Perm(n)

	testN := n / 5
	if testN == 0 && n > 1 {
		testN = 1
	}

	return perm[testN:], perm[:testN]
}

// featurePlan describes how raw columns become numeric features:
// numeric columns are standardized, categorical columns one-hot
// encoded. Statistics and categories come from the training rows only.
type featurePlan struct {
	numeric     []string
	means       map[string]float64
	stddevs     map[string]float64
	categorical []string
	categories  map[string][]string
}

func buildFeaturePlan(d *Dataset, target string, trainIdx []int) *featurePlan {
	plan := &featurePlan{
		means:      map[string]float64{},
		stddevs:    map[string]float64{},
		categories: map[string][]string{},
	}

	for _, col := range d.Columns {
		if col == target {
			continue
		}

		if d.columnIsNumeric(col) {
			plan.numeric = append(plan.numeric, col)
			mean, stddev := trainStats(d, col, trainIdx)
			plan.means[col] = mean
			plan.stddevs[col] = stddev
			continue
		}

		plan.categorical = append(plan.categorical, col)
		plan.categories[col] = trainCategories(d, col, trainIdx)
	}

	return plan
}

// Encode converts the rows at the given indices into a feature matrix.
// Categories unseen in training encode as all zeros.
func (p *featurePlan) Encode(d *Dataset, idx []int) [][]float64 {
	matrix := make([][]float64, len(idx))
	for i, row := range idx {
		record := d.Records[row]
		features := make([]float64, 0, len(p.numeric))

		for _, col := range p.numeric {
			v, _ := numericValue(record[col])
			stddev := p.stddevs[col]
			if stddev == 0 {
				features = append(features, 0)
				continue
			}
			features = append(features, (v-p.means[col])/stddev)
		}

		for _, col := range p.categorical {
			value := fmt.Sprintf("%v", record[col])
			for _, category := range p.categories[col] {
				if value == category {
					features = append(features, 1)
				} else {
					features = append(features, 0)
				}
			}
		}

		matrix[i] = features
	}
	return matrix
}

// Target extracts the target column as floats for the given indices.
// String labels map to their index in the sorted distinct label set.
func (d *Dataset) Target(target string, idx []int) ([]float64, error) {
	labels := map[string]float64{}
	if !d.columnIsNumeric(target) {
		distinct := trainCategories(d, target, allIndices(len(d.Records)))
		for i, label := range distinct {
			labels[label] = float64(i)
		}
	}

	values := make([]float64, len(idx))
	for i, row := range idx {
		raw, ok := d.Records[row][target]
		if !ok {
			return nil, fmt.Errorf("%w: missing target %q in record %d", ErrInvalidData, target, row)
		}

		if v, isNum := numericValue(raw); isNum && len(labels) == 0 {
			values[i] = v
			continue
		}

		label, found := labels[fmt.Sprintf("%v", raw)]
		if !found {
			return nil, fmt.Errorf("%w: non-numeric target %q", ErrInvalidData, target)
		}
		values[i] = label
	}
	return values, nil
}

func (d *Dataset) columnIsNumeric(col string) bool {
	for _, record := range d.Records {
		raw, ok := record[col]
		if !ok || raw == nil {
			continue
		}
		if _, isNum := numericValue(raw); !isNum {
			return false
		}
	}
	return true
}

func numericValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func trainStats(d *Dataset, col string, idx []int) (mean, stddev float64) {
	if len(idx) == 0 {
		return 0, 0
	}

	for _, row := range idx {
		v, _ := numericValue(d.Records[row][col])
		mean += v
	}
	mean /= float64(len(idx))

	var variance float64
	for _, row := range idx {
		v, _ := numericValue(d.Records[row][col])
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(idx))

	return mean, math.Sqrt(variance)
}

func trainCategories(d *Dataset, col string, idx []int) []string {
	seen := map[string]struct{}{}
	for _, row := range idx {
		seen[fmt.Sprintf("%v", d.Records[row][col])] = struct{}{}
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
