package ml

import "math"

// regressionMetrics returns mse, rmse, and r2 for predictions.
func regressionMetrics(actual, predicted []float64) map[string]float64 {
	n := float64(len(actual))
	if n == 0 {
		return map[string]float64{"mse": 0, "rmse": 0, "r2": 0}
	}

	var mean float64
	for _, y := range actual {
		mean += y
	}
	mean /= n

	var sse, sst float64
	for i, y := range actual {
		sse += (y - predicted[i]) * (y - predicted[i])
		sst += (y - mean) * (y - mean)
	}

	mse := sse / n
	r2 := 0.0
	if sst != 0 {
		r2 = 1 - sse/sst
	}

	return map[string]float64{
		"mse":  mse,
		"rmse": math.Sqrt(mse),
		"r2":   r2,
	}
}

// classificationMetrics returns accuracy and support-weighted
// precision, recall, and f1 across classes.
func classificationMetrics(actual, predicted []float64) map[string]float64 {
	n := float64(len(actual))
	if n == 0 {
		return map[string]float64{"accuracy": 0, "precision": 0, "recall": 0, "f1": 0}
	}

	classes := map[float64]struct{}{}
	var correct float64
	for i, y := range actual {
		classes[y] = struct{}{}
		if y == predicted[i] {
			correct++
		}
	}

	var precision, recall, f1 float64
	for class := range classes {
		var tp, fp, fn, support float64
		for i, y := range actual {
			switch {
			case y == class && predicted[i] == class:
				tp++
			case y != class && predicted[i] == class:
				fp++
			case y == class && predicted[i] != class:
				fn++
			}
			if y == class {
				support++
			}
		}

		var p, r float64
		if tp+fp > 0 {
			p = tp / (tp + fp)
		}
		if tp+fn > 0 {
			r = tp / (tp + fn)
		}

		var f float64
		if p+r > 0 {
			f = 2 * p * r / (p + r)
		}

		weight := support / n
		precision += weight * p
		recall += weight * r
		f1 += weight * f
	}

	return map[string]float64{
		"accuracy":  correct / n,
		"precision": precision,
		"recall":    recall,
		"f1":        f1,
	}
}
