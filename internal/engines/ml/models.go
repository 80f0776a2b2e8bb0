package ml

import "math"

// model is a trained predictor over encoded feature rows.
type model interface {
	Predict(features []float64) float64
}

const (
	gradientIterations = 1000
	learningRate       = 0.1
)

// linearModel predicts with a weight vector and bias. Both linear and
// logistic regression share this shape; logistic applies a sigmoid and
// thresholds at 0.5.
type linearModel struct {
	weights  []float64
	bias     float64
	logistic bool
}

func (m *linearModel) Predict(features []float64) float64 {
	sum := m.bias
	for i, w := range m.weights {
		if i < len(features) {
			sum += w * features[i]
		}
	}
	if m.logistic {
		if sigmoid(sum) >= 0.5 {
			return 1
		}
		return 0
	}
	return sum
}

// trainLinearRegression fits ordinary least squares by full-batch
// gradient descent on mean squared error.
func trainLinearRegression(x [][]float64, y []float64) model {
	return gradientDescent(x, y, false)
}

// trainLogisticRegression fits binary logistic regression by full-batch
// gradient descent on log loss.
func trainLogisticRegression(x [][]float64, y []float64) model {
	return gradientDescent(x, y, true)
}

func gradientDescent(x [][]float64, y []float64, logistic bool) *linearModel {
	n := len(x)
	if n == 0 {
		return &linearModel{logistic: logistic}
	}

	dims := len(x[0])
	weights := make([]float64, dims)
	var bias float64

	for iter := 0; iter < gradientIterations; iter++ {
		gradW := make([]float64, dims)
		var gradB float64

		for i, row := range x {
			sum := bias
			for j, w := range weights {
				if j < len(row) {
					sum += w * row[j]
				}
			}

			prediction := sum
			if logistic {
				prediction = sigmoid(sum)
			}

			// The MSE and log-loss gradients share this residual form.
			residual := prediction - y[i]
			for j := range gradW {
				if j < len(row) {
					gradW[j] += residual * row[j]
				}
			}
			gradB += residual
		}

		scale := learningRate / float64(n)
		for j := range weights {
			weights[j] -= scale * gradW[j]
		}
		bias -= scale * gradB
	}

	return &linearModel{weights: weights, bias: bias, logistic: logistic}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
