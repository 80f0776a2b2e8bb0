// Package ml implements tabular model training for ml agents: records
// from the query parameters are split, encoded, fit with a linear model,
// and evaluated, with the chat model explaining the resulting metrics.
package ml

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/agents"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/llm"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/decode"
)

// Domain errors for ml execution. These map to 400 at the HTTP layer.
var (
	ErrNoData       = errors.New("no data provided")
	ErrNoTarget     = errors.New("no target column specified")
	ErrInvalidData  = errors.New("invalid training data")
	ErrUnknownModel = errors.New("model type not supported")
)

// LLM is the language model surface the engine depends on.
type LLM interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

type trainer func(x [][]float64, y []float64) model

var availableModels = map[string]trainer{
	"linear_regression":   trainLinearRegression,
	"logistic_regression": trainLogisticRegression,
}

// Engine executes queries for ml agents.
type Engine struct {
	llm    LLM
	logger *slog.Logger
}

// NewEngine creates an ml engine with the given model client.
func NewEngine(model LLM, logger *slog.Logger) *Engine {
	return &Engine{
		llm:    model,
		logger: logger.With("engine", "ml"),
	}
}

type queryParams struct {
	ModelType    string `json:"model_type"`
	TaskType     string `json:"task_type"`
	TargetColumn string `json:"target_column"`
	Data         any    `json:"data"`
}

const explainPrompt = `You are a data science assistant. Explain the following machine learning results in simple terms.

Model Type: %s
Task Type: %s

Metrics:
%s

Please explain what these metrics mean and whether the model performance is good or could be improved:`

// Query trains and evaluates a model from the request parameters and
// explains the metrics. Parameters: data (required), target_column
// (required), model_type (default linear_regression), task_type
// (default regression).
func (e *Engine) Query(ctx context.Context, agent *agents.Agent, params map[string]any) (*agents.MLResult, error) {
	p, err := decode.FromMap[queryParams](params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidData, err)
	}
	if p.ModelType == "" {
		p.ModelType = "linear_regression"
	}
	if p.TaskType == "" {
		p.TaskType = "regression"
	}

	if p.TargetColumn == "" {
		return nil, ErrNoTarget
	}

	train, ok := availableModels[p.ModelType]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownModel, p.ModelType, modelNames())
	}

	dataset, err := ParseRecords(p.Data)
	if err != nil {
		return nil, err
	}

	trainIdx, testIdx := dataset.Split()
	plan := buildFeaturePlan(dataset, p.TargetColumn, trainIdx)

	trainX := plan.Encode(dataset, trainIdx)
	testX := plan.Encode(dataset, testIdx)

	trainY, err := dataset.Target(p.TargetColumn, trainIdx)
	if err != nil {
		return nil, err
	}
	testY, err := dataset.Target(p.TargetColumn, testIdx)
	if err != nil {
		return nil, err
	}

	model := train(trainX, trainY)

	predicted := make([]float64, len(testX))
	for i, features := range testX {
		predicted[i] = model.Predict(features)
	}

	var metrics map[string]float64
	if p.TaskType == "classification" {
		metrics = classificationMetrics(testY, predicted)
	} else {
		metrics = regressionMetrics(testY, predicted)
	}

	explanation, err := e.explain(ctx, p.ModelType, p.TaskType, metrics)
	if err != nil {
		return nil, fmt.Errorf("explain results: %w", err)
	}

	e.logger.Info("model trained",
		"agent_id", agent.ID,
		"model_type", p.ModelType,
		"task_type", p.TaskType,
		"rows", len(dataset.Records),
	)

	return &agents.MLResult{
		ModelType:    p.ModelType,
		TaskType:     p.TaskType,
		TargetColumn: p.TargetColumn,
		DataShape:    dataset.Shape(),
		Metrics:      metrics,
		Explanation:  explanation,
	}, nil
}

func (e *Engine) explain(ctx context.Context, modelType, taskType string, metrics map[string]float64) (string, error) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %.4f\n", name, metrics[name])
	}

	return e.llm.Chat(ctx, []llm.Message{
		{Role: "user", Content: fmt.Sprintf(explainPrompt, modelType, taskType, b.String())},
	})
}

func modelNames() string {
	names := make([]string, 0, len(availableModels))
	for name := range availableModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
