package interpret

import (
	"context"
	"errors"
	"fmt"

	"github.com/chartloom/chartloom-cli/internal/ai"
	"github.com/chartloom/chartloom-cli/internal/chart"
	"github.com/chartloom/chartloom-cli/internal/classify"
	"github.com/chartloom/chartloom-cli/internal/dataset"
)

// Interpreter sends chart interpretation requests to an AI runtime.
type Interpreter struct {
	rt          ai.Runtime
	model       string
	maxTokens   int
	temperature float64
}

// New builds an interpreter over the given runtime and model settings.
func New(rt ai.Runtime, model string, maxTokens int, temperature float64) *Interpreter {
	return &Interpreter{rt: rt, model: model, maxTokens: maxTokens, temperature: temperature}
}

func (in *Interpreter) request(prompt string) ai.GenerateRequest {
	return ai.GenerateRequest{
		Model: in.model,
		Messages: []ai.Message{
			{Role: "system", Content: systemRole},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   in.maxTokens,
		Temperature: in.temperature,
	}
}

// InterpretChart asks the runtime for a natural-language reading of the
// chart. description is optional user-provided dataset context.
func (in *Interpreter) InterpretChart(ctx context.Context, t *dataset.Table, types *classify.TypeMap, spec *chart.Spec, description string) (string, error) {
	prompt := interpretationPrompt(
		spec.Title, spec.Mark.DisplayName(), spec.Columns,
		DatasetContext(t, types, description),
		ChartSummary(t, types, spec.Columns),
	)
	resp, err := in.rt.Generate(ctx, in.request(prompt))
	if err != nil {
		return "", fmt.Errorf("generate interpretation: %w", err)
	}
	if resp.Content() == "" {
		return "", errors.New("provider returned an empty interpretation")
	}
	return resp.Content(), nil
}

// InterpretChartStream streams the interpretation when the runtime supports
// it, falling back to a single-shot call otherwise. onDelta receives partial
// content; on fallback it receives the full text once.
func (in *Interpreter) InterpretChartStream(ctx context.Context, t *dataset.Table, types *classify.TypeMap, spec *chart.Spec, description string, onDelta func(string)) error {
	sr, ok := in.rt.(ai.StreamRuntime)
	if !ok {
		text, err := in.InterpretChart(ctx, t, types, spec, description)
		if err != nil {
			return err
		}
		onDelta(text)
		return nil
	}
	prompt := interpretationPrompt(
		spec.Title, spec.Mark.DisplayName(), spec.Columns,
		DatasetContext(t, types, description),
		ChartSummary(t, types, spec.Columns),
	)
	if err := sr.GenerateStream(ctx, in.request(prompt), onDelta); err != nil {
		return fmt.Errorf("stream interpretation: %w", err)
	}
	return nil
}

// Recommend asks the runtime for follow-up visualizations for the dataset.
func (in *Interpreter) Recommend(ctx context.Context, t *dataset.Table, types *classify.TypeMap, description string) (string, error) {
	prompt := recommendationPrompt(DatasetContext(t, types, description))
	resp, err := in.rt.Generate(ctx, in.request(prompt))
	if err != nil {
		return "", fmt.Errorf("generate recommendations: %w", err)
	}
	if resp.Content() == "" {
		return "", errors.New("provider returned empty recommendations")
	}
	return resp.Content(), nil
}
