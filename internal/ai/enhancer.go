package ai

import (
	"context"
	"encoding/json"
	"time"
)

// Package ai contains the template-enhancement collaborator: prompt plus
// template data in, enhanced template data out. The model serving itself is
// external.

// Enhancer enriches template data ahead of rendering.
type Enhancer interface {
	Enhance(ctx context.Context, templateData json.RawMessage, prompt string) (json.RawMessage, error)
}

// passthrough is the Enhancer used when no AI endpoint is configured. It
// returns the template data annotated with the prompt so the generated
// document still records what was asked for.
type passthrough struct{}

// NewPassthrough creates an Enhancer that annotates without enhancing.
func NewPassthrough() Enhancer {
	return passthrough{}
}

func (passthrough) Enhance(_ context.Context, templateData json.RawMessage, prompt string) (json.RawMessage, error) {
	var data map[string]any
	if err := json.Unmarshal(templateData, &data); err != nil {
		return nil, err
	}
	data["ai_enhanced"] = true
	data["ai_prompt"] = prompt
	data["enhancement_timestamp"] = time.Now().UTC().Format(time.RFC3339)
	return json.Marshal(data)
}
