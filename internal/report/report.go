// Package report builds the final hiring evaluation: it renders the full
// interview transcript into an evaluation prompt, calls the model for a
// strict JSON verdict and validates the result hard. Unlike panel turns,
// a malformed report is never repaired - the whole request fails.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/chadiek/interview-demo/internal/panel"
)

// Recommendation labels, ordered worst to best.
const (
	NoHire     = "No Hire"
	WeakHire   = "Weak Hire"
	Hire       = "Hire"
	StrongHire = "Strong Hire"
)

// Report is the structured hiring verdict produced at the end of an interview.
type Report struct {
	Scores         map[string]float64 `json:"scores" validate:"required,dive,gte=0,lte=10"`
	OverallScore   float64            `json:"overall_score" validate:"gte=0,lte=10"`
	Recommendation string             `json:"recommendation" validate:"required,oneof='No Hire' 'Weak Hire' 'Hire' 'Strong Hire'"`
	Pros           []string           `json:"pros" validate:"len=3,dive,required"`
	Cons           []string           `json:"cons" validate:"len=3,dive,required"`
	Summary        string             `json:"summary" validate:"required"`
}

const reportSchema = `{
  "type": "object",
  "required": ["scores", "overall_score", "recommendation", "pros", "cons", "summary"],
  "properties": {
    "scores": {
      "type": "object",
      "required": ["Technical Knowledge", "Communication Skills", "Problem Solving", "Cultural Fit"],
      "additionalProperties": {"type": "number"}
    },
    "overall_score": {"type": "number"},
    "recommendation": {"type": "string"},
    "pros": {"type": "array", "items": {"type": "string"}, "minItems": 3, "maxItems": 3},
    "cons": {"type": "array", "items": {"type": "string"}, "minItems": 3, "maxItems": 3},
    "summary": {"type": "string"}
  }
}`

var validate = validator.New()

// Parse validates raw model output against the report schema and value
// constraints. The overall score is recomputed from the per-competency
// scores so it is always consistent with the fixed weights, whatever the
// model returned.
func Parse(raw string) (*Report, error) {
	raw = stripFences(raw)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(reportSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("report: validate json: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("report: schema violations: %s", strings.Join(msgs, "; "))
	}

	var r Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("report: decode json: %w", err)
	}
	if err := validate.Struct(&r); err != nil {
		return nil, fmt.Errorf("report: invalid values: %w", err)
	}

	r.OverallScore = Overall(r.Scores)
	return &r, nil
}

// Overall computes the weighted score from the fixed competency weights.
func Overall(scores map[string]float64) float64 {
	var total float64
	for _, w := range panel.Weights {
		total += scores[w.Name] * w.Weight
	}
	return total
}

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
