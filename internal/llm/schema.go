package llm

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"artistpulse/internal/model"
)

var verdictSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"match":   map[string]any{"type": "boolean"},
		"message": map[string]any{"type": "string"},
	},
	"required":             []string{"match", "message"},
	"additionalProperties": false,
}

var assessmentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"statement":       map[string]any{"type": "string"},
		"confidenceLevel": map[string]any{"type": "number"},
		"message":         map[string]any{"type": "string"},
	},
	"required":             []string{"statement", "confidenceLevel", "message"},
	"additionalProperties": false,
}

// assessmentFormat is appended to web-search prompts, which cannot carry a schema.
const assessmentFormat = `Respond with only a JSON object, no prose and no code fences, shaped exactly as:
{"statement": string, "confidenceLevel": number between 0 and 100, "message": string}
where statement repeats the claim, confidenceLevel is how certain you are that it is true and message briefly explains the evidence.`

func decodeVerdict(data []byte) (model.ImageVerdict, error) {
	var w struct {
		Match   *bool   `json:"match"`
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return model.ImageVerdict{}, fmt.Errorf("verdict: %v: %w", err, ErrSchemaValidation)
	}
	if w.Match == nil || w.Message == nil {
		return model.ImageVerdict{}, fmt.Errorf("verdict: missing match or message: %w", ErrSchemaValidation)
	}
	return model.ImageVerdict{Match: *w.Match, Message: *w.Message}, nil
}

// DecodeAssessment parses free text that should hold a
// {statement, confidenceLevel, message} object. Surrounding prose and
// markdown code fences are tolerated: each '{' is tried in turn and the first
// valid object wins, ignoring whatever follows it. Anything else is
// ErrSchemaValidation.
func DecodeAssessment(text string) (model.AnalysisResult, error) {
	var firstErr error
	for i := strings.IndexByte(text, '{'); i >= 0; {
		res, err := decodeAssessmentAt(text[i:])
		if err == nil {
			return res, nil
		}
		if firstErr == nil {
			firstErr = err
		}
		next := strings.IndexByte(text[i+1:], '{')
		if next < 0 {
			break
		}
		i += next + 1
	}
	if firstErr == nil {
		return model.AnalysisResult{}, fmt.Errorf("assessment: no JSON object in answer: %w", ErrSchemaValidation)
	}
	return model.AnalysisResult{}, firstErr
}

// decodeAssessmentAt decodes the JSON object at the start of s.
func decodeAssessmentAt(s string) (model.AnalysisResult, error) {
	var w struct {
		Statement       *string  `json:"statement"`
		ConfidenceLevel *float64 `json:"confidenceLevel"`
		Message         *string  `json:"message"`
	}
	if err := json.NewDecoder(strings.NewReader(s)).Decode(&w); err != nil {
		return model.AnalysisResult{}, fmt.Errorf("assessment: %v: %w", err, ErrSchemaValidation)
	}
	switch {
	case w.Statement == nil:
		return model.AnalysisResult{}, fmt.Errorf("assessment: missing statement: %w", ErrSchemaValidation)
	case w.ConfidenceLevel == nil:
		return model.AnalysisResult{}, fmt.Errorf("assessment: missing confidenceLevel: %w", ErrSchemaValidation)
	case w.Message == nil:
		return model.AnalysisResult{}, fmt.Errorf("assessment: missing message: %w", ErrSchemaValidation)
	}
	cl := *w.ConfidenceLevel
	if math.IsNaN(cl) || cl < 0 || cl > 100 {
		return model.AnalysisResult{}, fmt.Errorf("assessment: confidenceLevel %v out of range: %w", cl, ErrSchemaValidation)
	}
	return model.AnalysisResult{
		Statement:       *w.Statement,
		ConfidenceLevel: int(math.Round(cl)),
		Message:         *w.Message,
	}, nil
}
