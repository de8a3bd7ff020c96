package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAssessment(t *testing.T) {
	cases := map[string]string{
		"plain":              `{"statement":"s","confidenceLevel":40,"message":"m"}`,
		"fenced":             "```json\n{\"statement\":\"s\",\"confidenceLevel\":40,\"message\":\"m\"}\n```",
		"bare fence":         "```\n{\"statement\":\"s\",\"confidenceLevel\":40,\"message\":\"m\"}\n```",
		"prose wrapped":      "Here you go: {\"statement\":\"s\",\"confidenceLevel\":40,\"message\":\"m\"} hope it helps",
		"trailing brace":     "{\"statement\":\"s\",\"confidenceLevel\":40,\"message\":\"m\"}\n\nSources: see {1}",
		"leading brace":      "Result {as requested}: {\"statement\":\"s\",\"confidenceLevel\":40,\"message\":\"m\"}",
		"empty object first": "Template {} filled: {\"statement\":\"s\",\"confidenceLevel\":40,\"message\":\"m\"}",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := DecodeAssessment(in)
			require.NoError(t, err)
			assert.Equal(t, "s", res.Statement)
			assert.Equal(t, 40, res.ConfidenceLevel)
			assert.Equal(t, "m", res.Message)
		})
	}
}

func TestDecodeAssessmentRejects(t *testing.T) {
	cases := map[string]string{
		"empty":              ``,
		"no object":          `I could not find anything.`,
		"missing statement":  `{"confidenceLevel":40,"message":"m"}`,
		"missing confidence": `{"statement":"s","message":"m"}`,
		"missing message":    `{"statement":"s","confidenceLevel":40}`,
		"too high":           `{"statement":"s","confidenceLevel":101,"message":"m"}`,
		"negative":           `{"statement":"s","confidenceLevel":-1,"message":"m"}`,
		"wrong type":         `{"statement":"s","confidenceLevel":"high","message":"m"}`,
		"broken":             `{"statement":"s",`,
		"only prose braces":  `see {1} and {as noted}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeAssessment(in)
			assert.ErrorIs(t, err, ErrSchemaValidation)
		})
	}
}

func TestDecodeVerdict(t *testing.T) {
	v, err := decodeVerdict([]byte(`{"match":false,"message":"no cat"}`))
	require.NoError(t, err)
	assert.False(t, v.Match)
	assert.Equal(t, "no cat", v.Message)

	_, err = decodeVerdict([]byte(`{"message":"x"}`))
	assert.ErrorIs(t, err, ErrSchemaValidation)
}
