package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistpulse/internal/logging"
	"artistpulse/internal/metrics"
	"artistpulse/internal/model"
)

type call struct {
	method    string
	statement string
	material  []string
}

type fakeAI struct {
	mu    sync.Mutex
	calls []call
	res   model.AnalysisResult
	err   error
}

func (f *fakeAI) record(method, statement string, material []string) (model.AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{method, statement, material})
	return f.res, f.err
}

func (f *fakeAI) AssessImages(_ context.Context, s string, urls []string) (model.AnalysisResult, error) {
	return f.record("images", s, urls)
}

func (f *fakeAI) AssessTexts(_ context.Context, s string, texts []string) (model.AnalysisResult, error) {
	return f.record("texts", s, texts)
}

func (f *fakeAI) WebSearch(_ context.Context, p string) (model.AnalysisResult, error) {
	return f.record("search", p, nil)
}

func TestAnalyzeRoutesByKind(t *testing.T) {
	cases := []struct {
		kind   Kind
		method string
		want   []string
	}{
		{VisualConsistency, "images", []string{"consistent visual style"}},
		{LanguageConsistency, "texts", []string{"language used in the social posts"}},
		{LivePerformances, "search", []string{"live performances", "DJ Test"}},
		{Merchandise, "search", []string{"merchandise", "DJ Test"}},
		{SEO, "search", []string{"https://instagram.com/djtest", "searching for DJ Test"}},
		{StreamingPresence, "search", []string{"The Musician DJ Test", "https://instagram.com/djtest", "Spotify"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			ai := &fakeAI{res: model.AnalysisResult{Statement: "s", ConfidenceLevel: 88, Message: "ok"}}
			svc := New(ai, logging.Discard())
			res := svc.Analyze(context.Background(), Request{
				Kind:       tc.kind,
				ArtistName: "DJ Test",
				ProfileURL: "https://instagram.com/djtest",
				Images:     []string{"https://cdn/1.jpg"},
				Texts:      []string{"hello"},
			})
			assert.Equal(t, 88, res.ConfidenceLevel)
			assert.Equal(t, "ok", res.Message)
			require.Len(t, ai.calls, 1)
			assert.Equal(t, tc.method, ai.calls[0].method)
			for _, w := range tc.want {
				assert.Contains(t, ai.calls[0].statement, w)
			}
		})
	}
}

func TestAnalyzePassesMaterial(t *testing.T) {
	ai := &fakeAI{}
	svc := New(ai, nil)
	svc.Analyze(context.Background(), Request{Kind: VisualConsistency, Images: []string{"a", "b"}})
	svc.Analyze(context.Background(), Request{Kind: LanguageConsistency, Texts: []string{"t1"}})
	require.Len(t, ai.calls, 2)
	assert.Equal(t, []string{"a", "b"}, ai.calls[0].material)
	assert.Equal(t, []string{"t1"}, ai.calls[1].material)
}

func TestAnalyzeFallsBackOnError(t *testing.T) {
	before := testutil.ToFloat64(metrics.AIFallbacks.WithLabelValues(string(Merchandise)))
	ai := &fakeAI{err: errors.New("boom")}
	res := New(ai, logging.Discard()).Analyze(context.Background(), Request{Kind: Merchandise, ArtistName: "X"})
	assert.Equal(t, model.AnalysisResult{ConfidenceLevel: FallbackConfidence}, res)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AIFallbacks.WithLabelValues(string(Merchandise))))
}

func TestAnalyzeUnknownKind(t *testing.T) {
	ai := &fakeAI{}
	res := New(ai, logging.Discard()).Analyze(context.Background(), Request{Kind: "horoscope"})
	assert.Equal(t, FallbackConfidence, res.ConfidenceLevel)
	assert.Empty(t, res.Message)
	assert.Empty(t, ai.calls)
}

func TestPrompt(t *testing.T) {
	assert.Empty(t, Prompt(Request{Kind: "nope"}))
	for _, k := range Kinds {
		assert.NotEmpty(t, Prompt(Request{Kind: k, ArtistName: "A", ProfileURL: "U"}), k)
	}
}

func TestAnalyzeWithoutMaterialSkipsAI(t *testing.T) {
	ai := &fakeAI{res: model.AnalysisResult{ConfidenceLevel: 99}}
	svc := New(ai, logging.Discard())
	assert.Equal(t, FallbackConfidence, svc.Analyze(context.Background(), Request{Kind: VisualConsistency}).ConfidenceLevel)
	assert.Equal(t, FallbackConfidence, svc.Analyze(context.Background(), Request{Kind: LanguageConsistency}).ConfidenceLevel)
	assert.Empty(t, ai.calls)
}
