package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"artistpulse/internal/logging"
	"artistpulse/internal/metrics"
	"artistpulse/internal/model"
)

// FallbackConfidence is reported whenever an analysis cannot be answered.
// It reads as "unknown" rather than an outright no.
const FallbackConfidence = 30

// Kind names one of the AI questions asked about an artist.
type Kind string

const (
	VisualConsistency   Kind = "visual_consistency"
	LanguageConsistency Kind = "language_consistency"
	LivePerformances    Kind = "live_performances"
	Merchandise         Kind = "merchandise"
	SEO                 Kind = "seo"
	StreamingPresence   Kind = "streaming_presence"
)

// Kinds lists every analysis in report order.
var Kinds = []Kind{VisualConsistency, LanguageConsistency, SEO, LivePerformances, StreamingPresence, Merchandise}

// Assessor is the slice of the AI client the analyses use.
type Assessor interface {
	AssessImages(ctx context.Context, statement string, imageURLs []string) (model.AnalysisResult, error)
	AssessTexts(ctx context.Context, statement string, texts []string) (model.AnalysisResult, error)
	WebSearch(ctx context.Context, prompt string) (model.AnalysisResult, error)
}

type capability int

const (
	images capability = iota
	texts
	search
)

type question struct {
	cap    capability
	prompt func(r Request) string
}

var questions = map[Kind]question{
	VisualConsistency: {images, func(Request) string {
		return "The images provided share a consistent visual style, defined by a similar color scheme (including saturation and contrast), " +
			"shape and composition (such as framing and geometric characteristics), and format type (photo, illustration, or graphic)."
	}},
	LanguageConsistency: {texts, func(Request) string {
		return "The language used in the social posts is consistent, characterized by a similar tone (e.g., formal, casual, humorous), " +
			"vocabulary style (e.g., technical, conversational, slang), and sentence structure (e.g., short and punchy or long and descriptive)."
	}},
	LivePerformances: {search, func(r Request) string {
		return fmt.Sprintf("Find upcoming live performances or past events for the artist %s. Check sources such as their official website, "+
			"Spotify page, Resident Advisor profile, or other reliable event listing platforms.", r.ArtistName)
	}},
	Merchandise: {search, func(r Request) string {
		return fmt.Sprintf("Find merchandise that might be for sale for %s. Check sources such as their official website, Spotify page, "+
			"Bandcamp, or other reliable merchandise platforms for musicians.", r.ArtistName)
	}},
	SEO: {search, func(r Request) string {
		return fmt.Sprintf("It is possible to locate the instagram page %s via google by searching for %s.", r.ProfileURL, r.ArtistName)
	}},
	StreamingPresence: {search, func(r Request) string {
		return fmt.Sprintf("The Musician %s with an instagram url of %s is on Spotify (profiles available publicly to search via "+
			"https://open.spotify.com/search/XX/artists) and there are linked social platforms.", r.ArtistName, r.ProfileURL)
	}},
}

// Request carries the inputs a Kind may draw on. Unused fields are ignored.
type Request struct {
	Kind       Kind
	ArtistName string
	ProfileURL string
	Images     []string
	Texts      []string
}

// Service asks the AI questions and absorbs their failures.
type Service struct {
	ai  Assessor
	log logging.Logger
}

func New(ai Assessor, log logging.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{ai: ai, log: log}
}

// Prompt renders the statement sent for r, or "" for an unknown kind.
func Prompt(r Request) string {
	q, ok := questions[r.Kind]
	if !ok {
		return ""
	}
	return strings.TrimSpace(q.prompt(r))
}

// Analyze runs one analysis. It never fails: any error yields
// {confidenceLevel: FallbackConfidence}.
func (s *Service) Analyze(ctx context.Context, r Request) model.AnalysisResult {
	start := time.Now()
	kind := string(r.Kind)
	defer metrics.ObserveAI(kind, start)

	res, err := s.ask(ctx, r)
	entry := s.log.WithFields(logging.Fields{"kind": kind, "duration_ms": time.Since(start).Milliseconds()})
	if err != nil {
		metrics.IncAIFallback(kind)
		entry.WithError(err).Warn("analysis failed, using fallback confidence")
		return model.AnalysisResult{ConfidenceLevel: FallbackConfidence}
	}
	entry.WithField("confidence", res.ConfidenceLevel).Debug("analysis done")
	return res
}

func (s *Service) ask(ctx context.Context, r Request) (model.AnalysisResult, error) {
	q, ok := questions[r.Kind]
	if !ok {
		return model.AnalysisResult{}, fmt.Errorf("unknown analysis kind %q", r.Kind)
	}
	prompt := Prompt(r)
	switch q.cap {
	case images:
		if len(r.Images) == 0 {
			return model.AnalysisResult{}, errors.New("no images to assess")
		}
		return s.ai.AssessImages(ctx, prompt, r.Images)
	case texts:
		if len(r.Texts) == 0 {
			return model.AnalysisResult{}, errors.New("no posts to assess")
		}
		return s.ai.AssessTexts(ctx, prompt, r.Texts)
	default:
		return s.ai.WebSearch(ctx, prompt)
	}
}
