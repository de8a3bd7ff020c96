package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"artistpulse/internal/analysis"
	"artistpulse/internal/analytics"
	"artistpulse/internal/logging"
	"artistpulse/internal/metrics"
	"artistpulse/internal/model"
	"artistpulse/internal/social"
	"artistpulse/internal/warehouse"
)

const (
	maxConsistencyImages = 5
	maxConsistencyPosts  = 10
)

// Social is the part of the social service the aggregator needs.
type Social interface {
	ResolveUser(ctx context.Context, externalID string) (model.SocialUser, error)
	ListProfiles(ctx context.Context, socialUserID string) ([]model.SocialProfile, error)
	ListContent(ctx context.Context, accountID string) ([]model.ContentItem, error)
	RequestHistoricRefresh(ctx context.Context, accountID string, from, to time.Time) error
	FilterByRecency(days int, items []model.ContentItem) []model.ContentItem
}

// Analyzer answers one AI question; it never fails.
type Analyzer interface {
	Analyze(ctx context.Context, r analysis.Request) model.AnalysisResult
}

// Aggregator builds reports from the warehouse, the social provider and the analyses.
type Aggregator struct {
	warehouse warehouse.Lookup
	social    Social
	analyzer  Analyzer
	log       logging.Logger

	now               func() time.Time
	preferredPlatform string
	refreshHistoric   bool
}

type Option func(*Aggregator)

// WithClock sets the clock used for the historic refresh range.
func WithClock(now func() time.Time) Option { return func(a *Aggregator) { a.now = now } }

// WithPreferredPlatform picks the profile on the named platform when present.
func WithPreferredPlatform(name string) Option {
	return func(a *Aggregator) { a.preferredPlatform = name }
}

// WithHistoricRefresh asks the provider to refresh a year of content before listing it.
func WithHistoricRefresh(on bool) Option { return func(a *Aggregator) { a.refreshHistoric = on } }

func New(wh warehouse.Lookup, soc Social, an Analyzer, log logging.Logger, opts ...Option) *Aggregator {
	if log == nil {
		log = logging.Discard()
	}
	a := &Aggregator{warehouse: wh, social: soc, analyzer: an, log: log, now: time.Now}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Build assembles the report for userID. Warehouse and social errors are
// returned as-is; analysis failures only lower the affected confidences.
func (a *Aggregator) Build(ctx context.Context, userID string) (rep Report, err error) {
	start := time.Now()
	defer func() { metrics.ObserveReport(start, err) }()

	rec, hasRec, err := a.warehouse.Get(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("warehouse lookup: %w", err)
	}
	user, err := a.social.ResolveUser(ctx, userID)
	if err != nil {
		return Report{}, err
	}
	profiles, err := a.social.ListProfiles(ctx, user.ID)
	if err != nil {
		return Report{}, err
	}
	profile, err := social.SelectProfile(profiles, a.preferredPlatform)
	if err != nil {
		return Report{}, fmt.Errorf("select profile for %s: %w", userID, err)
	}
	if a.refreshHistoric {
		to := a.now()
		if rerr := a.social.RequestHistoricRefresh(ctx, profile.Account.ID, to.AddDate(-1, 0, 0), to); rerr != nil {
			a.log.WithError(rerr).WithField("account_id", profile.Account.ID).Warn("historic refresh failed")
		}
	}
	all, err := a.social.ListContent(ctx, profile.Account.ID)
	if err != nil {
		return Report{}, err
	}
	last7 := a.social.FilterByRecency(7, all)
	last30 := a.social.FilterByRecency(30, all)

	ai := a.analyze(ctx, profile, all)

	rep = merge(profile, analytics.Summarize(last7), analytics.Summarize(last30), analytics.Summarize(all), ai)
	if hasRec {
		role, releases, income := rec.Role, rec.IngestedReleaseCount, rec.IncomeLastYear
		rep.Role, rep.NumberOfLiveReleases, rep.IncomeLast12Months = &role, &releases, &income
	}
	a.log.WithFields(logging.Fields{
		"user_id":     userID,
		"account_id":  profile.Account.ID,
		"items":       len(all),
		"has_record":  hasRec,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("report built")
	return rep, nil
}

// analyze runs every analysis concurrently and returns results keyed by kind.
func (a *Aggregator) analyze(ctx context.Context, p model.SocialProfile, all []model.ContentItem) map[analysis.Kind]model.AnalysisResult {
	images := analytics.ImageURLs(all, maxConsistencyImages)
	texts := analytics.Descriptions(all, maxConsistencyPosts)

	results := make([]model.AnalysisResult, len(analysis.Kinds))
	var g errgroup.Group
	g.SetLimit(len(analysis.Kinds))
	for i, kind := range analysis.Kinds {
		g.Go(func() error {
			results[i] = a.analyzer.Analyze(ctx, analysis.Request{
				Kind:       kind,
				ArtistName: p.FullName,
				ProfileURL: p.URL,
				Images:     images,
				Texts:      texts,
			})
			return nil
		})
	}
	g.Wait()

	out := make(map[analysis.Kind]model.AnalysisResult, len(results))
	for i, kind := range analysis.Kinds {
		out[kind] = results[i]
	}
	return out
}

func merge(p model.SocialProfile, w7, w30, all analytics.Stats, ai map[analysis.Kind]model.AnalysisResult) Report {
	r := Report{
		IsVerified: p.IsVerified,
		HasWebsite: p.Website != "",
		Gender:     p.Gender,
		Country:    p.Country,
		FullName:   p.FullName,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		NickName:   p.NickName,

		NumberOfFollowers:   p.Reputation.FollowerCount,
		NumberOfFollowing:   p.Reputation.FollowingCount,
		NumberOfConnections: p.Reputation.ConnectionCount,

		NumberOfPostsLast7Days:  w7.Posts,
		NumberOfPostsLast30Days: w30.Posts,
		NumberOfPostsAllTime:    all.Posts,

		NumberOfCommentsLast7Days:  w7.Comments,
		NumberOfCommentsLast30Days: w30.Comments,
		NumberOfCommentsAllTime:    all.Comments,
		NumberOfCommentsAverage:    all.CommentsAverage,

		NumberOfLikesLast7Days:  w7.Likes,
		NumberOfLikesLast30Days: w30.Likes,
		NumberOfLikesAllTime:    all.Likes,
		NumberOfLikesAverage:    all.LikesAverage,

		NumberOfTagsLast7Days:  w7.Tags,
		NumberOfTagsLast30Days: w30.Tags,
		NumberOfTagsAllTime:    all.Tags,
		NumberOfTagsAverage:    all.TagsAverage,

		NumberOfPostsImagesLast7Days:  w7.Images,
		NumberOfPostsImagesLast30Days: w30.Images,
		NumberOfPostsImagesAllTime:    all.Images,

		NumberOfPostsVideosLast7Days:  w7.Videos,
		NumberOfPostsVideosLast30Days: w30.Videos,
		NumberOfPostsVideosLastTime:   all.Videos,

		NumberOfPostsReelsLast7Days:  w7.Reels,
		NumberOfPostsReelsLast30Days: w30.Reels,
		NumberOfPostsReelsLastTime:   all.Reels,
	}
	if len(p.Addresses) > 0 {
		r.Location = p.Addresses[0].Address
	}

	r.AIConsistentPostingColorSchemeConfidence = ai[analysis.VisualConsistency].ConfidenceLevel
	r.AIConsistentPostingColorSchemeReason = ai[analysis.VisualConsistency].Message
	r.AIConsistentPostingLanguageConfidence = ai[analysis.LanguageConsistency].ConfidenceLevel
	r.AIConsistentPostingLanguageReason = ai[analysis.LanguageConsistency].Message
	r.AILivePerformancesPublishedConfidence = ai[analysis.LivePerformances].ConfidenceLevel
	r.AILivePerformancesPublishedReason = ai[analysis.LivePerformances].Message
	r.AISeoGoodConfidence = ai[analysis.SEO].ConfidenceLevel
	r.AISeoGoodReason = ai[analysis.SEO].Message
	r.AIMerchAvailableConfidence = ai[analysis.Merchandise].ConfidenceLevel
	r.AIMerchAvailableReason = ai[analysis.Merchandise].Message
	r.AISpotifyForArtistsClaimedConfidence = ai[analysis.StreamingPresence].ConfidenceLevel
	r.AISpotifyForArtistsClaimedReason = ai[analysis.StreamingPresence].Message
	return r
}
