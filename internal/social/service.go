package social

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"artistpulse/internal/model"
)

// DefaultContentLimit is the page size used when listing content.
const DefaultContentLimit = 100

// Service wraps the social API endpoints the report needs.
type Service struct {
	api   API
	limit int
	now   func() time.Time
}

type Option func(*Service)

// WithClock injects the clock used by FilterByRecency.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithContentLimit overrides the content page size.
func WithContentLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

func NewService(api API, opts ...Option) *Service {
	s := &Service{api: api, limit: DefaultContentLimit, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ResolveUser looks up the provider user registered under our external id.
func (s *Service) ResolveUser(ctx context.Context, externalID string) (model.SocialUser, error) {
	var out model.SocialUser
	if strings.TrimSpace(externalID) == "" {
		return out, errors.New("social: empty user id")
	}
	if err := s.api.Get(ctx, "/users/external_id/"+url.PathEscape(externalID), &out); err != nil {
		return out, fmt.Errorf("resolve user %s: %w", externalID, err)
	}
	if out.ID == "" {
		return out, fmt.Errorf("resolve user %s: %w", externalID, ErrNotFound)
	}
	return out, nil
}

// ListProfiles returns every profile linked to a provider user.
func (s *Service) ListProfiles(ctx context.Context, socialUserID string) ([]model.SocialProfile, error) {
	var raw struct {
		Data []model.SocialProfile `json:"data"`
	}
	q := url.Values{"user_id": {socialUserID}}
	if err := s.api.Get(ctx, "/profiles?"+q.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return raw.Data, nil
}

// ListContent fetches the first page of content items for an account.
func (s *Service) ListContent(ctx context.Context, accountID string) ([]model.ContentItem, error) {
	var raw struct {
		Data []model.ContentItem `json:"data"`
	}
	q := url.Values{"account_id": {accountID}, "limit": {fmt.Sprint(s.limit)}}
	if err := s.api.Get(ctx, "/social/contents?"+q.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return raw.Data, nil
}

// RequestHistoricRefresh asks the provider to re-fetch an account's content
// published in [from, to], which renews expired media URLs.
func (s *Service) RequestHistoricRefresh(ctx context.Context, accountID string, from, to time.Time) error {
	body := map[string]string{
		"account_id": accountID,
		"from_date":  from.UTC().Format("2006-01-02"),
		"to_date":    to.UTC().Format("2006-01-02"),
	}
	if err := s.api.Post(ctx, "/social/contents/fetch-historic", body, nil); err != nil {
		return fmt.Errorf("historic refresh: %w", err)
	}
	return nil
}

// FilterByRecency keeps items published on or after now minus days.
// The input is neither mutated nor reordered.
func (s *Service) FilterByRecency(days int, items []model.ContentItem) []model.ContentItem {
	return FilterSince(s.now().AddDate(0, 0, -days), items)
}

// FilterSince keeps items whose publish time is not before cutoff.
func FilterSince(cutoff time.Time, items []model.ContentItem) []model.ContentItem {
	out := make([]model.ContentItem, 0, len(items))
	for _, it := range items {
		if it.PublishedAt.IsZero() || it.PublishedAt.Before(cutoff) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// SelectProfile picks the first profile on the preferred platform, or the
// first profile when no preference is set or nothing matches.
func SelectProfile(profiles []model.SocialProfile, preferredPlatform string) (model.SocialProfile, error) {
	if len(profiles) == 0 {
		return model.SocialProfile{}, ErrNotFound
	}
	if preferredPlatform != "" {
		for _, p := range profiles {
			if strings.EqualFold(p.WorkPlatform.Name, preferredPlatform) {
				return p, nil
			}
		}
	}
	return profiles[0], nil
}
