package social

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistpulse/internal/model"
)

// fakeAPI answers by path prefix with canned JSON.
type fakeAPI struct {
	responses map[string]string
	err       error
	gets      []string
	posts     []string
}

func (f *fakeAPI) Get(ctx context.Context, path string, out any) error {
	f.gets = append(f.gets, path)
	if f.err != nil {
		return f.err
	}
	for prefix, body := range f.responses {
		if strings.HasPrefix(path, prefix) {
			return json.Unmarshal([]byte(body), out)
		}
	}
	return &TransportError{Method: "GET", Path: path, StatusCode: 404}
}

func (f *fakeAPI) Post(ctx context.Context, path string, body, out any) error {
	f.posts = append(f.posts, path)
	return f.err
}

func TestResolveUserAndListing(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"/users/external_id/abc": `{"id":"u-1"}`,
		"/profiles":              `{"data":[{"id":"p-1","full_name":"Jane","account":{"id":"acc-1"}}]}`,
		"/social/contents":       `{"data":[{"id":"c1","format":"IMAGE","published_at":"2026-10-01T10:00:00.000000"}]}`,
	}}
	svc := NewService(api, WithContentLimit(50))
	ctx := context.Background()

	u, err := svc.ResolveUser(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)

	profiles, err := svc.ListProfiles(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "acc-1", profiles[0].Account.ID)

	items, err := svc.ListContent(ctx, "acc-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC), items[0].PublishedAt.Time)

	u2, err := url.Parse(api.gets[2])
	require.NoError(t, err)
	assert.Equal(t, "acc-1", u2.Query().Get("account_id"))
	assert.Equal(t, "50", u2.Query().Get("limit"))
}

func TestResolveUserEmptyIDIsNotFound(t *testing.T) {
	svc := NewService(&fakeAPI{responses: map[string]string{"/users/": `{}`}})
	_, err := svc.ResolveUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransportErrorPropagates(t *testing.T) {
	svc := NewService(&fakeAPI{err: &TransportError{StatusCode: 503}})
	_, err := svc.ListProfiles(context.Background(), "u-1")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 503, te.StatusCode)
}

func TestRequestHistoricRefreshPosts(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api)
	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.RequestHistoricRefresh(context.Background(), "acc-1", now.AddDate(0, 0, -30), now))
	assert.Equal(t, []string{"/social/contents/fetch-historic"}, api.posts)
}

func item(id string, ts time.Time) model.ContentItem {
	return model.ContentItem{ID: id, PublishedAt: model.Timestamp{Time: ts}}
}

func TestFilterByRecency(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	svc := NewService(&fakeAPI{}, WithClock(func() time.Time { return now }))
	items := []model.ContentItem{
		item("old", now.AddDate(0, 0, -8)),
		item("edge", now.AddDate(0, 0, -7)),
		item("new", now.Add(-time.Hour)),
		item("missing", time.Time{}),
		item("justout", now.AddDate(0, 0, -7).Add(-time.Nanosecond)),
	}

	got := svc.FilterByRecency(7, items)
	ids := make([]string, 0, len(got))
	for _, it := range got {
		ids = append(ids, it.ID)
		assert.False(t, it.PublishedAt.Before(now.AddDate(0, 0, -7)))
	}
	assert.Equal(t, []string{"edge", "new"}, ids)

	again := svc.FilterByRecency(7, got)
	assert.Equal(t, got, again, "filter must be idempotent")
	assert.Len(t, items, 5, "input untouched")
}

func TestFilterByRecencyEmpty(t *testing.T) {
	svc := NewService(&fakeAPI{})
	assert.Empty(t, svc.FilterByRecency(30, nil))
}

func TestSelectProfile(t *testing.T) {
	var ig, yt model.SocialProfile
	ig.ID, ig.WorkPlatform.Name = "ig", "Instagram"
	yt.ID, yt.WorkPlatform.Name = "yt", "YouTube"

	p, err := SelectProfile([]model.SocialProfile{yt, ig}, "instagram")
	require.NoError(t, err)
	assert.Equal(t, "ig", p.ID)

	p, err = SelectProfile([]model.SocialProfile{yt, ig}, "")
	require.NoError(t, err)
	assert.Equal(t, "yt", p.ID)

	p, err = SelectProfile([]model.SocialProfile{yt}, "TikTok")
	require.NoError(t, err)
	assert.Equal(t, "yt", p.ID)

	_, err = SelectProfile(nil, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
