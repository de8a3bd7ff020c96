package analytics

import (
	"artistpulse/internal/model"
	"artistpulse/internal/util"
)

// Stats aggregates one recency window of content items.
type Stats struct {
	Posts    int
	Comments int
	Likes    int
	Tags     int
	Images   int
	Videos   int
	Reels    int

	CommentsAverage float64
	LikesAverage    float64
	TagsAverage     float64
}

// Summarize computes the counts and per-item averages of items.
// Averages over an empty window are 0.
func Summarize(items []model.ContentItem) Stats {
	s := Stats{Posts: len(items)}
	for _, it := range items {
		s.Comments += it.Engagement.CommentCount
		s.Likes += it.Engagement.LikeCount
		s.Tags += len(it.Mentions)
		if it.Format == model.FormatImage {
			s.Images++
		}
		if it.Format == model.FormatVideo {
			s.Videos++
		}
		if it.Type == model.TypeReels {
			s.Reels++
		}
	}
	s.CommentsAverage = Mean(s.Comments, s.Posts)
	s.LikesAverage = Mean(s.Likes, s.Posts)
	s.TagsAverage = Mean(s.Tags, s.Posts)
	return s
}

// Mean returns sum/n, or 0 when n is 0.
func Mean(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// ImageURLs returns up to limit media URLs of IMAGE items, in order.
func ImageURLs(items []model.ContentItem, limit int) []string {
	out := make([]string, 0, limit)
	for _, it := range items {
		if len(out) == limit {
			break
		}
		if it.Format == model.FormatImage && it.MediaURL != "" {
			out = append(out, it.MediaURL)
		}
	}
	return out
}

// Descriptions returns the non-empty descriptions among the first limit items.
func Descriptions(items []model.ContentItem, limit int) []string {
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Description)
	}
	return util.NonEmpty(out)
}
