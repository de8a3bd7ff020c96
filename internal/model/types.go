package model

// BusinessRecord is the warehouse view of a user.
type BusinessRecord struct {
	UserID               string  `json:"user_id"`
	Role                 string  `json:"user_role"`
	IngestedReleaseCount int     `json:"ingested_releases"`
	IncomeLastYear       float64 `json:"income_2024"`
}

// SocialUser is the social provider's user resolved from our external id.
type SocialUser struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

// SocialProfile represents one connected social account.
type SocialProfile struct {
	ID               string     `json:"id"`
	PlatformUsername string     `json:"platform_username"`
	FullName         string     `json:"full_name"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	NickName         string     `json:"nick_name"`
	URL              string     `json:"url"`
	Introduction     string     `json:"introduction"`
	ImageURL         string     `json:"image_url"`
	Website          string     `json:"website"`
	Gender           string     `json:"gender"`
	Country          string     `json:"country"`
	Category         string     `json:"category"`
	IsVerified       bool       `json:"is_verified"`
	IsBusiness       bool       `json:"is_business"`
	Reputation       Reputation `json:"reputation"`
	Addresses        []Address  `json:"addresses"`
	Emails           []Email    `json:"emails"`
	Account          struct {
		ID               string `json:"id"`
		PlatformUsername string `json:"platform_username"`
		Username         string `json:"username"`
	} `json:"account"`
	WorkPlatform struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		LogoURL string `json:"logo_url"`
	} `json:"work_platform"`
}

type Reputation struct {
	FollowerCount   int `json:"follower_count"`
	FollowingCount  int `json:"following_count"`
	ConnectionCount int `json:"connection_count"`
	SubscriberCount int `json:"subscriber_count"`
	ContentCount    int `json:"content_count"`
}

type Address struct {
	Type    string `json:"type"` // WORK, HOME, OTHER
	Address string `json:"address"`
}

type Email struct {
	Type    string `json:"type"`
	EmailID string `json:"email_id"`
}

// Content formats.
const (
	FormatImage = "IMAGE"
	FormatVideo = "VIDEO"
	FormatAudio = "AUDIO"
	FormatText  = "TEXT"
	FormatOther = "OTHER"
)

// TypeReels is the platform content type counted as a reel.
const TypeReels = "REELS"

// ContentItem is one published post, video, story, etc.
type ContentItem struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Format       string     `json:"format"`
	Type         string     `json:"type"`
	URL          string     `json:"url"`
	MediaURL     string     `json:"media_url"`
	Description  string     `json:"description"`
	ThumbnailURL string     `json:"thumbnail_url"`
	PublishedAt  Timestamp  `json:"published_at"`
	Engagement   Engagement `json:"engagement"`
	ExternalID   string     `json:"external_id"`
	Hashtags     []string   `json:"hashtags"`
	Mentions     []string   `json:"mentions"`
}

type Engagement struct {
	LikeCount    int `json:"like_count"`
	DislikeCount int `json:"dislike_count"`
	CommentCount int `json:"comment_count"`
	ViewCount    int `json:"view_count"`
	ShareCount   int `json:"share_count"`
	SaveCount    int `json:"save_count"`
}

// AnalysisResult is the normalized output of an AI-backed analysis.
// ConfidenceLevel is 0-100.
type AnalysisResult struct {
	Statement       string `json:"statement,omitempty"`
	ConfidenceLevel int    `json:"confidenceLevel"`
	Message         string `json:"message,omitempty"`
}

// ImageVerdict answers whether an image satisfies a prompt.
type ImageVerdict struct {
	Match   bool   `json:"match"`
	Message string `json:"message"`
}
