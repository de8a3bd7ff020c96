package report

// Report is the merged artist analysis returned for one user.
// Warehouse-derived fields are nil when the user has no business record.
type Report struct {
	IsVerified bool   `json:"isVerified"`
	HasWebsite bool   `json:"hasWebsite"`
	Gender     string `json:"gender"`
	Country    string `json:"country"`
	Location   string `json:"location"`
	FullName   string `json:"fullName"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	NickName   string `json:"nickName"`

	NumberOfFollowers   int `json:"numberOfFollowers"`
	NumberOfFollowing   int `json:"numberOfFollowing"`
	NumberOfConnections int `json:"numberOfConnections"`

	NumberOfPostsLast7Days  int `json:"numberOfPostsLast7Days"`
	NumberOfPostsLast30Days int `json:"numberOfPostsLast30Days"`
	NumberOfPostsAllTime    int `json:"numberOfPostsAllTime"`

	NumberOfCommentsLast7Days  int     `json:"numberOfCommentsLast7Days"`
	NumberOfCommentsLast30Days int     `json:"numberOfCommentsLast30Days"`
	NumberOfCommentsAllTime    int     `json:"numberOfCommentsAllTime"`
	NumberOfCommentsAverage    float64 `json:"numberOfCommentsAverage"`

	NumberOfLikesLast7Days  int     `json:"numberOfLikesLast7Days"`
	NumberOfLikesLast30Days int     `json:"numberOfLikesLast30Days"`
	NumberOfLikesAllTime    int     `json:"numberOfLikesAllTime"`
	NumberOfLikesAverage    float64 `json:"numberOfLikesAverage"`

	NumberOfTagsLast7Days  int     `json:"numberOfTagsLast7Days"`
	NumberOfTagsLast30Days int     `json:"numberOfTagsLast30Days"`
	NumberOfTagsAllTime    int     `json:"numberOfTagsAllTime"`
	NumberOfTagsAverage    float64 `json:"numberOfTagsAverage"`

	NumberOfPostsImagesLast7Days  int `json:"numberOfPostsImagesLast7Days"`
	NumberOfPostsImagesLast30Days int `json:"numberOfPostsImagesLast30Days"`
	NumberOfPostsImagesAllTime    int `json:"numberOfPostsImagesAllTime"`

	// "LastTime" is the published field name for the all-time window.
	NumberOfPostsVideosLast7Days  int `json:"numberOfPostsVideosLast7Days"`
	NumberOfPostsVideosLast30Days int `json:"numberOfPostsVideosLast30Days"`
	NumberOfPostsVideosLastTime   int `json:"numberOfPostsVideosLastTime"`

	NumberOfPostsReelsLast7Days  int `json:"numberOfPostsReelsLast7Days"`
	NumberOfPostsReelsLast30Days int `json:"numberOfPostsReelsLast30Days"`
	NumberOfPostsReelsLastTime   int `json:"numberOfPostsReelsLastTime"`

	Role                 *string  `json:"role,omitempty"`
	NumberOfLiveReleases *int     `json:"numberOfLiveReleases,omitempty"`
	IncomeLast12Months   *float64 `json:"incomeLast12Months,omitempty"`

	AIConsistentPostingColorSchemeConfidence int    `json:"aiConsistentPostingColorSchemeConfidence"`
	AIConsistentPostingColorSchemeReason     string `json:"aiConsistentPostingColorSchemeReason,omitempty"`
	AIConsistentPostingLanguageConfidence    int    `json:"aiConsistentPostingLanguageConfidence"`
	AIConsistentPostingLanguageReason        string `json:"aiConsistentPostingLanguageReason,omitempty"`
	AILivePerformancesPublishedConfidence    int    `json:"aiLivePerformancesPublishedConfidence"`
	AILivePerformancesPublishedReason        string `json:"aiLivePerformancesPublishedReason,omitempty"`
	AISeoGoodConfidence                      int    `json:"aiSeoGoodConfidence"`
	AISeoGoodReason                          string `json:"aiSeoGoodReason,omitempty"`
	AIMerchAvailableConfidence               int    `json:"aiMerchAvailableConfidence"`
	AIMerchAvailableReason                   string `json:"aiMerchAvailableReason,omitempty"`
	AISpotifyForArtistsClaimedConfidence     int    `json:"aiSpotifyForArtistsClaimedConfidence"`
	AISpotifyForArtistsClaimedReason         string `json:"aiSpotifyForArtistsClaimedReason,omitempty"`
}
