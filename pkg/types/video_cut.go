package types

type VideoCut struct {
	ID               string           `json:"id"`
	OrganizationID   int64            `json:"organization_id"`
	CreatorAccountID int64            `json:"creator_account_id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Tags             []string         `json:"tags"`
	YoutubeReference string           `json:"youtube_video_reference"`
	VideoURL         string           `json:"video_url"`
	VideoFileID      string           `json:"video_file_id"`
	ModerationStatus ModerationStatus `json:"moderation_status"`
	CreatedAt        int64            `json:"created_at"`
}

type UpdateVideoCut struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}
