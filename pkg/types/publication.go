package types

type ModerationStatus string

const (
	MODERATION_STATUS_DRAFT      ModerationStatus = "draft"
	MODERATION_STATUS_MODERATION ModerationStatus = "moderation"
	MODERATION_STATUS_APPROVED   ModerationStatus = "approved"
	MODERATION_STATUS_REJECTED   ModerationStatus = "rejected"
	MODERATION_STATUS_PUBLISHED  ModerationStatus = "published"
)

// Publication is owned by the publication service; the bot only carries
// it between windows.
type Publication struct {
	ID                string           `json:"id"`
	OrganizationID    int64            `json:"organization_id"`
	CategoryID        int64            `json:"category_id"`
	CreatorAccountID  int64            `json:"creator_account_id"`
	Title             string           `json:"title"`
	Text              string           `json:"text"`
	Tags              []string         `json:"tags"`
	ImageURL          string           `json:"image_url"`
	ImageFileID       string           `json:"image_file_id"`
	ModerationStatus  ModerationStatus `json:"moderation_status"`
	ModerationComment string           `json:"moderation_comment"`
	SocialNetworks    []string         `json:"social_networks"`
	CreatedAt         int64            `json:"created_at"`
}

type GeneratedPublication struct {
	Title string   `json:"title"`
	Text  string   `json:"text"`
	Tags  []string `json:"tags"`
}

// Soft caps on publication text; crossing one routes the dialog to the
// too-long alert window.
const (
	PUBLICATION_TEXT_LIMIT_WITH_IMAGE = 1024
	PUBLICATION_TEXT_LIMIT_PLAIN      = 4096
)
