package types

// Alerts are out-of-band notifications queued by inter-service callbacks
// and drained on the next interactive update for the chat. Each variant
// has its own table; StateID references the owning UserState row.

type VizardVideoCutAlert struct {
	ID               int64  `json:"id" db:"id"`
	StateID          int64  `json:"state_id" db:"state_id"`
	YoutubeReference string `json:"youtube_video_reference" db:"youtube_video_reference"`
	VideoCount       int    `json:"video_count" db:"video_count"`
	CreatedAt        int64  `json:"created_at" db:"created_at"`
}

type PublicationApprovedAlert struct {
	ID            int64  `json:"id" db:"id"`
	StateID       int64  `json:"state_id" db:"state_id"`
	PublicationID string `json:"publication_id" db:"publication_id"`
	CreatedAt     int64  `json:"created_at" db:"created_at"`
}

type PublicationRejectedAlert struct {
	ID            int64  `json:"id" db:"id"`
	StateID       int64  `json:"state_id" db:"state_id"`
	PublicationID string `json:"publication_id" db:"publication_id"`
	CreatedAt     int64  `json:"created_at" db:"created_at"`
}
