package types

// CachedFile maps a content-addressable filename to the Telegram file id
// returned after the first upload. Write-once, read-many.
type CachedFile struct {
	ID        int64  `json:"id" db:"id"`
	Filename  string `json:"filename" db:"filename"`
	FileID    string `json:"file_id" db:"file_id"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}
