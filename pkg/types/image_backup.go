package types

import (
	"encoding/json"
	"fmt"
)

type ImageSource string

const (
	IMAGE_SOURCE_FILE_ID ImageSource = "file_id"
	IMAGE_SOURCE_URL     ImageSource = "url"
)

// ImageBackup is the tagged union a publication dialog keeps so the user
// can reject a regenerated image and get the previous one back byte for
// byte. Index is set only for url-sourced images picked from a generated
// batch.
type ImageBackup struct {
	Type  ImageSource `json:"type"`
	Value string      `json:"value"`
	Index *int        `json:"index,omitempty"`
}

func FileIDBackup(fileID string) ImageBackup {
	return ImageBackup{Type: IMAGE_SOURCE_FILE_ID, Value: fileID}
}

func URLBackup(url string, index int) ImageBackup {
	return ImageBackup{Type: IMAGE_SOURCE_URL, Value: url, Index: &index}
}

func (b ImageBackup) Empty() bool {
	return b.Value == ""
}

func (b *ImageBackup) UnmarshalJSON(raw []byte) error {
	type alias ImageBackup
	var a alias
	if err := json.Unmarshal(raw, &a); err != nil {
		return err
	}
	switch a.Type {
	case IMAGE_SOURCE_FILE_ID, IMAGE_SOURCE_URL, "":
	default:
		return fmt.Errorf("unknown image source %q", a.Type)
	}
	*b = ImageBackup(a)
	return nil
}
