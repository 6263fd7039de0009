package types

type Category struct {
	ID             int64    `json:"id"`
	OrganizationID int64    `json:"organization_id"`
	Name           string   `json:"name"`
	Prompt         string   `json:"prompt"`
	Tags           []string `json:"tags"`
	CreatedAt      int64    `json:"created_at"`
}

// CategoryData mirrors OrganizationData for the category brief loop.
type CategoryData struct {
	Name   *string  `json:"name,omitempty"`
	Prompt *string  `json:"prompt,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

func (d CategoryData) Empty() bool {
	return d.Name == nil && d.Prompt == nil && len(d.Tags) == 0
}
