package types

type Organization struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	About     string `json:"about"`
	Tone      string `json:"tone"`
	Audience  string `json:"audience"`
	Balance   int64  `json:"balance"`
	CreatedAt int64  `json:"created_at"`
}

// OrganizationData is the payload an LLM brief turn may emit once the
// interview has collected enough facts to update the organization.
type OrganizationData struct {
	Name     *string `json:"name,omitempty"`
	About    *string `json:"about,omitempty"`
	Tone     *string `json:"tone,omitempty"`
	Audience *string `json:"audience,omitempty"`
}

func (d OrganizationData) Empty() bool {
	return d.Name == nil && d.About == nil && d.Tone == nil && d.Audience == nil
}
