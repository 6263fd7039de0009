package types

type SocialNetwork struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	Kind           string `json:"kind"`
	Name           string `json:"name"`
	Connected      bool   `json:"connected"`
}

// Widget ids used by the network-select window. The selected set is keyed
// by these ids inside dialog data.
const (
	SOCIAL_NETWORK_TELEGRAM  = "telegram_checkbox"
	SOCIAL_NETWORK_VKONTAKTE = "vkontakte_checkbox"
)
