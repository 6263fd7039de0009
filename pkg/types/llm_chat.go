package types

type LLMChat struct {
	ID        int64  `json:"id" db:"id"`
	TgChatID  int64  `json:"tg_chat_id" db:"tg_chat_id"`
	Purpose   string `json:"purpose" db:"purpose"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

type LLMMessage struct {
	ID        int64   `json:"id" db:"id"`
	ChatID    int64   `json:"chat_id" db:"chat_id"`
	Role      LLMRole `json:"role" db:"role"`
	Text      string  `json:"text" db:"text"`
	CreatedAt int64   `json:"created_at" db:"created_at"`
}

type LLMRole string

const (
	LLM_ROLE_USER      LLMRole = "user"
	LLM_ROLE_ASSISTANT LLMRole = "assistant"
)

const (
	LLM_CHAT_PURPOSE_ORGANIZATION = "organization_brief"
	LLM_CHAT_PURPOSE_CATEGORY     = "category_brief"
)
