package types

type Account struct {
	ID        int64 `json:"id"`
	CreatedAt int64 `json:"created_at"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthCheckResult struct {
	AccountID int64 `json:"account_id"`
	Valid     bool  `json:"valid"`
}

type Transcription struct {
	Text string `json:"text"`
}
