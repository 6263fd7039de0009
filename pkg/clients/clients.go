package clients

import (
	"errors"
	"net/http"
	"time"
)

var errEmptyChoices = errors.New("empty choices in completion response")

// Config carries one base URL per collaborator service plus the shared
// inter-service secret.
type Config struct {
	InterserviceSecret string `toml:"interservice_secret"`

	ContentHost string `toml:"content_host"`
	AccountHost string `toml:"account_host"`
	AudioHost   string `toml:"audio_host"`
	LLMHost     string `toml:"llm_host"`
	LLMToken    string `toml:"llm_token"`
	LLMModel    string `toml:"llm_model"`

	// Generation calls run noticeably longer than plain GETs.
	RequestTimeout    time.Duration `toml:"request_timeout"`
	GenerationTimeout time.Duration `toml:"generation_timeout"`
}

func (c *Config) FromENVDefaults() {
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.GenerationTimeout == 0 {
		c.GenerationTimeout = 120 * time.Second
	}
}

// Set bundles every typed facade the dialogs reach for.
type Set struct {
	Organization  *OrganizationClient
	Employee      *EmployeeClient
	Publication   *PublicationClient
	Category      *CategoryClient
	VideoCut      *VideoCutClient
	SocialNetwork *SocialNetworkClient
	Audio         *AudioClient
	Account       *AccountClient
	Auth          *AuthClient
	LLM           *LLMClient

	GenerationTimeout time.Duration
}

func NewSet(cfg Config) *Set {
	cfg.FromENVDefaults()

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	// Generation endpoints get their own pool so a burst of slow calls
	// cannot starve quick lookups.
	generationClient := &http.Client{Timeout: cfg.GenerationTimeout}

	content := New(httpClient, cfg.ContentHost, cfg.InterserviceSecret)
	generation := New(generationClient, cfg.ContentHost, cfg.InterserviceSecret)
	account := New(httpClient, cfg.AccountHost, cfg.InterserviceSecret)
	audio := New(generationClient, cfg.AudioHost, cfg.InterserviceSecret)

	set := &Set{
		Organization:  NewOrganizationClient(content),
		Employee:      NewEmployeeClient(content),
		Category:      NewCategoryClient(content),
		SocialNetwork: NewSocialNetworkClient(content),
		Audio:         NewAudioClient(audio),
		Account:       NewAccountClient(account),
		Auth:          NewAuthClient(account),
		LLM:           NewLLMClient(cfg.LLMToken, cfg.LLMHost, cfg.LLMModel),

		GenerationTimeout: cfg.GenerationTimeout,
	}
	set.Publication = NewPublicationClient(generation)
	set.VideoCut = NewVideoCutClient(generation)
	return set
}
