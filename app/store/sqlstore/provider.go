package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/postiq-ai/postiq-bot/app/store"
	"github.com/postiq-ai/postiq-bot/pkg/register"
	"github.com/postiq-ai/postiq-bot/pkg/sqlstore"
)

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

var provider = &Provider{
	stores: &Stores{},
}

func GetProvider() *Provider {
	return provider
}

type Provider struct {
	*sqlstore.SqlProvider
	stores *Stores
}

type Stores struct {
	store.UserStateStore
	store.CachedFileStore
	store.VizardVideoCutAlertStore
	store.PublicationApprovedAlertStore
	store.PublicationRejectedAlertStore
	store.LLMChatStore
	store.LLMMessageStore
}

type RegisterKey struct{}

func MustSetup(m sqlstore.ConnectConfig, s ...sqlstore.ConnectConfig) func() *Provider {
	provider.SqlProvider = sqlstore.MustSetupProvider(m, s...)

	for _, f := range register.ResolveFuncHandlers[*Provider](RegisterKey{}) {
		f(provider)
	}

	return func() *Provider {
		return provider
	}
}

func (p *Provider) UserStateStore() store.UserStateStore   { return p.stores.UserStateStore }
func (p *Provider) CachedFileStore() store.CachedFileStore { return p.stores.CachedFileStore }
func (p *Provider) VizardVideoCutAlertStore() store.VizardVideoCutAlertStore {
	return p.stores.VizardVideoCutAlertStore
}
func (p *Provider) PublicationApprovedAlertStore() store.PublicationApprovedAlertStore {
	return p.stores.PublicationApprovedAlertStore
}
func (p *Provider) PublicationRejectedAlertStore() store.PublicationRejectedAlertStore {
	return p.stores.PublicationRejectedAlertStore
}
func (p *Provider) LLMChatStore() store.LLMChatStore       { return p.stores.LLMChatStore }
func (p *Provider) LLMMessageStore() store.LLMMessageStore { return p.stores.LLMMessageStore }

func (p *Provider) Transaction(ctx context.Context, next func(ctx context.Context) error) error {
	return p.SqlProvider.Transaction(ctx, next)
}
