// Package vendascore is the headless core of the sales screen: catalog
// snapshot, draft order builder and the gateway to the remote backend.
// A presentation layer owns rendering and confirmation prompts; this
// package owns state and the wire contract.
package vendascore

import (
	"context"

	"github.com/armazemdigital/vendas-core.git/internal/alert"
	"github.com/armazemdigital/vendas-core.git/internal/api"
	"github.com/armazemdigital/vendas-core.git/internal/catalog"
	"github.com/armazemdigital/vendas-core.git/internal/config"
	"github.com/armazemdigital/vendas-core.git/internal/gateway"
	"github.com/armazemdigital/vendas-core.git/internal/sale"
	"github.com/armazemdigital/vendas-core.git/internal/session"
)

// Screen bundles the wired components behind one sales screen.
type Screen struct {
	Session *session.Session
	Cache   *catalog.Cache
	Builder *sale.Builder
	Gateway *gateway.Gateway
	Alerts  *alert.Notifier
}

// NewScreen wires a screen from config and an established session. The
// session is the only credential source; nothing reads ambient storage.
func NewScreen(cfg config.Config, sess *session.Session) *Screen {
	client := api.New(cfg.APIBaseURL, sess, cfg.HTTPTimeout)
	cache := catalog.NewCache(client)
	alerts := alert.New(cfg.AlertTTL)
	return &Screen{
		Session: sess,
		Cache:   cache,
		Builder: sale.NewBuilder(cache),
		Gateway: &gateway.Gateway{Remote: client, Cache: cache, Alerts: alerts},
		Alerts:  alerts,
	}
}

// Mount loads the initial data: customers, products and history,
// fetched concurrently. Partial failures are tolerated; call again to
// retry.
func (s *Screen) Mount(ctx context.Context) {
	s.Cache.Refresh(ctx)
}
