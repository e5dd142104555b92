package gateway

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/armazemdigital/vendas-core.git/internal/alert"
	"github.com/armazemdigital/vendas-core.git/internal/api"
	"github.com/armazemdigital/vendas-core.git/internal/sale"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "gateway").Logger()

// Fallback messages when the server gives us nothing usable.
const (
	msgSaveFailed   = "Erro ao salvar venda"
	msgDeleteFailed = "Erro ao excluir"
	msgConnectivity = "Erro de conexão"
)

// Remote is the slice of the backend the gateway writes to.
type Remote interface {
	CreateSale(ctx context.Context, p sale.Payload) (sale.Sale, error)
	UpdateSale(ctx context.Context, id string, p sale.Payload) (sale.Sale, error)
	DeleteSale(ctx context.Context, id string) error
}

// Refresher is re-synced after any write the backend accepted.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Gateway turns a finalized draft into a create/update/delete request
// and reconciles local state with the outcome: on success the cache is
// refreshed and the builder reset; on any failure the draft stays
// intact so the operator can correct and retry.
type Gateway struct {
	Remote Remote
	Cache  Refresher
	Alerts *alert.Notifier
}

// Submit finalizes and sends the draft. A validation failure surfaces
// locally and never reaches the network.
func (g *Gateway) Submit(ctx context.Context, b *sale.Builder) error {
	payload, err := b.Finalize()
	if err != nil {
		g.Alerts.Error(err.Error())
		return err
	}

	editing := b.Editing()
	if editing {
		_, err = g.Remote.UpdateSale(ctx, b.EditID(), payload)
	} else {
		_, err = g.Remote.CreateSale(ctx, payload)
	}
	if err != nil {
		g.Alerts.Error(userMessage(err, msgSaveFailed))
		return err
	}

	if editing {
		g.Alerts.Success("Venda atualizada!")
	} else {
		g.Alerts.Success("Venda realizada!")
	}
	g.Cache.Refresh(ctx)
	b.Reset()
	return nil
}

// Remove deletes a persisted sale; the backend returns its items to
// stock, so the cache is refreshed afterwards to pick up the corrected
// totals. Confirmation is the calling surface's job — once invoked the
// delete is unconditional.
func (g *Gateway) Remove(ctx context.Context, id string) error {
	if err := g.Remote.DeleteSale(ctx, id); err != nil {
		g.Alerts.Error(userMessage(err, msgDeleteFailed))
		return err
	}
	g.Alerts.Success("Venda excluída e estoque estornado!")
	g.Cache.Refresh(ctx)
	return nil
}

// userMessage maps an error to what the operator sees: the server's
// message verbatim when it sent one, the given fallback when it did
// not, and a generic connectivity message when the request never got
// an answer at all.
func userMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	logger.Error().Err(err).Msg("request failed")
	return msgConnectivity
}
