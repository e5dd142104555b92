package catalog

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/armazemdigital/vendas-core.git/internal/sale"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "catalog").Logger()

// Source is where the cache pulls its slices from; *api.Client fits.
type Source interface {
	ListCustomers(ctx context.Context) ([]sale.Customer, error)
	ListProducts(ctx context.Context) ([]sale.Product, error)
	ListSales(ctx context.Context) ([]sale.Sale, error)
}

// Cache is the read-only snapshot of customers, products and sale
// history backing order composition. Each slice is replaced wholesale
// on a successful fetch; a failed fetch keeps the previous value, so a
// partial refresh never blanks out working data.
type Cache struct {
	src Source

	mu         sync.RWMutex
	customers  []sale.Customer
	products   []sale.Product
	history    []sale.Sale
	byCustomer map[string]sale.Customer
	byProduct  map[string]sale.Product
}

func NewCache(src Source) *Cache {
	return &Cache{
		src:        src,
		byCustomer: map[string]sale.Customer{},
		byProduct:  map[string]sale.Product{},
	}
}

// Refresh pulls the three slices concurrently. Failures are logged and
// swallowed per slice; the caller may simply call Refresh again. No
// automatic retries.
func (c *Cache) Refresh(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cs, err := c.src.ListCustomers(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("refresh customers")
			return nil
		}
		byID := make(map[string]sale.Customer, len(cs))
		for _, cu := range cs {
			byID[cu.ID] = cu
		}
		c.mu.Lock()
		c.customers, c.byCustomer = cs, byID
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		ps, err := c.src.ListProducts(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("refresh products")
			return nil
		}
		byID := make(map[string]sale.Product, len(ps))
		for _, p := range ps {
			byID[p.ID] = p
		}
		c.mu.Lock()
		c.products, c.byProduct = ps, byID
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		hs, err := c.src.ListSales(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("refresh history")
			return nil
		}
		c.mu.Lock()
		c.history = hs
		c.mu.Unlock()
		return nil
	})

	_ = g.Wait()
}

func (c *Cache) ProductByID(id string) (sale.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byProduct[id]
	return p, ok
}

func (c *Cache) CustomerByID(id string) (sale.Customer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cu, ok := c.byCustomer[id]
	return cu, ok
}

func (c *Cache) Customers() []sale.Customer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]sale.Customer, len(c.customers))
	copy(out, c.customers)
	return out
}

func (c *Cache) Products() []sale.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]sale.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Cache) History() []sale.Sale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]sale.Sale, len(c.history))
	copy(out, c.history)
	return out
}
