package stubapi

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/armazemdigital/vendas-core.git/internal/sale"
)

var (
	ErrOutOfStock   = errors.New("estoque insuficiente")
	ErrSaleNotFound = errors.New("venda não encontrada")
)

// StockedProduct is a catalog product plus the stock counter the real
// backend keeps for it.
type StockedProduct struct {
	sale.Product
	Stock int `json:"estoque"`
}

// Store holds the stub's world: customers, stocked products and
// persisted sales. Creating a sale debits stock, deleting one credits
// it back; an update credits the old items before debiting the new.
type Store struct {
	mu        sync.Mutex
	customers []sale.Customer
	products  map[string]*StockedProduct
	prodOrder []string
	sales     map[string]sale.Sale
	saleOrder []string
}

func NewStore() *Store {
	return &Store{
		products: map[string]*StockedProduct{},
		sales:    map[string]sale.Sale{},
	}
}

func (s *Store) Seed(customers []sale.Customer, products []StockedProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append(s.customers, customers...)
	for i := range products {
		p := products[i]
		s.products[p.ID] = &p
		s.prodOrder = append(s.prodOrder, p.ID)
	}
}

func (s *Store) Customers() []sale.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sale.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *Store) Products() []StockedProduct {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StockedProduct, 0, len(s.prodOrder))
	for _, id := range s.prodOrder {
		out = append(out, *s.products[id])
	}
	return out
}

func (s *Store) Sales() []sale.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sale.Sale, 0, len(s.saleOrder))
	for _, id := range s.saleOrder {
		out = append(out, s.sales[id])
	}
	return out
}

func (s *Store) Stock(productID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return 0, false
	}
	return p.Stock, true
}

// CreateSale debits stock for every item and persists the sale. Like
// the real backend, nothing is committed when any single item is short.
func (s *Store) CreateSale(p sale.Payload) (sale.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.debit(p.Items); err != nil {
		return sale.Sale{}, err
	}

	created := sale.Sale{
		ID:       uuid.NewString(),
		Seller:   p.Seller,
		Customer: p.Customer,
		Items:    p.Items,
		Total:    p.Total,
		Payment:  p.Payment,
		Notes:    p.Notes,
	}
	s.sales[created.ID] = created
	s.saleOrder = append(s.saleOrder, created.ID)
	return created, nil
}

// UpdateSale returns the old items to stock, then debits the new ones.
// When the new items do not fit, the old debit is restored and the
// stored sale is left as it was.
func (s *Store) UpdateSale(id string, p sale.Payload) (sale.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.sales[id]
	if !ok {
		return sale.Sale{}, ErrSaleNotFound
	}

	s.credit(old.Items)
	if err := s.debit(p.Items); err != nil {
		s.mustDebit(old.Items)
		return sale.Sale{}, err
	}

	updated := sale.Sale{
		ID:       id,
		Seller:   p.Seller,
		Customer: p.Customer,
		Items:    p.Items,
		Total:    p.Total,
		Payment:  p.Payment,
		Notes:    p.Notes,
	}
	s.sales[id] = updated
	return updated, nil
}

// DeleteSale removes the sale and credits its items back to stock.
func (s *Store) DeleteSale(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.sales[id]
	if !ok {
		return ErrSaleNotFound
	}
	s.credit(old.Items)
	delete(s.sales, id)
	for i, sid := range s.saleOrder {
		if sid == id {
			s.saleOrder = append(s.saleOrder[:i], s.saleOrder[i+1:]...)
			break
		}
	}
	return nil
}

// debit checks every item first and only then applies, so a shortage
// on one product leaves all counters untouched.
func (s *Store) debit(items []sale.Line) error {
	for _, it := range items {
		p, ok := s.products[it.ProductID]
		if !ok || p.Stock < it.Quantity {
			return ErrOutOfStock
		}
	}
	for _, it := range items {
		s.products[it.ProductID].Stock -= it.Quantity
	}
	return nil
}

func (s *Store) credit(items []sale.Line) {
	for _, it := range items {
		if p, ok := s.products[it.ProductID]; ok {
			p.Stock += it.Quantity
		}
	}
}

// mustDebit re-applies a debit that was just credited; it cannot fail.
func (s *Store) mustDebit(items []sale.Line) {
	for _, it := range items {
		if p, ok := s.products[it.ProductID]; ok {
			p.Stock -= it.Quantity
		}
	}
}
