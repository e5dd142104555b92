package sale

import "github.com/shopspring/decimal"

func init() {
	// the backend speaks bare JSON numbers for money fields
	decimal.MarshalJSONWithoutQuotes = true
}

// Customer as served by the backend. Read-only on this side; the draft
// copies the fields it needs at submission time.
type Customer struct {
	ID   string `json:"_id"`
	Name string `json:"nome"`
	CPF  string `json:"cpf"`
}

// Product as served by the backend. Price is authoritative only at
// lookup time; a line copies it and keeps its own value afterwards.
type Product struct {
	ID    string          `json:"_id"`
	Name  string          `json:"nome"`
	Price decimal.Decimal `json:"preco"`
}

// Line is one item of a draft or persisted sale. Subtotal is derived,
// never trusted from stale state.
type Line struct {
	ProductID string          `json:"produtoId"`
	Name      string          `json:"nome"`
	Quantity  int             `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"precoUnitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func (l *Line) recompute() {
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CustomerRef is the denormalized customer snapshot embedded in a sale.
type CustomerRef struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
	CPF  string `json:"cpf"`
}

// Sale is a persisted order as returned by the backend (history entry).
type Sale struct {
	ID       string          `json:"_id"`
	Seller   string          `json:"vendedor"`
	Customer CustomerRef     `json:"cliente"`
	Items    []Line          `json:"itens"`
	Total    decimal.Decimal `json:"valorTotal"`
	Payment  Payment         `json:"formaPagamento"`
	Notes    string          `json:"observacoes,omitempty"`
}

// Payload is the body of a create/update request.
type Payload struct {
	Seller   string          `json:"vendedor"`
	Customer CustomerRef     `json:"cliente"`
	Items    []Line          `json:"itens"`
	Total    decimal.Decimal `json:"valorTotal"`
	Payment  Payment         `json:"formaPagamento"`
	Notes    string          `json:"observacoes,omitempty"`
}

// DefaultSeller is used when the operator left the field blank.
const DefaultSeller = "Balcão"
