package sale

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog resolves ids against the current snapshot. Lookups use an
// ok-bool: the catalog may have changed since a line was created, so a
// stored id is never assumed to still resolve.
type Catalog interface {
	ProductByID(id string) (Product, bool)
	CustomerByID(id string) (Customer, bool)
}

var (
	// Validation failures, surfaced to the operator as-is.
	ErrNoCustomer   = errors.New("Selecione um cliente!")
	ErrNoValidItems = errors.New("Adicione produtos válidos!")

	ErrLineOutOfRange = errors.New("line index out of range")
)

// Builder owns the mutable draft: selected customer, line items,
// payment method and notes. Two modes: create (no edit target) and
// edit (hydrated from a persisted sale via BeginEdit).
//
// All operations are synchronous; the builder is meant to be driven
// from a single goroutine.
type Builder struct {
	cat      Catalog
	editID   string
	customer *Customer
	seller   string
	items    []Line
	payment  Payment
	notes    string
}

func NewBuilder(cat Catalog) *Builder {
	b := &Builder{cat: cat}
	b.Reset()
	return b
}

// Reset discards the draft and returns to create mode: no edit target,
// no customer, empty line sequence.
func (b *Builder) Reset() {
	b.editID = ""
	b.customer = nil
	b.seller = ""
	b.items = nil
	b.payment = PaymentCash
	b.notes = ""
}

// Open prepares a fresh create-mode form: reset plus one empty line,
// ready for input.
func (b *Builder) Open() {
	b.Reset()
	b.AddLine()
}

// BeginEdit hydrates the draft from a persisted sale. Lines are deep
// copied; after hydration the draft and the history entry are fully
// decoupled. The customer is re-resolved against the catalog and left
// unset when it no longer exists.
func (b *Builder) BeginEdit(s Sale) {
	b.Reset()
	b.editID = s.ID
	b.seller = s.Seller
	b.notes = s.Notes
	if s.Payment.Valid() {
		b.payment = s.Payment
	}
	if c, ok := b.cat.CustomerByID(s.Customer.ID); ok {
		b.customer = &c
	}
	b.items = make([]Line, len(s.Items))
	copy(b.items, s.Items)
}

func (b *Builder) Editing() bool  { return b.editID != "" }
func (b *Builder) EditID() string { return b.editID }

// SelectCustomer resolves the id against the catalog. Unknown ids are
// a silent no-op: the surface only offers valid choices.
func (b *Builder) SelectCustomer(id string) {
	if c, ok := b.cat.CustomerByID(id); ok {
		b.customer = &c
	}
}

func (b *Builder) Customer() *Customer { return b.customer }

func (b *Builder) SetSeller(name string) { b.seller = name }
func (b *Builder) Seller() string        { return b.seller }

func (b *Builder) SetNotes(notes string) { b.notes = notes }
func (b *Builder) Notes() string         { return b.notes }

func (b *Builder) SetPayment(p Payment) {
	if p.Valid() {
		b.payment = p
	}
}

func (b *Builder) Payment() Payment { return b.payment }

// AddLine appends an empty line: no product, quantity 1, zero price.
func (b *Builder) AddLine() {
	b.items = append(b.items, Line{Quantity: 1})
}

// RemoveLine removes the line at index. The sequence may become empty;
// no replacement line is added.
func (b *Builder) RemoveLine(index int) error {
	if index < 0 || index >= len(b.items) {
		return ErrLineOutOfRange
	}
	b.items = append(b.items[:index], b.items[index+1:]...)
	return nil
}

// SetLineProduct copies name and unit price from the resolved product,
// resets quantity to 1 and recomputes the subtotal. Ids that do not
// resolve leave the line untouched.
func (b *Builder) SetLineProduct(index int, productID string) error {
	if index < 0 || index >= len(b.items) {
		return ErrLineOutOfRange
	}
	p, ok := b.cat.ProductByID(productID)
	if !ok {
		return nil
	}
	l := &b.items[index]
	l.ProductID = p.ID
	l.Name = p.Name
	l.UnitPrice = p.Price
	l.Quantity = 1
	l.recompute()
	return nil
}

func (b *Builder) SetLineQuantity(index, quantity int) error {
	if index < 0 || index >= len(b.items) {
		return ErrLineOutOfRange
	}
	b.items[index].Quantity = quantity
	b.items[index].recompute()
	return nil
}

func (b *Builder) SetLineUnitPrice(index int, price decimal.Decimal) error {
	if index < 0 || index >= len(b.items) {
		return ErrLineOutOfRange
	}
	b.items[index].UnitPrice = price
	b.items[index].recompute()
	return nil
}

// Items returns a copy of the current line sequence, in insertion order.
func (b *Builder) Items() []Line {
	out := make([]Line, len(b.items))
	copy(out, b.items)
	return out
}

// GrandTotal is the sum of all line subtotals, recomputed on every read.
func (b *Builder) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range b.items {
		total = total.Add(b.items[i].Subtotal)
	}
	return total
}

// ValidItems returns the lines eligible for submission: product set,
// positive quantity, and the product still resolvable in the catalog.
// Lines pointing at a product that vanished after a refresh keep their
// last-copied name and price in the draft but are excluded here.
func (b *Builder) ValidItems() []Line {
	var out []Line
	for _, l := range b.items {
		if l.ProductID == "" || l.Quantity <= 0 {
			continue
		}
		if _, ok := b.cat.ProductByID(l.ProductID); !ok {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Validate checks the two submission preconditions: a selected customer
// and at least one valid line. Invalid lines are excluded from the
// payload rather than failing the order.
func (b *Builder) Validate() error {
	if b.customer == nil {
		return ErrNoCustomer
	}
	if len(b.ValidItems()) == 0 {
		return ErrNoValidItems
	}
	return nil
}

// Finalize validates the draft and snapshots it into a payload. The
// customer fields are copied out at this moment, the seller falls back
// to the house label, and the declared total is GrandTotal().
func (b *Builder) Finalize() (Payload, error) {
	if err := b.Validate(); err != nil {
		return Payload{}, err
	}
	seller := strings.TrimSpace(b.seller)
	if seller == "" {
		seller = DefaultSeller
	}
	return Payload{
		Seller: seller,
		Customer: CustomerRef{
			ID:   b.customer.ID,
			Name: b.customer.Name,
			CPF:  b.customer.CPF,
		},
		Items:   b.ValidItems(),
		Total:   b.GrandTotal(),
		Payment: b.payment,
		Notes:   b.notes,
	}, nil
}
