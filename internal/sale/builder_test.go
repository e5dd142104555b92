package sale

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products  map[string]Product
	customers map[string]Customer
}

func (f *fakeCatalog) ProductByID(id string) (Product, bool) {
	p, ok := f.products[id]
	return p, ok
}

func (f *fakeCatalog) CustomerByID(id string) (Customer, bool) {
	c, ok := f.customers[id]
	return c, ok
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: map[string]Product{
			"p1": {ID: "p1", Name: "Camiseta", Price: decimal.NewFromFloat(10.00)},
			"p2": {ID: "p2", Name: "Caneca", Price: decimal.NewFromFloat(19.50)},
		},
		customers: map[string]Customer{
			"c1": {ID: "c1", Name: "Maria Souza", CPF: "111.222.333-44"},
		},
	}
}

func TestBuilder_OpenStartsWithOneEmptyLine(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	b.Open()

	items := b.Items()
	require.Len(t, items, 1)
	assert.Empty(t, items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.True(t, items[0].Subtotal.IsZero())
}

func TestBuilder_SubtotalInvariantAfterEveryMutation(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	b.AddLine()

	check := func() {
		l := b.Items()[0]
		want := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		assert.True(t, l.Subtotal.Equal(want), "subtotal %s != %s", l.Subtotal, want)
	}

	require.NoError(t, b.SetLineProduct(0, "p2"))
	check()
	require.NoError(t, b.SetLineQuantity(0, 7))
	check()
	require.NoError(t, b.SetLineUnitPrice(0, decimal.NewFromFloat(3.33)))
	check()
	require.NoError(t, b.SetLineQuantity(0, 2))
	check()
}

func TestBuilder_ProductTimesQuantityScenario(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	b.AddLine()
	require.NoError(t, b.SetLineProduct(0, "p1"))
	require.NoError(t, b.SetLineQuantity(0, 3))

	line := b.Items()[0]
	assert.True(t, line.Subtotal.Equal(decimal.NewFromFloat(30.00)), "got %s", line.Subtotal)
	assert.True(t, b.GrandTotal().Equal(decimal.NewFromFloat(30.00)), "got %s", b.GrandTotal())
}

func TestBuilder_GrandTotal(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	assert.True(t, b.GrandTotal().IsZero(), "empty draft must total zero")

	b.AddLine()
	require.NoError(t, b.SetLineProduct(0, "p1")) // 10.00
	b.AddLine()
	require.NoError(t, b.SetLineProduct(1, "p2")) // 19.50
	require.NoError(t, b.SetLineQuantity(1, 2))   // 39.00

	assert.True(t, b.GrandTotal().Equal(decimal.NewFromFloat(49.00)), "got %s", b.GrandTotal())
}

func TestBuilder_SetLineProduct_UnknownIDLeavesLineUntouched(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	b.AddLine()
	require.NoError(t, b.SetLineProduct(0, "p1"))

	before := b.Items()[0]
	require.NoError(t, b.SetLineProduct(0, "missing"))
	assert.Equal(t, before, b.Items()[0])
}

func TestBuilder_SelectCustomer_UnknownIDIsNoOp(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	b.SelectCustomer("missing")
	assert.Nil(t, b.Customer())

	b.SelectCustomer("c1")
	require.NotNil(t, b.Customer())
	assert.Equal(t, "Maria Souza", b.Customer().Name)
}

func TestBuilder_RemoveLine(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	b.AddLine()
	b.AddLine()
	require.NoError(t, b.SetLineProduct(0, "p1"))
	require.NoError(t, b.SetLineProduct(1, "p2"))

	require.NoError(t, b.RemoveLine(0))
	items := b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)

	// emptying the sequence is allowed, nothing is auto-added
	require.NoError(t, b.RemoveLine(0))
	assert.Empty(t, b.Items())
}

func TestBuilder_RemoveLine_OutOfRange(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	b.AddLine()

	assert.ErrorIs(t, b.RemoveLine(5), ErrLineOutOfRange)
	assert.ErrorIs(t, b.RemoveLine(-1), ErrLineOutOfRange)
	assert.Len(t, b.Items(), 1, "sequence must be unchanged")
}

func TestBuilder_UnitPriceDecoupledFromCatalog(t *testing.T) {
	cat := newFakeCatalog()
	b := NewBuilder(cat)
	b.AddLine()
	require.NoError(t, b.SetLineProduct(0, "p1"))

	// catalog price changes after the copy-out
	cat.products["p1"] = Product{ID: "p1", Name: "Camiseta", Price: decimal.NewFromFloat(99.99)}

	assert.True(t, b.Items()[0].UnitPrice.Equal(decimal.NewFromFloat(10.00)),
		"line price must keep the value copied at selection time")
}

func TestBuilder_Validate(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	b.AddLine()
	require.NoError(t, b.SetLineProduct(0, "p1"))

	assert.ErrorIs(t, b.Validate(), ErrNoCustomer)

	b.SelectCustomer("c1")
	require.NoError(t, b.Validate())

	require.NoError(t, b.SetLineQuantity(0, 0))
	assert.ErrorIs(t, b.Validate(), ErrNoValidItems)
}

func TestBuilder_ValidItems_Exclusions(t *testing.T) {
	cat := newFakeCatalog()
	b := NewBuilder(cat)

	b.AddLine() // no product: excluded
	b.AddLine()
	require.NoError(t, b.SetLineProduct(1, "p1"))
	require.NoError(t, b.SetLineQuantity(1, -2)) // non-positive qty: excluded
	b.AddLine()
	require.NoError(t, b.SetLineProduct(2, "p2"))

	valid := b.ValidItems()
	require.Len(t, valid, 1)
	assert.Equal(t, "p2", valid[0].ProductID)
}

func TestBuilder_ValidItems_ExcludesVanishedProduct(t *testing.T) {
	cat := newFakeCatalog()
	b := NewBuilder(cat)
	b.AddLine()
	require.NoError(t, b.SetLineProduct(0, "p1"))

	// product deleted between selection and a later refresh
	delete(cat.products, "p1")

	assert.Empty(t, b.ValidItems())
	// the line itself keeps its last-known name and price
	line := b.Items()[0]
	assert.Equal(t, "Camiseta", line.Name)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromFloat(10.00)))
}

func TestBuilder_BeginEditThenReset_NoResidue(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	b.BeginEdit(Sale{
		ID:       "v1",
		Seller:   "Ana",
		Customer: CustomerRef{ID: "c1", Name: "Maria Souza", CPF: "111.222.333-44"},
		Items:    []Line{{ProductID: "p1", Name: "Camiseta", Quantity: 2}},
		Payment:  PaymentPix,
	})
	require.True(t, b.Editing())

	b.Reset()
	assert.False(t, b.Editing())
	assert.Empty(t, b.EditID())
	assert.Nil(t, b.Customer())
	assert.Empty(t, b.Items())
	assert.Empty(t, b.Seller())
	assert.Equal(t, PaymentCash, b.Payment())
}

func TestBuilder_BeginEdit_HydratesAndDecouples(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	entry := Sale{
		ID:       "v1",
		Seller:   "Ana",
		Customer: CustomerRef{ID: "c1"},
		Items: []Line{{
			ProductID: "p1", Name: "Camiseta", Quantity: 2,
			UnitPrice: decimal.NewFromFloat(10.00),
			Subtotal:  decimal.NewFromFloat(20.00),
		}},
		Payment: PaymentCard,
	}
	b.BeginEdit(entry)

	assert.Equal(t, "v1", b.EditID())
	assert.Equal(t, "Ana", b.Seller())
	assert.Equal(t, PaymentCard, b.Payment())
	require.NotNil(t, b.Customer())
	assert.Equal(t, "Maria Souza", b.Customer().Name)
	require.Len(t, b.Items(), 1)

	// mutations after hydration must not touch the history entry
	require.NoError(t, b.SetLineQuantity(0, 9))
	assert.Equal(t, 2, entry.Items[0].Quantity)
}

func TestBuilder_BeginEdit_UnknownCustomerLeftUnset(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	b.BeginEdit(Sale{ID: "v1", Customer: CustomerRef{ID: "gone"}})
	assert.Nil(t, b.Customer())
}

func TestBuilder_Finalize(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	b.SelectCustomer("c1")
	b.AddLine()
	require.NoError(t, b.SetLineProduct(0, "p1"))
	require.NoError(t, b.SetLineQuantity(0, 3))
	b.AddLine() // empty line, filtered out of the payload

	p, err := b.Finalize()
	require.NoError(t, err)

	assert.Equal(t, DefaultSeller, p.Seller, "blank seller falls back to the house label")
	assert.Equal(t, CustomerRef{ID: "c1", Name: "Maria Souza", CPF: "111.222.333-44"}, p.Customer)
	require.Len(t, p.Items, 1)
	assert.True(t, p.Total.Equal(b.GrandTotal()))
	assert.Equal(t, PaymentCash, p.Payment)
}

func TestBuilder_Finalize_ValidationFailures(t *testing.T) {
	b := NewBuilder(newFakeCatalog())
	_, err := b.Finalize()
	assert.ErrorIs(t, err, ErrNoCustomer)

	b.SelectCustomer("c1")
	_, err = b.Finalize()
	assert.ErrorIs(t, err, ErrNoValidItems)
}
