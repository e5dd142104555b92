package sale

type Payment string

const (
	PaymentCash Payment = "Dinheiro"
	PaymentCard Payment = "Cartão"
	PaymentPix  Payment = "Pix"
)

var validPayment = map[Payment]bool{
	PaymentCash: true,
	PaymentCard: true,
	PaymentPix:  true,
}

func (p Payment) Valid() bool { return validPayment[p] }
