package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod é a forma de pagamento de uma compra.
type PaymentMethod string

const (
	PaymentCaderneta PaymentMethod = "caderneta" // fiado, acertado depois pelo cliente
	PaymentPix       PaymentMethod = "pix"
)

// Valid indica se a forma de pagamento é conhecida.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCaderneta || m == PaymentPix
}

// Purchase é o cabeçalho da compra gravada no checkout.
type Purchase struct {
	ID            string          `json:"id"`
	CustomerID    *string         `json:"customer_id,omitempty"` // nil = cliente avulso
	LocationID    string          `json:"location_id"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PurchaseLine é a linha de compra, com preço e quantidade congelados no momento do checkout.
type PurchaseLine struct {
	ID            string           `json:"id"`
	PurchaseID    string           `json:"purchase_id"`
	ProductID     string           `json:"product_id"`
	LotID         string           `json:"lot_id,omitempty"`
	Name          string           `json:"name"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Quantity      int              `json:"quantity"`
}

// CheckoutRequest é o pedido de finalização de um carrinho.
type CheckoutRequest struct {
	Cart          Cart          `json:"cart"`
	LocationID    string        `json:"location_id"`
	CustomerID    *string       `json:"customer_id,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// CheckoutState é o estado de uma tentativa de checkout.
type CheckoutState string

const (
	CheckoutValidating      CheckoutState = "validating"
	CheckoutCommitting      CheckoutState = "committing"
	CheckoutSucceeded       CheckoutState = "succeeded"
	CheckoutPartiallyFailed CheckoutState = "partially_failed" // compra gravada, mas alguma baixa de estoque falhou
)

// StockDrift registra uma baixa de estoque que falhou depois da compra gravada.
type StockDrift struct {
	PurchaseID string    `json:"purchase_id"`
	LotID      string    `json:"lot_id"`
	ProductID  string    `json:"product_id"`
	Quantity   int       `json:"quantity"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CheckoutResult é o resultado de um checkout concluído.
type CheckoutResult struct {
	Purchase Purchase       `json:"purchase"`
	Lines    []PurchaseLine `json:"lines"`
	State    CheckoutState  `json:"state"`
	Drifts   []StockDrift   `json:"drifts,omitempty"`
}
