package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product é o item do catálogo. Todo lote de prateleira referencia um Product.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode"` // único no catálogo, apenas dígitos
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"` // preço base sugerido; o preço cobrado vem do lote
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
