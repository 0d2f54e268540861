package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion é um desconto percentual global (ProductID nil) ou de um único produto.
type Promotion struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Percent     decimal.Decimal `json:"percent"`
	ProductID   *string         `json:"product_id,omitempty"`
	StartsAt    time.Time       `json:"starts_at"`
	EndsAt      *time.Time      `json:"ends_at,omitempty"` // nil = sem data de término
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// IsGlobal indica se a promoção vale para todos os produtos.
func (p Promotion) IsGlobal() bool {
	return p.ProductID == nil
}

// CoversAt indica se a promoção está ativa em t, na janela [StartsAt, EndsAt).
func (p Promotion) CoversAt(t time.Time) bool {
	if !p.IsActive || t.Before(p.StartsAt) {
		return false
	}
	return p.EndsAt == nil || t.Before(*p.EndsAt)
}

// PriceQuote é o resultado da precificação de um produto.
type PriceQuote struct {
	FinalPrice  decimal.Decimal `json:"final_price"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Discounted  bool            `json:"discounted"`
	Percent     decimal.Decimal `json:"percent"`
	PromotionID string          `json:"promotion_id,omitempty"`
}
