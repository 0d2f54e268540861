package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShelfLot é uma exposição: o lote precificado de um produto numa prateleira de um local.
// Vários lotes podem existir para o mesmo (local, produto) com preços diferentes.
// Lotes nunca são apagados, apenas zerados ou desativados.
type ShelfLot struct {
	ID         string          `json:"id"`
	LocationID string          `json:"location_id"`
	ProductID  string          `json:"product_id"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"` // sempre >= 0
	IsActive   bool            `json:"is_active"`
	Version    int             `json:"version"` // Para Controle de Concorrência Otimista (OCC) nas operações administrativas
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Sellable indica se o lote pode receber reservas.
func (l ShelfLot) Sellable() bool {
	return l.IsActive && l.Quantity > 0
}

// LotAvailability é a leitura de um (local, produto): lotes vendáveis ordenados por preço e o total disponível.
type LotAvailability struct {
	LocationID string     `json:"location_id"`
	ProductID  string     `json:"product_id"`
	Lots       []ShelfLot `json:"lots"`
	Total      int        `json:"total"`
}

// CentralStock é o estoque do depósito central de um produto, separado dos lotes de prateleira.
type CentralStock struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockEntryRequest é o payload de entrada de mercadoria no estoque central.
type StockEntryRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// StockTransferRequest move unidades do estoque central para uma prateleira, a um preço de venda.
type StockTransferRequest struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

// LotAdjustRequest define manualmente a quantidade de um lote (contagem de prateleira).
type LotAdjustRequest struct {
	Quantity int `json:"quantity"`
}
