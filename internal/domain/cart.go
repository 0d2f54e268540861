package domain

import "github.com/shopspring/decimal"

// CartLine é uma reserva leve: unidades de um produto atribuídas a um lote específico, com o preço já cobrado.
// Um mesmo produto pode ocupar várias linhas, uma por (preço, lote). Linhas de lotes diferentes nunca são fundidas.
type CartLine struct {
	ProductID     string           `json:"product_id"`
	Name          string           `json:"name"`
	Barcode       string           `json:"barcode"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`               // preço cobrado, já com desconto
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"` // preço do lote antes do desconto
	Quantity      int              `json:"quantity"`
	LotID         string           `json:"lot_id"`
}

// Matches indica se a linha corresponde à chave (produto, preço cobrado, lote).
func (l CartLine) Matches(productID string, unitPrice decimal.Decimal, lotID string) bool {
	return l.ProductID == productID && l.LotID == lotID && l.UnitPrice.Equal(unitPrice)
}

// Subtotal é preço unitário x quantidade.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart é o carrinho mantido pelo cliente (tablet). É um valor: toda operação devolve um novo Cart.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Clone devolve uma cópia independente do carrinho.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

// IsEmpty indica se o carrinho não tem linhas.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line devolve a linha na posição i.
func (c Cart) Line(i int) (CartLine, bool) {
	if i < 0 || i >= len(c.Lines) {
		return CartLine{}, false
	}
	return c.Lines[i], true
}

// Total soma preço unitário x quantidade. Os descontos já estão embutidos em cada linha e não são recalculados.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// QuantityOf soma as unidades do produto em todas as linhas, independente do lote.
func (c Cart) QuantityOf(productID string) int {
	qty := 0
	for _, l := range c.Lines {
		if l.ProductID == productID {
			qty += l.Quantity
		}
	}
	return qty
}

// ReservedPerLot mapeia lote -> unidades já reservadas pelo produto neste carrinho.
func (c Cart) ReservedPerLot(productID string) map[string]int {
	reserved := make(map[string]int)
	for _, l := range c.Lines {
		if l.ProductID == productID && l.LotID != "" {
			reserved[l.LotID] += l.Quantity
		}
	}
	return reserved
}

// IndexOf devolve a posição da linha com a chave (produto, preço cobrado, lote), ou -1.
func (c Cart) IndexOf(productID string, unitPrice decimal.Decimal, lotID string) int {
	for i, l := range c.Lines {
		if l.Matches(productID, unitPrice, lotID) {
			return i
		}
	}
	return -1
}

// WithUnit soma uma unidade à linha de mesma chave, ou acrescenta line com quantidade 1.
func (c Cart) WithUnit(line CartLine) Cart {
	next := c.Clone()
	if i := next.IndexOf(line.ProductID, line.UnitPrice, line.LotID); i >= 0 {
		next.Lines[i].Quantity++
		return next
	}
	line.Quantity = 1
	next.Lines = append(next.Lines, line)
	return next
}

// WithIncrementAt soma uma unidade à linha i. O chamador garante que i é válido.
func (c Cart) WithIncrementAt(i int) Cart {
	next := c.Clone()
	next.Lines[i].Quantity++
	return next
}

// WithDecrementAt tira uma unidade da linha i; a linha sai do carrinho ao chegar a zero.
func (c Cart) WithDecrementAt(i int) Cart {
	if c.Lines[i].Quantity <= 1 {
		return c.WithoutLine(i)
	}
	next := c.Clone()
	next.Lines[i].Quantity--
	return next
}

// WithoutLine remove a linha i.
func (c Cart) WithoutLine(i int) Cart {
	lines := make([]CartLine, 0, len(c.Lines)-1)
	lines = append(lines, c.Lines[:i]...)
	lines = append(lines, c.Lines[i+1:]...)
	return Cart{Lines: lines}
}

// PriceFlags marca, para cada linha, se o mesmo produto aparece em outra linha mais barata.
// Apenas informativo para a tela; não altera a alocação.
func (c Cart) PriceFlags() []bool {
	cheapest := make(map[string]decimal.Decimal)
	for _, l := range c.Lines {
		if low, ok := cheapest[l.ProductID]; !ok || l.UnitPrice.LessThan(low) {
			cheapest[l.ProductID] = l.UnitPrice
		}
	}

	flags := make([]bool, len(c.Lines))
	for i, l := range c.Lines {
		flags[i] = l.UnitPrice.GreaterThan(cheapest[l.ProductID])
	}
	return flags
}
