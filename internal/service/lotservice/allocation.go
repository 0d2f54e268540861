package lotservice

import (
	"sort"

	"mercadinho/internal/domain"
)

// Allocation é a parte de um pedido atendida por um lote.
type Allocation struct {
	Lot      domain.ShelfLot
	Quantity int
}

// Order devolve uma cópia com os lotes vendáveis por preço crescente; no empate, por id.
func Order(lots []domain.ShelfLot) []domain.ShelfLot {
	ordered := make([]domain.ShelfLot, 0, len(lots))
	for _, l := range lots {
		if l.Sellable() {
			ordered = append(ordered, l)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if c := ordered[i].Price.Cmp(ordered[j].Price); c != 0 {
			return c < 0
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}

// Headroom é o saldo do lote ainda não reservado no carrinho.
func Headroom(lot domain.ShelfLot, reserved map[string]int) int {
	if h := lot.Quantity - reserved[lot.ID]; h > 0 {
		return h
	}
	return 0
}

// Plan distribui quantity unidades do lote mais barato para o mais caro, só passando ao próximo
// quando a folga do atual acaba. Devolve também quanto ficou sem atender.
func Plan(lots []domain.ShelfLot, reserved map[string]int, quantity int) ([]Allocation, int) {
	var plan []Allocation
	remaining := quantity
	for _, l := range Order(lots) {
		if remaining == 0 {
			break
		}
		h := Headroom(l, reserved)
		if h == 0 {
			continue
		}
		take := min(h, remaining)
		plan = append(plan, Allocation{Lot: l, Quantity: take})
		remaining -= take
	}
	return plan, remaining
}

// FirstWithHeadroom escolhe o lote que recebe a próxima unidade.
func FirstWithHeadroom(lots []domain.ShelfLot, reserved map[string]int) (domain.ShelfLot, bool) {
	plan, _ := Plan(lots, reserved, 1)
	if len(plan) == 0 {
		return domain.ShelfLot{}, false
	}
	return plan[0].Lot, true
}
