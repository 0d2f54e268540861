package checkoutservice

import (
	"context"
	"encoding/json"

	"mercadinho/internal/domain"
	"mercadinho/internal/pkg/cache"
	"mercadinho/internal/pkg/logger"
)

// DriftListKey é a lista do Redis onde as divergências ficam para conferência do admin.
const DriftListKey = "estoque:drift"

// CacheDriftReporter registra a divergência no log e a empilha numa lista do cache.
type CacheDriftReporter struct {
	cache  cache.Client
	logger logger.Logger
}

// NewCacheDriftReporter cria o reporter. cacheClient pode ser nil: nesse caso só há log.
func NewCacheDriftReporter(cacheClient cache.Client, logger logger.Logger) *CacheDriftReporter {
	return &CacheDriftReporter{cache: cacheClient, logger: logger}
}

// ReportDrift nunca falha; um problema ao gravar no cache fica só no log.
func (r *CacheDriftReporter) ReportDrift(ctx context.Context, drift domain.StockDrift) {
	r.logger.Error("Divergência de estoque registrada.", &driftError{drift: drift})

	if r.cache == nil {
		return
	}
	data, err := json.Marshal(drift)
	if err != nil {
		r.logger.Error("Falha ao serializar divergência.", err)
		return
	}
	if err := r.cache.Push(ctx, DriftListKey, data); err != nil {
		r.logger.Warn("Falha ao gravar divergência no cache.", map[string]interface{}{"purchase_id": drift.PurchaseID, "error": err.Error()})
	}
}

type driftError struct {
	drift domain.StockDrift
}

func (e *driftError) Error() string {
	return "compra " + e.drift.PurchaseID + ", lote " + e.drift.LotID + ": " + e.drift.Reason
}
