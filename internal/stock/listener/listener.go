package listener

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/mecommerce/catalog-service/internal/pkg/broker"
)

// StockUpdater is the slice of the catalog repositories the listener
// needs: flipping the in_stock flag by SKU.
type StockUpdater interface {
	UpdateInStockBySKU(ctx context.Context, sku string, inStock bool) (int64, error)
}

// StockListener consumes inventory events and keeps the catalog's
// in_stock flags in sync. Products and variants share the event stream;
// a SKU only exists in one of the two tables.
type StockListener struct {
	consumer *broker.KafkaConsumer
	products StockUpdater
	variants StockUpdater
	logger   *zap.Logger
}

func NewStockListener(consumer *broker.KafkaConsumer, products, variants StockUpdater, log *zap.Logger) *StockListener {
	return &StockListener{
		consumer: consumer,
		products: products,
		variants: variants,
		logger:   log,
	}
}

func (l *StockListener) Start(ctx context.Context) {
	l.logger.Info("Starting stock listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping stock listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read stock message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type StockEvent struct {
	EventType string    `json:"event_type"`
	SKU       string    `json:"sku"`
	InStock   bool      `json:"in_stock"`
	Timestamp time.Time `json:"timestamp"`
}

func (l *StockListener) processMessage(ctx context.Context, value []byte) {
	var event StockEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal stock event", zap.Error(err))
		return
	}

	if event.EventType != "StockChanged" || event.SKU == "" {
		return
	}

	updated, err := l.products.UpdateInStockBySKU(ctx, event.SKU, event.InStock)
	if err != nil {
		l.logger.Error("Failed to update product stock flag",
			zap.String("sku", event.SKU), zap.Error(err))
		return
	}
	if updated > 0 {
		return
	}

	if _, err := l.variants.UpdateInStockBySKU(ctx, event.SKU, event.InStock); err != nil {
		l.logger.Error("Failed to update variant stock flag",
			zap.String("sku", event.SKU), zap.Error(err))
	}
}
