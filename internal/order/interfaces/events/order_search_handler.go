package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/shopadmin/internal/order/domain"
)

// OrderSearchHandler 消费订单变更事件，把最新聚合同步到 Elasticsearch。
type OrderSearchHandler struct {
	searchRepo domain.OrderSearchRepository
	orderRepo  domain.OrderRepository
}

func NewOrderSearchHandler(searchRepo domain.OrderSearchRepository, orderRepo domain.OrderRepository) *OrderSearchHandler {
	return &OrderSearchHandler{searchRepo: searchRepo, orderRepo: orderRepo}
}

// Handle 事件载荷只带订单号，回查主库拿完整聚合再写索引，
// 保证 ES 中始终是最新状态。
func (h *OrderSearchHandler) Handle(ctx context.Context, msg kafkago.Message) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		slog.ErrorContext(ctx, "failed to unmarshal order event", "error", err)
		return err
	}

	order, err := h.orderRepo.GetByNumber(ctx, event.OrderNumber)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			// 已删除的订单不再出现在搜索结果里
			return nil
		}
		return err
	}

	return h.searchRepo.Index(ctx, order)
}

func (h *OrderSearchHandler) Subscribe(ctx context.Context, consumer *kafka.Consumer) {
	consumer.Start(ctx, 1, h.Handle)
}
