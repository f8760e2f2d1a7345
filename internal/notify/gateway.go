package notify

import "context"

// ── 事件类型 ──

const (
	KindBookingStatus     = "booking_status"
	KindSlotRequestStatus = "slot_request_status"
)

// Event 状态变更事件，推送到申请人的私有通道
type Event struct {
	Kind        string `json:"kind"`
	BookingID   string `json:"booking_id"`
	RequesterID string `json:"requester_id"`
	NewStatus   string `json:"new_status"`
}

// Gateway 通知网关抽象
// 投递是尽力而为的：投递失败不回滚已提交的状态变更，由调用方记日志
type Gateway interface {
	Notify(ctx context.Context, requesterID string, event Event) error
}

// NopGateway 空实现（notify.backend = off 或测试场景）
type NopGateway struct{}

// Notify 丢弃事件
func (NopGateway) Notify(context.Context, string, Event) error { return nil }
