package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"campus-hall/internal/model"
	"campus-hall/internal/notify"
	"campus-hall/pkg/timeutil"
)

// ── Mock SeminarBookingRepository ──

type mockBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*model.SeminarBooking
	seq      int
	clock    time.Time
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{
		bookings: make(map[string]*model.SeminarBooking),
		clock:    time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

// seed 直接放入一条记录（绕过 Submit 的仲裁路径）
func (m *mockBookingRepo) seed(b *model.SeminarBooking) *model.SeminarBooking {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.BookingID == "" {
		m.seq++
		b.BookingID = fmt.Sprintf("bk-%03d", m.seq)
	}
	if b.RequestedAt.IsZero() {
		m.clock = m.clock.Add(time.Minute)
		b.RequestedAt = m.clock
	}
	m.bookings[b.BookingID] = b
	return b
}

func (m *mockBookingRepo) Create(_ context.Context, booking *model.SeminarBooking) error {
	m.seed(booking)
	return nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*model.SeminarBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) List(_ context.Context, date *string) ([]model.SeminarBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.SeminarBooking
	for _, b := range m.bookings {
		if date != nil && b.Date != *date {
			continue
		}
		result = append(result, *b)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].RequestedAt.Equal(result[j].RequestedAt) {
			return result[i].RequestedAt.Before(result[j].RequestedAt)
		}
		return result[i].Priority > result[j].Priority
	})
	return result, nil
}

func (m *mockBookingRepo) ListByDateAndStatus(_ context.Context, date, status string) ([]model.SeminarBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.SeminarBooking
	for _, b := range m.bookings {
		if b.Date == date && b.Status == status {
			result = append(result, *b)
		}
	}
	sortByArbitrationOrder(result)
	return result, nil
}

func (m *mockBookingRepo) FindOverlapping(_ context.Context, date string, startMin, endMin int, status string) ([]model.SeminarBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.SeminarBooking
	for _, b := range m.bookings {
		if b.Date == date && b.Status == status && timeutil.Overlaps(b.StartMin, b.EndMin, startMin, endMin) {
			result = append(result, *b)
		}
	}
	sortByArbitrationOrder(result)
	return result, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Status = status
	return nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bookings, id)
	return nil
}

// ── Mock SeminarHallRepository ──

type mockHallRepo struct {
	hall *model.SeminarHall
}

func newMockHallRepo() *mockHallRepo {
	return &mockHallRepo{
		hall: &model.SeminarHall{
			HallID:      "hall-001",
			Name:        "Main Seminar Hall",
			Capacity:    100,
			IsAvailable: true,
		},
	}
}

func (m *mockHallRepo) Get(_ context.Context) (*model.SeminarHall, error) {
	if m.hall == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.hall
	return &cp, nil
}

func (m *mockHallRepo) Update(_ context.Context, hall *model.SeminarHall) error {
	m.hall = hall
	return nil
}

// ── Mock SlotRequestRepository ──

type mockSlotRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*model.SlotRequest
	seq      int
	clock    time.Time
}

func newMockSlotRequestRepo() *mockSlotRequestRepo {
	return &mockSlotRequestRepo{
		requests: make(map[string]*model.SlotRequest),
		clock:    time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (m *mockSlotRequestRepo) seed(r *model.SlotRequest) *model.SlotRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.RequestID == "" {
		m.seq++
		r.RequestID = fmt.Sprintf("sr-%03d", m.seq)
	}
	if r.RequestedAt.IsZero() {
		m.clock = m.clock.Add(time.Minute)
		r.RequestedAt = m.clock
	}
	m.requests[r.RequestID] = r
	return r
}

func (m *mockSlotRequestRepo) Create(_ context.Context, req *model.SlotRequest) error {
	m.seed(req)
	return nil
}

func (m *mockSlotRequestRepo) GetByID(_ context.Context, id string) (*model.SlotRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSlotRequestRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.SlotRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.SlotRequest
	for _, r := range m.requests {
		if r.TeacherID == teacherID {
			result = append(result, *r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority > result[j].Priority
		}
		return result[i].RequestedAt.Before(result[j].RequestedAt)
	})
	return result, nil
}

func (m *mockSlotRequestRepo) ListByStudent(_ context.Context, studentID string) ([]model.SlotRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.SlotRequest
	for _, r := range m.requests {
		if r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].RequestedAt.After(result[j].RequestedAt)
	})
	return result, nil
}

func (m *mockSlotRequestRepo) FindOverlapping(_ context.Context, teacherID, date string, startMin, endMin int, status, excludeID string) ([]model.SlotRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.SlotRequest
	for _, r := range m.requests {
		if r.TeacherID != teacherID || r.Date != date || r.Status != status {
			continue
		}
		if excludeID != "" && r.RequestID == excludeID {
			continue
		}
		if timeutil.Overlaps(r.StartMin, r.EndMin, startMin, endMin) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockSlotRequestRepo) UpdateStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = status
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	mu            sync.Mutex
	notifications []*model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("nt-%03d", len(m.notifications)+1)
	}
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, *n)
	}
	return result, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notifications {
		if n.NotificationID == id && n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// ── Mock 通知网关 ──

type mockGateway struct {
	mu     sync.Mutex
	events []notify.Event
}

func newMockGateway() *mockGateway {
	return &mockGateway{}
}

func (m *mockGateway) Notify(_ context.Context, _ string, event notify.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// eventsFor 按预约 ID 过滤收到的事件
func (m *mockGateway) eventsFor(bookingID string) []notify.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []notify.Event
	for _, e := range m.events {
		if e.BookingID == bookingID {
			result = append(result, e)
		}
	}
	return result
}
