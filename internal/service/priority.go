package service

import (
	"sort"

	"campus-hall/internal/model"
)

// ── 优先级策略 ──
//
// 研讨厅：类别固定映射 student=1 / teacher=2 / hod=3，创建时写入记录后不再重算，
// 即使映射日后调整，历史记录也保留原始数值。
// 面谈申请：教职工 +100，年级 ×10，先到先得由 requested_at 排序承担。

var classPriorities = map[string]int{
	model.ClassStudent: 1,
	model.ClassTeacher: 2,
	model.ClassHOD:     3,
}

// PriorityOf 返回申请人类别对应的优先级；类别未知时 ok 为 false
func PriorityOf(requesterClass string) (int, bool) {
	p, ok := classPriorities[requesterClass]
	return p, ok
}

// lessBooking 仲裁序比较：优先级降序，同优先级按 requested_at 升序（FCFS）
func lessBooking(a, b *model.SeminarBooking) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.RequestedAt.Before(b.RequestedAt)
}

// sortByArbitrationOrder 按仲裁序就地排序
func sortByArbitrationOrder(bookings []model.SeminarBooking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return lessBooking(&bookings[i], &bookings[j])
	})
}

// SlotRequestPriority 面谈申请优先级分值
func SlotRequestPriority(isStaff bool, studentYear int) int {
	p := studentYear * 10
	if isStaff {
		p += 100
	}
	return p
}
