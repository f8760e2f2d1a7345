package timeutil

import (
	"errors"
	"testing"
)

// ── ToMinutes 测试 ──

func TestToMinutes_Valid(t *testing.T) {
	cases := []struct {
		clock string
		want  int
	}{
		{"0:00", 0},
		{"8:10", 490},
		{"08:10", 490},
		{"10:00", 600},
		{"23:59", 1439},
	}

	for _, c := range cases {
		got, err := ToMinutes(c.clock)
		if err != nil {
			t.Errorf("ToMinutes(%q) 应成功: %v", c.clock, err)
			continue
		}
		if got != c.want {
			t.Errorf("ToMinutes(%q) 期望 %d，实际 %d", c.clock, c.want, got)
		}
	}
}

func TestToMinutes_Invalid(t *testing.T) {
	cases := []string{"", "8", "8:5", "abc", "8:ab", "25:00", "10:60", "123:00", "10:00:00"}

	for _, c := range cases {
		if _, err := ToMinutes(c); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ToMinutes(%q) 期望 ErrInvalidTimeFormat，实际: %v", c, err)
		}
	}
}

// ── MinutesToClock 测试 ──

func TestMinutesToClock_RoundTrip(t *testing.T) {
	if got := MinutesToClock(490); got != "8:10" {
		t.Errorf("期望 8:10，实际 %s", got)
	}
	if got := MinutesToClock(600); got != "10:00" {
		t.Errorf("期望 10:00，实际 %s", got)
	}
	if got := MinutesToClock(0); got != "0:00" {
		t.Errorf("期望 0:00，实际 %s", got)
	}
}

// ── Overlaps 测试 ──

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"完全重叠", 600, 720, 600, 720, true},
		{"部分重叠", 600, 720, 660, 780, true},
		{"包含关系", 600, 720, 630, 660, true},
		{"端点相接不重叠", 540, 600, 600, 660, false},
		{"端点相接不重叠(反向)", 600, 660, 540, 600, false},
		{"完全分离", 480, 540, 600, 660, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) 期望 %v，实际 %v",
					c.aStart, c.aEnd, c.bStart, c.bEnd, c.want, got)
			}
			// 重叠关系对称
			if got := Overlaps(c.bStart, c.bEnd, c.aStart, c.aEnd); got != c.want {
				t.Errorf("Overlaps 应满足对称性: (%d,%d) vs (%d,%d)", c.bStart, c.bEnd, c.aStart, c.aEnd)
			}
		})
	}
}
