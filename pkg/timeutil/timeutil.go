package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat 时间字符串格式非法（要求 H:MM 或 HH:MM）
var ErrInvalidTimeFormat = errors.New("时间格式非法，应为 H:MM 或 HH:MM")

var clockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// ToMinutes 将 "H:MM"/"HH:MM" 格式的钟点解析为自 0 点起的分钟数。
// 小时必须在 0-23，分钟必须在 0-59，否则返回 ErrInvalidTimeFormat。
func ToMinutes(clock string) (int, error) {
	if !clockPattern.MatchString(clock) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}

	parts := strings.SplitN(clock, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])

	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}

	return hour*60 + minute, nil
}

// MinutesToClock 将分钟数还原为 "H:MM" 钟点字符串（与原始课表格式一致，小时不补零）。
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// Overlaps 判断两个半开区间 [aStart, aEnd) 与 [bStart, bEnd) 是否重叠。
// 端点相接不算重叠：10:00 结束的预约与 10:00 开始的预约互不冲突。
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
