package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"campus-hall/pkg/timeutil"
)

// ── 静态课表数据源 ──
//
// 每周固定课表，启动时载入后只读。对外只暴露「某教师某个星期几的忙碌区间」，
// 数据形态（JSON 文件 / ICS 日历）由加载器屏蔽。

// BusyInterval 一个忙碌区间，半开 [StartMin, EndMin)
type BusyInterval struct {
	StartMin int
	EndMin   int
}

// TimetableSource 课表查询接口
type TimetableSource interface {
	// Busy 返回教师在指定星期几（Monday..Friday）的忙碌区间
	Busy(teacherID, day string) []BusyInterval
}

// StaticTimetable 内存课表：teacherID → day → 忙碌区间
type StaticTimetable struct {
	busy map[string]map[string][]BusyInterval
}

// Busy 实现 TimetableSource
func (t *StaticTimetable) Busy(teacherID, day string) []BusyInterval {
	if days, ok := t.busy[teacherID]; ok {
		return days[day]
	}
	return nil
}

func (t *StaticTimetable) add(teacherID, day string, iv BusyInterval) {
	if t.busy[teacherID] == nil {
		t.busy[teacherID] = make(map[string][]BusyInterval)
	}
	t.busy[teacherID][day] = append(t.busy[teacherID][day], iv)
}

// ── JSON 加载器 ──
//
// 文件形态沿用原始周课表格式：
// [{"day": "Monday", "slots": [{"teacher_id": "...", "subject": "...", "start": "8:00", "end": "8:55"}]}]
// subject 为空或 LUNCH 的条目不算忙碌。

type timetableDay struct {
	Day   string          `json:"day"`
	Slots []timetableSlot `json:"slots"`
}

type timetableSlot struct {
	TeacherID string `json:"teacher_id"`
	Subject   string `json:"subject"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// LoadTimetableJSON 从 JSON 文件载入周课表
func LoadTimetableJSON(path string) (*StaticTimetable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取课表文件失败: %w", err)
	}

	var days []timetableDay
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, fmt.Errorf("解析课表 JSON 失败: %w", err)
	}

	t := &StaticTimetable{busy: make(map[string]map[string][]BusyInterval)}
	for _, d := range days {
		for _, slot := range d.Slots {
			if slot.TeacherID == "" || slot.Subject == "" || slot.Subject == "LUNCH" {
				continue
			}
			startMin, err := timeutil.ToMinutes(slot.Start)
			if err != nil {
				return nil, fmt.Errorf("课表时间非法 (%s %s): %w", d.Day, slot.Start, err)
			}
			endMin, err := timeutil.ToMinutes(slot.End)
			if err != nil {
				return nil, fmt.Errorf("课表时间非法 (%s %s): %w", d.Day, slot.End, err)
			}
			t.add(slot.TeacherID, d.Day, BusyInterval{StartMin: startMin, EndMin: endMin})
		}
	}

	return t, nil
}

// ── ICS 加载器 ──
//
// 每个 VEVENT 的 DESCRIPTION 携带教师 ID，DTSTART/DTEND 确定星期几与时间。
// 周六周日的事件忽略（可用性查询只覆盖工作日）。

const icsFetchTimeout = 30 * time.Second

// LoadTimetableICS 从本地文件或 http(s)/webcal URL 载入 ICS 周课表
func LoadTimetableICS(pathOrURL string) (*StaticTimetable, error) {
	reader, closer, err := openICS(pathOrURL)
	if err != nil {
		return nil, err
	}
	defer closer()

	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	t := &StaticTimetable{busy: make(map[string]map[string][]BusyInterval)}
	for _, evt := range cal.Events() {
		desc := evt.GetProperty(ics.ComponentPropertyDescription)
		if desc == nil || desc.Value == "" {
			continue
		}
		teacherID := strings.TrimSpace(desc.Value)

		start, err := evt.GetStartAt()
		if err != nil {
			continue
		}
		end, err := evt.GetEndAt()
		if err != nil {
			continue
		}

		day := start.Weekday()
		if day == time.Saturday || day == time.Sunday {
			continue
		}

		t.add(teacherID, day.String(), BusyInterval{
			StartMin: start.Hour()*60 + start.Minute(),
			EndMin:   end.Hour()*60 + end.Minute(),
		})
	}

	return t, nil
}

func openICS(pathOrURL string) (io.Reader, func(), error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") || strings.HasPrefix(pathOrURL, "webcal://") {
		u := pathOrURL
		if strings.HasPrefix(u, "webcal://") {
			u = "https://" + strings.TrimPrefix(u, "webcal://")
		}
		client := &http.Client{Timeout: icsFetchTimeout}
		resp, err := client.Get(u)
		if err != nil {
			return nil, nil, fmt.Errorf("获取 ICS 失败: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, nil, fmt.Errorf("获取 ICS 失败: HTTP %d", resp.StatusCode)
		}
		return resp.Body, func() { resp.Body.Close() }, nil
	}

	f, err := os.Open(pathOrURL)
	if err != nil {
		return nil, nil, fmt.Errorf("打开 ICS 文件失败: %w", err)
	}
	return f, func() { f.Close() }, nil
}
