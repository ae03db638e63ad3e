package entity

import "time"

// UsageDayLayout 计数日期格式（UTC 自然日）
const UsageDayLayout = "2006-01-02"

// UsageCounter 会话的每日生成计数
// 约定：Count 仅对 Date 当天有效，其它日期读取时视为 0。
type UsageCounter struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// UsageDay 返回 t 所在的 UTC 自然日
func UsageDay(t time.Time) string {
	return t.UTC().Format(UsageDayLayout)
}

// CountOn 返回指定日期的有效计数
func (u UsageCounter) CountOn(day string) int {
	if u.Date != day || u.Count < 0 {
		return 0
	}
	return u.Count
}
