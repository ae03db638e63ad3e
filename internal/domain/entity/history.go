package entity

import "time"

// HistoryEntry 会话历史记录
type HistoryEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Script    string    `json:"script"`
	Hooks     []string  `json:"hooks"`
	Goal      Goal      `json:"goal"`
	Platform  Platform  `json:"platform"`
}

// DefaultHistoryCap 每个会话最多保留的历史条数
const DefaultHistoryCap = 3
