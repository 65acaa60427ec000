package models

import "time"

// ContentItem представляет элемент каталога: урок или видео программы.
// WeekNumber — неделя программы, начиная с которой элемент открывается
// (всегда >= 1). RequiredTier — минимальный уровень подписки для доступа.
// Каталог хранится в БД и неизменен с точки зрения пользователя.
type ContentItem struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	WeekNumber   int    `json:"week_number"`
	RequiredTier Tier   `json:"required_tier"`
}

// Access — итоговое решение по показу элемента контента пользователю.
type Access string

const (
	// AccessGranted — контент доступен, можно показывать.
	AccessGranted Access = "show"
	// AccessLockedTier — уровень подписки пользователя ниже требуемого.
	// Имеет приоритет над блокировкой по расписанию.
	AccessLockedTier Access = "locked_tier"
	// AccessLockedSchedule — уровень достаточен, но неделя открытия ещё не наступила.
	AccessLockedSchedule Access = "locked_schedule"
)

// ContentDecision — элемент каталога вместе с вердиктом доступа.
// ReleaseDate и Countdown заполняются только при AccessLockedSchedule.
type ContentDecision struct {
	Item        ContentItem `json:"item"`
	Access      Access      `json:"access"`
	ReleaseDate *time.Time  `json:"release_date,omitempty"`
	Countdown   string      `json:"countdown,omitempty"`
}
