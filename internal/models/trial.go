package models

import "time"

// TrialDuration — длительность бесплатного пробного периода.
const TrialDuration = 14 * 24 * time.Hour

// TrialRecord представляет пробный период пользователя.
// Создаётся лениво при первой проверке статуса и далее не изменяется.
type TrialRecord struct {
	UserUID        string    `json:"user_uid"`
	TrialStartDate time.Time `json:"trial_start_date"`
	TrialEndDate   time.Time `json:"trial_end_date"`
}

// TrialStatus — производное состояние пробного периода на конкретный момент времени.
// Вычисляется заново при каждом запросе, не кэшируется.
type TrialStatus struct {
	InTrial  bool      `json:"in_trial"`
	Expired  bool      `json:"expired"`
	DaysLeft int       `json:"days_left"`
	EndsAt   time.Time `json:"ends_at"`
}
