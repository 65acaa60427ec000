// Package timeline реализует недельный график программы: вычисление текущей
// недели от даты зачисления пользователя и открытие контента по расписанию.
//
// Все функции чистые: текущее время передаётся параметром, системные часы
// вызывает только внешний код. Это позволяет тестировать границы недель
// без подмены глобального времени.
package timeline

import (
	"fmt"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// CurrentWeek возвращает номер текущей недели программы, начиная с 1.
// Неделя — целое число полных 7-дневных периодов с момента зачисления плюс один.
// Если now раньше enrolledAt (рассинхрон часов, некорректные данные),
// результат всё равно 1, не ноль и не отрицательное число.
func CurrentWeek(enrolledAt, now time.Time) int {
	if now.Before(enrolledAt) {
		return 1
	}
	return int(now.Sub(enrolledAt)/week) + 1
}

// IsAvailable сообщает, открыт ли контент с неделей requiredWeek на неделе currentWeek.
// Открытие монотонно: однажды открытый контент не закрывается.
func IsAvailable(requiredWeek, currentWeek int) bool {
	return requiredWeek <= currentWeek
}

// ReleaseDate возвращает абсолютный момент открытия контента недели requiredWeek.
// Не зависит от текущего времени.
func ReleaseDate(enrolledAt time.Time, requiredWeek int) time.Time {
	return enrolledAt.Add(time.Duration(requiredWeek-1) * week)
}

// TimeUntilRelease форматирует оставшееся до открытия время для показа пользователю.
// Возвращает пустую строку, если контент уже открыт.
//
// Остаток округляется вверх до целых дней, и только затем решается,
// дни это или недели: релиз через 30 часов — это "Unlocks in 2 days", не "1 day".
// Недели — целые дни, делённые на 7 с округлением вверх.
func TimeUntilRelease(releaseDate, now time.Time) string {
	remaining := releaseDate.Sub(now)
	if remaining <= 0 {
		return ""
	}

	days := int((remaining + day - time.Nanosecond) / day)
	switch {
	case days == 1:
		return "Unlocks tomorrow"
	case days <= 7:
		return fmt.Sprintf("Unlocks in %d days", days)
	default:
		weeks := (days + 6) / 7
		return fmt.Sprintf("Unlocks in %d weeks", weeks)
	}
}
