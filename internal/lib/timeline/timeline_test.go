package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var enrolledAt = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

func TestCurrentWeek(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{
			name: "момент зачисления — первая неделя",
			now:  enrolledAt,
			want: 1,
		},
		{
			name: "шесть дней спустя — всё ещё первая неделя",
			now:  enrolledAt.Add(6 * 24 * time.Hour),
			want: 1,
		},
		{
			name: "ровно семь дней — вторая неделя",
			now:  enrolledAt.Add(7 * 24 * time.Hour),
			want: 2,
		},
		{
			name: "середина пятой недели",
			now:  enrolledAt.Add(30 * 24 * time.Hour),
			want: 5,
		},
		{
			name: "часы отстают от даты зачисления — не меньше первой недели",
			now:  enrolledAt.Add(-48 * time.Hour),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentWeek(enrolledAt, tt.now))
		})
	}
}

func TestCurrentWeek_IncrementsWeekly(t *testing.T) {
	// Неделя растёт ровно на единицу каждые 7 суток, без дробных значений.
	for i := range 52 {
		now := enrolledAt.Add(time.Duration(i) * 7 * 24 * time.Hour)
		assert.Equal(t, i+1, CurrentWeek(enrolledAt, now))

		justBefore := now.Add(-time.Second)
		if i > 0 {
			assert.Equal(t, i, CurrentWeek(enrolledAt, justBefore))
		}
	}
}

func TestIsAvailable_Monotonic(t *testing.T) {
	// Открытый контент остаётся открытым на всех последующих неделях.
	const requiredWeek = 4
	for currentWeek := 1; currentWeek <= 12; currentWeek++ {
		got := IsAvailable(requiredWeek, currentWeek)
		assert.Equal(t, currentWeek >= requiredWeek, got,
			"week %d", currentWeek)
	}
}

func TestReleaseDate(t *testing.T) {
	tests := []struct {
		name string
		week int
		want time.Time
	}{
		{
			name: "первая неделя открыта с момента зачисления",
			week: 1,
			want: enrolledAt,
		},
		{
			name: "пятая неделя — через 28 дней",
			week: 5,
			want: enrolledAt.Add(28 * 24 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, ReleaseDate(enrolledAt, tt.week).Equal(tt.want))
		})
	}
}

func TestTimeUntilRelease(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{
			name:      "уже открыт",
			remaining: -time.Hour,
			want:      "",
		},
		{
			name:      "открывается прямо сейчас",
			remaining: 0,
			want:      "",
		},
		{
			name:      "20 часов — завтра",
			remaining: 20 * time.Hour,
			want:      "Unlocks tomorrow",
		},
		{
			name:      "ровно сутки — завтра",
			remaining: 24 * time.Hour,
			want:      "Unlocks tomorrow",
		},
		{
			name:      "25 часов округляются вверх до двух дней",
			remaining: 25 * time.Hour,
			want:      "Unlocks in 2 days",
		},
		{
			name:      "30 часов — два дня, не один",
			remaining: 30 * time.Hour,
			want:      "Unlocks in 2 days",
		},
		{
			name:      "ровно семь дней — ещё дни",
			remaining: 7 * 24 * time.Hour,
			want:      "Unlocks in 7 days",
		},
		{
			name:      "восемь дней — уже недели",
			remaining: 8 * 24 * time.Hour,
			want:      "Unlocks in 2 weeks",
		},
		{
			name:      "ровно десять дней — две недели",
			remaining: 10 * 24 * time.Hour,
			want:      "Unlocks in 2 weeks",
		},
		{
			name:      "три недели",
			remaining: 15 * 24 * time.Hour,
			want:      "Unlocks in 3 weeks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeUntilRelease(now.Add(tt.remaining), now))
		})
	}
}
