package models

import "fmt"

// Tier — уровень подписки пользователя. Уровни строго упорядочены,
// сравнение выполняется только через Rank и Meets: это единственное
// место в коде, где определён порядок уровней.
type Tier string

// Уровни подписки от младшего к старшему.
const (
	TierFree       Tier = "free"
	TierFoundation Tier = "foundation"
	TierMastery    Tier = "mastery"
	TierExecutive  Tier = "executive"
)

var tierRanks = map[Tier]int{
	TierFree:       0,
	TierFoundation: 1,
	TierMastery:    2,
	TierExecutive:  3,
}

// Rank возвращает порядковый номер уровня. Неизвестный уровень
// деградирует до free: доступ лучше занизить, чем завысить.
func (t Tier) Rank() int {
	return tierRanks[t]
}

// Meets сообщает, достаточно ли уровня t для требуемого уровня required.
func (t Tier) Meets(required Tier) bool {
	return t.Rank() >= required.Rank()
}

// ParseTier преобразует строку из внешнего источника в Tier.
func ParseTier(s string) (Tier, error) {
	tier := Tier(s)
	if _, ok := tierRanks[tier]; !ok {
		return "", fmt.Errorf("unknown subscription tier: %q", s)
	}
	return tier, nil
}
