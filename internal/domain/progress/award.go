package progress

// ══════════════════════════════════════════════════════════════════════════════
// XP AWARD SCHEDULE (Схема начисления XP)
// ══════════════════════════════════════════════════════════════════════════════

// Константы схемы начисления XP за попытку.
const (
	// BaseXP - базовое начисление за завершённую попытку.
	BaseXP = 30
	// HighScoreBonusXP - бонус за результат 80% и выше.
	HighScoreBonusXP = 10
	// PerfectBonusXP - бонус за результат 100%.
	PerfectBonusXP = 20
	// HighScoreThreshold - порог для бонуса за высокий результат.
	HighScoreThreshold = 80
	// MaxAwardXP - максимум за одну попытку.
	MaxAwardXP = BaseXP + HighScoreBonusXP + PerfectBonusXP
)

// XPReason описывает причину начисления XP.
type XPReason string

const (
	// ReasonQuizCompleted - XP за завершённый квиз.
	ReasonQuizCompleted XPReason = "quiz_completed"
	// ReasonStreakBonus - бонус за серию (зарезервировано).
	ReasonStreakBonus XPReason = "streak_bonus"
)

// ComputeAward вычисляет размер начисления XP по проценту результата.
// Схема: 30 базовых + 10 при score >= 80 + 20 при score == 100.
func ComputeAward(scorePercent int) int {
	award := BaseXP
	if scorePercent >= HighScoreThreshold {
		award += HighScoreBonusXP
	}
	if scorePercent == 100 {
		award += PerfectBonusXP
	}
	return award
}
