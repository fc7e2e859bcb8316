package usecase

import (
	"sidequest/internal/domain"
)

const (
	AchFirstGuess     = "first_guess"
	AchGames10        = "games_10"
	AchGames50        = "games_50"
	AchSpotOn5        = "spot_on_5"
	AchSpotOn10       = "spot_on_10"
	AchNoHints        = "no_hints"
	AchPerfectStreak3 = "perfect_streak_3"
	AchAllCategories  = "all_categories"
)

// AchievementCatalog — справочник бейджей, сидируется при старте
func AchievementCatalog() []domain.Achievement {
	return []domain.Achievement{
		{Key: AchFirstGuess, Name: "Первый шаг", Description: "Сделать первую попытку в GeoThinkr", Icon: "🎯"},
		{Key: AchGames10, Name: "Разогрев", Description: "Сыграть 10 раундов", Icon: "🔥"},
		{Key: AchGames50, Name: "Ветеран кампуса", Description: "Сыграть 50 раундов", Icon: "🏆"},
		{Key: AchSpotOn5, Name: "Снайпер", Description: "5 точных попаданий", Icon: "🎯"},
		{Key: AchSpotOn10, Name: "Легенда", Description: "10 точных попаданий", Icon: "⭐"},
		{Key: AchNoHints, Name: "Без подсказок", Description: "Точное попадание без единой подсказки", Icon: "🧠"},
		{Key: AchPerfectStreak3, Name: "Серия", Description: "Три точных попадания подряд", Icon: "⚡"},
		{Key: AchAllCategories, Name: "Картограф", Description: "Сыграть все категории фото", Icon: "🗺️"},
	}
}

// QualifiedAchievements — плоский список независимых правил поверх
// снимка истории (по возрастанию времени, последняя попытка уже внутри).
// Никакого порядка между правилами нет, каждое проверяется само по себе.
func QualifiedAchievements(history []domain.GeoAttempt, latest domain.GeoAttempt, playedCategories []string) []string {
	var qualified []string

	total := len(history)
	if total >= 1 {
		qualified = append(qualified, AchFirstGuess)
	}
	if total >= 10 {
		qualified = append(qualified, AchGames10)
	}
	if total >= 50 {
		qualified = append(qualified, AchGames50)
	}

	spotOn := 0
	for _, a := range history {
		if a.Points >= spotOnPoints {
			spotOn++
		}
	}
	if spotOn >= 5 {
		qualified = append(qualified, AchSpotOn5)
	}
	if spotOn >= 10 {
		qualified = append(qualified, AchSpotOn10)
	}

	if latest.Tier == TierSpotOn && latest.HintsUsed == 0 {
		qualified = append(qualified, AchNoHints)
	}

	if total >= 3 {
		streak := true
		for _, a := range history[total-3:] {
			if a.Points < spotOnPoints {
				streak = false
				break
			}
		}
		if streak {
			qualified = append(qualified, AchPerfectStreak3)
		}
	}

	if coversAllCategories(playedCategories) {
		qualified = append(qualified, AchAllCategories)
	}

	return qualified
}

func coversAllCategories(played []string) bool {
	have := make(map[string]bool, len(played))
	for _, c := range played {
		have[c] = true
	}
	for _, c := range domain.PhotoCategories {
		if !have[c] {
			return false
		}
	}
	return true
}
