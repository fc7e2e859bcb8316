package usecase

import (
	"math"

	"sidequest/internal/domain"
)

const (
	TierSpotOn = "Spot-on!"
	TierClose  = "Close enough"
	TierMiss   = "Nope"

	spotOnPoints = 500
	closePoints  = 200
	hintCost     = 100
)

type ScoreResult struct {
	Distance    float64
	Tier        string
	BasePoints  int
	FinalPoints int
}

// Радиусы зависят от сложности фото. Неизвестная сложность считается easy.
func difficultyRadii(difficulty string) (spotOn, close float64) {
	switch difficulty {
	case domain.DifficultyMedium:
		return 75, 200
	case domain.DifficultyHard:
		return 50, 150
	default:
		return 100, 300
	}
}

// Score — чистая функция подсчета очков GeoThinkr.
// Расстояние евклидово, в пикселях карты (не геодезическое).
func Score(guessX, guessY, targetX, targetY float64, difficulty string, hintsUsed int) ScoreResult {
	dx := guessX - targetX
	dy := guessY - targetY
	distance := math.Sqrt(dx*dx + dy*dy)

	spotOnRadius, closeRadius := difficultyRadii(difficulty)

	var tier string
	var base int
	switch {
	case distance <= spotOnRadius:
		tier = TierSpotOn
		base = spotOnPoints
	case distance <= closeRadius:
		tier = TierClose
		base = closePoints
	default:
		tier = TierMiss
		base = 0
	}

	// Каждая подсказка стоит 100 очков, но в минус уйти нельзя
	final := base - hintCost*hintsUsed
	if final < 0 {
		final = 0
	}

	return ScoreResult{
		Distance:    distance,
		Tier:        tier,
		BasePoints:  base,
		FinalPoints: final,
	}
}
