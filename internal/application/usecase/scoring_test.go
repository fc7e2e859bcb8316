package usecase

import (
	"math"
	"testing"
)

func TestScoreTierBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		distance   float64
		difficulty string
		wantTier   string
		wantBase   int
	}{
		{name: "easy spot-on at zero", distance: 0, difficulty: "easy", wantTier: TierSpotOn, wantBase: 500},
		{name: "easy spot-on at boundary", distance: 100, difficulty: "easy", wantTier: TierSpotOn, wantBase: 500},
		{name: "easy close just past boundary", distance: 100.01, difficulty: "easy", wantTier: TierClose, wantBase: 200},
		{name: "easy close at boundary", distance: 300, difficulty: "easy", wantTier: TierClose, wantBase: 200},
		{name: "easy miss", distance: 300.01, difficulty: "easy", wantTier: TierMiss, wantBase: 0},
		{name: "medium spot-on at boundary", distance: 75, difficulty: "medium", wantTier: TierSpotOn, wantBase: 500},
		{name: "medium close just past boundary", distance: 75.01, difficulty: "medium", wantTier: TierClose, wantBase: 200},
		{name: "medium close at boundary", distance: 200, difficulty: "medium", wantTier: TierClose, wantBase: 200},
		{name: "medium miss", distance: 201, difficulty: "medium", wantTier: TierMiss, wantBase: 0},
		{name: "hard spot-on at boundary", distance: 50, difficulty: "hard", wantTier: TierSpotOn, wantBase: 500},
		{name: "hard close at boundary", distance: 150, difficulty: "hard", wantTier: TierClose, wantBase: 200},
		{name: "hard miss", distance: 150.5, difficulty: "hard", wantTier: TierMiss, wantBase: 0},
		{name: "unknown difficulty falls back to easy", distance: 99, difficulty: "nightmare", wantTier: TierSpotOn, wantBase: 500},
		{name: "empty difficulty falls back to easy", distance: 250, difficulty: "", wantTier: TierClose, wantBase: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Дистанцию задаем по горизонтали, чтобы не возиться с гипотенузой
			got := Score(tt.distance, 0, 0, 0, tt.difficulty, 0)
			if got.Tier != tt.wantTier {
				t.Errorf("Score() tier = %q, want %q", got.Tier, tt.wantTier)
			}
			if got.BasePoints != tt.wantBase {
				t.Errorf("Score() basePoints = %d, want %d", got.BasePoints, tt.wantBase)
			}
			if got.FinalPoints != tt.wantBase {
				t.Errorf("Score() finalPoints = %d, want %d with no hints", got.FinalPoints, tt.wantBase)
			}
		})
	}
}

func TestScoreEuclideanDistance(t *testing.T) {
	got := Score(3, 4, 0, 0, "easy", 0)
	if math.Abs(got.Distance-5) > 1e-9 {
		t.Errorf("Score() distance = %f, want 5", got.Distance)
	}

	got = Score(110, 250, 10, 250, "easy", 0)
	if math.Abs(got.Distance-100) > 1e-9 {
		t.Errorf("Score() distance = %f, want 100", got.Distance)
	}
}

func TestScoreHintDeduction(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		hintsUsed int
		wantFinal int
	}{
		{name: "one hint", distance: 0, hintsUsed: 1, wantFinal: 400},
		{name: "two hints", distance: 0, hintsUsed: 2, wantFinal: 300},
		{name: "five hints floor at zero", distance: 0, hintsUsed: 5, wantFinal: 0},
		{name: "many hints never negative", distance: 0, hintsUsed: 100, wantFinal: 0},
		{name: "close tier eaten by hints", distance: 250, hintsUsed: 2, wantFinal: 0},
		{name: "miss stays zero with hints", distance: 500, hintsUsed: 3, wantFinal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.distance, 0, 0, 0, "easy", tt.hintsUsed)
			if got.FinalPoints != tt.wantFinal {
				t.Errorf("Score() finalPoints = %d, want %d", got.FinalPoints, tt.wantFinal)
			}
			if got.FinalPoints < 0 {
				t.Errorf("Score() finalPoints = %d, must never be negative", got.FinalPoints)
			}
			if got.FinalPoints > got.BasePoints {
				t.Errorf("Score() finalPoints = %d exceeds basePoints = %d", got.FinalPoints, got.BasePoints)
			}
		})
	}
}

// Счет не должен расти с расстоянием
func TestScoreMonotonic(t *testing.T) {
	for _, difficulty := range []string{"easy", "medium", "hard"} {
		prev := math.MaxInt
		for r := 0.0; r <= 400; r += 0.5 {
			got := Score(r, 0, 0, 0, difficulty, 0)
			if got.FinalPoints > prev {
				t.Fatalf("difficulty %s: score increased from %d to %d at distance %f",
					difficulty, prev, got.FinalPoints, r)
			}
			prev = got.FinalPoints
		}
	}
}

// Сценарий из игры: hard, промах на 40 пикселей, одна подсказка
func TestScoreHardWithHint(t *testing.T) {
	got := Score(40, 0, 0, 0, "hard", 1)
	if got.Tier != TierSpotOn {
		t.Errorf("tier = %q, want %q", got.Tier, TierSpotOn)
	}
	if got.BasePoints != 500 {
		t.Errorf("basePoints = %d, want 500", got.BasePoints)
	}
	if got.FinalPoints != 400 {
		t.Errorf("finalPoints = %d, want 400", got.FinalPoints)
	}
}
