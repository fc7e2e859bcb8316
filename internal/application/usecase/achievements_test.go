package usecase

import (
	"sort"
	"testing"

	"sidequest/internal/domain"
)

func attempts(points ...int) []domain.GeoAttempt {
	history := make([]domain.GeoAttempt, 0, len(points))
	for _, p := range points {
		history = append(history, domain.GeoAttempt{Points: p})
	}
	return history
}

func TestQualifiedAchievements(t *testing.T) {
	tests := []struct {
		name       string
		history    []domain.GeoAttempt
		latest     domain.GeoAttempt
		categories []string
		want       []string
	}{
		{
			name:    "first guess only",
			history: attempts(200),
			latest:  domain.GeoAttempt{Tier: TierClose, Points: 200},
			want:    []string{AchFirstGuess},
		},
		{
			name:    "first spot-on without hints",
			history: attempts(500),
			latest:  domain.GeoAttempt{Tier: TierSpotOn, Points: 500, HintsUsed: 0},
			want:    []string{AchFirstGuess, AchNoHints},
		},
		{
			name:    "spot-on with a hint is not no_hints",
			history: attempts(400),
			latest:  domain.GeoAttempt{Tier: TierSpotOn, Points: 400, HintsUsed: 1},
			want:    []string{AchFirstGuess},
		},
		{
			name:    "ten games",
			history: attempts(0, 0, 0, 0, 0, 0, 0, 0, 0, 200),
			latest:  domain.GeoAttempt{Tier: TierClose, Points: 200},
			want:    []string{AchFirstGuess, AchGames10},
		},
		{
			name:    "five spot-ons",
			history: attempts(500, 500, 0, 500, 500, 500),
			latest:  domain.GeoAttempt{Tier: TierSpotOn, Points: 500, HintsUsed: 1},
			want:    []string{AchFirstGuess, AchSpotOn5},
		},
		{
			name:    "perfect streak of three",
			history: attempts(0, 500, 500, 500),
			latest:  domain.GeoAttempt{Tier: TierSpotOn, Points: 500, HintsUsed: 2},
			want:    []string{AchFirstGuess, AchPerfectStreak3},
		},
		{
			name:    "streak broken by miss",
			history: attempts(500, 500, 0),
			latest:  domain.GeoAttempt{Tier: TierMiss, Points: 0},
			want:    []string{AchFirstGuess},
		},
		{
			name:       "all categories covered",
			history:    attempts(0, 0, 0, 0, 0),
			latest:     domain.GeoAttempt{Tier: TierMiss, Points: 0},
			categories: []string{"landmark", "building", "nature", "statue", "other"},
			want:       []string{AchFirstGuess, AchAllCategories},
		},
		{
			name:       "partial categories do not count",
			history:    attempts(0, 0, 0, 0),
			latest:     domain.GeoAttempt{Tier: TierMiss, Points: 0},
			categories: []string{"landmark", "building", "nature", "statue"},
			want:       []string{AchFirstGuess},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QualifiedAchievements(tt.history, tt.latest, tt.categories)
			sort.Strings(got)
			want := append([]string(nil), tt.want...)
			sort.Strings(want)

			if len(got) != len(want) {
				t.Fatalf("QualifiedAchievements() = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("QualifiedAchievements() = %v, want %v", got, want)
				}
			}
		})
	}
}

// Повторный прогон по той же истории должен дать тот же набор
func TestQualifiedAchievementsDeterministic(t *testing.T) {
	history := attempts(500, 500, 500, 200, 500)
	latest := domain.GeoAttempt{Tier: TierSpotOn, Points: 500}
	categories := []string{"building", "nature"}

	first := QualifiedAchievements(history, latest, categories)
	second := QualifiedAchievements(history, latest, categories)

	if len(first) != len(second) {
		t.Fatalf("evaluation is not deterministic: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("evaluation is not deterministic: %v vs %v", first, second)
		}
	}
}
