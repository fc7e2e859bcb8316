package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sidequest/internal/domain"

	"github.com/google/uuid"
)

func TestIncrementPointsAccumulates(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := createTestUser(t, db, 0)

	for _, amount := range []int{100, 250, 50} {
		if err := repo.IncrementPoints(context.Background(), user.ID, amount); err != nil {
			t.Fatalf("IncrementPoints() error = %v", err)
		}
	}

	if got := userPoints(t, db, user.ID); got != 400 {
		t.Errorf("points = %d, want 400", got)
	}
}

// Инкремент — одиночный UPDATE, конкурентные начисления не должны теряться
func TestIncrementPointsConcurrent(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := createTestUser(t, db, 0)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.IncrementPoints(context.Background(), user.ID, 10); err != nil {
				t.Errorf("IncrementPoints() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := userPoints(t, db, user.ID); got != workers*10 {
		t.Errorf("points = %d, want %d (lost update)", got, workers*10)
	}
}

func TestIncrementPointsUnknownUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	err := repo.IncrementPoints(context.Background(), uuid.New(), 100)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("IncrementPoints() error = %v, want ErrUserNotFound", err)
	}
}

func TestAdjustPointsRejectsNegativeBalance(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := createTestUser(t, db, 100)

	if err := repo.AdjustPoints(context.Background(), user.ID, -60); err != nil {
		t.Fatalf("AdjustPoints(-60) error = %v", err)
	}
	if got := userPoints(t, db, user.ID); got != 40 {
		t.Errorf("points = %d, want 40", got)
	}

	err := repo.AdjustPoints(context.Background(), user.ID, -50)
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Errorf("AdjustPoints(-50) error = %v, want ErrInsufficientBalance", err)
	}
	if got := userPoints(t, db, user.ID); got != 40 {
		t.Errorf("points = %d after rejected adjust, want 40", got)
	}
}

func TestTopByPoints(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	createTestUser(t, db, 100)
	second := createTestUser(t, db, 500)
	createTestUser(t, db, 250)

	top, err := repo.TopByPoints(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopByPoints() error = %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopByPoints() returned %d users, want 2", len(top))
	}
	if top[0].ID != second.ID {
		t.Errorf("top user = %s with %d points, want %s", top[0].ID, top[0].Points, second.ID)
	}
}
