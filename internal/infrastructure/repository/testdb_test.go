package repository

import (
	"context"
	"fmt"
	"testing"

	"sidequest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Один коннект, чтобы под конкурентными тестами не ловить SQLITE_BUSY
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Location{},
		&domain.Quest{},
		&domain.Progress{},
		&domain.GeoPhoto{},
		&domain.GeoAttempt{},
		&domain.Achievement{},
		&domain.UserAchievement{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, points int) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:     uuid.New(),
		Email:  uuid.NewString() + "@campus.test",
		Points: points,
	}
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestQuest(t *testing.T, db *gorm.DB, multiplayer bool, reward int) *domain.Quest {
	t.Helper()
	repo := NewQuestRepository(db)
	loc := &domain.Location{ID: uuid.New(), Name: "Главный корпус", X: 120, Y: 340}
	if err := repo.CreateLocation(context.Background(), loc); err != nil {
		t.Fatalf("failed to create test location: %v", err)
	}
	quest := &domain.Quest{
		ID:            uuid.New(),
		Title:         "Найди аудиторию",
		LocationID:    loc.ID,
		IsMultiplayer: multiplayer,
		RewardPoints:  reward,
	}
	if err := repo.Create(context.Background(), quest); err != nil {
		t.Fatalf("failed to create test quest: %v", err)
	}
	return quest
}

func createTestPhoto(t *testing.T, db *gorm.DB, category, difficulty string, verified bool) *domain.GeoPhoto {
	t.Helper()
	photo := &domain.GeoPhoto{
		ID:         uuid.New(),
		ImageURL:   "https://cdn.test/photo.jpg",
		X:          500,
		Y:          700,
		Category:   category,
		Difficulty: difficulty,
		Verified:   verified,
	}
	if err := NewGeoThinkrRepository(db).CreatePhoto(context.Background(), photo); err != nil {
		t.Fatalf("failed to create test photo: %v", err)
	}
	return photo
}

func userPoints(t *testing.T, db *gorm.DB, userID uuid.UUID) int {
	t.Helper()
	user, err := NewUserRepository(db).GetByID(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return user.Points
}
