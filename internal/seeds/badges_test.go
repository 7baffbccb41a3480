package seeds

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/repos"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

func newBadgeRepo(t *testing.T) repos.BadgeRepo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := gdb.AutoMigrate(&types.Badge{}, &types.StudentBadge{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return repos.NewBadgeRepo(gdb, logger.NewNop())
}

func TestSeedBadges(t *testing.T) {
	badgeRepo := newBadgeRepo(t)
	ctx := context.Background()

	if err := SeedBadges(ctx, logger.NewNop(), badgeRepo); err != nil {
		t.Fatalf("SeedBadges: %v", err)
	}

	count, err := badgeRepo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 15 {
		t.Errorf("seeded badges = %d, want 15", count)
	}

	// A second run must not duplicate the catalog.
	if err := SeedBadges(ctx, logger.NewNop(), badgeRepo); err != nil {
		t.Fatalf("SeedBadges again: %v", err)
	}
	again, err := badgeRepo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("count again: %v", err)
	}
	if again != count {
		t.Errorf("re-seed changed count from %d to %d", count, again)
	}
}
