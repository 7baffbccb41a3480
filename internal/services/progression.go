package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/repos"
)

// ProgressionResult is the streak/points state after a submission.
type ProgressionResult struct {
	Streak      int
	TotalPoints int
}

type ProgressionService interface {
	Apply(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, scoreEarned int) (*ProgressionResult, error)
}

type progressionService struct {
	db          *gorm.DB
	log         *logger.Logger
	clock       Clock
	profileRepo repos.ProfileRepo
	recordRepo  repos.LearningRecordRepo
}

func NewProgressionService(db *gorm.DB, log *logger.Logger, clock Clock, profileRepo repos.ProfileRepo, recordRepo repos.LearningRecordRepo) ProgressionService {
	return &progressionService{
		db:          db,
		log:         log.With("service", "ProgressionService"),
		clock:       clock,
		profileRepo: profileRepo,
		recordRepo:  recordRepo,
	}
}

// Apply recomputes the student's streak and adds scoreEarned to their
// points. It runs after the submission's record is persisted, so the
// count of completed-today records already includes the submission being
// processed: a count strictly greater than one means some earlier
// submission today already extended the streak, and it stays unchanged.
// Otherwise a completed record yesterday extends the streak by one, and
// no record yesterday resets it to one. Points accumulate regardless.
func (s *progressionService) Apply(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, scoreEarned int) (*ProgressionResult, error) {
	profile, err := s.profileRepo.GetByID(ctx, tx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return &ProgressionResult{}, nil
	}

	todayStart := StartOfDay(s.clock.Now())
	todayEnd := todayStart.Add(24 * time.Hour)
	yesterdayStart := todayStart.Add(-24 * time.Hour)

	todayCount, err := s.recordRepo.CountCompletedBetween(ctx, tx, studentID, todayStart, todayEnd)
	if err != nil {
		return nil, fmt.Errorf("count today's records: %w", err)
	}
	yesterdayCount, err := s.recordRepo.CountCompletedBetween(ctx, tx, studentID, yesterdayStart, todayStart)
	if err != nil {
		return nil, fmt.Errorf("count yesterday's records: %w", err)
	}

	var newStreak int
	switch {
	case todayCount > 1:
		newStreak = profile.StreakCount
	case yesterdayCount > 0:
		newStreak = profile.StreakCount + 1
	default:
		newStreak = 1
	}

	newTotalPoints := profile.TotalPoints + scoreEarned

	if err := s.profileRepo.UpdateProgress(ctx, tx, studentID, newStreak, newTotalPoints); err != nil {
		return nil, fmt.Errorf("persist progression: %w", err)
	}
	return &ProgressionResult{Streak: newStreak, TotalPoints: newTotalPoints}, nil
}
