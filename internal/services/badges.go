package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/repos"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

// Badge condition tags as stored in badges.condition_type.
const (
	CondFirstComplete    = "first_complete"
	CondStreak3          = "streak_3"
	CondStreak7          = "streak_7"
	CondStreak30         = "streak_30"
	CondStreak100        = "streak_100"
	CondPerfectScore     = "perfect_score"
	CondPoints1000       = "points_1000"
	CondPoints10000      = "points_10000"
	CondEarlyBird        = "early_bird"
	CondWeekendLearner   = "weekend_learner"
	CondMathStreak10     = "math_streak_10"
	CondSpellingStreak20 = "spelling_streak_20"
	CondEnglishStreak30  = "english_streak_30"
	CondHanja50          = "hanja_50"
	CondAllSubject90     = "all_subject_90"
)

// SubmissionOutcome carries the freshly computed submission state the
// badge predicates evaluate against.
type SubmissionOutcome struct {
	TotalScore       int
	MaxScore         int
	Streak           int
	TotalPoints      int
	TimeSpentSeconds int
}

// NewBadge is the award payload returned to the client.
type NewBadge struct {
	ID     uuid.UUID         `json:"id"`
	Name   string            `json:"name"`
	Icon   string            `json:"icon"`
	Rarity types.BadgeRarity `json:"rarity"`
}

type BadgeService interface {
	Evaluate(ctx context.Context, studentID uuid.UUID, outcome SubmissionOutcome) ([]NewBadge, error)
}

type badgeService struct {
	db           *gorm.DB
	log          *logger.Logger
	clock        Clock
	badgeRepo    repos.BadgeRepo
	recordRepo   repos.LearningRecordRepo
	responseRepo repos.QuestionResponseRepo
}

func NewBadgeService(db *gorm.DB, log *logger.Logger, clock Clock, badgeRepo repos.BadgeRepo, recordRepo repos.LearningRecordRepo, responseRepo repos.QuestionResponseRepo) BadgeService {
	return &badgeService{
		db:           db,
		log:          log.With("service", "BadgeService"),
		clock:        clock,
		badgeRepo:    badgeRepo,
		recordRepo:   recordRepo,
		responseRepo: responseRepo,
	}
}

// Evaluate checks every badge the student does not yet hold and awards the
// ones that qualify. Badges are independent; a single submission can award
// several at once. A failing predicate query skips that badge only, it
// never aborts the evaluation or the submission.
func (s *badgeService) Evaluate(ctx context.Context, studentID uuid.UUID, outcome SubmissionOutcome) ([]NewBadge, error) {
	unearned, err := s.badgeRepo.ListUnearned(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("list unearned badges: %w", err)
	}

	newBadges := []NewBadge{}
	for _, badge := range unearned {
		earned, err := s.qualifies(ctx, studentID, badge.ConditionType, outcome)
		if err != nil {
			s.log.Warn("badge condition check failed, skipping", "condition", badge.ConditionType, "error", err)
			continue
		}
		if !earned {
			continue
		}
		award := &types.StudentBadge{
			ID:        uuid.New(),
			StudentID: studentID,
			BadgeID:   badge.ID,
			EarnedAt:  s.clock.Now(),
		}
		if err := s.badgeRepo.AwardIgnoreDuplicate(ctx, nil, award); err != nil {
			s.log.Warn("badge award failed, skipping", "condition", badge.ConditionType, "error", err)
			continue
		}
		newBadges = append(newBadges, NewBadge{
			ID:     badge.ID,
			Name:   badge.Name,
			Icon:   badge.Icon,
			Rarity: badge.Rarity,
		})
	}
	return newBadges, nil
}

func (s *badgeService) qualifies(ctx context.Context, studentID uuid.UUID, conditionType string, outcome SubmissionOutcome) (bool, error) {
	now := s.clock.Now()

	switch conditionType {
	case CondFirstComplete:
		count, err := s.recordRepo.CountCompleted(ctx, nil, studentID)
		return count >= 1, err
	case CondStreak3:
		return outcome.Streak >= 3, nil
	case CondStreak7:
		return outcome.Streak >= 7, nil
	case CondStreak30:
		return outcome.Streak >= 30, nil
	case CondStreak100:
		return outcome.Streak >= 100, nil
	case CondPerfectScore:
		// max_score must be strictly positive so an empty set can never
		// qualify through 0 >= 0.
		return outcome.TotalScore >= outcome.MaxScore && outcome.MaxScore > 0, nil
	case CondPoints1000:
		return outcome.TotalPoints >= 1000, nil
	case CondPoints10000:
		return outcome.TotalPoints >= 10000, nil
	case CondEarlyBird:
		return now.Hour() < 7, nil
	case CondWeekendLearner:
		return now.Weekday() == time.Saturday || now.Weekday() == time.Sunday, nil
	case CondMathStreak10:
		return s.subjectStreak(ctx, studentID, types.SubjectMath, 10)
	case CondSpellingStreak20:
		return s.subjectStreak(ctx, studentID, types.SubjectSpelling, 20)
	case CondEnglishStreak30:
		return s.subjectStreak(ctx, studentID, types.SubjectEnglish, 30)
	case CondHanja50:
		count, err := s.responseRepo.CountCorrectBySubject(ctx, nil, studentID, types.SubjectHanja)
		return count >= 50, err
	case CondAllSubject90:
		return s.allSubjectsAbove(ctx, studentID, 0.90, 5)
	default:
		return false, nil
	}
}

// subjectStreak requires the student's most recent n responses for the
// subject to all be correct, with the full window present. A wrong or
// ungraded answer anywhere in the window breaks the streak.
func (s *badgeService) subjectStreak(ctx context.Context, studentID uuid.UUID, subject types.SubjectType, n int) (bool, error) {
	recent, err := s.responseRepo.RecentBySubject(ctx, nil, studentID, subject, n)
	if err != nil {
		return false, err
	}
	if len(recent) < n {
		return false, nil
	}
	for _, resp := range recent {
		if resp.IsCorrect == nil || !*resp.IsCorrect {
			return false, nil
		}
	}
	return true, nil
}

// allSubjectsAbove requires at least minSubjects distinct graded subjects
// attempted and every attempted subject's accuracy at or above ratio.
func (s *badgeService) allSubjectsAbove(ctx context.Context, studentID uuid.UUID, ratio float64, minSubjects int) (bool, error) {
	stats, err := s.responseRepo.SubjectStats(ctx, nil, studentID, nil, nil)
	if err != nil {
		return false, err
	}
	if len(stats) < minSubjects {
		return false, nil
	}
	for _, row := range stats {
		if row.Total == 0 {
			return false, nil
		}
		if float64(row.Correct)/float64(row.Total) < ratio {
			return false, nil
		}
	}
	return true, nil
}
