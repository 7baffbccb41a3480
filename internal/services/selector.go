package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/repos"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

// DailySetResult is the selector's answer for one (grade, semester, day).
// Set is nil when no published sets exist yet; that is an empty result,
// not an error.
type DailySetResult struct {
	Set       *types.DailySet       `json:"set"`
	Questions []*types.Question     `json:"questions"`
	Record    *types.LearningRecord `json:"record"`
}

type SelectorService interface {
	GetDailySet(ctx context.Context, grade, semester int, dayOverride *int, studentID *uuid.UUID) (*DailySetResult, error)
}

type selectorService struct {
	db         *gorm.DB
	log        *logger.Logger
	clock      Clock
	cache      SetCache
	setRepo    repos.DailySetRepo
	qRepo      repos.QuestionRepo
	recordRepo repos.LearningRecordRepo
}

func NewSelectorService(db *gorm.DB, log *logger.Logger, clock Clock, cache SetCache, setRepo repos.DailySetRepo, qRepo repos.QuestionRepo, recordRepo repos.LearningRecordRepo) SelectorService {
	return &selectorService{
		db:         db,
		log:        log.With("service", "SelectorService"),
		clock:      clock,
		cache:      cache,
		setRepo:    setRepo,
		qRepo:      qRepo,
		recordRepo: recordRepo,
	}
}

// RotatedSetNumber maps a 1-based day of year onto the 1-based set_number
// cycle of length totalSets. The same (grade, semester, day) always lands
// on the same set, and every published set is used with roughly equal
// frequency.
func RotatedSetNumber(dayOfYear int, totalSets int64) int {
	return (dayOfYear-1)%int(totalSets) + 1
}

// GetDailySet resolves the published set assigned to the given day. The
// mapping is stateless: no assignment row needs to exist for the default
// path. When studentID is set, the student's existing LearningRecord for
// the set is attached.
func (s *selectorService) GetDailySet(ctx context.Context, grade, semester int, dayOverride *int, studentID *uuid.UUID) (*DailySetResult, error) {
	if grade < 1 || grade > 6 {
		return nil, apperr.Validation("grade must be between 1 and 6")
	}
	if semester != 1 && semester != 2 {
		return nil, apperr.Validation("semester must be 1 or 2")
	}

	day := DayOfYear(s.clock)
	if dayOverride != nil {
		day = *dayOverride
	}
	if day < 1 {
		return nil, apperr.Validation("day must be a positive day of year")
	}

	set, err := s.resolveSet(ctx, grade, semester, day)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return &DailySetResult{Questions: []*types.Question{}}, nil
	}

	questions, err := s.qRepo.GetBySetID(ctx, nil, set.ID)
	if err != nil {
		return nil, apperr.Storage("load questions", err)
	}

	result := &DailySetResult{Set: set, Questions: questions}
	if studentID != nil {
		record, err := s.recordRepo.GetByStudentAndSet(ctx, nil, *studentID, set.ID)
		if err != nil {
			return nil, apperr.Storage("load learning record", err)
		}
		result.Record = record
	}
	return result, nil
}

func (s *selectorService) resolveSet(ctx context.Context, grade, semester, day int) (*types.DailySet, error) {
	if id, ok := s.cache.Get(ctx, grade, semester, day); ok {
		set, err := s.setRepo.GetByID(ctx, nil, id)
		if err == nil && set != nil && set.IsPublished {
			return set, nil
		}
		// Stale or broken cache entry: fall through to the database.
	}

	totalSets, err := s.setRepo.CountPublished(ctx, nil, grade, semester)
	if err != nil {
		return nil, apperr.Storage("count published sets", err)
	}
	if totalSets == 0 {
		return nil, nil
	}

	setNumber := RotatedSetNumber(day, totalSets)
	set, err := s.setRepo.GetPublished(ctx, nil, grade, semester, setNumber)
	if err != nil {
		return nil, apperr.Storage("load daily set", err)
	}
	if set != nil {
		s.cache.Put(ctx, grade, semester, day, set.ID)
	}
	return set, nil
}
