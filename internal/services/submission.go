package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/repos"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

// ResponseInput is one answered question in a submission.
type ResponseInput struct {
	QuestionID       uuid.UUID       `json:"question_id"`
	StudentAnswer    json.RawMessage `json:"student_answer"`
	IsCorrect        *bool           `json:"is_correct"`
	Score            int             `json:"score"`
	TimeSpentSeconds int             `json:"time_spent_seconds"`
	Attempts         int             `json:"attempts"`
}

// SubmitInput is a completed attempt for one daily set.
type SubmitInput struct {
	DailySetID       uuid.UUID       `json:"daily_set_id"`
	ClassID          *uuid.UUID      `json:"class_id,omitempty"`
	TotalScore       int             `json:"total_score"`
	MaxScore         int             `json:"max_score"`
	TimeSpentSeconds int             `json:"time_spent_seconds"`
	EmotionBefore    json.RawMessage `json:"emotion_before,omitempty"`
	EmotionAfter     json.RawMessage `json:"emotion_after,omitempty"`
	Readiness        json.RawMessage `json:"readiness,omitempty"`
	Responses        []ResponseInput `json:"responses"`
}

type SubmitResult struct {
	RecordID    uuid.UUID  `json:"record_id"`
	Streak      int        `json:"streak"`
	TotalPoints int        `json:"total_points"`
	NewBadges   []NewBadge `json:"new_badges"`
}

type SubmissionService interface {
	Submit(ctx context.Context, studentID uuid.UUID, input SubmitInput) (*SubmitResult, error)
}

type submissionService struct {
	db           *gorm.DB
	log          *logger.Logger
	clock        Clock
	setRepo      repos.DailySetRepo
	recordRepo   repos.LearningRecordRepo
	responseRepo repos.QuestionResponseRepo
	progression  ProgressionService
	badges       BadgeService
}

func NewSubmissionService(
	db *gorm.DB,
	log *logger.Logger,
	clock Clock,
	setRepo repos.DailySetRepo,
	recordRepo repos.LearningRecordRepo,
	responseRepo repos.QuestionResponseRepo,
	progression ProgressionService,
	badges BadgeService,
) SubmissionService {
	return &submissionService{
		db:           db,
		log:          log.With("service", "SubmissionService"),
		clock:        clock,
		setRepo:      setRepo,
		recordRepo:   recordRepo,
		responseRepo: responseRepo,
		progression:  progression,
		badges:       badges,
	}
}

// Submit persists the attempt and derives the gamification state.
//
// The record upsert, the response replacement and the streak/points update
// run in one transaction: a resubmission either fully replaces the prior
// attempt or leaves it untouched. Badge evaluation runs after commit;
// awards are insert-or-ignore and individually skippable, so a badge
// failure never loses a submission.
func (s *submissionService) Submit(ctx context.Context, studentID uuid.UUID, input SubmitInput) (*SubmitResult, error) {
	if input.DailySetID == uuid.Nil {
		return nil, apperr.Validation("daily_set_id is required")
	}
	if input.Responses == nil {
		return nil, apperr.Validation("responses must be an array")
	}

	set, err := s.setRepo.GetByID(ctx, nil, input.DailySetID)
	if err != nil {
		return nil, apperr.Storage("load daily set", err)
	}
	if set == nil {
		return nil, apperr.NotFound("daily set %s not found", input.DailySetID)
	}

	now := s.clock.Now()
	var recordID uuid.UUID
	var progression *ProgressionResult

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.recordRepo.GetByStudentAndSet(ctx, tx, studentID, input.DailySetID)
		if err != nil {
			return err
		}

		completedAt := now
		if existing != nil {
			recordID = existing.ID
			existing.CompletedAt = &completedAt
			existing.TotalScore = input.TotalScore
			existing.MaxScore = input.MaxScore
			existing.TimeSpentSeconds = input.TimeSpentSeconds
			existing.IsCompleted = true
			existing.EmotionBefore = jsonOrNil(input.EmotionBefore)
			existing.EmotionAfter = jsonOrNil(input.EmotionAfter)
			existing.Readiness = jsonOrNil(input.Readiness)
			if err := s.recordRepo.Update(ctx, tx, existing); err != nil {
				return err
			}
			if err := s.responseRepo.DeleteByRecordID(ctx, tx, recordID); err != nil {
				return err
			}
		} else {
			recordID = uuid.New()
			record := &types.LearningRecord{
				ID:               recordID,
				StudentID:        studentID,
				DailySetID:       input.DailySetID,
				ClassID:          input.ClassID,
				StartedAt:        now,
				CompletedAt:      &completedAt,
				TotalScore:       input.TotalScore,
				MaxScore:         input.MaxScore,
				TimeSpentSeconds: input.TimeSpentSeconds,
				IsCompleted:      true,
				EmotionBefore:    jsonOrNil(input.EmotionBefore),
				EmotionAfter:     jsonOrNil(input.EmotionAfter),
				Readiness:        jsonOrNil(input.Readiness),
			}
			if err := s.recordRepo.Create(ctx, tx, record); err != nil {
				return err
			}
		}

		rows := make([]*types.QuestionResponse, 0, len(input.Responses))
		for _, resp := range input.Responses {
			rows = append(rows, &types.QuestionResponse{
				ID:               uuid.New(),
				LearningRecordID: recordID,
				QuestionID:       resp.QuestionID,
				StudentAnswer:    jsonOrNil(resp.StudentAnswer),
				IsCorrect:        resp.IsCorrect,
				Score:            resp.Score,
				TimeSpentSeconds: resp.TimeSpentSeconds,
				Attempts:         resp.Attempts,
			})
		}
		if err := s.responseRepo.CreateBatch(ctx, tx, rows); err != nil {
			return err
		}

		progression, err = s.progression.Apply(ctx, tx, studentID, input.TotalScore)
		return err
	})
	if err != nil {
		if apperr.KindOf(err) != apperr.KindUnknown {
			return nil, err
		}
		return nil, apperr.Storage("persist submission", err)
	}

	newBadges, err := s.badges.Evaluate(ctx, studentID, SubmissionOutcome{
		TotalScore:       input.TotalScore,
		MaxScore:         input.MaxScore,
		Streak:           progression.Streak,
		TotalPoints:      progression.TotalPoints,
		TimeSpentSeconds: input.TimeSpentSeconds,
	})
	if err != nil {
		// The submission is already committed; report it with no awards
		// rather than failing the request.
		s.log.Warn("badge evaluation failed", "student_id", studentID, "error", err)
		newBadges = []NewBadge{}
	}

	return &SubmitResult{
		RecordID:    recordID,
		Streak:      progression.Streak,
		TotalPoints: progression.TotalPoints,
		NewBadges:   newBadges,
	}, nil
}

func jsonOrNil(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
