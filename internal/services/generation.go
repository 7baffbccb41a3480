package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/repos"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type GenerateInput struct {
	Grade         int                 `json:"grade"`
	Semester      int                 `json:"semester"`
	SetNumber     *int                `json:"set_number,omitempty"`
	Theme         string              `json:"theme,omitempty"`
	Subjects      []types.SubjectType `json:"subjects,omitempty"`
	QuestionCount int                 `json:"question_count,omitempty"`
}

type GenerateResult struct {
	Set       *types.DailySet   `json:"set"`
	Questions []*types.Question `json:"questions"`
}

type GenerationService interface {
	GenerateSet(ctx context.Context, callerID uuid.UUID, input GenerateInput) (*GenerateResult, error)
}

type generationService struct {
	db          *gorm.DB
	log         *logger.Logger
	client      TextGenClient
	profileRepo repos.ProfileRepo
	setRepo     repos.DailySetRepo
	qRepo       repos.QuestionRepo
}

func NewGenerationService(db *gorm.DB, log *logger.Logger, client TextGenClient, profileRepo repos.ProfileRepo, setRepo repos.DailySetRepo, qRepo repos.QuestionRepo) GenerationService {
	return &generationService{
		db:          db,
		log:         log.With("service", "GenerationService"),
		client:      client,
		profileRepo: profileRepo,
		setRepo:     setRepo,
		qRepo:       qRepo,
	}
}

// generatedQuestion is the shape we ask the model to produce per question.
type generatedQuestion struct {
	Subject      types.SubjectType  `json:"subject"`
	QuestionType types.QuestionType `json:"question_type"`
	Title        string             `json:"title"`
	Content      json.RawMessage    `json:"content"`
	Answer       json.RawMessage    `json:"answer"`
	Explanation  string             `json:"explanation"`
	Points       int                `json:"points"`
	Hint         string             `json:"hint"`
}

type generatedSet struct {
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	EstimatedMinutes int                 `json:"estimated_minutes"`
	Questions        []generatedQuestion `json:"questions"`
}

// GenerateSet asks the upstream model for a full question set and persists
// it as the next set_number for the grade and semester. Teachers and
// admins only.
func (s *generationService) GenerateSet(ctx context.Context, callerID uuid.UUID, input GenerateInput) (*GenerateResult, error) {
	if s.client == nil {
		return nil, apperr.Dependency("content generation is not configured", nil)
	}
	if input.Grade < 1 || input.Grade > 6 {
		return nil, apperr.Validation("grade must be between 1 and 6")
	}
	if input.Semester != 1 && input.Semester != 2 {
		return nil, apperr.Validation("semester must be 1 or 2")
	}

	caller, err := s.profileRepo.GetByID(ctx, nil, callerID)
	if err != nil {
		return nil, apperr.Storage("load caller profile", err)
	}
	if caller == nil {
		return nil, apperr.Auth("unknown caller")
	}
	if caller.Role != types.RoleTeacher && caller.Role != types.RoleAdmin {
		return nil, apperr.Forbidden("only teachers and admins can generate sets")
	}

	setNumber := 0
	if input.SetNumber != nil {
		setNumber = *input.SetNumber
		if setNumber < 1 {
			return nil, apperr.Validation("set_number must be positive")
		}
	} else {
		max, err := s.setRepo.MaxSetNumber(ctx, nil, input.Grade, input.Semester)
		if err != nil {
			return nil, apperr.Storage("resolve next set number", err)
		}
		setNumber = max + 1
	}

	count := input.QuestionCount
	if count < 1 {
		count = 10
	}

	content, err := s.client.Complete(ctx, generationSystemPrompt, buildGenerationPrompt(input, count))
	if err != nil {
		return nil, apperr.Dependency("question generation failed", err)
	}

	parsed, err := parseGeneratedSet(content)
	if err != nil {
		s.log.Warn("unparseable generation output", "error", err)
		return nil, apperr.Dependency("generated content was not valid", err)
	}
	if len(parsed.Questions) == 0 {
		return nil, apperr.Dependency("generated content had no questions", nil)
	}

	set, questions := buildSetRows(parsed, input.Grade, input.Semester, setNumber)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.setRepo.Create(ctx, tx, set); err != nil {
			return err
		}
		return s.qRepo.CreateBatch(ctx, tx, questions)
	})
	if err != nil {
		return nil, apperr.Storage("persist generated set", err)
	}

	s.log.Info("generated daily set",
		"set_id", set.ID,
		"grade", set.Grade,
		"semester", set.Semester,
		"set_number", set.SetNumber,
		"questions", len(questions),
	)
	return &GenerateResult{Set: set, Questions: questions}, nil
}

const generationSystemPrompt = `You are a Korean elementary-school curriculum writer. ` +
	`You produce daily practice question sets as strict JSON, with no prose, ` +
	`no markdown and no commentary outside the JSON object.`

func buildGenerationPrompt(input GenerateInput, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a daily question set for grade %d, semester %d with exactly %d questions.\n", input.Grade, input.Semester, count)
	if input.Theme != "" {
		fmt.Fprintf(&b, "Theme: %s\n", input.Theme)
	}
	if len(input.Subjects) > 0 {
		names := make([]string, 0, len(input.Subjects))
		for _, subject := range input.Subjects {
			names = append(names, string(subject))
		}
		fmt.Fprintf(&b, "Use only these subjects: %s\n", strings.Join(names, ", "))
	}
	b.WriteString(`Respond with one JSON object of this shape:
{
  "title": "...",
  "description": "...",
  "estimated_minutes": 30,
  "questions": [
    {
      "subject": "math",
      "question_type": "multiple_choice",
      "title": "...",
      "content": {"question": "...", "options": ["...", "..."]},
      "answer": {"correct": "..."},
      "explanation": "...",
      "points": 10,
      "hint": "..."
    }
  ]
}
Write all student-facing text in Korean appropriate for the grade level.`)
	return b.String()
}

// parseGeneratedSet tolerates a fenced code block around the JSON, which
// models frequently emit despite instructions.
func parseGeneratedSet(content string) (*generatedSet, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	var parsed generatedSet
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil, fmt.Errorf("decode generated set: %w", err)
	}
	return &parsed, nil
}

func buildSetRows(parsed *generatedSet, grade, semester, setNumber int) (*types.DailySet, []*types.Question) {
	setID := uuid.New()
	totalPoints := 0

	questions := make([]*types.Question, 0, len(parsed.Questions))
	for i, q := range parsed.Questions {
		points := q.Points
		if points <= 0 {
			points = 10
		}
		totalPoints += points

		row := &types.Question{
			ID:           uuid.New(),
			DailySetID:   setID,
			Subject:      q.Subject,
			QuestionType: q.QuestionType,
			OrderIndex:   i,
			Content:      jsonOrNil(q.Content),
			Answer:       jsonOrNil(q.Answer),
			Points:       points,
		}
		if q.Title != "" {
			title := q.Title
			row.Title = &title
		}
		if q.Explanation != "" {
			explanation := q.Explanation
			row.Explanation = &explanation
		}
		if q.Hint != "" {
			hint := q.Hint
			row.Hint = &hint
		}
		questions = append(questions, row)
	}

	minutes := parsed.EstimatedMinutes
	if minutes <= 0 {
		minutes = 30
	}
	set := &types.DailySet{
		ID:               setID,
		Grade:            grade,
		Semester:         semester,
		SetNumber:        setNumber,
		Title:            parsed.Title,
		EstimatedMinutes: minutes,
		TotalQuestions:   len(questions),
		TotalPoints:      totalPoints,
		IsPublished:      true,
	}
	if parsed.Description != "" {
		description := parsed.Description
		set.Description = &description
	}
	return set, questions
}
