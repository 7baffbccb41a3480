package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/repos"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

// AssignmentReport summarizes one run of the daily assignment job.
type AssignmentReport struct {
	Date          string   `json:"date"`
	TotalClasses  int      `json:"totalClasses"`
	AssignedCount int      `json:"assignedCount"`
	SkippedCount  int      `json:"skippedCount"`
	Errors        []string `json:"errors"`
}

type AssignmentService interface {
	AssignDailySets(ctx context.Context) (*AssignmentReport, error)
}

type assignmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	clock          Clock
	classRepo      repos.ClassRepo
	setRepo        repos.DailySetRepo
	assignmentRepo repos.DailyAssignmentRepo
}

func NewAssignmentService(db *gorm.DB, log *logger.Logger, clock Clock, classRepo repos.ClassRepo, setRepo repos.DailySetRepo, assignmentRepo repos.DailyAssignmentRepo) AssignmentService {
	return &assignmentService{
		db:             db,
		log:            log.With("service", "AssignmentService"),
		clock:          clock,
		classRepo:      classRepo,
		setRepo:        setRepo,
		assignmentRepo: assignmentRepo,
	}
}

// AssignDailySets assigns today's rotated set to every active class and
// each of its members. Per class, the class row and all member rows go in
// as one atomic batch with insert-or-ignore on the natural key, so a
// half-assigned class cannot happen and the job is safe to re-run for the
// same day. Per-class failures are collected, not fatal.
func (s *assignmentService) AssignDailySets(ctx context.Context) (*AssignmentReport, error) {
	now := s.clock.Now()
	today := DateString(now)
	dueDate := DateString(now.AddDate(0, 0, 1))
	dayOfYear := DayOfYear(s.clock)

	classes, err := s.classRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, apperr.Storage("list active classes", err)
	}

	report := &AssignmentReport{
		Date:         today,
		TotalClasses: len(classes),
		Errors:       []string{},
	}

	for _, class := range classes {
		assigned, err := s.assignClass(ctx, class, dayOfYear, today, dueDate)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("class %s (%s): %v", class.Name, class.ID, err))
			continue
		}
		if assigned {
			report.AssignedCount++
		} else {
			report.SkippedCount++
		}
	}
	return report, nil
}

func (s *assignmentService) assignClass(ctx context.Context, class *types.Class, dayOfYear int, today, dueDate string) (bool, error) {
	totalSets, err := s.setRepo.CountPublished(ctx, nil, class.Grade, class.Semester)
	if err != nil {
		return false, err
	}
	if totalSets == 0 {
		return false, nil
	}

	setNumber := RotatedSetNumber(dayOfYear, totalSets)
	set, err := s.setRepo.GetPublished(ctx, nil, class.Grade, class.Semester, setNumber)
	if err != nil {
		return false, err
	}
	if set == nil {
		return false, nil
	}

	exists, err := s.assignmentRepo.ClassAssignmentExists(ctx, nil, class.ID, set.ID, today)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	memberIDs, err := s.classRepo.ListMemberIDs(ctx, nil, class.ID)
	if err != nil {
		return false, err
	}

	classID := class.ID
	due := dueDate
	rows := make([]*types.DailyAssignment, 0, len(memberIDs)+1)
	rows = append(rows, &types.DailyAssignment{
		ID:           uuid.New(),
		ClassID:      &classID,
		DailySetID:   set.ID,
		AssignedDate: today,
		DueDate:      &due,
		IsMandatory:  true,
	})
	for _, memberID := range memberIDs {
		studentID := memberID
		rows = append(rows, &types.DailyAssignment{
			ID:           uuid.New(),
			ClassID:      &classID,
			StudentID:    &studentID,
			DailySetID:   set.ID,
			AssignedDate: today,
			DueDate:      &due,
			IsMandatory:  true,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.assignmentRepo.CreateBatchIgnoreDuplicates(ctx, tx, rows)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
