package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/haneulkids/daily-learning-backend/internal/types"
)

func (e *testEnv) seedClass(t *testing.T, teacherID uuid.UUID, grade, semester int, memberIDs ...uuid.UUID) *types.Class {
	t.Helper()
	class := &types.Class{
		ID:         uuid.New(),
		TeacherID:  teacherID,
		Name:       "1반",
		Grade:      grade,
		Semester:   semester,
		Year:       2026,
		InviteCode: uuid.NewString()[:8],
		IsActive:   true,
	}
	if err := e.db.Create(class).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	for _, memberID := range memberIDs {
		member := &types.ClassMember{
			ID:        uuid.New(),
			ClassID:   class.ID,
			StudentID: memberID,
			JoinedAt:  time.Now(),
		}
		if err := e.db.Create(member).Error; err != nil {
			t.Fatalf("seed class member: %v", err)
		}
	}
	return class
}

func (e *testEnv) seedTeacher(t *testing.T, name string) *types.Profile {
	t.Helper()
	teacher := &types.Profile{
		ID:             uuid.New(),
		Role:           types.RoleTeacher,
		Email:          name + "@test.local",
		Name:           name,
		ApprovalStatus: types.ApprovalApproved,
		PasswordHash:   "x",
	}
	if err := e.db.Create(teacher).Error; err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	return teacher
}

func TestAssignDailySets(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	clock := NewFixedClock(now)
	svc := NewAssignmentService(env.db, env.log, clock, env.classes, env.sets, env.assignments)
	ctx := context.Background()

	teacher := env.seedTeacher(t, "kim")
	s1 := env.seedStudent(t, "mina")
	s2 := env.seedStudent(t, "jiwoo")
	class := env.seedClass(t, teacher.ID, 1, 1, s1.ID, s2.ID)

	// One published set: every day of year rotates onto set 1.
	set := env.seedSet(t, 1, 1, 1, true)

	// A class whose grade has no content is skipped, not an error.
	env.seedClass(t, teacher.ID, 2, 1)

	report, err := svc.AssignDailySets(ctx)
	if err != nil {
		t.Fatalf("AssignDailySets: %v", err)
	}
	if report.TotalClasses != 2 {
		t.Errorf("total classes = %d, want 2", report.TotalClasses)
	}
	if report.AssignedCount != 1 {
		t.Errorf("assigned = %d, want 1", report.AssignedCount)
	}
	if report.SkippedCount != 1 {
		t.Errorf("skipped = %d, want 1", report.SkippedCount)
	}
	if len(report.Errors) != 0 {
		t.Errorf("unexpected errors: %v", report.Errors)
	}
	if report.Date != "2026-03-10" {
		t.Errorf("report date = %s, want 2026-03-10", report.Date)
	}

	var rows []*types.DailyAssignment
	if err := env.db.Where("class_id = ?", class.ID).Find(&rows).Error; err != nil {
		t.Fatalf("load assignments: %v", err)
	}
	// One class-level row plus one per member.
	if len(rows) != 3 {
		t.Fatalf("assignment rows = %d, want 3", len(rows))
	}
	classLevel := 0
	for _, row := range rows {
		if row.DailySetID != set.ID {
			t.Errorf("assignment references set %v, want %v", row.DailySetID, set.ID)
		}
		if row.AssignedDate != "2026-03-10" {
			t.Errorf("assigned date = %s, want 2026-03-10", row.AssignedDate)
		}
		if row.DueDate == nil || *row.DueDate != "2026-03-11" {
			t.Errorf("due date = %v, want 2026-03-11", row.DueDate)
		}
		if row.StudentID == nil {
			classLevel++
		}
	}
	if classLevel != 1 {
		t.Errorf("class-level rows = %d, want 1", classLevel)
	}
}

func TestAssignDailySetsIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	svc := NewAssignmentService(env.db, env.log, NewFixedClock(now), env.classes, env.sets, env.assignments)
	ctx := context.Background()

	teacher := env.seedTeacher(t, "kim")
	s1 := env.seedStudent(t, "mina")
	class := env.seedClass(t, teacher.ID, 1, 1, s1.ID)
	env.seedSet(t, 1, 1, 1, true)

	if _, err := svc.AssignDailySets(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.AssignDailySets(ctx)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.AssignedCount != 0 || second.SkippedCount != 1 {
		t.Errorf("second run assigned=%d skipped=%d, want 0/1", second.AssignedCount, second.SkippedCount)
	}

	var count int64
	if err := env.db.Model(&types.DailyAssignment{}).Where("class_id = ?", class.ID).Count(&count).Error; err != nil {
		t.Fatalf("count assignments: %v", err)
	}
	if count != 2 {
		t.Errorf("assignment rows after re-run = %d, want 2", count)
	}
}
