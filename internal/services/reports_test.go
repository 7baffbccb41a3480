package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

func newReports(env *testEnv, clock Clock) ReportService {
	return NewReportService(env.db, env.log, clock, env.profiles, env.classes, env.records, env.responses, env.badges)
}

func TestGetReportSelf(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := newReports(env, NewFixedClock(now))
	ctx := context.Background()

	student := env.seedStudent(t, "mina")
	student.StreakCount = 4
	student.TotalPoints = 320
	if err := env.db.Save(student).Error; err != nil {
		t.Fatalf("update student: %v", err)
	}

	setA := env.seedSet(t, 1, 1, 1, true)
	setB := env.seedSet(t, 1, 1, 2, true)
	recA := env.seedCompletedRecord(t, student.ID, setA.ID, now.Add(-48*time.Hour), 80, 100)
	recB := env.seedCompletedRecord(t, student.ID, setB.ID, now.Add(-24*time.Hour), 90, 100)

	// Math: 1/4 correct. Korean: 2/2 correct, but below the attempt
	// threshold for weak-subject ranking.
	for i := 0; i < 4; i++ {
		q := env.seedQuestion(t, setA.ID, types.SubjectMath, i)
		env.seedResponse(t, recA.ID, q.ID, i == 0, now.Add(-48*time.Hour))
	}
	for i := 0; i < 2; i++ {
		q := env.seedQuestion(t, setB.ID, types.SubjectKorean, i)
		env.seedResponse(t, recB.ID, q.ID, true, now.Add(-24*time.Hour))
	}

	report, err := svc.GetReport(ctx, student.ID, ReportQuery{Period: "week"})
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}

	if report.Profile.ID != student.ID {
		t.Errorf("profile id = %v, want %v", report.Profile.ID, student.ID)
	}
	if report.Overview.TotalSessions != 2 || report.Overview.CompletedSessions != 2 {
		t.Errorf("overview sessions = %d/%d, want 2/2", report.Overview.TotalSessions, report.Overview.CompletedSessions)
	}
	if report.Overview.TotalScore != 170 || report.Overview.TotalMaxScore != 200 {
		t.Errorf("overview score = %d/%d, want 170/200", report.Overview.TotalScore, report.Overview.TotalMaxScore)
	}
	if report.Overview.Streak != 4 || report.Overview.TotalPoints != 320 {
		t.Errorf("overview streak/points = %d/%d, want 4/320", report.Overview.Streak, report.Overview.TotalPoints)
	}

	math, ok := report.SubjectStats[types.SubjectMath]
	if !ok {
		t.Fatal("math stats missing")
	}
	if math.Correct != 1 || math.Total != 4 || math.Accuracy != 25 {
		t.Errorf("math stats = %+v, want 1/4 at 25%%", math)
	}

	if len(report.WeakSubjects) != 1 || report.WeakSubjects[0].Subject != types.SubjectMath {
		t.Errorf("weak subjects = %+v, want only math (korean has too few attempts)", report.WeakSubjects)
	}

	if len(report.DailyActivity) != 2 {
		t.Fatalf("daily activity days = %d, want 2", len(report.DailyActivity))
	}
	if report.DailyActivity[0].Date >= report.DailyActivity[1].Date {
		t.Error("daily activity must be sorted ascending by date")
	}
}

func TestGetReportPeriodBounds(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := newReports(env, NewFixedClock(now))
	ctx := context.Background()

	student := env.seedStudent(t, "mina")
	setOld := env.seedSet(t, 1, 1, 1, true)
	setNew := env.seedSet(t, 1, 1, 2, true)
	env.seedCompletedRecord(t, student.ID, setOld.ID, now.AddDate(0, 0, -20), 50, 100)
	env.seedCompletedRecord(t, student.ID, setNew.ID, now.AddDate(0, 0, -2), 90, 100)

	week, err := svc.GetReport(ctx, student.ID, ReportQuery{Period: "week"})
	if err != nil {
		t.Fatalf("week report: %v", err)
	}
	if week.Overview.TotalSessions != 1 {
		t.Errorf("week sessions = %d, want 1", week.Overview.TotalSessions)
	}

	month, err := svc.GetReport(ctx, student.ID, ReportQuery{Period: "month"})
	if err != nil {
		t.Fatalf("month report: %v", err)
	}
	if month.Overview.TotalSessions != 2 {
		t.Errorf("month sessions = %d, want 2", month.Overview.TotalSessions)
	}
}

func TestGetReportAccessControl(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := newReports(env, NewFixedClock(now))
	ctx := context.Background()

	student := env.seedStudent(t, "mina")
	other := env.seedStudent(t, "jiwoo")

	parent := &types.Profile{
		ID:             uuid.New(),
		Role:           types.RoleParent,
		Email:          "parent@test.local",
		Name:           "parent",
		ApprovalStatus: types.ApprovalApproved,
		PasswordHash:   "x",
	}
	if err := env.db.Create(parent).Error; err != nil {
		t.Fatalf("seed parent: %v", err)
	}
	student.ParentID = &parent.ID
	if err := env.db.Save(student).Error; err != nil {
		t.Fatalf("link parent: %v", err)
	}

	teacher := env.seedTeacher(t, "kim")
	env.seedClass(t, teacher.ID, 1, 1, student.ID)

	// Another student may not read someone else's report.
	_, err := svc.GetReport(ctx, other.ID, ReportQuery{StudentID: &student.ID})
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden for unrelated student, got %v", err)
	}

	// The linked parent may.
	if _, err := svc.GetReport(ctx, parent.ID, ReportQuery{StudentID: &student.ID}); err != nil {
		t.Fatalf("parent access: %v", err)
	}

	// The class teacher may, but not for students outside their classes.
	if _, err := svc.GetReport(ctx, teacher.ID, ReportQuery{StudentID: &student.ID}); err != nil {
		t.Fatalf("teacher access: %v", err)
	}
	_, err = svc.GetReport(ctx, teacher.ID, ReportQuery{StudentID: &other.ID})
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden for non-class student, got %v", err)
	}
}
