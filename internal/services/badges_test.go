package services

import (
	"context"
	"testing"
	"time"

	"github.com/haneulkids/daily-learning-backend/internal/types"
)

func newBadgeSvc(env *testEnv, clock Clock) BadgeService {
	return NewBadgeService(env.db, env.log, clock, env.badges, env.records, env.responses)
}

func TestFirstCompleteAwardedOnce(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := newBadgeSvc(env, NewFixedClock(now))
	ctx := context.Background()

	env.seedBadge(t, CondFirstComplete)
	student := env.seedStudent(t, "mina")
	set := env.seedSet(t, 1, 1, 1, true)
	env.seedCompletedRecord(t, student.ID, set.ID, now, 80, 100)

	outcome := SubmissionOutcome{TotalScore: 80, MaxScore: 100, Streak: 1, TotalPoints: 80}
	first, err := svc.Evaluate(ctx, student.ID, outcome)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(first) != 1 || first[0].Name != CondFirstComplete {
		t.Fatalf("expected first_complete award, got %+v", first)
	}

	again, err := svc.Evaluate(ctx, student.ID, outcome)
	if err != nil {
		t.Fatalf("Evaluate again: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("badge must not be re-awarded, got %+v", again)
	}
}

func TestStreakBadgeThresholds(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := newBadgeSvc(env, NewFixedClock(now))
	ctx := context.Background()

	env.seedBadge(t, CondStreak7)
	student := env.seedStudent(t, "mina")

	below, err := svc.Evaluate(ctx, student.ID, SubmissionOutcome{Streak: 6})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(below) != 0 {
		t.Fatalf("streak 6 must not earn streak_7, got %+v", below)
	}

	at, err := svc.Evaluate(ctx, student.ID, SubmissionOutcome{Streak: 7})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(at) != 1 {
		t.Fatalf("streak 7 should earn streak_7, got %+v", at)
	}
}

func TestPerfectScoreRequiresPositiveMax(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := newBadgeSvc(env, NewFixedClock(now))
	ctx := context.Background()

	env.seedBadge(t, CondPerfectScore)
	student := env.seedStudent(t, "mina")

	empty, err := svc.Evaluate(ctx, student.ID, SubmissionOutcome{TotalScore: 0, MaxScore: 0})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(empty) != 0 {
		t.Fatal("an empty set must not earn perfect_score")
	}

	perfect, err := svc.Evaluate(ctx, student.ID, SubmissionOutcome{TotalScore: 100, MaxScore: 100})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(perfect) != 1 {
		t.Fatalf("full score should earn perfect_score, got %+v", perfect)
	}
}

func TestSubjectStreakRequiresContiguity(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := newBadgeSvc(env, NewFixedClock(now))
	ctx := context.Background()

	env.seedBadge(t, CondMathStreak10)
	student := env.seedStudent(t, "mina")
	set := env.seedSet(t, 1, 1, 1, true)
	record := env.seedCompletedRecord(t, student.ID, set.ID, now, 100, 100)

	// Nine correct answers is one short of the window.
	for i := 0; i < 9; i++ {
		q := env.seedQuestion(t, set.ID, types.SubjectMath, i)
		env.seedResponse(t, record.ID, q.ID, true, now.Add(time.Duration(i)*time.Minute))
	}
	short, err := svc.Evaluate(ctx, student.ID, SubmissionOutcome{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(short) != 0 {
		t.Fatal("nine correct answers must not earn a ten streak")
	}

	// A wrong answer as the most recent response breaks the run even
	// though ten correct answers exist overall.
	qWrong := env.seedQuestion(t, set.ID, types.SubjectMath, 9)
	env.seedResponse(t, record.ID, qWrong.ID, false, now.Add(9*time.Minute))
	qTenth := env.seedQuestion(t, set.ID, types.SubjectMath, 10)
	env.seedResponse(t, record.ID, qTenth.ID, true, now.Add(10*time.Minute))

	broken, err := svc.Evaluate(ctx, student.ID, SubmissionOutcome{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(broken) != 0 {
		t.Fatal("a wrong answer inside the window must break the streak")
	}

	// Nine more correct answers push the wrong one out of the window.
	for i := 0; i < 9; i++ {
		q := env.seedQuestion(t, set.ID, types.SubjectMath, 11+i)
		env.seedResponse(t, record.ID, q.ID, true, now.Add(time.Duration(11+i)*time.Minute))
	}
	earned, err := svc.Evaluate(ctx, student.ID, SubmissionOutcome{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(earned) != 1 {
		t.Fatalf("ten contiguous correct answers should earn the badge, got %+v", earned)
	}
}

func TestAllSubject90NeedsFiveSubjects(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := newBadgeSvc(env, NewFixedClock(now))
	ctx := context.Background()

	env.seedBadge(t, CondAllSubject90)
	student := env.seedStudent(t, "mina")
	set := env.seedSet(t, 1, 1, 1, true)
	record := env.seedCompletedRecord(t, student.ID, set.ID, now, 100, 100)

	subjects := []types.SubjectType{
		types.SubjectMath,
		types.SubjectKorean,
		types.SubjectEnglish,
		types.SubjectSpelling,
	}
	for i, subject := range subjects {
		q := env.seedQuestion(t, set.ID, subject, i)
		env.seedResponse(t, record.ID, q.ID, true, now.Add(time.Duration(i)*time.Minute))
	}
	few, err := svc.Evaluate(ctx, student.ID, SubmissionOutcome{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(few) != 0 {
		t.Fatal("four subjects must not earn all_subject_90")
	}

	q := env.seedQuestion(t, set.ID, types.SubjectHanja, 5)
	env.seedResponse(t, record.ID, q.ID, true, now.Add(5*time.Minute))

	earned, err := svc.Evaluate(ctx, student.ID, SubmissionOutcome{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(earned) != 1 {
		t.Fatalf("five subjects at 100%% should earn all_subject_90, got %+v", earned)
	}
}
