package services

import (
	"context"
	"testing"
	"time"
)

func TestProgressionFirstCompletion(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := NewProgressionService(env.db, env.log, NewFixedClock(now), env.profiles, env.records)

	student := env.seedStudent(t, "mina")
	set := env.seedSet(t, 1, 1, 1, true)
	env.seedCompletedRecord(t, student.ID, set.ID, now, 80, 100)

	result, err := svc.Apply(context.Background(), nil, student.ID, 80)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.Streak != 1 {
		t.Errorf("first completion streak = %d, want 1", result.Streak)
	}
	if result.TotalPoints != 80 {
		t.Errorf("total points = %d, want 80", result.TotalPoints)
	}
}

func TestProgressionExtendsAfterYesterday(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := NewProgressionService(env.db, env.log, NewFixedClock(now), env.profiles, env.records)

	student := env.seedStudent(t, "mina")
	student.StreakCount = 3
	student.TotalPoints = 500
	if err := env.db.Save(student).Error; err != nil {
		t.Fatalf("update student: %v", err)
	}

	setYesterday := env.seedSet(t, 1, 1, 1, true)
	setToday := env.seedSet(t, 1, 1, 2, true)
	env.seedCompletedRecord(t, student.ID, setYesterday.ID, now.Add(-24*time.Hour), 100, 100)
	env.seedCompletedRecord(t, student.ID, setToday.ID, now, 90, 100)

	result, err := svc.Apply(context.Background(), nil, student.ID, 90)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.Streak != 4 {
		t.Errorf("streak = %d, want 4", result.Streak)
	}
	if result.TotalPoints != 590 {
		t.Errorf("total points = %d, want 590", result.TotalPoints)
	}
}

func TestProgressionSecondCompletionSameDay(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := NewProgressionService(env.db, env.log, NewFixedClock(now), env.profiles, env.records)

	student := env.seedStudent(t, "mina")
	student.StreakCount = 7
	if err := env.db.Save(student).Error; err != nil {
		t.Fatalf("update student: %v", err)
	}

	setA := env.seedSet(t, 1, 1, 1, true)
	setB := env.seedSet(t, 1, 1, 2, true)
	env.seedCompletedRecord(t, student.ID, setA.ID, now.Add(-2*time.Hour), 100, 100)
	env.seedCompletedRecord(t, student.ID, setB.ID, now, 60, 100)

	result, err := svc.Apply(context.Background(), nil, student.ID, 60)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// The earlier completion today already advanced the streak.
	if result.Streak != 7 {
		t.Errorf("streak = %d, want unchanged 7", result.Streak)
	}
	if result.TotalPoints != 60 {
		t.Errorf("points still accumulate on repeat days, got %d want 60", result.TotalPoints)
	}
}

func TestProgressionResetsAfterGap(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := NewProgressionService(env.db, env.log, NewFixedClock(now), env.profiles, env.records)

	student := env.seedStudent(t, "mina")
	student.StreakCount = 12
	if err := env.db.Save(student).Error; err != nil {
		t.Fatalf("update student: %v", err)
	}

	setOld := env.seedSet(t, 1, 1, 1, true)
	setToday := env.seedSet(t, 1, 1, 2, true)
	env.seedCompletedRecord(t, student.ID, setOld.ID, now.Add(-72*time.Hour), 100, 100)
	env.seedCompletedRecord(t, student.ID, setToday.ID, now, 50, 100)

	result, err := svc.Apply(context.Background(), nil, student.ID, 50)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.Streak != 1 {
		t.Errorf("streak after gap = %d, want reset to 1", result.Streak)
	}
}
