package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/repos"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type testEnv struct {
	db          *gorm.DB
	log         *logger.Logger
	profiles    repos.ProfileRepo
	tokens      repos.AuthTokenRepo
	classes     repos.ClassRepo
	sets        repos.DailySetRepo
	questions   repos.QuestionRepo
	records     repos.LearningRecordRepo
	responses   repos.QuestionResponseRepo
	badges      repos.BadgeRepo
	assignments repos.DailyAssignmentRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(
		&types.Profile{},
		&types.AuthToken{},
		&types.Class{},
		&types.ClassMember{},
		&types.DailySet{},
		&types.Question{},
		&types.LearningRecord{},
		&types.QuestionResponse{},
		&types.Badge{},
		&types.StudentBadge{},
		&types.DailyAssignment{},
	)
	if err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := logger.NewNop()
	return &testEnv{
		db:          gdb,
		log:         log,
		profiles:    repos.NewProfileRepo(gdb, log),
		tokens:      repos.NewAuthTokenRepo(gdb, log),
		classes:     repos.NewClassRepo(gdb, log),
		sets:        repos.NewDailySetRepo(gdb, log),
		questions:   repos.NewQuestionRepo(gdb, log),
		records:     repos.NewLearningRecordRepo(gdb, log),
		responses:   repos.NewQuestionResponseRepo(gdb, log),
		badges:      repos.NewBadgeRepo(gdb, log),
		assignments: repos.NewDailyAssignmentRepo(gdb, log),
	}
}

func (e *testEnv) seedStudent(t *testing.T, name string) *types.Profile {
	t.Helper()
	grade := 1
	semester := 1
	profile := &types.Profile{
		ID:             uuid.New(),
		Role:           types.RoleStudent,
		Email:          name + "@test.local",
		Name:           name,
		Grade:          &grade,
		Semester:       &semester,
		ApprovalStatus: types.ApprovalApproved,
		PasswordHash:   "x",
	}
	if err := e.db.Create(profile).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return profile
}

func (e *testEnv) seedSet(t *testing.T, grade, semester, setNumber int, published bool) *types.DailySet {
	t.Helper()
	set := &types.DailySet{
		ID:          uuid.New(),
		Grade:       grade,
		Semester:    semester,
		SetNumber:   setNumber,
		Title:       "test set",
		IsPublished: published,
	}
	if err := e.db.Create(set).Error; err != nil {
		t.Fatalf("seed set: %v", err)
	}
	return set
}

func (e *testEnv) seedQuestion(t *testing.T, setID uuid.UUID, subject types.SubjectType, orderIndex int) *types.Question {
	t.Helper()
	question := &types.Question{
		ID:           uuid.New(),
		DailySetID:   setID,
		Subject:      subject,
		QuestionType: types.QuestionMultipleChoice,
		OrderIndex:   orderIndex,
		Content:      []byte(`{"question":"q"}`),
		Answer:       []byte(`{"correct":"a"}`),
		Points:       10,
	}
	if err := e.db.Create(question).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return question
}

func (e *testEnv) seedCompletedRecord(t *testing.T, studentID, setID uuid.UUID, completedAt time.Time, totalScore, maxScore int) *types.LearningRecord {
	t.Helper()
	record := &types.LearningRecord{
		ID:          uuid.New(),
		StudentID:   studentID,
		DailySetID:  setID,
		StartedAt:   completedAt,
		CompletedAt: &completedAt,
		TotalScore:  totalScore,
		MaxScore:    maxScore,
		IsCompleted: true,
		CreatedAt:   completedAt,
	}
	if err := e.db.Create(record).Error; err != nil {
		t.Fatalf("seed record: %v", err)
	}
	return record
}

func (e *testEnv) seedResponse(t *testing.T, recordID, questionID uuid.UUID, correct bool, createdAt time.Time) *types.QuestionResponse {
	t.Helper()
	response := &types.QuestionResponse{
		ID:               uuid.New(),
		LearningRecordID: recordID,
		QuestionID:       questionID,
		IsCorrect:        &correct,
		Score:            10,
		CreatedAt:        createdAt,
	}
	if err := e.db.Create(response).Error; err != nil {
		t.Fatalf("seed response: %v", err)
	}
	return response
}

func (e *testEnv) seedBadge(t *testing.T, conditionType string) *types.Badge {
	t.Helper()
	badge := &types.Badge{
		ID:            uuid.New(),
		Name:          conditionType,
		Description:   conditionType,
		Icon:          "star",
		ConditionType: conditionType,
	}
	if err := e.db.Create(badge).Error; err != nil {
		t.Fatalf("seed badge: %v", err)
	}
	return badge
}
