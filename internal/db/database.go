package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/types"
	"github.com/haneulkids/daily-learning-backend/internal/utils"
)

type DatabaseService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDatabaseService(log *logger.Logger) (*DatabaseService, error) {
	serviceLog := log.With("service", "DatabaseService")

	host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	port := utils.GetEnv("POSTGRES_PORT", "5432", log)
	user := utils.GetEnv("POSTGRES_USER", "postgres", log)
	password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	name := utils.GetEnv("POSTGRES_NAME", "dailylearning", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &DatabaseService{db: gdb, log: serviceLog}, nil
}

// AutoMigrateAll creates tables and the composite unique indexes that back
// the upsert paths: (student_id, daily_set_id) on learning_records,
// (student_id, badge_id) on student_badges and the daily assignment
// natural key.
func (s *DatabaseService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
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
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *DatabaseService) DB() *gorm.DB {
	return s.db
}
