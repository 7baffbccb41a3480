package app

import (
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/repos"
)

type Repos struct {
	Profile    repos.ProfileRepo
	AuthToken  repos.AuthTokenRepo
	Class      repos.ClassRepo
	DailySet   repos.DailySetRepo
	Question   repos.QuestionRepo
	Record     repos.LearningRecordRepo
	Response   repos.QuestionResponseRepo
	Badge      repos.BadgeRepo
	Assignment repos.DailyAssignmentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Profile:    repos.NewProfileRepo(db, log),
		AuthToken:  repos.NewAuthTokenRepo(db, log),
		Class:      repos.NewClassRepo(db, log),
		DailySet:   repos.NewDailySetRepo(db, log),
		Question:   repos.NewQuestionRepo(db, log),
		Record:     repos.NewLearningRecordRepo(db, log),
		Response:   repos.NewQuestionResponseRepo(db, log),
		Badge:      repos.NewBadgeRepo(db, log),
		Assignment: repos.NewDailyAssignmentRepo(db, log),
	}
}
