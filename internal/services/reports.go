package services

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/repos"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type ReportPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ReportOverview struct {
	TotalSessions     int64 `json:"totalSessions"`
	CompletedSessions int64 `json:"completedSessions"`
	TotalScore        int64 `json:"totalScore"`
	TotalMaxScore     int64 `json:"totalMaxScore"`
	AvgScorePercent   int   `json:"avgScorePercent"`
	TotalTimeSeconds  int64 `json:"totalTimeSeconds"`
	Streak            int   `json:"streak"`
	TotalPoints       int   `json:"totalPoints"`
}

type SubjectStat struct {
	Correct  int64 `json:"correct"`
	Total    int64 `json:"total"`
	Accuracy int   `json:"accuracy"`
	AvgTime  int   `json:"avgTime"`
}

type DailyActivityPoint struct {
	Date     string `json:"date"`
	Sessions int    `json:"sessions"`
	Score    int    `json:"score"`
	MaxScore int    `json:"maxScore"`
	Accuracy int    `json:"accuracy"`
}

type EmotionTrendPoint struct {
	Date   string          `json:"date"`
	Before json.RawMessage `json:"before"`
	After  json.RawMessage `json:"after"`
}

type WeakSubject struct {
	Subject  types.SubjectType `json:"subject"`
	Correct  int64             `json:"correct"`
	Total    int64             `json:"total"`
	Accuracy int               `json:"accuracy"`
	AvgTime  int               `json:"avgTime"`
}

type ReportProfile struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Grade       *int      `json:"grade"`
	Semester    *int      `json:"semester"`
	StreakCount int       `json:"streak_count"`
	TotalPoints int       `json:"total_points"`
	AvatarURL   *string   `json:"avatar_url"`
}

type Report struct {
	Profile       ReportProfile                     `json:"profile"`
	Period        ReportPeriod                      `json:"period"`
	Overview      ReportOverview                    `json:"overview"`
	SubjectStats  map[types.SubjectType]SubjectStat `json:"subjectStats"`
	DailyActivity []DailyActivityPoint              `json:"dailyActivity"`
	EmotionTrends []EmotionTrendPoint               `json:"emotionTrends"`
	Badges        []repos.EarnedBadge               `json:"badges"`
	WeakSubjects  []WeakSubject                     `json:"weakSubjects"`
}

type ReportQuery struct {
	StudentID *uuid.UUID
	Period    string
	From      string
	To        string
}

type ReportService interface {
	GetReport(ctx context.Context, callerID uuid.UUID, query ReportQuery) (*Report, error)
}

type reportService struct {
	db           *gorm.DB
	log          *logger.Logger
	clock        Clock
	profileRepo  repos.ProfileRepo
	classRepo    repos.ClassRepo
	recordRepo   repos.LearningRecordRepo
	responseRepo repos.QuestionResponseRepo
	badgeRepo    repos.BadgeRepo
}

func NewReportService(db *gorm.DB, log *logger.Logger, clock Clock, profileRepo repos.ProfileRepo, classRepo repos.ClassRepo, recordRepo repos.LearningRecordRepo, responseRepo repos.QuestionResponseRepo, badgeRepo repos.BadgeRepo) ReportService {
	return &reportService{
		db:           db,
		log:          log.With("service", "ReportService"),
		clock:        clock,
		profileRepo:  profileRepo,
		classRepo:    classRepo,
		recordRepo:   recordRepo,
		responseRepo: responseRepo,
		badgeRepo:    badgeRepo,
	}
}

// GetReport builds the student's learning report for a date range.
// Access: everyone may read their own report; a teacher may read a
// student enrolled in one of their classes; a parent may read their own
// child; an admin may read anyone.
func (s *reportService) GetReport(ctx context.Context, callerID uuid.UUID, query ReportQuery) (*Report, error) {
	targetID := callerID
	if query.StudentID != nil {
		targetID = *query.StudentID
	}

	if targetID != callerID {
		if err := s.authorize(ctx, callerID, targetID); err != nil {
			return nil, err
		}
	}

	profile, err := s.profileRepo.GetByID(ctx, nil, targetID)
	if err != nil {
		return nil, apperr.Storage("load profile", err)
	}
	if profile == nil {
		return nil, apperr.NotFound("student not found")
	}

	fromTime, toTime := s.dateRange(query)

	var (
		overview  *repos.OverviewStats
		statRows  []repos.SubjectStatRow
		completed []*types.LearningRecord
		earned    []repos.EarnedBadge
	)

	// The rollups are independent reads; fan them out.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		overview, err = s.recordRepo.Overview(gctx, nil, targetID, fromTime, toTime)
		return err
	})
	g.Go(func() error {
		var err error
		statRows, err = s.responseRepo.SubjectStats(gctx, nil, targetID, &fromTime, &toTime)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = s.recordRepo.ListCompletedBetween(gctx, nil, targetID, fromTime, toTime)
		return err
	})
	g.Go(func() error {
		var err error
		earned, err = s.badgeRepo.ListEarned(gctx, nil, targetID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Storage("aggregate report", err)
	}

	subjectStats := make(map[types.SubjectType]SubjectStat, len(statRows))
	for _, row := range statRows {
		subjectStats[row.Subject] = SubjectStat{
			Correct:  row.Correct,
			Total:    row.Total,
			Accuracy: percent(row.Correct, row.Total),
			AvgTime:  int(math.Round(row.AvgTime)),
		}
	}

	report := &Report{
		Profile: ReportProfile{
			ID:          profile.ID,
			Name:        profile.Name,
			Grade:       profile.Grade,
			Semester:    profile.Semester,
			StreakCount: profile.StreakCount,
			TotalPoints: profile.TotalPoints,
			AvatarURL:   profile.AvatarURL,
		},
		Period: ReportPeriod{
			From: DateString(fromTime),
			To:   DateString(toTime.Add(-24 * time.Hour)),
		},
		Overview:      buildOverview(overview, profile),
		SubjectStats:  subjectStats,
		DailyActivity: buildDailyActivity(completed, s.clock.Location()),
		EmotionTrends: buildEmotionTrends(completed, s.clock.Location()),
		Badges:        earned,
		WeakSubjects:  weakestSubjects(statRows, 3, 3),
	}
	return report, nil
}

func (s *reportService) authorize(ctx context.Context, callerID, targetID uuid.UUID) error {
	caller, err := s.profileRepo.GetByID(ctx, nil, callerID)
	if err != nil {
		return apperr.Storage("load caller profile", err)
	}
	if caller == nil {
		return apperr.Auth("unknown caller")
	}
	switch caller.Role {
	case types.RoleAdmin:
		return nil
	case types.RoleTeacher:
		ok, err := s.classRepo.TeacherHasStudent(ctx, nil, callerID, targetID)
		if err != nil {
			return apperr.Storage("check class membership", err)
		}
		if !ok {
			return apperr.Forbidden("student is not in one of your classes")
		}
		return nil
	case types.RoleParent:
		ok, err := s.profileRepo.IsChildOf(ctx, nil, targetID, callerID)
		if err != nil {
			return apperr.Storage("check parent link", err)
		}
		if !ok {
			return apperr.Forbidden("student is not your child")
		}
		return nil
	default:
		return apperr.Forbidden("you may only view your own report")
	}
}

// dateRange turns the query into [from, to) bounds in the app timezone.
// Explicit from/to win; otherwise period selects the last 7 days, the
// last 30 days, or everything since 2020-01-01.
func (s *reportService) dateRange(query ReportQuery) (time.Time, time.Time) {
	loc := s.clock.Location()
	todayStart := StartOfDay(s.clock.Now())
	toTime := todayStart.Add(24 * time.Hour)

	if query.From != "" && query.To != "" {
		if from, err := time.ParseInLocation("2006-01-02", query.From, loc); err == nil {
			if to, err := time.ParseInLocation("2006-01-02", query.To, loc); err == nil {
				return from, to.Add(24 * time.Hour)
			}
		}
	}

	switch query.Period {
	case "month":
		return todayStart.AddDate(0, 0, -30), toTime
	case "all":
		return time.Date(2020, 1, 1, 0, 0, 0, 0, loc), toTime
	default: // week
		return todayStart.AddDate(0, 0, -7), toTime
	}
}

func buildOverview(stats *repos.OverviewStats, profile *types.Profile) ReportOverview {
	overview := ReportOverview{
		Streak:      profile.StreakCount,
		TotalPoints: profile.TotalPoints,
	}
	if stats == nil {
		return overview
	}
	overview.TotalSessions = stats.TotalSessions
	overview.CompletedSessions = stats.CompletedSessions
	overview.TotalScore = stats.TotalScore
	overview.TotalMaxScore = stats.TotalMaxScore
	overview.TotalTimeSeconds = stats.TotalTimeSeconds
	if stats.AvgScorePercent != nil {
		overview.AvgScorePercent = int(math.Round(*stats.AvgScorePercent))
	}
	return overview
}

func buildDailyActivity(records []*types.LearningRecord, loc *time.Location) []DailyActivityPoint {
	byDay := map[string]*DailyActivityPoint{}
	for _, record := range records {
		if record.CompletedAt == nil {
			continue
		}
		day := DateString(record.CompletedAt.In(loc))
		point, ok := byDay[day]
		if !ok {
			point = &DailyActivityPoint{Date: day}
			byDay[day] = point
		}
		point.Sessions++
		point.Score += record.TotalScore
		point.MaxScore += record.MaxScore
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]DailyActivityPoint, 0, len(days))
	for _, day := range days {
		point := byDay[day]
		point.Accuracy = percent(int64(point.Score), int64(point.MaxScore))
		points = append(points, *point)
	}
	return points
}

func buildEmotionTrends(records []*types.LearningRecord, loc *time.Location) []EmotionTrendPoint {
	points := []EmotionTrendPoint{}
	for _, record := range records {
		if record.CompletedAt == nil || len(record.EmotionBefore) == 0 || len(record.EmotionAfter) == 0 {
			continue
		}
		points = append(points, EmotionTrendPoint{
			Date:   DateString(record.CompletedAt.In(loc)),
			Before: json.RawMessage(record.EmotionBefore),
			After:  json.RawMessage(record.EmotionAfter),
		})
	}
	return points
}

// weakestSubjects picks the limit lowest-accuracy subjects among those
// with at least minAttempts responses.
func weakestSubjects(rows []repos.SubjectStatRow, minAttempts int64, limit int) []WeakSubject {
	weak := []WeakSubject{}
	for _, row := range rows {
		if row.Total < minAttempts {
			continue
		}
		weak = append(weak, WeakSubject{
			Subject:  row.Subject,
			Correct:  row.Correct,
			Total:    row.Total,
			Accuracy: percent(row.Correct, row.Total),
			AvgTime:  int(math.Round(row.AvgTime)),
		})
	}
	sort.Slice(weak, func(i, j int) bool { return weak[i].Accuracy < weak[j].Accuracy })
	if len(weak) > limit {
		weak = weak[:limit]
	}
	return weak
}

func percent(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
