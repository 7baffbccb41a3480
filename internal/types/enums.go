package types

// UserRole mirrors the profiles.role column.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleParent  UserRole = "parent"
	RoleAdmin   UserRole = "admin"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// SubjectType tags a question with its subject. emotion_check and
// readiness_check are session bookkeeping, not graded subjects.
type SubjectType string

const (
	SubjectMath             SubjectType = "math"
	SubjectKorean           SubjectType = "korean"
	SubjectSpelling         SubjectType = "spelling"
	SubjectVocabulary       SubjectType = "vocabulary"
	SubjectHanja            SubjectType = "hanja"
	SubjectEnglish          SubjectType = "english"
	SubjectWriting          SubjectType = "writing"
	SubjectGeneralKnowledge SubjectType = "general_knowledge"
	SubjectSafety           SubjectType = "safety"
	SubjectScience          SubjectType = "science"
	SubjectSocial           SubjectType = "social"
	SubjectCreative         SubjectType = "creative"
	SubjectEmotionCheck     SubjectType = "emotion_check"
	SubjectReadinessCheck   SubjectType = "readiness_check"
)

// UngradedSubjects are excluded from accuracy statistics and from the
// all_subject_90 badge.
var UngradedSubjects = []SubjectType{SubjectEmotionCheck, SubjectReadinessCheck}

// QuestionType governs grading semantics on the client; the backend treats
// it as an opaque tag.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionFillBlank      QuestionType = "fill_blank"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionMatching       QuestionType = "matching"
	QuestionOrdering       QuestionType = "ordering"
	QuestionDrawing        QuestionType = "drawing"
	QuestionWritingPrompt  QuestionType = "writing_prompt"
	QuestionEmotionCheck   QuestionType = "emotion_check"
	QuestionReadinessCheck QuestionType = "readiness_check"
	QuestionCalculation    QuestionType = "calculation"
	QuestionWordPuzzle     QuestionType = "word_puzzle"
	QuestionDictation      QuestionType = "dictation"
)

type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)
