package services

import (
	"testing"
)

func TestParseGeneratedSetToleratesFences(t *testing.T) {
	payload := `{"title":"3월 둘째 주","estimated_minutes":25,"questions":[{"subject":"math","question_type":"calculation","content":{"question":"3+4"},"answer":{"correct":"7"},"points":10}]}`

	tests := []struct {
		name    string
		content string
	}{
		{"bare json", payload},
		{"json fence", "```json\n" + payload + "\n```"},
		{"plain fence", "```\n" + payload + "\n```"},
		{"padded", "\n\n  " + payload + "  \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseGeneratedSet(tt.content)
			if err != nil {
				t.Fatalf("parseGeneratedSet: %v", err)
			}
			if parsed.Title != "3월 둘째 주" {
				t.Errorf("title = %q", parsed.Title)
			}
			if len(parsed.Questions) != 1 {
				t.Fatalf("questions = %d, want 1", len(parsed.Questions))
			}
		})
	}

	if _, err := parseGeneratedSet("sorry, I cannot do that"); err == nil {
		t.Fatal("prose output must fail to parse")
	}
}

func TestBuildSetRowsComputesTotals(t *testing.T) {
	parsed := &generatedSet{
		Title: "테스트 세트",
		Questions: []generatedQuestion{
			{Subject: "math", QuestionType: "calculation", Points: 10},
			{Subject: "korean", QuestionType: "short_answer", Points: 20},
			{Subject: "english", QuestionType: "multiple_choice"}, // defaults to 10
		},
	}

	set, questions := buildSetRows(parsed, 3, 2, 7)
	if set.Grade != 3 || set.Semester != 2 || set.SetNumber != 7 {
		t.Errorf("set key = %d/%d/%d, want 3/2/7", set.Grade, set.Semester, set.SetNumber)
	}
	if !set.IsPublished {
		t.Error("generated sets are published immediately")
	}
	if set.TotalQuestions != 3 {
		t.Errorf("total questions = %d, want 3", set.TotalQuestions)
	}
	if set.TotalPoints != 40 {
		t.Errorf("total points = %d, want 40", set.TotalPoints)
	}
	if set.EstimatedMinutes != 30 {
		t.Errorf("estimated minutes = %d, want default 30", set.EstimatedMinutes)
	}
	for i, q := range questions {
		if q.DailySetID != set.ID {
			t.Errorf("question %d not linked to set", i)
		}
		if q.OrderIndex != i {
			t.Errorf("question %d order index = %d", i, q.OrderIndex)
		}
	}
}
