package api

import "encoding/json"

// ProductivitySummary is today's activity breakdown in minutes. Missing
// fields decode to zero.
type ProductivitySummary struct {
	ProductiveMinutes  int `json:"productive_minutes"`
	NeutralMinutes     int `json:"neutral_minutes"`
	DistractingMinutes int `json:"distracting_minutes"`
}

// TotalMinutes returns the sum of all tracked minutes for the day.
func (s ProductivitySummary) TotalMinutes() int {
	return s.ProductiveMinutes + s.NeutralMinutes + s.DistractingMinutes
}

// StudyPlan is one study plan as served by the backend. The quiz payload is
// opaque to this client; only its presence matters.
type StudyPlan struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Goal         string   `json:"goal"`
	PlanData     PlanData `json:"plan_data"`
	QuizUnlocked bool     `json:"quiz_unlocked"`
}

// PlanData holds the chapter list and quiz payload of a plan.
type PlanData struct {
	Chapters []Chapter         `json:"chapters"`
	Quiz     []json.RawMessage `json:"quiz"`
}

// Chapter is a single chapter inside a plan.
type Chapter struct {
	ChapterNumber int  `json:"chapter_number"`
	IsCompleted   bool `json:"is_completed"`
}

// ChapterProgress is the per-plan progress detail used for overall-level
// milestone computation.
type ChapterProgress struct {
	TotalChapters     int            `json:"total_chapters"`
	CompletedChapters int            `json:"completed_chapters"`
	Chapters          []ChapterState `json:"chapters"`
}

// ChapterState is the progress of one chapter.
type ChapterState struct {
	IsCompleted        bool    `json:"is_completed"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// ActivityDay is one day of trailing activity minutes.
type ActivityDay struct {
	Date               string `json:"date"`
	TotalActiveMinutes int    `json:"total_active_minutes"`
}
