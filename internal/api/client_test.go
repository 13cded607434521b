package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductivitySummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/productivity/summary", r.URL.Path)
		assert.Equal(t, "Bearer sekret", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"productive_minutes": 90, "distracting_minutes": 15}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "sekret")
	summary, err := c.ProductivitySummary(context.Background())
	require.NoError(t, err)

	// Absent fields read as zero.
	assert.Equal(t, ProductivitySummary{ProductiveMinutes: 90, DistractingMinutes: 15}, summary)
	assert.Equal(t, 105, summary.TotalMinutes())
}

func TestProductivitySummary_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "stale")
	_, err := c.ProductivitySummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestStudyPlans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/study-plans", r.URL.Path)
		fmt.Fprint(w, `[
			{"id": 1, "title": "Intro to Python", "goal": "basics",
			 "plan_data": {"chapters": [
				{"chapter_number": 1, "is_completed": true},
				{"chapter_number": 2, "is_completed": false}
			 ], "quiz": [{}]},
			 "quiz_unlocked": false}
		]`)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	plans, err := c.StudyPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Intro to Python", plans[0].Title)
	assert.Len(t, plans[0].PlanData.Chapters, 2)
	assert.True(t, plans[0].PlanData.Chapters[0].IsCompleted)
	assert.False(t, plans[0].QuizUnlocked)
}

func TestAllPlanProgress_SkipsFailingPlans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/study-plans/1/progress":
			fmt.Fprint(w, `{"total_chapters": 2, "completed_chapters": 1,
				"chapters": [{"is_completed": true}, {"progress_percentage": 40}]}`)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	progress, err := c.AllPlanProgress(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err, "individual plan failures must not fail the pass")

	require.Len(t, progress, 1)
	assert.Equal(t, 2, progress[1].TotalChapters)
	assert.Len(t, progress[1].Chapters, 2)
}

func TestActivityHistory_OmitsZeroDays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "365", r.URL.Query().Get("days"))
		fmt.Fprint(w, `[
			{"date": "2026-08-25", "total_active_minutes": 45},
			{"date": "2026-08-26", "total_active_minutes": 0},
			{"date": "2026-08-27"},
			{"date": "2026-08-28", "total_active_minutes": 120}
		]`)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	history, err := c.ActivityHistory(context.Background(), 365)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"2026-08-25": 45,
		"2026-08-28": 120,
	}, history)
}
