package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonebridge-systems/focuspulse/internal/api"
)

// makePlan builds a study plan with the given number of completed chapters.
func makePlan(id int64, title string, completed, total int, quizUnlocked bool) api.StudyPlan {
	chapters := make([]api.Chapter, total)
	for i := range chapters {
		chapters[i] = api.Chapter{ChapterNumber: i + 1, IsCompleted: i < completed}
	}
	return api.StudyPlan{
		ID:           id,
		Title:        title,
		PlanData:     api.PlanData{Chapters: chapters},
		QuizUnlocked: quizUnlocked,
	}
}

// singleSubtopicSkill is a minimal taxonomy for focused cases.
func singleSubtopicSkill(keywords ...string) []Skill {
	return []Skill{{
		ID: "test-skill", Name: "Test Skill", Tier: 1,
		Subtopics: []Subtopic{{Name: "Only", Keywords: keywords}},
	}}
}

func TestComputeSkillProgress_HalfDonePlanIsInProgress(t *testing.T) {
	plans := []api.StudyPlan{makePlan(1, "Intro to Python", 2, 4, false)}

	result := ComputeSkillProgress(plans, singleSubtopicSkill("python"))
	progress := result["test-skill"]

	require.Len(t, progress.Subtopics, 1)
	sub := progress.Subtopics[0]
	assert.True(t, sub.InProgress)
	assert.False(t, sub.Completed)
	assert.Equal(t, 50, sub.MatchedPlanPct)
	assert.Equal(t, "Intro to Python", sub.MatchedPlanTitle)
	assert.Equal(t, StateInProgress, progress.State)
	assert.Equal(t, 50, progress.CompletionPct)
}

func TestComputeSkillProgress_CompletedNeedsAllChaptersAndQuiz(t *testing.T) {
	// All chapters done but quiz still locked: not completed.
	plans := []api.StudyPlan{makePlan(1, "Python course", 4, 4, false)}
	progress := ComputeSkillProgress(plans, singleSubtopicSkill("python"))["test-skill"]
	sub := progress.Subtopics[0]
	assert.False(t, sub.Completed)
	assert.True(t, sub.InProgress, "100%% chapters without quiz stays in progress")

	// Chapters done and quiz unlocked: completed.
	plans = []api.StudyPlan{makePlan(1, "Python course", 4, 4, true)}
	progress = ComputeSkillProgress(plans, singleSubtopicSkill("python"))["test-skill"]
	sub = progress.Subtopics[0]
	assert.True(t, sub.Completed)
	assert.False(t, sub.InProgress)
	assert.Equal(t, StateCompleted, progress.State)
	assert.Equal(t, 100, progress.CompletionPct)
}

func TestComputeSkillProgress_ZeroProgressPlanClaimsSkill(t *testing.T) {
	plans := []api.StudyPlan{makePlan(1, "Learn Python", 0, 5, false)}

	progress := ComputeSkillProgress(plans, singleSubtopicSkill("python"))["test-skill"]
	sub := progress.Subtopics[0]

	assert.True(t, sub.HasMatch, "a matched 0%% plan must still report the match")
	assert.False(t, sub.InProgress, "in progress requires >0%%")
	assert.False(t, sub.Completed)
	assert.Equal(t, StateInProgress, progress.State, "any match claims the skill visibly")
	assert.Equal(t, 0, progress.CompletionPct)
}

func TestComputeSkillProgress_BestCandidateWinsStably(t *testing.T) {
	plans := []api.StudyPlan{
		makePlan(1, "Python refresher", 1, 4, false), // 25%
		makePlan(2, "Python deep dive", 3, 4, false), // 75% — wins
		makePlan(3, "Python again", 3, 4, false),     // 75% tie, later: loses
	}

	progress := ComputeSkillProgress(plans, singleSubtopicSkill("python"))["test-skill"]
	sub := progress.Subtopics[0]
	assert.Equal(t, "Python deep dive", sub.MatchedPlanTitle)
	assert.Equal(t, 75, sub.MatchedPlanPct)
}

func TestComputeSkillProgress_NoChaptersMeansZeroPct(t *testing.T) {
	plans := []api.StudyPlan{makePlan(1, "Python someday", 0, 0, true)}

	progress := ComputeSkillProgress(plans, singleSubtopicSkill("python"))["test-skill"]
	sub := progress.Subtopics[0]
	assert.True(t, sub.HasMatch)
	assert.False(t, sub.Completed, "a chapterless plan cannot complete a subtopic")
	assert.Equal(t, 0, sub.MatchedPlanPct)
}

func TestComputeSkillProgress_UnmatchedSkillNotStarted(t *testing.T) {
	plans := []api.StudyPlan{makePlan(1, "Cooking for beginners", 2, 3, false)}

	progress := ComputeSkillProgress(plans, singleSubtopicSkill("python"))["test-skill"]
	assert.Equal(t, StateNotStarted, progress.State)
	assert.Equal(t, 0, progress.CompletionPct)
	assert.False(t, progress.Subtopics[0].HasMatch)
}

func TestComputeSkillProgress_MixedSubtopicsAverage(t *testing.T) {
	taxonomy := []Skill{{
		ID: "mixed", Name: "Mixed", Tier: 1,
		Subtopics: []Subtopic{
			{Name: "A", Keywords: []string{"alpha"}},
			{Name: "B", Keywords: []string{"beta"}},
			{Name: "C", Keywords: []string{"gamma"}},
		},
	}}
	plans := []api.StudyPlan{
		makePlan(1, "Alpha course", 4, 4, true), // completed → 100
		makePlan(2, "Beta course", 1, 2, false), // in progress → 50
		// gamma unmatched → 0
	}

	progress := ComputeSkillProgress(plans, taxonomy)["mixed"]
	assert.Equal(t, 1, progress.CompletedCount)
	assert.Equal(t, 1, progress.InProgressCount)
	assert.Equal(t, 3, progress.TotalCount)
	assert.Equal(t, 50, progress.CompletionPct) // round((100+50+0)/3)
	assert.Equal(t, StateInProgress, progress.State)
}

func TestComputeSkillProgress_FullTaxonomy(t *testing.T) {
	plans := []api.StudyPlan{makePlan(1, "React.js Fundamentals in a Day", 2, 4, false)}

	result := ComputeSkillProgress(plans, Taxonomy())

	react := result["react"]
	assert.Equal(t, StateInProgress, react.State)
	assert.True(t, react.Subtopics[0].HasMatch)

	// Unrelated skills stay untouched, prerequisites notwithstanding.
	assert.Equal(t, StateNotStarted, result["python"].State)
	assert.Equal(t, StateNotStarted, result["javascript"].State)
}
