package skills

import (
	"math"

	"github.com/stonebridge-systems/focuspulse/internal/api"
)

// SkillState is the display state of a skill.
type SkillState string

const (
	StateNotStarted SkillState = "not-started"
	StateInProgress SkillState = "in-progress"
	StateCompleted  SkillState = "completed"
)

// SubtopicStatus is the computed status of one subtopic.
type SubtopicStatus struct {
	Name             string
	Completed        bool
	InProgress       bool
	HasMatch         bool
	MatchedPlanTitle string
	MatchedPlanPct   int
}

// SkillProgress is the computed progress of one skill.
type SkillProgress struct {
	SkillID         string
	CompletedCount  int
	InProgressCount int
	TotalCount      int
	CompletionPct   int
	State           SkillState
	Subtopics       []SubtopicStatus
}

// planFacts caches per-plan values reused across every subtopic scan.
type planFacts struct {
	title         string
	searchText    string
	completionPct float64
	allDone       bool
	quizPassed    bool
}

// ComputeSkillProgress matches every study plan against the taxonomy and
// returns per-skill completion. Prerequisites never gate anything here.
func ComputeSkillProgress(plans []api.StudyPlan, taxonomy []Skill) map[string]SkillProgress {
	facts := make([]planFacts, 0, len(plans))
	for _, p := range plans {
		total := len(p.PlanData.Chapters)
		completed := 0
		for _, ch := range p.PlanData.Chapters {
			if ch.IsCompleted {
				completed++
			}
		}

		pct := 0.0
		allDone := false
		if total > 0 {
			pct = float64(completed) / float64(total) * 100
			allDone = completed == total
		}

		facts = append(facts, planFacts{
			title:         p.Title,
			searchText:    p.Title + " " + p.Goal,
			completionPct: pct,
			allDone:       allDone,
			quizPassed:    p.QuizUnlocked && allDone,
		})
	}

	result := make(map[string]SkillProgress, len(taxonomy))
	for _, skill := range taxonomy {
		progress := SkillProgress{
			SkillID:    skill.ID,
			TotalCount: len(skill.Subtopics),
			Subtopics:  make([]SubtopicStatus, 0, len(skill.Subtopics)),
		}

		pctSum := 0.0
		anyMatch := false
		for _, sub := range skill.Subtopics {
			status := computeSubtopic(sub, facts)
			progress.Subtopics = append(progress.Subtopics, status)

			switch {
			case status.Completed:
				progress.CompletedCount++
				pctSum += 100
			case status.InProgress:
				progress.InProgressCount++
				pctSum += float64(status.MatchedPlanPct)
			}
			if status.HasMatch {
				anyMatch = true
			}
		}

		if progress.TotalCount > 0 {
			progress.CompletionPct = int(math.Round(pctSum / float64(progress.TotalCount)))
		}

		switch {
		case progress.TotalCount > 0 && progress.CompletedCount == progress.TotalCount:
			progress.State = StateCompleted
		case progress.InProgressCount > 0 || progress.CompletedCount > 0 || anyMatch:
			// A freshly created 0% plan still visibly claims the skill.
			progress.State = StateInProgress
		default:
			progress.State = StateNotStarted
		}

		result[skill.ID] = progress
	}
	return result
}

// computeSubtopic scans all plans for the best match of one subtopic. Among
// candidate plans the highest completion percentage wins; ties keep the first
// encountered.
func computeSubtopic(sub Subtopic, facts []planFacts) SubtopicStatus {
	status := SubtopicStatus{Name: sub.Name}

	var best *planFacts
	for i := range facts {
		candidate := false
		for _, phrase := range sub.Keywords {
			if Matches(facts[i].searchText, phrase) {
				candidate = true
				break
			}
		}
		if !candidate {
			continue
		}
		if best == nil || facts[i].completionPct > best.completionPct {
			best = &facts[i]
		}
	}

	if best == nil {
		return status
	}

	status.HasMatch = true
	status.MatchedPlanTitle = best.title
	status.MatchedPlanPct = int(math.Round(best.completionPct))
	status.Completed = best.allDone && best.quizPassed
	// A matched plan with no progress yet is neither completed nor in
	// progress; it only marks the match.
	status.InProgress = !status.Completed && best.completionPct > 0
	return status
}
