package skills

// Skill is one entry of the fixed taxonomy. Prerequisites are informational
// only; nothing in the progress computation gates on them.
type Skill struct {
	ID            string
	Name          string
	Tier          int
	ColorHint     string
	Prerequisites []string
	Subtopics     []Subtopic
}

// Subtopic is a unit of a skill matched against study-plan titles. A plan
// matches when any one of the keyword phrases matches its text.
type Subtopic struct {
	Name     string
	Keywords []string
}

// Taxonomy returns the fixed skill catalog, ordered by tier. IDs are stored
// in milestone state, so keep them stable.
func Taxonomy() []Skill {
	return []Skill{
		// ── Tier 1: Foundations ────────────────────────────────────────
		{
			ID: "python", Name: "Python", Tier: 1, ColorHint: "#3776ab",
			Subtopics: []Subtopic{
				{Name: "Syntax & Basics", Keywords: []string{"python basics", "intro python", "python fundamentals"}},
				{Name: "Data Structures", Keywords: []string{"python data structures", "python lists"}},
				{Name: "Object-Oriented Python", Keywords: []string{"python oop", "python classes"}},
			},
		},
		{
			ID: "web-foundations", Name: "Web Foundations", Tier: 1, ColorHint: "#e34f26",
			Subtopics: []Subtopic{
				{Name: "HTML", Keywords: []string{"html"}},
				{Name: "CSS", Keywords: []string{"css"}},
				{Name: "Responsive Layout", Keywords: []string{"responsive design", "flexbox", "css grid"}},
			},
		},
		{
			ID: "git", Name: "Version Control", Tier: 1, ColorHint: "#f05032",
			Subtopics: []Subtopic{
				{Name: "Git Basics", Keywords: []string{"git basics", "intro git"}},
				{Name: "Branching & Merging", Keywords: []string{"git branching", "git merge"}},
			},
		},

		// ── Tier 2: Core development ───────────────────────────────────
		{
			ID: "javascript", Name: "JavaScript", Tier: 2, ColorHint: "#f7df1e",
			Prerequisites: []string{"web-foundations"},
			Subtopics: []Subtopic{
				{Name: "Language Fundamentals", Keywords: []string{"javascript fundamentals", "js basics", "intro javascript"}},
				{Name: "DOM & Events", Keywords: []string{"dom", "javascript events"}},
				{Name: "Async JavaScript", Keywords: []string{"async javascript", "promises", "javascript await"}},
			},
		},
		{
			ID: "sql", Name: "Databases & SQL", Tier: 2, ColorHint: "#336791",
			Prerequisites: []string{"python"},
			Subtopics: []Subtopic{
				{Name: "SQL Queries", Keywords: []string{"sql basics", "sql queries", "intro sql"}},
				{Name: "Data Modeling", Keywords: []string{"database design", "data modeling"}},
			},
		},
		{
			ID: "java", Name: "Java", Tier: 2, ColorHint: "#e76f00",
			Prerequisites: []string{"python"},
			Subtopics: []Subtopic{
				{Name: "Java Basics", Keywords: []string{"java basics", "intro java", "java fundamentals"}},
				{Name: "Collections & Generics", Keywords: []string{"java collections", "java generics"}},
			},
		},

		// ── Tier 3: Frameworks & backend ───────────────────────────────
		{
			ID: "react", Name: "React", Tier: 3, ColorHint: "#61dafb",
			Prerequisites: []string{"javascript"},
			Subtopics: []Subtopic{
				{Name: "React Fundamentals", Keywords: []string{"react fundamentals", "intro react", "react basics"}},
				{Name: "Hooks & State", Keywords: []string{"react hooks", "react state"}},
				{Name: "Routing & Data", Keywords: []string{"react router", "react data fetching"}},
			},
		},
		{
			ID: "go-backend", Name: "Go Backend", Tier: 3, ColorHint: "#00add8",
			Prerequisites: []string{"sql", "git"},
			Subtopics: []Subtopic{
				{Name: "Go Fundamentals", Keywords: []string{"go basics", "golang fundamentals", "intro golang"}},
				{Name: "HTTP Services", Keywords: []string{"go http", "golang rest api", "go web services"}},
				{Name: "Concurrency", Keywords: []string{"go concurrency", "goroutines"}},
			},
		},
	}
}
