package skills

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"React.js Fundamentals", "react js fundamentals"},
		{"  Hello,   World!  ", "hello world"},
		{"C++ & Go!", "c go"},
		{"", ""},
		{"...", ""},
	}

	for _, tc := range tests {
		if got := Normalize(tc.input); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		phrase string
		want   bool
	}{
		{"dot equals space", "React.js Fundamentals in a Day", "react fundamentals", true},
		{"no overlap", "Advanced Python", "react fundamentals", false},
		{"case insensitive", "JAVA basics", "java", true},
		{"word order irrelevant", "Fundamentals of React", "react fundamentals", true},
		{"whole word only", "javascript course", "java", false},
		{"partial phrase missing", "react course", "react fundamentals", false},
		{"punctuation stripped", "Git: Branching & Merging!", "git branching", true},
		{"empty phrase", "anything", "", false},
		{"empty text", "", "react", false},
		{"regex specials are inert", "c++ (advanced) [draft]", "c advanced draft", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(tc.text, tc.phrase); got != tc.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tc.text, tc.phrase, got, tc.want)
			}
		})
	}
}
