package export

import "testing"

func TestFilename_StripsNonAlphanumeric(t *testing.T) {
	cases := []struct {
		title string
		id    uint
		want  string
	}{
		{"My Resume", 7, "My_Resume_7.pdf"},
		{"Senior Gopher (2024)!", 12, "Senior_Gopher_2024_12.pdf"},
		{"///", 3, "resume_3.pdf"},
		{"", 0, "resume_0.pdf"},
		{"简历", 9, "resume_9.pdf"},
	}
	for _, tc := range cases {
		if got := Filename(tc.title, tc.id); got != tc.want {
			t.Fatalf("Filename(%q, %d) = %q, want %q", tc.title, tc.id, got, tc.want)
		}
	}
}

func TestContentSelectorCascadeEndsWithGenericFallback(t *testing.T) {
	if len(contentSelectors) < 2 {
		t.Fatalf("expected a cascade, got %v", contentSelectors)
	}
	if contentSelectors[0] != "#resume-preview" {
		t.Fatalf("primary selector changed: %q", contentSelectors[0])
	}
	if contentSelectors[len(contentSelectors)-1] != "body > *" {
		t.Fatalf("generic fallback must be last: %q", contentSelectors[len(contentSelectors)-1])
	}
}
