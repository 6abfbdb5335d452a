package template

import (
	"strings"
	"testing"

	"resumify/internal/render"
	"resumify/internal/resume"
)

func intPtr(v int) *int { return &v }

func TestResolve_DistinguishesUnselectedFromNotFound(t *testing.T) {
	if _, res := Resolve(nil); res != Unselected {
		t.Fatalf("nil id: got %v want Unselected", res)
	}
	if _, res := Resolve(intPtr(9999)); res != NotFound {
		t.Fatalf("unknown id: got %v want NotFound", res)
	}
	tpl, res := Resolve(intPtr(1))
	if res != Resolved || tpl == nil || tpl.ID != 1 {
		t.Fatalf("valid id: got %v / %+v", res, tpl)
	}
}

func TestForPDF_FallsBackToDefault(t *testing.T) {
	cases := []*int{nil, intPtr(0), intPtr(-3), intPtr(9999)}
	for _, id := range cases {
		if tpl := ForPDF(id); tpl.ID != DefaultID {
			t.Fatalf("id %v: got template %d want default %d", id, tpl.ID, DefaultID)
		}
	}
	if tpl := ForPDF(intPtr(2)); tpl.ID != 2 {
		t.Fatalf("valid id must not fall back, got %d", tpl.ID)
	}
}

func TestRender_SubstitutesPlaceholders(t *testing.T) {
	for _, tpl := range All() {
		html, err := tpl.Render(render.ToViewModel(resume.Content{}, render.SinkHTML, ""))
		if err != nil {
			t.Fatalf("template %d: %v", tpl.ID, err)
		}
		for _, want := range []string{"Your Name", "resume-preview", "No work experience listed"} {
			if !strings.Contains(html, want) {
				t.Fatalf("template %d output missing %q", tpl.ID, want)
			}
		}
	}
}

func TestRender_KeepsSanitizedRichText(t *testing.T) {
	content := resume.Content{
		PersonalInfo: resume.PersonalInfo{Summary: "<ul><li>led a team</li></ul>"},
	}
	tpl, _ := Resolve(intPtr(1))
	html, err := tpl.Render(render.ToViewModel(content, render.SinkHTML, ""))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<ul><li>led a team</li></ul>") {
		t.Fatalf("sanitized rich text must render unescaped:\n%s", html)
	}
}

func TestYearOf(t *testing.T) {
	if got := YearOf("2020-01-15"); got != "2020" {
		t.Fatalf("got %q", got)
	}
	if got := YearOf(""); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := YearOf("20"); got != "20" {
		t.Fatalf("got %q", got)
	}
}
