package pdf

import (
	"bytes"
	"testing"

	"resumify/internal/resume"
)

func intPtr(v int) *int { return &v }

func TestBuildDocument_EmptyContentIsTotal(t *testing.T) {
	doc := BuildDocument(resume.Content{}, nil)

	if doc.Header.Name != "Your Name" || doc.Header.Title != "Job Title" {
		t.Fatalf("header placeholders missing: %+v", doc.Header)
	}
	if doc.Profile.Initial != "U" {
		t.Fatalf("avatar fallback: got %q", doc.Profile.Initial)
	}
	if doc.Summary != "Professional summary goes here..." {
		t.Fatalf("summary placeholder: got %q", doc.Summary)
	}
	if len(doc.Jobs) != 1 || doc.Jobs[0].Summary != "No work experience listed" {
		t.Fatalf("expected single placeholder job card, got %+v", doc.Jobs)
	}
	if len(doc.Skills) != 1 || doc.Skills[0] != "Your key skills" {
		t.Fatalf("skills placeholder: %+v", doc.Skills)
	}
	if len(doc.Education) != 1 || doc.Education[0].Institution != "Institution" {
		t.Fatalf("education placeholder: %+v", doc.Education)
	}
	// 没有地址就整行省略，而不是渲染占位。
	for _, row := range doc.Contact {
		if row.Label == "Location" {
			t.Fatalf("location row must be omitted when absent")
		}
	}
}

func TestBuildDocument_ScenarioCurrentJobWithBullets(t *testing.T) {
	content := resume.Content{
		PersonalInfo: resume.PersonalInfo{FirstName: "John", LastName: "Doe"},
		WorkExperience: []resume.Work{{
			Company:     "Acme",
			Position:    "Eng",
			StartDate:   "2020-01-01",
			Current:     true,
			EndDate:     "2024-05-01",
			Description: "<ul><li>Built X</li></ul>",
		}},
		Skills: []string{"", "Go"},
	}

	doc := BuildDocument(content, nil)

	if doc.Header.Name != "John Doe" {
		t.Fatalf("name: %q", doc.Header.Name)
	}
	if doc.Profile.Initial != "J" {
		t.Fatalf("initial: %q", doc.Profile.Initial)
	}
	job := doc.Jobs[0]
	if job.Company != "Acme" || job.Position != "Eng" {
		t.Fatalf("job: %+v", job)
	}
	if job.Dates != "2020 - Present" {
		t.Fatalf("dates: %q", job.Dates)
	}
	if job.Summary != "• Built X" {
		t.Fatalf("summary: %q", job.Summary)
	}
	if len(doc.Skills) != 1 || doc.Skills[0] != "Go" {
		t.Fatalf("skills: %+v", doc.Skills)
	}
}

func TestBuildDocument_LocationRowWhenPresent(t *testing.T) {
	doc := BuildDocument(resume.Content{
		PersonalInfo: resume.PersonalInfo{Location: "Berlin"},
	}, nil)

	found := false
	for _, row := range doc.Contact {
		if row.Label == "Location" && row.Value == "Berlin" {
			found = true
		}
	}
	if !found {
		t.Fatalf("location row missing: %+v", doc.Contact)
	}
}

func TestBuildDocument_ThemeFallback(t *testing.T) {
	for _, id := range []*int{nil, intPtr(0), intPtr(-1), intPtr(42)} {
		doc := BuildDocument(resume.Content{}, id)
		if doc.Theme.TemplateID != 1 {
			t.Fatalf("id %v: theme %d, want silent fallback to 1", id, doc.Theme.TemplateID)
		}
	}
	doc := BuildDocument(resume.Content{}, intPtr(3))
	if doc.Theme.TemplateID != 3 {
		t.Fatalf("valid id must keep its theme, got %d", doc.Theme.TemplateID)
	}
}

func TestBuildDocument_PreservesWorkOrder(t *testing.T) {
	content := resume.Content{
		WorkExperience: []resume.Work{
			{Company: "Later", StartDate: "2023-01-01"},
			{Company: "Earlier", StartDate: "2019-01-01"},
		},
	}
	doc := BuildDocument(content, nil)
	if doc.Jobs[0].Company != "Later" || doc.Jobs[1].Company != "Earlier" {
		t.Fatalf("order not preserved: %+v", doc.Jobs)
	}
}

func TestRender_ProducesPDFBytes(t *testing.T) {
	doc := BuildDocument(resume.Content{
		PersonalInfo: resume.PersonalInfo{FirstName: "Ada", LastName: "Lovelace", Location: "London"},
		Skills:       []string{"Math"},
	}, intPtr(2))

	data, err := Render(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a pdf, starts with %q", data[:8])
	}
}

// 1×1 透明 PNG。
const tinyPNGDataURL = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestRender_EmbedsDataURLAvatar(t *testing.T) {
	doc := BuildDocument(resume.Content{
		PersonalInfo: resume.PersonalInfo{FirstName: "Ada", LastName: "Lovelace"},
		Basics:       resume.Basics{Image: tinyPNGDataURL},
	}, nil)
	if doc.Profile.ImageURL != tinyPNGDataURL {
		t.Fatalf("profile image url not carried: %+v", doc.Profile)
	}

	data, err := Render(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("/Subtype /Image")) {
		t.Fatalf("pdf contains no embedded image object")
	}
}

func TestRender_CorruptAvatarFallsBackToInitial(t *testing.T) {
	doc := BuildDocument(resume.Content{
		PersonalInfo: resume.PersonalInfo{FirstName: "Ada"},
		Basics:       resume.Basics{Image: "data:image/png;base64,%%%not-base64%%%"},
	}, nil)

	data, err := Render(doc)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("/Subtype /Image")) {
		t.Fatalf("corrupt avatar must not embed an image object")
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a pdf")
	}
}

func TestDecodeImageDataURL(t *testing.T) {
	if _, _, ok := decodeImageDataURL("https://cdn.example/avatar.png"); ok {
		t.Fatal("remote urls are not embeddable")
	}
	if _, _, ok := decodeImageDataURL("data:image/webp;base64,AAAA"); ok {
		t.Fatal("webp is not supported by the renderer")
	}
	imageType, raw, ok := decodeImageDataURL("data:image/jpeg;base64,aGVsbG8=")
	if !ok || imageType != "JPG" || string(raw) != "hello" {
		t.Fatalf("jpeg data url: type=%q raw=%q ok=%v", imageType, raw, ok)
	}
}
