package template

// 三套固定布局。每套都在 #resume-preview 下渲染，导出管线依赖这个
// 选择器判断内容就绪。占位文案与 PDF 构建器保持一致。

const classicLayout = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { margin: 0; font-family: 'Helvetica', 'Arial', sans-serif; color: #1f2933; }
  .page { width: 794px; min-height: 1122px; margin: 0 auto; background: white; display: flex; }
  .side { width: 260px; background: #1e3a5f; color: #e8eef5; padding: 32px 24px; box-sizing: border-box; }
  .main { flex: 1; padding: 36px 32px; box-sizing: border-box; }
  .avatar { width: 96px; height: 96px; border-radius: 50%; object-fit: cover; }
  .avatar-fallback { width: 96px; height: 96px; border-radius: 50%; background: #3f6ea5; display: flex; align-items: center; justify-content: center; font-size: 40px; }
  h1 { margin: 0 0 4px; font-size: 28px; }
  h2 { font-size: 13px; text-transform: uppercase; letter-spacing: 1px; border-bottom: 1px solid #c5d0db; padding-bottom: 4px; }
  .side h2 { border-color: #3f6ea5; }
  .job { margin-bottom: 18px; }
  .job .dates { color: #5f6b76; font-size: 12px; }
  ul { padding-left: 18px; margin: 6px 0; }
</style>
</head>
<body>
<div class="page" id="resume-preview" data-resume-preview>
  <aside class="side">
    {{if .Basics.Image}}<img class="avatar" src="{{.Basics.Image}}" alt="">{{else}}<div class="avatar-fallback">{{if .Basics.Name}}{{printf "%.1s" .Basics.Name}}{{else}}U{{end}}</div>{{end}}
    <h2>Contact</h2>
    <p>{{if .Basics.Email}}{{.Basics.Email}}{{else}}Email{{end}}</p>
    <p>{{if .Basics.Phone}}{{.Basics.Phone}}{{else}}Phone{{end}}</p>
    {{with .Basics.Location}}<p>{{.Address}}</p>{{end}}
    <h2>Skills</h2>
    {{range .SkillItems}}<p>{{.Name}}</p>{{else}}<p>Your key skills</p>{{end}}
    <h2>Education</h2>
    {{range .EducationItems}}
      <p><strong>{{if .Institution}}{{.Institution}}{{else}}Institution{{end}}</strong><br>
      {{if .StudyType}}{{.StudyType}}{{end}}{{if .Area}} · {{.Area}}{{end}}<br>
      {{yearOf .StartDate}}{{if .EndDate}} - {{yearOf .EndDate}}{{end}}</p>
    {{else}}<p>No education listed</p>{{end}}
  </aside>
  <main class="main">
    <h1>{{if .Basics.Name}}{{.Basics.Name}}{{else}}Your Name{{end}}</h1>
    <p>{{if .Basics.Label}}{{.Basics.Label}}{{else}}Job Title{{end}}</p>
    <h2>Summary</h2>
    <div>{{if .Basics.Summary}}{{safeHTML .Basics.Summary}}{{else}}Professional summary goes here...{{end}}</div>
    <h2>Work Experience</h2>
    {{range .Work}}
    <div class="job">
      <strong>{{if .Name}}{{.Name}}{{else}}Company Name{{end}}</strong> — {{if .Position}}{{.Position}}{{else}}Job Title{{end}}
      <div class="dates">{{yearOf .StartDate}} - {{if .EndDate}}{{yearOf .EndDate}}{{else}}Present{{end}}</div>
      <div>{{safeHTML .Summary}}</div>
    </div>
    {{else}}<p>No work experience listed</p>{{end}}
  </main>
</div>
</body>
</html>
`

const modernLayout = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { margin: 0; font-family: 'Georgia', serif; color: #2d2d2d; }
  .page { width: 794px; min-height: 1122px; margin: 0 auto; background: white; padding: 48px 56px; box-sizing: border-box; }
  header { text-align: center; border-bottom: 2px solid #2d2d2d; padding-bottom: 16px; margin-bottom: 24px; }
  h1 { margin: 0; font-size: 32px; letter-spacing: 2px; }
  .contact { font-size: 13px; color: #6b6b6b; margin-top: 8px; }
  h2 { font-size: 15px; text-transform: uppercase; letter-spacing: 2px; margin-top: 28px; }
  .entry { margin-bottom: 14px; }
  .dates { font-style: italic; color: #6b6b6b; font-size: 12px; }
  .skills span { display: inline-block; border: 1px solid #2d2d2d; padding: 2px 10px; margin: 2px; border-radius: 12px; font-size: 12px; }
</style>
</head>
<body>
<div class="page" id="resume-preview" data-resume-preview>
  <header>
    <h1>{{if .Basics.Name}}{{.Basics.Name}}{{else}}Your Name{{end}}</h1>
    <p>{{if .Basics.Label}}{{.Basics.Label}}{{else}}Job Title{{end}}</p>
    <p class="contact">
      {{if .Basics.Email}}{{.Basics.Email}}{{else}}Email{{end}} ·
      {{if .Basics.Phone}}{{.Basics.Phone}}{{else}}Phone{{end}}
      {{with .Basics.Location}} · {{.Address}}{{end}}
    </p>
  </header>
  <section>
    <h2>Profile</h2>
    <div>{{if .Basics.Summary}}{{safeHTML .Basics.Summary}}{{else}}Professional summary goes here...{{end}}</div>
  </section>
  <section>
    <h2>Experience</h2>
    {{range .Work}}
    <div class="entry">
      <strong>{{if .Position}}{{.Position}}{{else}}Job Title{{end}}</strong>, {{if .Name}}{{.Name}}{{else}}Company Name{{end}}
      <div class="dates">{{yearOf .StartDate}} - {{if .EndDate}}{{yearOf .EndDate}}{{else}}Present{{end}}</div>
      <div>{{safeHTML .Summary}}</div>
    </div>
    {{else}}<p>No work experience listed</p>{{end}}
  </section>
  <section>
    <h2>Education</h2>
    {{range .EducationItems}}
    <div class="entry">
      <strong>{{if .Institution}}{{.Institution}}{{else}}Institution{{end}}</strong>
      {{if .StudyType}}— {{.StudyType}}{{end}}{{if .Area}}, {{.Area}}{{end}}
      <div class="dates">{{yearOf .StartDate}}{{if .EndDate}} - {{yearOf .EndDate}}{{end}}</div>
    </div>
    {{else}}<p>No education listed</p>{{end}}
  </section>
  <section class="skills">
    <h2>Skills</h2>
    {{range .SkillItems}}<span>{{.Name}}</span>{{else}}<p>Your key skills</p>{{end}}
  </section>
</div>
</body>
</html>
`

const slateLayout = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { margin: 0; font-family: 'Helvetica', sans-serif; color: #333; }
  .page { width: 794px; min-height: 1122px; margin: 0 auto; background: white; display: flex; flex-direction: row-reverse; }
  .side { width: 240px; background: #f0f2f5; padding: 32px 20px; box-sizing: border-box; }
  .main { flex: 1; padding: 40px 32px; box-sizing: border-box; }
  h1 { margin: 0; font-size: 26px; color: #0f766e; }
  h2 { font-size: 13px; color: #0f766e; text-transform: uppercase; margin-top: 24px; }
  .dates { color: #777; font-size: 12px; }
</style>
</head>
<body>
<div class="page" id="resume-preview" data-resume-preview>
  <aside class="side">
    {{if .Basics.Image}}<img src="{{.Basics.Image}}" style="width:88px;height:88px;border-radius:50%;object-fit:cover;" alt="">{{end}}
    <h2>Contact</h2>
    <p>{{if .Basics.Email}}{{.Basics.Email}}{{else}}Email{{end}}</p>
    <p>{{if .Basics.Phone}}{{.Basics.Phone}}{{else}}Phone{{end}}</p>
    {{with .Basics.Location}}<p>{{.Address}}</p>{{end}}
    <h2>Skills</h2>
    {{range .SkillItems}}<p>{{.Name}}</p>{{else}}<p>Your key skills</p>{{end}}
  </aside>
  <main class="main">
    <h1>{{if .Basics.Name}}{{.Basics.Name}}{{else}}Your Name{{end}}</h1>
    <p>{{if .Basics.Label}}{{.Basics.Label}}{{else}}Job Title{{end}}</p>
    <h2>About</h2>
    <div>{{if .Basics.Summary}}{{safeHTML .Basics.Summary}}{{else}}Professional summary goes here...{{end}}</div>
    <h2>Experience</h2>
    {{range .Work}}
    <div>
      <strong>{{if .Name}}{{.Name}}{{else}}Company Name{{end}}</strong> · {{if .Position}}{{.Position}}{{else}}Job Title{{end}}
      <div class="dates">{{yearOf .StartDate}} - {{if .EndDate}}{{yearOf .EndDate}}{{else}}Present{{end}}</div>
      <div>{{safeHTML .Summary}}</div>
    </div>
    {{else}}<p>No work experience listed</p>{{end}}
    <h2>Education</h2>
    {{range .EducationItems}}
    <div>
      <strong>{{if .Institution}}{{.Institution}}{{else}}Institution{{end}}</strong>
      {{if .StudyType}}— {{.StudyType}}{{end}}{{if .Area}}, {{.Area}}{{end}}
      <div class="dates">{{yearOf .StartDate}}{{if .EndDate}} - {{yearOf .EndDate}}{{end}}</div>
    </div>
    {{else}}<p>No education listed</p>{{end}}
  </main>
</div>
</body>
</html>
`
