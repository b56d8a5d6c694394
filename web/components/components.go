// Package components renders the SendTrend pages. Markup lives in
// html/template definitions wrapped as templ components so handlers
// can render everything through one code path.
package components

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

var pageFuncs = template.FuncMap{
	"heatClass": heatClass,
	"barWidth":  barWidth,
	"seq":       weekdayRows,
	"weekDay":   weekDay,
	"counters":  counterNames,
}

const layoutMarkup = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>SendTrend</title>
    <style>
        body { font-family: sans-serif; margin: 0 auto; max-width: 60rem; padding: 1rem; color: #222; }
        nav { margin-bottom: 1.5rem; }
        nav a { margin-right: 1rem; }
        table { border-collapse: collapse; margin-bottom: 1.5rem; }
        th, td { border: 1px solid #ddd; padding: 0.3rem 0.6rem; text-align: right; }
        th:first-child, td:first-child { text-align: left; }
        .cards { display: flex; gap: 1rem; margin-bottom: 1.5rem; }
        .card { background: #f6f6f6; border-radius: 6px; padding: 0.8rem 1.2rem; }
        .card .big { font-size: 1.6rem; font-weight: bold; }
        .calendar td { border: none; padding: 1px; }
        .cell { width: 12px; height: 12px; border-radius: 2px; }
        .level-0 { background: #ebedf0; }
        .level-1 { background: #bbf7d0; }
        .level-2 { background: #86efac; }
        .level-3 { background: #4ade80; }
        .level-4 { background: #22c55e; }
        .bar { background: #3498DB; height: 0.8rem; }
        form.inline { display: inline; }
    </style>
</head>
<body>
    <nav>
        <a href="/">Dashboard</a>
        <a href="/sessions">Sessions</a>
    </nav>
    {{template "content" .}}
</body>
</html>`

var layoutTpl = template.Must(template.New("layout").Funcs(pageFuncs).Parse(layoutMarkup))

// page parses a content definition against a clone of the shared
// layout.
func page(content string) *template.Template {
	return template.Must(template.Must(layoutTpl.Clone()).Parse(content))
}

var dashboardTpl = page(`{{define "content"}}
<h2>Climbing Dashboard</h2>
<form method="get" action="/">
    <label for="range">Time range</label>
    <select id="range" name="range" onchange="this.form.submit()">
        {{range .RangeOptions}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
    </select>
    <noscript><button type="submit">Apply</button></noscript>
</form>

<div class="cards">
    <div class="card"><div class="big">{{.SessionCount}}</div>sessions</div>
    <div class="card"><div class="big">{{.TotalCompleted}}</div>routes completed</div>
    <div class="card"><div class="big">{{.GymCount}}</div>gyms visited</div>
</div>

<h3>Climbing Activity</h3>
{{if .Weeks}}
<table class="calendar">
    {{range $dow := seq}}
    <tr>
        {{range $week := $.Weeks}}
        {{$cell := weekDay $week $dow}}
        {{if $cell}}<td><div class="cell {{heatClass $cell.Count}}" title="{{$cell.FormattedDate}}: {{$cell.Count}} routes"></div></td>{{else}}<td></td>{{end}}
        {{end}}
    </tr>
    {{end}}
</table>
{{else}}
<p>No climbing data available for this time range.</p>
{{end}}

<h3>Progress</h3>
{{if .Progress}}
<table>
    <tr><th>Date</th><th>Routes</th><th>Avg difficulty</th><th>Gyms</th></tr>
    {{range .Progress}}
    <tr><td>{{.FormattedDate}}</td><td>{{.TotalCompleted}}</td><td>{{.AverageDifficulty}}</td><td>{{.GymCount}}</td></tr>
    {{end}}
</table>
{{else}}
<p>No sessions recorded yet.</p>
{{end}}

<h3>Routes by Weekday</h3>
<table>
    <tr><th>Day</th><th>Average</th><th></th></tr>
    {{range .Weekdays}}
    <tr>
        <td>{{.Name}}</td>
        <td>{{.Value}}</td>
        <td style="min-width: 10rem; text-align: left;"><div class="bar" style="width: {{barWidth .Value .FullMark}}%"></div></td>
    </tr>
    {{end}}
</table>

<h3>Difficulty Distribution</h3>
{{if .Difficulties}}
<table>
    <tr><th>Difficulty</th><th>Completed</th></tr>
    {{range .Difficulties}}
    <tr><td>{{.DifficultyLabel}}</td><td>{{.Count}}</td></tr>
    {{end}}
</table>
{{else}}
<p>No graded routes in this range.</p>
{{end}}

<h3>Completed by Date and Difficulty</h3>
{{if .Stacked}}
<table>
    <tr><th>Date</th><th>Gym</th><th>Counts</th><th>Avg difficulty</th></tr>
    {{range $row := .Stacked}}
    <tr>
        <td><a href="/sessions/{{$row.SessionID}}">{{$row.FormattedDate}}</a></td>
        <td>{{$row.GymName}}</td>
        <td>{{range $difficulty := $row.Difficulties}}{{$difficulty}}: {{index $row.Counts $difficulty}} {{end}}</td>
        <td>{{$row.AverageDifficulty}}</td>
    </tr>
    {{end}}
</table>
{{end}}

<h3>Recent Sessions</h3>
<table>
    <tr><th>Date</th><th>Gym</th><th>Routes</th></tr>
    {{range .Recent}}
    <tr><td><a href="/sessions/{{.ID}}">{{.Date}}</a></td><td>{{.GymName}}</td><td>{{.TotalCompleted}}</td></tr>
    {{end}}
</table>
{{end}}`)

var sessionsTpl = page(`{{define "content"}}
<h2>Sessions</h2>
<table>
    <tr><th>Date</th><th>Gym</th><th>Routes</th></tr>
    {{range .Sessions}}
    <tr><td><a href="/sessions/{{.ID}}">{{.Date}}</a></td><td>{{.GymName}}</td><td>{{.TotalCompleted}}</td></tr>
    {{end}}
</table>

<h3>New Session</h3>
<form method="post" action="/sessions">
    <label>Date <input type="date" name="date" required></label>
    <label>Gym
        <select name="gym_id">
            <option value="">No gym</option>
            {{range .Gyms}}<option value="{{.ID}}">{{.Name}} - {{.Location}}</option>{{end}}
        </select>
    </label>
    <label>Notes <input type="text" name="notes"></label>
    <button type="submit">Start session</button>
</form>

<h3>New Gym</h3>
<form method="post" action="/gyms">
    <label>Name <input type="text" name="name" required></label>
    <label>Location <input type="text" name="location"></label>
    <button type="submit">Add gym</button>
</form>
{{end}}`)

var sessionDetailTpl = page(`{{define "content"}}
<h2>Session on {{.Session.Date}}</h2>
<p>{{.GymName}}{{with .Session.Notes}} &mdash; {{.}}{{end}}</p>

<table>
    <tr><th>Category</th><th>Completed</th><th>Attempted</th><th>Extra attempts</th><th></th></tr>
    {{$sessionID := .Session.ID}}
    {{range .Categories}}
    <tr>
        <td>{{.Category.Name}}</td>
        <td>{{.Completed}}</td>
        <td>{{.Attempted}}</td>
        <td>{{.Additional}}</td>
        <td style="text-align: left;">
            {{$categoryID := .Category.ID}}
            {{range $counter := counters}}
            <form class="inline" method="post" action="/sessions/{{$sessionID}}/routes">
                <input type="hidden" name="category_id" value="{{$categoryID}}">
                <input type="hidden" name="counter" value="{{$counter}}">
                <input type="hidden" name="delta" value="1">
                <button type="submit">+{{$counter}}</button>
            </form>
            <form class="inline" method="post" action="/sessions/{{$sessionID}}/routes">
                <input type="hidden" name="category_id" value="{{$categoryID}}">
                <input type="hidden" name="counter" value="{{$counter}}">
                <input type="hidden" name="delta" value="-1">
                <button type="submit">-</button>
            </form>
            {{end}}
        </td>
    </tr>
    {{end}}
</table>

{{with .Session.Gym}}
<h3>New Category</h3>
<form method="post" action="/categories">
    <input type="hidden" name="gym_id" value="{{.ID}}">
    <input type="hidden" name="session_id" value="{{$.Session.ID}}">
    <label>Name <input type="text" name="name" required></label>
    <label>Difficulty <input type="number" name="difficulty_index" min="1" required></label>
    <label>Notes <input type="text" name="notes"></label>
    <button type="submit">Add category</button>
</form>
{{end}}
{{end}}`)

// fromTemplate adapts an html/template into a templ component so
// handlers render every page the same way.
func fromTemplate(tpl *template.Template, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return tpl.Execute(w, data)
	})
}

// Dashboard renders the main dashboard page.
func Dashboard(ctx *DashboardContext) templ.Component {
	return fromTemplate(dashboardTpl, ctx)
}

// Sessions renders the session list page.
func Sessions(ctx *SessionsContext) templ.Component {
	return fromTemplate(sessionsTpl, ctx)
}

// SessionDetail renders the per-session tracking page.
func SessionDetail(ctx *SessionDetailContext) templ.Component {
	return fromTemplate(sessionDetailTpl, ctx)
}
