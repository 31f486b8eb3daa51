// Wrapparr - Plex Wrapped Report Generator
// Copyright 2026 Wrapparr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wrapparr/wrapparr

// Built-in HTML templates. Kept as source constants so a single binary
// carries everything it needs to render reports.

package render

const commonStyles = `
    :root {
      --bg: #0f1420;
      --card: #1a2030;
      --accent: #e5a00d;
      --text: #e8eaf0;
      --muted: #9aa3b5;
    }
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      background: var(--bg);
      color: var(--text);
      line-height: 1.5;
      padding: 2rem 1rem;
    }
    .container { max-width: 900px; margin: 0 auto; }
    h1 { font-size: 2.2rem; margin-bottom: 0.25rem; }
    h2 { font-size: 1.2rem; color: var(--accent); margin-bottom: 0.75rem; }
    .subtitle { color: var(--muted); margin-bottom: 2rem; }
    .card {
      background: var(--card);
      border-radius: 12px;
      padding: 1.25rem 1.5rem;
      margin-bottom: 1.25rem;
    }
    .stat-grid {
      display: grid;
      grid-template-columns: repeat(auto-fit, minmax(160px, 1fr));
      gap: 1rem;
    }
    .stat-value { font-size: 1.8rem; font-weight: 700; color: var(--accent); }
    .stat-label { color: var(--muted); font-size: 0.85rem; }
    ul { list-style: none; }
    li { padding: 0.35rem 0; border-bottom: 1px solid rgba(255,255,255,0.06); }
    li:last-child { border-bottom: none; }
    .muted { color: var(--muted); }
    a { color: var(--accent); text-decoration: none; }
    a:hover { text-decoration: underline; }
    .top-item { display: flex; align-items: center; gap: 0.75rem; }
    .top-item img {
      width: 48px; height: 72px; object-fit: cover; border-radius: 6px;
    }
    footer {
      text-align: center; color: var(--muted);
      font-size: 0.8rem; margin-top: 2rem;
    }
`

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.User}} - {{.PeriodLabel}} Wrapped</title>
<style>` + commonStyles + `</style>
</head>
<body>
<div class="container">
  <h1>{{if .IsServerSummary}}🌟{{end}} {{.User}}</h1>
  <p class="subtitle">Your {{.PeriodLabel}} in review</p>

  {{if .Ranking}}
  <div class="card">
    <h2>{{.Ranking.Label}}</h2>
    <p>Ranked <strong>#{{.Ranking.Rank}}</strong> of {{.Ranking.TotalUsers}} viewers this period.</p>
  </div>
  {{end}}

  <div class="card">
    <h2>Watch Time</h2>
    <div class="stat-grid">
      <div><div class="stat-value">{{formatHours .TotalHours}}</div><div class="stat-label">Total</div></div>
      <div><div class="stat-value">{{formatFloat .TotalDays}}</div><div class="stat-label">Days of content</div></div>
      <div><div class="stat-value">{{formatHours .MovieHours}}</div><div class="stat-label">Movies</div></div>
      <div><div class="stat-value">{{formatHours .ShowHours}}</div><div class="stat-label">TV Shows</div></div>
    </div>
  </div>

  {{if .TopWatched}}
  <div class="card">
    <h2>Most Watched</h2>
    <ul>
      {{range .TopWatched}}
      <li class="top-item">
        {{if .ThumbnailPath}}<img src="{{$.ThumbsPath}}/{{basename .ThumbnailPath}}" alt="" loading="lazy">{{end}}
        <div>
          <strong>{{.Title}}</strong>
          <div class="muted">{{formatHours .Hours}} · {{.MediaType}}</div>
        </div>
      </li>
      {{end}}
    </ul>
  </div>
  {{end}}

  {{if .PeakHours.PeakSeconds}}
  <div class="card">
    <h2>Peak Hours</h2>
    <p>Busiest hour: <strong>{{.PeakHours.PeakHourLabel}}</strong></p>
    <div class="stat-grid">
      <div><div class="stat-value">{{formatPercent .PeakHours.Night.Percentage}}</div><div class="stat-label">Night</div></div>
      <div><div class="stat-value">{{formatPercent .PeakHours.Morning.Percentage}}</div><div class="stat-label">Morning</div></div>
      <div><div class="stat-value">{{formatPercent .PeakHours.Afternoon.Percentage}}</div><div class="stat-label">Afternoon</div></div>
      <div><div class="stat-value">{{formatPercent .PeakHours.Evening.Percentage}}</div><div class="stat-label">Evening</div></div>
    </div>
  </div>
  {{end}}

  {{if .Platforms.Top}}
  <div class="card">
    <h2>Platforms</h2>
    <p>Favorite: <strong>{{.Platforms.Top.Name}}</strong></p>
    <ul>
      {{range .Platforms.Platforms}}
      <li>{{.Name}} <span class="muted">{{formatHours .Hours}} ({{formatPercent .Percentage}})</span></li>
      {{end}}
    </ul>
  </div>
  {{end}}

  {{if .Streak.LongestStreak}}
  <div class="card">
    <h2>Streaks</h2>
    <p>Longest streak: <strong>{{.Streak.LongestStreak}} days</strong>
      {{if .Streak.StreakStart}}<span class="muted">({{.Streak.StreakStart}} - {{.Streak.StreakEnd}})</span>{{end}}
    </p>
    {{if .Streak.CurrentStreak}}<p>Current streak: <strong>{{.Streak.CurrentStreak}} days</strong></p>{{end}}
    <p class="muted">Active on {{.Streak.TotalActiveDays}} days this period.</p>
  </div>
  {{end}}

  {{if .BingeSessions}}
  <div class="card">
    <h2>Binge Sessions</h2>
    <ul>
      {{range .BingeSessions}}
      <li><strong>{{.Show}}</strong> <span class="muted">{{.EpisodeCount}} episodes starting {{.Date}}</span></li>
      {{end}}
    </ul>
  </div>
  {{end}}

  {{if or .FirstLast.First .FirstLast.Last}}
  <div class="card">
    <h2>Bookends</h2>
    {{if .FirstLast.First}}<p>First watch: <strong>{{.FirstLast.First.Title}}</strong> <span class="muted">{{.FirstLast.First.Date}}</span></p>{{end}}
    {{if .FirstLast.Last}}<p>Last watch: <strong>{{.FirstLast.Last.Title}}</strong> <span class="muted">{{.FirstLast.Last.Date}}</span></p>{{end}}
  </div>
  {{end}}

  {{if .Genres.TopGenres}}
  <div class="card">
    <h2>Genres</h2>
    <p class="muted">{{.Genres.UniqueGenres}} distinct genres explored.</p>
    <ul>
      {{range .Genres.TopGenres}}
      <li>{{.Name}} <span class="muted">{{formatHours .Hours}}</span></li>
      {{end}}
    </ul>
  </div>
  {{end}}

  {{if .LibraryCoverage}}
  <div class="card">
    <h2>Library Coverage</h2>
    <ul>
      {{range .LibraryCoverage}}
      <li>{{.Name}} <span class="muted">{{.Watched}} of {{.Total}} ({{formatPercent .Percentage}})</span></li>
      {{end}}
    </ul>
  </div>
  {{end}}

  {{if .UniqueContent.Count}}
  <div class="card">
    <h2>Only You Watched</h2>
    <p class="muted">{{.UniqueContent.Count}} titles nobody else on the server touched.</p>
    <ul>
      {{range .UniqueContent.Items}}
      <li>{{.Title}} <span class="muted">{{.MediaType}}</span></li>
      {{end}}
    </ul>
  </div>
  {{end}}

  <footer>Generated {{.GeneratedAt}} by Wrapparr</footer>
</div>
</body>
</html>
`

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Wrapparr Reports</title>
<style>` + commonStyles + `</style>
</head>
<body>
<div class="container">
  <h1>Wrapped Reports</h1>
  <p class="subtitle">{{.TotalReports}} reports available</p>

  {{range .Years}}
  <div class="card">
    <h2>{{.Year}}</h2>
    {{if .Yearly}}
    <ul>
      {{range .Yearly}}
      <li><a href="{{.Path}}">{{if .IsServerSummary}}🌟 {{end}}{{.Name}}</a></li>
      {{end}}
    </ul>
    {{end}}
    {{range .Months}}
    <h2>{{.Month}}</h2>
    <ul>
      {{range .Entries}}
      <li><a href="{{.Path}}">{{if .IsServerSummary}}🌟 {{end}}{{.Name}}</a></li>
      {{end}}
    </ul>
    {{end}}
  </div>
  {{end}}

  <footer>Generated {{.GeneratedAt}}</footer>
</div>
</body>
</html>
`
