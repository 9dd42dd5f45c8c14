package export

import (
	"html/template"
	"io"
	"time"

	"portfolio/reports"
)

// roadmapPalette cycles per category (pillar).
var roadmapPalette = []string{
	"#4e79a7", "#f28e2b", "#59a14f", "#e15759", "#76b7b2", "#edc948", "#b07aa1",
}

const roadmapHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 24px; }
  h1 { font-size: 20px; }
  .range { color: #666; font-size: 12px; margin-bottom: 16px; }
  .row { display: flex; align-items: center; margin: 4px 0; }
  .label { width: 220px; font-size: 12px; text-align: right; padding-right: 8px;
           overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
  .track { position: relative; flex: 1; height: 18px; background: #f3f3f3; }
  .bar { position: absolute; height: 100%; border-radius: 3px; }
  .legend { margin-top: 16px; font-size: 12px; }
  .swatch { display: inline-block; width: 10px; height: 10px; margin: 0 4px 0 12px; }
  .empty { color: #666; font-style: italic; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Bars}}
<div class="range">{{.RangeStart}} &mdash; {{.RangeEnd}}</div>
{{range .Bars}}
<div class="row">
  <div class="label" title="{{.Label}}">{{.Label}}</div>
  <div class="track">
    <div class="bar" style="left: {{printf "%.2f" .OffsetPct}}%; width: {{printf "%.2f" .WidthPct}}%; background: {{.Color}};"
         title="{{.Category}}: {{.StartLabel}} to {{.EndLabel}}"></div>
  </div>
</div>
{{end}}
<div class="legend">
{{range .Legend}}<span class="swatch" style="background: {{.Color}};"></span>{{.Category}}{{end}}
</div>
{{else}}
<p class="empty">No valid date ranges to draw the roadmap.</p>
{{end}}
</body>
</html>
`

var roadmapTemplate = template.Must(template.New("roadmap").Parse(roadmapHTML))

type roadmapBar struct {
	Label      string
	Category   string
	StartLabel string
	EndLabel   string
	OffsetPct  float64
	WidthPct   float64
	Color      template.CSS
}

type roadmapLegendEntry struct {
	Category string
	Color    template.CSS
}

type roadmapPage struct {
	Title      string
	RangeStart string
	RangeEnd   string
	Bars       []roadmapBar
	Legend     []roadmapLegendEntry
}

// RenderRoadmapHTML writes a self-contained timeline page for the given
// rows. Bars are positioned as percentages of the overall date span; rows
// keep the order they arrive in.
func RenderRoadmapHTML(w io.Writer, title string, rows []reports.RoadmapRow) error {
	page := roadmapPage{Title: title}

	if len(rows) > 0 {
		min, max := rows[0].Start, rows[0].End
		for _, row := range rows {
			if row.Start.Before(min) {
				min = row.Start
			}
			if row.End.After(max) {
				max = row.End
			}
		}
		span := max.Sub(min)
		if span <= 0 {
			span = 24 * time.Hour
		}

		colors := map[string]template.CSS{}
		for _, row := range rows {
			color, ok := colors[row.Category]
			if !ok {
				color = template.CSS(roadmapPalette[len(colors)%len(roadmapPalette)])
				colors[row.Category] = color
				page.Legend = append(page.Legend, roadmapLegendEntry{Category: row.Category, Color: color})
			}

			width := row.End.Sub(row.Start)
			if width <= 0 {
				width = 24 * time.Hour
			}
			page.Bars = append(page.Bars, roadmapBar{
				Label:      row.Label,
				Category:   row.Category,
				StartLabel: row.Start.Format("2006-01-02"),
				EndLabel:   row.End.Format("2006-01-02"),
				OffsetPct:  100 * float64(row.Start.Sub(min)) / float64(span),
				WidthPct:   100 * float64(width) / float64(span),
				Color:      color,
			})
		}

		page.RangeStart = min.Format("2006-01-02")
		page.RangeEnd = max.Format("2006-01-02")
	}

	return roadmapTemplate.Execute(w, page)
}
