package cardbrowser

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer escapes raw HTML in descriptions (WithUnsafe is not set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var reportPolicy = newReportPolicy()

func newReportPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// RankedSlide is one line of a ranking.
type RankedSlide struct {
	Index int
	Slide Slide
	Score ScoreValue
}

// Rank lists visible slides, scored ones first by descending score, then
// unscored ones. Ties keep sequence order.
func Rank(slides []Slide, res Result) []RankedSlide {
	out := make([]RankedSlide, 0, len(slides))
	for _, i := range res.VisibleIDs() {
		out = append(out, RankedSlide{Index: i, Slide: slides[i], Score: res.ScoreOf(i)})
	}
	sort.SliceStable(out, func(a, b int) bool {
		sa, sb := out[a].Score, out[b].Score
		if sa.OK != sb.OK {
			return sa.OK
		}
		return sa.OK && sa.Value > sb.Value
	})
	return out
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .Filters}}<p class="filters">{{.Filters}}</p>{{end}}
<ol class="ranking">
{{range .Rows}}<li{{if .Focus}} class="is-focus"{{end}}>
<h2>{{.Name}} <span class="slider-score">{{.Score}}</span></h2>
<p class="tags">{{.Tags}}</p>
<div class="slider-description">{{.Description}}</div>
</li>
{{end}}</ol>
</body>
</html>
`))

type reportRow struct {
	Name        string
	Score       string
	Tags        string
	Description template.HTML
	Focus       bool
}

// WriteReport renders the ranking as a standalone HTML page. Descriptions are
// treated as Markdown and sanitized.
func WriteReport(w io.Writer, title string, slides []Slide, state *FilterState, res Result) error {
	data := struct {
		Title   string
		Filters string
		Rows    []reportRow
	}{Title: title, Filters: DescribeFilters(state)}
	for _, r := range Rank(slides, res) {
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(r.Slide.Description), &buf); err != nil {
			return fmt.Errorf("render description of %q: %w", r.Slide.Name, err)
		}
		data.Rows = append(data.Rows, reportRow{
			Name:        r.Slide.Name,
			Score:       r.Score.Text(),
			Tags:        joinNonEmpty(" / ", r.Slide.Region, r.Slide.AdminArea, r.Slide.PopulationBand),
			Description: template.HTML(reportPolicy.SanitizeBytes(buf.Bytes())),
			Focus:       r.Index == res.FocusTarget,
		})
	}
	if err := reportTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// DescribeFilters summarizes the active filters in one line.
func DescribeFilters(state *FilterState) string {
	if state == nil || !state.HasAnyFilter() {
		return ""
	}
	var parts []string
	if keys := state.ActiveKeys(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = string(k)
		}
		parts = append(parts, "criteria: "+strings.Join(names, ", "))
	}
	for _, kind := range TagKinds {
		if v := state.Tag(kind); v != "" {
			parts = append(parts, kind.String()+": "+v)
		}
	}
	return strings.Join(parts, "; ")
}

func joinNonEmpty(sep string, values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}
