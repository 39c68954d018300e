package leagues

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"tennisleagues/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// ids the league page markup has to provide
var RequiredIDs = []string{
	"league-name",
	"league-logo",
	"league-table-body",
	"completed-fixtures",
	"uncompleted-fixtures",
	"left-nav",
	"right-nav",
	"league-table",
}

const (
	NoCompletedFixtures   = "No completed fixtures yet."
	NoUncompletedFixtures = "All fixtures are complete."
	tiebreakPlaceholder   = " - "
)

var fragments = template.Must(template.New("fragments").Parse(`
{{- define "row" -}}
<tr>
<td><div class="league-position">{{.Position}}</div></td>
<td>{{.Row.Name}}</td>
<td>{{.Row.Played}}</td>
<td>{{.Row.MatchesWon}}</td>
<td>{{.Row.MatchesLost}}</td>
<td>{{.Row.SetsWon}}</td>
<td>{{.Row.SetsLost}}</td>
<td class="mobile-hidden">{{.Row.GamesWon}}</td>
<td class="mobile-hidden">{{.Row.GamesLost}}</td>
<td><b>{{.Row.Points}}</b></td>
</tr>
{{- end -}}

{{- define "completed" -}}
<div class="completed-fixture"><table>
<tr class="result-header"><th></th><th>1</th><th>2</th><th>3</th></tr>
{{- range .Players}}
<tr><td {{if .Won}}style="font-weight:bold"{{end}}>{{.Name}}</td><td>{{.SetOne}}</td><td>{{.SetTwo}}</td><td>{{.Tiebreak}}</td></tr>
{{- end}}
</table></div>
{{- end -}}

{{- define "uncompleted" -}}
<div class="uncompleted-fixture">{{.PlayerOneName}} vs {{.PlayerTwoName}}</div>
{{- end -}}

{{- define "placeholder" -}}
<p>{{.}}</p>
{{- end -}}
`))

type rowView struct {
	Position int
	Row      TableRow
}

type playerResult struct {
	Name     string
	Won      bool
	SetOne   int
	SetTwo   int
	Tiebreak string
}

type completedView struct {
	Players [2]playerResult
}

func tiebreak(points *int) string {
	if points == nil {
		return tiebreakPlaceholder
	}
	return strconv.Itoa(*points)
}

func newCompletedView(f Fixture) completedView {
	return completedView{Players: [2]playerResult{
		{
			Name:     f.PlayerOneName,
			Won:      f.wonBy(f.PlayerOneID),
			SetOne:   f.PlayerOneSetOneGames,
			SetTwo:   f.PlayerOneSetTwoGames,
			Tiebreak: tiebreak(f.PlayerOneTiebreakPoints),
		},
		{
			Name:     f.PlayerTwoName,
			Won:      f.wonBy(f.PlayerTwoID),
			SetOne:   f.PlayerTwoSetOneGames,
			SetTwo:   f.PlayerTwoSetTwoGames,
			Tiebreak: tiebreak(f.PlayerTwoTiebreakPoints),
		},
	}}
}

func execute(buf *bytes.Buffer, name string, data any) error {
	err := fragments.ExecuteTemplate(buf, name, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// Page is a league page document that league details are rendered into.
type Page struct {
	doc *goquery.Document
}

// NewPage fails with htmlutil.ErrMissingElement when doc lacks any of
// RequiredIDs.
func NewPage(doc *goquery.Document) (*Page, error) {
	err := htmlutil.RequireIDs(doc, RequiredIDs...)
	if err != nil {
		return nil, err
	}
	return &Page{doc: doc}, nil
}

func (p *Page) Document() *goquery.Document {
	return p.doc
}

func (p *Page) HTML() (string, error) {
	return goquery.OuterHtml(p.doc.Selection)
}

// Render replaces the page's league name, logo, table and fixture panels
// with detail. everything is rebuilt from scratch on each call.
func (p *Page) Render(league League, logoURL string, detail LeagueDetail) error {
	var table, completed, uncompleted bytes.Buffer

	for i, row := range detail.Table {
		err := execute(&table, "row", rowView{Position: i + 1, Row: row})
		if err != nil {
			return err
		}
	}

	if len(detail.CompletedFixtures) == 0 {
		err := execute(&completed, "placeholder", NoCompletedFixtures)
		if err != nil {
			return err
		}
	}
	for _, f := range detail.CompletedFixtures {
		err := execute(&completed, "completed", newCompletedView(f))
		if err != nil {
			return err
		}
	}

	if len(detail.UncompletedFixtures) == 0 {
		err := execute(&uncompleted, "placeholder", NoUncompletedFixtures)
		if err != nil {
			return err
		}
	}
	for _, f := range detail.UncompletedFixtures {
		err := execute(&uncompleted, "uncompleted", f)
		if err != nil {
			return err
		}
	}

	p.doc.Find("#league-name").SetText(league.Name)
	p.doc.Find("#league-logo").SetAttr("src", logoURL)
	p.doc.Find("#league-table-body").SetHtml(table.String())
	p.doc.Find("#completed-fixtures").SetHtml(completed.String())
	p.doc.Find("#uncompleted-fixtures").SetHtml(uncompleted.String())
	return nil
}
