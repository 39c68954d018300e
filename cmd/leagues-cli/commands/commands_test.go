package commands

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const divisionOne = `{
  "league_table": [
    {"name": "Rafa", "played": 1, "matches_won": 1, "matches_lost": 0, "sets_won": 2, "sets_lost": 1, "games_won": 10, "games_lost": 9, "points": 3},
    {"name": "Roger", "played": 1, "matches_won": 0, "matches_lost": 1, "sets_won": 1, "sets_lost": 2, "games_won": 9, "games_lost": 10, "points": 0}
  ],
  "completed_fixtures": [
    {
      "player_one_id": 1, "player_one_name": "Rafa",
      "player_two_id": 2, "player_two_name": "Roger",
      "winner": 1,
      "player_one_set_one_games": 6, "player_one_set_two_games": 4, "player_one_tiebreak_points": 10,
      "player_two_set_one_games": 3, "player_two_set_two_games": 6, "player_two_tiebreak_points": 8
    }
  ],
  "uncompleted_fixtures": [
    {"player_one_id": 1, "player_one_name": "Rafa", "player_two_id": 3, "player_two_name": "Andy", "winner": null}
  ]
}`

const loginPage = `<!DOCTYPE html>
<html><body>
  <form id="login" action="/account/login" method="post">
    <input name="username" value="">
    <input name="remember_days" type="number" value="7">
  </form>
  <form id="profile" action="/account/profile" data-method="patch">
    <input name="display_name" value="">
  </form>
</body></html>`

func newSiteServer(t testing.TB) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/leagues", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"league_id":1,"league_name":"Division 1"},{"league_id":2,"league_name":"Division 2"}]`))
	})
	mux.HandleFunc("/api/leagueTable/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(divisionOne))
	})
	mux.HandleFunc("/api/leagueTable/2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"league_table":[],"completed_fixtures":[],"uncompleted_fixtures":[]}`))
	})
	mux.HandleFunc("/account/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/dashboard")
		w.WriteHeader(http.StatusSeeOther)
	})
	mux.HandleFunc("/account/profile", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name":"Rafa","updated":true}`))
	})
	mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><h1 id="welcome">Welcome back</h1></body></html>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t testing.TB, srv *httptest.Server, stdin string, args ...string) (string, error) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(t.TempDir(), "leagues.json5"),
		"--base-url", srv.URL,
	}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLeaguesCommand(t *testing.T) {
	srv := newSiteServer(t)
	out, err := runCLI(t, srv, "", "leagues")
	require.NoError(t, err)
	require.Contains(t, out, "Division 1")
	require.Contains(t, out, "Division 2")
}

func TestTableCommand(t *testing.T) {
	srv := newSiteServer(t)

	out, err := runCLI(t, srv, "", "table")
	require.NoError(t, err)
	require.Contains(t, out, "Division 1")
	require.Contains(t, out, "Rafa *")
	require.Contains(t, out, "Rafa vs Andy")

	out, err = runCLI(t, srv, "", "table", "--league", "division 2")
	require.NoError(t, err)
	require.Contains(t, out, "No completed fixtures yet.")
	require.Contains(t, out, "All fixtures are complete.")
}

func TestRenderCommand(t *testing.T) {
	srv := newSiteServer(t)
	cases := []struct {
		nav  string
		name string
	}{
		{nav: "", name: "Division 1"},
		{nav: "next", name: "Division 2"},
		{nav: "next,next", name: "Division 1"},
		{nav: "prev", name: "Division 2"},
	}
	for _, c := range cases {
		t.Run(c.nav, func(t *testing.T) {
			outPath := filepath.Join(t.TempDir(), "out.html")
			args := []string{"render", "--out", outPath}
			if c.nav != "" {
				args = append(args, "--nav", c.nav)
			}
			_, err := runCLI(t, srv, "", args...)
			require.NoError(t, err)

			contents, err := os.ReadFile(outPath)
			require.NoError(t, err)
			doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(contents))
			require.NoError(t, err)
			require.Equal(t, c.name, doc.Find("#league-name").Text())
		})
	}
}

func TestRenderCommandStdout(t *testing.T) {
	srv := newSiteServer(t)
	out, err := runCLI(t, srv, "", "render", "--league", "2")
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, "Division 2", doc.Find("#league-name").Text())
	require.Equal(t, srv.URL+"/img/2.png", doc.Find("#league-logo").AttrOr("src", ""))
}

func TestRenderCommandRejectsUnknownNav(t *testing.T) {
	srv := newSiteServer(t)
	_, err := runCLI(t, srv, "", "render", "--nav", "up")
	require.ErrorContains(t, err, "unknown navigation")
}

func TestBrowseCommand(t *testing.T) {
	srv := newSiteServer(t)
	out, err := runCLI(t, srv, "n\n\np\nq\n", "browse")
	require.NoError(t, err)

	first := strings.Index(out, "Division 1")
	second := strings.Index(out, "Division 2")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	require.Equal(t, 3, strings.Count(out, browseHelp))
}

func writePage(t testing.TB, markup string) string {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(markup), 0o644))
	return path
}

func TestSubmitCommandRedirect(t *testing.T) {
	srv := newSiteServer(t)
	page := writePage(t, loginPage)

	out, err := runCLI(t, srv, "", "submit", "--page", page, "--form", "login", "--set", "username=rafa")
	require.NoError(t, err)
	require.Equal(t, "redirect 303 -> "+srv.URL+"/dashboard\n", out)

	out, err = runCLI(t, srv, "", "submit", "--page", page, "--set", "username=rafa", "--follow")
	require.NoError(t, err)
	require.Contains(t, out, "Welcome back")
}

func TestSubmitCommandData(t *testing.T) {
	srv := newSiteServer(t)
	page := writePage(t, loginPage)

	out, err := runCLI(t, srv, "", "submit", "--page", page, "--form", "1", "--set", "display_name=Rafa")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "data 200\n"))
	require.Contains(t, out, `"updated": true`)
}

func TestSubmitCommandErrors(t *testing.T) {
	srv := newSiteServer(t)
	page := writePage(t, loginPage)

	_, err := runCLI(t, srv, "", "submit", "--page", page, "--set", "password=x")
	require.ErrorContains(t, err, "password")

	_, err = runCLI(t, srv, "", "submit", "--page", page, "--set", "remember_days=soon")
	require.ErrorContains(t, err, "remember_days")

	_, err = runCLI(t, srv, "", "submit", "--page", page, "--set", "nope")
	require.ErrorContains(t, err, "expected key=value")

	_, err = runCLI(t, srv, "", "submit", "--page", page, "--form", "#missing")
	require.Error(t, err)
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"a=1", " b =x=y", "c="})
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"a", "1"}, {"b", "x=y"}, {"c", ""}}, got)

	_, err = parseAssignments([]string{"=1"})
	require.Error(t, err)
}

func TestSetupCloudflareBypass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leagues.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{"base_url": "https://tennis.example", "cloudflare_bypass": true}`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.True(t, cfg.CloudflareBypass)
	require.Equal(t, "https://tennis.example", cfg.BaseUrl)
	require.Equal(t, defaultConfig.TimeoutSeconds, cfg.TimeoutSeconds)

	a := &app{configPath: path}
	cmd := &cobra.Command{}
	cmd.SetErr(io.Discard)
	cmd.SetContext(context.Background())
	require.NoError(t, a.setup(cmd))
	t.Cleanup(func() { a.teardown(context.Background()) })

	_, isPlain := a.http.GetClient().Transport.(*http.Transport)
	require.False(t, isPlain)
}
