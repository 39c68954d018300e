package leagues

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newLeagueServer(t testing.TB) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/leagues", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"league_id":1,"league_name":"Division 1","season":3},{"league_id":2,"league_name":"Division 2"}]`))
	})
	mux.HandleFunc("/api/leagueTable/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(leagueOneJSON)
	})
	mux.HandleFunc("/api/leagueTable/2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"league_table":[],"completed_fixtures":[],"uncompleted_fixtures":[]}`))
	})
	mux.HandleFunc("/api/leagueTable/3", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"league_table":`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientLeagues(t *testing.T) {
	srv := newLeagueServer(t)
	client, err := NewClient(ClientOptions{BaseUrl: srv.URL})
	require.NoError(t, err)

	leagues, err := client.Leagues(context.Background())
	require.NoError(t, err)
	diff := cmp.Diff([]League{
		{ID: 1, Name: "Division 1"},
		{ID: 2, Name: "Division 2"},
	}, leagues)
	require.Empty(t, diff)
}

func TestClientDetail(t *testing.T) {
	srv := newLeagueServer(t)
	client, err := NewClient(ClientOptions{BaseUrl: srv.URL})
	require.NoError(t, err)

	detail, err := client.Detail(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(leagueOne(t), detail))
	require.Len(t, detail.Table, 3)
	require.Equal(t, "Rafa", detail.Table[0].Name)
	require.NotNil(t, detail.CompletedFixtures[0].PlayerOneTiebreakPoints)
	require.Equal(t, 10, *detail.CompletedFixtures[0].PlayerOneTiebreakPoints)
	require.Nil(t, detail.CompletedFixtures[1].PlayerOneTiebreakPoints)
	require.Nil(t, detail.UncompletedFixtures[0].Winner)

	empty, err := client.Detail(context.Background(), 2)
	require.NoError(t, err)
	require.Empty(t, empty.Table)
}

func TestClientErrors(t *testing.T) {
	srv := newLeagueServer(t)
	client, err := NewClient(ClientOptions{BaseUrl: srv.URL})
	require.NoError(t, err)

	_, err = client.Detail(context.Background(), 404)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.Status)
	require.Equal(t, "/api/leagueTable/404", statusErr.Endpoint)

	_, err = client.Detail(context.Background(), 3)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode /api/leagueTable/3")
}

func TestClientLogoURL(t *testing.T) {
	client, err := NewClient(ClientOptions{BaseUrl: "https://tennis.example/"})
	require.NoError(t, err)
	require.Equal(t, "https://tennis.example/img/7.png", client.LogoURL(League{ID: 7}))

	relative, err := NewClient(ClientOptions{})
	require.NoError(t, err)
	require.Equal(t, "/img/7.png", relative.LogoURL(League{ID: 7}))
}

func TestClientRedirectIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Location", "/login")
		w.WriteHeader(http.StatusFound)
		w.Write([]byte(`<a href="/login">Found</a>`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientOptions{BaseUrl: srv.URL})
	require.NoError(t, err)

	_, err = client.Leagues(context.Background())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusFound, statusErr.Status)
	require.Equal(t, "/api/leagues", statusErr.Endpoint)

	_, err = client.Detail(context.Background(), 1)
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusFound, statusErr.Status)
}
