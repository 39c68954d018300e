package restyutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mu       sync.Mutex
	messages map[string]string
}

func (o *memoryOutput) Write(id, contents string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.messages == nil {
		o.messages = map[string]string{}
	}
	o.messages[id] = contents
}

func TestInstrumentClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/dashboard")
		w.WriteHeader(http.StatusSeeOther)
	}))
	defer srv.Close()

	client := resty.New()
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	out := &memoryOutput{}
	InstrumentClient(client, out)

	_, _ = client.R().
		SetHeader("Content-Type", "application/json").
		SetBody([]byte(`{"username":"bob"}`)).
		Post(srv.URL + "/account/login")

	require.Len(t, out.messages, 1)
	msg := out.messages["0001"]
	require.Contains(t, msg, "POST "+srv.URL+"/account/login")
	require.Contains(t, msg, `{"username":"bob"}`)
	require.Contains(t, msg, "Content-Type: application/json")
	require.Contains(t, msg, "Location: /dashboard")
}

func TestInstrumentClientNilOutput(t *testing.T) {
	client := resty.New()
	InstrumentClient(client, nil)
}

func TestFilesystemOutput(t *testing.T) {
	dir := t.TempDir()
	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out.Dir(), dir))

	out.Write("0001", "hello")
	contents, err := os.ReadFile(filepath.Join(out.Dir(), "0001.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(contents))
}

func TestFormatHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Add("X-B", "2")
	headers.Add("X-A", "1")
	headers.Add("X-A", "3")
	require.Equal(t, "X-A: 1\nX-A: 3\nX-B: 2", formatHeaders(headers))
	require.Equal(t, "", formatHeaders(http.Header{}))
}

func TestNewClientDoesNotFollowRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dashboard" {
			w.Write([]byte("dashboard"))
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{BaseUrl: srv.URL})
	res, err := client.R().Get("/account/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, res.StatusCode())
	require.Equal(t, "/dashboard", res.Header().Get("Location"))

	following := NewClient(ClientOptions{BaseUrl: srv.URL, FollowRedirects: true})
	res, err = following.R().Get("/account/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode())
	require.Equal(t, "dashboard", res.String())
}

func TestInstrumentClientBodylessGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"league_id":1}]`))
	}))
	defer srv.Close()

	out := &memoryOutput{}
	client := NewClient(ClientOptions{BaseUrl: srv.URL, Output: out})
	res, err := client.R().Get("/api/leagues")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode())

	require.Len(t, out.messages, 1)
	msg := out.messages["0001"]
	require.Contains(t, msg, "GET "+srv.URL+"/api/leagues")
	require.Contains(t, msg, `[{"league_id":1}]`)
}

func TestFormatRequestBodyNilReader(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://localhost/api/leagues", nil)
	require.NoError(t, err)
	req.GetBody = func() (io.ReadCloser, error) { return nil, nil }
	require.Equal(t, "", formatRequestBody(req))
}

func TestNewClientCloudflareBypass(t *testing.T) {
	plain := NewClient(ClientOptions{})
	_, isPlain := plain.GetClient().Transport.(*http.Transport)
	require.True(t, isPlain)

	bypass := NewClient(ClientOptions{CloudflareBypass: true})
	transport := bypass.GetClient().Transport
	require.NotNil(t, transport)
	_, isPlain = transport.(*http.Transport)
	require.False(t, isPlain)
}
