package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/groupr-cli/internal/logging"
)

const roster = "First Name,Team,Notes\nAda,red,x\nAlan,blue,y\nGrace,red,z\nLinus,blue,w\nBarbara,red,v\n"

type envelope struct {
	ID      string `json:"id"`
	Seed    uint64 `json:"seed"`
	Balance struct {
		Rows int `json:"rows"`
		Min  int `json:"min"`
		Max  int `json:"max"`
	} `json:"balance"`
	Groups []struct {
		Name    string              `json:"name"`
		Members []map[string]string `json:"members"`
	} `json:"groups"`
}

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	opts.Logger = logging.Discard()
	if opts.Hidden == nil {
		opts.Hidden = []string{"notes"}
	}
	ts := httptest.NewServer(New(opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType string, body io.Reader) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestGroups_RawBody(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp, body := post(t, ts.URL+"/api/groups?groups=2&seed=7", "text/csv", strings.NewReader(roster))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, uint64(7), env.Seed)
	assert.Equal(t, 5, env.Balance.Rows)
	assert.Equal(t, 2, env.Balance.Min)
	assert.Equal(t, 3, env.Balance.Max)
	require.Len(t, env.Groups, 2)
	for _, g := range env.Groups {
		for _, m := range g.Members {
			assert.NotContains(t, m, "notes")
		}
	}
}

func TestGroups_SameSeedSameGroups(t *testing.T) {
	ts := newTestServer(t, Options{})
	_, a := post(t, ts.URL+"/api/groups?groups=3&seed=11", "text/csv", strings.NewReader(roster))
	_, b := post(t, ts.URL+"/api/groups?groups=3&seed=11", "text/csv", strings.NewReader(roster))
	var ea, eb envelope
	require.NoError(t, json.Unmarshal(a, &ea))
	require.NoError(t, json.Unmarshal(b, &eb))
	assert.Equal(t, ea.Groups, eb.Groups)
	assert.NotEqual(t, ea.ID, eb.ID)
}

func TestGroups_Multipart(t *testing.T) {
	ts := newTestServer(t, Options{})
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "roster.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(roster))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, body := post(t, ts.URL+"/api/groups?groups=5&show=notes", mw.FormDataContentType(), &buf)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	require.Len(t, env.Groups, 5)
	for _, g := range env.Groups {
		require.Len(t, g.Members, 1)
		assert.Contains(t, g.Members[0], "notes")
	}
}

func TestGroups_Errors(t *testing.T) {
	ts := newTestServer(t, Options{MaxBodyBytes: 64})
	cases := []struct {
		name   string
		query  string
		body   string
		status int
	}{
		{"zero groups", "?groups=0", roster[:40], http.StatusBadRequest},
		{"negative groups", "?groups=-2", roster[:40], http.StatusBadRequest},
		{"bad groups", "?groups=abc", roster[:40], http.StatusBadRequest},
		{"max int groups", "?groups=9223372036854775807", roster[:40], http.StatusBadRequest},
		{"too many groups", "?groups=1000000000", roster[:40], http.StatusBadRequest},
		{"bad seed", "?seed=-1", roster[:40], http.StatusBadRequest},
		{"bad strict", "?strict=maybe", roster[:40], http.StatusBadRequest},
		{"unterminated quote", "?strict=true", "A\n\"open\n", http.StatusUnprocessableEntity},
		{"too large", "", strings.Repeat("a,b\n", 100), http.StatusRequestEntityTooLarge},
		{"bad xlsx", "?name=x.xlsx", "not a workbook", http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := post(t, ts.URL+"/api/groups"+tc.query, "text/csv", strings.NewReader(tc.body))
			assert.Equal(t, tc.status, resp.StatusCode, string(body))
			var e errorResponse
			require.NoError(t, json.Unmarshal(body, &e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestColumns(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp, body := post(t, ts.URL+"/api/columns", "text/csv", strings.NewReader("First Name,first name\nAda\n"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got columnsResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "upload.csv", got.Source)
	require.Len(t, got.Columns, 2)
	assert.Equal(t, "firstName", got.Columns[0].FieldKey)
	assert.Equal(t, 1, got.Rows)
	assert.Len(t, got.Warnings, 2)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	post(t, ts.URL+"/api/groups?groups=2&seed=1", "text/csv", strings.NewReader(roster))

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `groupr_requests_total{code="200",route="/healthz"} 1`)
	assert.Contains(t, out, `groupr_requests_total{code="200",route="/api/groups"} 1`)
	assert.Contains(t, out, "groupr_rows_grouped_total 5")
	assert.Contains(t, out, "groupr_parse_seconds_count 1")
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := New(Options{Addr: "127.0.0.1:0", Logger: logging.Discard()})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
