package wistia

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves body with status for every request and counts hits
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_password"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func newTestClient(t *testing.T, server *httptest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(server.URL + "/v1/")}, opts...)
	client, err := NewClient("test-key", zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		apiKey  string
		opts    []Option
		wantErr error
	}{
		{
			name:   "valid config",
			apiKey: "test-key",
		},
		{
			name:    "missing API key",
			apiKey:  "",
			wantErr: ErrMissingAPIKey,
		},
		{
			name:    "whitespace API key",
			apiKey:  "  \t ",
			wantErr: ErrMissingAPIKey,
		},
		{
			name:    "invalid base URL",
			apiKey:  "test-key",
			opts:    []Option{WithBaseURL("not a url")},
			wantErr: ErrInvalidBaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, logger, tt.opts...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultBaseURL(), client.router.BaseURL)
			assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("k", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("k", logger, WithHTTPClient(custom), WithTimeout(time.Second))
		require.NoError(t, err)
		assert.Same(t, custom, client.httpClient)
	})

	t.Run("with page size", func(t *testing.T) {
		client, err := NewClient("k", logger, WithPageSize(10))
		require.NoError(t, err)
		assert.Equal(t, 10, client.router.PerPage)
	})

	t.Run("with debug level", func(t *testing.T) {
		client, err := NewClient("k", logger, WithDebugLevel(DebugVerbose))
		require.NoError(t, err)
		assert.Equal(t, DebugVerbose, client.DebugLevel())
	})
}

func TestListProjects(t *testing.T) {
	ctx := context.Background()

	t.Run("maps a single project with defaults", func(t *testing.T) {
		server, _ := newTestServer(t, http.StatusOK, `[{"hashedId":"p1","name":"Demo"}]`)
		client := newTestClient(t, server)

		projects, err := client.ListProjects(ctx, ListOptions{})
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "p1", projects[0].HashedID)
		assert.Equal(t, "Demo", projects[0].Name)
		assert.Equal(t, 0, projects[0].MediaCount)
	})

	t.Run("sends paging and sorting", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/projects.json", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "2", q.Get("page"))
			assert.Equal(t, "25", q.Get("per_page"))
			assert.Equal(t, "created", q.Get("sort_by"))
			assert.Equal(t, "0", q.Get("sort_direction"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, "wistiakit", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(`[{"hashedId":"p1"}]`))
		}))
		defer server.Close()

		client := newTestClient(t, server)
		_, err := client.ListProjects(ctx, ListOptions{Page: 2, SortBy: SortByCreated, SortDirection: SortDescending})
		require.NoError(t, err)
	})

	t.Run("skips unmappable items", func(t *testing.T) {
		server, _ := newTestServer(t, http.StatusOK, `[{"name":"no id"},{"hashedId":"p2"},42]`)
		client := newTestClient(t, server)

		projects, err := client.ListProjects(ctx, ListOptions{})
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "p2", projects[0].HashedID)
	})
}

func TestListOutcomes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		status    int
		body      string
		strict    bool
		wantErr   error
		wantEmpty bool
	}{
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"error":"Unauthorized"}`,
			wantErr: ErrInvalidAPIKey,
		},
		{
			name:    "unauthorized in strict mode",
			status:  http.StatusUnauthorized,
			strict:  true,
			wantErr: ErrInvalidAPIKey,
		},
		{
			name:      "server error is lenient by default",
			status:    http.StatusInternalServerError,
			body:      `oops`,
			wantEmpty: true,
		},
		{
			name:    "server error in strict mode",
			status:  http.StatusInternalServerError,
			strict:  true,
			wantErr: ErrUnexpectedStatus,
		},
		{
			name:    "rate limited in strict mode",
			status:  http.StatusTooManyRequests,
			strict:  true,
			wantErr: ErrRateLimited,
		},
		{
			name:    "empty body",
			status:  http.StatusOK,
			body:    "",
			wantErr: ErrNoData,
		},
		{
			name:    "invalid json",
			status:  http.StatusOK,
			body:    `[{"hashedId":`,
			wantErr: ErrNoData,
		},
		{
			name:    "trailing garbage after array",
			status:  http.StatusOK,
			body:    `[{"hashedId":"p1","name":"Demo"}] <html>oops</html>`,
			wantErr: ErrNoData,
		},
		{
			name:    "two concatenated values",
			status:  http.StatusOK,
			body:    `[{"hashedId":"p1"}][{"hashedId":"p2"}]`,
			wantErr: ErrNoData,
		},
		{
			name:      "object instead of array",
			status:    http.StatusOK,
			body:      `{"hashedId":"p1"}`,
			wantEmpty: true,
		},
		{
			name:    "empty array",
			status:  http.StatusOK,
			body:    `[]`,
			wantErr: ErrEmptyResultSet,
		},
		{
			name:    "nothing mappable",
			status:  http.StatusOK,
			body:    `[{"name":"a"},{"name":"b"}]`,
			wantErr: ErrEmptyResultSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, hits := newTestServer(t, tt.status, tt.body)
			var opts []Option
			if tt.strict {
				opts = append(opts, WithStrictStatus())
			}
			client := newTestClient(t, server, opts...)

			items, err := client.List(ctx, ResourceProjects, ListOptions{})
			assert.Equal(t, int32(1), atomic.LoadInt32(hits), "exactly one request per call")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, items)
				return
			}
			require.NoError(t, err)
			if tt.wantEmpty {
				assert.Empty(t, items)
			}
		})
	}
}

func TestUnauthorizedReturnsAPIError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusUnauthorized, `{"error":"bad key"}`)
	client := newTestClient(t, server)

	medias, err := client.ListMedias(context.Background(), ListOptions{})
	assert.Nil(t, medias)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.True(t, apiErr.IsUnauthorized())
	assert.Contains(t, apiErr.Body, "bad key")
}

func TestMissingAPIKeyMakesNoRequest(t *testing.T) {
	server, hits := newTestServer(t, http.StatusOK, `[]`)
	client := newTestClient(t, server)
	client.router.APIKey = ""

	_, err := client.ListProjects(context.Background(), ListOptions{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = client.ShowMedia(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestInvalidRequestMakesNoRequest(t *testing.T) {
	server, hits := newTestServer(t, http.StatusOK, `{}`)
	client := newTestClient(t, server)

	_, err := client.ShowProject(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = client.List(context.Background(), Resource("folders"), ListOptions{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = client.ListProjectMedias(context.Background(), "", ListOptions{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestNoResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(t, server)
	server.Close()

	_, err := client.ListProjects(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestContextCancellation(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `[]`)
	client := newTestClient(t, server)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListProjects(ctx, ListOptions{})
	assert.ErrorIs(t, err, ErrNoResponse)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShow(t *testing.T) {
	ctx := context.Background()

	t.Run("project with medias", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/projects/p1.json", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("api_password"))
			assert.False(t, r.URL.Query().Has("page"))
			_, _ = w.Write([]byte(`{"hashedId":"p1","name":"Course","medias":[
				{"hashed_id":"m2","name":"Zeta","section":"B"},
				{"hashed_id":"m1","name":"Alpha","section":"A"}
			]}`))
		}))
		defer server.Close()

		client := newTestClient(t, server)
		project, err := client.ShowProject(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Course", project.Name)
		require.Len(t, project.Medias, 2)
		assert.Equal(t, "Alpha", project.Medias[0].Name)
	})

	t.Run("media", func(t *testing.T) {
		server, _ := newTestServer(t, http.StatusOK, `{"hashed_id":"m1","name":"<em>Clip</em>","type":"Video","assets":[{"url":"https://x/a.bin","type":"OriginalFile"}]}`)
		client := newTestClient(t, server)

		item, err := client.Show(ctx, ResourceMedias, "m1")
		require.NoError(t, err)
		media, ok := item.(Media)
		require.True(t, ok)
		assert.Equal(t, "Clip", media.Name)
		assert.Equal(t, MediaTypeVideo, media.Type)
		assert.Len(t, media.Assets, 1)
	})

	tests := []struct {
		name    string
		status  int
		body    string
		strict  bool
		wantErr error
	}{
		{"missing identifier", http.StatusOK, `{"name":"x"}`, false, ErrNotFound},
		{"lenient 404 body without id", http.StatusNotFound, `{"error":"Media not found"}`, false, ErrNotFound},
		{"strict 404", http.StatusNotFound, `{"error":"Media not found"}`, true, ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`, false, ErrInvalidAPIKey},
		{"empty body", http.StatusOK, ``, false, ErrNoData},
		{"unparseable body", http.StatusOK, `<html>`, false, ErrNoData},
		{"trailing garbage after object", http.StatusOK, `{"hashedId":"m1"} <html>oops</html>`, false, ErrNoData},
		{"array instead of object", http.StatusOK, `[{"hashedId":"m1"}]`, false, ErrNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, tt.status, tt.body)
			var opts []Option
			if tt.strict {
				opts = append(opts, WithStrictStatus())
			}
			client := newTestClient(t, server, opts...)

			item, err := client.Show(ctx, ResourceMedias, "m1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, item)
		})
	}
}

func TestAsync(t *testing.T) {
	ctx := context.Background()

	t.Run("list delivers one result then closes", func(t *testing.T) {
		server, _ := newTestServer(t, http.StatusOK, `[{"hashedId":"m1","name":"One"},{"hashed_id":"m2","name":"Two"}]`)
		client := newTestClient(t, server)

		ch := client.ListAsync(ctx, ResourceMedias, ListOptions{})
		res := <-ch
		require.True(t, res.Ok())
		items, err := res.Unwrap()
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "m2", items[1].GetHashedID())

		_, open := <-ch
		assert.False(t, open)
	})

	t.Run("show delivers errors through the result", func(t *testing.T) {
		server, _ := newTestServer(t, http.StatusUnauthorized, ``)
		client := newTestClient(t, server)

		res := <-client.ShowAsync(ctx, ResourceProjects, "p1")
		assert.False(t, res.Ok())
		assert.ErrorIs(t, res.Err, ErrInvalidAPIKey)
		assert.Nil(t, res.Value)
	})

	t.Run("concurrent calls share one client", func(t *testing.T) {
		server, hits := newTestServer(t, http.StatusOK, `[{"hashedId":"p1"}]`)
		client := newTestClient(t, server)

		var chans []<-chan Result[[]DataItem]
		for i := 0; i < 5; i++ {
			chans = append(chans, client.ListAsync(ctx, ResourceProjects, ListOptions{Page: i + 1}))
		}
		for _, ch := range chans {
			res := <-ch
			require.NoError(t, res.Err)
			assert.Len(t, res.Value, 1)
		}
		assert.Equal(t, int32(5), atomic.LoadInt32(hits))
	})
}

func TestTestConnection(t *testing.T) {
	ctx := context.Background()

	server, _ := newTestServer(t, http.StatusOK, `[]`)
	assert.NoError(t, newTestClient(t, server).TestConnection(ctx))

	server, _ = newTestServer(t, http.StatusUnauthorized, ``)
	assert.ErrorIs(t, newTestClient(t, server).TestConnection(ctx), ErrInvalidAPIKey)
}

func TestDebugLogging(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `[{"hashedId":"p1"},{"name":"dropped"}]`)

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	client, err := NewClient("test-key", logger,
		WithBaseURL(server.URL+"/v1/"),
		WithDebugLevel(DebugVerbose),
	)
	require.NoError(t, err)

	_, err = client.ListProjects(context.Background(), ListOptions{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Requesting Projects")
	assert.Contains(t, out, "api_password=REDACTED")
	assert.NotContains(t, out, "test-key")
	assert.Contains(t, out, `"request_id"`)
	assert.Contains(t, out, `"dropped":1`)
	assert.Contains(t, out, `"body":"[{\"hashedId\":\"p1\"}`)

	buf.Reset()
	quiet, err := NewClient("test-key", logger, WithBaseURL(server.URL+"/v1/"))
	require.NoError(t, err)
	_, err = quiet.ListProjects(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestTruncateBody(t *testing.T) {
	short := []byte(`{"hashedId":"p1"}`)
	assert.Equal(t, short, truncateBody(short))

	long := bytes.Repeat([]byte("a"), maxLoggedBody+100)
	assert.Len(t, truncateBody(long), maxLoggedBody)
}

func TestAPIError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := newAPIError(404, []byte("missing"))
		assert.Equal(t, "wistia API error: status 404: Not Found", err.Error())
		assert.True(t, err.IsNotFound())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})

	t.Run("IsRateLimited", func(t *testing.T) {
		assert.True(t, newAPIError(429, nil).IsRateLimited())
		assert.False(t, newAPIError(500, nil).IsRateLimited())
	})
}
