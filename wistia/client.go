package wistia

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client represents a Wistia Data API client. It is configured once at
// construction and is safe for concurrent use.
type Client struct {
	router       Router
	httpClient   *http.Client
	userAgent    string
	debug        DebugLevel
	strictStatus bool
	logger       zerolog.Logger
}

// NewClient creates a new Wistia client for the given API password
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if _, err := parseBaseURL(options.baseURL); err != nil {
		return nil, err
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		router: Router{
			BaseURL: options.baseURL,
			APIKey:  apiKey,
			PerPage: options.perPage,
		},
		httpClient:   httpClient,
		userAgent:    options.userAgent,
		debug:        options.debug,
		strictStatus: options.strictStatus,
		logger:       logger,
	}, nil
}

// DebugLevel returns the configured logging verbosity
func (c *Client) DebugLevel() DebugLevel {
	return c.debug
}

// TestConnection verifies the API password by requesting a single project.
// An account without projects still counts as a working connection.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.ListProjects(ctx, ListOptions{PerPage: 1})
	if err != nil && !errors.Is(err, ErrEmptyResultSet) {
		return err
	}
	return nil
}

// ListProjects retrieves one page of projects
func (c *Client) ListProjects(ctx context.Context, opts ListOptions) ([]Project, error) {
	return listItems(ctx, c, ListProjectsRequest(opts), ParseProject)
}

// ListMedias retrieves one page of medias
func (c *Client) ListMedias(ctx context.Context, opts ListOptions) ([]Media, error) {
	return listItems(ctx, c, ListMediasRequest(opts), ParseMedia)
}

// ListProjectMedias retrieves one page of medias belonging to a project
func (c *Client) ListProjectMedias(ctx context.Context, projectID string, opts ListOptions) ([]Media, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project hashed id is required", ErrInvalidRequest)
	}
	opts.ProjectID = projectID
	return c.ListMedias(ctx, opts)
}

// ShowProject retrieves a single project, including its medias
func (c *Client) ShowProject(ctx context.Context, hashedID string) (Project, error) {
	return showItem(ctx, c, ShowProjectRequest(hashedID), ParseProject)
}

// ShowMedia retrieves a single media, including its assets
func (c *Client) ShowMedia(ctx context.Context, hashedID string) (Media, error) {
	return showItem(ctx, c, ShowMediaRequest(hashedID), ParseMedia)
}

// List retrieves one page of the given resource as generic data items
func (c *Client) List(ctx context.Context, resource Resource, opts ListOptions) ([]DataItem, error) {
	switch resource {
	case ResourceProjects:
		projects, err := c.ListProjects(ctx, opts)
		return toDataItems(projects), err
	case ResourceMedias:
		medias, err := c.ListMedias(ctx, opts)
		return toDataItems(medias), err
	default:
		return nil, fmt.Errorf("%w: unknown resource %q", ErrInvalidRequest, resource)
	}
}

// Show retrieves a single item of the given resource
func (c *Client) Show(ctx context.Context, resource Resource, hashedID string) (DataItem, error) {
	switch resource {
	case ResourceProjects:
		project, err := c.ShowProject(ctx, hashedID)
		if err != nil {
			return nil, err
		}
		return project, nil
	case ResourceMedias:
		media, err := c.ShowMedia(ctx, hashedID)
		if err != nil {
			return nil, err
		}
		return media, nil
	default:
		return nil, fmt.Errorf("%w: unknown resource %q", ErrInvalidRequest, resource)
	}
}

// ListAsync runs List in the background. The channel yields one Result and is closed.
func (c *Client) ListAsync(ctx context.Context, resource Resource, opts ListOptions) <-chan Result[[]DataItem] {
	return async(func() ([]DataItem, error) {
		return c.List(ctx, resource, opts)
	})
}

// ShowAsync runs Show in the background. The channel yields one Result and is closed.
func (c *Client) ShowAsync(ctx context.Context, resource Resource, hashedID string) <-chan Result[DataItem] {
	return async(func() (DataItem, error) {
		return c.Show(ctx, resource, hashedID)
	})
}

// response is a fully read HTTP response
type response struct {
	status int
	body   []byte
	logger zerolog.Logger
}

// fetch builds the URL for d and performs a single GET. Errors building the
// URL are returned before any request is made.
func (c *Client) fetch(ctx context.Context, d Descriptor) (*response, error) {
	requestURL, err := c.router.URL(d)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With().
		Str("request_id", uuid.NewString()).
		Str("resource", string(d.Endpoint.Resource())).
		Logger()

	if c.debug >= DebugBasic {
		logger.Info().Str("url", redactURL(requestURL)).Msg(d.String())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrNoData, err)
	}

	if c.debug >= DebugVerbose {
		logger.Debug().
			Int("status", resp.StatusCode).
			Int("bytes", len(body)).
			Bytes("body", truncateBody(body)).
			Msg("Received Wistia response")
	}

	return &response{status: resp.StatusCode, body: body, logger: logger}, nil
}

// listItems performs a list request and maps every element it can. Elements
// that fail to map are dropped.
func listItems[T DataItem](ctx context.Context, c *Client, d Descriptor, parse func(JSON) (T, error)) ([]T, error) {
	resp, err := c.fetch(ctx, d)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.status == http.StatusUnauthorized:
		return nil, newAPIError(resp.status, resp.body)
	case resp.status != http.StatusOK:
		if c.strictStatus {
			return nil, newAPIError(resp.status, resp.body)
		}
		// Lenient by default: anything but 200/401 yields an empty page
		resp.logger.Warn().Int("status", resp.status).Msg("Ignoring non-200 response")
		return []T{}, nil
	}

	if len(bytes.TrimSpace(resp.body)) == 0 {
		return nil, ErrNoData
	}

	tree, err := decodeJSON(resp.body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	raw, ok := tree.([]any)
	if !ok {
		resp.logger.Warn().Msg("Expected a JSON array, ignoring response")
		return []T{}, nil
	}

	items := parseCollection(raw, parse)

	if dropped := len(raw) - len(items); dropped > 0 && c.debug >= DebugVerbose {
		resp.logger.Debug().Int("dropped", dropped).Msg("Skipped items that could not be mapped")
	}

	if len(items) == 0 {
		return nil, ErrEmptyResultSet
	}

	if c.debug >= DebugBasic {
		resp.logger.Info().Int("count", len(items)).Msg("Retrieved items from Wistia")
	}

	return items, nil
}

// showItem performs a single-item request
func showItem[T DataItem](ctx context.Context, c *Client, d Descriptor, parse func(JSON) (T, error)) (T, error) {
	var zero T

	resp, err := c.fetch(ctx, d)
	if err != nil {
		return zero, err
	}

	if resp.status == http.StatusUnauthorized {
		return zero, newAPIError(resp.status, resp.body)
	}
	if resp.status != http.StatusOK {
		if c.strictStatus {
			return zero, newAPIError(resp.status, resp.body)
		}
		resp.logger.Warn().Int("status", resp.status).Msg("Non-200 response, parsing body anyway")
	}

	if len(bytes.TrimSpace(resp.body)) == 0 {
		return zero, ErrNoData
	}

	tree, err := decodeJSON(resp.body)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	obj, ok := tree.(map[string]any)
	if !ok {
		return zero, fmt.Errorf("%w: expected a JSON object", ErrNoData)
	}

	item, err := parse(obj)
	if err != nil {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, d.HashedID)
	}

	if c.debug >= DebugBasic {
		resp.logger.Info().Str("hashed_id", item.GetHashedID()).Msg("Retrieved item from Wistia")
	}

	return item, nil
}

func toDataItems[T DataItem](items []T) []DataItem {
	if items == nil {
		return nil
	}
	out := make([]DataItem, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

const maxLoggedBody = 512

func truncateBody(body []byte) []byte {
	if len(body) <= maxLoggedBody {
		return body
	}
	return body[:maxLoggedBody]
}
