package wistia

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultHost is the Wistia Data API host
	DefaultHost = "api.wistia.com"
	// DefaultVersion is the API version prefix
	DefaultVersion = "v1"
	// DefaultPage is the first page; the API counts from 1, not 0
	DefaultPage = 1
	// DefaultPerPage is the page size used when the caller doesn't pick one
	DefaultPerPage = 25
	// MaxPerPage is the largest page size the API accepts
	MaxPerPage = 100

	queryAPIPassword = "api_password"
)

// DefaultBaseURL returns https://api.wistia.com/v1/
func DefaultBaseURL() string {
	return fmt.Sprintf("https://%s/%s/", DefaultHost, DefaultVersion)
}

// Resource is one of the two top-level entity families exposed by the API
type Resource string

const (
	ResourceProjects Resource = "projects"
	ResourceMedias   Resource = "medias"
)

// Endpoint identifies one of the Data API routes
type Endpoint int

const (
	EndpointListProjects Endpoint = iota + 1
	EndpointShowProject
	EndpointListMedias
	EndpointShowMedia
)

// Resource returns the top-level entity family the endpoint belongs to
func (e Endpoint) Resource() Resource {
	switch e {
	case EndpointListProjects, EndpointShowProject:
		return ResourceProjects
	case EndpointListMedias, EndpointShowMedia:
		return ResourceMedias
	default:
		return ""
	}
}

// IsList reports whether the endpoint returns a collection
func (e Endpoint) IsList() bool {
	return e == EndpointListProjects || e == EndpointListMedias
}

// ListOptions controls paging and sorting of list requests
type ListOptions struct {
	Page          int
	PerPage       int
	SortBy        SortBy
	SortDirection SortDirection
	// ProjectID scopes a media listing to one project's hashed id
	ProjectID string
}

// withDefaults fills in zero values: page 1, DefaultPerPage, sorted by updated ascending
func (o ListOptions) withDefaults(perPage int) ListOptions {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.PerPage < 1 {
		o.PerPage = perPage
	}
	if o.PerPage > MaxPerPage {
		o.PerPage = MaxPerPage
	}
	if o.SortBy == "" {
		o.SortBy = SortByUpdated
	}
	return o
}

// Descriptor describes which endpoint to call and with which parameters,
// before it is turned into a URL.
type Descriptor struct {
	Endpoint Endpoint
	HashedID string
	Options  ListOptions
}

// ListProjectsRequest describes a paged project listing
func ListProjectsRequest(opts ListOptions) Descriptor {
	return Descriptor{Endpoint: EndpointListProjects, Options: opts}
}

// ListMediasRequest describes a paged media listing
func ListMediasRequest(opts ListOptions) Descriptor {
	return Descriptor{Endpoint: EndpointListMedias, Options: opts}
}

// ShowProjectRequest describes a single project lookup
func ShowProjectRequest(hashedID string) Descriptor {
	return Descriptor{Endpoint: EndpointShowProject, HashedID: hashedID}
}

// ShowMediaRequest describes a single media lookup
func ShowMediaRequest(hashedID string) Descriptor {
	return Descriptor{Endpoint: EndpointShowMedia, HashedID: hashedID}
}

// String returns a log-friendly description of the request
func (d Descriptor) String() string {
	switch d.Endpoint {
	case EndpointListProjects:
		return "Requesting Projects"
	case EndpointListMedias:
		if d.Options.ProjectID != "" {
			return fmt.Sprintf("Requesting Medias for Project with Hashed ID: %s", d.Options.ProjectID)
		}
		return "Requesting Medias"
	case EndpointShowProject:
		return fmt.Sprintf("Requesting Project with Hashed ID: %s", d.HashedID)
	case EndpointShowMedia:
		return fmt.Sprintf("Requesting Media with Hashed ID: %s", d.HashedID)
	default:
		return "Invalid Request"
	}
}

// Validate checks the descriptor is well formed
func (d Descriptor) Validate() error {
	if d.Endpoint.Resource() == "" {
		return fmt.Errorf("%w: unknown endpoint %d", ErrInvalidRequest, d.Endpoint)
	}
	if d.Endpoint.IsList() {
		if _, err := ParseSortBy(string(d.Options.SortBy)); err != nil {
			return err
		}
		if d.Options.SortDirection != SortAscending && d.Options.SortDirection != SortDescending {
			return fmt.Errorf("%w: unknown sort direction %d", ErrInvalidRequest, d.Options.SortDirection)
		}
		return nil
	}
	if strings.TrimSpace(d.HashedID) == "" {
		return fmt.Errorf("%w: hashed id is required", ErrInvalidRequest)
	}
	return nil
}

// Router turns descriptors into fully qualified request URLs
type Router struct {
	BaseURL string
	APIKey  string
	// PerPage is the page size applied when a list descriptor leaves it unset
	PerPage int
}

// NewRouter returns a router against the public API
func NewRouter(apiKey string) Router {
	return Router{BaseURL: DefaultBaseURL(), APIKey: apiKey, PerPage: DefaultPerPage}
}

// parseBaseURL validates that the base is an absolute http(s) URL and that its
// path ends in a slash so relative resolution keeps the version segment.
func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, ErrInvalidBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidBaseURL, raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// URL builds the request URL for d. Missing credentials and a bad base URL
// are reported before anything else so no network call is attempted.
func (r Router) URL(d Descriptor) (string, error) {
	if strings.TrimSpace(r.APIKey) == "" {
		return "", ErrMissingAPIKey
	}

	base, err := parseBaseURL(r.BaseURL)
	if err != nil {
		return "", err
	}

	if d.Endpoint.IsList() {
		d.Options = d.Options.withDefaults(r.PerPage)
	}
	if err := d.Validate(); err != nil {
		return "", err
	}

	var route string
	params := url.Values{}
	if d.Endpoint.IsList() {
		route = string(d.Endpoint.Resource()) + ".json"
		params.Set("page", strconv.Itoa(d.Options.Page))
		params.Set("per_page", strconv.Itoa(d.Options.PerPage))
		params.Set("sort_by", string(d.Options.SortBy))
		params.Set("sort_direction", d.Options.SortDirection.QueryValue())
		if d.Options.ProjectID != "" {
			params.Set("project_id", d.Options.ProjectID)
		}
	} else {
		route = string(d.Endpoint.Resource()) + "/" + url.PathEscape(d.HashedID) + ".json"
	}
	params.Set(queryAPIPassword, r.APIKey)

	ref, err := url.Parse(route)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	u := base.ResolveReference(ref)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// redactURL hides the API password so request URLs can be logged
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has(queryAPIPassword) {
		q.Set(queryAPIPassword, "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
