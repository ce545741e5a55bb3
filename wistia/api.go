package wistia

import (
	"context"
)

// API defines the interface for Wistia Data API operations
type API interface {
	// TestConnection verifies the client can reach Wistia with its API password
	TestConnection(ctx context.Context) error

	// ListProjects retrieves one page of projects
	ListProjects(ctx context.Context, opts ListOptions) ([]Project, error)

	// ListMedias retrieves one page of medias
	ListMedias(ctx context.Context, opts ListOptions) ([]Media, error)

	// ShowProject retrieves a project with its medias
	ShowProject(ctx context.Context, hashedID string) (Project, error)

	// ShowMedia retrieves a media with its assets
	ShowMedia(ctx context.Context, hashedID string) (Media, error)
}

// Formatter defines the interface for formatting output
type Formatter interface {
	FormatProjectList(projects []Project, options FormatOptions) string
	FormatMediaList(medias []Media, options FormatOptions) string
	FormatProject(p Project, options FormatOptions) string
	FormatMedia(m Media, options FormatOptions) string
}

var (
	_ API       = (*Client)(nil)
	_ Formatter = (*ConsoleFormatter)(nil)
)
