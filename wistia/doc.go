// Package wistia provides a client for the Wistia Data API.
//
// Wistia is a video hosting service. This package covers the read side of
// its Data API: listing and showing Projects and Medias, with responses mapped
// into typed values.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := wistia.NewClient(
//		"your-api-password",
//		logger,
//		wistia.WithTimeout(30*time.Second),
//		wistia.WithDebugLevel(wistia.DebugBasic),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	projects, err := client.ListProjects(ctx, wistia.ListOptions{PerPage: 10})
//	project, err := client.ShowProject(ctx, "abc123")
//
// Each call is one GET with no retry and no caching. ListAsync and ShowAsync
// run the same calls in the background and deliver a single Result.
//
// # Mapping
//
// Payloads are decoded into a generic tree and mapped field by field. Only
// the hashed id is required; every other field falls back to a default
// (id -1, counts 0, progress 1.0, strings empty). Elements of nested lists
// that fail to map are skipped. Media names and descriptions have markup
// stripped.
//
// # Error Handling
//
// Failures are reported through sentinel errors that work with errors.Is:
//
//   - ErrMissingAPIKey, ErrInvalidBaseURL, ErrInvalidRequest: detected before any request
//   - ErrNoResponse: the transport failed
//   - ErrInvalidAPIKey: HTTP 401, wrapped in *APIError
//   - ErrNoData: empty or unparseable body
//   - ErrEmptyResultSet: a list response with nothing usable in it
//   - ErrNotFound: a show response without an identifiable record
//
// Statuses other than 200 and 401 are tolerated by default: list calls return
// an empty page and show calls try to parse the body. WithStrictStatus turns
// them into *APIError values instead.
package wistia
