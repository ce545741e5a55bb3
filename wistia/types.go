package wistia

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// MediaType represents the kind of file a media item holds
type MediaType string

const (
	// MediaTypeVideo is a video
	MediaTypeVideo MediaType = "Video"
	// MediaTypePDF is a PDF document
	MediaTypePDF MediaType = "PdfDocument"
	// MediaTypeMSOfficeDocument is a Word, Excel or PowerPoint document
	MediaTypeMSOfficeDocument MediaType = "MicrosoftOfficeDocument"
	// MediaTypeSWF is a Flash file
	MediaTypeSWF MediaType = "Swf"
	// MediaTypeImage is an image
	MediaTypeImage MediaType = "Image"
	// MediaTypeUnknown is used for any value Wistia reports that we don't recognise
	MediaTypeUnknown MediaType = "UnknownType"
)

// ParseMediaType normalizes a raw type tag. Unrecognized values map to MediaTypeUnknown.
func ParseMediaType(raw string) MediaType {
	switch mt := MediaType(raw); mt {
	case MediaTypeVideo, MediaTypePDF, MediaTypeMSOfficeDocument, MediaTypeSWF, MediaTypeImage:
		return mt
	default:
		return MediaTypeUnknown
	}
}

// IsVideo checks if the media type is a video
func (mt MediaType) IsVideo() bool {
	return mt == MediaTypeVideo
}

// String returns the raw type tag
func (mt MediaType) String() string {
	return string(mt)
}

// DataItem is a record from the Wistia object graph, either a Project or a Media.
type DataItem interface {
	GetHashedID() string
	String() string
}

// Project is the main organizational object within Wistia. Medias are stored in projects.
type Project struct {
	ID                   int     `json:"id" yaml:"id"`
	HashedID             string  `json:"hashedId" yaml:"hashedId"`
	PublicID             string  `json:"publicId" yaml:"publicId"`
	Name                 string  `json:"name" yaml:"name"`
	Summary              string  `json:"description" yaml:"description"`
	MediaCount           int     `json:"mediaCount" yaml:"mediaCount"`
	AnonymousCanUpload   bool    `json:"anonymousCanUpload" yaml:"anonymousCanUpload"`
	AnonymousCanDownload bool    `json:"anonymousCanDownload" yaml:"anonymousCanDownload"`
	ViewingIsPublic      bool    `json:"public" yaml:"public"`
	Created              string  `json:"created" yaml:"created"`
	Updated              string  `json:"updated" yaml:"updated"`
	Medias               []Media `json:"medias,omitempty" yaml:"medias,omitempty"`
}

// GetHashedID returns the project's hashed id
func (p Project) GetHashedID() string {
	return p.HashedID
}

// String implements fmt.Stringer
func (p Project) String() string {
	return fmt.Sprintf("Project: %s (%s)", p.Name, p.HashedID)
}

// CreatedAt parses the creation timestamp, returning the zero time if it can't be parsed
func (p Project) CreatedAt() time.Time {
	return parseTimestamp(p.Created)
}

// UpdatedAt parses the update timestamp, returning the zero time if it can't be parsed
func (p Project) UpdatedAt() time.Time {
	return parseTimestamp(p.Updated)
}

// HasMedias reports whether the payload the project was built from included a media list
func (p Project) HasMedias() bool {
	return p.Medias != nil
}

// Media is a single file stored in a Wistia project.
type Media struct {
	ID        int        `json:"id" yaml:"id"`
	HashedID  string     `json:"hashedId" yaml:"hashedId"`
	PublicID  string     `json:"publicId" yaml:"publicId"`
	Name      string     `json:"name" yaml:"name"`
	Summary   string     `json:"description" yaml:"description"`
	Created   string     `json:"created" yaml:"created"`
	Updated   string     `json:"updated" yaml:"updated"`
	Section   *string    `json:"section,omitempty" yaml:"section,omitempty"`
	Status    *string    `json:"status,omitempty" yaml:"status,omitempty"`
	Progress  float64    `json:"progress" yaml:"progress"`
	Thumbnail *Thumbnail `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Type      MediaType  `json:"type" yaml:"type"`
	Assets    []Asset    `json:"assets" yaml:"assets"`
}

// GetHashedID returns the media's hashed id
func (m Media) GetHashedID() string {
	return m.HashedID
}

// String implements fmt.Stringer
func (m Media) String() string {
	return fmt.Sprintf("Media: %s (%s)", m.Name, m.HashedID)
}

// SectionTitle returns the section name, or "" for medias outside any section
func (m Media) SectionTitle() string {
	if m.Section == nil {
		return ""
	}
	return *m.Section
}

// StatusValue returns the processing status, or "" when Wistia didn't report one
func (m Media) StatusValue() string {
	if m.Status == nil {
		return ""
	}
	return *m.Status
}

// CreatedAt parses the creation timestamp, returning the zero time if it can't be parsed
func (m Media) CreatedAt() time.Time {
	return parseTimestamp(m.Created)
}

// UpdatedAt parses the update timestamp, returning the zero time if it can't be parsed
func (m Media) UpdatedAt() time.Time {
	return parseTimestamp(m.Updated)
}

// AssetOfType returns the first asset with the given type, e.g. "OriginalFile"
func (m Media) AssetOfType(assetType string) (Asset, bool) {
	for _, a := range m.Assets {
		if strings.EqualFold(a.Type, assetType) {
			return a, true
		}
	}
	return Asset{}, false
}

// Asset is one rendition of a media file.
type Asset struct {
	URL         string `json:"url" yaml:"url"`
	Type        string `json:"type" yaml:"type"`
	ContentType string `json:"contentType" yaml:"contentType"`
	Width       int    `json:"width" yaml:"width"`
	Height      int    `json:"height" yaml:"height"`
	FileSize    int64  `json:"fileSize" yaml:"fileSize"`
}

// DeliveryURL turns a raw delivery URL such as
// https://embed.wistia.com/deliveries/43500c96.bin into a named file URL
// (https://embed.wistia.com/deliveries/43500c96/intro.mp4).
// The original URL is returned when filename is empty or the URL can't be parsed.
func (a Asset) DeliveryURL(filename, ext string) string {
	if filename == "" {
		return a.URL
	}
	if ext == "" {
		ext = "bin"
	}

	u, err := url.Parse(a.URL)
	if err != nil || u.Path == "" {
		return a.URL
	}

	base := strings.TrimSuffix(u.Path, path.Ext(u.Path))
	u.Path = base + "/" + filename + "." + strings.TrimPrefix(ext, ".")
	return u.String()
}

// Thumbnail is the still image Wistia generates for a media.
type Thumbnail struct {
	URL    string `json:"url" yaml:"url"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// SortBy is the field the API sorts list results by
type SortBy string

const (
	SortByName       SortBy = "name"
	SortByMediaCount SortBy = "mediaCount"
	SortByCreated    SortBy = "created"
	SortByUpdated    SortBy = "updated"
)

// ParseSortBy validates a sort field name
func ParseSortBy(s string) (SortBy, error) {
	switch sb := SortBy(s); sb {
	case SortByName, SortByMediaCount, SortByCreated, SortByUpdated:
		return sb, nil
	case "":
		return SortByUpdated, nil
	default:
		return "", fmt.Errorf("%w: unknown sort field %q", ErrInvalidRequest, s)
	}
}

// SortDirection selects ascending or descending order. The zero value means ascending.
type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

// ParseSortDirection accepts "asc"/"ascending"/"1" and "desc"/"descending"/"0"
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending", "1":
		return SortAscending, nil
	case "desc", "descending", "0":
		return SortDescending, nil
	default:
		return 0, fmt.Errorf("%w: unknown sort direction %q", ErrInvalidRequest, s)
	}
}

// QueryValue returns the wire encoding: 1 = ascending, 0 = descending
func (d SortDirection) QueryValue() string {
	if d == SortDescending {
		return "0"
	}
	return "1"
}

// String returns the human readable direction
func (d SortDirection) String() string {
	if d == SortDescending {
		return "descending"
	}
	return "ascending"
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05 MST", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
