package wistia

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"sort"
)

// JSON is a decoded JSON object. Values are whatever encoding/json produces for
// interface{} targets, with numbers kept as json.Number.
type JSON = map[string]any

const (
	keyHashedID    = "hashedId"
	keyHashedIDAlt = "hashed_id"
)

// decodeJSON parses a response body into a generic tree, preserving numbers
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

// ParseProject builds a Project from a decoded JSON object.
// The object must carry a non-empty "hashedId"; every other field is optional.
func ParseProject(obj JSON) (Project, error) {
	hashedID := str(obj, "", keyHashedID)
	if hashedID == "" {
		return Project{}, ErrInvalidIdentifier
	}

	p := Project{
		ID:                   integer(obj, -1, "id"),
		HashedID:             hashedID,
		PublicID:             str(obj, "", "publicId"),
		Name:                 str(obj, "", "name"),
		Summary:              str(obj, "", "description"),
		MediaCount:           integer(obj, 0, "mediaCount"),
		AnonymousCanUpload:   boolean(obj, false, "anonymousCanUpload"),
		AnonymousCanDownload: boolean(obj, false, "anonymousCanDownload"),
		ViewingIsPublic:      boolean(obj, false, "public"),
		Created:              str(obj, "", "created"),
		Updated:              str(obj, "", "updated"),
	}

	// Medias only show up in "show" responses, not in project lists
	if raw, ok := array(obj, "medias"); ok {
		p.Medias = parseCollection(raw, ParseMedia)
		sort.SliceStable(p.Medias, func(i, j int) bool {
			return p.Medias[i].Name < p.Medias[j].Name
		})
	}

	return p, nil
}

// ParseMedia builds a Media from a decoded JSON object. The identifier is read
// from "hashedId", falling back to "hashed_id".
func ParseMedia(obj JSON) (Media, error) {
	hashedID := str(obj, "", keyHashedID, keyHashedIDAlt)
	if hashedID == "" {
		return Media{}, ErrInvalidIdentifier
	}

	m := Media{
		ID:       integer(obj, -1, "id"),
		HashedID: hashedID,
		PublicID: str(obj, "", "publicId"),
		Name:     SanitizeText(str(obj, "", "name")),
		Summary:  SanitizeText(str(obj, "", "description")),
		Created:  str(obj, "", "created"),
		Updated:  str(obj, "", "updated"),
		Section:  optionalString(obj, "section"),
		Status:   optionalString(obj, "status"),
		Progress: number(obj, 1.0, "progress"),
		Type:     ParseMediaType(str(obj, string(MediaTypeUnknown), "type")),
		Assets:   []Asset{},
	}

	if thumb, ok := object(obj, "thumbnail"); ok {
		if t, err := ParseThumbnail(thumb); err == nil {
			m.Thumbnail = &t
		}
	}

	if raw, ok := array(obj, "assets"); ok {
		m.Assets = parseCollection(raw, ParseAsset)
	}

	return m, nil
}

// ParseAsset builds an Asset from a decoded JSON object. Only "url" is required.
func ParseAsset(obj JSON) (Asset, error) {
	u := str(obj, "", "url")
	if u == "" {
		return Asset{}, errMissingField("url")
	}

	return Asset{
		URL:         u,
		Type:        str(obj, "", "type"),
		ContentType: str(obj, "", "contentType"),
		Width:       integer(obj, 0, "width"),
		Height:      integer(obj, 0, "height"),
		FileSize:    int64(integer(obj, 0, "fileSize")),
	}, nil
}

// ParseThumbnail builds a Thumbnail. URL, width and height are all required.
func ParseThumbnail(obj JSON) (Thumbnail, error) {
	u := str(obj, "", "url")
	if u == "" {
		return Thumbnail{}, errMissingField("url")
	}
	width, ok := intValue(obj["width"])
	if !ok {
		return Thumbnail{}, errMissingField("width")
	}
	height, ok := intValue(obj["height"])
	if !ok {
		return Thumbnail{}, errMissingField("height")
	}
	return Thumbnail{URL: u, Width: width, Height: height}, nil
}

// parseCollection maps each element that is an object and parses cleanly.
// Anything else is dropped so one bad element never sinks the batch.
func parseCollection[T any](raw []any, parse func(JSON) (T, error)) []T {
	out := make([]T, 0, len(raw))
	for _, el := range raw {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		item, err := parse(obj)
		if err != nil {
			continue
		}
		out = append(out, item)
	}
	return out
}

type missingFieldError string

func (e missingFieldError) Error() string {
	return "missing or invalid field: " + string(e)
}

func errMissingField(name string) error {
	return missingFieldError(name)
}

// Accessors. Each takes a default and one or more keys; the first key holding
// a value of the right type wins.

func str(obj JSON, def string, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return def
}

func optionalString(obj JSON, keys ...string) *string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok {
			return &s
		}
	}
	return nil
}

func integer(obj JSON, def int, keys ...string) int {
	for _, k := range keys {
		if n, ok := intValue(obj[k]); ok {
			return n
		}
	}
	return def
}

func number(obj JSON, def float64, keys ...string) float64 {
	for _, k := range keys {
		if f, ok := floatValue(obj[k]); ok {
			return f
		}
	}
	return def
}

func boolean(obj JSON, def bool, keys ...string) bool {
	for _, k := range keys {
		if b, ok := obj[k].(bool); ok {
			return b
		}
	}
	return def
}

func object(obj JSON, keys ...string) (JSON, bool) {
	for _, k := range keys {
		if o, ok := obj[k].(map[string]any); ok {
			return o, true
		}
	}
	return nil, false
}

func array(obj JSON, keys ...string) ([]any, bool) {
	for _, k := range keys {
		if a, ok := obj[k].([]any); ok {
			return a, true
		}
	}
	return nil, false
}

// intValue accepts integral numbers in any of the shapes a decoded tree can hold
// floatToInt accepts only integral values that fit in an int
func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt(f)
		}
	case float64:
		return floatToInt(n)
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
