package wistia

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecodeObject(t *testing.T, body string) JSON {
	t.Helper()
	tree, err := decodeJSON([]byte(body))
	require.NoError(t, err)
	obj, ok := tree.(map[string]any)
	require.True(t, ok, "expected a JSON object")
	return obj
}

func TestParseProject(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		obj := mustDecodeObject(t, `{
			"id": 22570,
			"hashedId": "abc",
			"publicId": "pub1",
			"name": "Demo",
			"description": "A demo project",
			"mediaCount": 3,
			"anonymousCanUpload": true,
			"anonymousCanDownload": false,
			"public": true,
			"created": "2016-03-02T17:52:17+00:00",
			"updated": "2016-03-03T10:00:00+00:00"
		}`)

		p, err := ParseProject(obj)
		require.NoError(t, err)
		assert.Equal(t, 22570, p.ID)
		assert.Equal(t, "abc", p.HashedID)
		assert.Equal(t, "pub1", p.PublicID)
		assert.Equal(t, "Demo", p.Name)
		assert.Equal(t, "A demo project", p.Summary)
		assert.Equal(t, 3, p.MediaCount)
		assert.True(t, p.AnonymousCanUpload)
		assert.False(t, p.AnonymousCanDownload)
		assert.True(t, p.ViewingIsPublic)
		assert.Equal(t, 2016, p.CreatedAt().Year())
		assert.Nil(t, p.Medias)
		assert.False(t, p.HasMedias())
	})

	t.Run("defaults", func(t *testing.T) {
		p, err := ParseProject(JSON{"hashedId": "abc"})
		require.NoError(t, err)
		assert.Equal(t, -1, p.ID)
		assert.Equal(t, 0, p.MediaCount)
		assert.Equal(t, "", p.Name)
		assert.False(t, p.ViewingIsPublic)
		assert.True(t, p.CreatedAt().IsZero())
	})

	t.Run("wrong types fall back to defaults", func(t *testing.T) {
		p, err := ParseProject(JSON{
			"hashedId":   "abc",
			"id":         "not a number",
			"mediaCount": 2.5,
			"name":       42,
			"public":     "yes",
		})
		require.NoError(t, err)
		assert.Equal(t, -1, p.ID)
		assert.Equal(t, 0, p.MediaCount)
		assert.Equal(t, "", p.Name)
		assert.False(t, p.ViewingIsPublic)
	})

	t.Run("missing or empty identifier fails", func(t *testing.T) {
		for _, obj := range []JSON{
			{"name": "No id"},
			{"hashedId": ""},
			{"hashedId": 123},
			{"hashed_id": "abc"},
		} {
			_, err := ParseProject(obj)
			assert.ErrorIs(t, err, ErrInvalidIdentifier)
		}
	})

	t.Run("medias sorted by name and bad elements skipped", func(t *testing.T) {
		obj := mustDecodeObject(t, `{
			"hashedId": "p1",
			"medias": [
				{"hashedId": "z", "name": "Zeta"},
				{"name": "No id"},
				"not an object",
				{"hashedId": "a", "name": "Alpha"},
				{"hashed_id": "m", "name": "Mike"}
			]
		}`)

		p, err := ParseProject(obj)
		require.NoError(t, err)
		require.Len(t, p.Medias, 3)

		var names []string
		for _, m := range p.Medias {
			names = append(names, m.Name)
		}
		assert.Equal(t, []string{"Alpha", "Mike", "Zeta"}, names)
		assert.True(t, p.HasMedias())
	})

	t.Run("empty medias list is kept", func(t *testing.T) {
		p, err := ParseProject(JSON{"hashedId": "p1", "medias": []any{}})
		require.NoError(t, err)
		assert.NotNil(t, p.Medias)
		assert.Empty(t, p.Medias)
	})
}

func TestParseMedia(t *testing.T) {
	t.Run("identifier fallback", func(t *testing.T) {
		tests := []struct {
			name string
			obj  JSON
			want string
		}{
			{"camel case", JSON{"hashedId": "a1"}, "a1"},
			{"snake case", JSON{"hashed_id": "b2"}, "b2"},
			{"both present prefers camel case", JSON{"hashedId": "a1", "hashed_id": "b2"}, "a1"},
			{"empty camel case falls back", JSON{"hashedId": "", "hashed_id": "b2"}, "b2"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				m, err := ParseMedia(tt.obj)
				require.NoError(t, err)
				assert.Equal(t, tt.want, m.HashedID)
			})
		}
	})

	t.Run("missing identifier fails", func(t *testing.T) {
		_, err := ParseMedia(JSON{"name": "Orphan"})
		assert.ErrorIs(t, err, ErrInvalidIdentifier)
	})

	t.Run("defaults", func(t *testing.T) {
		m, err := ParseMedia(JSON{"hashedId": "m1"})
		require.NoError(t, err)
		assert.Equal(t, -1, m.ID)
		assert.Equal(t, 1.0, m.Progress)
		assert.Equal(t, MediaTypeUnknown, m.Type)
		assert.Nil(t, m.Section)
		assert.Nil(t, m.Status)
		assert.Nil(t, m.Thumbnail)
		assert.NotNil(t, m.Assets)
		assert.Empty(t, m.Assets)
	})

	t.Run("sanitizes name and description", func(t *testing.T) {
		m, err := ParseMedia(JSON{
			"hashedId":    "m1",
			"name":        "<b>Intro</b> &amp; Outro",
			"description": "<p>Part one &amp; <i>two</i></p>",
		})
		require.NoError(t, err)
		assert.Equal(t, "Intro & Outro", m.Name)
		assert.Equal(t, "Part one & two", m.Summary)
	})

	t.Run("full payload", func(t *testing.T) {
		obj := mustDecodeObject(t, `{
			"id": 4489021,
			"hashed_id": "v80gyfkt28",
			"name": "How To Make Pizza",
			"type": "Video",
			"section": "Lessons",
			"status": "ready",
			"progress": 0.5,
			"thumbnail": {"url": "https://embed.wistia.com/deliveries/thumb.jpg", "width": 100, "height": 60},
			"assets": [
				{"url": "https://embed.wistia.com/deliveries/orig.bin", "type": "OriginalFile", "contentType": "video/mp4", "width": 1280, "height": 720, "fileSize": 92346000},
				{"type": "Broken"},
				{"url": "https://embed.wistia.com/deliveries/iphone.bin", "type": "IphoneVideoFile", "fileSize": 1024}
			]
		}`)

		m, err := ParseMedia(obj)
		require.NoError(t, err)
		assert.Equal(t, 4489021, m.ID)
		assert.Equal(t, "v80gyfkt28", m.HashedID)
		assert.Equal(t, MediaTypeVideo, m.Type)
		assert.Equal(t, "Lessons", m.SectionTitle())
		assert.Equal(t, "ready", m.StatusValue())
		assert.Equal(t, 0.5, m.Progress)
		require.NotNil(t, m.Thumbnail)
		assert.Equal(t, Thumbnail{URL: "https://embed.wistia.com/deliveries/thumb.jpg", Width: 100, Height: 60}, *m.Thumbnail)

		require.Len(t, m.Assets, 2)
		assert.Equal(t, "OriginalFile", m.Assets[0].Type)
		assert.Equal(t, int64(92346000), m.Assets[0].FileSize)
		assert.Equal(t, "IphoneVideoFile", m.Assets[1].Type)

		orig, ok := m.AssetOfType("originalfile")
		require.True(t, ok)
		assert.Equal(t, 1280, orig.Width)
	})

	t.Run("incomplete thumbnail leaves it unset", func(t *testing.T) {
		m, err := ParseMedia(JSON{
			"hashedId":  "m1",
			"thumbnail": JSON{"url": "https://example.com/t.jpg", "width": json.Number("100")},
		})
		require.NoError(t, err)
		assert.Nil(t, m.Thumbnail)
	})

	t.Run("mapping is idempotent", func(t *testing.T) {
		obj := mustDecodeObject(t, `{"hashedId": "m1", "name": "A", "section": "S", "thumbnail": {"url": "u", "width": 1, "height": 2}, "assets": [{"url": "x"}]}`)
		first, err := ParseMedia(obj)
		require.NoError(t, err)
		second, err := ParseMedia(obj)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		raw  string
		want MediaType
	}{
		{"Video", MediaTypeVideo},
		{"PdfDocument", MediaTypePDF},
		{"MicrosoftOfficeDocument", MediaTypeMSOfficeDocument},
		{"Swf", MediaTypeSWF},
		{"Image", MediaTypeImage},
		{"UnknownType", MediaTypeUnknown},
		{"Audio", MediaTypeUnknown},
		{"video", MediaTypeUnknown},
		{"", MediaTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMediaType(tt.raw))
		})
	}
}

func TestParseAsset(t *testing.T) {
	_, err := ParseAsset(JSON{"type": "OriginalFile"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url")

	a, err := ParseAsset(JSON{"url": "https://example.com/a.bin"})
	require.NoError(t, err)
	assert.Equal(t, Asset{URL: "https://example.com/a.bin"}, a)
}

func TestParseAssetOutOfRangeNumbers(t *testing.T) {
	obj := mustDecodeObject(t, `{"url": "https://example.com/a.bin", "fileSize": 1e20, "width": 3.0e19, "height": -1e19}`)
	a, err := ParseAsset(obj)
	require.NoError(t, err)
	assert.Equal(t, int64(0), a.FileSize)
	assert.Equal(t, 0, a.Width)
	assert.Equal(t, 0, a.Height)

	a, err = ParseAsset(JSON{"url": "u", "fileSize": 1e20, "width": 1280.0})
	require.NoError(t, err)
	assert.Equal(t, int64(0), a.FileSize)
	assert.Equal(t, 1280, a.Width)

	p, err := ParseProject(mustDecodeObject(t, `{"hashedId": "p1", "id": 99999999999999999999, "mediaCount": 2e3}`))
	require.NoError(t, err)
	assert.Equal(t, -1, p.ID)
	assert.Equal(t, 2000, p.MediaCount)
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"object", `{"a": 1}`, false},
		{"array with surrounding whitespace", "  [1, 2]\n\t", false},
		{"trailing markup", `[{"hashedId":"p1"}] <html>oops</html>`, true},
		{"two values", `{"a": 1}{"b": 2}`, true},
		{"trailing scalar", `[] 1`, true},
		{"truncated", `{"a":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeJSON([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAssetDeliveryURL(t *testing.T) {
	a := Asset{URL: "https://embed.wistia.com/deliveries/43500c9644e43068d8995dcb5ddea82440419eaf.bin"}

	assert.Equal(t, a.URL, a.DeliveryURL("", "mp4"))
	assert.Equal(t,
		"https://embed.wistia.com/deliveries/43500c9644e43068d8995dcb5ddea82440419eaf/intro.mp4",
		a.DeliveryURL("intro", "mp4"))
	assert.Equal(t,
		"https://embed.wistia.com/deliveries/43500c9644e43068d8995dcb5ddea82440419eaf/intro.bin",
		a.DeliveryURL("intro", ""))
}
