package wistia

import (
	"fmt"
	"sort"
)

// Section groups the medias of a project that share a section title.
// A nil Title holds medias that were never assigned a section.
type Section struct {
	Title  *string
	Medias []Media
}

// TitleString returns the title, or "" for the untitled section
func (s Section) TitleString() string {
	if s.Title == nil {
		return ""
	}
	return *s.Title
}

// DataSource organizes a project's medias into sections, ready for display.
type DataSource struct {
	Name     string
	Items    []Media
	Sections []Section
}

// NewDataSource groups the medias of p by section title, sorted by title.
// Medias without a section are usually work in progress, so their group is
// only included when showEmptySection is set; it then sorts first.
func NewDataSource(p Project, showEmptySection bool) (*DataSource, error) {
	if p.Medias == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoMedias, p.HashedID)
	}

	ds := &DataSource{
		Name:  p.Name,
		Items: p.Medias,
	}

	seen := make(map[string]bool)
	var titles []string
	for _, m := range p.Medias {
		if m.Section == nil || seen[*m.Section] {
			continue
		}
		seen[*m.Section] = true
		titles = append(titles, *m.Section)
	}
	sort.Strings(titles)

	if showEmptySection {
		ds.Sections = append(ds.Sections, Section{Medias: ds.itemsFor(nil)})
	}
	for _, title := range titles {
		title := title
		ds.Sections = append(ds.Sections, Section{Title: &title, Medias: ds.itemsFor(&title)})
	}

	return ds, nil
}

// ItemsForSection returns the medias whose section equals title. An empty
// title selects medias without a section.
func (ds *DataSource) ItemsForSection(title string) []Media {
	if title == "" {
		return ds.itemsFor(nil)
	}
	return ds.itemsFor(&title)
}

// Item returns the media at row within the section at index section
func (ds *DataSource) Item(section, row int) (Media, bool) {
	if section < 0 || section >= len(ds.Sections) {
		return Media{}, false
	}
	medias := ds.Sections[section].Medias
	if row < 0 || row >= len(medias) {
		return Media{}, false
	}
	return medias[row], true
}

// String implements fmt.Stringer
func (ds *DataSource) String() string {
	if ds.Name == "" {
		return "No Description"
	}
	return fmt.Sprintf("Name: %s\nNumber Of Sections: %d", ds.Name, len(ds.Sections))
}

func (ds *DataSource) itemsFor(title *string) []Media {
	out := make([]Media, 0)
	for _, m := range ds.Items {
		switch {
		case title == nil && m.Section == nil:
			out = append(out, m)
		case title != nil && m.Section != nil && *m.Section == *title:
			out = append(out, m)
		}
	}
	return out
}
