package wistia

import (
	"fmt"
	"strings"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails      bool
	StripNumbering   bool
	ShowEmptySection bool
}

// ConsoleFormatter provides console output formatting for projects and medias
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatProjectList formats a list of projects for console display
func (f *ConsoleFormatter) FormatProjectList(projects []Project, options FormatOptions) string {
	if len(projects) == 0 {
		return "No projects found"
	}

	var sb strings.Builder
	writeHeader(&sb, "Project", len(projects))

	for i, p := range projects {
		isLast := i == len(projects)-1
		prefix, indent := branch(isLast)

		fmt.Fprintf(&sb, "%s── %s [%s]\n", prefix, p.Name, p.HashedID)
		fmt.Fprintf(&sb, "%sMedias: %d", indent, p.MediaCount)
		if p.ViewingIsPublic {
			sb.WriteString(" | Public")
		}
		sb.WriteString("\n")

		if options.ShowDetails {
			if p.Summary != "" {
				fmt.Fprintf(&sb, "%sDescription: %s\n", indent, p.Summary)
			}
			if dates := formatDates(p.Created, p.Updated); dates != "" {
				fmt.Fprintf(&sb, "%s%s\n", indent, dates)
			}
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatMediaList formats a list of medias for console display
func (f *ConsoleFormatter) FormatMediaList(medias []Media, options FormatOptions) string {
	if len(medias) == 0 {
		return "No medias found"
	}

	var sb strings.Builder
	writeHeader(&sb, "Media", len(medias))

	for i, m := range medias {
		isLast := i == len(medias)-1
		f.formatMedia(&sb, m, isLast, "", options)
		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatProject formats a single project with its medias grouped by section
func (f *ConsoleFormatter) FormatProject(p Project, options FormatOptions) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s [%s]\n", p.Name, p.HashedID)
	if p.Summary != "" {
		fmt.Fprintf(&sb, "%s\n", p.Summary)
	}
	if dates := formatDates(p.Created, p.Updated); dates != "" {
		fmt.Fprintf(&sb, "%s\n", dates)
	}
	sb.WriteString("\n")

	ds, err := NewDataSource(p, options.ShowEmptySection)
	if err != nil || len(ds.Sections) == 0 {
		fmt.Fprintf(&sb, "Medias: %d\n", p.MediaCount)
		return sb.String()
	}

	for i, section := range ds.Sections {
		isLast := i == len(ds.Sections)-1
		prefix, indent := branch(isLast)

		title := section.TitleString()
		if title == "" {
			title = "(no section)"
		} else if options.StripNumbering {
			title = RemoveNumberPrefix(title)
		}
		fmt.Fprintf(&sb, "%s── %s (%d)\n", prefix, title, len(section.Medias))

		for j, m := range section.Medias {
			f.formatMedia(&sb, m, j == len(section.Medias)-1, indent, options)
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatMedia formats a single media including its thumbnail and assets
func (f *ConsoleFormatter) FormatMedia(m Media, options FormatOptions) string {
	var sb strings.Builder

	options.ShowDetails = true
	sb.WriteString("\n")
	f.formatMedia(&sb, m, true, "", options)

	if m.Thumbnail != nil {
		fmt.Fprintf(&sb, "    Thumbnail: %s (%dx%d)\n", m.Thumbnail.URL, m.Thumbnail.Width, m.Thumbnail.Height)
	}
	if len(m.Assets) > 0 {
		fmt.Fprintf(&sb, "    Assets (%d):\n", len(m.Assets))
		for i, a := range m.Assets {
			prefix, _ := branch(i == len(m.Assets)-1)
			fmt.Fprintf(&sb, "    %s── %s %s", prefix, a.Type, a.ContentType)
			if a.Width > 0 && a.Height > 0 {
				fmt.Fprintf(&sb, " %dx%d", a.Width, a.Height)
			}
			fmt.Fprintf(&sb, " %s\n", formatBytes(a.FileSize))
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) formatMedia(sb *strings.Builder, m Media, isLast bool, parentIndent string, options FormatOptions) {
	prefix, indent := branch(isLast)
	indent = parentIndent + indent

	name := m.Name
	if options.StripNumbering {
		name = RemoveNumberPrefix(name)
	}
	fmt.Fprintf(sb, "%s%s── %s [%s]\n", parentIndent, prefix, name, m.HashedID)

	parts := []string{string(m.Type)}
	if status := m.StatusValue(); status != "" {
		parts = append(parts, status)
	}
	if m.Progress < 1 {
		parts = append(parts, fmt.Sprintf("%.0f%%", m.Progress*100))
	}
	fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(parts, " | "))

	if !options.ShowDetails {
		return
	}
	if m.Summary != "" {
		fmt.Fprintf(sb, "%sDescription: %s\n", indent, m.Summary)
	}
	if section := m.SectionTitle(); section != "" {
		fmt.Fprintf(sb, "%sSection: %s\n", indent, section)
	}
	if dates := formatDates(m.Created, m.Updated); dates != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, dates)
	}
}

func writeHeader(sb *strings.Builder, noun string, n int) {
	sb.WriteString("\n" + noun)
	if n != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(sb, " (%d):\n\n", n)
}

// branch returns the tree prefix for an entry and the indent for its children
func branch(isLast bool) (string, string) {
	if isLast {
		return "╰", "    "
	}
	return "├", "│   "
}

func formatDates(created, updated string) string {
	var parts []string
	if t := parseTimestamp(created); !t.IsZero() {
		parts = append(parts, "Created: "+t.Format("2006-01-02"))
	}
	if t := parseTimestamp(updated); !t.IsZero() {
		parts = append(parts, "Updated: "+t.Format("2006-01-02"))
	}
	return strings.Join(parts, " | ")
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
