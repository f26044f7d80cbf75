package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rogersnm/arcedit/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func RenderField(label, value string) string {
	if value == "" {
		value = emptyStyle.Render("(none)")
	}
	return labelStyle.Render(label+":") + " " + value
}

func RenderEntityHeader(title string, fields []string) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	for _, f := range fields {
		sb.WriteString("  " + f + "\n")
	}
	return sb.String()
}

// TagsMarkdown lists stored comma separated tags as a markdown bullet list.
func TagsMarkdown(tags string) string {
	if tags == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("## Tags\n\n")
	for _, tag := range strings.Split(tags, ",") {
		if tag == "" {
			continue
		}
		sb.WriteString("- " + escapeInline(tag) + "\n")
	}
	return sb.String()
}

// RenderArchive renders the header block for an archive.
func RenderArchive(a model.Archive) string {
	fields := []string{
		RenderField("ID", a.ID),
		RenderField("Title", a.Title),
	}
	return RenderEntityHeader(a.Filename, fields)
}

var inlineEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`)

func escapeInline(s string) string {
	return inlineEscaper.Replace(s)
}
