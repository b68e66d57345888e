package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// MinTextWidth is the narrowest frame Text will draw
const MinTextWidth = 56

// Text draws the layout for a terminal, framed in the variant's border and palette
func Text(l Layout, width int) string {
	if width < MinTextWidth {
		width = MinTextWidth
	}
	s := l.Style
	inner := width - 6 // border + horizontal padding

	primary := lipgloss.Color(s.Primary)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Muted))
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(s.Secondary))
	strong := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(s.Text))

	var sections []string

	// Header: business on the left, title and number on the right
	half := inner / 2
	left := blockText(l.Business, heading, strong, muted)
	right := lipgloss.JoinVertical(lipgloss.Right,
		lipgloss.NewStyle().Bold(true).Foreground(primary).Render(l.Title),
		muted.Render(l.Number),
	)
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half).Render(left),
		lipgloss.NewStyle().Width(inner-half).Align(lipgloss.Right).Render(right),
	)
	if s.Banner {
		header = lipgloss.NewStyle().
			Background(primary).
			Foreground(lipgloss.Color("#ffffff")).
			Width(inner).
			Render(header)
	}
	sections = append(sections, header, "")

	// Bill-to on the left, dates on the right
	meta := metaText(l, heading, muted)
	billTo := blockText(l.BillTo, heading, strong, muted)
	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(half).Render(billTo),
			lipgloss.NewStyle().Width(inner-half).Align(lipgloss.Right).Render(meta),
		),
		"",
	)

	sections = append(sections, itemsTable(l, inner), "")

	// Totals, right aligned
	var totals []string
	for _, f := range l.Totals {
		line := f.Label + " " + f.Value
		if f.Strong {
			line = lipgloss.NewStyle().Bold(true).Foreground(primary).Render(line)
		}
		totals = append(totals, line)
	}
	sections = append(sections,
		lipgloss.NewStyle().Width(inner).Align(lipgloss.Right).Render(
			lipgloss.JoinVertical(lipgloss.Right, totals...),
		),
	)

	if l.Notes != nil {
		sections = append(sections, "", blockText(*l.Notes, heading, strong, muted))
	}

	frame := lipgloss.NewStyle().
		Border(lipglossBorder(s.Border)).
		BorderForeground(primary).
		Padding(1, 2).
		Width(width - 2)

	return frame.Render(strings.Join(sections, "\n"))
}

func itemsTable(l Layout, width int) string {
	s := l.Style
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(s.Primary)).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Text)).Padding(0, 1)

	rows := make([][]string, 0, len(l.Rows))
	for _, r := range l.Rows {
		rows = append(rows, []string{r.Description, r.Quantity, r.Rate, r.Amount})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(s.Muted))).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		BorderColumn(false).
		Width(width).
		Headers(l.Columns[:]...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := cell
			if row == table.HeaderRow {
				st = headerStyle
			}
			if col > 0 {
				st = st.Align(lipgloss.Right)
			}
			return st
		})

	return t.String()
}

func blockText(b Block, heading, strong, muted lipgloss.Style) string {
	var out []string
	if b.Heading != "" {
		out = append(out, heading.Render(withIcon(b.Icon, b.Heading)))
	}
	if b.Title != "" {
		out = append(out, strong.Render(b.Title))
	}
	for _, line := range b.Lines {
		out = append(out, muted.Render(line))
	}
	return strings.Join(out, "\n")
}

func metaText(l Layout, heading, muted lipgloss.Style) string {
	var out []string
	if l.MetaHeading.Heading != "" {
		out = append(out, heading.Render(withIcon(l.MetaHeading.Icon, l.MetaHeading.Heading)))
	}
	for _, f := range l.Meta {
		out = append(out, muted.Render(joinField(f)))
	}
	return lipgloss.JoinVertical(lipgloss.Right, out...)
}

func joinField(f Field) string {
	if f.Label == "" {
		return f.Value
	}
	return f.Label + " " + f.Value
}

func withIcon(icon, s string) string {
	if icon == "" {
		return s
	}
	return icon + " " + s
}

func lipglossBorder(b Border) lipgloss.Border {
	switch b {
	case BorderRounded:
		return lipgloss.RoundedBorder()
	case BorderThick:
		return lipgloss.ThickBorder()
	case BorderDouble:
		return lipgloss.DoubleBorder()
	case BorderHidden:
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.NormalBorder()
	}
}
