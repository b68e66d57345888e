package render

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var colorWhite = &props.Color{Red: 255, Green: 255, Blue: 255}

// PDF renders the layout as an A4 document. Icons are dropped because the
// built-in fonts have no emoji glyphs.
func PDF(l Layout) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: pdfFont(l.Style), Size: 10}).
		WithTitle(l.Title+" "+l.Number, true).
		WithAuthor(l.Business.Title, true).
		Build()

	m := maroto.New(cfg)

	primary := hexColor(l.Style.Primary)
	muted := hexColor(l.Style.Muted)
	secondary := hexColor(l.Style.Secondary)

	m.AddRows(pdfHeader(l, primary, muted))
	m.AddRows(line.NewRow(4, props.Line{Color: primary, Thickness: pdfRule(l.Style.Border)}))
	m.AddRows(pdfParties(l, secondary, muted))
	m.AddRows(row.New(4))

	m.AddRows(pdfTableHeader(l, primary))
	for _, r := range l.Rows {
		m.AddRows(pdfItemRow(r))
	}
	m.AddRows(line.NewRow(4, props.Line{Color: muted, Thickness: 0.2}))

	for _, f := range l.Totals {
		m.AddRows(pdfTotalRow(f, primary))
	}

	if l.Notes != nil {
		m.AddRows(row.New(8))
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New(l.Notes.Heading, props.Text{Style: fontstyle.Bold, Size: 10, Color: secondary}),
		)))
		for _, n := range l.Notes.Lines {
			m.AddRows(row.New(5).Add(col.New(12).Add(
				text.New(n, props.Text{Size: 9, Color: muted}),
			)))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func pdfHeader(l Layout, primary, muted *props.Color) core.Row {
	nameColor := &props.Color{}
	titleColor := primary
	lineColor := muted
	if l.Style.Banner {
		nameColor, titleColor, lineColor = colorWhite, colorWhite, colorWhite
	}

	business := []core.Component{
		text.New(l.Business.Title, props.Text{Style: fontstyle.Bold, Size: 16, Color: nameColor, Top: 2, Left: 2}),
	}
	for i, s := range l.Business.Lines {
		business = append(business, text.New(s, props.Text{Size: 9, Color: lineColor, Top: 11 + float64(i)*5, Left: 2}))
	}

	height := 14 + float64(len(l.Business.Lines))*5
	if height < 24 {
		height = 24
	}

	r := row.New(height).Add(
		col.New(7).Add(business...),
		col.New(5).Add(
			text.New(l.Title, props.Text{Style: fontstyle.Bold, Size: 20, Align: align.Right, Color: titleColor, Top: 2, Right: 2}),
			text.New(l.Number, props.Text{Size: 10, Align: align.Right, Color: lineColor, Top: 13, Right: 2}),
		),
	)
	if l.Style.Banner {
		r = r.WithStyle(&props.Cell{BackgroundColor: primary})
	}
	return r
}

func pdfParties(l Layout, secondary, muted *props.Color) core.Row {
	billTo := []core.Component{
		text.New(l.BillTo.Heading, props.Text{Style: fontstyle.Bold, Size: 10, Color: secondary, Top: 2}),
		text.New(l.BillTo.Title, props.Text{Style: fontstyle.Bold, Size: 12, Top: 8}),
	}
	for i, s := range l.BillTo.Lines {
		billTo = append(billTo, text.New(s, props.Text{Size: 9, Color: muted, Top: 15 + float64(i)*5}))
	}

	var meta []core.Component
	top := 2.0
	if l.MetaHeading.Heading != "" {
		meta = append(meta, text.New(l.MetaHeading.Heading, props.Text{Style: fontstyle.Bold, Size: 10, Color: secondary, Align: align.Right, Top: top}))
		top += 6
	}
	for _, f := range l.Meta {
		meta = append(meta, text.New(joinField(f), props.Text{Size: 9, Color: muted, Align: align.Right, Top: top}))
		top += 5
	}

	height := 18 + float64(len(l.BillTo.Lines))*5
	if height < top+4 {
		height = top + 4
	}

	return row.New(height).Add(col.New(7).Add(billTo...), col.New(5).Add(meta...))
}

func pdfTableHeader(l Layout, primary *props.Color) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Color: colorWhite, Top: 2, Left: 2, Right: 2,
		}))
	}
	return row.New(8).Add(
		h(l.Columns[0], 6, align.Left),
		h(l.Columns[1], 2, align.Right),
		h(l.Columns[2], 2, align.Right),
		h(l.Columns[3], 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: primary})
}

func pdfItemRow(r Row) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 9, Align: a, Top: 2, Left: 2, Right: 2}))
	}
	return row.New(8).Add(
		cell(r.Description, 6, align.Left),
		cell(r.Quantity, 2, align.Right),
		cell(r.Rate, 2, align.Right),
		cell(r.Amount, 2, align.Right),
	)
}

func pdfTotalRow(f Field, primary *props.Color) core.Row {
	p := props.Text{Size: 10, Align: align.Right, Top: 1, Right: 2}
	if f.Strong {
		p.Style = fontstyle.Bold
		p.Size = 12
		p.Color = primary
	}
	return row.New(7).Add(
		col.New(6),
		col.New(3).Add(text.New(f.Label, p)),
		col.New(3).Add(text.New(f.Value, p)),
	)
}

func pdfFont(s Style) string {
	if strings.Contains(s.Font, "serif") && !strings.Contains(s.Font, "sans-serif") {
		return "times"
	}
	return "helvetica"
}

func pdfRule(b Border) float64 {
	switch b {
	case BorderThick, BorderDouble:
		return 1.2
	case BorderHidden:
		return 0.1
	default:
		return 0.5
	}
}

// hexColor parses #rrggbb; anything else is black
func hexColor(s string) *props.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return &props.Color{}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return &props.Color{}
	}
	return &props.Color{Red: int(v >> 16 & 0xff), Green: int(v >> 8 & 0xff), Blue: int(v & 0xff)}
}
