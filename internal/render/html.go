package render

import (
	"fmt"
	"html/template"
	"io"
)

var htmlTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"cssBorder": cssBorder,
	"icon":      withIcon,
	"field":     joinField,
	"css":       func(s string) template.CSS { return template.CSS(s) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Number}}</title>
<style>
  :root {
    --primary: {{.Style.Primary}};
    --secondary: {{.Style.Secondary}};
    --muted: {{.Style.Muted}};
    --text: {{.Style.Text}};
    --surface: {{.Style.Surface}};
  }
  body { margin: 0; background: #f3f4f6; color: var(--text); font-family: {{css .Style.Font}}; }
  .invoice { max-width: 820px; margin: 32px auto; padding: 48px; background: var(--surface); border: {{cssBorder .Style.Border}}; border-radius: {{if eq .Style.Border "rounded"}}16px{{else}}0{{end}}; }
  header { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 40px; }
  header.banner { background: var(--primary); color: #fff; padding: 24px; border-radius: 12px; }
  header.banner .muted { color: rgba(255,255,255,.85); }
  .title { font-size: 2rem; font-weight: 700; color: var(--primary); margin: 0 0 4px; }
  header.banner .title { color: #fff; }
  .name { font-size: 1.4rem; font-weight: 700; margin: 0 0 6px; }
  .muted { color: var(--muted); margin: 2px 0; }
  .right { text-align: right; }
  .heading { font-weight: 600; color: var(--secondary); margin: 0 0 6px;{{if .Style.Uppercase}} text-transform: uppercase; font-size: .85rem;{{end}} }
  .parties { display: flex; justify-content: space-between; margin-bottom: 32px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 32px; }
  th { text-align: left; padding: 10px 8px; border-bottom: 2px solid var(--primary); color: var(--secondary); }
  td { padding: 10px 8px; border-bottom: 1px solid #e5e7eb; }
  th.num, td.num { text-align: right; }
  .totals { margin-left: auto; width: 320px; }
  .totals div { display: flex; justify-content: space-between; padding: 4px 0; }
  .totals .strong { font-weight: 700; font-size: 1.2rem; color: var(--primary); border-top: 2px solid var(--primary); padding-top: 8px; margin-top: 4px; }
  .notes { margin-top: 40px; white-space: pre-wrap; }
  @media print { body { background: #fff; } .invoice { margin: 0; border: none; max-width: none; } }
</style>
</head>
<body>
<article class="invoice template-{{.Template}}">
  <header{{if .Style.Banner}} class="banner"{{end}}>
    <div>
      {{with .Business.Title}}<p class="name">{{.}}</p>{{end}}
      {{range .Business.Lines}}<p class="muted">{{.}}</p>{{end}}
    </div>
    <div class="right">
      <p class="title">{{.Title}}</p>
      <p class="muted">{{.Number}}</p>
    </div>
  </header>

  <section class="parties">
    <div>
      <p class="heading">{{icon .BillTo.Icon .BillTo.Heading}}</p>
      {{with .BillTo.Title}}<p class="name">{{.}}</p>{{end}}
      {{range .BillTo.Lines}}<p class="muted">{{.}}</p>{{end}}
    </div>
    <div class="right">
      {{with .MetaHeading.Heading}}<p class="heading">{{icon $.MetaHeading.Icon .}}</p>{{end}}
      {{range .Meta}}<p class="muted">{{field .}}</p>{{end}}
    </div>
  </section>

  <table>
    <thead>
      <tr>
        {{range $i, $c := .Columns}}<th{{if $i}} class="num"{{end}}>{{$c}}</th>{{end}}
      </tr>
    </thead>
    <tbody>
      {{range .Rows}}<tr>
        <td>{{.Description}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{.Rate}}</td>
        <td class="num">{{.Amount}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <section class="totals">
    {{range .Totals}}<div{{if .Strong}} class="strong"{{end}}><span>{{.Label}}</span><span>{{.Value}}</span></div>
    {{end}}
  </section>

  {{with .Notes}}<section class="notes">
    <p class="heading">{{icon .Icon .Heading}}</p>
    {{range .Lines}}<p class="muted">{{.}}</p>{{end}}
  </section>{{end}}
</article>
</body>
</html>
`))

// HTML writes the layout as a standalone, print-ready page
func HTML(w io.Writer, l Layout) error {
	if err := htmlTemplate.Execute(w, l); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}

func cssBorder(b Border) template.CSS {
	switch b {
	case BorderThick:
		return "4px solid var(--primary)"
	case BorderDouble:
		return "6px double var(--primary)"
	case BorderHidden:
		return "none"
	default:
		return "1px solid #e5e7eb"
	}
}
