package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateNames = map[string]string{
	TargetGo:         "products.go.tmpl",
	TargetTypeScript: "products.ts.tmpl",
}

// Generator renders products into a typed source file for the storefront.
type Generator struct {
	settings  RenderSettings
	templates *template.Template
}

type renderData struct {
	Source   string
	Package  string
	Products []renderedProduct
}

type renderedProduct struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Price       string
	Stock       int
	Featured    bool
	Category    string
	Image       string
	Origin      string
	StoneType   string
	Weight      string
}

func NewGenerator(settings RenderSettings) (*Generator, error) {
	if _, ok := templateNames[settings.Target]; !ok {
		return nil, fmt.Errorf("unknown render target %q", settings.Target)
	}

	funcs := sprig.TxtFuncMap()
	funcs["goString"] = strconv.Quote
	funcs["tsString"] = tsString

	templates, err := template.New("catalog").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Generator{
		settings:  settings,
		templates: templates,
	}, nil
}

// Run renders products in the order given. source names the file or
// database the products came from and ends up in the header comment.
func (g *Generator) Run(products []Product, source string) ([]byte, error) {
	data := renderData{
		Source:   source,
		Package:  g.settings.Package,
		Products: make([]renderedProduct, 0, len(products)),
	}
	for _, p := range products {
		data.Products = append(data.Products, g.render(p))
	}

	var buf bytes.Buffer
	if err := g.templates.ExecuteTemplate(&buf, templateNames[g.settings.Target], data); err != nil {
		return nil, fmt.Errorf("failed to render %s catalog: %w", g.settings.Target, err)
	}

	if g.settings.Target != TargetGo {
		return buf.Bytes(), nil
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated Go source: %w", err)
	}
	return out, nil
}

func (g *Generator) render(p Product) renderedProduct {
	r := renderedProduct{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Title,
		Description: truncate(strings.ReplaceAll(p.Description, "\n", " "), g.settings.DescriptionLimit),
		Price:       p.Price.String(),
		Stock:       p.Stock,
		Featured:    p.Featured,
		Category:    string(p.Category),
		Origin:      string(p.Origin),
		StoneType:   string(p.StoneType),
	}

	if p.ImageFilename != "" {
		r.Image = g.settings.ImagePrefix + p.ImageFilename
	}
	if p.Weight.Valid {
		r.Weight = p.Weight.Decimal.String()
	}

	return r
}

// tsString quotes s as a JavaScript string literal.
func tsString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
