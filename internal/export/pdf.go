package export

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"
	"time"
)

//go:embed templates/quote_pdf.html
var templates embed.FS

// QuotePayload aggregates everything the quote document renders.
type QuotePayload struct {
	ClientName string
	Lines      []QuoteLine
	GrandTotal float64
}

// QuoteLine is one row of the quote table.
type QuoteLine struct {
	Name      string
	Brand     string
	UnitPrice float64
	Quantity  int
	Subtotal  float64
}

// PDFExporter wraps Gotenberg interactions for quote PDF generation.
type PDFExporter struct {
	Endpoint  string
	Client    *http.Client
	templates *template.Template
}

// NewPDFExporter creates a PDFExporter with parsed templates.
func NewPDFExporter(endpoint string, client *http.Client) (*PDFExporter, error) {
	funcMap := template.FuncMap{
		"formatMoney": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		"now": func() string {
			return time.Now().Format("02/01/2006")
		},
	}

	tpl, err := template.New("quote_pdf.html").Funcs(funcMap).ParseFS(
		templates, "templates/quote_pdf.html",
	)
	if err != nil {
		return nil, fmt.Errorf("parse quote template: %w", err)
	}

	return &PDFExporter{
		Endpoint:  endpoint,
		Client:    client,
		templates: tpl,
	}, nil
}

// RenderQuote sends the quote HTML to Gotenberg and returns the PDF bytes.
func (p *PDFExporter) RenderQuote(ctx context.Context, payload QuotePayload) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf exporter not initialized")
	}
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	html, err := p.buildQuoteHTML(payload)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "quote.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"paperWidth":   "8.27",
		"paperHeight":  "11.69",
		"marginTop":    "0.5",
		"marginBottom": "0.5",
		"marginLeft":   "0.5",
		"marginRight":  "0.5",
		"waitDelay":    "100",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}

	return io.ReadAll(resp.Body)
}

func (p *PDFExporter) buildQuoteHTML(payload QuotePayload) (string, error) {
	if p.templates == nil {
		return "", fmt.Errorf("templates not initialized")
	}

	buf := &bytes.Buffer{}
	if err := p.templates.ExecuteTemplate(buf, "quote_pdf.html", payload); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var filenameSanitizer = regexp.MustCompile(`[^A-Za-z0-9]`)

// QuotePDFFilename names the download after the client, with anything outside
// [A-Za-z0-9] replaced by an underscore. An unnamed client becomes
// "Desconocido".
func QuotePDFFilename(clientName string) string {
	name := strings.TrimSpace(clientName)
	if name == "" {
		name = "Desconocido"
	}
	return "Cotizacion_" + filenameSanitizer.ReplaceAllString(name, "_") + ".pdf"
}
