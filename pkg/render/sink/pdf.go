package sink

import (
	"bytes"
	"strings"

	gofpdf "github.com/lvillar/gofpdf"

	"github.com/brewvino/placecards/pkg/cards"
	"github.com/brewvino/placecards/pkg/errors"
	"github.com/brewvino/placecards/pkg/style"
)

// ============================================================================
// PDF SINK
// ============================================================================

// Vertical anchors for card text, as fractions of the card height. Measured
// from the card's top edge to the text baseline.
const (
	headerAnchor = 0.16
	ruleAnchor   = 0.22
	titleAnchor  = 0.44
	tableAnchor  = 0.58
	timeAnchor   = 0.70
	cornerAnchor = 0.88
)

// ruleIndent is the horizontal inset of the header rule, as a fraction of the
// card width.
const ruleIndent = 0.12

// PDFOption configures the PDF sink.
type PDFOption func(*pdfRenderer)

// WithDocTitle sets the PDF document title metadata.
func WithDocTitle(title string) PDFOption {
	return func(r *pdfRenderer) { r.title = title }
}

// WithDocAuthor sets the PDF document author metadata.
func WithDocAuthor(author string) PDFOption {
	return func(r *pdfRenderer) { r.author = author }
}

type pdfRenderer struct {
	title  string
	author string
}

// RenderPDF draws a computed layout into a PDF document and returns its
// bytes. Every slot becomes one card drawn at its precomputed position; the
// sink adds no placement logic of its own. An empty layout produces a single
// blank page so the output is still a well-formed document.
func RenderPDF(l cards.Layout, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{title: "Placecards"}
	for _, opt := range opts {
		opt(&r)
	}

	pageW := l.Style.PageWidth * cards.PointsPerInch
	pageH := l.Style.PageHeight * cards.PointsPerInch
	if len(l.Pages) > 0 {
		pageW = l.Pages[0].Width
		pageH = l.Pages[0].Height
	}

	pdf := gofpdf.NewDocument(
		gofpdf.WithUnit(gofpdf.UnitPoint),
		gofpdf.WithPageSizeCustom(pageW, pageH),
	)
	pdf.SetTitle(r.title, true)
	if r.author != "" {
		pdf.SetAuthor(r.author, true)
	}
	pdf.SetAutoPageBreak(false, 0)

	family := coreFont(l.Style.FontFamily)
	cardW := l.Style.CardWidth * cards.PointsPerInch
	cardH := l.Style.CardHeight * cards.PointsPerInch

	if len(l.Pages) == 0 {
		pdf.AddPage()
	}
	for _, page := range l.Pages {
		pdf.AddPage()
		for _, slot := range page.Slots {
			drawCard(pdf, slot, l.Style, family, cardW, cardH)
		}
	}

	if pdf.Err() {
		return nil, errors.Wrap(errors.ErrCodeInternal, pdf.Error(), "render pdf")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return buf.Bytes(), nil
}

// drawCard draws one placecard with its top-left corner at the slot position.
func drawCard(pdf *gofpdf.Fpdf, slot cards.Slot, st style.Resolved, family string, w, h float64) {
	x, y := slot.X, slot.Y
	c := slot.Content

	fill(pdf, st.BackgroundColor)
	pdf.Rect(x, y, w, h, "F")
	if st.Border {
		draw(pdf, st.BorderColor)
		pdf.SetLineWidth(1)
		pdf.Rect(x, y, w, h, "D")
	}

	// Header banner and rule.
	pdf.SetFont(family, "B", c.ContentSize)
	text(pdf, st.Accent, c.Header, x, y+h*headerAnchor, w, alignCenter)

	draw(pdf, st.Secondary)
	pdf.SetLineWidth(0.75)
	pdf.Line(x+w*ruleIndent, y+h*ruleAnchor, x+w*(1-ruleIndent), y+h*ruleAnchor)

	// Guest name.
	pdf.SetFont(family, "B", c.TitleSize)
	text(pdf, st.Primary, c.Title, x, y+h*titleAnchor, w, alignCenter)

	// Table and time lines.
	pdf.SetFont(family, "", c.ContentSize)
	text(pdf, st.Secondary, c.Table, x, y+h*tableAnchor, w, alignCenter)
	text(pdf, st.Accent, c.Time, x, y+h*timeAnchor, w, alignCenter)

	// Corner labels.
	pdf.SetFont(family, "", c.ContentSize-2)
	text(pdf, st.Secondary, c.Left, x, y+h*cornerAnchor, w, alignLeft)
	text(pdf, st.Secondary, c.Right, x, y+h*cornerAnchor, w, alignRight)
}

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// text draws a single line within a card-wide band, skipping empty strings.
// The inset keeps corner labels off the card border.
func text(pdf *gofpdf.Fpdf, color style.RGB, s string, x, baseline, w float64, a align) {
	if s == "" {
		return
	}
	pdf.SetTextColor(int(color.R), int(color.G), int(color.B))

	const inset = 12.0
	tx := x + inset
	switch a {
	case alignCenter:
		tx = x + (w-pdf.GetStringWidth(s))/2
	case alignRight:
		tx = x + w - inset - pdf.GetStringWidth(s)
	}
	pdf.Text(tx, baseline, s)
}

func fill(pdf *gofpdf.Fpdf, c style.RGB) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func draw(pdf *gofpdf.Fpdf, c style.RGB) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

// coreFont maps a configured font family onto one of the PDF core fonts.
// Unknown families fall back to Helvetica rather than failing the run.
func coreFont(family string) string {
	switch strings.ToLower(family) {
	case "times", "times-roman", "times new roman":
		return "Times"
	case "courier", "courier new":
		return "Courier"
	default:
		return "Helvetica"
	}
}
