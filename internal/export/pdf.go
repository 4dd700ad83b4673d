package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ===== layout (mm) =====

const (
	marginLeft   = 14.0
	marginTop    = 14.0
	marginBottom = 14.0
	titleY       = 22.0
	subtitleY    = 30.0
	tableY       = 38.0
	headerHeight = 8.0
	rowHeight    = 20.0 // minimum; rows grow with wrapped text
	lineHeight   = 4.5
	cellPadding  = 1.5
	imageWidth   = 35.0
	imageHeight  = 15.0
	fontFamily   = "Helvetica"
)

type column struct {
	title string
	width float64
	align string
}

// index, name, position, organization, date, signature
var columns = []column{
	{"#", 10, "CM"},
	{"Participante", 40, "LM"},
	{"Cargo", 32, "LM"},
	{"Empresa", 34, "LM"},
	{"Fecha", 26, "CM"},
	{"Firma", 40, "CM"},
}

const signatureCol = 5

var (
	headerFill = [3]int{30, 41, 59}
	headerText = [3]int{255, 255, 255}
)

// PDF lays the roster out as an A4 table with one signature image per row.
type PDF struct {
	// core fonts only understand Windows-1252
	enc *encoding.Encoder
}

func NewPDF() *PDF {
	return &PDF{enc: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())}
}

func (p *PDF) ContentType() string { return "application/pdf" }

func (p *PDF) Render(ctx context.Context, doc Document, w io.Writer) error {
	if err := doc.validate(); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginLeft)
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetModificationDate(doc.GeneratedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("registro-asistencia", true)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(marginLeft, titleY, p.tr("Registro de Asistencia: "+doc.Title))
	pdf.SetFontSize(11)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(marginLeft, subtitleY, p.tr("Fecha de exportación: "+doc.GeneratedAt.Format(DateLayout)))

	_, pageHeight := pdf.GetPageSize()
	limit := pageHeight - marginBottom

	pdf.SetY(tableY)
	p.header(pdf)
	for i, row := range doc.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		pdf.SetFont(fontFamily, "", 9)
		cells, height := p.layout(pdf, i, row)
		if pdf.GetY()+height > limit {
			pdf.AddPage()
			pdf.SetY(marginTop)
			p.header(pdf)
		}
		p.row(pdf, i, row, cells, height)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrRenderFault, err)
	}
	return pdf.Output(w)
}

func (p *PDF) header(pdf *fpdf.Fpdf) {
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(headerText[0], headerText[1], headerText[2])
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetX(marginLeft)
	for _, c := range columns {
		pdf.CellFormat(c.width, headerHeight, p.tr(c.title), "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(headerHeight)
}

// layout wraps every text cell to its column and returns the lines per
// column together with the resulting row height.
func (p *PDF) layout(pdf *fpdf.Fpdf, i int, r Row) ([][]string, float64) {
	texts := []string{strconv.Itoa(i + 1), r.ParticipantName, r.ParticipantPosition, r.ParticipantEmpresa, r.TrainingDate, ""}
	cells := make([][]string, len(columns))
	height := rowHeight
	for ci, c := range columns {
		if ci == signatureCol || texts[ci] == "" {
			continue
		}
		lines := pdf.SplitText(p.tr(texts[ci]), c.width-2*cellPadding)
		cells[ci] = lines
		if h := float64(len(lines))*lineHeight + 2*cellPadding; h > height {
			height = h
		}
	}
	return cells, height
}

func (p *PDF) row(pdf *fpdf.Fpdf, i int, r Row, cells [][]string, height float64) {
	pdf.SetFont(fontFamily, "", 9)
	pdf.SetTextColor(0, 0, 0)

	x, y := marginLeft, pdf.GetY()
	for ci, c := range columns {
		pdf.Rect(x, y, c.width, height, "D")
		lines := cells[ci]
		ty := y + (height-float64(len(lines))*lineHeight)/2
		for li, line := range lines {
			pdf.SetXY(x, ty+float64(li)*lineHeight)
			pdf.CellFormat(c.width, lineHeight, line, "", 0, c.align, false, 0, "")
		}
		if ci == signatureCol {
			p.signature(pdf, fmt.Sprintf("firma-%d", i), r.Signature, x, y, c.width, height)
		}
		x += c.width
	}
	pdf.SetXY(marginLeft, y+height)
}

// signature centers the image inside the cell at (x, y). Undecodable
// images leave the cell blank.
func (p *PDF) signature(pdf *fpdf.Fpdf, name string, img []byte, x, y, width, height float64) {
	if len(img) == 0 {
		return
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
	if !pdf.Ok() {
		pdf.ClearError()
		return
	}
	ix := x + (width-imageWidth)/2
	iy := y + (height-imageHeight)/2
	pdf.ImageOptions(name, ix, iy, imageWidth, imageHeight, false, opts, 0, "")
}

func (p *PDF) tr(s string) string {
	out, err := p.enc.String(s)
	if err != nil {
		return s
	}
	return out
}
