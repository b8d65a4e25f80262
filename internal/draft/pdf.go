package draft

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// ErrDraftNotGenerated is returned when a PDF is requested for anything
// other than a SUCCESS draft.
var ErrDraftNotGenerated = errors.New("draft: cannot render PDF for a draft that was not generated successfully")

// RenderPDF renders the same ordered sections as the text draft into a
// styled A4 document. The section order and contents must track the text
// rendering exactly; only presentation differs.
func RenderPDF(result Result) ([]byte, error) {
	if result.Status != StatusSuccess {
		return nil, ErrDraftNotGenerated
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("LC Pre-Draft "+result.LCNumber, false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()

	// header banner
	pdf.SetFillColor(16, 46, 94)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "IRREVOCABLE DOCUMENTARY CREDIT - PRE-DRAFT", "", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 7, result.LCNumber+"  |  Issued "+result.IssueDate, "", 1, "C", true, 0, "")
	pdf.Ln(4)

	for _, section := range result.Sections {
		pdf.SetTextColor(16, 46, 94)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, section.Title, "B", 1, "L", false, 0, "")
		pdf.Ln(1)

		pdf.SetTextColor(0, 0, 0)
		for _, field := range section.Fields {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(60, 6, field.Label, "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(0, 6, field.Value, "", "L", false)
		}
		pdf.SetFont("Helvetica", "", 9)
		for _, paragraph := range section.Paragraphs {
			pdf.MultiCell(0, 5, paragraph, "", "L", false)
			pdf.Ln(1)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(0, 4, "Generated by the LC issuance system. Not a negotiable instrument.", "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PDFFileName builds the deterministic artifact name for a stored draft
// PDF from the sanitized reference and the issue date.
func PDFFileName(reference, issueDate string) string {
	return fmt.Sprintf("LC_%s_%s.pdf", sanitizeFileName(reference), sanitizeFileName(issueDate))
}

func sanitizeFileName(value string) string {
	out := make([]rune, 0, len(value))
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
