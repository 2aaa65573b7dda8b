// Package report renders scan results as downloadable documents.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/watchdog/watchdog/internal/core"
)

// ContentType is the MIME type written by Render.
const ContentType = "application/pdf"

// Filename returns the suggested download name for res.
func Filename(res core.ScanResult) string {
	ts := res.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return "watchdog-report-" + ts.Format("20060102-150405") + ".pdf"
}

func levelColor(level core.RiskLevel) (int, int, int) {
	switch level {
	case core.RiskHigh:
		return 0xef, 0x44, 0x44
	case core.RiskMedium:
		return 0xf5, 0x9e, 0x0b
	default:
		return 0x10, 0xb9, 0x81
	}
}

// Render writes res to w as an A4 PDF.
func Render(w io.Writer, res core.ScanResult) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("WatchDog exposure report", true)
	pdf.SetCreator("WatchDog", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "WatchDog Exposure Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0x55, 0x55, 0x55)
	pdf.CellFormat(0, 6, tr("Email: "+res.Email), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Scanned: "+res.Timestamp.UTC().Format(time.RFC1123), "", 1, "L", false, 0, "")
	if res.ID != "" {
		pdf.CellFormat(0, 6, "Scan ID: "+res.ID, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	r, g, b := levelColor(res.RiskLevel)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(0, 10, fmt.Sprintf("Risk score: %d / 100  (%s RISK)", res.RiskScore, res.RiskLevel), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)

	section(pdf, "Analysis")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(res.Explanation), "", "L", false)
	if res.AIModel != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(0x77, 0x77, 0x77)
		pdf.CellFormat(0, 6, tr("Source: "+res.AIModel), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	section(pdf, "Platforms detected ("+strconv.Itoa(len(res.Platforms))+")")
	pdf.SetFont("Helvetica", "", 11)
	if len(res.Platforms) == 0 {
		pdf.CellFormat(0, 6, "No platforms detected. Minimal public exposure.", "", 1, "L", false, 0, "")
	}
	for _, p := range res.Platforms {
		pdf.CellFormat(0, 6, tr("- "+p), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, "Recommendations")
	pdf.SetFont("Helvetica", "", 11)
	for i, rec := range res.Recommendations {
		pdf.MultiCell(0, 6, tr(strconv.Itoa(i+1)+". "+rec), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.Ln(2)
}
