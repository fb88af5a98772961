// Package export writes measurement results to report formats: a PDF
// quote report with a drawing preview and QR code, and an Excel
// workbook with per-entity detail.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/dxfmeasure/internal/engine"
	"github.com/piwi3910/dxfmeasure/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	tableRowH    = 6.0
	qrSize       = 30.0
	previewTop   = 150.0
)

// unitAbbrev maps units to the short form used on the report.
var unitAbbrev = map[model.Unit]string{
	model.Millimeters: "mm",
	model.Inches:      "in",
	model.Centimeters: "cm",
	model.Meters:      "m",
	model.Unspecified: "units",
}

// ExportPDF generates a one-page measurement report: the metric table,
// a scaled preview of the drawing, and a QR code carrying the full
// measurement record as JSON.
func ExportPDF(path string, m model.Measurement, entities []model.Entity) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight,
		fmt.Sprintf("Measurement Report %s", m.ID), "", 0, "L", false, 0, "")

	u := unitAbbrev[m.Unit]
	rows := [][2]string{
		{"Object width", fmt.Sprintf("%.3f %s", m.ObjectWidth, u)},
		{"Object length", fmt.Sprintf("%.3f %s", m.ObjectLength, u)},
		{"Material area", fmt.Sprintf("%.3f sq in", m.SquareInches)},
		{"OBB", fmt.Sprintf("%.3f x %.3f %s @ %.1f deg", m.OBB.Width, m.OBB.Length, u, m.OBB.AngleDeg)},
		{"Min-max rectangle", fmt.Sprintf("%.3f x %.3f %s @ %.1f deg", m.MinMaxRect.Width, m.MinMaxRect.Length, u, m.MinMaxRect.AngleDeg)},
		{"Min enclosing square", fmt.Sprintf("%.3f %s", m.MinSquareSide, u)},
		{"Total cut length", fmt.Sprintf("%.3f %s", m.TotalLength, u)},
		{"Longest entity", fmt.Sprintf("%.3f %s", m.LongestLength, u)},
		{"Pierces", fmt.Sprintf("%d (%d connected)", m.NumberOfPierces, m.ConnectedPierces)},
		{"Entities", fmt.Sprintf("%d lines, %d arcs, %d circles, %d polylines",
			m.Counts.Lines, m.Counts.Arcs, m.Counts.Circles, m.Counts.Polylines)},
	}

	pdf.SetFont("Helvetica", "", 10)
	y := marginTop + headerHeight + 4
	for _, row := range rows {
		pdf.SetXY(marginLeft, y)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(55, tableRowH, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(pageWidth-marginLeft-marginRight-55-qrSize-5, tableRowH, row[1], "1", 0, "L", false, 0, "")
		y += tableRowH
	}

	if err := drawQR(pdf, m); err != nil {
		return err
	}

	drawPreview(pdf, entities)

	return pdf.OutputFileAndClose(path)
}

// drawQR embeds the measurement record as a QR code in the top-right
// corner so a shop-floor scan pulls up the exact numbers.
func drawQR(pdf *fpdf.Fpdf, m model.Measurement) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal measurement: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", m.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageWidth-marginRight-qrSize, marginTop+headerHeight+4,
		qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// drawPreview renders the cut paths scaled to fit the lower part of the
// page, the same scale-to-fit approach as the on-screen renderer.
func drawPreview(pdf *fpdf.Fpdf, entities []model.Entity) {
	exts, _ := engine.ExtractAll(entities)

	var all []model.Point2D
	for _, x := range exts {
		all = append(all, x.Points...)
	}
	if len(all) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range all {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	drawW := pageWidth - marginLeft - marginRight
	drawH := pageHeight - previewTop - marginBottom
	w := maxX - minX
	h := maxY - minY

	scale := 1.0
	if w > 0 || h > 0 {
		scale = math.Min(drawW/math.Max(w, 1e-9), drawH/math.Max(h, 1e-9))
	}
	offX := marginLeft + (drawW-w*scale)/2
	offY := previewTop + (drawH+h*scale)/2

	px := func(p model.Point2D) (float64, float64) {
		return offX + (p.X-minX)*scale, offY - (p.Y-minY)*scale
	}

	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	for _, x := range exts {
		if x.Points == nil {
			continue
		}
		for j := 0; j < len(x.Points)-1; j++ {
			x0, y0 := px(x.Points[j])
			x1, y1 := px(x.Points[j+1])
			pdf.Line(x0, y0, x1, y1)
		}
		if x.Closed && len(x.Points) > 2 {
			x0, y0 := px(x.Points[len(x.Points)-1])
			x1, y1 := px(x.Points[0])
			pdf.Line(x0, y0, x1, y1)
		}
	}
}
