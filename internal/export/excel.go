package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/dxfmeasure/internal/model"
)

// ExportExcel writes the measurement record as an Excel workbook with a
// Summary sheet and a per-entity Entities sheet.
func ExportExcel(path string, m model.Measurement) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}

	u := unitAbbrev[m.Unit]
	summaryRows := [][2]interface{}{
		{"Record ID", m.ID},
		{"Unit", string(m.Unit)},
		{fmt.Sprintf("Object width (%s)", u), m.ObjectWidth},
		{fmt.Sprintf("Object length (%s)", u), m.ObjectLength},
		{"Square inches", m.SquareInches},
		{fmt.Sprintf("OBB width (%s)", u), m.OBB.Width},
		{fmt.Sprintf("OBB length (%s)", u), m.OBB.Length},
		{"OBB angle (deg)", m.OBB.AngleDeg},
		{fmt.Sprintf("Min-max rect width (%s)", u), m.MinMaxRect.Width},
		{fmt.Sprintf("Min-max rect length (%s)", u), m.MinMaxRect.Length},
		{fmt.Sprintf("Min enclosing square side (%s)", u), m.MinSquareSide},
		{fmt.Sprintf("Total cut length (%s)", u), m.TotalLength},
		{fmt.Sprintf("Max edge length (%s)", u), m.LongestLength},
		{"Number of pierces", m.NumberOfPierces},
		{"Connected pierces", m.ConnectedPierces},
		{"Lines", m.Counts.Lines},
		{"Arcs", m.Counts.Arcs},
		{"Circles", m.Counts.Circles},
		{"Polylines", m.Counts.Polylines},
	}
	for i, row := range summaryRows {
		cellA, _ := excelize.CoordinatesToCellName(1, i+1)
		cellB, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(summary, cellA, row[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summary, cellB, row[1]); err != nil {
			return err
		}
	}

	const sheet = "Entities"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []interface{}{"Index", "Type", "Layer", "Vertices",
		fmt.Sprintf("Length (%s)", u), "Closed", "Component"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, e := range m.Entities {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{e.Index, string(e.Type), e.Layer, e.Vertices, e.Length, e.Closed, e.Component}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
