// dxfmeasure computes measurement and quoting metrics for 2D cut drawings.
//
// Reads a DXF file and prints a measurement record as JSON: bounding
// dimensions (axis-aligned, minimum-area oriented, min-max rectangle,
// minimum enclosing square), cut lengths, and pierce connectivity.
// Optionally writes PNG/PDF/XLSX reports.
//
// Build:
//   go build -o dxfmeasure ./cmd/dxfmeasure
//
// Usage:
//   dxfmeasure -unit in -join-tol 0.01 part.dxf
//   dxfmeasure -png part.png -pdf report.pdf part.dxf

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/piwi3910/dxfmeasure/internal/engine"
	"github.com/piwi3910/dxfmeasure/internal/export"
	"github.com/piwi3910/dxfmeasure/internal/importer"
	"github.com/piwi3910/dxfmeasure/internal/model"
	"github.com/piwi3910/dxfmeasure/internal/project"
	"github.com/piwi3910/dxfmeasure/internal/render"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	unitFlag := flag.String("unit", "", "output unit: mm, in, cm, m (default from config)")
	joinTol := flag.Float64("join-tol", -1, "endpoint merge tolerance in drawing units (default from config)")
	sourceUnit := flag.String("source-unit", "", "override the drawing's source units (mm, in, cm, m)")
	outJSON := flag.String("out", "", "write the measurement record JSON to a file instead of stdout")
	pngPath := flag.String("png", "", "render the drawing to a PNG file")
	pdfPath := flag.String("pdf", "", "write a PDF measurement report")
	xlsxPath := flag.String("xlsx", "", "write an Excel measurement workbook")
	bboxes := flag.Bool("bboxes", false, "PNG: overlay per-entity bounding boxes instead of cut paths")
	inspect := flag.Bool("inspect", false, "print per-entity diagnostics instead of the full record")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if flag.Arg(0) == "" {
		fmt.Fprintln(os.Stderr, "Usage: dxfmeasure [flags] file.dxf")
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := flag.Arg(0)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Warn().Err(err).Msg("cannot load config, using defaults")
		config = model.DefaultAppConfig()
	}

	outUnit := config.DefaultUnit
	if *unitFlag != "" {
		outUnit, err = model.ParseUnit(*unitFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -unit")
		}
	}
	tol := config.DefaultJoinTol
	if *joinTol >= 0 {
		tol = *joinTol
	}

	result := importer.ImportDXF(path)
	for _, w := range result.Warnings {
		log.Warn().Str("file", path).Msg(w)
	}
	for _, e := range result.Errors {
		log.Error().Str("file", path).Msg(e)
	}
	if len(result.Entities) == 0 {
		log.Fatal().Str("file", path).Msg("no measurable entities")
	}

	src := result.Units
	if *sourceUnit != "" {
		src, err = model.ParseUnit(*sourceUnit)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -source-unit")
		}
	}
	log.Debug().
		Int("entities", len(result.Entities)).
		Str("source_units", string(src)).
		Msg("imported drawing")

	m, err := engine.Measure(result.Entities, engine.Options{
		JoinTol:    tol,
		Unit:       outUnit,
		SourceUnit: src,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("measurement failed")
	}
	for _, s := range m.Skipped {
		log.Warn().Int("entity", s.Index).Msg(s.Reason)
	}

	if *pngPath != "" {
		opts := render.DefaultOptions()
		opts.Width = config.RenderWidth
		opts.Height = config.RenderHeight
		opts.ColorPerPierce = true
		opts.JoinTol = tol
		opts.EntityBBoxes = *bboxes
		data, err := render.RenderPNG(result.Entities, opts)
		if err != nil {
			log.Fatal().Err(err).Msg("render failed")
		}
		if err := os.WriteFile(*pngPath, data, 0644); err != nil {
			log.Fatal().Err(err).Msg("cannot write PNG")
		}
		log.Info().Str("path", *pngPath).Msg("wrote PNG")
	}

	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, m, result.Entities); err != nil {
			log.Fatal().Err(err).Msg("PDF export failed")
		}
		log.Info().Str("path", *pdfPath).Msg("wrote PDF report")
	}

	if *xlsxPath != "" {
		if err := export.ExportExcel(*xlsxPath, m); err != nil {
			log.Fatal().Err(err).Msg("Excel export failed")
		}
		log.Info().Str("path", *xlsxPath).Msg("wrote Excel workbook")
	}

	var payload any = m
	if *inspect {
		payload = struct {
			Counts           model.Counts       `json:"counts"`
			NumberOfPierces  int                `json:"number_of_pierces"`
			ConnectedPierces int                `json:"connected_pierces"`
			Components       []model.Component  `json:"components"`
			Entities         []model.EntityInfo `json:"entities"`
		}{m.Counts, m.NumberOfPierces, m.ConnectedPierces, m.Components, m.Entities}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot marshal record")
	}

	if *outJSON != "" {
		if err := os.WriteFile(*outJSON, data, 0644); err != nil {
			log.Fatal().Err(err).Msg("cannot write JSON")
		}
		log.Info().Str("path", *outJSON).Msg("wrote measurement record")
	} else {
		fmt.Println(string(data))
	}

	project.RememberFile(&config, path, 10)
	if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
		log.Debug().Err(err).Msg("cannot save config")
	}
}
