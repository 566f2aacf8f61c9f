// Package ingest turns a workbook into a positioned cabinet collection.
//
// One sheet, matched by name, may hold explicit placements. Every other sheet
// is one cabinet whose data rows are devices. Bad device rows are rejected and
// reported without stopping the import; only an unreadable workbook fails it.
package ingest

import (
	"strings"

	"github.com/google/uuid"

	"github.com/braunma/rack-layout/internal/constants"
	rackerr "github.com/braunma/rack-layout/pkg/errors"
	"github.com/braunma/rack-layout/pkg/geometry"
	"github.com/braunma/rack-layout/pkg/models"
	"github.com/braunma/rack-layout/pkg/normalize"
	"github.com/braunma/rack-layout/pkg/placement"
	"github.com/braunma/rack-layout/pkg/utils"
	"github.com/braunma/rack-layout/pkg/workbook"
)

// Options configures sheet matching, validation and placement
type Options struct {
	LocationSheet string
	LabelColumns  []string
	RearTokens    []string
	Placement     placement.Options
	Floor         geometry.FloorPlan
}

// DefaultOptions returns the built-in import settings
func DefaultOptions() Options {
	return Options{
		LocationSheet: constants.LocationSheetName,
		Placement:     placement.DefaultOptions(),
		Floor:         geometry.DefaultFloorPlan(),
	}
}

// Result is everything one ingestion produced
type Result struct {
	ID         string
	Source     string
	Cabinets   []models.Cabinet
	Rejections []*normalize.Rejection
	Warnings   []*rackerr.Error
}

// Layout returns the result as a layout document
func (r *Result) Layout() models.Layout {
	return models.Layout{
		Source:      r.Source,
		IngestionID: r.ID,
		Cabinets:    r.Cabinets,
	}
}

// Accepted counts the devices that passed validation
func (r *Result) Accepted() int {
	n := 0
	for _, c := range r.Cabinets {
		n += len(c.Devices)
	}
	return n
}

// Builder converts workbooks into results
type Builder struct {
	locationSheet string
	normalizer    *normalize.Normalizer
	resolver      *placement.Resolver
	logger        *utils.Logger
}

// NewBuilder creates a builder
func NewBuilder(opts Options, logger *utils.Logger) *Builder {
	if opts.LocationSheet == "" {
		opts.LocationSheet = constants.LocationSheetName
	}
	if logger == nil {
		logger = utils.Discard()
	}
	return &Builder{
		locationSheet: opts.LocationSheet,
		normalizer:    normalize.NewNormalizer(opts.LabelColumns, opts.RearTokens),
		resolver:      placement.NewResolver(opts.Placement, opts.Floor),
		logger:        logger,
	}
}

// Build reads every sheet of wb. It fails only when a sheet cannot be read.
func (b *Builder) Build(wb workbook.Workbook) (*Result, error) {
	result := &Result{
		ID:     uuid.NewString(),
		Source: wb.Name(),
	}

	locationName, hasLocation := workbook.FindSheet(wb, b.locationSheet)

	var explicit []models.LocationRecord
	if hasLocation {
		rows, err := wb.Rows(locationName)
		if err != nil {
			return nil, rackerr.Wrap(rackerr.ErrCodeIngestionFailure, err, "failed to read sheet %q", locationName)
		}
		records, warnings := b.resolver.ParseLocationSheet(rows)
		explicit = records
		result.Warnings = append(result.Warnings, warnings...)
	} else {
		result.Warnings = append(result.Warnings, rackerr.New(rackerr.ErrCodeMissingPlacementSheet,
			"no %q sheet, cabinets placed on the default grid", b.locationSheet))
	}

	var ids []string
	for _, sheet := range wb.SheetNames() {
		if hasLocation && sheet == locationName {
			continue
		}

		rows, err := wb.Rows(sheet)
		if err != nil {
			return nil, rackerr.Wrap(rackerr.ErrCodeIngestionFailure, err, "failed to read sheet %q", sheet)
		}

		devices, rejections := b.readDevices(sheet, rows)
		result.Rejections = append(result.Rejections, rejections...)
		result.Cabinets = append(result.Cabinets, models.Cabinet{ID: sheet, Name: sheet, Devices: devices})
		ids = append(ids, sheet)

		b.logger.Debug("→ %s: %d devices, %d rejected", sheet, len(devices), len(rejections))
	}

	if len(result.Cabinets) == 0 {
		result.Warnings = append(result.Warnings, rackerr.New(rackerr.ErrCodeEmptyWorkbook,
			"%s contains no cabinet sheets", wb.Name()))
	}

	placements := b.resolver.Resolve(ids, explicit)
	for i := range result.Cabinets {
		p := placements[result.Cabinets[i].ID]
		pos := p.Position
		result.Cabinets[i].Position = &pos
		result.Cabinets[i].Name = p.Name
	}

	for _, rec := range placement.Unmatched(ids, explicit) {
		b.logger.Warning("Location sheet lists %q but no sheet has that name", rec.CabinetID)
	}

	return result, nil
}

// readDevices normalizes the data rows of one cabinet sheet. The first row is
// the header; blank rows are skipped and do not consume a device index.
func (b *Builder) readDevices(cabinetID string, rows [][]string) ([]models.Device, []*normalize.Rejection) {
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var (
		devices    []models.Device
		rejections []*normalize.Rejection
	)
	index := 0
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}

		raw := normalize.RawRow{
			CabinetID: cabinetID,
			Row:       i + 2,
			Index:     index,
			Cells:     cellMap(headers, row),
		}
		index++

		device, rej := b.normalizer.Normalize(raw)
		if rej != nil {
			b.logger.Debug("Rejected %v", rej)
			rejections = append(rejections, rej)
			continue
		}
		devices = append(devices, *device)
	}
	return devices, rejections
}

// cellMap keys a row by header. Unnamed columns are dropped and the first of
// two identically named columns wins.
func cellMap(headers, row []string) map[string]string {
	cells := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if _, exists := cells[h]; exists {
			continue
		}
		if i < len(row) {
			cells[h] = row[i]
		} else {
			cells[h] = ""
		}
	}
	return cells
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
