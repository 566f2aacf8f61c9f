package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/braunma/rack-layout/internal/constants"
	"github.com/braunma/rack-layout/pkg/dragdrop"
	rackerr "github.com/braunma/rack-layout/pkg/errors"
	"github.com/braunma/rack-layout/pkg/geometry"
	"github.com/braunma/rack-layout/pkg/ingest"
	"github.com/braunma/rack-layout/pkg/models"
	"github.com/braunma/rack-layout/pkg/overlap"
	"github.com/braunma/rack-layout/pkg/scene"
	"github.com/braunma/rack-layout/pkg/state"
	"github.com/braunma/rack-layout/pkg/utils"
	"github.com/braunma/rack-layout/pkg/workbook"
)

func newImportCmd() *cobra.Command {
	var showRejections bool

	cmd := &cobra.Command{
		Use:   "import <workbook>",
		Short: "Import a cabinet workbook (.xlsx or .yaml), replacing the current layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.open(); err != nil {
				return err
			}

			a.logger.Info("Importing %s...", args[0])
			builder := ingest.NewBuilder(a.cfg.IngestOptions(), a.logger)
			runner := ingest.NewRunner(builder, a.store, a.logger)

			result, err := runner.Run(cmd.Context(), ingest.FileOpener(args[0]))
			if err != nil {
				a.logger.Error("Import failed, previous layout kept", fmt.Errorf("%s", rackerr.UserMessage(err)))
				return err
			}

			for _, w := range result.Warnings {
				a.logger.Warning("%s: %s", w.Code, w.Message)
			}
			if len(result.Rejections) > 0 {
				a.logger.Warning("%d rows rejected", len(result.Rejections))
				if showRejections || a.logger.Verbose() {
					for _, r := range result.Rejections {
						a.logger.Warning("  %v", r)
					}
				}
			}

			if err := a.save(); err != nil {
				return err
			}

			a.logger.Success("Imported %d cabinets with %d devices from %s", len(result.Cabinets), result.Accepted(), result.Source)
			reportOverlaps(a, a.store.Overlaps())
			return nil
		},
	}

	cmd.Flags().BoolVar(&showRejections, "show-rejections", false, "List every rejected row")
	return cmd
}

func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <cabinet> <x> <y>",
		Short: "Set a cabinet's floor-plan position (clamped into the design area)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.open(); err != nil {
				return err
			}

			x, err := parseCoordinate("x", args[1])
			if err != nil {
				return err
			}
			y, err := parseCoordinate("y", args[2])
			if err != nil {
				return err
			}

			p, err := a.store.UpdatePosition(args[0], models.Point{X: x, Y: y})
			if err != nil {
				a.logger.Error("Move failed", err)
				return err
			}
			if err := a.save(); err != nil {
				return err
			}

			a.logger.Success("Moved %s to (%g, %g)", args[0], p.X, p.Y)
			reportOverlaps(a, a.store.Overlaps())
			return nil
		},
	}
}

func newDropCmd() *cobra.Command {
	var offsetX, offsetY, originX, originY string

	cmd := &cobra.Command{
		Use:   "drop <cabinet> <pointer-x> <pointer-y>",
		Short: "Apply a drag-and-drop gesture: snap to the grid and clamp into the area",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.open(); err != nil {
				return err
			}

			payload, err := dragdrop.ParsePayload(map[string]string{
				constants.PayloadCabinetID: args[0],
				constants.PayloadOffsetX:   offsetX,
				constants.PayloadOffsetY:   offsetY,
			})
			if err != nil {
				a.logger.Error("Invalid drag payload", err)
				return err
			}

			px, err := parseCoordinate("pointer-x", args[1])
			if err != nil {
				return err
			}
			py, err := parseCoordinate("pointer-y", args[2])
			if err != nil {
				return err
			}
			ox, err := parseCoordinate("origin-x", originX)
			if err != nil {
				return err
			}
			oy, err := parseCoordinate("origin-y", originY)
			if err != nil {
				return err
			}

			p, err := a.store.Drop(payload, models.Point{X: px, Y: py}, models.Point{X: ox, Y: oy})
			if err != nil {
				a.logger.Error("Drop ignored", err)
				return err
			}
			if err := a.save(); err != nil {
				return err
			}

			a.logger.Success("Dropped %s at (%g, %g)", payload.CabinetID, p.X, p.Y)
			reportOverlaps(a, a.store.Overlaps())
			return nil
		},
	}

	cmd.Flags().StringVar(&offsetX, "offset-x", "0", "Pointer offset inside the cabinet when the drag started")
	cmd.Flags().StringVar(&offsetY, "offset-y", "0", "Pointer offset inside the cabinet when the drag started")
	cmd.Flags().StringVar(&originX, "origin-x", "0", "Design area origin in pointer coordinates")
	cmd.Flags().StringVar(&originY, "origin-y", "0", "Design area origin in pointer coordinates")
	return cmd
}

func newOverlapsCmd() *cobra.Command {
	var failOnOverlap bool

	cmd := &cobra.Command{
		Use:   "overlaps",
		Short: "List cabinets whose footprints overlap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.open(); err != nil {
				return err
			}

			pairs := overlap.Pairs(a.store.Cabinets(), a.cfg.Floor.Footprint)
			if len(pairs) == 0 {
				a.logger.Success("No overlapping cabinets")
				return nil
			}

			for _, p := range pairs {
				a.logger.Warning("%s overlaps %s", p.A, p.B)
			}
			if failOnOverlap {
				return fmt.Errorf("%d overlapping pairs", len(pairs))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnOverlap, "fail", false, "Exit non-zero when any cabinets overlap")
	return cmd
}

func newSceneCmd() *cobra.Command {
	var format, output, view, tab string

	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Export the render scene (floor plan, elevations and 3D placement)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.open(); err != nil {
				return err
			}

			if view != "" {
				if err := a.store.SetViewMode(state.ViewMode(view)); err != nil {
					return err
				}
			}
			if tab != "" {
				if err := a.store.SetActiveTab(tab); err != nil {
					return err
				}
			}

			s := scene.FromStore(a.store, a.cfg.SceneOptions())

			if output == "" {
				return scene.Encode(cmd.OutOrStdout(), s, format)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()

			if err := scene.Encode(f, s, formatFor(format, output)); err != nil {
				return err
			}
			a.logger.Success("Wrote scene with %d cabinets to %s", len(s.Cabinets), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json or yaml (default from --output extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&view, "view", "", "View mode to record in the scene: 2d or 3d")
	cmd.Flags().StringVar(&tab, "tab", "", "Active tab: design or a cabinet id")
	return cmd
}

func newCapacityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capacity",
		Short: "Show rack-unit usage per cabinet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.open(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			red := color.New(color.FgRed).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			bold := color.New(color.Bold).SprintFunc()

			fmt.Fprintf(out, "%s\n", bold(fmt.Sprintf("%-20s %8s %6s %6s %6s", "CABINET", "USED", "USAGE", "FRONT", "REAR")))
			for _, c := range a.store.Cabinets() {
				used := fmt.Sprintf("%d/%d", geometry.UsedU(c), constants.MaxU)
				line := fmt.Sprintf("%-20s %8s %5.0f%% %6d %6d", c.DisplayName(), used, geometry.UsageRatio(c)*100,
					len(geometry.FaceDevices(c, models.FaceFront)), len(geometry.FaceDevices(c, models.FaceRear)))
				if geometry.ExceedsCapacity(c) {
					line = red(line + fmt.Sprintf("  over by %dU", geometry.Overflow(c)))
				}
				fmt.Fprintln(out, line)

				for _, d := range c.Devices {
					if d.Oversized {
						fmt.Fprintln(out, yellow(fmt.Sprintf("  %s %s+%dU extends past %s", d.BrandModel,
							utils.FormatU(d.StartU), d.USize, utils.FormatU(constants.MaxU))))
					}
				}
			}
			return nil
		},
	}
}

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template <path>",
		Short: "Write an example workbook (.xlsx or .yaml) to start from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.NewLoggerTo(verbose, cmd.OutOrStdout(), cmd.ErrOrStderr())

			path := args[0]
			if filepath.Ext(path) == "" {
				path += constants.DefaultWorkbookExt
			}

			format, err := workbook.DetectFormat(path)
			if err != nil {
				logger.Error("Cannot write template", err)
				return err
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer f.Close()

			sheets := templateSheets()
			switch format {
			case workbook.FormatXLSX:
				err = workbook.WriteXLSX(f, sheets)
			default:
				err = workbook.WriteYAML(f, sheets)
			}
			if err != nil {
				return err
			}

			logger.Success("Wrote template %s", path)
			return nil
		},
	}
}

// templateSheets is a two-cabinet example covering both faces and an oversized device
func templateSheets() []workbook.Sheet {
	header := []string{constants.StartUColumn, constants.USizeColumn, constants.FaceColumn, constants.BrandModelColumns[1]}
	return []workbook.Sheet{
		{
			Name: constants.LocationSheetName,
			Rows: [][]string{
				{constants.GroupColumnHeader, "Slot 1", "Slot 2"},
				{"1", "C01", "C02"},
			},
		},
		{
			Name: "C01",
			Rows: [][]string{
				header,
				{"1", "2", "front", "Server X1"},
				{"5", "4", "rear", "Storage Array Z"},
				{"12", "1", "front", "Switch S1"},
			},
		},
		{
			Name: "C02",
			Rows: [][]string{
				header,
				{"1", "1", "front", "Patch Panel"},
				{"40", "5", "front", "UPS"},
			},
		},
	}
}

// reportOverlaps prints the current overlap set
func reportOverlaps(a *app, set overlap.Set) {
	if set.Len() == 0 {
		return
	}
	a.logger.Warning("%d cabinets overlap: %v", set.Len(), set.IDs())
}

func parseCoordinate(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v, nil
}

// formatFor picks the scene format from the flag, then the output extension
func formatFor(flag, output string) string {
	if flag != "" {
		return flag
	}
	switch filepath.Ext(output) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}
