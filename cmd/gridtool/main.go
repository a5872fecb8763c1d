// gridtool is a CLI utility for inspecting level collision grids.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/Faultbox/tilecollide/internal/collision"
	"github.com/Faultbox/tilecollide/internal/engine/debug"
	"github.com/Faultbox/tilecollide/internal/logger"
	"github.com/Faultbox/tilecollide/pkg/level"
	"github.com/Faultbox/tilecollide/pkg/math"
	"github.com/Faultbox/tilecollide/pkg/tile"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "dump":
		cmdDump(args)
	case "sweep":
		cmdSweep(args)
	case "clear":
		cmdClear(args)
	case "png":
		cmdPNG(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gridtool - tile collision grid utility

Usage:
  gridtool <command> [options] <level> [args]

Commands:
  info <level>                       Show grid dimensions and tile counts
  dump [-color] <level>              Print the grid as ASCII, top row first
  sweep <level> x0 y0 x1 y1          Sweep a circle and print where it stops
  clear <level> x y                  Test whether a circle fits at a point
  png <level> <out.png>              Render the walkability overlay to an image

Common options:
  -cell-size 32   Cell size in world units
  -cols 25        Layout columns (origin is centred on cols x rows)
  -rows 18        Layout rows
  -format ""      Level format: tmx, yaml, gat (default: from extension)
  -r 16           Circle radius (sweep, clear)
  -v              Log build details

Examples:
  gridtool info maps/meadow.tmx
  gridtool dump -cell-size 16 maps/island.yaml
  gridtool sweep -r 12 maps/island.yaml -100 0 100 0
  gridtool png maps/meadow.tmx meadow.png`)
}

// gridFlags are the options shared by every command.
type gridFlags struct {
	cellSize *float64
	cols     *int
	rows     *int
	format   *string
	radius   *float64
	verbose  *bool
}

func newFlagSet(name string) (*flag.FlagSet, *gridFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	gf := &gridFlags{
		cellSize: fs.Float64("cell-size", 32, "Cell size in world units"),
		cols:     fs.Int("cols", 25, "Layout columns"),
		rows:     fs.Int("rows", 18, "Layout rows"),
		format:   fs.String("format", "", "Level format (tmx, yaml, gat)"),
		radius:   fs.Float64("r", 16, "Circle radius"),
		verbose:  fs.Bool("v", false, "Log build details"),
	}
	return fs, gf
}

// loadGrid builds the collision grid for the level at path.
func loadGrid(gf *gridFlags, path string) (*collision.Grid, *collision.Builder) {
	if *gf.verbose {
		if err := logger.Init("debug", ""); err != nil {
			fatal(err)
		}
	}

	layout := collision.CenteredLayout(float32(*gf.cellSize), *gf.cols, *gf.rows)
	src, err := level.Open(path, level.Format(strings.ToLower(*gf.format)), layout)
	if err != nil {
		fatal(err)
	}
	placements, err := src.Placements()
	if err != nil {
		fatal(err)
	}

	builder := collision.NewBuilder(layout)
	grid, err := builder.Build(placements)
	if err != nil {
		fatal(fmt.Errorf("building %s: %w", path, err))
	}
	return grid, builder
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func parseFloats(args []string) []float32 {
	out := make([]float32, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 32)
		if err != nil {
			fatal(fmt.Errorf("invalid number %q", a))
		}
		out[i] = float32(v)
	}
	return out
}

func cmdInfo(args []string) {
	fs, gf := newFlagSet("info")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gridtool info <level>")
		os.Exit(1)
	}

	grid, builder := loadGrid(gf, fs.Arg(0))
	stats := builder.Stats()
	min, max := grid.Bounds()

	fmt.Printf("Level:      %s\n", fs.Arg(0))
	fmt.Printf("Grid:       %d x %d cells of %.1f\n", grid.Width(), grid.Height(), grid.CellSize())
	fmt.Printf("Origin:     (%.1f, %.1f)\n", grid.Origin().X, grid.Origin().Y)
	fmt.Printf("Bounds:     (%.1f, %.1f) - (%.1f, %.1f)\n", min.X, min.Y, max.X, max.Y)
	fmt.Printf("Placements: %d (%d stacked)\n", stats.Placements, stats.Stacked)
	fmt.Printf("Shore:      %d cells derived\n", stats.Shore)
	fmt.Println()
	fmt.Println("Cells by tile:")

	for _, s := range sortedCounts(grid.CountByCategory()) {
		walk := "blocked"
		if s.category.IsWalkable() {
			walk = "walkable"
		}
		fmt.Printf("  %-13s %5d  %s\n", s.category, s.count, walk)
	}
}

type categoryCount struct {
	category tile.Category
	count    int
}

// sortedCounts orders counts by count descending, then category.
func sortedCounts(counts map[tile.Category]int) []categoryCount {
	stats := make([]categoryCount, 0, len(counts))
	for c, n := range counts {
		stats = append(stats, categoryCount{c, n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].category < stats[j].category
	})
	return stats
}

func cmdDump(args []string) {
	fs, gf := newFlagSet("dump")
	color := fs.Bool("color", false, "Color cells by tile")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gridtool dump <level>")
		os.Exit(1)
	}

	grid, _ := loadGrid(gf, fs.Arg(0))
	if *color {
		fmt.Print(renderStyled(grid))
	} else {
		fmt.Print(renderASCII(grid))
	}
	fmt.Println()
	fmt.Println(legend())
}

var glyphs = map[tile.Category]byte{
	tile.Empty:       ' ',
	tile.Dirt:        '.',
	tile.Grass:       ',',
	tile.YellowGrass: ';',
	tile.Shore:       ':',
	tile.Water:       '~',
	tile.Tree:        'T',
	tile.Rock:        '#',
}

func glyph(c tile.Category) byte {
	if g, ok := glyphs[c]; ok {
		return g
	}
	return '?'
}

// renderASCII draws one character per cell with the highest row first.
func renderASCII(grid *collision.Grid) string {
	var sb strings.Builder
	for y := grid.Height() - 1; y >= 0; y-- {
		for x := 0; x < grid.Width(); x++ {
			c, _ := grid.Tile(x, y)
			sb.WriteByte(glyph(c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var styles = map[tile.Category]lipgloss.Style{
	tile.Dirt:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	tile.Grass:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	tile.YellowGrass: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	tile.Shore:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	tile.Water:       lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	tile.Tree:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	tile.Rock:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(true),
}

// renderStyled is renderASCII with terminal colors.
func renderStyled(grid *collision.Grid) string {
	var sb strings.Builder
	for y := grid.Height() - 1; y >= 0; y-- {
		for x := 0; x < grid.Width(); x++ {
			c, _ := grid.Tile(x, y)
			g := string(glyph(c))
			if style, ok := styles[c]; ok {
				g = style.Render(g)
			}
			sb.WriteString(g)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func legend() string {
	parts := make([]string, 0, len(tile.All()))
	for _, c := range tile.All() {
		parts = append(parts, fmt.Sprintf("'%c' %s", glyph(c), c))
	}
	return strings.Join(parts, "  ")
}

func cmdSweep(args []string) {
	fs, gf := newFlagSet("sweep")
	fs.Parse(args)

	if fs.NArg() < 5 {
		fmt.Fprintln(os.Stderr, "Usage: gridtool sweep [-r radius] <level> x0 y0 x1 y1")
		os.Exit(1)
	}

	grid, _ := loadGrid(gf, fs.Arg(0))
	v := parseFloats(fs.Args()[1:5])
	start := math.Vec2{X: v[0], Y: v[1]}
	end := math.Vec2{X: v[2], Y: v[3]}
	radius := float32(*gf.radius)

	got := grid.SweepCircle(start, end, radius)
	fmt.Printf("Start:    (%.3f, %.3f)\n", start.X, start.Y)
	fmt.Printf("Target:   (%.3f, %.3f)\n", end.X, end.Y)
	fmt.Printf("Reached:  (%.3f, %.3f)\n", got.X, got.Y)
	fmt.Printf("Moved:    %.3f of %.3f\n", got.Distance(start), end.Distance(start))
	if got.DistanceSquared(end) > 1e-6 {
		fmt.Println("Result:   blocked")
	} else {
		fmt.Println("Result:   free")
	}
}

func cmdClear(args []string) {
	fs, gf := newFlagSet("clear")
	fs.Parse(args)

	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Usage: gridtool clear [-r radius] <level> x y")
		os.Exit(1)
	}

	grid, _ := loadGrid(gf, fs.Arg(0))
	v := parseFloats(fs.Args()[1:3])
	p := math.Vec2{X: v[0], Y: v[1]}
	radius := float32(*gf.radius)

	x, y := grid.WorldToGrid(p)
	c, ok := grid.Tile(x, y)
	cell := "out of bounds"
	if ok {
		cell = c.String()
	}

	fmt.Printf("Point:  (%.3f, %.3f) radius %.3f\n", p.X, p.Y, radius)
	fmt.Printf("Cell:   (%d, %d) %s\n", x, y, cell)
	if grid.IsCircleClear(p, radius) {
		fmt.Println("Result: clear")
	} else {
		fmt.Println("Result: blocked")
	}
}

func cmdPNG(args []string) {
	fs, gf := newFlagSet("png")
	ppc := fs.Int("ppc", 8, "Pixels per cell")
	categories := fs.Bool("categories", false, "Color by tile category instead of walkability")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: gridtool png [-ppc N] [-categories] <level> <out.png>")
		os.Exit(1)
	}

	grid, _ := loadGrid(gf, fs.Arg(0))
	overlay := debug.NewOverlayRenderer(grid)

	var quads []debug.Quad
	if *categories {
		quads = overlay.GenerateCategoryOverlay(0, 0, grid.Width(), grid.Height())
	} else {
		quads = overlay.GenerateWalkableOverlay(0, 0, grid.Width(), grid.Height())
	}
	img := overlay.Rasterize(quads, *ppc)

	out := fs.Arg(1)
	if err := imaging.Save(img, out); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote %s (%dx%d)\n", out, img.Bounds().Dx(), img.Bounds().Dy())
}
