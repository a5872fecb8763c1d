package level

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/tilecollide/internal/collision"
	"github.com/Faultbox/tilecollide/pkg/tile"
)

var testLayout = collision.Layout{CellSize: 32}

// cellsOf indexes placements by absolute cell, keeping the highest layer.
func cellsOf(t *testing.T, placements []collision.Placement) map[[2]int]collision.Placement {
	t.Helper()
	out := make(map[[2]int]collision.Placement)
	for _, p := range placements {
		x, y := testLayout.CellOf(p.Position.XY())
		if prev, ok := out[[2]int{x, y}]; ok && prev.Position.Z >= p.Position.Z {
			continue
		}
		out[[2]int{x, y}] = p
	}
	return out
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"maps/a.tmx", FormatTMX, false},
		{"a.YAML", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"prontera.gat", FormatGAT, false},
		{"level.json", FormatAuto, true},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if (err != nil) != tt.err {
			t.Errorf("DetectFormat(%q) error = %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{{Category: tile.Rock}}
	got, err := src.Placements()
	if err != nil || len(got) != 1 {
		t.Fatalf("Placements() = %v, %v", got, err)
	}
}

func TestTMXSource(t *testing.T) {
	src, err := Open(filepath.Join("testdata", "meadow.tmx"), FormatAuto, testLayout)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	placements, err := src.Placements()
	if err != nil {
		t.Fatalf("Placements failed: %v", err)
	}
	if len(placements) != 8 {
		t.Fatalf("expected 8 placements, got %d", len(placements))
	}

	cells := cellsOf(t, placements)
	want := map[[2]int]tile.Category{
		{0, 1}: tile.Tree, // decor layer over grass
		{1, 1}: tile.Water,
		{2, 1}: tile.Water,
		{0, 0}: tile.Grass,
		{1, 0}: tile.Grass,
		{2, 0}: tile.Rock, // layer property fallback
	}
	for cell, c := range want {
		if got := cells[cell].Category; got != c {
			t.Errorf("cell %v = %v, want %v", cell, got, c)
		}
	}
}

func TestTMXBuildsGrid(t *testing.T) {
	src := NewTMXFile(filepath.Join("testdata", "meadow.tmx"), testLayout)
	placements, err := src.Placements()
	if err != nil {
		t.Fatalf("Placements failed: %v", err)
	}

	grid, err := collision.NewBuilder(testLayout).Build(placements)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if grid.Width() != 3 || grid.Height() != 2 {
		t.Fatalf("expected 3x2 grid, got %dx%d", grid.Width(), grid.Height())
	}
	for _, cell := range [][2]int{{1, 1}, {2, 1}} {
		if c, _ := grid.Tile(cell[0], cell[1]); c != tile.Shore {
			t.Errorf("cell %v = %v, want shore", cell, c)
		}
	}
}

func TestTMXMissingFile(t *testing.T) {
	src := NewTMXFile(filepath.Join("testdata", "missing.tmx"), testLayout)
	if _, err := src.Placements(); err == nil {
		t.Error("expected error for missing map")
	}
}

func TestYAMLSource(t *testing.T) {
	src, err := Open(filepath.Join("testdata", "island.yaml"), FormatAuto, testLayout)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	placements, err := src.Placements()
	if err != nil {
		t.Fatalf("Placements failed: %v", err)
	}
	if len(placements) != 7*5+2 {
		t.Fatalf("expected 37 placements, got %d", len(placements))
	}

	cells := cellsOf(t, placements)
	want := map[[2]int]tile.Category{
		{0, 0}: tile.Water,
		{1, 2}: tile.Grass,
		{2, 2}: tile.YellowGrass,
		{3, 2}: tile.Tree, // explicit placement above the ASCII layer
		{4, 2}: tile.Dirt,
		{4, 3}: tile.Rock,
	}
	for cell, c := range want {
		if got := cells[cell].Category; got != c {
			t.Errorf("cell %v = %v, want %v", cell, got, c)
		}
	}
}

func TestParseYAMLLayerHeights(t *testing.T) {
	data := []byte(`
legend: {".": grass, "T": tree}
layers:
  - z: 5
    rows: ["T"]
  - z: 2
    rows: ["."]
`)
	placements, err := ParseYAML(data, testLayout)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	grid, err := collision.NewBuilder(testLayout).Build(placements)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if c, _ := grid.Tile(0, 0); c != tile.Tree {
		t.Errorf("expected higher tree layer to win, got %v", c)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing legend entry", "legend: {\".\": grass}\nlayers:\n  - rows: [\".x\"]\n"},
		{"multi-char legend key", "legend: {\"ab\": grass}\n"},
		{"unknown placement", "placements:\n  - {x: 0, y: 0, tile: lava}\n"},
		{"invalid yaml", "layers: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.data), testLayout); err == nil {
				t.Error("expected error")
			}
		})
	}

	src := &YAMLSource{Path: filepath.Join("testdata", "bad_legend.yaml"), Layout: testLayout}
	if _, err := src.Placements(); !errors.Is(err, tile.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

// createTestGAT creates a minimal GAT file.
func createTestGAT(width, height uint32, cellTypes []GATCellType) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("GRAT")
	buf.WriteByte(2) // minor
	buf.WriteByte(1) // major
	binary.Write(buf, binary.LittleEndian, width)
	binary.Write(buf, binary.LittleEndian, height)

	for i := 0; i < int(width*height); i++ {
		for j := 0; j < 4; j++ {
			binary.Write(buf, binary.LittleEndian, float32(i))
		}
		cellType := GATWalkable
		if i < len(cellTypes) {
			cellType = cellTypes[i]
		}
		binary.Write(buf, binary.LittleEndian, uint32(cellType))
	}
	return buf.Bytes()
}

func TestParseGAT(t *testing.T) {
	data := createTestGAT(3, 2, []GATCellType{
		GATWalkable, GATBlocked, GATWater,
		GATWalkableWater, GATSnipeable, GATBlockedSnipe,
	})

	placements, err := ParseGAT(data, testLayout)
	if err != nil {
		t.Fatalf("ParseGAT failed: %v", err)
	}
	if len(placements) != 6 {
		t.Fatalf("expected 6 placements, got %d", len(placements))
	}

	want := []tile.Category{tile.Grass, tile.Rock, tile.Water, tile.Shore, tile.Rock, tile.Rock}
	for i, p := range placements {
		if p.Category != want[i] {
			t.Errorf("cell %d = %v, want %v", i, p.Category, want[i])
		}
		x, y := testLayout.CellOf(p.Position.XY())
		if x != i%3 || y != i/3 {
			t.Errorf("cell %d at (%d,%d)", i, x, y)
		}
		if p.Position.Z != float32(i) {
			t.Errorf("cell %d height = %v, want %d", i, p.Position.Z, i)
		}
	}
}

func TestParseGATErrors(t *testing.T) {
	valid := createTestGAT(2, 2, nil)

	badMagic := append([]byte("XXXX"), valid[4:]...)
	badVersion := append([]byte(nil), valid...)
	badVersion[5] = 9

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"too short", []byte("GRAT"), ErrTruncatedGATData},
		{"bad magic", badMagic, ErrInvalidGATMagic},
		{"bad version", badVersion, ErrUnsupportedGATVersion},
		{"truncated cells", valid[:len(valid)-4], ErrTruncatedGATData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGAT(tt.data, testLayout)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := ParseGAT(createTestGAT(0, 2, nil), testLayout); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestGATSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.gat")
	if err := os.WriteFile(path, createTestGAT(2, 1, []GATCellType{GATWater}), 0644); err != nil {
		t.Fatalf("failed to write GAT: %v", err)
	}

	src, err := Open(path, FormatAuto, testLayout)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	placements, err := src.Placements()
	if err != nil {
		t.Fatalf("Placements failed: %v", err)
	}

	grid, err := collision.NewBuilder(testLayout).Build(placements)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if c, _ := grid.Tile(0, 0); c != tile.Shore {
		t.Errorf("water next to grass should become shore, got %v", c)
	}
}
