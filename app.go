package main

import (
	"fmt"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/chazu/contour/pkg/config"
	"github.com/chazu/contour/pkg/mesh"
	"github.com/chazu/contour/pkg/script"
	"github.com/chazu/contour/pkg/tessellate"
	"github.com/chazu/contour/pkg/voxelmap"
)

// colorPalette is a default palette used to assign distinct colors to chunks.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// wallColor is used for every wall mesh.
const wallColor = "#7F8C8D"

// App runs edit scripts against a fresh voxel map.
type App struct {
	engine *script.Engine
	conf   config.Config
}

// MeshData is the JSON-serializable form of one world-space mesh.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Wall     bool      `json:"wall"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable script error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of running a script.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`

	// Map is the edited map; nil when evaluation failed.
	Map *voxelmap.Map `json:"-"`
	// Raw holds the world-space meshes behind Meshes.
	Raw []*mesh.Mesh `json:"-"`
}

// NewApp creates an App building maps from conf.
func NewApp(conf config.Config) *App {
	return &App{
		engine: script.NewEngine(),
		conf:   conf,
	}
}

// Evaluate runs the script, applies its edits in order to a new map and
// returns the resulting meshes. Script errors are reported in the result
// and leave it without meshes.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	edits, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		logs.Warn(errors.New("script evaluation aborted").Wrap(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	m := voxelmap.New(a.conf)
	for i, e := range edits {
		if m.Apply(e) == 0 {
			result.Warnings = append(result.Warnings, EvalErrorData{
				Message: fmt.Sprintf("edit %d at (%g, %g) misses the map", i+1, e.X, e.Y),
			})
		}
	}

	meshes, err := tessellate.Tessellate(m, tessellate.Options{Walls: a.conf.Wall.Enabled})
	if err != nil {
		logs.Warn(err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	chunk := 0
	for _, mm := range meshes {
		wall := isWall(mm)
		color := wallColor
		if !wall {
			color = colorPalette[chunk%len(colorPalette)]
			chunk++
		}
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: mm.Vertices,
			Indices:  mm.Indices,
			Name:     mm.Name,
			Wall:     wall,
			Color:    color,
		})
	}
	result.Map = m
	result.Raw = meshes

	logs.WithTag("edits", len(edits)).
		WithTag("meshes", len(meshes)).
		WithTag("warnings", len(result.Warnings)).
		Debug("script evaluated")
	return result
}

func isWall(m *mesh.Mesh) bool {
	return strings.HasSuffix(m.Name, "/wall")
}
