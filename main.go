package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/chazu/contour/pkg/config"
	"github.com/chazu/contour/pkg/export"
	"github.com/chazu/contour/pkg/mesh"
	"github.com/chazu/contour/pkg/tessellate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/segmentio/encoding/json"
)

// The contour version number. Set at build.
var version = "v0.1.0"

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(options{})

type options struct {
	Config      string `cli:""        env:"CONTOUR_CONFIG"       help:"YAML map configuration file."`
	Script      string `cli:""        env:"CONTOUR_SCRIPT"       help:"Edit script to run."`
	SVG         string `cli:""        env:"CONTOUR_SVG"          help:"Write an SVG drawing of the meshes to this file."`
	PNG         string `cli:""        env:"CONTOUR_PNG"          help:"Write a PNG preview of the meshes to this file."`
	JSON        string `cli:""        env:"CONTOUR_JSON"         help:"Write the meshes as JSON to this file (- for stdout)."`
	Width       int    `cli:""        env:"CONTOUR_WIDTH"        help:"Width in pixels of SVG and PNG output."`
	Dots        bool   `cli:""        env:"CONTOUR_DOTS"         help:"Draw voxel samples on SVG and PNG output."`
	MetricsFile string `cli:",hidden" env:"CONTOUR_METRICS_FILE" help:"Write Prometheus metrics in text format to this file on exit."`
	LogLevel    string `cli:""        env:"CONTOUR_LOG_LEVEL"    help:"Log level (debug|info|warning|error)."`
	LogIndent   bool   `cli:""        env:"CONTOUR_LOG_INDENT"   help:"Indent logs."`
	Version     bool   `cli:""        env:"-"                    help:"Show version."`
	Help        bool   `cli:""        env:"-"                    help:"Show help."`
}

func main() {
	opts := options{
		Width:    512,
		LogLevel: logs.InfoLevel.String(),
	}

	cli.Register().
		Help("Runs an edit script on a chunked voxel map and exports the contour meshes.").
		Options(&opts)
	cli.Load()

	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(opts.LogLevel))
	logs.Encoder = json.Marshal
	if opts.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if err := run(opts); err != nil {
		logs.Fatal(err)
	}
}

func run(opts options) error {
	conf, err := config.Load(opts.Config)
	if err != nil {
		return err
	}

	source, err := readScript(opts.Script)
	if err != nil {
		return err
	}

	logs.WithTag("version", version).
		WithTag("config", opts.Config).
		WithTag("script", opts.Script).
		WithTag("chunks", conf.ChunkResolution).
		WithTag("voxels", conf.VoxelResolution).
		Info("running contour")

	result := NewApp(conf).Evaluate(source)
	for _, w := range result.Warnings {
		logs.Warn(errors.New(w.Message).WithTag("line", w.Line))
	}
	if len(result.Errors) > 0 {
		first := result.Errors[0]
		return errors.New("script failed").
			WithTag("line", first.Line).
			WithTag("errors", len(result.Errors)).
			WithTag("message", first.Message)
	}

	if err := writeOutputs(opts, result); err != nil {
		return err
	}
	if opts.MetricsFile != "" {
		if err := writeMetrics(opts.MetricsFile); err != nil {
			return err
		}
	}

	var triangles int
	for _, m := range result.Raw {
		triangles += m.TriangleCount()
	}
	logs.WithTag("meshes", len(result.Raw)).
		WithTag("triangles", triangles).
		Info("contour done")
	return nil
}

func readScript(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.New("reading script from stdin failed").Wrap(err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.New("reading script failed").
			WithTag("path", path).
			Wrap(err)
	}
	return string(b), nil
}

func writeOutputs(opts options, result EvalResult) error {
	bounds := result.Map.Bounds()

	if opts.JSON != "" {
		doc := export.NewDocument(bounds, contourMeshes(result))
		err := writeFile(opts.JSON, func(w io.Writer) error {
			return export.WriteJSON(w, doc, opts.LogIndent)
		})
		if err != nil {
			return err
		}
	}

	if opts.SVG == "" && opts.PNG == "" {
		return nil
	}

	frame, err := export.NewFrame(bounds, opts.Width)
	if err != nil {
		return err
	}
	style := export.DefaultStyle
	var dots []export.Dot
	if opts.Dots {
		dots = export.Dots(result.Map)
		style.DotRadius = max(1, 0.15*frame.Scale*result.Map.VoxelSize())
	}
	flat := contourMeshes(result)

	if opts.SVG != "" {
		err := writeFile(opts.SVG, func(w io.Writer) error {
			return export.WriteSVG(w, frame, flat, dots, style)
		})
		if err != nil {
			return err
		}
	}
	if opts.PNG != "" {
		err := writeFile(opts.PNG, func(w io.Writer) error {
			return export.WritePNG(w, frame, []*mesh.Mesh{tessellate.Merge("contour", flat)}, dots, style)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// contourMeshes drops wall meshes, whose xy projection only repeats the
// contour outline.
func contourMeshes(result EvalResult) []*mesh.Mesh {
	var out []*mesh.Mesh
	for _, m := range result.Raw {
		if !isWall(m) {
			out = append(out, m)
		}
	}
	return out
}

func writeFile(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New("creating output directory failed").
				WithTag("path", dir).
				Wrap(err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.New("creating output file failed").
			WithTag("path", path).
			Wrap(err)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.New("writing output failed").
			WithTag("path", path).
			Wrap(err)
	}
	if err := f.Close(); err != nil {
		return errors.New("closing output failed").
			WithTag("path", path).
			Wrap(err)
	}
	logs.WithTag("path", path).Info("output written")
	return nil
}

func writeMetrics(path string) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return errors.New("gathering metrics failed").Wrap(err)
	}
	return writeFile(path, func(w io.Writer) error {
		for _, mf := range families {
			if !strings.HasPrefix(mf.GetName(), "contour_") {
				continue
			}
			if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
				return err
			}
		}
		return nil
	})
}
