package script

import (
	"fmt"
	"strings"

	"github.com/chazu/contour/pkg/voxel"
	"github.com/chazu/contour/pkg/voxelmap"
	v2 "github.com/deadsy/sdfx/vec/v2"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites script source into something zygomys reads:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords need
//     no global symbols.
//  2. kebab-case identifiers become snake_case, since zygomys reads a
//     hyphen as subtraction.
//  3. ; comments become // comments.
//
// String literals pass through untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)
	b := []byte(source)

	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"' || c == '`':
			i = copyQuoted(&out, b, i)

		case c == ';':
			out.WriteString("//")
			for i < len(b) && b[i] == ';' {
				i++
			}
			for ; i < len(b) && b[i] != '\n'; i++ {
				out.WriteByte(b[i])
			}

		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out.WriteString(":=")
			i += 2

		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out.WriteString(`"` + kwPrefix)
			out.Write(b[i+1 : j])
			out.WriteByte('"')
			i = j

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out.WriteByte('_')
			i++

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// copyQuoted copies the literal starting at b[i] and returns the index
// after its closing quote. Backslash escapes only apply to double quotes.
func copyQuoted(out *strings.Builder, b []byte, i int) int {
	quote := b[i]
	out.WriteByte(quote)
	i++
	for i < len(b) && b[i] != quote {
		if quote == '"' && b[i] == '\\' && i+1 < len(b) {
			out.Write(b[i : i+2])
			i += 2
			continue
		}
		out.WriteByte(b[i])
		i++
	}
	if i < len(b) {
		out.WriteByte(b[i])
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Values passed between builtins
// ---------------------------------------------------------------------------

type sexpVec2 struct {
	vec v2.Vec
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", v.vec.X, v.vec.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

type sexpEdit struct {
	edit voxelmap.Edit
}

func (e *sexpEdit) SexpString(ps *zygo.PrintState) string {
	mode := "fill"
	if !e.edit.Fill {
		mode = "clear"
	}
	return fmt.Sprintf("(%s :%s :at (vec2 %g %g) :radius %g)",
		e.edit.Kind, mode, e.edit.X, e.edit.Y, e.edit.Radius)
}
func (e *sexpEdit) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword arguments
// ---------------------------------------------------------------------------

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates keyword and positional arguments. A keyword
// followed by another keyword, or by nothing, is a flag and maps to
// SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	res := kwArgs{kw: map[string]zygo.Sexp{}}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			res.positional = append(res.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			if _, next := isKW(args[i+1]); !next {
				res.kw[name] = args[i+1]
				i++
				continue
			}
		}
		res.kw[name] = zygo.SexpNull
	}
	return res
}

func (a kwArgs) flag(name string) bool {
	v, ok := a.kw[name]
	if !ok {
		return false
	}
	if b, isBool := v.(*zygo.SexpBool); isBool {
		return b.Val
	}
	return v == zygo.SexpNull
}

// ---------------------------------------------------------------------------
// Value extraction
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toVec2(s zygo.Sexp) (v2.Vec, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v.vec, nil
	}
	return v2.Vec{}, fmt.Errorf("expected vec2, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

type recorder struct {
	edits []voxelmap.Edit
}

// registerBuiltins installs the edit builtins. Every shape call appends
// one edit to rec. Source must go through preprocessSource first.
func registerBuiltins(env *zygo.Zlisp, rec *recorder) {

	// (vec2 1 2)
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: y: %w", err)
		}
		return &sexpVec2{vec: v2.Vec{X: x, Y: y}}, nil
	})

	// (circle :fill :at (vec2 0 0) :radius 0.5)
	// (square :clear :at (vec2 0 0) :radius 0.5)
	for _, kind := range []voxel.Kind{voxel.Circle, voxel.Square} {
		env.AddFunction(kind.String(), func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			e, err := shapeEdit(kind, parseArgs(args))
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			rec.edits = append(rec.edits, e)
			return &sexpEdit{edit: e}, nil
		})
	}

	// (edit-count)
	env.AddFunction("edit_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(len(rec.edits))}, nil
	})
}

func shapeEdit(kind voxel.Kind, pa kwArgs) (voxelmap.Edit, error) {
	e := voxelmap.Edit{Kind: kind, Fill: true}

	fill, clear := pa.flag("fill"), pa.flag("clear")
	if fill && clear {
		return e, fmt.Errorf(":fill and :clear are exclusive")
	}
	if _, ok := pa.kw["fill"]; ok && !fill {
		e.Fill = false
	}
	if clear {
		e.Fill = false
	}

	v, ok := pa.kw["at"]
	if !ok {
		return e, fmt.Errorf("missing :at")
	}
	at, err := toVec2(v)
	if err != nil {
		return e, fmt.Errorf("at: %w", err)
	}
	e.X, e.Y = at.X, at.Y

	v, ok = pa.kw["radius"]
	if !ok {
		return e, fmt.Errorf("missing :radius")
	}
	r, err := toFloat64(v)
	if err != nil {
		return e, fmt.Errorf("radius: %w", err)
	}
	if r < 0 {
		return e, fmt.Errorf("radius must not be negative, got %g", r)
	}
	e.Radius = r
	return e, nil
}
