package export

import (
	"io"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/contour/pkg/mesh"
	"github.com/deadsy/sdfx/sdf"
	"github.com/segmentio/encoding/json"
)

// Document is the JSON form of a set of meshes.
type Document struct {
	Bounds    [4]float64   `json:"bounds"`
	Triangles int          `json:"triangles"`
	Meshes    []*mesh.Mesh `json:"meshes"`
}

// NewDocument wraps meshes with the world rectangle they were built in.
func NewDocument(bounds sdf.Box2, meshes []*mesh.Mesh) Document {
	doc := Document{
		Bounds: [4]float64{bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y},
		Meshes: meshes,
	}
	for _, m := range meshes {
		doc.Triangles += m.TriangleCount()
	}
	if doc.Meshes == nil {
		doc.Meshes = []*mesh.Mesh{}
	}
	return doc
}

// WriteJSON encodes the document, indented when indent is set.
func WriteJSON(w io.Writer, doc Document, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return errors.New("encoding json failed").Wrap(err)
	}
	return nil
}

// ReadJSON decodes a document written by WriteJSON and validates its
// meshes.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errors.New("decoding json failed").Wrap(err)
	}
	for _, m := range doc.Meshes {
		if err := m.Validate(); err != nil {
			return Document{}, errors.New("invalid mesh in document").
				WithTag("mesh", m.Name).
				Wrap(err)
		}
	}
	return doc, nil
}

// JSONSink writes every mesh it receives as one JSON line.
type JSONSink struct {
	enc *json.Encoder
	err error
}

// NewJSONSink returns a sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// SetMesh implements mesh.Sink. Nothing is written after the first
// failure.
func (s *JSONSink) SetMesh(m *mesh.Mesh) {
	if s.err != nil {
		return
	}
	if err := s.enc.Encode(m); err != nil {
		s.err = errors.New("json sink failed").
			WithTag("mesh", m.Name).
			Wrap(err)
	}
}

// Err returns the first error met by the sink.
func (s *JSONSink) Err() error { return s.err }
