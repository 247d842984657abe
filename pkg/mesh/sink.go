package mesh

// Sink consumes the meshes a grid produces. Every call carries a freshly
// built mesh that replaces whatever the sink received before.
type Sink interface {
	SetMesh(m *Mesh)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(m *Mesh)

// SetMesh calls f(m).
func (f SinkFunc) SetMesh(m *Mesh) { f(m) }

// Discard is a Sink that drops every mesh.
var Discard Sink = SinkFunc(func(*Mesh) {})

// Latest is a Sink that keeps the last mesh it received.
type Latest struct {
	Mesh    *Mesh
	Updates int
}

// SetMesh stores m.
func (l *Latest) SetMesh(m *Mesh) {
	l.Mesh = m
	l.Updates++
}

// Multi fans a mesh out to several sinks.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(m *Mesh) {
		for _, s := range sinks {
			s.SetMesh(m)
		}
	})
}
