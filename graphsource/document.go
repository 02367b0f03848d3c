// File: document.go
// Role: Document decoding, validation and graph construction.

package graphsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/patchnet/core"
)

// ErrInvalidDocument wraps decoding and validation failures.
var ErrInvalidDocument = errors.New("graphsource: invalid document")

var validate = validator.New()

// Document is the on-disk form of a landscape graph.
type Document struct {
	Name    string        `yaml:"name"`
	Cost    CostSection   `yaml:"cost"`
	Patches []PatchRecord `yaml:"patches" validate:"required,min=1,dive"`
	Links   []LinkRecord  `yaml:"links" validate:"dive"`
}

// CostSection names the cost definition; empty fields take the defaults
// (leastcost, complete).
type CostSection struct {
	Kind      string  `yaml:"kind" validate:"omitempty,oneof=leastcost euclidean"`
	Topology  string  `yaml:"topology" validate:"omitempty,oneof=complete threshold mst"`
	Threshold float64 `yaml:"threshold" validate:"gte=0"`
}

// PatchRecord is one patch.
type PatchRecord struct {
	ID        int     `yaml:"id"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Area      float64 `yaml:"area" validate:"gte=0"`
	Perimeter float64 `yaml:"perimeter" validate:"gte=0"`
	Capacity  float64 `yaml:"capacity" validate:"gte=0"`
}

// LinkRecord is one link.
type LinkRecord struct {
	From   int     `yaml:"from"`
	To     int     `yaml:"to"`
	Cost   float64 `yaml:"cost"`
	Length float64 `yaml:"length"`
	Intra  bool    `yaml:"intra"`
}

// Decode reads one document from r.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Validate checks field-level constraints.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	return nil
}

// Definition converts the cost section.
func (d *Document) Definition() (core.CostDefinition, error) {
	def := core.DefaultCostDefinition()
	var err error
	if d.Cost.Kind != "" {
		if def.Kind, err = core.ParseCostKind(d.Cost.Kind); err != nil {
			return def, err
		}
	}
	if d.Cost.Topology != "" {
		if def.Topology, err = core.ParseTopology(d.Cost.Topology); err != nil {
			return def, err
		}
	}
	def.Threshold = d.Cost.Threshold

	return def, nil
}

// Parts returns the patches and links in core form.
func (d *Document) Parts() ([]core.Patch, []core.Link) {
	ps := make([]core.Patch, len(d.Patches))
	for i, p := range d.Patches {
		ps[i] = core.Patch{ID: p.ID, X: p.X, Y: p.Y, Area: p.Area, Perimeter: p.Perimeter, Capacity: p.Capacity}
	}
	ls := make([]core.Link, len(d.Links))
	for i, l := range d.Links {
		ls[i] = core.Link{From: l.From, To: l.To, Cost: l.Cost, Length: l.Length, IntraPatch: l.Intra}
	}

	return ps, ls
}

// Build builds the graph of d. A non-nil def replaces the document's cost
// section.
func (d *Document) Build(def *core.CostDefinition) (*core.Graph, error) {
	use, err := d.Definition()
	if err != nil {
		return nil, err
	}
	if def != nil {
		use = *def
	}
	ps, ls := d.Parts()
	g, err := core.Build(ps, ls, use)
	if err != nil {
		return nil, err
	}
	if d.Name != "" {
		g = g.WithName(d.Name)
	}

	return g, nil
}

// Encode writes d as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("graphsource: encode: %w", err)
	}

	return enc.Close()
}

// FromGraph snapshots g as a document.
func FromGraph(g *core.Graph) *Document {
	def := g.Definition()
	doc := &Document{
		Name: g.Name(),
		Cost: CostSection{Kind: def.Kind.String(), Topology: def.Topology.String(), Threshold: def.Threshold},
	}
	for _, p := range g.Patches() {
		doc.Patches = append(doc.Patches, PatchRecord{ID: p.ID, X: p.X, Y: p.Y, Area: p.Area,
			Perimeter: p.Perimeter, Capacity: p.Capacity})
	}
	for _, l := range g.Links() {
		doc.Links = append(doc.Links, LinkRecord{From: l.From, To: l.To, Cost: l.Cost, Length: l.Length,
			Intra: l.IntraPatch})
	}

	return doc
}

// Source produces the inputs of core.Build.
type Source interface {
	Load(ctx context.Context) (*Document, error)
}

// File is a Source reading a document from disk.
type File struct {
	Path string
}

// Load reads and decodes the file. Files named *.json and *.yaml/*.yml are
// accepted alike.
func (f File) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("graphsource: read %s: %w", f.Path, err)
	}
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))
	}

	return doc, nil
}

// LoadGraph loads src and builds its graph with the document's cost section
// (or def when non-nil).
func LoadGraph(ctx context.Context, src Source, def *core.CostDefinition) (*core.Graph, error) {
	doc, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	return doc.Build(def)
}
