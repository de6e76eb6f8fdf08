package layout

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/fixturelab/planogram/pkg/errors"
)

// =============================================================================
// Template - Fixture Definition
// =============================================================================

// Template describes a named fixture: its compartments and the row slots
// within each. Templates are supplied at session start and instantiated into
// an empty editable layout.
type Template struct {
	Name         string                `toml:"name"`
	Compartments []CompartmentTemplate `toml:"compartment"`
}

// CompartmentTemplate describes one compartment of a fixture template.
type CompartmentTemplate struct {
	ID     string        `toml:"id"`
	Width  float64       `toml:"width"`
	Height float64       `toml:"height"`
	Rows   []RowTemplate `toml:"row"`
}

// RowTemplate describes one row slot of a compartment template.
type RowTemplate struct {
	ID        string   `toml:"id"`
	Capacity  float64  `toml:"capacity"`
	MaxHeight float64  `toml:"max_height"`
	Allowed   []string `toml:"allowed"`
}

// LoadTemplate reads and validates a fixture template from a TOML file.
//
// Example file:
//
//	name = "double-door-cooler"
//
//	[[compartment]]
//	id = "door-1"
//	width = 673
//	height = 900
//
//	[[compartment.row]]
//	id = "row-1"
//	capacity = 650
//	max_height = 220
//	allowed = ["all"]
func LoadTemplate(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, errors.Wrap(errors.ErrCodeTemplateNotFound, err, "read template %s", path)
	}
	var t Template
	if err := toml.Unmarshal(data, &t); err != nil {
		return Template{}, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "parse template %s", path)
	}
	if err := t.Validate(); err != nil {
		return Template{}, err
	}
	return t, nil
}

// Validate checks template structure: a name, at least one compartment,
// unique compartment and row IDs, and positive dimensions.
func (t Template) Validate() error {
	if t.Name == "" {
		return errors.New(errors.ErrCodeInvalidTemplate, "template name is required")
	}
	if len(t.Compartments) == 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "template %q has no compartments", t.Name)
	}
	compSeen := make(map[string]struct{}, len(t.Compartments))
	for _, c := range t.Compartments {
		if c.ID == "" {
			return errors.New(errors.ErrCodeInvalidTemplate, "template %q: compartment with empty ID", t.Name)
		}
		if _, dup := compSeen[c.ID]; dup {
			return errors.New(errors.ErrCodeInvalidTemplate, "template %q: duplicate compartment ID %q", t.Name, c.ID)
		}
		compSeen[c.ID] = struct{}{}
		if c.Width <= 0 || c.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidTemplate, "compartment %q: dimensions must be positive", c.ID)
		}
		rowSeen := make(map[string]struct{}, len(c.Rows))
		for _, r := range c.Rows {
			if r.ID == "" {
				return errors.New(errors.ErrCodeInvalidTemplate, "compartment %q: row with empty ID", c.ID)
			}
			if _, dup := rowSeen[r.ID]; dup {
				return errors.New(errors.ErrCodeInvalidTemplate, "compartment %q: duplicate row ID %q", c.ID, r.ID)
			}
			rowSeen[r.ID] = struct{}{}
			if r.Capacity <= 0 || r.MaxHeight <= 0 {
				return errors.New(errors.ErrCodeInvalidTemplate, "row %q: capacity and max_height must be positive", r.ID)
			}
		}
	}
	return nil
}

// Instantiate creates an empty layout from the template: every compartment
// and row slot present, no stacks placed.
func (t Template) Instantiate() Layout {
	l := Layout{Compartments: make([]Compartment, len(t.Compartments))}
	for i, ct := range t.Compartments {
		comp := Compartment{
			ID:     ct.ID,
			Width:  ct.Width,
			Height: ct.Height,
			Rows:   make([]Row, len(ct.Rows)),
		}
		for j, rt := range ct.Rows {
			comp.Rows[j] = Row{
				ID:        rt.ID,
				Capacity:  rt.Capacity,
				MaxHeight: rt.MaxHeight,
				Allowed:   rt.Allowed,
			}
		}
		l.Compartments[i] = comp
	}
	return l
}
