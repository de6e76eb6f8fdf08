package layout

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// ClassificationBlank marks a placeholder item. Placeholders reserve physical
// space (width and height) but never participate in placement-type rules.
const ClassificationBlank = "blank"

// AllowAll is the sentinel classification that permits every product type
// in a row.
const AllowAll = "all"

// UnitGap is the horizontal gap inserted between adjacent stacks in a row,
// in layout units. It is charged once per boundary: a row with n stacks
// carries max(0, n-1) gaps.
const UnitGap = 1.0

// =============================================================================
// Item - Placeable Unit
// =============================================================================

// Item is a placeable unit with physical dimensions and a product
// classification. A blank placeholder (Classification == ClassificationBlank)
// occupies space but is exempt from type rules.
type Item struct {
	ID             string  `json:"id" bson:"id"`
	SKU            string  `json:"sku" bson:"sku"`
	Name           string  `json:"name,omitempty" bson:"name,omitempty"`
	Classification string  `json:"classification" bson:"classification"`
	Width          float64 `json:"width" bson:"width"`
	Height         float64 `json:"height" bson:"height"`
	Stackable      bool    `json:"stackable,omitempty" bson:"stackable,omitempty"`
}

// IsPlaceholder returns true for blank placeholder items.
func (it Item) IsPlaceholder() bool { return it.Classification == ClassificationBlank }

// =============================================================================
// Stack - Vertical Group
// =============================================================================

// Stack is a vertically ordered group of items occupying one horizontal slot.
// Items[0] is the base and determines the stack's horizontal footprint
// (pyramid convention: the base is the widest item).
type Stack struct {
	Items []Item `json:"items" bson:"items"`
}

// BaseWidth returns the width of the base item, which is the stack's
// horizontal footprint. An empty stack has zero footprint.
func (s Stack) BaseWidth() float64 {
	if len(s.Items) == 0 {
		return 0
	}
	return s.Items[0].Width
}

// TotalHeight returns the summed height of all items in the stack.
func (s Stack) TotalHeight() float64 {
	var h float64
	for _, it := range s.Items {
		h += it.Height
	}
	return h
}

// Base returns the base item. Callers must check len(s.Items) > 0 first.
func (s Stack) Base() Item { return s.Items[0] }

// =============================================================================
// Row - Horizontal Slot
// =============================================================================

// Row is a horizontal slot within a compartment holding side-by-side stacks.
// Capacity is the width budget; MaxHeight bounds stacked content; Allowed
// restricts product classifications (the AllowAll sentinel permits any).
type Row struct {
	ID        string   `json:"id" bson:"id"`
	Capacity  float64  `json:"capacity" bson:"capacity"`
	MaxHeight float64  `json:"max_height" bson:"max_height"`
	Allowed   []string `json:"allowed,omitempty" bson:"allowed,omitempty"`
	Stacks    []Stack  `json:"stacks" bson:"stacks"`
}

// Allows reports whether the classification may be placed in this row.
// Placeholders are always allowed; an empty or AllowAll list permits any.
func (r Row) Allows(classification string) bool {
	if classification == ClassificationBlank {
		return true
	}
	if len(r.Allowed) == 0 {
		return true
	}
	for _, a := range r.Allowed {
		if a == AllowAll || a == classification {
			return true
		}
	}
	return false
}

// UsedWidth returns the occupied width budget: the sum of base widths plus
// one unit gap per stack boundary.
func (r Row) UsedWidth() float64 {
	var w float64
	for _, s := range r.Stacks {
		w += s.BaseWidth()
	}
	if n := len(r.Stacks); n > 1 {
		w += float64(n-1) * UnitGap
	}
	return w
}

// =============================================================================
// Compartment - Independently Dimensioned Section
// =============================================================================

// Compartment is one independently addressable physical section (e.g., a
// cooler door) with its own dimensions and rows. Rows are ordered
// top-to-bottom as physically mounted.
type Compartment struct {
	ID     string  `json:"id" bson:"id"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Rows   []Row   `json:"rows" bson:"rows"`
}

// Row returns the row with the given ID, or nil if absent.
func (c *Compartment) Row(id string) *Row {
	for i := range c.Rows {
		if c.Rows[i].ID == id {
			return &c.Rows[i]
		}
	}
	return nil
}

// =============================================================================
// Layout - Canonical Multi-Compartment Form
// =============================================================================

// Layout is the canonical editable form: compartments ordered left-to-right
// as physically placed. Every location reference carries an explicit
// compartment ID; there is no implicit default compartment.
type Layout struct {
	Compartments []Compartment `json:"compartments" bson:"compartments"`
}

// Compartment returns the compartment with the given ID, or nil if absent.
func (l *Layout) Compartment(id string) *Compartment {
	for i := range l.Compartments {
		if l.Compartments[i].ID == id {
			return &l.Compartments[i]
		}
	}
	return nil
}

// ItemCount returns the total number of placed items across all
// compartments, including stacked and placeholder items.
func (l *Layout) ItemCount() int {
	n := 0
	for _, c := range l.Compartments {
		for _, r := range c.Rows {
			for _, s := range r.Stacks {
				n += len(s.Items)
			}
		}
	}
	return n
}
