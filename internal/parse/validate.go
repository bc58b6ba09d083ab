package parse

// Record maps field names to renderable values while preserving insertion
// order. After validation it contains every contract field; extra fields
// returned by the model are kept but carry no guarantee of rendering.
type Record struct {
	order []string
	vals  map[string]Renderable
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{vals: make(map[string]Renderable)}
}

// Set stores a value, appending the field to the order on first insert.
func (r *Record) Set(name string, v Renderable) {
	if _, ok := r.vals[name]; !ok {
		r.order = append(r.order, name)
	}
	r.vals[name] = v
}

// Get returns the value for name.
func (r *Record) Get(name string) (Renderable, bool) {
	v, ok := r.vals[name]
	return v, ok
}

// Names returns field names in insertion order.
func (r *Record) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.order) }

// validate fills every absent contract field with the placeholder and
// returns how many fields it had to fill. A field present with an empty
// string is genuinely empty, not missing, and is left alone.
func (r *Record) validate(names []string, placeholder string) int {
	injected := 0
	for _, name := range names {
		if _, ok := r.vals[name]; !ok {
			r.Set(name, RenderText(placeholder))
			injected++
		}
	}
	return injected
}
