// Package schema defines the analysis contract: the ordered set of fields a
// complete analysis record must contain, plus the sentinel placeholders used
// when genuine content could not be recovered.
package schema

import "fmt"

// Sentinel placeholders. These are fixed, recognizable strings substituted
// for fields whose genuine content could not be recovered. Callers can
// compare against them to detect degraded output.
const (
	// PlaceholderTruncated marks a field whose value never arrived because
	// the model output was cut off. Injected during JSON repair.
	PlaceholderTruncated = "content truncated"

	// PlaceholderRetry marks a field that was missing even after repair.
	PlaceholderRetry = "content truncated, please retry"

	// PlaceholderNoData marks a field the model simply did not return.
	PlaceholderNoData = "no data"

	// PlaceholderOverflow marks a fallback-extracted field whose positional
	// slice starts beyond the end of the raw text.
	PlaceholderOverflow = "see full analysis"
)

// Field describes one required entry of a contract.
type Field struct {
	// Name is the JSON key the model is instructed to emit.
	Name string

	// Title is the human-readable section heading used in reports.
	Title string

	// Synonyms are keyword anchors for text fallback extraction. Matched
	// case-insensitively against raw model output when JSON recovery fails.
	Synonyms []string
}

// Contract is the ordered, unique set of fields a valid analysis record must
// contain. Order defines display and report order. A Contract is immutable
// once built; a single pipeline invocation uses exactly one.
type Contract struct {
	fields []Field
	index  map[string]int
}

// New builds a contract from the given fields. Field names must be unique.
func New(fields ...Field) (Contract, error) {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return Contract{}, fmt.Errorf("contract field %d has empty name", i)
		}
		if _, dup := index[f.Name]; dup {
			return Contract{}, fmt.Errorf("duplicate contract field %q", f.Name)
		}
		index[f.Name] = i
	}
	return Contract{fields: fields, index: index}, nil
}

// mustNew is for the built-in contracts, which are static tables.
func mustNew(fields ...Field) Contract {
	c, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of required fields.
func (c Contract) Len() int { return len(c.fields) }

// At returns the i-th field in contract order.
func (c Contract) At(i int) Field { return c.fields[i] }

// Names returns the field names in contract order.
func (c Contract) Names() []string {
	names := make([]string, len(c.fields))
	for i, f := range c.fields {
		names[i] = f.Name
	}
	return names
}

// Contains reports whether name is a required field.
func (c Contract) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Lookup returns the field with the given name.
func (c Contract) Lookup(name string) (Field, bool) {
	i, ok := c.index[name]
	if !ok {
		return Field{}, false
	}
	return c.fields[i], true
}

var current = mustNew(
	Field{
		Name:     "model_stack",
		Title:    "Model Stack",
		Synonyms: []string{"model stack", "tech stack", "model dependencies"},
	},
	Field{
		Name:     "scene_fit",
		Title:    "Scene-Fit",
		Synonyms: []string{"scene-fit", "scene fit", "use case", "scenario"},
	},
	Field{
		Name:     "data_moat",
		Title:    "Data Moat",
		Synonyms: []string{"data moat", "data loop", "moat"},
	},
	Field{
		Name:     "ux_friction",
		Title:    "UX Friction",
		Synonyms: []string{"ux friction", "pain point", "user experience"},
	},
	Field{
		Name:     "commercial_roi",
		Title:    "Commercial ROI",
		Synonyms: []string{"commercial roi", "monetization", "business value"},
	},
	Field{
		Name:     "strategy_advice",
		Title:    "Strategic Advice",
		Synonyms: []string{"strategy advice", "competitive strategy", "differentiation"},
	},
)

// Older records used competitive_advantage for the sixth field. Kept so
// stored history from previous versions still validates.
var legacy = mustNew(
	current.fields[0], current.fields[1], current.fields[2],
	current.fields[3], current.fields[4],
	Field{
		Name:     "competitive_advantage",
		Title:    "Strategic Advice",
		Synonyms: []string{"competitive advantage", "competitive strategy", "differentiation"},
	},
)

// Current returns the contract used for new analyses.
func Current() Contract { return current }

// Legacy returns the pre-rename contract.
func Legacy() Contract { return legacy }

// Detect returns the contract a stored record was written against, keyed on
// the presence of the pre-rename sixth field.
func Detect(names []string) Contract {
	for _, name := range names {
		if name == "competitive_advantage" {
			return legacy
		}
	}
	return current
}
