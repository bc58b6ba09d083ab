// Package parse turns free-form model output into a schema-complete analysis
// record. The model is instructed to return a JSON object, but the response
// may be malformed, truncated mid-token, inconsistently escaped, or shaped
// differently than expected. The pipeline is:
//
//	raw -> Decode -> Resolve -> Validate            (strict path)
//	raw -> Repair -> Decode -> Resolve -> Validate  (truncation recovery)
//	raw -> Extract -> Validate                      (text fallback)
//
// The pipeline never fails past its own boundary: it always produces a
// record containing every contract field, substituting sentinel placeholders
// where genuine content could not be recovered.
package parse

// Kind discriminates the Value union.
type Kind int

const (
	KindText Kind = iota
	KindList
	KindObject
)

// Member is one key/value pair of an object Value. Members preserve
// insertion order, which the resolver's flattening rules depend on.
type Member struct {
	Key string
	Val Value
}

// Value is the canonical in-memory shape produced by JSON decoding, before
// resolution: a string, an ordered list of values, or an ordered object.
// Downstream code never inspects raw JSON; it operates on this union only.
type Value struct {
	kind    Kind
	text    string
	items   []Value
	members []Member
}

// Text wraps a plain string.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// List wraps an ordered sequence of values.
func List(items ...Value) Value { return Value{kind: KindList, items: items} }

// Object wraps an ordered set of members.
func Object(members ...Member) Value { return Value{kind: KindObject, members: members} }

// Kind returns the union tag.
func (v Value) Kind() Kind { return v.kind }

// String returns the text payload. Valid only for KindText.
func (v Value) String() string { return v.text }

// Items returns the list payload. Valid only for KindList.
func (v Value) Items() []Value { return v.items }

// Members returns the object payload in insertion order. Valid only for
// KindObject.
func (v Value) Members() []Member { return v.members }

// Renderable is the post-resolution shape: a plain string or an ordered list
// of plain strings. No nested objects survive past resolution.
type Renderable struct {
	text  string
	items []string
	list  bool
}

// RenderText builds a plain-string renderable.
func RenderText(s string) Renderable { return Renderable{text: s} }

// RenderList builds a list renderable.
func RenderList(items []string) Renderable { return Renderable{items: items, list: true} }

// IsList reports whether the renderable holds a list of strings.
func (r Renderable) IsList() bool { return r.list }

// Text returns the plain-string payload.
func (r Renderable) Text() string { return r.text }

// Items returns the list payload.
func (r Renderable) Items() []string { return r.items }

// Empty reports whether the renderable carries no content at all.
func (r Renderable) Empty() bool {
	if r.list {
		return len(r.items) == 0
	}
	return r.text == ""
}
