package parse

import (
	"pminsight/internal/schema"
)

// Path records which recovery path produced a result.
type Path int

const (
	// PathStrict: the response decoded as-is.
	PathStrict Path = iota
	// PathRepaired: the response decoded after truncation repair.
	PathRepaired
	// PathFallback: the response was mined as plain text.
	PathFallback
)

func (p Path) String() string {
	switch p {
	case PathStrict:
		return "strict"
	case PathRepaired:
		return "repaired"
	case PathFallback:
		return "fallback"
	}
	return "unknown"
}

// Result is the pipeline's terminal artifact. Record is always
// schema-complete; Degraded marks that at least one field holds sentinel
// content instead of genuine output, and Cause names why (ErrDecode,
// ErrTruncation or ErrSchemaViolation). Callers branch on these markers
// instead of catching errors.
type Result struct {
	Record   *Record
	Path     Path
	Degraded bool
	Cause    error
}

// Pipeline holds the only state shared across invocations: the contract.
// Run is a pure function of its input text, so a single Pipeline is safe for
// concurrent use.
type Pipeline struct {
	contract schema.Contract
}

// NewPipeline builds a pipeline for the given contract.
func NewPipeline(contract schema.Contract) *Pipeline {
	return &Pipeline{contract: contract}
}

// Contract returns the contract the pipeline validates against.
func (p *Pipeline) Contract() schema.Contract { return p.contract }

// Run turns raw model output into a schema-complete record. It never
// returns an error: the worst case is a record full of sentinel
// placeholders.
func (p *Pipeline) Run(raw string) Result {
	stripped := StripFences(raw)

	if obj, err := Decode(stripped); err == nil {
		rec := p.resolveObject(obj)
		injected := rec.validate(p.contract.Names(), schema.PlaceholderNoData)
		res := Result{Record: rec, Path: PathStrict}
		if injected > 0 {
			res.Degraded = true
			res.Cause = ErrSchemaViolation
		}
		return res
	}

	cause := ErrDecode
	if LooksTruncated(stripped) {
		cause = ErrTruncation
	}

	repaired := Repair(stripped, p.contract)
	if obj, err := Decode(repaired); err == nil {
		rec := p.resolveObject(obj)
		rec.validate(p.contract.Names(), schema.PlaceholderRetry)
		return Result{Record: rec, Path: PathRepaired, Degraded: true, Cause: cause}
	}

	// JSON recovery is hopeless; mine the original raw text.
	rec := NewRecord()
	extracted := Extract(raw, p.contract)
	for _, name := range p.contract.Names() {
		rec.Set(name, RenderText(Normalize(extracted[name])))
	}
	return Result{Record: rec, Path: PathFallback, Degraded: true, Cause: cause}
}

// resolveObject resolves every member of the decoded object, keeping the
// model's key order so extra fields stay inspectable.
func (p *Pipeline) resolveObject(obj Value) *Record {
	rec := NewRecord()
	for _, m := range obj.Members() {
		rec.Set(m.Key, Resolve(m.Val))
	}
	return rec
}
