package parse

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// StripFences removes a single pair of leading/trailing markdown code-fence
// delimiters (with an optional language tag) and a UTF-8 BOM. Models wrap
// JSON in fences even when told not to.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "\uFEFF")
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(s[len("```json"):])
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(s[3:])
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(s[:len(s)-3])
	}
	return s
}

// Decode strictly parses fence-stripped text as a single JSON object,
// preserving member insertion order. Numbers, booleans and null are folded
// into Text values; the record only ever renders strings.
func Decode(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if v.Kind() != KindObject {
		return Value{}, fmt.Errorf("%w: top-level value is not an object", ErrDecode)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("%w: trailing data after object", ErrDecode)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var members []Member
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key %v is not a string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				members = append(members, Member{Key: key, Val: val})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Object(members...), nil
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return List(items...), nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return Text(t), nil
	case json.Number:
		return Text(t.String()), nil
	case bool:
		if t {
			return Text("true"), nil
		}
		return Text("false"), nil
	case nil:
		return Text(""), nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}
