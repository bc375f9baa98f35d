package ret

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Flat returns compact single-line representation of v:
// strings are double-quoted, chars single-quoted, sequences rendered as {a, b},
// tagged values as #index:value, boxes as <tag>.
func Flat(v Value) string {
	sb := &strings.Builder{}
	writeFlat(sb, v)
	return sb.String()
}

func writeFlat(sb *strings.Builder, v Value) {
	switch x := v.(type) {
	case nil:
		sb.WriteString("nil")
	case Char:
		sb.WriteString(strconv.QuoteRune(rune(x)))
	case String:
		sb.WriteString(strconv.Quote(string(x)))
	case Int:
		sb.WriteString(strconv.FormatInt(int64(x), 10))
	case Float:
		sb.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 64))
	case Tagged:
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(x.Index))
		sb.WriteByte(':')
		writeFlat(sb, x.Value)
	case Seq:
		sb.WriteByte('{')
		for i, item := range x.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeFlat(sb, item)
		}
		sb.WriteByte('}')
	case Box:
		sb.WriteByte('<')
		sb.WriteString(x.tag)
		sb.WriteByte('>')
	}
}

// Plain converts v to a tree of plain Go values suitable for generic encoders:
// Char and String become string, Int becomes int64, Float becomes float64,
// Seq becomes []any, Tagged and Box become maps.
func Plain(v Value) any {
	switch x := v.(type) {
	case Char:
		return string(rune(x))
	case String:
		return string(x)
	case Int:
		return int64(x)
	case Float:
		return float64(x)
	case Tagged:
		return map[string]any{"index": x.Index, "value": Plain(x.Value)}
	case Seq:
		result := make([]any, len(x.items))
		for i, item := range x.items {
			result[i] = Plain(item)
		}
		return result
	case Box:
		return map[string]any{"tag": x.tag, "value": fmt.Sprint(x.payload)}
	}
	return nil
}

func (c Char) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(rune(c)))
}

func (t Tagged) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Index int   `json:"index"`
		Value Value `json:"value"`
	}{t.Index, t.Value})
}

func (s Seq) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

func (b Box) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"tag": b.tag, "value": b.payload})
}

// JSON encodes v, the result is indented if indent is not empty.
func JSON(v Value, indent string) ([]byte, error) {
	if indent == "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", indent)
}

// YAML encodes v as YAML document.
func YAML(v Value) ([]byte, error) {
	return yaml.Marshal(Plain(v))
}
