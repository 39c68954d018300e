package jsonforms

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is a single payload entry, either a string or an integer.
type Value struct {
	str   string
	num   int64
	isNum bool
}

func String(s string) Value {
	return Value{str: s}
}

func Int(n int64) Value {
	return Value{num: n, isNum: true}
}

func (v Value) IsInt() bool {
	return v.isNum
}

func (v Value) Int() int64 {
	return v.num
}

func (v Value) String() string {
	if v.isNum {
		return strconv.FormatInt(v.num, 10)
	}
	return v.str
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return []byte(strconv.FormatInt(v.num, 10)), nil
	}
	return marshalString(v.str)
}

// marshalString encodes s without escaping <, > and &.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(s)
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Payload maps field identifiers to values and marshals to a JSON object
// whose keys follow insertion order. setting an existing key replaces its
// value but keeps its original position.
type Payload struct {
	keys   []string
	values map[string]Value
}

func NewPayload() *Payload {
	return &Payload{values: map[string]Value{}}
}

func (p *Payload) Set(key string, v Value) {
	if p.values == nil {
		p.values = map[string]Value{}
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
}

func (p *Payload) Get(key string) (Value, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *Payload) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

func (p *Payload) Len() int {
	return len(p.keys)
}

func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := marshalString(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')

		encodedValue, err := p.values[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
