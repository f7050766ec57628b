package document

import "strconv"

// Value is an attribute value: a string or a boolean.
type Value struct {
	Str    string
	Bool   bool
	IsBool bool
}

// String returns the value as written in the source.
func (v Value) String() string {
	if v.IsBool {
		return strconv.FormatBool(v.Bool)
	}
	return v.Str
}

// StringValue wraps a string attribute value.
func StringValue(s string) Value { return Value{Str: s} }

// BoolValue wraps a boolean attribute value.
func BoolValue(b bool) Value { return Value{Bool: b, IsBool: true} }

// ParseValue turns the literals "true" and "false" into booleans and keeps
// every other string as is.
func ParseValue(s string) Value {
	switch s {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}
	return StringValue(s)
}

// Attr is one key/value attribute.
type Attr struct {
	Key   string
	Value Value
}

// Attrs is an ordered attribute list with unique keys.
type Attrs []Attr

// Get returns the value for key.
func (a Attrs) Get(key string) (Value, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return Value{}, false
}

// Set returns a list with key set to value, replacing an existing entry in place.
func (a Attrs) Set(key string, value Value) Attrs {
	for i, attr := range a {
		if attr.Key == key {
			out := append(Attrs(nil), a...)
			out[i].Value = value
			return out
		}
	}
	out := append(Attrs(nil), a...)
	return append(out, Attr{Key: key, Value: value})
}

// Without returns a list lacking the given keys.
func (a Attrs) Without(keys ...string) Attrs {
	out := make(Attrs, 0, len(a))
	for _, attr := range a {
		skip := false
		for _, k := range keys {
			if attr.Key == k {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, attr)
		}
	}
	return out
}
