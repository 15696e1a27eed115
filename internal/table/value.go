package table

// Kind identifies what a cell holds. It is decided once, when the
// table is loaded; profiling only ever switches on the tag.
type Kind uint8

const (
	Null Kind = iota
	Empty
	Text
	Number
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Empty:
		return "empty"
	case Text:
		return "text"
	case Number:
		return "number"
	}
	return "unknown"
}

// Value is a single cell. Num is meaningful only when Kind == Number,
// Str only when Kind is Number or Text. For Number cells Str keeps the
// original spelling so mixed columns can fall back to text treatment.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// IsMissing reports whether the cell is null or empty.
func (v Value) IsMissing() bool {
	return v.Kind == Null || v.Kind == Empty
}

func NullValue() Value { return Value{Kind: Null} }

func EmptyValue() Value { return Value{Kind: Empty} }

func TextValue(s string) Value { return Value{Kind: Text, Str: s} }

func NumberValue(n float64, raw string) Value {
	return Value{Kind: Number, Num: n, Str: raw}
}
