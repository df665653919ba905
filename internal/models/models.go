package models

// Value is any JSON value: *Object, Array, String, Number, Bool or Null.
type Value interface {
	isValue()
}

// Member is a single name/value pair of a JSON object.
type Member struct {
	Name  string
	Value Value
}

// Object is a JSON object that remembers the order its members were added in.
type Object struct {
	Members []Member

	index map[string]int
}

// Array represents a JSON array.
type Array []Value

// String represents a JSON string, already unescaped.
type String string

// Number holds a JSON number exactly as it was written in the source.
type Number string

// Bool represents a JSON boolean.
type Bool bool

// Null represents the JSON null literal.
type Null struct{}

func (*Object) isValue() {}
func (Array) isValue()   {}
func (String) isValue()  {}
func (Number) isValue()  {}
func (Bool) isValue()    {}
func (Null) isValue()    {}

// NewObject creates an empty Object
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set adds a member. If name is already present its value is replaced and
// the member keeps its original position.
func (o *Object) Set(name string, v Value) {
	if o.index == nil {
		o.index = make(map[string]int, len(o.Members))
		for i, m := range o.Members {
			o.index[m.Name] = i
		}
	}
	if i, ok := o.index[name]; ok {
		o.Members[i].Value = v
		return
	}
	o.index[name] = len(o.Members)
	o.Members = append(o.Members, Member{Name: name, Value: v})
}

// Keys returns member names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Name
	}
	return keys
}

// Document is a parsed JSON input together with where it came from.
type Document struct {
	Root   Value
	Source string // file path, empty when parsed from a reader
	Size   int    // number of bytes read
}
