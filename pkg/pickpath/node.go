package pickpath

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// ErrShapeMismatch is reported by Node.Err when a segment was applied to a
// value of the wrong kind, e.g. a key on an array or an index on a string.
var ErrShapeMismatch = errors.New("shape mismatch")

// Keyed is implemented by containers that can be descended into by key.
type Keyed interface {
	Lookup(key string) (interface{}, bool)
}

// Indexed is implemented by containers that can be descended into by index.
type Indexed interface {
	Len() int
	At(i int) interface{}
}

type Kind uint8

const (
	KindAbsent Kind = iota
	KindNull
	KindObject
	KindArray
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindScalar:
		return "scalar"
	}
	return "unknown"
}

// Node is a read-only view of a value found in a tree.
type Node struct {
	v    interface{}
	kind Kind
	err  error
}

// Wrap classifies v. A nil v is absent, not null; JSON nulls are only
// produced by descending into a container that holds one.
func Wrap(v interface{}) Node {
	if v == nil {
		return Node{}
	}
	return classify(v)
}

func classify(v interface{}) Node {
	switch v.(type) {
	case nil:
		return Node{kind: KindNull}
	case map[string]interface{}, Keyed:
		return Node{v: v, kind: KindObject}
	case []interface{}, Indexed:
		return Node{v: v, kind: KindArray}
	default:
		return Node{v: v, kind: KindScalar}
	}
}

func (n Node) Kind() Kind { return n.kind }

// Exists reports whether the node holds a value, including JSON null.
func (n Node) Exists() bool { return n.kind != KindAbsent }

// Err is non-nil when the node is absent because the path did not fit the
// shape of the tree. Missing keys and out-of-range indices leave it nil.
func (n Node) Err() error { return n.err }

// Interface returns the underlying value, nil when absent or null.
func (n Node) Interface() interface{} { return n.v }

// Key descends into an object.
func (n Node) Key(k string) Node {
	switch c := n.v.(type) {
	case map[string]interface{}:
		v, ok := c[k]
		if !ok {
			return Node{}
		}
		return classify(v)
	case Keyed:
		v, ok := c.Lookup(k)
		if !ok {
			return Node{}
		}
		return classify(v)
	}
	return n.mismatch(Key(k))
}

// Index descends into an array.
func (n Node) Index(i int) Node {
	switch c := n.v.(type) {
	case []interface{}:
		if i < 0 || i >= len(c) {
			return Node{}
		}
		return classify(c[i])
	case Indexed:
		if i < 0 || i >= c.Len() {
			return Node{}
		}
		return classify(c.At(i))
	}
	return n.mismatch(Index(i))
}

func (n Node) mismatch(s Segment) Node {
	return Node{err: errors.Wrapf(ErrShapeMismatch, "segment %s applied to %s", s, n.kind)}
}

// Len returns the number of elements of an array node, zero otherwise.
func (n Node) Len() int {
	switch c := n.v.(type) {
	case []interface{}:
		return len(c)
	case Indexed:
		return c.Len()
	}
	return 0
}

// Elements returns the children of an array node.
func (n Node) Elements() []Node {
	if n.kind != KindArray {
		return nil
	}
	out := make([]Node, n.Len())
	for i := range out {
		out[i] = n.Index(i)
	}
	return out
}

// String coerces the node to text. Strings are returned as is, numbers and
// booleans in their literal form, objects and arrays as JSON. Absent and
// null nodes report false, so callers can tell them apart from "".
func (n Node) String() (string, bool) {
	switch n.kind {
	case KindAbsent, KindNull:
		return "", false
	}

	switch v := n.v.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case fmt.Stringer:
		return v.String(), true
	}

	b, err := json.Marshal(n.v)
	if err != nil {
		return fmt.Sprint(n.v), true
	}
	return string(b), true
}

// StringPtr is String returning nil for absent values.
func (n Node) StringPtr() *string {
	s, ok := n.String()
	if !ok {
		return nil
	}
	return &s
}
