package pickpath

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Segment is a single step of a Path: an object key or an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

func Key(k string) Segment {
	return Segment{key: k}
}

func Index(i int) Segment {
	return Segment{index: i, isIndex: true}
}

func (s Segment) IsIndex() bool { return s.isIndex }

// Key returns the object key; it is empty for index segments.
func (s Segment) Key() string { return s.key }

// Index returns the array index; it is zero for key segments.
func (s Segment) Index() int { return s.index }

func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return strconv.Quote(s.key)
}

func (s Segment) MarshalJSON() ([]byte, error) {
	if s.isIndex {
		return []byte(strconv.Itoa(s.index)), nil
	}
	return json.Marshal(s.key)
}

// Path is an ordered list of segments. A nil Path means "not configured";
// an empty, non-nil Path resolves to the root itself.
type Path []Segment

// Of builds a Path from strings and non-negative ints. It panics on any other
// element and is meant for statically defined paths.
func Of(elems ...interface{}) Path {
	p, err := Parse(elems)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse builds a Path from decoded configuration values. Strings become keys,
// integral non-negative numbers become indices.
func Parse(elems []interface{}) (Path, error) {
	p := make(Path, 0, len(elems))
	for i, e := range elems {
		seg, err := parseSegment(e)
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d", i)
		}
		p = append(p, seg)
	}
	return p, nil
}

func parseSegment(e interface{}) (Segment, error) {
	switch v := e.(type) {
	case string:
		return Key(v), nil
	case int:
		return indexSegment(int64(v))
	case int64:
		return indexSegment(v)
	case uint64:
		if v > math.MaxInt32 {
			return Segment{}, fmt.Errorf("index %d out of range", v)
		}
		return Index(int(v)), nil
	case float64:
		if v != math.Trunc(v) {
			return Segment{}, fmt.Errorf("index %v is not an integer", v)
		}
		return indexSegment(int64(v))
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return Segment{}, fmt.Errorf("index %q is not an integer", v.String())
		}
		return indexSegment(n)
	default:
		return Segment{}, fmt.Errorf("unsupported segment type %T", e)
	}
}

func indexSegment(n int64) (Segment, error) {
	if n < 0 {
		return Segment{}, fmt.Errorf("negative index %d", n)
	}
	if n > math.MaxInt32 {
		return Segment{}, fmt.Errorf("index %d out of range", n)
	}
	return Index(int(n)), nil
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (p *Path) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*p = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var elems []interface{}
	if err := dec.Decode(&elems); err != nil {
		return errors.Wrap(err, "pick path must be a list")
	}

	parsed, err := Parse(elems)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for gopkg.in/yaml.v2.
func (p *Path) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var elems []interface{}
	if err := unmarshal(&elems); err != nil {
		return errors.Wrap(err, "pick path must be a list")
	}

	parsed, err := Parse(elems)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler for github.com/BurntSushi/toml.
func (p *Path) UnmarshalTOML(data interface{}) error {
	elems, ok := data.([]interface{})
	if !ok {
		return fmt.Errorf("pick path must be a list, got %T", data)
	}

	parsed, err := Parse(elems)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
