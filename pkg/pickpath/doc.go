// Package pickpath walks ordered key/index paths through decoded JSON trees.
//
// A Path is a list of segments, each either an object key or an array index.
// Resolution never fails loudly: a path that does not fit the tree yields an
// absent Node. Callers that need to tell "missing" apart from "the tree has
// a different shape than the path expects" can inspect Node.Err.
//
// Roots may be plain decoded JSON (map[string]interface{}, []interface{},
// scalars) or any value implementing Keyed or Indexed, so a set of named
// responses can be walked with the same paths as the responses themselves.
package pickpath
