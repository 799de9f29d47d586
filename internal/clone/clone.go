// Package clone deep-copies values through gob encoding.
package clone

import (
	"bytes"
	"encoding/gob"
	"errors"
)

// Clone returns a deep copy of src. The type must be gob-encodable, which
// holds for the plain data structs the storage managers keep.
func Clone[T any](src *T) (*T, error) {
	if src == nil {
		return nil, errors.New("clone: nil source")
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(src); err != nil {
		return nil, err
	}
	dst := new(T)
	if err := gob.NewDecoder(&buf).Decode(dst); err != nil {
		return nil, err
	}
	return dst, nil
}
