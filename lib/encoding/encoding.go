// Package encoding serializes collected form data into request bodies.
//
// An Encoder turns the ordered multi-map of form fields into a body of one
// content type. URLEncoded, Multipart, and JSON are the builtin encoders;
// Msgpack is provided for applications that register it. The engine's
// registry maps content-type identifiers to encoders and falls back to
// URLEncoded on a lookup miss.
package encoding

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/url"

	"github.com/vmihailenco/msgpack/v5"
)

// Content-type identifiers for the provided encoders.
const (
	ContentTypeURLEncoded = "application/x-www-form-urlencoded"
	ContentTypeMultipart  = "multipart/form-data"
	ContentTypeJSON       = "application/json"
	ContentTypeMsgpack    = "application/msgpack"
)

// Field is one form entry.
type Field struct {
	Name  string
	Value string
}

// Form is an ordered multi-map of form entries. Repeated names are distinct
// entries, never overwritten.
type Form []Field

// Add appends an entry, preserving duplicates.
func (f *Form) Add(name, value string) {
	*f = append(*f, Field{Name: name, Value: value})
}

// Get returns the first value for name and whether any entry exists.
func (f Form) Get(name string) (string, bool) {
	for _, e := range f {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Values returns all values for name in entry order.
func (f Form) Values(name string) []string {
	var vs []string
	for _, e := range f {
		if e.Name == name {
			vs = append(vs, e.Value)
		}
	}
	return vs
}

// Clone returns an independent snapshot of the form. The engine snapshots
// form state at actuation time so later document mutations cannot affect an
// in-flight exchange.
func (f Form) Clone() Form {
	if f == nil {
		return nil
	}
	c := make(Form, len(f))
	copy(c, f)
	return c
}

// flatten reduces the multi-map to one value per key, last entry winning,
// matching HTML's own object-from-entries behavior.
func (f Form) flatten() map[string]string {
	m := make(map[string]string, len(f))
	for _, e := range f {
		m[e.Name] = e.Value
	}
	return m
}

// Encoder serializes a form into a request body. The returned content type
// is the full header value and may carry parameters (multipart boundaries).
type Encoder func(form Form) (contentType string, body []byte, err error)

// URLEncoded is the default encoder: application/x-www-form-urlencoded with
// duplicates preserved as repeated keys.
func URLEncoded(form Form) (string, []byte, error) {
	vals := url.Values{}
	for _, e := range form {
		vals.Add(e.Name, e.Value)
	}
	return ContentTypeURLEncoded, []byte(vals.Encode()), nil
}

// Multipart encodes the form as multipart/form-data. The returned content
// type carries the generated boundary.
func Multipart(form Form) (string, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, e := range form {
		if err := w.WriteField(e.Name, e.Value); err != nil {
			return "", nil, err
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

// JSON encodes the form as a flat JSON object, one value per key (last
// entry wins).
func JSON(form Form) (string, []byte, error) {
	body, err := json.Marshal(form.flatten())
	if err != nil {
		return "", nil, err
	}
	return ContentTypeJSON, body, nil
}

// Msgpack encodes the form as a msgpack map, flattened like JSON. Not
// registered by default; pass it to the engine's encoder registry under
// ContentTypeMsgpack.
func Msgpack(form Form) (string, []byte, error) {
	body, err := msgpack.Marshal(form.flatten())
	if err != nil {
		return "", nil, err
	}
	return ContentTypeMsgpack, body, nil
}
