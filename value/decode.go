package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrSyntax is matched by every ParseError.
	ErrSyntax = errors.New("invalid JSON")
	// ErrUnsupported is returned when a Go value has no JSON equivalent.
	ErrUnsupported = errors.New("unsupported value")

	errTrailingData = errors.New("unexpected data after top-level value")
)

// ParseError reports malformed JSON text.
type ParseError struct {
	Offset int64 // byte offset where decoding stopped
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSyntax) hold for any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrSyntax }

// Parse decodes exactly one JSON value from data.
func Parse(data []byte) (Value, error) {
	return Decode(bytes.NewReader(data))
}

// ParseString decodes exactly one JSON value from s.
func ParseString(s string) (Value, error) {
	return Decode(strings.NewReader(s))
}

// Decode reads exactly one JSON value from r. Object members keep the order
// in which they appear in the input. Anything but whitespace after the value
// is an error.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Value{}, parseError(dec, err)
	}
	v, err := decodeToken(dec, tok)
	if err != nil {
		return Value{}, parseError(dec, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errTrailingData
		}
		return Value{}, parseError(dec, err)
	}
	return v, nil
}

func parseError(dec *json.Decoder, err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Offset: syntaxErr.Offset, Err: err}
	}
	return &ParseError{Offset: dec.InputOffset(), Err: err}
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return Value{}, fmt.Errorf("unexpected %q", rune(t))
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("number %s: %w", t, err)
		}
		return Number(n), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("unexpected token %T", tok)
}

func decodeArray(dec *json.Decoder) (Value, error) {
	items := []Value{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		item, err := decodeToken(dec, tok)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Value{kind: KindArray, items: items}, nil
}

func decodeObject(dec *json.Decoder) (Value, error) {
	members := []Member{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key must be a string, got %v", tok)
		}
		tok, err = dec.Token()
		if err != nil {
			return Value{}, err
		}
		val, err := decodeToken(dec, tok)
		if err != nil {
			return Value{}, err
		}
		members = setMember(members, key, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Value{kind: KindObject, members: members}, nil
}
