package serializer

import (
	"bytes"
	"fmt"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/mcncl/jsonenv/internal/errors"
	"github.com/mcncl/jsonenv/internal/models"
)

// Serializer renders a value tree as compact JSON: no insignificant
// whitespace, "," between items, ":" between names and values, and object
// members in insertion order.
type Serializer struct{}

// NewSerializer creates a new Serializer instance
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Serialize returns the compact JSON text for v.
func (s *Serializer) Serialize(v models.Value) (string, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)

	if err := s.write(enc, v); err != nil {
		return "", errors.NewSerializeError("failed to encode JSON value", err)
	}

	// The encoder terminates every top-level value with a newline.
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

func (s *Serializer) write(enc *jsontext.Encoder, v models.Value) error {
	switch val := v.(type) {
	case models.Null, nil:
		return enc.WriteToken(jsontext.Null)
	case models.Bool:
		return enc.WriteToken(jsontext.Bool(bool(val)))
	case models.String:
		return enc.WriteToken(jsontext.String(string(val)))
	case models.Number:
		// Written as a raw value so the literal is validated but never reformatted.
		if err := enc.WriteValue(jsontext.Value(val)); err != nil {
			return fmt.Errorf("invalid number literal %q: %w", string(val), err)
		}
		return nil
	case models.Array:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, item := range val {
			if err := s.write(enc, item); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	case *models.Object:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		for _, m := range val.Members {
			if err := enc.WriteToken(jsontext.String(m.Name)); err != nil {
				return err
			}
			if err := s.write(enc, m.Value); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
}
