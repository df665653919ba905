package parser

import (
	"bytes"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/mcncl/jsonenv/internal/errors" // Custom errors package
	"github.com/mcncl/jsonenv/internal/models"
)

// Parse reads exactly one JSON value from reader into an order-preserving
// value tree. Whitespace may follow the value; anything else is an error.
func Parse(reader io.Reader) (models.Document, error) {
	// Duplicate names are accepted: the later value wins, the first position stays.
	dec := jsontext.NewDecoder(reader, jsontext.AllowDuplicateNames(true))

	root, err := readValue(dec)
	if err != nil {
		// io.EOF before the first token means there was nothing but whitespace.
		if err == io.EOF && dec.StackDepth() == 0 {
			return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Document{}, classifyDecodeError(err)
	}

	// The decoder treats its input as a stream of values, so a second
	// successful read means there was more than one root.
	if _, err := dec.ReadToken(); err != io.EOF {
		if err == nil {
			return models.Document{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
		return models.Document{}, errors.NewParsingError("invalid trailing data after first JSON value", syntaxCause(err))
	}

	return models.Document{
		Root: root,
		Size: int(dec.InputOffset()),
	}, nil
}

// readValue decodes the next complete value from dec.
func readValue(dec *jsontext.Decoder) (models.Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}

	switch tok.Kind() {
	case 'n':
		return models.Null{}, nil
	case 't':
		return models.Bool(true), nil
	case 'f':
		return models.Bool(false), nil
	case '"':
		return models.String(tok.String()), nil
	case '0':
		// String returns the raw literal for numbers, keeping the source formatting.
		return models.Number(tok.String()), nil
	case '{':
		obj := models.NewObject()
		for dec.PeekKind() != '}' {
			tok, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			// A token is only valid until the next decoder call.
			name := tok.String()
			val, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(name, val)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := models.Array{}
		for dec.PeekKind() != ']' {
			val, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// classifyDecodeError separates malformed JSON from failures of the
// underlying reader.
func classifyDecodeError(err error) error {
	var syntaxError *jsontext.SyntacticError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.ByteOffset),
			syntaxCause(err),
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewInputError("failed to read JSON input", err)
}

// syntaxCause keeps the decoder's detail while still matching ErrInvalidJSON.
func syntaxCause(err error) error {
	return fmt.Errorf("%w: %v", errors.ErrInvalidJSON, err)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewParsingError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile reads the whole file at filePath and parses it. The read happens
// before any parsing, so an unreadable file is always an input error.
func ParseFile(filePath string) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if info.IsDir() {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("'%s' is a directory", filePath),
			errors.ErrNotAFile,
		)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}

	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return models.Document{}, err
	}
	doc.Source = filePath
	doc.Size = len(data)
	return doc, nil
}
