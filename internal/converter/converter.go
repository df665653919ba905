// Package converter runs the JSON to environment-string pipeline:
// parse, serialize compactly, escape, print and optionally persist.
package converter

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/mcncl/jsonenv/internal/errors"
	"github.com/mcncl/jsonenv/internal/escaper"
	"github.com/mcncl/jsonenv/internal/models"
	"github.com/mcncl/jsonenv/internal/output"
	"github.com/mcncl/jsonenv/internal/parser"
	"github.com/mcncl/jsonenv/internal/serializer"
)

// Banner is printed on the line before the escaped value.
const Banner = "Environment variable string:"

// Converter turns a JSON file into a single-quoted environment string
type Converter struct {
	logger     *zap.Logger
	stdout     io.Writer
	serializer *serializer.Serializer
	escaper    *escaper.Escaper
	writer     *output.Writer
}

// NewConverter creates a Converter that prints to stdout and logs to logger.
// A nil logger disables logging.
func NewConverter(logger *zap.Logger, stdout io.Writer) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		logger:     logger,
		stdout:     stdout,
		serializer: serializer.NewSerializer(),
		escaper:    escaper.NewEscaper(),
		writer:     output.NewWriter(),
	}
}

// Convert reads inputPath, prints the escaped result and, when outputPath is
// not empty, writes it there. Any failure aborts the run; nothing is printed
// until the value has been fully converted.
func (c *Converter) Convert(inputPath, outputPath string) (string, error) {
	start := time.Now()

	// 1. Read and parse
	doc, err := parser.ParseFile(inputPath)
	if err != nil {
		return "", err
	}
	fields := []zap.Field{zap.String("path", doc.Source), zap.Int("bytes", doc.Size)}
	if obj, ok := doc.Root.(*models.Object); ok {
		fields = append(fields, zap.Strings("keys", obj.Keys()))
	}
	c.logger.Debug("parsed input", fields...)

	// 2. Compact serialization
	canonical, err := c.serializer.Serialize(doc.Root)
	if err != nil {
		return "", err
	}
	c.logger.Debug("serialized compact JSON", zap.Int("bytes", len(canonical)))

	// 3-4. Escape and wrap
	escaped := c.escaper.Escape(canonical)
	c.logger.Debug("escaped value", zap.Int("bytes", len(escaped)))

	// 5. Emit and persist
	if _, err := fmt.Fprintf(c.stdout, "%s\n%s\n", Banner, escaped); err != nil {
		return "", errors.NewOutputError("failed to write to stdout", err)
	}

	if outputPath != "" {
		if err := c.writer.WriteFile(outputPath, escaped); err != nil {
			return "", err
		}
		c.logger.Debug("wrote output file", zap.String("path", outputPath))

		if _, err := fmt.Fprintf(c.stdout, "\nSaved to %s\n", outputPath); err != nil {
			return "", errors.NewOutputError("failed to write to stdout", err)
		}
	}

	c.logger.Debug("conversion finished", zap.Duration("duration", time.Since(start)))
	return escaped, nil
}
