package parser

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mcncl/accio/internal/errors"
	"github.com/mcncl/accio/value"
)

// Parse decodes exactly one JSON value from reader.
func Parse(reader io.Reader) (value.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return value.Value{}, errors.NewInputError("failed to read JSON", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return value.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	v, err := value.Parse(data)
	if err != nil {
		var parseErr *value.ParseError
		if stderrors.As(err, &parseErr) {
			return value.Value{}, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", parseErr.Offset),
				err,
			)
		}
		return value.Value{}, errors.NewParsingError("failed to decode JSON", err)
	}
	return v, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (value.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return value.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (value.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return value.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return value.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return value.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Warn("closing input file", "path", filePath, "err", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return value.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return value.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	slog.Debug("parsing input file", "path", filePath, "bytes", stat.Size())
	return Parse(file)
}
