// Package dataset loads chart records from disk. Records come back as the
// decoded-JSON shapes the key path resolver walks: map[string]any, []any,
// float64/json.Number and string.
//
// Supported files:
//
//	.json   a JSON array of records
//	.jsonc  the same with full-line // comments
//	.jsonl  one JSON record per line
//	.xlsx   first sheet, first row holds dotted key paths
package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxLineBytes caps a single JSONL record.
const maxLineBytes = 64 * 1024 * 1024

// Load reads path, picking the decoder from its extension.
func Load(path string) ([]any, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return decodeArray(b, path)
	case ".jsonc":
		b, err := StripJSONC(path)
		if err != nil {
			return nil, err
		}
		return decodeArray(b, path)
	case ".jsonl", ".ndjson":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadJSONL(f)
	case ".xlsx":
		return LoadXLSX(path, "")
	default:
		return nil, fmt.Errorf("unsupported data file %s (want .json, .jsonc, .jsonl or .xlsx)", path)
	}
}

// StripJSONC loads a JSONC file (full-line // comments) and returns raw JSON
// bytes suitable for unmarshalling.
func StripJSONC(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []byte
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		// Inline // stays: it may be part of a string such as a URL.
		out = append(out, []byte(line+"\n")...)
	}
	return out, scanner.Err()
}

func newDecoder(r io.Reader) *json.Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec
}

func decodeArray(b []byte, name string) ([]any, error) {
	var records []any
	if err := newDecoder(bytes.NewReader(b)).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return records, nil
}

// ReadJSONL decodes one record per non-blank line.
func ReadJSONL(r io.Reader) ([]any, error) {
	reader := bufio.NewReader(r)
	var records []any
	lineNo := 0
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > maxLineBytes {
			return nil, fmt.Errorf("line %d: exceeds %d bytes", lineNo+1, maxLineBytes)
		}
		if len(line) > 0 {
			lineNo++
			if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
				var rec any
				if derr := newDecoder(bytes.NewReader(trimmed)).Decode(&rec); derr != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, derr)
				}
				records = append(records, rec)
			}
		}
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
