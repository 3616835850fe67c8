// Package metrics reads belief metrics out of planner evaluation logs.
//
// Logs are JSON or JSONL files where each record may embed metrics directly
// or inside a "metrics" field. The reader is tolerant of minimal inputs:
// records missing a field fall back to neutral values.
package metrics

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Record is a single decoded log entry.
type Record map[string]interface{}

// CollectFiles returns the log files under path. A file path is returned
// as-is; a directory is scanned for *.json, *.jsonl and *.log entries,
// sorted per extension.
func CollectFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat log path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	for _, ext := range []string{"*.json", "*.jsonl", "*.log"} {
		matches, err := filepath.Glob(filepath.Join(path, ext))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", ext, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}

// ReadRecords decodes JSON objects from the given files. Each file is first
// read as line-delimited JSON; if a line fails to parse, the whole file is
// retried as a single JSON array or object before the file is skipped.
func ReadRecords(paths []string) ([]Record, error) {
	var records []Record
	for _, path := range paths {
		recs, err := readFileRecords(path)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

func readFileRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read log file %s: %w", path, err)
	}

	var records []Record
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			// Not line-delimited; retry the whole file.
			return wholeFileRecords(data), nil
		}
		records = append(records, rec)
	}
	return records, nil
}

// wholeFileRecords parses data as a JSON array of objects or a single
// object. Unparseable content yields no records rather than an error.
func wholeFileRecords(data []byte) []Record {
	var list []Record
	if err := json.Unmarshal(data, &list); err == nil {
		var out []Record
		for _, rec := range list {
			if rec != nil {
				out = append(out, rec)
			}
		}
		return out
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err == nil {
		return []Record{rec}
	}
	return nil
}
