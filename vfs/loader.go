package vfs

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"strings"

	"vshell/internal/util"
)

// Manifest row types
const (
	rowTypeDir  = "dir"
	rowTypeFile = "file"
)

// buildTree parses manifest rows into a fresh tree. The manifest is CSV
// with rows of path,type[,content]. An optional header row whose fields
// contain both "path" and "type" (case-insensitive) is skipped. Rows with
// fewer than two fields are ignored, matching lenient tabular sources.
//
// A row whose parent path already exists as a file, and a row with an
// unrecognized type token, both abort the whole load: no partial tree is
// ever returned.
func buildTree(data []byte) (*Node, error) {
	logger := util.GetLogger("loader")

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if len(rows) > 0 && isHeaderRow(rows[0]) {
		rows = rows[1:]
	}

	root := NewDirNode("")
	dirCnt, fileCnt := 0, 0
	for i, row := range rows {
		if len(row) < 2 {
			logger.Debug().Int("row", i+1).Msg("Skipping short manifest row")
			continue
		}
		path := strings.TrimSpace(row[0])
		typ := strings.ToLower(strings.TrimSpace(row[1]))
		content := ""
		if len(row) > 2 {
			content = strings.TrimSpace(row[2])
		}

		abs := Resolve(path, "/")

		switch typ {
		case rowTypeDir:
			if _, err := ensureDir(root, abs); err != nil {
				return nil, err
			}
			dirCnt++
		case rowTypeFile:
			dir, base := Split(abs)
			if base == "" {
				return nil, fmt.Errorf("row %d: file row has no basename: %q", i+1, path)
			}
			parent, err := ensureDir(root, dir)
			if err != nil {
				return nil, err
			}
			// A file row must not silently swallow a directory's subtree
			if existing, ok := parent.GetChild(base); ok && existing.IsDir() {
				return nil, fmt.Errorf("row %d: path conflict at %q: exists as directory", i+1, path)
			}
			// Later file rows for the same path win, as in other tabular loaders
			parent.AddChild(NewFileNode(base, content))
			fileCnt++
		default:
			// Strict policy: a typo'd type must not silently become a file
			return nil, fmt.Errorf("row %d: unrecognized type %q for %q", i+1, row[1], path)
		}
	}

	logger.Debug().Int("dirs", dirCnt).Int("files", fileCnt).Msg("Manifest rows applied")
	return root, nil
}

// isHeaderRow reports whether the row looks like a column header rather
// than data.
func isHeaderRow(row []string) bool {
	hasPath, hasType := false, false
	for _, f := range row {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "path":
			hasPath = true
		case "type":
			hasType = true
		}
	}
	return hasPath && hasType
}

// ensureDir walks abs from root creating missing intermediate directories,
// equivalent to `mkdir -p`. It fails if any segment already exists as a
// file.
func ensureDir(root *Node, abs string) (*Node, error) {
	node := root
	for _, seg := range segments(Clean(abs)) {
		child, ok := node.GetChild(seg)
		if !ok {
			dir := NewDirNode(seg)
			node.AddChild(dir)
			node = dir
			continue
		}
		if !child.IsDir() {
			return nil, fmt.Errorf("path conflict at %q: exists as file", seg)
		}
		node = child
	}
	return node, nil
}

// digestOf computes the integrity digest over the exact raw manifest bytes.
func digestOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
