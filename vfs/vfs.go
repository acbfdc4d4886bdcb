package vfs

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"vshell/internal/util"
)

// VFS is the virtual filesystem engine: the tree built once from a
// manifest, the session's working directory and the manifest identity.
//
// A single RWMutex guards the tree and cwd. Mutators take the write lock,
// queries the read lock, so a future multi-session runner can share one
// instance without structural changes.
type VFS struct {
	mu     sync.RWMutex
	root   *Node
	cwd    string
	source string
	digest string
}

// Info identifies the loaded manifest for integrity reporting.
type Info struct {
	ManifestName string
	Digest       string
}

// Entry is one row of a long-format directory listing.
type Entry struct {
	Name  string
	Mode  Mode
	IsDir bool
}

// New reads the manifest file at path and builds the filesystem from it.
// The file is read fully once; no handle is retained. Any failure is a
// *LoadError and no instance is produced.
func New(path string) (*VFS, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return NewFromBytes(filepath.Base(path), data)
}

// NewFromBytes builds the filesystem from raw manifest bytes. name is the
// manifest's source identifier reported by Info.
func NewFromBytes(name string, data []byte) (*VFS, error) {
	logger := util.GetLogger("vfs")

	root, err := buildTree(data)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}

	v := &VFS{
		root:   root,
		cwd:    "/",
		source: name,
		digest: digestOf(data),
	}
	logger.Info().Str("manifest", name).Str("sha256", v.digest).Msg("Virtual filesystem loaded")
	return v, nil
}

// Cwd returns the current working directory as an absolute path.
func (v *VFS) Cwd() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cwd
}

// Info returns the manifest name and its content digest.
func (v *VFS) Info() Info {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Info{ManifestName: v.source, Digest: v.digest}
}

// lookup walks the tree for an already-resolved absolute path.
// Caller must hold v.mu.
func (v *VFS) lookup(abs string) *Node {
	node := v.root
	for _, seg := range segments(abs) {
		if !node.IsDir() {
			return nil
		}
		child, ok := node.GetChild(seg)
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// Ls lists the target path: child names in lexicographic order for a
// directory, the node's own name for a file. An empty path lists cwd.
func (v *VFS) Ls(path string) ([]string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	node := v.lookup(Resolve(path, v.cwd))
	if node == nil {
		return nil, opErr(OpLs, displayPath(path, v.cwd), ErrNotFound)
	}
	if node.IsDir() {
		return node.ChildNames(), nil
	}
	return []string{node.Name()}, nil
}

// LsLong lists the target path with per-entry modes for long-format
// rendering. An empty path lists cwd.
func (v *VFS) LsLong(path string) ([]Entry, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	node := v.lookup(Resolve(path, v.cwd))
	if node == nil {
		return nil, opErr(OpLs, displayPath(path, v.cwd), ErrNotFound)
	}
	if !node.IsDir() {
		return []Entry{{Name: node.Name(), Mode: node.Mode(), IsDir: false}}, nil
	}
	names := node.ChildNames()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		child, _ := node.GetChild(name)
		entries = append(entries, Entry{Name: name, Mode: child.Mode(), IsDir: child.IsDir()})
	}
	return entries, nil
}

// Cd sets the working directory. An empty path changes to root.
func (v *VFS) Cd(path string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	abs := Resolve(path, v.cwd)
	if path == "" {
		abs = "/"
	}
	node := v.lookup(abs)
	if node == nil {
		return opErr(OpCd, displayPath(path, abs), ErrNotFound)
	}
	if !node.IsDir() {
		return opErr(OpCd, displayPath(path, abs), ErrNotDirectory)
	}
	v.cwd = abs
	return nil
}

// Tree renders the subtree at path depth-first in pre-order, two spaces of
// indent per level, children in lexicographic order. The start node is
// labeled "/" when it is root. maxDepth prunes recursion below that many
// levels under the start node; negative means unlimited. An empty path
// starts at cwd.
func (v *VFS) Tree(path string, maxDepth int) ([]string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	start := v.lookup(Resolve(path, v.cwd))
	if start == nil {
		return nil, opErr(OpTree, displayPath(path, v.cwd), ErrNotFound)
	}

	var lines []string
	var recurse func(n *Node, prefix string, depth int)
	recurse = func(n *Node, prefix string, depth int) {
		label := n.Name()
		if n.IsRoot() {
			label = "/"
		}
		lines = append(lines, prefix+label)
		if !n.IsDir() || (maxDepth >= 0 && depth >= maxDepth) {
			return
		}
		for _, name := range n.ChildNames() {
			child, _ := n.GetChild(name)
			recurse(child, prefix+"  ", depth+1)
		}
	}
	recurse(start, "", 0)
	return lines, nil
}

// Chmod parses spec as an octal literal or 9-character symbolic string and
// overwrites the target node's mode.
func (v *VFS) Chmod(path, spec string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	mode, err := ParseMode(spec)
	if err != nil {
		return opErr(OpChmod, spec, err)
	}
	node := v.lookup(Resolve(path, v.cwd))
	if node == nil {
		return opErr(OpChmod, displayPath(path, v.cwd), ErrNotFound)
	}
	node.SetMode(mode)
	return nil
}

// ModeOf returns the mode of the node at path.
func (v *VFS) ModeOf(path string) (Mode, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	node := v.lookup(Resolve(path, v.cwd))
	if node == nil {
		return 0, opErr(OpLs, displayPath(path, v.cwd), ErrNotFound)
	}
	return node.Mode(), nil
}

// Rm detaches the node at path from its parent. A non-empty directory
// needs recursive; its descendants are then detached before the node
// itself. Removal is all-or-nothing: any refusal leaves the tree intact.
func (v *VFS) Rm(path string, recursive bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	abs := Resolve(path, v.cwd)
	if abs == "/" {
		return opErr(OpRm, "/", ErrRemoveRoot)
	}
	node := v.lookup(abs)
	if node == nil {
		return opErr(OpRm, displayPath(path, abs), ErrNotFound)
	}

	if node.IsDir() && node.NumChildren() > 0 {
		if !recursive {
			return opErr(OpRm, displayPath(path, abs), ErrNotEmpty)
		}
		detachAll(node)
	}

	parent := node.Parent()
	parent.RemoveChild(node.Name())

	// cwd must keep resolving to an existing directory; when the removal
	// took cwd or an ancestor of it, fall back to the removed node's parent
	if v.cwd == abs || strings.HasPrefix(v.cwd, abs+"/") {
		v.cwd = parent.Path()
	}
	return nil
}

// detachAll recursively detaches every descendant of a directory so no
// parent back-references outlive the removal.
func detachAll(n *Node) {
	for _, name := range n.ChildNames() {
		child, _ := n.GetChild(name)
		if child.IsDir() {
			detachAll(child)
		}
		n.RemoveChild(name)
	}
}

// ReadFile returns the stored content of the file at path as bytes,
// base64-decoding it first when decodeBase64 is set.
func (v *VFS) ReadFile(path string, decodeBase64 bool) ([]byte, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	node := v.lookup(Resolve(path, v.cwd))
	if node == nil {
		return nil, opErr(OpRead, displayPath(path, v.cwd), ErrNotFound)
	}
	if node.IsDir() {
		return nil, opErr(OpRead, displayPath(path, v.cwd), ErrNotFile)
	}
	if decodeBase64 {
		data, err := base64.StdEncoding.DecodeString(node.Content())
		if err != nil {
			return nil, opErr(OpRead, displayPath(path, v.cwd), fmt.Errorf("%w: %v", ErrDecode, err))
		}
		return data, nil
	}
	return []byte(node.Content()), nil
}

// displayPath prefers the path as the user typed it in error messages and
// falls back to the resolved form for empty input.
func displayPath(typed, resolved string) string {
	if typed != "" {
		return typed
	}
	return resolved
}
