package vfs

import (
	"sort"
	"strconv"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
)

// Kind distinguishes the two node variants of the tree.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

// Mode is a 9-bit POSIX permission triple (owner/group/other x rwx).
// It is stored and reported, never enforced against operations.
type Mode uint32

// Default modes assigned by the loader
const (
	DefaultFileMode Mode = 0o644
	DefaultDirMode  Mode = 0o755
)

// String renders the mode in symbolic "rwxr-xr-x" form.
func (m Mode) String() string {
	var b strings.Builder
	for _, shift := range []uint{6, 3, 0} {
		v := (m >> shift) & 0o7
		if v&4 != 0 {
			b.WriteByte('r')
		} else {
			b.WriteByte('-')
		}
		if v&2 != 0 {
			b.WriteByte('w')
		} else {
			b.WriteByte('-')
		}
		if v&1 != 0 {
			b.WriteByte('x')
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// ParseMode accepts either an octal literal ("644", "0o755") or a
// 9-character symbolic string of r/w/x/- in owner/group/other order.
// Anything else is ErrInvalidMode.
func ParseMode(spec string) (Mode, error) {
	s := strings.TrimSpace(spec)
	s = strings.TrimPrefix(s, "0o")

	if s != "" && strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
		v, err := strconv.ParseUint(s, 8, 32)
		if err != nil || v > 0o777 {
			return 0, ErrInvalidMode
		}
		return Mode(v), nil
	}

	if len(s) == 9 {
		var m Mode
		for i := 0; i < 9; i += 3 {
			var v Mode
			switch {
			case s[i] == 'r':
				v |= 4
			case s[i] != '-':
				return 0, ErrInvalidMode
			}
			switch {
			case s[i+1] == 'w':
				v |= 2
			case s[i+1] != '-':
				return 0, ErrInvalidMode
			}
			switch {
			case s[i+2] == 'x':
				v |= 1
			case s[i+2] != '-':
				return 0, ErrInvalidMode
			}
			m = m<<3 | v
		}
		return m, nil
	}

	return 0, ErrInvalidMode
}

// Node is a single entry in the virtual tree: a file with content or a
// directory with named children. The parent pointer is lookup-only;
// ownership flows strictly from a directory's children map to the child.
type Node struct {
	name    string
	kind    Kind
	mode    Mode
	parent  *Node // set when attached as a child; never owns the parent
	content string
	// children is non-nil only for directories
	children *xsync.Map[string, *Node]
}

// NewFileNode creates a detached file node with the default file mode.
func NewFileNode(name, content string) *Node {
	return &Node{name: name, kind: KindFile, mode: DefaultFileMode, content: content}
}

// NewDirNode creates a detached directory node with the default dir mode.
func NewDirNode(name string) *Node {
	return &Node{
		name:     name,
		kind:     KindDir,
		mode:     DefaultDirMode,
		children: xsync.NewMap[string, *Node](),
	}
}

// Name returns the node's name (last path component); empty for root.
func (n *Node) Name() string { return n.name }

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.kind == KindDir }

// Mode returns the node's permission bits.
func (n *Node) Mode() Mode { return n.mode }

// SetMode overwrites the node's permission bits.
func (n *Node) SetMode(m Mode) { n.mode = m }

// Content returns the stored file content; empty for directories.
func (n *Node) Content() string { return n.content }

// Parent returns the node's parent, nil for root and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether the node is the tree root.
func (n *Node) IsRoot() bool { return n.parent == nil && n.name == "" }

// AddChild attaches child under the node and sets the child's parent
// back-reference. An existing child of the same name is replaced.
func (n *Node) AddChild(child *Node) {
	n.children.Store(child.name, child)
	child.parent = n
}

// GetChild returns a child node by name.
func (n *Node) GetChild(name string) (*Node, bool) {
	if n.children == nil {
		return nil, false
	}
	return n.children.Load(name)
}

// RemoveChild detaches a child by name and clears its parent reference.
func (n *Node) RemoveChild(name string) bool {
	if n.children == nil {
		return false
	}
	if child, exists := n.children.LoadAndDelete(name); exists {
		child.parent = nil
		return true
	}
	return false
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	if n.children == nil {
		return 0
	}
	return n.children.Size()
}

// ChildNames returns the names of all direct children in lexicographic
// ascending order.
func (n *Node) ChildNames() []string {
	if n.children == nil {
		return nil
	}
	names := make([]string, 0, n.children.Size())
	n.children.Range(func(name string, _ *Node) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Path returns the node's absolute path by walking parent references.
func (n *Node) Path() string {
	if n.parent == nil {
		return "/"
	}
	var parts []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}
