package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"vshell/vfs"
)

// Dispatcher maps parsed command lines onto engine calls and renders their
// results. Engine errors are reported as "<verb>: <message>" text; nothing
// a command does terminates the session except the exit verb.
type Dispatcher struct {
	fs  *vfs.VFS
	out io.Writer
}

// NewDispatcher wires a dispatcher to an engine instance. All command
// output, including error text, goes to out.
func NewDispatcher(fs *vfs.VFS, out io.Writer) *Dispatcher {
	return &Dispatcher{fs: fs, out: out}
}

// FS exposes the underlying engine, mainly for prompt construction.
func (d *Dispatcher) FS() *vfs.VFS {
	return d.fs
}

// Dispatch executes one command line. It returns true when the line was
// the termination verb and the session should stop.
func (d *Dispatcher) Dispatch(line string) (terminate bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}
	verb, args := ParseVerb(tokens[0]), tokens[1:]

	var err error
	switch verb {
	case VerbExit:
		return true
	case VerbUnknown:
		fmt.Fprintf(d.out, "unknown command: %s\n", tokens[0])
		return false
	case VerbLs:
		err = d.runLs(args)
	case VerbCd:
		err = d.runCd(args)
	case VerbTree:
		err = d.runTree(args)
	case VerbChmod:
		err = d.runChmod(args)
	case VerbRm:
		err = d.runRm(args)
	case VerbInfo:
		err = d.runInfo(args)
	}
	if err != nil {
		fmt.Fprintf(d.out, "%s: %s\n", verb, err)
	}
	return false
}

type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }

// runLs handles `ls [-l] [path]`.
func (d *Dispatcher) runLs(args []string) error {
	long := false
	if len(args) > 0 && args[0] == "-l" {
		long = true
		args = args[1:]
	}
	if len(args) > 1 {
		return usageError("ls [-l] [path]")
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	if long {
		entries, err := d.fs.LsLong(path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			typ := "-"
			if e.IsDir {
				typ = "d"
			}
			fmt.Fprintf(d.out, "%s%s %s\n", typ, e.Mode, e.Name)
		}
		return nil
	}

	names, err := d.fs.Ls(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out, strings.Join(names, " "))
	return nil
}

// runCd handles `cd [path]`; without an argument it changes to root.
func (d *Dispatcher) runCd(args []string) error {
	if len(args) > 1 {
		return usageError("cd [path]")
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	return d.fs.Cd(path)
}

// runTree handles `tree [-L depth] [path]`.
func (d *Dispatcher) runTree(args []string) error {
	maxDepth := -1
	if len(args) > 0 && args[0] == "-L" {
		if len(args) < 2 {
			return usageError("tree [-L depth] [path]")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return usageError("tree [-L depth] [path]")
		}
		maxDepth = n
		args = args[2:]
	}
	if len(args) > 1 {
		return usageError("tree [-L depth] [path]")
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	lines, err := d.fs.Tree(path, maxDepth)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(d.out, line)
	}
	return nil
}

// runChmod handles `chmod MODE PATH`.
func (d *Dispatcher) runChmod(args []string) error {
	if len(args) != 2 {
		return usageError("chmod MODE PATH")
	}
	return d.fs.Chmod(args[1], args[0])
}

// runRm handles `rm [-r] PATH`.
func (d *Dispatcher) runRm(args []string) error {
	recursive := false
	if len(args) > 0 && (args[0] == "-r" || args[0] == "-R") {
		recursive = true
		args = args[1:]
	}
	if len(args) != 1 {
		return usageError("rm [-r] PATH")
	}
	return d.fs.Rm(args[0], recursive)
}

// runInfo handles `vfs-info`.
func (d *Dispatcher) runInfo(args []string) error {
	if len(args) != 0 {
		return usageError("vfs-info")
	}
	info := d.fs.Info()
	fmt.Fprintf(d.out, "manifest: %s\n", info.ManifestName)
	fmt.Fprintf(d.out, "sha256: %s\n", info.Digest)
	return nil
}
