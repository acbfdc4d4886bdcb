// Package shell drives the virtual filesystem from a line-oriented command
// stream: a startup script, an interactive loop, or both in one session.
package shell

// Verb is the closed set of commands the dispatcher understands. Keeping
// it an enumerated type makes the dispatch switch exhaustive, so a new
// command is a compile-time extension rather than a string match.
type Verb int

const (
	VerbUnknown Verb = iota
	VerbLs
	VerbCd
	VerbTree
	VerbChmod
	VerbRm
	VerbInfo
	VerbExit
)

// ParseVerb maps a command token to its Verb; unrecognized tokens map to
// VerbUnknown.
func ParseVerb(tok string) Verb {
	switch tok {
	case "ls":
		return VerbLs
	case "cd":
		return VerbCd
	case "tree":
		return VerbTree
	case "chmod":
		return VerbChmod
	case "rm":
		return VerbRm
	case "vfs-info":
		return VerbInfo
	case "exit":
		return VerbExit
	default:
		return VerbUnknown
	}
}

func (v Verb) String() string {
	switch v {
	case VerbLs:
		return "ls"
	case VerbCd:
		return "cd"
	case VerbTree:
		return "tree"
	case VerbChmod:
		return "chmod"
	case VerbRm:
		return "rm"
	case VerbInfo:
		return "vfs-info"
	case VerbExit:
		return "exit"
	default:
		return "unknown"
	}
}
