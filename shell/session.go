package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vshell/internal/util"
)

// commentMarker starts a skipped line in script sources.
const commentMarker = "#"

// Session runs command lines from a script source, an interactive loop,
// or both in order against one dispatcher. Engine state, in particular
// the tree and cwd, persists across the mode transition.
type Session struct {
	id     uuid.UUID
	disp   *Dispatcher
	prompt func() string
	out    io.Writer
	logger zerolog.Logger
}

// NewSession creates a session around disp. prompt is called before every
// echoed or read line so the display tracks the current cwd.
func NewSession(disp *Dispatcher, prompt func() string, out io.Writer) *Session {
	id := uuid.New()
	return &Session{
		id:     id,
		disp:   disp,
		prompt: prompt,
		out:    out,
		logger: util.GetLogger("session").With().Str("session", id.String()).Logger(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Dispatcher returns the dispatcher the session drives.
func (s *Session) Dispatcher() *Dispatcher {
	return s.disp
}

// RunScript consumes lines from src in order. Blank lines and comment
// lines are skipped; every other line is echoed with the current prompt
// before being dispatched. It returns true when the script signaled
// termination, in which case remaining lines were not processed.
func (s *Session) RunScript(src io.Reader) (terminated bool, err error) {
	s.logger.Debug().Msg("Script execution starting")

	scanner := bufio.NewScanner(src)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}
		fmt.Fprintf(s.out, "%s%s\n", s.prompt(), line)
		if s.disp.Dispatch(line) {
			s.logger.Info().Int("line", lineno).Msg("Script terminated by exit command")
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("read script: %w", err)
	}
	s.logger.Debug().Int("lines", lineno).Msg("Script execution finished")
	return false, nil
}

// RunInteractive reads one line at a time from src, printing the prompt
// before each read. Empty lines are ignored. End-of-input ends the loop
// cleanly; the exit verb ends it explicitly.
func (s *Session) RunInteractive(src io.Reader) error {
	s.logger.Debug().Msg("Interactive loop starting")

	scanner := bufio.NewScanner(src)
	for {
		fmt.Fprint(s.out, s.prompt())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			// EOF: finish the prompt line before leaving
			fmt.Fprintln(s.out)
			s.logger.Debug().Msg("Interactive loop ended at end of input")
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if s.disp.Dispatch(line) {
			s.logger.Info().Msg("Interactive loop terminated by exit command")
			return nil
		}
	}
}
