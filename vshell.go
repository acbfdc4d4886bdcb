// Package vshell assembles the virtual filesystem engine and the shell
// session around a runtime configuration.
package vshell

import (
	"io"

	"vshell/config"
	"vshell/shell"
	"vshell/vfs"
)

// New builds the virtual filesystem from the configured manifest and wires
// a dispatcher and session around it. All command output goes to out.
func New(cfg *config.Config, out io.Writer) (*shell.Session, error) {
	fs, err := vfs.New(cfg.VFSPath)
	if err != nil {
		return nil, err
	}

	user := shell.CurrentUser()
	host := shell.ShortHostname()
	prompt := shell.Prompt{Template: cfg.PromptTemplate}
	promptFn := func() string {
		return prompt.Format(user, host, fs.Cwd())
	}

	disp := shell.NewDispatcher(fs, out)
	return shell.NewSession(disp, promptFn, out), nil
}
