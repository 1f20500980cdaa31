package process

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
)

// Descriptor describes a process that has not been started yet.
type Descriptor struct {
	Program string
	Args    []string
	Dir     string
}

// Cmd converts the descriptor into an *exec.Cmd bound to ctx.
func (d Descriptor) Cmd(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, d.Program, d.Args...)
	cmd.Dir = d.Dir
	return cmd
}

// Argv returns the program followed by its arguments.
func (d Descriptor) Argv() []string {
	return append([]string{d.Program}, d.Args...)
}

// String renders the argv for display only. Arguments containing spaces or
// shell metacharacters are Go-quoted (strconv.Quote), not shell-quoted.
func (d Descriptor) String() string {
	parts := make([]string, 0, len(d.Args)+1)
	for _, a := range d.Argv() {
		if a == "" || strings.ContainsAny(a, " \t\"'|&;<>$") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
