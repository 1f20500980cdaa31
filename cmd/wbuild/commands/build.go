package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/wbuild/internal/process"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Root string `help:"Project root to check against (defaults to the current directory)" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunBuild(ctx, g, root.Config, b.Root, process.NewRunner())
}

// RunBuild verifies the manifest at configPath and runs its custom build
// command with runner. A manifest without a command is not an error.
func RunBuild(ctx context.Context, g *Global, configPath, projectRoot string, runner *process.Runner) error {
	m, err := loadBuild(configPath)
	if err != nil {
		return err
	}
	if err := verify(m.Build, projectRoot); err != nil {
		return err
	}

	raw, d, ok := m.Build.BuildCommand()
	if !ok {
		fmt.Fprintln(g.Out, "no custom build command configured; nothing to run")
		return nil
	}
	fmt.Fprintf(g.Out, "Running custom build: %s\n", raw)
	if err := runner.Run(ctx, raw, d); err != nil {
		return err
	}
	fmt.Fprintln(g.Out, "Build completed")
	return nil
}
