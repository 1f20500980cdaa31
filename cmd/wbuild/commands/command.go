package commands

import (
	"fmt"

	"git.home.luguber.info/inful/wbuild/internal/process"
)

// CommandCmd implements the 'command' command.
type CommandCmd struct {
	Platform string `help:"Shell dialect to describe (host, posix, windows)" enum:"host,posix,windows" default:"host"`
}

func (c *CommandCmd) Run(g *Global, root *CLI) error {
	m, err := loadBuild(root.Config)
	if err != nil {
		return err
	}

	raw, d, ok := m.Build.BuildCommandFor(platformFlag(c.Platform))
	if !ok {
		fmt.Fprintln(g.Out, "no custom build command configured")
		return nil
	}
	fmt.Fprintf(g.Out, "command: %s\n", raw)
	fmt.Fprintf(g.Out, "process: %s\n", d)
	fmt.Fprintf(g.Out, "dir:     %s\n", d.Dir)
	return nil
}

func platformFlag(v string) process.Platform {
	switch v {
	case "posix":
		return process.PlatformPOSIX
	case "windows":
		return process.PlatformWindows
	default:
		return process.HostPlatform()
	}
}
