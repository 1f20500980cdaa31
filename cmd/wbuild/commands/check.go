package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/wbuild/internal/logfields"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Root string `help:"Project root to check against (defaults to the current directory)" type:"path"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	m, err := loadBuild(root.Config)
	if err != nil {
		return err
	}
	if err := verify(m.Build, c.Root); err != nil {
		return err
	}

	slog.Debug("Build layout verified",
		logfields.Path(m.Path),
		logfields.Format(string(m.Build.UploadFormat)))
	fmt.Fprintf(g.Out, "%s: build configuration OK (upload_dir=%s, watch_dir=%s, upload_format=%s)\n",
		m.Path, m.Build.UploadDir, m.Build.WatchDir, m.Build.UploadFormat)
	return nil
}
