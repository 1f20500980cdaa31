package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/wbuild/internal/config"
	"git.home.luguber.info/inful/wbuild/internal/errors"
)

// Global carries state shared by every subcommand.
type Global struct {
	Out io.Writer
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Manifest file path (.toml, .yaml or .yml)" default:"wbuild.toml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check   CheckCmd   `cmd:"" help:"Validate the build section of the manifest"`
	Command CommandCmd `cmd:"" help:"Print the process the custom build command would launch"`
	Build   BuildCmd   `cmd:"" help:"Validate the manifest and run the custom build command once"`
	Init    InitCmd    `cmd:"" help:"Write an example manifest"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.ResolveLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// loadBuild loads the manifest and returns its build section, which must be present.
func loadBuild(configPath string) (*config.Manifest, error) {
	m, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if m.Build == nil {
		return nil, errors.ConfigRequired("build").WithContext("path", configPath)
	}
	return m, nil
}

// verify runs the layout check against projectRoot, or the working directory when empty.
func verify(b *config.BuildConfig, projectRoot string) error {
	if projectRoot == "" {
		return b.VerifyConfig()
	}
	return b.VerifyAgainst(projectRoot)
}
