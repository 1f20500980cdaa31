package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/wbuild/internal/errors"
	"git.home.luguber.info/inful/wbuild/internal/process"
)

// Field names as they appear in the manifest's build section.
const (
	FieldCommand      = "command"
	FieldWorkingDir   = "cwd"
	FieldUploadDir    = "upload_dir"
	FieldUploadFormat = "upload_format"
	FieldWatchDir     = "watch_dir"
)

// BuildConfig holds the build settings of a project: an optional custom build
// command, the directory it runs in, where artifacts are expected and which
// directory is watched for source changes. Values are never changed after the
// loader constructs them.
type BuildConfig struct {
	// Command is the custom build command line; nil means no custom build step.
	Command      *string
	WorkingDir   string
	UploadDir    string
	UploadFormat UploadFormat
	WatchDir     string
}

// VerifyConfig checks the build layout against the project root (the
// process's working directory). See VerifyAgainst for the rules.
func (c *BuildConfig) VerifyConfig() error {
	root, err := ProjectRoot()
	if err != nil {
		return errors.InternalError("cannot determine project root", err)
	}
	return c.VerifyAgainst(root)
}

// VerifyAgainst checks the build layout against root and reports the first
// violation found:
//
//   - upload_dir, then watch_dir, must not resolve to root (InvalidLayout);
//   - upload_dir, then watch_dir, must be a directory (NotADirectory).
//
// Paths that cannot be canonicalised fail with a PathResolution error. An
// upload_dir collision is reported before watch_dir is even resolved.
func (c *BuildConfig) VerifyAgainst(root string) error {
	if err := checkNotRoot(FieldUploadDir, c.UploadDir, root); err != nil {
		return err
	}
	if err := checkNotRoot(FieldWatchDir, c.WatchDir, root); err != nil {
		return err
	}
	if err := checkIsDir(FieldUploadDir, c.UploadDir); err != nil {
		return err
	}
	return checkIsDir(FieldWatchDir, c.WatchDir)
}

// BuildCommand returns the raw command text and a descriptor that runs it
// through the host shell in WorkingDir. ok is false when no command is set.
func (c *BuildConfig) BuildCommand() (raw string, d process.Descriptor, ok bool) {
	return c.BuildCommandFor(process.HostPlatform())
}

// BuildCommandFor is BuildCommand with an explicit shell platform.
func (c *BuildConfig) BuildCommandFor(p process.Platform) (raw string, d process.Descriptor, ok bool) {
	if c.Command == nil {
		return "", process.Descriptor{}, false
	}
	raw = *c.Command
	return raw, process.DialectFor(p).Describe(raw, c.WorkingDir), true
}

func checkNotRoot(field, dir, root string) error {
	resolvedDir, err := canonicalize(dir)
	if err != nil {
		return err
	}
	resolvedRoot, err := canonicalize(root)
	if err != nil {
		return err
	}
	if resolvedDir == resolvedRoot {
		return errors.InvalidLayout(field, dir)
	}
	return nil
}

func checkIsDir(field, dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return errors.NotADirectory(field, dir)
	}
	return nil
}

// canonicalize returns the absolute, symlink-free form of p. An empty path
// names nothing and does not resolve.
func canonicalize(p string) (string, error) {
	if p == "" {
		return "", errors.PathResolution(p, &fs.PathError{Op: "canonicalize", Path: p, Err: fs.ErrNotExist})
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.PathResolution(p, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.PathResolution(p, err)
	}
	return resolved, nil
}
