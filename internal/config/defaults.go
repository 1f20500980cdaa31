package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/wbuild/internal/logfields"
)

const (
	defaultUploadDirName = "dist"
	defaultWatchDirName  = "src"
)

// ProjectRoot returns the project root, which is the process's working directory.
func ProjectRoot() (string, error) {
	return os.Getwd()
}

// DefaultWorkingDir is the cwd used when the manifest omits it.
func DefaultWorkingDir(root string) string { return root }

// DefaultUploadDir is the upload_dir used when the manifest omits it.
func DefaultUploadDir(root string) string { return filepath.Join(root, defaultUploadDirName) }

// DefaultWatchDir is the watch_dir used when the manifest omits it.
func DefaultWatchDir(root string) string { return filepath.Join(root, defaultWatchDirName) }

// fieldDefault binds a defaulted manifest field to its producer.
type fieldDefault struct {
	field   string
	produce func(root string) string
	slot    func(b *rawBuild) **string
}

// buildFieldDefaults enumerates every build field that has a default.
// command and upload_format have none.
var buildFieldDefaults = []fieldDefault{
	{field: FieldWorkingDir, produce: DefaultWorkingDir, slot: func(b *rawBuild) **string { return &b.Cwd }},
	{field: FieldUploadDir, produce: DefaultUploadDir, slot: func(b *rawBuild) **string { return &b.UploadDir }},
	{field: FieldWatchDir, produce: DefaultWatchDir, slot: func(b *rawBuild) **string { return &b.WatchDir }},
}

// defaultApplier applies defaults for a specific configuration domain.
type defaultApplier interface {
	Domain() string
	// ApplyDefaults fills absent fields and returns the names of the fields it filled.
	ApplyDefaults(b *rawBuild) []string
}

// buildDefaultApplier fills absent build fields from the project root.
type buildDefaultApplier struct {
	root string
}

func (a *buildDefaultApplier) Domain() string { return "build" }

// ApplyDefaults only touches fields absent from the source record; explicit
// values, including empty strings, are kept.
func (a *buildDefaultApplier) ApplyDefaults(b *rawBuild) []string {
	var filled []string
	for _, d := range buildFieldDefaults {
		slot := d.slot(b)
		if *slot != nil {
			continue
		}
		v := d.produce(a.root)
		*slot = &v
		filled = append(filled, d.field)
		slog.Debug("Applied build default", logfields.Field(d.field), logfields.Path(v))
	}
	return filled
}
