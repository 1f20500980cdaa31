package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/wbuild/internal/errors"
	"git.home.luguber.info/inful/wbuild/internal/logfields"
)

// DefaultManifestPath is the manifest looked up when --config is not given.
const DefaultManifestPath = "wbuild.toml"

// ManifestFormat is the serialization of a manifest file.
type ManifestFormat string

const (
	ManifestTOML ManifestFormat = "toml"
	ManifestYAML ManifestFormat = "yaml"
)

// FormatForPath picks the manifest format from the file extension.
func FormatForPath(path string) (ManifestFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ManifestTOML, nil
	case ".yaml", ".yml":
		return ManifestYAML, nil
	default:
		return "", errors.ValidationFailed("config", fmt.Sprintf("unsupported manifest extension %q (expected .toml, .yaml or .yml)", filepath.Ext(path)))
	}
}

// Manifest is a loaded project manifest.
type Manifest struct {
	Path string
	Name string
	// Build is nil when the manifest has no build section.
	Build *BuildConfig
	// Defaulted lists the build fields that were absent and filled with defaults.
	Defaulted []string
}

// rawManifest mirrors the file layout. Pointer fields distinguish an absent
// key from an explicit empty value.
type rawManifest struct {
	Name  string    `toml:"name,omitempty" yaml:"name,omitempty"`
	Build *rawBuild `toml:"build,omitempty" yaml:"build,omitempty"`
}

type rawBuild struct {
	Command      *string `toml:"command,omitempty" yaml:"command,omitempty"`
	Cwd          *string `toml:"cwd,omitempty" yaml:"cwd,omitempty"`
	UploadDir    *string `toml:"upload_dir,omitempty" yaml:"upload_dir,omitempty"`
	UploadFormat *string `toml:"upload_format,omitempty" yaml:"upload_format,omitempty"`
	WatchDir     *string `toml:"watch_dir,omitempty" yaml:"watch_dir,omitempty"`
}

// Loader reads manifests and fills defaults relative to a project root.
type Loader struct {
	root string
}

// NewLoader creates a loader whose defaults derive from root.
func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Load reads the manifest at path using the process's working directory as project root.
func Load(path string) (*Manifest, error) {
	root, err := ProjectRoot()
	if err != nil {
		return nil, errors.InternalError("cannot determine project root", err)
	}
	return NewLoader(root).Load(path)
}

// Load reads, decodes and completes the manifest at path. Environment files
// next to the manifest are loaded first so path fields can reference them.
func (l *Loader) Load(path string) (*Manifest, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "failed to read manifest").
			WithContext("path", path)
	}

	if _, err := loadEnvFiles(filepath.Dir(path)); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to load environment file")
	}

	m, err := l.Parse(format, data)
	if err != nil {
		return nil, err
	}
	m.Path = path
	slog.Debug("Loaded manifest", logfields.Path(path), logfields.Format(string(format)))
	return m, nil
}

// Parse decodes manifest bytes in the given format. Unknown fields are rejected.
func (l *Loader) Parse(format ManifestFormat, data []byte) (*Manifest, error) {
	raw, err := decodeManifest(format, data)
	if err != nil {
		return nil, err
	}
	return l.complete(raw)
}

func (l *Loader) complete(raw *rawManifest) (*Manifest, error) {
	m := &Manifest{Name: raw.Name}
	if raw.Build == nil {
		return m, nil
	}
	b := raw.Build

	expandPath(FieldWorkingDir, b.Cwd)
	expandPath(FieldUploadDir, b.UploadDir)
	expandPath(FieldWatchDir, b.WatchDir)

	appliers := []defaultApplier{&buildDefaultApplier{root: l.root}}
	for _, a := range appliers {
		m.Defaulted = append(m.Defaulted, a.ApplyDefaults(b)...)
	}

	if b.UploadFormat == nil {
		return nil, errors.ConfigRequired("build." + FieldUploadFormat)
	}
	var format UploadFormat
	if err := format.UnmarshalText([]byte(*b.UploadFormat)); err != nil {
		return nil, errors.ValidationFailed("build."+FieldUploadFormat, err.Error())
	}

	m.Build = &BuildConfig{
		Command:      b.Command,
		WorkingDir:   *b.Cwd,
		UploadDir:    *b.UploadDir,
		UploadFormat: format,
		WatchDir:     *b.WatchDir,
	}
	return m, nil
}

func decodeManifest(format ManifestFormat, data []byte) (*rawManifest, error) {
	var raw rawManifest
	switch format {
	case ManifestTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, manifestDecodeError(err)
		}
	case ManifestYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, manifestDecodeError(err)
		}
	default:
		return nil, errors.InternalError(fmt.Sprintf("unknown manifest format %q", format), nil)
	}
	return &raw, nil
}

// manifestDecodeError keeps the decoder's positional detail in the message.
func manifestDecodeError(err error) error {
	detail := err.Error()
	var strict *toml.StrictMissingError
	var decodeErr *toml.DecodeError
	switch {
	case stderrors.As(err, &strict):
		detail = strict.String()
	case stderrors.As(err, &decodeErr):
		detail = decodeErr.String()
	}
	return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "invalid manifest").
		WithContext("detail", detail)
}

func encodeManifest(format ManifestFormat, raw *rawManifest) ([]byte, error) {
	switch format {
	case ManifestTOML:
		return toml.Marshal(raw)
	case ManifestYAML:
		return yaml.Marshal(raw)
	default:
		return nil, fmt.Errorf("unknown manifest format %q", format)
	}
}

// Init writes an example manifest to path, in the format its extension selects.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.CategoryConfig, errors.SeverityFatal,
			fmt.Sprintf("manifest already exists: %s (use --force to overwrite)", path)).
			WithContext("path", path)
	}
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	data, err := encodeManifest(format, exampleManifest())
	if err != nil {
		return errors.InternalError("failed to encode example manifest", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "failed to write manifest").
			WithContext("path", path)
	}
	return nil
}

func exampleManifest() *rawManifest {
	str := func(s string) *string { return &s }
	return &rawManifest{
		Name: "my-worker",
		Build: &rawBuild{
			Command:      str("npm run build"),
			UploadDir:    str(defaultUploadDirName),
			UploadFormat: str(string(UploadFormatServiceWorker)),
			WatchDir:     str(defaultWatchDirName),
		},
	}
}
