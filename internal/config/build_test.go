package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wbuild/internal/errors"
	"git.home.luguber.info/inful/wbuild/internal/process"
)

// projectLayout creates root/dist and root/src and returns root.
func projectLayout(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "dist"), 0o750))
	require.NoError(t, os.Mkdir(filepath.Join(root, "src"), 0o750))
	return root
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func requireKind(t *testing.T, err error, kind errors.ErrorKind, field string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.IsKind(err, kind), "want %s, got %v", kind, err)
	if field != "" {
		wbe, ok := errors.As(err)
		require.True(t, ok)
		require.Equal(t, field, wbe.Context["field"])
	}
}

func TestVerifyAgainst(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, root string) BuildConfig
		kind  errors.ErrorKind
		field string
	}{
		{
			name: "valid distinct directories",
			setup: func(t *testing.T, root string) BuildConfig {
				return BuildConfig{UploadDir: filepath.Join(root, "dist"), WatchDir: filepath.Join(root, "src")}
			},
		},
		{
			name: "upload dir is project root",
			setup: func(t *testing.T, root string) BuildConfig {
				return BuildConfig{UploadDir: root, WatchDir: filepath.Join(root, "src")}
			},
			kind:  errors.KindInvalidLayout,
			field: FieldUploadDir,
		},
		{
			name: "watch dir is project root",
			setup: func(t *testing.T, root string) BuildConfig {
				return BuildConfig{UploadDir: filepath.Join(root, "dist"), WatchDir: root}
			},
			kind:  errors.KindInvalidLayout,
			field: FieldWatchDir,
		},
		{
			name: "watch dir spelled with dot segments",
			setup: func(t *testing.T, root string) BuildConfig {
				return BuildConfig{UploadDir: filepath.Join(root, "dist"), WatchDir: filepath.Join(root, "src", "..")}
			},
			kind:  errors.KindInvalidLayout,
			field: FieldWatchDir,
		},
		{
			name: "upload dir is symlink to root",
			setup: func(t *testing.T, root string) BuildConfig {
				link := filepath.Join(t.TempDir(), "root-link")
				if err := os.Symlink(root, link); err != nil {
					t.Skipf("symlinks unavailable: %v", err)
				}
				return BuildConfig{UploadDir: link, WatchDir: filepath.Join(root, "src")}
			},
			kind:  errors.KindInvalidLayout,
			field: FieldUploadDir,
		},
		{
			name: "both collide reports upload dir only",
			setup: func(t *testing.T, root string) BuildConfig {
				return BuildConfig{UploadDir: root, WatchDir: root}
			},
			kind:  errors.KindInvalidLayout,
			field: FieldUploadDir,
		},
		{
			name: "upload collision masks watch dir type error",
			setup: func(t *testing.T, root string) BuildConfig {
				file := filepath.Join(root, "watch.txt")
				writeFile(t, file)
				return BuildConfig{UploadDir: root, WatchDir: file}
			},
			kind:  errors.KindInvalidLayout,
			field: FieldUploadDir,
		},
		{
			name: "upload dir is regular file",
			setup: func(t *testing.T, root string) BuildConfig {
				file := filepath.Join(root, "dist.txt")
				writeFile(t, file)
				return BuildConfig{UploadDir: file, WatchDir: filepath.Join(root, "src")}
			},
			kind:  errors.KindNotADirectory,
			field: FieldUploadDir,
		},
		{
			name: "watch dir is regular file",
			setup: func(t *testing.T, root string) BuildConfig {
				file := filepath.Join(root, "src.txt")
				writeFile(t, file)
				return BuildConfig{UploadDir: filepath.Join(root, "dist"), WatchDir: file}
			},
			kind:  errors.KindNotADirectory,
			field: FieldWatchDir,
		},
		{
			name: "both regular files reports upload dir first",
			setup: func(t *testing.T, root string) BuildConfig {
				up := filepath.Join(root, "a.txt")
				watch := filepath.Join(root, "b.txt")
				writeFile(t, up)
				writeFile(t, watch)
				return BuildConfig{UploadDir: up, WatchDir: watch}
			},
			kind:  errors.KindNotADirectory,
			field: FieldUploadDir,
		},
		{
			name: "upload dir missing",
			setup: func(t *testing.T, root string) BuildConfig {
				return BuildConfig{UploadDir: filepath.Join(root, "nope"), WatchDir: filepath.Join(root, "src")}
			},
			kind: errors.KindPathResolution,
		},
		{
			name: "watch dir missing",
			setup: func(t *testing.T, root string) BuildConfig {
				return BuildConfig{UploadDir: filepath.Join(root, "dist"), WatchDir: filepath.Join(root, "nope")}
			},
			kind: errors.KindPathResolution,
		},
		{
			name: "upload dir empty",
			setup: func(t *testing.T, root string) BuildConfig {
				return BuildConfig{UploadDir: "", WatchDir: filepath.Join(root, "src")}
			},
			kind: errors.KindPathResolution,
		},
		{
			name: "watch dir empty",
			setup: func(t *testing.T, root string) BuildConfig {
				return BuildConfig{UploadDir: filepath.Join(root, "dist"), WatchDir: ""}
			},
			kind: errors.KindPathResolution,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := projectLayout(t)
			cfg := tc.setup(t, root)

			err := cfg.VerifyAgainst(root)
			if tc.kind == "" {
				require.NoError(t, err)
				return
			}
			requireKind(t, err, tc.kind, tc.field)
		})
	}
}

func TestVerifyAgainst_PathResolutionCarriesPath(t *testing.T) {
	root := projectLayout(t)
	missing := filepath.Join(root, "missing")
	cfg := BuildConfig{UploadDir: missing, WatchDir: filepath.Join(root, "src")}

	err := cfg.VerifyAgainst(root)

	requireKind(t, err, errors.KindPathResolution, "")
	wbe, _ := errors.As(err)
	require.Equal(t, missing, wbe.Context["path"])
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestVerifyAgainst_MissingRoot(t *testing.T) {
	root := projectLayout(t)
	cfg := BuildConfig{UploadDir: filepath.Join(root, "dist"), WatchDir: filepath.Join(root, "src")}

	err := cfg.VerifyAgainst(filepath.Join(root, "gone"))

	requireKind(t, err, errors.KindPathResolution, "")
}

func TestVerifyAgainst_Idempotent(t *testing.T) {
	root := projectLayout(t)
	file := filepath.Join(root, "out.txt")
	writeFile(t, file)

	good := BuildConfig{UploadDir: filepath.Join(root, "dist"), WatchDir: filepath.Join(root, "src")}
	require.NoError(t, good.VerifyAgainst(root))
	require.NoError(t, good.VerifyAgainst(root))

	bad := BuildConfig{UploadDir: file, WatchDir: filepath.Join(root, "src")}
	first := bad.VerifyAgainst(root)
	second := bad.VerifyAgainst(root)
	require.Equal(t, first.Error(), second.Error())
}

func TestVerifyConfig_UsesWorkingDirectoryAsRoot(t *testing.T) {
	root := projectLayout(t)
	chdirForTest(t, root)

	require.NoError(t, (&BuildConfig{UploadDir: "dist", WatchDir: "src"}).VerifyConfig())

	err := (&BuildConfig{UploadDir: ".", WatchDir: "src"}).VerifyConfig()
	requireKind(t, err, errors.KindInvalidLayout, FieldUploadDir)
}

func TestVerifyConfig_EmptyUploadDirFromManifest(t *testing.T) {
	root := projectLayout(t)
	chdirForTest(t, root)

	m, err := NewLoader(root).Parse(ManifestTOML, []byte("[build]\nupload_format = \"modules\"\nupload_dir = \"\"\n"))
	require.NoError(t, err)
	require.Equal(t, "", m.Build.UploadDir)

	err = m.Build.VerifyConfig()
	requireKind(t, err, errors.KindPathResolution, "")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestVerifyConfig_Concurrent(t *testing.T) {
	root := projectLayout(t)
	file := filepath.Join(root, "out.txt")
	writeFile(t, file)
	chdirForTest(t, root)

	good := &BuildConfig{UploadDir: "dist", WatchDir: "src"}
	bad := &BuildConfig{UploadDir: "out.txt", WatchDir: "src"}

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				errs[i] = good.VerifyConfig()
				return
			}
			errs[i] = bad.VerifyConfig()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if i%2 == 0 {
			require.NoError(t, err)
			continue
		}
		requireKind(t, err, errors.KindNotADirectory, FieldUploadDir)
	}
}

func TestBuildCommand_NoCommand(t *testing.T) {
	cfg := BuildConfig{WorkingDir: "/proj"}

	raw, d, ok := cfg.BuildCommand()

	require.False(t, ok)
	require.Empty(t, raw)
	require.Equal(t, process.Descriptor{}, d)
}

func TestBuildCommandFor_POSIX(t *testing.T) {
	cmd := "npm run build"
	cfg := BuildConfig{Command: &cmd, WorkingDir: "/proj"}

	raw, d, ok := cfg.BuildCommandFor(process.PlatformPOSIX)

	require.True(t, ok)
	require.Equal(t, "npm run build", raw)
	require.Equal(t, "sh", d.Program)
	require.Equal(t, []string{"-c", "npm run build"}, d.Args)
	require.Equal(t, "/proj", d.Dir)
}

func TestBuildCommandFor_Windows(t *testing.T) {
	cmd := "npm run build"
	cfg := BuildConfig{Command: &cmd, WorkingDir: `C:\proj`}

	raw, d, ok := cfg.BuildCommandFor(process.PlatformWindows)

	require.True(t, ok)
	require.Equal(t, "npm run build", raw)
	require.Equal(t, "cmd", d.Program)
	require.Equal(t, []string{"/C", "npm", "run", "build"}, d.Args)
	require.Equal(t, `C:\proj`, d.Dir)
}

func TestBuildCommand_HostMatchesExplicitPlatform(t *testing.T) {
	cmd := "make"
	cfg := BuildConfig{Command: &cmd, WorkingDir: "/proj"}

	_, host, ok := cfg.BuildCommand()
	require.True(t, ok)
	_, explicit, _ := cfg.BuildCommandFor(process.HostPlatform())
	require.Equal(t, explicit, host)
}
