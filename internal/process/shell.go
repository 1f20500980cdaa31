package process

import (
	"runtime"
	"strings"
)

// Platform selects the shell dialect used to launch a custom build command.
type Platform int

const (
	// PlatformPOSIX covers every non-Windows host.
	PlatformPOSIX Platform = iota
	PlatformWindows
)

func (p Platform) String() string {
	switch p {
	case PlatformWindows:
		return "windows"
	default:
		return "posix"
	}
}

// HostPlatform reports the platform the binary was built for.
func HostPlatform() Platform {
	return platformForGOOS(runtime.GOOS)
}

func platformForGOOS(goos string) Platform {
	if goos == "windows" {
		return PlatformWindows
	}
	return PlatformPOSIX
}

// Dialect describes how a command line is handed to a platform's shell:
// the interpreter, its inline-execute flag, and whether the command line is
// split into separate arguments or passed through as a single one.
type Dialect struct {
	Platform Platform
	Program  string
	Flag     string
	Tokenize bool
}

var dialects = map[Platform]Dialect{
	PlatformPOSIX:   {Platform: PlatformPOSIX, Program: "sh", Flag: "-c"},
	PlatformWindows: {Platform: PlatformWindows, Program: "cmd", Flag: "/C", Tokenize: true},
}

// DialectFor returns the shell dialect for p. Unknown platforms fall back to POSIX.
func DialectFor(p Platform) Dialect {
	if d, ok := dialects[p]; ok {
		return d
	}
	return dialects[PlatformPOSIX]
}

// Describe builds the descriptor that runs commandLine through the dialect's
// shell inside dir. POSIX command lines are passed unmodified so pipes,
// quoting and other metacharacters keep their shell meaning.
func (d Dialect) Describe(commandLine, dir string) Descriptor {
	args := []string{d.Flag}
	if d.Tokenize {
		args = append(args, strings.Fields(commandLine)...)
	} else {
		args = append(args, commandLine)
	}
	return Descriptor{
		Program: d.Program,
		Args:    args,
		Dir:     dir,
	}
}
