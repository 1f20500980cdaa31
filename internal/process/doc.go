// Package process turns a custom build command line into a launchable
// description and runs it.
//
// The shell used to interpret the command line depends on the host:
// Windows hands whitespace-separated tokens to `cmd /C`, every other
// platform hands the untouched command line to `sh -c`. Each dialect is a
// plain Dialect value so both can be exercised from any host.
//
// Runner executes a Descriptor exactly once. Restarting, watching and
// multiplexing several processes are left to callers.
package process
