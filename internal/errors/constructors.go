package errors

import "fmt"

// Convenience functions for common error patterns

// Manifest errors

func ConfigNotFound(path string) *WBuildError {
	return New(CategoryConfig, SeverityFatal, "manifest file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *WBuildError {
	return New(CategoryConfig, SeverityFatal, fmt.Sprintf("required field %s missing", field)).
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *WBuildError {
	return New(CategoryValidation, SeverityFatal, fmt.Sprintf("invalid value for %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Layout errors

// PathResolution reports that path could not be canonicalised.
func PathResolution(path string, cause error) *WBuildError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, fmt.Sprintf("cannot resolve path %s", path)).
		WithKind(KindPathResolution).
		WithContext("path", path)
}

// InvalidLayout reports that the directory configured in field is the project root.
func InvalidLayout(field, path string) *WBuildError {
	msg := fmt.Sprintf("%s %s resolves to the project root; the project root cannot be used as the watch directory or upload directory", field, path)
	return New(CategoryConfig, SeverityFatal, msg).
		WithKind(KindInvalidLayout).
		WithContext("field", field).
		WithContext("path", path)
}

// NotADirectory reports that the path configured in field exists but is not a directory.
func NotADirectory(field, path string) *WBuildError {
	return New(CategoryConfig, SeverityFatal, fmt.Sprintf("a path was provided for %s that is not a directory: %s", field, path)).
		WithKind(KindNotADirectory).
		WithContext("field", field).
		WithContext("path", path)
}

// Build errors

func BuildFailed(command string, cause error) *WBuildError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build command failed").
		WithContext("command", command)
}

// Internal errors

func InternalError(message string, cause error) *WBuildError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
