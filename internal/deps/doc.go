// Package deps reports whether the external binaries dooze shells out to
// are installed.
package deps
