// Package textutil provides small text helpers shared by the CLI and API:
// filename sanitization for downloads and single-line previews of scripts.
package textutil
