//go:build !debug

package logging

// debugEnabled is false in default builds, so Logger.Debug compiles to a
// no-op. Build with -tags debug to emit DEBUG records.
const debugEnabled = false
