//go:build debug

package logging

const debugEnabled = true
