// Package application wires the wg-bridge subsystems together in their
// required startup order: the log pipeline first, then the configuration
// loader, which reports its failures through the pipeline. It keeps the main
// package focused on CLI parsing and exit-code handling.
package application
