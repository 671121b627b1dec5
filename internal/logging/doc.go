// Package logging implements the wg-bridge diagnostic log pipeline: any
// number of producer goroutines hand formatted records to a single background
// consumer that owns the log file and flushes after every write. Per-producer
// emission order is preserved; cross-producer order is channel arrival order.
// A zap console logger is also provided for startup diagnostics that must be
// visible before the pipeline exists.
package logging
