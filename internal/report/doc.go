// Package report renders validation results for humans and machines.
//
// Single results render as text, JSON, XML or CSV. Batches render as text,
// JSON or CSV together with the run statistics. Renderers write to an
// io.Writer and never decide where output goes; the CLI owns that.
package report
