// Package io reads waterfall chart definitions from files and writes step
// tables.
//
// # Definition Files
//
// A [Definition] describes one chart: its steps, titles, label mode and
// styling. It can be written as JSON, TOML or YAML, or imported from a
// spreadsheet:
//
//	title  = "Revenue bridge"
//	metric = "Revenue"
//
//	[[steps]]
//	name  = "Q1"
//	value = 100
//
//	[[steps]]
//	name  = "Q2"
//	value = 120
//
//	[colors]
//	bar_negative = "#d62728"
//
// Steps are given either as a "steps" list of name/value pairs or as a bare
// "values" list with optional "step_names". Unknown keys are rejected.
//
// Spreadsheets (.xlsx) are read from the first sheet: column A holds step
// names and column B the cumulative values. A first row whose B cell is not a
// number is a header; its B cell becomes the metric name.
//
// Use [ImportFile] to load a definition by file extension, or one of the
// Read functions for an io.Reader. Every reader validates the result with
// [Definition.Validate].
//
// # Step Tables
//
// [BuildTable] joins a chart's step table with its roles, colors and labels.
// [WriteTableJSON] and [WriteTableXLSX] export it.
package io
