// Package report renders Pokédex results.
//
// This package contains writers for different output formats:
//   - SimpleWriter: the plain text shown in a terminal
//   - JSONWriter: structured JSON for scripts
//   - MarkdownWriter: a shareable Markdown page with tables and a
//     mermaid pie chart of base stats
//
// Design decision: We separate rendering from the data structures in the
// model package so that the CLI, a file output and any future front end
// share one set of writers.
package report
