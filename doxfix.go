// Package doxfix provides a post-processor for Doxygen-generated HTML
// documentation. It rewrites the rendered pages on disk to fix cosmetic
// spacing artifacts around operators, template angle brackets and
// pointer/reference symbols, and makes the class index scroll horizontally.
//
// This package contains domain types, interfaces and the text rewrite rules
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// fsnotify/).
package doxfix
