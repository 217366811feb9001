// Package pagesift turns the rendered HTML of an arbitrary web page into
// typed records (products, articles, or generic content blocks) without any
// per-site configuration.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package pagesift
