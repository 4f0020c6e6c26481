// Package pagetext turns HTML pages into flat, offset-annotated text records.
// An Extractor consumes tag and text events from a tokenizer in a single
// pass and builds a Record holding the page heading, the visible text, and
// the ranges locating both inside one raw string.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., html/, sqlite/, rod/).
package pagetext
