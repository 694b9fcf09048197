// Package pipeline implements the text-to-richtext conversion pipeline.
//
// A message body goes through these stages, in order:
//   - Reasoning stripping (<think>...</think> annotations are removed)
//   - Table detection (pipe-delimited Markdown tables are split from prose)
//   - Block classification, one line at a time (headings, bullets, numbered items, paragraphs)
//   - Inline tokenization of list and paragraph text (*italic*, **bold**, ***both***),
//     after LaTeX math spans have been rewritten to Unicode
//
// Every stage is a pure function over strings: no I/O, no shared mutable state.
// The output vocabulary (Block, Run, RGB) is consumed by the renderers in
// internal/render and assembled per conversation by internal/document.
package pipeline
