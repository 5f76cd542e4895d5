// Package extract runs the full page-analysis pipeline: preprocessing,
// ruling-line and table detection, grid reconstruction, paragraph
// detection, concurrent text recognition and financial row splitting.
//
// Extraction is total per page: malformed input and recognition failures
// degrade to empty results and are logged, they never return an error.
package extract
