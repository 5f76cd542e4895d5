// Package tables reconstructs table structure from a binarized page image.
//
// Detection runs in stages:
//
//  1. [LineDetector] extracts horizontal and vertical ruling-line masks via
//     morphological opening with long thin kernels.
//  2. [CandidateFinder] locates rectangular table-candidate regions on the
//     combined line mask and filters stray rules that are not part of a
//     grid (too short, or never crossing the orthogonal lines).
//  3. [GridBuilder] turns the filtered line masks of one candidate into a
//     list of cells, merging adjacent atomic cells into column or row
//     spans where no separating rule is found. Span merging is a policy
//     choice controlled by [SpanMode]; merging columns only is the default
//     because a missing horizontal rule is the more ambiguous signal.
//  4. [RowSplitter] post-processes finished tables, decomposing grid rows
//     that visually stack several records (a missing horizontal rule
//     between amounts) into separate logical rows.
//
// Financial-column discovery used by row splitting is computed once per
// table ([DetectFinancialColumns]) and passed into row processing, never
// cached globally.
package tables
