// Package layout finds free-text paragraph blocks on a scanned page and
// classifies them relative to the page's tables. Table regions are blanked
// out first, so a paragraph is always text the table detector did not
// claim.
package layout
