// Package match provides edit-distance helpers used to spot attribute names
// that look like a misspelled generation marker.
//
// Key functions:
//   - Distance: rune-wise Levenshtein edit distance
//   - Similarity: distance normalized to [0, 1]
//   - Closest: best candidate within a distance budget
package match
