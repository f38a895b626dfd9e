package match

import "strings"

// Distance computes the Levenshtein edit distance between a and b, counting
// insertions, deletions and substitutions of runes.
//
// Two rows of the matrix are kept, sized by the shorter input.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity returns 1 - distance/maxLen, so identical strings score 1.0.
func Similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(Distance(a, b))/float64(maxLen)
}

// Closest returns the candidate nearest to name (case-insensitive) whose
// distance is at most maxDist. Exact matches are not suggestions and are skipped.
// Ties keep the earliest candidate.
func Closest(name string, candidates []string, maxDist int) (string, bool) {
	needle := strings.ToLower(name)
	best, bestDist := "", maxDist+1

	for _, c := range candidates {
		lc := strings.ToLower(c)
		if lc == needle {
			continue
		}

		if d := Distance(needle, lc); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, best != ""
}
