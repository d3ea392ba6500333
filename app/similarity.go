package app

import "strings"

// Ratio scores how alike two strings are, in [0, 1]. Both inputs are
// lower-cased, then the score is 2*M/(len(a)+len(b)) over rune counts,
// where M is the number of runes covered by the longest-matching-blocks
// alignment: find the longest common block, then align what is left of it
// on both sides, then what is right of it. Identical strings score 1.0;
// two empty strings also score 1.0.
func Ratio(query, candidate string) float64 {
	a := []rune(strings.ToLower(query))
	b := []rune(strings.ToLower(candidate))

	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingRunes(a, b)) / float64(total)
}

type matchWindow struct {
	alo, ahi int
	blo, bhi int
}

func matchingRunes(a, b []rune) int {
	// Positions of every rune of b, ascending; longestMatch walks these
	// lists instead of rescanning b for each rune of a.
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	matched := 0
	queue := []matchWindow{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		w := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b2j, w)
		if k == 0 {
			continue
		}
		matched += k
		if w.alo < i && w.blo < j {
			queue = append(queue, matchWindow{w.alo, i, w.blo, j})
		}
		if i+k < w.ahi && j+k < w.bhi {
			queue = append(queue, matchWindow{i + k, w.ahi, j + k, w.bhi})
		}
	}
	return matched
}

// longestMatch returns the longest block a[i:i+k] == b[j:j+k] inside the
// window. When several blocks tie on length the earliest one wins (lowest i,
// then lowest j), which keeps the decomposition deterministic.
func longestMatch(a []rune, b2j map[rune][]int, w matchWindow) (besti, bestj, bestsize int) {
	besti, bestj = w.alo, w.blo

	// j2len[j] is the length of the longest block ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i := w.alo; i < w.ahi; i++ {
		next := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < w.blo {
				continue
			}
			if j >= w.bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestsize
}
