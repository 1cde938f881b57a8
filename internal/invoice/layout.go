package invoice

import (
	"math"
	"sort"
	"strings"

	"github.com/Ailurophile47/invoice-qc/internal/pdftext"
)

// lineTolerance is the maximum vertical-center distance, in page units,
// for a word to join an existing line.
const lineTolerance = 3.0

// lineBucket collects the words of one visual line. The first word to
// open a bucket fixes its center; later words are compared against that
// fixed value, not a running average.
type lineBucket struct {
	center float64
	words  []pdftext.Word
}

// ReconstructLines groups positioned words into visually ordered text
// lines. Buckets are scanned in creation order and the first one within
// lineTolerance wins. Lines are emitted top to bottom, words within a line
// left to right; empty lines are dropped.
func ReconstructLines(words []pdftext.Word) []string {
	if len(words) == 0 {
		return nil
	}

	var buckets []*lineBucket
	for _, w := range words {
		center := (w.Top + w.Bottom) / 2

		var target *lineBucket
		for _, b := range buckets {
			if math.Abs(b.center-center) <= lineTolerance {
				target = b
				break
			}
		}
		if target == nil {
			buckets = append(buckets, &lineBucket{center: center, words: []pdftext.Word{w}})
			continue
		}
		target.words = append(target.words, w)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].center < buckets[j].center
	})

	lines := make([]string, 0, len(buckets))
	for _, b := range buckets {
		sort.SliceStable(b.words, func(i, j int) bool {
			return b.words[i].Left < b.words[j].Left
		})

		parts := make([]string, 0, len(b.words))
		for _, w := range b.words {
			parts = append(parts, w.Text)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
