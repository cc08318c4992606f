// Package chunker splits document text into overlapping fixed-size windows
// for embedding.
package chunker

const (
	// DefaultSize is the window length in characters.
	DefaultSize = 1000

	// DefaultOverlap is how many characters consecutive windows share.
	DefaultOverlap = 200
)

// Split cuts text into windows of up to size characters, each starting
// size-overlap characters after the previous one. Splitting stops once the
// remaining tail would be no longer than the overlap, so the final window
// absorbs it instead of emitting a near-duplicate sliver; the last window
// may therefore be shorter than size. A text no longer than size yields
// exactly one window containing the whole text.
//
// Split is a pure function of its arguments.
func Split(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultOverlap
		if overlap >= size {
			overlap = size / 5
		}
	}

	n := len(text)
	if n == 0 {
		return nil
	}

	stride := size - overlap
	windows := make([]string, 0, n/stride+1)
	for start := 0; ; start += stride {
		end := start + size
		if end > n {
			end = n
		}
		windows = append(windows, text[start:end])

		// Stop when the next window would only re-cover the overlap tail.
		if n-(start+stride) <= overlap {
			break
		}
	}
	return windows
}
