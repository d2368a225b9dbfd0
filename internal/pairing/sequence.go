package pairing

import "strconv"

// subLabels are the sub-sequence letters for 1:N groups. Index 26 onward
// falls back to the numeral itself.
const subLabels = "abcdefghijklmnopqrstuvwxyz"

// subLabel returns the sub-sequence label for the i-th video in a group.
func subLabel(i int) string {
	if i < len(subLabels) {
		return string(subLabels[i])
	}
	return strconv.Itoa(i + 1)
}

// assignSequences is the single place sequence numbers are minted. It walks
// the raw groups in the order the strategy produced them and numbers photos
// densely from 1; within a group, videos receive sub-sequence labels in
// assignment order (none for a singleton). It holds no memory of previous
// runs: reordered input recomputes everything from scratch.
func assignSequences(groups []rawGroup) []Pair {
	pairs := make([]Pair, 0, len(groups))
	for g, group := range groups {
		sequence := g + 1
		for i, video := range group.videos {
			sub := ""
			if len(group.videos) > 1 {
				sub = subLabel(i)
			}
			pairs = append(pairs, Pair{
				Photo:       group.photo,
				Video:       video.File,
				Sequence:    sequence,
				SubSequence: sub,
				Score:       video.Score,
				Scored:      video.Scored,
			})
		}
	}
	return pairs
}
