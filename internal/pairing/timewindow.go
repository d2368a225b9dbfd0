package pairing

import (
	"sort"

	"ritualpair/internal/media"
)

// matchByTime sweeps photos in capture order. Each photo claims every
// still-unclaimed video inside [photo.CreatedAt, photo.CreatedAt+T], both
// bounds inclusive. A claimed video is removed from consideration, so the
// sweep is single-pass with no backtracking; a video timestamped before its
// nearest photo can never be claimed by it.
func (m *Matcher) matchByTime(photos, videos []media.File, result *Result) []rawGroup {
	sortedPhotos := append([]media.File(nil), photos...)
	sort.SliceStable(sortedPhotos, func(i, j int) bool {
		return sortedPhotos[i].CreatedAt.Before(sortedPhotos[j].CreatedAt)
	})

	claimed := make(map[string]bool, len(videos))
	groups := make([]rawGroup, 0, len(sortedPhotos))

	for _, photo := range sortedPhotos {
		windowEnd := photo.CreatedAt.Add(m.opts.Tolerance)
		var claimedHere []media.File
		for _, video := range videos {
			if claimed[video.Path] {
				continue
			}
			if video.CreatedAt.Before(photo.CreatedAt) || video.CreatedAt.After(windowEnd) {
				continue
			}
			claimed[video.Path] = true
			claimedHere = append(claimedHere, video)
		}

		if len(claimedHere) == 0 {
			result.warn(WarnUnmatchedPhoto, photo.Path, "no video within tolerance window")
			continue
		}

		sort.SliceStable(claimedHere, func(i, j int) bool {
			return claimedHere[i].CreatedAt.Before(claimedHere[j].CreatedAt)
		})
		scored := make([]ScoredVideo, 0, len(claimedHere))
		for _, video := range claimedHere {
			scored = append(scored, ScoredVideo{File: video})
		}
		groups = append(groups, rawGroup{photo: photo, videos: scored})
	}

	for _, video := range videos {
		if !claimed[video.Path] {
			result.warn(WarnUnmatchedVideo, video.Path, "outside every photo's tolerance window")
		}
	}
	return groups
}
