package pairing

import (
	"sort"
	"time"

	"ritualpair/internal/logging"
	"ritualpair/internal/media"
)

// matchByOrder pairs photos and videos positionally: photos sorted by
// filename, videos by filesystem time. Filesystem time is the download
// instant for files pulled out of messaging apps, which is exactly the
// ordering this strategy wants; the resolved capture time is ignored on
// purpose.
func (m *Matcher) matchByOrder(photos, videos []media.File, result *Result) []rawGroup {
	sortedPhotos := append([]media.File(nil), photos...)
	sort.SliceStable(sortedPhotos, func(i, j int) bool {
		return sortedPhotos[i].Name() < sortedPhotos[j].Name()
	})

	sortedVideos := append([]media.File(nil), videos...)
	downloadTimes := make(map[string]time.Time, len(sortedVideos))
	for _, v := range sortedVideos {
		at, err := m.fsTime(v.Path)
		if err != nil {
			m.logger.Debug("filesystem time lookup failed", logging.String("path", v.Path), logging.Error(err))
		}
		downloadTimes[v.Path] = at
	}
	sort.SliceStable(sortedVideos, func(i, j int) bool {
		return downloadTimes[sortedVideos[i].Path].Before(downloadTimes[sortedVideos[j].Path])
	})

	n := len(sortedPhotos)
	if len(sortedVideos) < n {
		n = len(sortedVideos)
	}

	groups := make([]rawGroup, 0, n)
	for i := 0; i < n; i++ {
		groups = append(groups, rawGroup{
			photo:  sortedPhotos[i],
			videos: []ScoredVideo{{File: sortedVideos[i]}},
		})
	}

	for _, photo := range sortedPhotos[n:] {
		result.warn(WarnUnmatchedPhoto, photo.Path, "no video at this position")
	}
	for _, video := range sortedVideos[n:] {
		result.warn(WarnUnmatchedVideo, video.Path, "no photo at this position")
	}
	return groups
}
