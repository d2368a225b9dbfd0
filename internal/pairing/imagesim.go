package pairing

import (
	"context"
	"image"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"ritualpair/internal/logging"
	"ritualpair/internal/media"
)

type videoScore struct {
	video media.File
	score float64
}

// matchByImage samples one frame per video, scores every photo against every
// frame, and resolves assignment with either winner-take-all 1:N grouping or
// strict greedy 1:1 claiming.
func (m *Matcher) matchByImage(ctx context.Context, photos, videos []media.File, result *Result) []rawGroup {
	frames := m.sampleFrames(ctx, videos, result)

	// Scores per photo, threshold-filtered and sorted descending, computed
	// in parallel: scoring is pure per (photo, frame) and dominates runtime.
	scores := make([][]videoScore, len(photos))
	unreadable := make([]bool, len(photos))
	workers := m.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, photo := range photos {
		i, photo := i, photo
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			photoImage := m.load(photo.Path)
			if photoImage == nil {
				unreadable[i] = true
				return nil
			}
			var kept []videoScore
			for _, video := range videos {
				frame := frames[video.Path]
				if frame == nil {
					continue
				}
				score := m.score(photoImage, frame)
				if score >= m.opts.Threshold {
					kept = append(kept, videoScore{video: video, score: score})
				}
			}
			sort.SliceStable(kept, func(a, b int) bool {
				return kept[a].score > kept[b].score
			})
			scores[i] = kept
			return nil
		})
	}
	// Workers only write their own slot and never return errors.
	_ = group.Wait()

	for i, photo := range photos {
		if unreadable[i] {
			result.warn(WarnDegraded, photo.Path, "photo could not be decoded")
			m.logger.Warn("photo unreadable", logging.String("photo", photo.Path))
		}
	}

	if m.opts.AllowMultiVideo {
		return m.assignWinnerTakeAll(photos, videos, scores, result)
	}
	return m.assignStrict(photos, videos, scores, result)
}

// sampleFrames extracts each video's representative frame exactly once,
// concurrently. A failed extraction is recorded as degraded and the video
// simply never becomes a candidate.
func (m *Matcher) sampleFrames(ctx context.Context, videos []media.File, result *Result) map[string]image.Image {
	sampled := make([]image.Image, len(videos))
	workers := m.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, video := range videos {
		i, video := i, video
		group.Go(func() error {
			sampled[i] = m.sampler.SampleFrame(groupCtx, video.Path)
			return nil
		})
	}
	_ = group.Wait()

	frames := make(map[string]image.Image, len(videos))
	for i, video := range videos {
		if sampled[i] == nil {
			result.warn(WarnDegraded, video.Path, "frame sampling failed")
			m.logger.Warn("no frame sampled", logging.String("video", video.Path))
			continue
		}
		frames[video.Path] = sampled[i]
	}
	return frames
}

// assignWinnerTakeAll gives each video to the photo that scores it highest.
// The choice is independent per video, so one photo can win several videos.
// Greedy by construction: this is not a maximum bipartite matching, and that
// is preserved behavior, not an accident.
func (m *Matcher) assignWinnerTakeAll(photos, videos []media.File, scores [][]videoScore, result *Result) []rawGroup {
	type claim struct {
		photoIndex int
		score      float64
	}
	winners := make(map[string]claim)
	for i := range photos {
		for _, vs := range scores[i] {
			current, ok := winners[vs.video.Path]
			if !ok || vs.score > current.score {
				winners[vs.video.Path] = claim{photoIndex: i, score: vs.score}
			}
		}
	}

	byPhoto := make(map[int][]ScoredVideo)
	for i := range photos {
		for _, vs := range scores[i] {
			if winner := winners[vs.video.Path]; winner.photoIndex == i {
				byPhoto[i] = append(byPhoto[i], ScoredVideo{File: vs.video, Score: vs.score, Scored: true})
			}
		}
	}

	groups := make([]rawGroup, 0, len(byPhoto))
	for i, photo := range photos {
		won := byPhoto[i]
		if len(won) == 0 {
			if !hasDegradedWarning(result, photo.Path) {
				result.warn(WarnUnmatchedPhoto, photo.Path, "no video scored above threshold")
			}
			continue
		}
		sort.SliceStable(won, func(a, b int) bool {
			return won[a].File.Name() < won[b].File.Name()
		})
		groups = append(groups, rawGroup{photo: photo, videos: won})
	}
	warnUnclaimedVideos(videos, groups, result)
	return groups
}

// assignStrict processes photos in their given order; each claims its
// highest-scoring still-unclaimed video. A later photo cannot bump an
// earlier claim even if it would score higher.
func (m *Matcher) assignStrict(photos, videos []media.File, scores [][]videoScore, result *Result) []rawGroup {
	claimed := make(map[string]bool)
	groups := make([]rawGroup, 0, len(photos))
	for i, photo := range photos {
		var won *videoScore
		for _, vs := range scores[i] {
			if !claimed[vs.video.Path] {
				won = &vs
				break
			}
		}
		if won == nil {
			if !hasDegradedWarning(result, photo.Path) {
				result.warn(WarnUnmatchedPhoto, photo.Path, "no unclaimed video scored above threshold")
			}
			continue
		}
		claimed[won.video.Path] = true
		groups = append(groups, rawGroup{
			photo:  photo,
			videos: []ScoredVideo{{File: won.video, Score: won.score, Scored: true}},
		})
	}
	warnUnclaimedVideos(videos, groups, result)
	return groups
}

func warnUnclaimedVideos(videos []media.File, groups []rawGroup, result *Result) {
	inGroup := make(map[string]bool)
	for _, g := range groups {
		for _, v := range g.videos {
			inGroup[v.File.Path] = true
		}
	}
	for _, video := range videos {
		// Degraded videos already carry their own warning.
		if !inGroup[video.Path] && !hasDegradedWarning(result, video.Path) {
			result.warn(WarnUnmatchedVideo, video.Path, "no photo scored this video above threshold")
		}
	}
}

func hasDegradedWarning(result *Result, path string) bool {
	for _, w := range result.Warnings {
		if w.Kind == WarnDegraded && w.Path == path {
			return true
		}
	}
	return false
}
