package pairing

import (
	"strconv"

	"ritualpair/internal/media"
)

// Pair is one photo associated with exactly one video. Sequence is the
// photo's ordinal in the output; SubSequence distinguishes multiple videos
// grouped under the same photo.
type Pair struct {
	Photo       media.File
	Video       media.File
	Sequence    int
	SubSequence string
	// Score is the similarity score that produced this pair; zero unless
	// the image strategy ran.
	Score float64
	// Scored reports whether Score carries meaning.
	Scored bool
}

// Label renders the ordinal as it appears in file names: "001", "002a", ...
func (p Pair) Label() string {
	return zeroPad(p.Sequence) + p.SubSequence
}

func zeroPad(sequence int) string {
	s := strconv.Itoa(sequence)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// ScoredVideo is one video inside a raw match group, with its similarity
// score when the image strategy produced it.
type ScoredVideo struct {
	File   media.File
	Score  float64
	Scored bool
}

// rawGroup is a pre-numbering association: one photo and the videos a
// strategy matched to it, in assignment order.
type rawGroup struct {
	photo  media.File
	videos []ScoredVideo
}

// Group is one photo with all its paired videos, a view over pairs sharing
// a sequence.
type Group struct {
	Photo    media.File
	Sequence int
	Pairs    []Pair
}

// WarningKind classifies the non-fatal findings attached to a run.
type WarningKind string

const (
	WarnCountMismatch  WarningKind = "count-mismatch"
	WarnUnmatchedPhoto WarningKind = "unmatched-photo"
	WarnUnmatchedVideo WarningKind = "unmatched-video"
	WarnDegraded       WarningKind = "degraded"
)

// Warning is a reported, non-fatal finding. The run that produced it still
// completed and returned every pair it could form.
type Warning struct {
	Kind    WarningKind
	Path    string
	Message string
}

// Result is the disposable output of one engine run.
type Result struct {
	RunID    string
	Strategy Strategy
	Pairs    []Pair
	Warnings []Warning

	PhotosScanned int
	VideosScanned int
	Matched       int
	Unmatched     int
	Degraded      int
}

// Groups folds the flat pair list into per-photo groups, preserving order.
func (r *Result) Groups() []Group {
	var groups []Group
	index := make(map[int]int)
	for _, pair := range r.Pairs {
		at, ok := index[pair.Sequence]
		if !ok {
			at = len(groups)
			index[pair.Sequence] = at
			groups = append(groups, Group{Photo: pair.Photo, Sequence: pair.Sequence})
		}
		groups[at].Pairs = append(groups[at].Pairs, pair)
	}
	return groups
}

func (r *Result) warn(kind WarningKind, path, message string) {
	r.Warnings = append(r.Warnings, Warning{Kind: kind, Path: path, Message: message})
}
