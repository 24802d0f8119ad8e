package model

import "fmt"

// OutcomeKind classifies the result of processing one playlist.
type OutcomeKind int

const (
	// OutcomeSuccess means the cover was written to disk.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeMissingCover means Spotify returned no images for the playlist.
	OutcomeMissingCover

	// OutcomeMissingURL means images exist but none of them has a URL.
	OutcomeMissingURL

	// OutcomeFailure means the download or the file write failed.
	OutcomeFailure
)

// String returns a short lowercase label for logs.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeMissingCover:
		return "missing_cover"
	case OutcomeMissingURL:
		return "missing_url"
	case OutcomeFailure:
		return "failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the result for a single playlist. Exactly one Outcome is
// produced for every playlist handed to the downloader.
type Outcome struct {
	Playlist *Playlist
	Kind     OutcomeKind

	// FileName is the base name written to disk. Set on success only.
	FileName string

	// Width and Height are the decoded image dimensions. Both are zero when
	// the image could not be decoded, which does not affect Kind.
	Width  int
	Height int

	// Err holds the cause of an OutcomeFailure.
	Err error
}

// HasDimensions reports whether the image was decoded successfully.
func (o *Outcome) HasDimensions() bool {
	return o.Width > 0 && o.Height > 0
}

// Summary aggregates the outcomes of a run.
//
// Successful + MissingCovers + MissingURL + Failed always equals Total.
type Summary struct {
	Total         int
	Successful    int
	MissingCovers int
	MissingURL    int
	Failed        int

	// Destination is the absolute path of the folder covers were written to.
	Destination string
}

// Add counts one outcome.
func (s *Summary) Add(o Outcome) {
	s.Total++
	switch o.Kind {
	case OutcomeSuccess:
		s.Successful++
	case OutcomeMissingCover:
		s.MissingCovers++
	case OutcomeMissingURL:
		s.MissingURL++
	default:
		s.Failed++
	}
}

// Line renders the one-line completion message.
//
// Example:
//
//	"Download complete! 1/3 images downloaded successfully, 1 missing covers, 1 failed."
func (s Summary) Line() string {
	line := fmt.Sprintf("Download complete! %d/%d images downloaded successfully", s.Successful, s.Total)
	if s.MissingURL > 0 {
		line += fmt.Sprintf(", %d missing url", s.MissingURL)
	}
	if s.MissingCovers > 0 {
		line += fmt.Sprintf(", %d missing covers", s.MissingCovers)
	}
	if s.Failed > 0 {
		line += fmt.Sprintf(", %d failed", s.Failed)
	}
	return line + "."
}
