// Package metadata removes embedded metadata, such as EXIF blocks and
// location tags, from the media files of a directory. Files are rewritten
// through a temporary sibling that replaces the original only when the strip
// pass produced a non-empty result.
package metadata

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/fadeshow-cli/fadeshow/ffmpeg"
	"github.com/fadeshow-cli/fadeshow/filesystem"
	"github.com/fadeshow-cli/fadeshow/util"
)

// tempPrefix marks the in-progress sibling of a file being stripped. The dot
// keeps it out of directory scans.
const tempPrefix = ".tmp_"

// ErrNoMedia reports a strip run invoked on a directory without any
// recognized media files.
var ErrNoMedia = errors.New("no media files to strip")

// class tells how a file is stripped.
type class int8

const (
	none class = iota
	image
	video
	audio
)

// classify maps a filename to its strip class. Unlike discovery, extensions
// compare lowercased: stripping covers everything a camera may have written,
// whatever the case of its extension.
func classify(name string) class {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return image
	case ".mov", ".mp4", ".avi", ".mkv":
		return video
	case ".mp3", ".m4a", ".aac", ".wav":
		return audio
	default:
		return none
	}
}

// Outcome is the per-file result of a strip run.
type Outcome int8

const (
	// Stripped means the file was rewritten without its metadata.
	Stripped Outcome = iota

	// Kept means the file was deliberately left untouched. Audio keeps its
	// tags: they carry titles and cover art, not camera locations.
	Kept

	// Failed means the strip pass produced nothing usable; the original is
	// untouched.
	Failed
)

// Scrubber runs the external strip passes. The ffmpeg package is the
// production implementation.
type Scrubber interface {
	StripImage(src, dst string) error
	StripVideo(src, dst string) error
}

// ffmpegScrubber adapts the ffmpeg package's strip passes.
type ffmpegScrubber struct{}

func (ffmpegScrubber) StripImage(src, dst string) error { return ffmpeg.StripImage(src, dst) }
func (ffmpegScrubber) StripVideo(src, dst string) error { return ffmpeg.StripVideo(src, dst) }

// NewScrubber returns the ffmpeg-backed Scrubber.
func NewScrubber() Scrubber {
	return ffmpegScrubber{}
}

// Candidates lists the strippable files of a directory, sorted by name.
// Dot-prefixed files are skipped, so leftovers of an interrupted run are
// never re-ingested.
func Candidates(dir string) ([]string, error) {
	infos, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, info := range infos {
		if info.IsDir() || strings.HasPrefix(info.Name(), ".") {
			continue
		}
		if classify(info.Name()) == none {
			continue
		}
		files = append(files, filepath.Join(dir, info.Name()))
	}

	return files, nil
}

// Tally summarizes a strip run.
type Tally struct {
	Stripped int
	Kept     int
	Failed   int
}

// Strip processes the files one at a time and returns the run's tally. A
// failed file never aborts the run; its original stays intact and the run
// moves on.
func Strip(files []string, scrubber Scrubber, reporter Reporter) Tally {
	reporter.Started(len(files))

	var tally Tally
	for _, path := range files {
		outcome := stripOne(path, scrubber)
		reporter.FileDone(filepath.Base(path), outcome)

		switch outcome {
		case Stripped:
			tally.Stripped++
		case Kept:
			tally.Kept++
		case Failed:
			tally.Failed++
		}
	}

	reporter.Done(tally)
	return tally
}

// stripOne rewrites a single file through its temporary sibling. The swap
// happens only when the pass left a non-empty result; anything else removes
// the sibling and keeps the original.
func stripOne(path string, scrubber Scrubber) Outcome {
	temp := filepath.Join(filepath.Dir(path), tempPrefix+filepath.Base(path))

	var err error
	switch classify(path) {
	case image:
		err = scrubber.StripImage(path, temp)
	case video:
		err = scrubber.StripVideo(path, temp)
	default:
		return Kept
	}

	if err != nil || !usable(temp) {
		util.Ignore(func() error { return filesystem.API().Remove(temp) })
		return Failed
	}

	if filesystem.API().Rename(temp, path) != nil {
		util.Ignore(func() error { return filesystem.API().Remove(temp) })
		return Failed
	}

	return Stripped
}

// usable reports whether the strip pass left a non-empty file behind.
func usable(path string) bool {
	info, err := filesystem.API().Stat(path)
	return err == nil && info.Size() > 0
}
