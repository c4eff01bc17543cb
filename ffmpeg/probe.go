package ffmpeg

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fadeshow-cli/fadeshow/filesystem"
	"github.com/fadeshow-cli/fadeshow/where"
	"github.com/metafates/gache"
	ffmpeg_go "github.com/u2takey/ffmpeg-go"
)

// DefaultClipSeconds substitutes for a clip whose duration cannot be probed.
const DefaultClipSeconds = 5.0

// probeRecord is one cached probe result.
type probeRecord struct {
	Duration float64 `json:"duration"`
	Rotation int     `json:"rotation"`
}

// Prober reports media durations and orientation. Probing is best-effort:
// every accessor returns a value plus a flag telling whether it was actually
// measured or substituted by the documented default. Results are cached on
// disk keyed by path, size, and modification time.
type Prober struct {
	probe  func(path string) (string, error)
	cacher *gache.Cache[map[string]probeRecord]
}

// NewProber returns a Prober backed by ffprobe and the shared probe cache.
func NewProber() *Prober {
	return &Prober{
		probe: func(path string) (string, error) {
			return ffmpeg_go.Probe(path)
		},
		cacher: gache.New[map[string]probeRecord](
			&gache.Options{
				Path:       where.Probes(),
				FileSystem: &filesystem.GacheFs{},
			},
		),
	}
}

// VideoDuration returns a clip's length in seconds. Failed or non-positive
// probes yield the default clip length and a false flag.
func (p *Prober) VideoDuration(path string) (float64, bool) {
	record, ok := p.record(path)
	if !ok || record.Duration <= 0 {
		return DefaultClipSeconds, false
	}
	return record.Duration, true
}

// AudioDuration returns a track's length in seconds. Failed or non-positive
// probes yield zero and a false flag, signalling the caller to drop the
// soundtrack.
func (p *Prober) AudioDuration(path string) (float64, bool) {
	record, ok := p.record(path)
	if !ok || record.Duration <= 0 {
		return 0, false
	}
	return record.Duration, true
}

// Rotation returns the orientation reported by a source's first video
// stream. Failed probes yield zero, meaning no correction.
func (p *Prober) Rotation(path string) (int, bool) {
	record, ok := p.record(path)
	if !ok {
		return 0, false
	}
	return record.Rotation, true
}

// record resolves the probe result for a path, consulting the cache first.
// Only successful probes are cached.
func (p *Prober) record(path string) (probeRecord, bool) {
	key, keyed := p.key(path)
	if keyed {
		if record, hit := p.lookup(key); hit {
			return record, true
		}
	}

	raw, err := p.probe(path)
	if err != nil {
		return probeRecord{}, false
	}

	duration, rotation, err := parseProbe(raw)
	if err != nil {
		return probeRecord{}, false
	}

	record := probeRecord{Duration: duration, Rotation: rotation}
	if keyed {
		p.store(key, record)
	}
	return record, true
}

// key derives the cache key of a file from its identity and freshness.
func (p *Prober) key(path string) (string, bool) {
	info, err := filesystem.API().Stat(path)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano()), true
}

func (p *Prober) lookup(key string) (probeRecord, bool) {
	records, expired, err := p.cacher.Get()
	if err != nil || expired || records == nil {
		return probeRecord{}, false
	}
	record, hit := records[key]
	return record, hit
}

func (p *Prober) store(key string, record probeRecord) {
	records, _, err := p.cacher.Get()
	if err != nil || records == nil {
		records = make(map[string]probeRecord)
	}
	records[key] = record
	_ = p.cacher.Set(records)
}

// probeDocument mirrors the ffprobe JSON fields consumed here.
type probeDocument struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		SideDataList []struct {
			Rotation json.Number `json:"rotation"`
		} `json:"side_data_list"`
	} `json:"streams"`
}

// parseProbe extracts the container duration and the first video stream's
// rotation from a raw ffprobe document. Sources without a duration, such as
// still images, report zero.
func parseProbe(raw string) (duration float64, rotation int, err error) {
	var document probeDocument
	if err = json.Unmarshal([]byte(raw), &document); err != nil {
		return 0, 0, fmt.Errorf("parse probe: %w", err)
	}

	if document.Format.Duration != "" {
		duration, _ = strconv.ParseFloat(document.Format.Duration, 64)
	}

	for _, stream := range document.Streams {
		if stream.CodecType != "video" {
			continue
		}
		for _, sideData := range stream.SideDataList {
			if value, convErr := sideData.Rotation.Float64(); convErr == nil {
				rotation = int(value)
			}
		}
		break
	}

	return duration, rotation, nil
}
