// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 21

// Media Discovery - these keys govern how source files are located and classified.
const (
	MediaDir          = "media.dir"
	MediaExcludeGlobs = "media.exclude"
)

// Slideshow Rendering - these keys define the visual parameters of the assembled video.
const (
	SlideshowOutput        = "slideshow.output"
	SlideshowSlideDuration = "slideshow.slide_duration"
	SlideshowFadeDuration  = "slideshow.fade_duration"
	SlideshowFPS           = "slideshow.fps"
	SlideshowResolution    = "slideshow.resolution"
	SlideshowCodec         = "slideshow.codec"
	SlideshowHardware      = "slideshow.hardware_encoding"
)

// Music Soundtrack - these keys shape the optional audio bed mixed under the video.
const (
	MusicEnable  = "music.enable"
	MusicTrim    = "music.trim"
	MusicFadeIn  = "music.fade_in"
	MusicFadeOut = "music.fade_out"
	MusicBitrate = "music.bitrate"
)

// Playback - these keys control the post-build playback prompt.
const (
	PlaybackAsk = "playback.ask"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern general command behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
