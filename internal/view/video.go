package view

import "strings"

type VideoKind int

const (
	// VideoNone: no video attached.
	VideoNone VideoKind = iota
	// VideoEmbed: hosted on a known embeddable platform.
	VideoEmbed
	// VideoFile: anything else, treated as a directly playable source.
	VideoFile
)

var embedHosts = []string{
	"youtube.com",
	"youtu.be",
	"vimeo.com",
	"dailymotion.com",
}

// ClassifyVideo decides how a video URL would be presented.
func ClassifyVideo(url string) VideoKind {
	if strings.TrimSpace(url) == "" {
		return VideoNone
	}
	for _, host := range embedHosts {
		if strings.Contains(url, host) {
			return VideoEmbed
		}
	}
	return VideoFile
}

func (k VideoKind) String() string {
	switch k {
	case VideoEmbed:
		return "embed"
	case VideoFile:
		return "file"
	default:
		return "none"
	}
}
