// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package format

import (
	"io"
	"os"
)

// StreamFormat binds a writer to the LevelFormat used for its lines.
type StreamFormat struct {
	Writer io.Writer
	Format LevelFormat
}

// StderrSame maps stderr to the same format for all levels.
func StderrSame() []StreamFormat {
	return []StreamFormat{{Writer: os.Stderr, Format: Same(Shorter)}}
}

// StderrPerLevel maps stderr to the default per level formats.
func StderrPerLevel() []StreamFormat {
	return []StreamFormat{{Writer: os.Stderr, Format: PerLevel(nil)}}
}

// ForStreams maps every writer to the same format for all levels or, when perLevel is
// true, to the default per level formats.
func ForStreams(perLevel bool, writers ...io.Writer) []StreamFormat {
	streams := make([]StreamFormat, 0, len(writers))
	for _, w := range writers {
		var lf LevelFormat = Same(Shorter)
		if perLevel {
			lf = PerLevel(nil)
		}
		streams = append(streams, StreamFormat{Writer: w, Format: lf})
	}
	return streams
}
