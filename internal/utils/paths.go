// Package utils provides shared helpers for output naming and platform integration.
package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// GetChannelFilename returns the standardized filename for one extracted
// channel of an input file. channel is 1-based.
func GetChannelFilename(inputName string, channel int) string {
	base := strings.TrimSuffix(inputName, filepath.Ext(inputName))
	return fmt.Sprintf("%s_chan%d.wav", base, channel)
}

// GetChannelPath returns the absolute output path for one extracted channel.
func GetChannelPath(outputDir, inputName string, channel int) string {
	return filepath.Join(outputDir, GetChannelFilename(inputName, channel))
}

// GetTempExportPath returns the in-flight path used while the transcoder
// writes a channel file. The file is renamed to finalPath once the export
// succeeds, so interrupted exports never leave a half-written WAV behind.
func GetTempExportPath(finalPath, jobID string) string {
	id := jobID
	if len(id) > 8 {
		id = id[:8]
	}
	return finalPath + ".part-" + id
}
