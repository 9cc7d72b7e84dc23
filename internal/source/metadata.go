package source

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// readTitle reads ID3v2 tags, falling back to the filename.
func readTitle(path string) string {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err == nil {
		defer tag.Close()
		title := strings.TrimSpace(tag.Title())
		artist := strings.TrimSpace(tag.Artist())
		switch {
		case title != "" && artist != "":
			return artist + " - " + title
		case title != "":
			return title
		}
	}

	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
