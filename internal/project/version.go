package project

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"relgate/internal/data/models"
	"relgate/internal/errs"
)

var versionAssignRe = regexp.MustCompile(`^\s*__version__\s*=\s*["']([^"']+)["']`)

// ReadVersionMarker parses the version marker file: the first line assigning
// a quoted string to __version__ wins.
func ReadVersionMarker(path string) (*models.VersionMarker, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.MissingFile(path, err)
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if m := versionAssignRe.FindStringSubmatch(line); m != nil {
			return &models.VersionMarker{
				Path:    path,
				Version: m[1],
				Line:    strings.TrimSpace(line),
			}, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, errs.FormatMismatch(path, "no __version__ assignment found")
}
