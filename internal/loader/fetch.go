package loader

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Open-data repository endpoints. Tracking files are stored under Git LFS
// and served from the media host; the small JSON/CSV companions come from
// the raw host.
const (
	defaultVersion = "master"
	rawBaseURL     = "https://raw.githubusercontent.com/SkillCorner/opendata/%s/data/matches"
	mediaBaseURL   = "https://media.githubusercontent.com/media/SkillCorner/opendata/%s/data/matches"
)

// Fetcher downloads open-data match files into a local data directory laid
// out the way LoadMatch expects.
type Fetcher struct {
	version string
	http    *http.Client
}

// NewFetcher returns a Fetcher pinned to the given data version (a branch or
// commit of the open-data repository; empty means master).
func NewFetcher(version string) *Fetcher {
	if version == "" {
		version = defaultVersion
	}
	return &Fetcher{
		version: version,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

// FetchMatch downloads the four match files into <dir>/<matchID>/. The
// events and phases tables are optional upstream; a 404 on those is not an
// error. Returns the list of files written.
func (f *Fetcher) FetchMatch(dir string, matchID int) ([]string, error) {
	matchDir := filepath.Join(dir, fmt.Sprintf("%d", matchID))
	if err := os.MkdirAll(matchDir, 0o755); err != nil {
		return nil, fmt.Errorf("create match dir: %w", err)
	}

	raw := fmt.Sprintf(rawBaseURL, f.version)
	media := fmt.Sprintf(mediaBaseURL, f.version)

	files := []struct {
		url      string
		name     string
		optional bool
	}{
		{fmt.Sprintf("%s/%d/"+trackingFile, media, matchID, matchID), fmt.Sprintf(trackingFile, matchID), false},
		{fmt.Sprintf("%s/%d/"+metaFile, raw, matchID, matchID), fmt.Sprintf(metaFile, matchID), false},
		{fmt.Sprintf("%s/%d/"+eventsFile, raw, matchID, matchID), fmt.Sprintf(eventsFile, matchID), true},
		{fmt.Sprintf("%s/%d/"+phasesFile, raw, matchID, matchID), fmt.Sprintf(phasesFile, matchID), true},
	}

	var written []string
	for _, file := range files {
		dest := filepath.Join(matchDir, file.name)
		err := f.download(file.url, dest)
		if err != nil {
			if file.optional {
				continue
			}
			return written, fmt.Errorf("fetch %s: %w", file.name, err)
		}
		written = append(written, dest)
	}
	return written, nil
}

func (f *Fetcher) download(url, dest string) error {
	resp, err := f.http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}
