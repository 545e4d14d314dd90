package debugfiles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
)

var patterns = []string{"*_debug_*.png", "*_debug_*.html"}

// Report lists what a cleanup touched.
type Report struct {
	Removed []string `json:"removed"`
	Moved   []string `json:"moved,omitempty"`
	Failed  []string `json:"failed,omitempty"`
	DryRun  bool     `json:"dryRun"`
}

// Find returns the debug artifacts directly under dir, sorted.
func Find(dir string) ([]string, error) {
	var out []string
	for _, p := range patterns {
		m, err := filepath.Glob(filepath.Join(dir, p))
		if err != nil {
			return nil, err
		}
		out = append(out, m...)
	}
	sort.Strings(out)
	return out, nil
}

// Clean deletes every debug artifact under dir. With dryRun nothing is removed.
func Clean(dir string, dryRun bool) (Report, error) {
	files, err := Find(dir)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Removed: []string{}, DryRun: dryRun}
	for _, f := range files {
		if dryRun {
			rep.Removed = append(rep.Removed, f)
			continue
		}
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("file", f).Msg("could not remove debug file")
			rep.Failed = append(rep.Failed, f)
			continue
		}
		rep.Removed = append(rep.Removed, f)
	}
	log.Info().Str("dir", dir).Int("removed", len(rep.Removed)).Bool("dry_run", dryRun).Msg("debug files cleaned")
	return rep, nil
}

// Organize moves debug artifacts from dir into target/screenshots and target/html.
func Organize(dir, target string) (Report, error) {
	files, err := Find(dir)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Removed: []string{}}
	for _, sub := range []string{"screenshots", "html"} {
		if err := os.MkdirAll(filepath.Join(target, sub), 0o755); err != nil {
			return rep, fmt.Errorf("create %s: %w", sub, err)
		}
	}
	for _, f := range files {
		sub := "html"
		if filepath.Ext(f) == ".png" {
			sub = "screenshots"
		}
		dst := filepath.Join(target, sub, filepath.Base(f))
		if err := os.Rename(f, dst); err != nil {
			log.Warn().Err(err).Str("file", f).Msg("could not move debug file")
			rep.Failed = append(rep.Failed, f)
			continue
		}
		rep.Moved = append(rep.Moved, dst)
	}
	log.Info().Str("dir", dir).Str("target", target).Int("moved", len(rep.Moved)).Msg("debug files organized")
	return rep, nil
}
