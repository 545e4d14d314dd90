package selectors

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/rs/zerolog/log"
	"github.com/titanous/json5"

	"review_sentiment/internal/domain"
)

//go:embed default.json5
var defaultProfiles []byte

// Profiles maps a profile key ("capterra", "capterra_static", ...) to its selectors.
type Profiles map[string]domain.SelectorProfile

func (p Profiles) Get(name string) (domain.SelectorProfile, bool) {
	sp, ok := p[strings.ToLower(name)]
	return sp, ok
}

// Defaults returns the built-in profiles.
func Defaults() Profiles {
	var out Profiles
	if err := json5.Unmarshal(defaultProfiles, &out); err != nil {
		panic(fmt.Sprintf("selectors: bad embedded defaults: %v", err))
	}
	return normalize(out)
}

// Load layers <name>.<ext> and then <name>.local.<ext> over the defaults.
// Missing files are fine; only set fields override.
func Load(path string) (Profiles, error) {
	out := Defaults()
	if path == "" {
		return out, nil
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	local := filepath.Join(dir, strings.TrimSuffix(base, ext)+".local"+ext)

	for _, f := range []string{path, local} {
		raw, err := os.ReadFile(f)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var override Profiles
		if err := json5.Unmarshal(raw, &override); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		if err := merge(out, normalize(override)); err != nil {
			return nil, fmt.Errorf("merge %s: %w", f, err)
		}
		log.Info().Str("file", f).Int("profiles", len(override)).Msg("selector overrides loaded")
	}
	return out, nil
}

func merge(dst, src Profiles) error {
	for k, o := range src {
		cur, ok := dst[k]
		if !ok {
			dst[k] = o
			continue
		}
		if err := mergo.Merge(&cur, o, mergo.WithOverride); err != nil {
			return err
		}
		dst[k] = cur
	}
	return nil
}

func normalize(p Profiles) Profiles {
	out := make(Profiles, len(p))
	for k, v := range p {
		k = strings.ToLower(strings.TrimSpace(k))
		if v.Platform == "" {
			v.Platform = strings.TrimSuffix(k, "_static")
		}
		out[k] = v
	}
	return out
}
