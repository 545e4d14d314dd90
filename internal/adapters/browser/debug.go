package browser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeRun = regexp.MustCompile(`[^a-z0-9]+`)

// SafeName turns a company or product label into a file name fragment.
func SafeName(label string) string {
	s := unsafeRun.ReplaceAllString(strings.ToLower(label), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "page"
	}
	return s
}

// DebugPath names a debug artifact, e.g. capterra_debug_sage_intacct.png.
func DebugPath(dir, platform, label, ext string) string {
	if platform == "" {
		platform = "page"
	}
	return filepath.Join(dir, fmt.Sprintf("%s_debug_%s.%s", strings.ToLower(platform), SafeName(label), ext))
}
