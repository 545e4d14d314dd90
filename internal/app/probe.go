package app

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	spaceRe  = regexp.MustCompile(`\s+`)
	numberRe = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
)

func cleanText(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// find never panics; a selector the matcher cannot handle yields an empty selection.
func find(sel *goquery.Selection, css string) (out *goquery.Selection) {
	defer func() {
		if r := recover(); r != nil {
			out = sel.Slice(0, 0)
		}
	}()
	return sel.Find(css)
}

// ProbeText returns the trimmed text of the first selector (in order) that
// matches a node with non-empty text.
func ProbeText(sel *goquery.Selection, selectors []string) (string, bool) {
	if sel == nil {
		return "", false
	}
	for _, css := range selectors {
		if strings.TrimSpace(css) == "" {
			continue
		}
		found := find(sel, css)
		if found.Length() == 0 {
			continue
		}
		if s := cleanText(found.First().Text()); s != "" {
			return s, true
		}
	}
	return "", false
}

// ProbeAttr is ProbeText over a named attribute.
func ProbeAttr(sel *goquery.Selection, selectors []string, attr string) (string, bool) {
	if sel == nil || attr == "" {
		return "", false
	}
	for _, css := range selectors {
		if strings.TrimSpace(css) == "" {
			continue
		}
		var out string
		find(sel, css).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			out = cleanText(s.AttrOr(attr, ""))
			return out == ""
		})
		if out != "" {
			return out, true
		}
	}
	return "", false
}

// ProbeRating reads attr (falling back to text) of each selector's matches and
// returns the first decimal number in the 0..5 range.
func ProbeRating(sel *goquery.Selection, selectors []string, attr string) (float64, bool) {
	if sel == nil {
		return 0, false
	}
	for _, css := range selectors {
		if strings.TrimSpace(css) == "" {
			continue
		}
		var (
			val float64
			ok  bool
		)
		find(sel, css).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			raw := ""
			if attr != "" {
				raw = s.AttrOr(attr, "")
			}
			if strings.TrimSpace(raw) == "" {
				raw = s.Text()
			}
			val, ok = parseRating(raw)
			return !ok
		})
		if ok {
			return val, true
		}
	}
	return 0, false
}

func parseRating(s string) (float64, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || f < 0 || f > 5 {
		return 0, false
	}
	return f, true
}

// ProbeList collects item texts for the first selector with any non-empty match.
// A match holding list items contributes one entry per <li>.
func ProbeList(sel *goquery.Selection, selectors []string) []string {
	if sel == nil {
		return nil
	}
	for _, css := range selectors {
		if strings.TrimSpace(css) == "" {
			continue
		}
		var out []string
		find(sel, css).Each(func(_ int, s *goquery.Selection) {
			if items := s.Find("li"); items.Length() > 0 {
				items.Each(func(_ int, li *goquery.Selection) {
					if t := cleanText(li.Text()); t != "" {
						out = append(out, t)
					}
				})
				return
			}
			if t := cleanText(s.Text()); t != "" {
				out = append(out, t)
			}
		})
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
