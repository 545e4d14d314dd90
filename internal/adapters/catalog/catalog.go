package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	colCompany = "company"
	colURL     = "capterra_url"
)

// Catalog answers which review pages belong to a company. The product table
// drives the multi-product view; the CSV urls drive single-URL scrape runs.
type Catalog struct {
	products map[string]map[string]string
	urls     map[string]string // company -> url, "" when the row had no url
	index    map[string]string // lower(company) -> company as written
}

func New(products map[string]map[string]string, urls map[string]string) *Catalog {
	c := &Catalog{
		products: map[string]map[string]string{},
		urls:     map[string]string{},
		index:    map[string]string{},
	}
	for name, ps := range products {
		c.products[name] = copyMap(ps)
		c.index[strings.ToLower(name)] = name
	}
	for name, u := range urls {
		c.urls[name] = u
		c.index[strings.ToLower(name)] = name
	}
	return c
}

// Open builds the catalog from the built-in product table and the CSV at path.
// A missing CSV leaves the url view empty.
func Open(path string) (*Catalog, error) {
	var urls map[string]string
	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Warn().Str("path", path).Msg("catalog csv not found; no company urls loaded")
	case err != nil:
		return nil, err
	default:
		defer f.Close()
		var warnings []string
		urls, warnings, err = LoadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
		for _, w := range warnings {
			log.Warn().Str("path", path).Msg(w)
		}
		log.Info().Str("path", path).Int("companies", len(urls)).Msg("catalog loaded")
	}
	return New(companyProducts, urls), nil
}

// LoadCSV reads Company,Capterra_URL rows. Unusable rows come back as warnings;
// only a missing header column is an error.
func LoadCSV(r io.Reader) (map[string]string, []string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, errors.New("empty csv")
		}
		return nil, nil, err
	}
	ci, ui := -1, -1
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		switch h {
		case colCompany:
			ci = i
		case colURL:
			ui = i
		}
	}
	if ci < 0 || ui < 0 {
		return nil, nil, fmt.Errorf("csv header must contain Company and Capterra_URL, got %v", header)
	}

	out := map[string]string{}
	var warnings []string
	line := 1
	for {
		rec, err := cr.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				warnings = append(warnings, fmt.Sprintf("skipping malformed row %d: %v", pe.Line, pe.Err))
				continue
			}
			return nil, nil, err
		}
		company := strings.TrimSpace(rec[ci])
		if company == "" {
			warnings = append(warnings, fmt.Sprintf("skipping row %d: blank company", line))
			continue
		}
		u := strings.TrimSpace(rec[ui])
		if u == "" {
			warnings = append(warnings, fmt.Sprintf("company %q has no Capterra_URL", company))
		}
		out[company] = u
	}
	return out, warnings, nil
}

func (c *Catalog) lookup(company string) string {
	if name, ok := c.index[strings.ToLower(strings.TrimSpace(company))]; ok {
		return name
	}
	return company
}

// URLFor returns the company's review page from the CSV view. Lookup ignores case.
func (c *Catalog) URLFor(company string) (string, bool) {
	u := c.urls[c.lookup(company)]
	return u, u != ""
}

// ProductsFor returns a copy of the company's product -> url map (empty when unknown).
func (c *Catalog) ProductsFor(company string) map[string]string {
	return copyMap(c.products[c.lookup(company)])
}

// Companies lists every known company from both views, sorted.
func (c *Catalog) Companies() []string {
	out := make([]string, 0, len(c.index))
	for _, name := range c.index {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type Product struct {
	Company string `json:"company"`
	Product string `json:"product"`
	URL     string `json:"url"`
}

// AllProducts is keyed "<company> - <product>".
func (c *Catalog) AllProducts() map[string]Product {
	out := map[string]Product{}
	for company, ps := range c.products {
		for name, u := range ps {
			out[company+" - "+name] = Product{Company: company, Product: name, URL: u}
		}
	}
	return out
}

func (c *Catalog) MultiProductCompanies() map[string]map[string]string {
	out := map[string]map[string]string{}
	for company, ps := range c.products {
		if len(ps) > 1 {
			out[company] = copyMap(ps)
		}
	}
	return out
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
