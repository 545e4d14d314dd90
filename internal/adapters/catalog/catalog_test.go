package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	in := "\ufeffCompany, Capterra_URL\n" +
		"Acme,https://www.capterra.com/p/1/Acme/\n" +
		",https://example.com/orphan\n" +
		"NoURL,\n" +
		"Broken,a,b,c\n" +
		"\"Square (Block, Inc.)\",https://www.capterra.com/p/140188/Square-Point-of-Sale/reviews/\n"

	urls, warnings, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"Acme":                 "https://www.capterra.com/p/1/Acme/",
		"NoURL":                "",
		"Square (Block, Inc.)": "https://www.capterra.com/p/140188/Square-Point-of-Sale/reviews/",
	}, urls)
	require.Len(t, warnings, 3)
}

func TestLoadCSV_BadHeader(t *testing.T) {
	_, _, err := LoadCSV(strings.NewReader("Name,URL\nAcme,x\n"))
	require.Error(t, err)

	_, _, err = LoadCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestCatalog_Lookups(t *testing.T) {
	c := New(StaticProducts(), map[string]string{"Acme": "https://a", "NoURL": ""})

	u, ok := c.URLFor("acme ")
	require.True(t, ok)
	require.Equal(t, "https://a", u)

	_, ok = c.URLFor("NoURL")
	require.False(t, ok)
	_, ok = c.URLFor("Unknown Co")
	require.False(t, ok)

	ps := c.ProductsFor("sage")
	require.Len(t, ps, 3)
	ps["mutated"] = "x"
	require.Len(t, c.ProductsFor("Sage"), 3)

	require.Empty(t, c.ProductsFor("Unknown Co"))

	names := c.Companies()
	require.Contains(t, names, "Acme")
	require.Contains(t, names, "Iplicit")
	require.IsIncreasing(t, names)
}

func TestCatalog_StaticTable(t *testing.T) {
	c := New(StaticProducts(), nil)
	require.Len(t, c.Companies(), 25)

	multi := c.MultiProductCompanies()
	for _, name := range []string{"Access Group", "ADP", "BILL (Bill.com)", "Sage", "Cegid", "Emburse"} {
		require.Contains(t, multi, name)
	}
	require.NotContains(t, multi, "Xero")

	all := c.AllProducts()
	p, ok := all["Sage - Sage Intacct"]
	require.True(t, ok)
	require.Equal(t, "Sage", p.Company)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "missing.csv"))
	require.NoError(t, err)
	_, ok := c.URLFor("Xero")
	require.False(t, ok)
	require.NotEmpty(t, c.ProductsFor("Xero"))

	f := filepath.Join(dir, "urls.csv")
	require.NoError(t, os.WriteFile(f, []byte("Company,Capterra_URL\nXero,https://x\n"), 0o644))
	c, err = Open(f)
	require.NoError(t, err)
	u, ok := c.URLFor("Xero")
	require.True(t, ok)
	require.Equal(t, "https://x", u)
}
