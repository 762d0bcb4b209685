// Package companies lists the insurers the site links out to.
package companies

import "strings"

type Company struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Tagline string   `json:"tagline"`
	BestFor []string `json:"best_for"`
	URL     string   `json:"url"`
}

var list = []Company{
	{
		ID:      "geico",
		Name:    "GEICO",
		Tagline: "Often competitive for many drivers.",
		BestFor: []string{"Budget shoppers", "Clean record", "Fast online quotes"},
		URL:     "https://www.geico.com/",
	},
	{
		ID:      "progressive",
		Name:    "Progressive",
		Tagline: "Strong discounts and flexible options.",
		BestFor: []string{"New drivers", "Telematics", "Compare pricing"},
		URL:     "https://www.progressive.com/",
	},
	{
		ID:      "statefarm",
		Name:    "State Farm",
		Tagline: "Great if you want an agent + bundling.",
		BestFor: []string{"Agent support", "Bundling", "Families"},
		URL:     "https://www.statefarm.com/",
	},
	{
		ID:      "allstate",
		Name:    "Allstate",
		Tagline: "Good coverage add-ons and agents.",
		BestFor: []string{"More coverage", "Agents", "Add-ons"},
		URL:     "https://www.allstate.com/",
	},
	{
		ID:      "nationwide",
		Name:    "Nationwide",
		Tagline: "Solid discounts for safe drivers.",
		BestFor: []string{"Safe drivers", "Bundling", "Discounts"},
		URL:     "https://www.nationwide.com/",
	},
	{
		ID:      "travelers",
		Name:    "Travelers",
		Tagline: "Strong for bundles and coverage options.",
		BestFor: []string{"Bundling", "Home+Auto", "Coverage options"},
		URL:     "https://www.travelers.com/",
	},
}

var byID = func() map[string]Company {
	m := make(map[string]Company, len(list))
	for _, c := range list {
		m[c.ID] = c
	}
	return m
}()

// All returns the companies in display order.
func All() []Company {
	out := make([]Company, len(list))
	for i, c := range list {
		c.BestFor = append([]string(nil), c.BestFor...)
		out[i] = c
	}
	return out
}

// ByID finds a company by its ID, ignoring case and surrounding whitespace.
func ByID(id string) (Company, bool) {
	c, ok := byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Company{}, false
	}
	c.BestFor = append([]string(nil), c.BestFor...)
	return c, true
}
