// Package states holds the read-only table of US state minimum liability
// requirements. The table is built once at init and never mutated.
package states

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Liability is a minimum-liability triple in thousands of dollars:
// bodily injury per person / per accident / property damage.
type Liability struct {
	BIPerPerson    int `json:"bi_per_person"`
	BIPerAccident  int `json:"bi_per_accident"`
	PropertyDamage int `json:"property_damage"`
}

// Record is one jurisdiction. A nil MinLiability means coverage is not mandatory.
type Record struct {
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	MinLiability *Liability `json:"min_liability"`
	Notes        []string   `json:"notes"`
}

func lim(person, accident, pd int) *Liability {
	return &Liability{BIPerPerson: person, BIPerAccident: accident, PropertyDamage: pd}
}

const (
	noFaultPIP  = "No-fault state (PIP required)."
	noFaultOnly = "No-fault state (PIP)."
)

var records = []Record{
	{Code: "AL", Name: "Alabama", MinLiability: lim(25, 50, 25)},
	{Code: "AK", Name: "Alaska", MinLiability: lim(50, 100, 25)},
	{Code: "AZ", Name: "Arizona", MinLiability: lim(25, 50, 15)},
	{Code: "AR", Name: "Arkansas", MinLiability: lim(25, 50, 25)},
	{Code: "CA", Name: "California", MinLiability: lim(15, 30, 5)},
	{Code: "CO", Name: "Colorado", MinLiability: lim(25, 50, 15)},
	{Code: "CT", Name: "Connecticut", MinLiability: lim(25, 50, 25)},
	{Code: "DE", Name: "Delaware", MinLiability: lim(25, 50, 10)},
	{Code: "FL", Name: "Florida", MinLiability: lim(0, 0, 10), Notes: []string{noFaultPIP}},
	{Code: "GA", Name: "Georgia", MinLiability: lim(25, 50, 25)},

	{Code: "HI", Name: "Hawaii", MinLiability: lim(20, 40, 10), Notes: []string{"No-fault style coverage (PIP)."}},
	{Code: "ID", Name: "Idaho", MinLiability: lim(25, 50, 15)},
	{Code: "IL", Name: "Illinois", MinLiability: lim(25, 50, 20)},
	{Code: "IN", Name: "Indiana", MinLiability: lim(25, 50, 25)},
	{Code: "IA", Name: "Iowa", MinLiability: lim(20, 40, 15)},
	{Code: "KS", Name: "Kansas", MinLiability: lim(25, 50, 25), Notes: []string{noFaultPIP}},
	{Code: "KY", Name: "Kentucky", MinLiability: lim(25, 50, 25), Notes: []string{"Choice no-fault state (PIP usually offered)."}},
	{Code: "LA", Name: "Louisiana", MinLiability: lim(15, 30, 25)},
	{Code: "ME", Name: "Maine", MinLiability: lim(50, 100, 25)},
	{Code: "MD", Name: "Maryland", MinLiability: lim(30, 60, 15)},

	{Code: "MA", Name: "Massachusetts", MinLiability: lim(20, 40, 5), Notes: []string{noFaultOnly}},
	{Code: "MI", Name: "Michigan", MinLiability: lim(50, 100, 10), Notes: []string{noFaultOnly}},
	{Code: "MN", Name: "Minnesota", MinLiability: lim(30, 60, 10), Notes: []string{noFaultOnly}},
	{Code: "MS", Name: "Mississippi", MinLiability: lim(25, 50, 25)},
	{Code: "MO", Name: "Missouri", MinLiability: lim(25, 50, 25)},
	{Code: "MT", Name: "Montana", MinLiability: lim(25, 50, 20)},
	{Code: "NE", Name: "Nebraska", MinLiability: lim(25, 50, 25)},
	{Code: "NV", Name: "Nevada", MinLiability: lim(25, 50, 20)},
	{Code: "NH", Name: "New Hampshire", Notes: []string{"Insurance is not mandatory, but you may need to show financial responsibility."}},
	{Code: "NJ", Name: "New Jersey", MinLiability: lim(25, 50, 25), Notes: []string{"No-fault state (PIP). Basic vs Standard policies exist."}},

	{Code: "NM", Name: "New Mexico", MinLiability: lim(25, 50, 10)},
	{Code: "NY", Name: "New York", MinLiability: lim(25, 50, 10), Notes: []string{noFaultOnly}},
	{Code: "NC", Name: "North Carolina", MinLiability: lim(30, 60, 25)},
	{Code: "ND", Name: "North Dakota", MinLiability: lim(25, 50, 25)},
	{Code: "OH", Name: "Ohio", MinLiability: lim(25, 50, 25)},
	{Code: "OK", Name: "Oklahoma", MinLiability: lim(25, 50, 25)},
	{Code: "OR", Name: "Oregon", MinLiability: lim(25, 50, 20)},
	{Code: "PA", Name: "Pennsylvania", MinLiability: lim(15, 30, 5), Notes: []string{"Choice no-fault state (limited vs full tort)."}},
	{Code: "RI", Name: "Rhode Island", MinLiability: lim(25, 50, 25)},
	{Code: "SC", Name: "South Carolina", MinLiability: lim(25, 50, 25)},

	{Code: "SD", Name: "South Dakota", MinLiability: lim(25, 50, 25)},
	{Code: "TN", Name: "Tennessee", MinLiability: lim(25, 50, 25)},
	{Code: "TX", Name: "Texas", MinLiability: lim(30, 60, 25)},
	{Code: "UT", Name: "Utah", MinLiability: lim(25, 65, 15), Notes: []string{noFaultOnly}},
	{Code: "VT", Name: "Vermont", MinLiability: lim(25, 50, 10)},
	{Code: "VA", Name: "Virginia", MinLiability: lim(30, 60, 20), Notes: []string{"Some drivers may opt to pay an uninsured motor vehicle fee."}},
	{Code: "WA", Name: "Washington", MinLiability: lim(25, 50, 10)},
	{Code: "WV", Name: "West Virginia", MinLiability: lim(25, 50, 25)},
	{Code: "WI", Name: "Wisconsin", MinLiability: lim(25, 50, 10)},
	{Code: "WY", Name: "Wyoming", MinLiability: lim(25, 50, 20)},
}

// PopularCodes are featured on the compare page.
var PopularCodes = []string{"CA", "TX", "FL", "NY", "CT", "NJ", "PA", "GA"}

var (
	byCode = make(map[string]Record, len(records))
	bySlug = make(map[string]string, len(records))
	sorted []string
)

func init() {
	for _, r := range records {
		if _, dup := byCode[r.Code]; dup {
			panic("states: duplicate code " + r.Code)
		}
		byCode[r.Code] = r
		bySlug[Slugify(r.Name)] = r.Code
		sorted = append(sorted, r.Code)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return byCode[sorted[i]].Name < byCode[sorted[j]].Name
	})
	records = nil
}

// Normalize trims and upper-cases a raw code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup finds a record by code, ignoring case and surrounding whitespace.
func Lookup(code string) (Record, bool) {
	r, ok := byCode[Normalize(code)]
	if !ok {
		return Record{}, false
	}
	return r.clone(), true
}

// BySlug finds a record by its slugified name, e.g. "new-york".
func BySlug(slug string) (Record, bool) {
	code, ok := bySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return Record{}, false
	}
	return Lookup(code)
}

// All returns every record ordered by name.
func All() []Record {
	out := make([]Record, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, byCode[c].clone())
	}
	return out
}

// Popular returns the featured states in PopularCodes order, skipping unknown codes.
func Popular() []Record {
	out := make([]Record, 0, len(PopularCodes))
	for _, c := range PopularCodes {
		if r, ok := Lookup(c); ok {
			out = append(out, r)
		}
	}
	return out
}

// Count is the number of records in the table.
func Count() int { return len(byCode) }

// clone hands out copies so callers can never reach the shared table.
func (r Record) clone() Record {
	if r.MinLiability != nil {
		l := *r.MinLiability
		r.MinLiability = &l
	}
	if r.Notes != nil {
		r.Notes = append([]string(nil), r.Notes...)
	}
	return r
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a state name into a URL segment: "New York" -> "new-york".
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "&", "and")
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FormatMinimums renders the triple as "25/50/25", or "Not required".
func FormatMinimums(r Record) string {
	if r.MinLiability == nil {
		return "Not required"
	}
	l := r.MinLiability
	return fmt.Sprintf("%d/%d/%d", l.BIPerPerson, l.BIPerAccident, l.PropertyDamage)
}

// DescribeMinimums spells the triple out in dollars for page copy.
func DescribeMinimums(r Record) []string {
	if r.MinLiability == nil {
		return nil
	}
	l := r.MinLiability
	return []string{
		fmt.Sprintf("$%s bodily injury per person", thousands(l.BIPerPerson)),
		fmt.Sprintf("$%s bodily injury per accident", thousands(l.BIPerAccident)),
		fmt.Sprintf("$%s property damage", thousands(l.PropertyDamage)),
	}
}

func thousands(k int) string {
	if k == 0 {
		return "0"
	}
	return fmt.Sprintf("%d,000", k)
}
