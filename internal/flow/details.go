package flow

import (
	"strings"

	"github.com/natindo/FamilyFlow/internal/models"
)

var detailPrefixes = []struct {
	prefix string
	set    func(d *models.Details, v string)
}{
	{"contact:", func(d *models.Details, v string) { d.ContactName = v }},
	{"phone:", func(d *models.Details, v string) { d.PhoneNumber = v }},
	{"email:", func(d *models.Details, v string) { d.Email = v }},
	{"website:", func(d *models.Details, v string) { d.WebsiteURL = v }},
	{"url:", func(d *models.Details, v string) { d.WebsiteURL = v }},
}

// ParseDetails splits typed text into contact fields and notes. Lines
// starting with "Contact:", "Phone:", "Email:", "Website:" or "URL:" fill
// the matching field; every other line is kept as notes.
func ParseDetails(text string) models.Details {
	var (
		d     models.Details
		notes []string
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		matched := false
		for _, dp := range detailPrefixes {
			if strings.HasPrefix(lower, dp.prefix) {
				dp.set(&d, strings.TrimSpace(line[len(dp.prefix):]))
				matched = true
				break
			}
		}
		if !matched {
			notes = append(notes, line)
		}
	}
	d.Notes = strings.Join(notes, "\n")
	return d
}
