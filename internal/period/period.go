// Package period canonicalizes reporting period labels. Uploads spell the
// same period a dozen ways ("P05 FY25", "p5-25", "Aug 2025"); everything
// downstream keys off the canonical "P05 2025" / "Aug 2025" forms.
package period

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	periodPattern = regexp.MustCompile(`(?i)p\s*0*(\d{1,2})\s*(?:fy)?\s*(\d{2,4})`)
	monthPattern  = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*[\s/-]*(20\d{2}|\d{2})`)
	extPattern    = regexp.MustCompile(`\.[^.]+$`)
	sepPattern    = regexp.MustCompile(`[_-]+`)
)

// Normalize canonicalizes a reporting period label. Fiscal-period spellings
// become "P05 2025"; month-year spellings become "Aug 2025". Unrecognized
// input returns "".
func Normalize(input string) string {
	prepared := strings.TrimSpace(input)
	if prepared == "" {
		return ""
	}

	if m := periodPattern.FindStringSubmatch(prepared); m != nil {
		number, _ := strconv.Atoi(m[1])
		year := m[2]
		if len(year) == 2 {
			year = "20" + year
		}
		return fmt.Sprintf("P%02d %s", number, year)
	}

	if m := monthPattern.FindStringSubmatch(prepared); m != nil {
		year := m[2]
		if len(year) == 2 {
			year = "20" + year
		}
		month := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:3])
		return month + " " + year
	}

	return ""
}

// InferFromFileName strips the extension and separators from a file name and
// runs Normalize over what remains.
func InferFromFileName(fileName string) string {
	if fileName == "" {
		return ""
	}
	base := extPattern.ReplaceAllString(fileName, "")
	base = sepPattern.ReplaceAllString(base, " ")
	return Normalize(base)
}
