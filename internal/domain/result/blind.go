package result

import (
	"regexp"
	"strings"

	"github.com/finleysg/bhmc-admin-sub001/internal/platform/fuzzy"
)

var blindTokenRegex = regexp.MustCompile(`(?i)\bbl\[([^\]]+)\]`)

// BlindNames extracts the normalized names marked Bl[Name] in a team name.
// A blind is a placeholder score standing in for a missing team member.
func BlindNames(teamName string) []string {
	matches := blindTokenRegex.FindAllStringSubmatch(teamName, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if name := fuzzy.Normalize(m[1]); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// IsBlind reports whether a team member matches one of the blind tokens.
// Single word tokens compare against the last name; longer ones against full names.
func IsBlind(blinds []string, fullName, lastName, providerName string) bool {
	if len(blinds) == 0 {
		return false
	}

	full := fuzzy.Normalize(fullName)
	last := fuzzy.Normalize(lastName)
	listed := fuzzy.Normalize(providerName)
	for _, token := range blinds {
		if token == full || token == listed {
			return true
		}
		if !strings.Contains(token, " ") && token == last {
			return true
		}
	}
	return false
}
