package workflow

import (
	"strings"

	"github.com/affan/hiring-agent/internal/types"
)

// ResolveCandidate finds a candidate by name. Precedence: exact match first,
// then a first-token fallback, to tolerate name truncation in asynchronous
// form submissions. The fallback is deliberately limited to the first token
// and must not be widened.
func ResolveCandidate(candidates []types.Candidate, name string) (types.Candidate, bool) {
	if c, ok := types.FindCandidate(candidates, name); ok {
		return c, true
	}

	first := firstToken(name)
	if first == "" {
		return types.Candidate{}, false
	}
	for _, c := range candidates {
		if strings.EqualFold(firstToken(c.Name), first) {
			return c, true
		}
	}
	return types.Candidate{}, false
}

func firstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
