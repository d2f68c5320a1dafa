package geo

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/dealfit/internal/model"
)

// codePattern matches any canonical two-letter code on word boundaries in
// uppercased text. Built once at load time from the adjacency table so it
// can never drift from the canonical code set.
var codePattern = regexp.MustCompile(`\b(` + strings.Join(AllStateCodes(), "|") + `)\b`)

// NormalizeState converts free text to a canonical state code. A valid
// code passes through (case-insensitive); full names map via the name
// table; anything else returns "".
func NormalizeState(text string) string {
	t := strings.ToLower(model.CleanText(text))
	if t == "" {
		return ""
	}
	upper := strings.ToUpper(t)
	if len(upper) == 2 && IsStateCode(upper) {
		return upper
	}
	if code, ok := stateNames[t]; ok {
		return code
	}
	return ""
}

// ExtractStates pulls every state mentioned in free text: full names
// first, then word-boundary code matches. The result is sorted for
// deterministic downstream behavior.
func ExtractStates(text string) []string {
	t := model.CleanText(text)
	if t == "" {
		return nil
	}
	found := make(map[string]struct{})
	lower := strings.ToLower(t)
	for name, code := range stateNames {
		if strings.Contains(lower, name) {
			found[code] = struct{}{}
		}
	}
	for _, m := range codePattern.FindAllString(strings.ToUpper(t), -1) {
		found[m] = struct{}{}
	}
	return sortedCodes(found)
}

// ExtractStatesFromList applies ExtractStates per item, falling back to
// direct normalization when keyword extraction finds nothing for an item.
func ExtractStatesFromList(items []string) []string {
	found := make(map[string]struct{})
	for _, item := range items {
		states := ExtractStates(item)
		if len(states) == 0 {
			if code := NormalizeState(item); code != "" {
				states = []string{code}
			}
		}
		for _, s := range states {
			found[s] = struct{}{}
		}
	}
	return sortedCodes(found)
}

func sortedCodes(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
