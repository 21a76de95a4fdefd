package assistant

import "testing"

func TestMatches(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"What's my balance?", true},
		{"how much MONEY do I have left", true},
		{"tell me a joke", false},
		{"", false},
	}
	keywords := []string{"balance", "how much money"}
	for _, tc := range cases {
		if got := matches(tc.message, keywords); got != tc.want {
			t.Errorf("matches(%q) = %v, want %v", tc.message, got, tc.want)
		}
	}
}

func TestRuleSelection(t *testing.T) {
	// every rule set should match its own canonical question
	questions := map[string]string{
		"what's my balance":              "balance",
		"am I over budget":               "budget",
		"how are my saving goals doing":  "saving",
		"when is my next subscription":   "subscription",
		"how much have I spent":          "spent",
		"when does student finance land": "student finance",
	}
	for q, keyword := range questions {
		found := false
		for _, r := range rules {
			if matches(q, r.keywords) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no rule matched %q (expected keyword %q)", q, keyword)
		}
	}
}
