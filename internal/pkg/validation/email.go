package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// commonDomains lists well-known mail providers used for typo suggestions.
var commonDomains = []string{
	"gmail.com",
	"yahoo.com",
	"outlook.com",
	"hotmail.com",
	"live.com",
	"icloud.com",
	"aol.com",
	"msn.com",
	"proton.me",
	"yahoo.com.ph",
	"gmail.com.ph",
}

// Simple, practical email shape check. Not RFC-perfect, but strict enough
// to reject obvious garbage before it reaches the auth service.
var basicEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[A-Za-z]{2,}$`)

var (
	tldRegex   = regexp.MustCompile(`^[A-Za-z]{2,24}$`)
	labelRegex = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?$`)
)

// Special-cased TLD typos for the most common providers.
var tldTypoFixes = []struct {
	pattern *regexp.Regexp
	domain  string
}{
	{regexp.MustCompile(`(?i)gmail\.(co|con|vom|c0m)$`), "gmail.com"},
	{regexp.MustCompile(`(?i)yahoo\.(co|con)$`), "yahoo.com"},
	{regexp.MustCompile(`(?i)outlook\.(co|con)$`), "outlook.com"},
	{regexp.MustCompile(`(?i)hotmail\.(co|con)$`), "hotmail.com"},
}

// EmailResult is the outcome of validating an email address. Suggestion,
// when set, is a full corrected address for a likely provider typo.
type EmailResult struct {
	Valid      bool
	Reason     string
	Suggestion string
}

// ValidateEmail checks the shape of an email address and offers a typo
// suggestion against common mail providers, e.g. jon@gmial.com suggests
// jon@gmail.com.
func ValidateEmail(emailInput string) EmailResult {
	email := strings.TrimSpace(emailInput)
	if email == "" {
		return EmailResult{Valid: false, Reason: "email is required"}
	}

	if !basicEmailRegex.MatchString(email) {
		return EmailResult{Valid: false, Reason: "please enter a valid email address"}
	}

	atIndex := strings.LastIndex(email, "@")
	if atIndex < 1 || atIndex == len(email)-1 {
		return EmailResult{Valid: false, Reason: "email must include a valid domain"}
	}

	local := email[:atIndex]
	domain := email[atIndex+1:]

	if strings.ContainsAny(local, " \t") || strings.HasPrefix(local, ".") ||
		strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return EmailResult{Valid: false, Reason: "local part of email is invalid"}
	}

	if !hasReasonableDomain(domain) {
		result := EmailResult{Valid: false, Reason: "email domain looks incorrect"}
		if suggested := suggestDomain(domain); suggested != "" {
			result.Suggestion = fmt.Sprintf("%s@%s", local, suggested)
		}
		return result
	}

	// A structurally fine domain that is a near miss of a common provider
	// is almost certainly a typo; reject it with the corrected address.
	if suggested := suggestDomain(domain); suggested != "" && suggested != strings.ToLower(domain) {
		return EmailResult{
			Valid:      false,
			Reason:     "email domain looks incorrect",
			Suggestion: fmt.Sprintf("%s@%s", local, suggested),
		}
	}

	return EmailResult{Valid: true}
}

// hasReasonableDomain applies structural sanity checks to a domain name.
func hasReasonableDomain(domain string) bool {
	if !strings.Contains(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return false
	}
	if strings.Contains(domain, "..") {
		return false
	}

	parts := strings.Split(domain, ".")
	if !tldRegex.MatchString(parts[len(parts)-1]) {
		return false
	}
	for _, label := range parts {
		if label == "" || !labelRegex.MatchString(label) {
			return false
		}
	}
	return true
}

// suggestDomain returns the closest common provider domain within edit
// distance 2, or an empty string when there is no good candidate.
func suggestDomain(domain string) string {
	lower := strings.ToLower(domain)

	best := ""
	bestDist := 3
	for _, candidate := range commonDomains {
		dist := levenshtein(lower, candidate, 2)
		if dist < bestDist {
			best = candidate
			bestDist = dist
			if dist == 0 {
				break
			}
		}
	}
	if best != "" {
		return best
	}

	for _, fix := range tldTypoFixes {
		if fix.pattern.MatchString(lower) {
			return fix.domain
		}
	}
	return ""
}

// levenshtein computes the edit distance between a and b, bailing out with
// maxDistance+1 as soon as the distance is known to exceed maxDistance.
func levenshtein(a, b string, maxDistance int) int {
	if a == b {
		return 0
	}
	la, lb := len(a), len(b)
	if abs(la-lb) > maxDistance {
		return maxDistance + 1
	}

	dp := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		dp[j] = j
	}
	for i := 1; i <= la; i++ {
		prev := dp[0]
		dp[0] = i
		minInRow := dp[0]
		for j := 1; j <= lb; j++ {
			temp := dp[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			dp[j] = min3(dp[j]+1, dp[j-1]+1, prev+cost)
			prev = temp
			if dp[j] < minInRow {
				minInRow = dp[j]
			}
		}
		if minInRow > maxDistance {
			return maxDistance + 1
		}
	}
	return dp[lb]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
