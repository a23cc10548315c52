// Package offer scans product page text for promotional phrases.
package offer

import (
	"regexp"
	"strings"
)

const (
	// NoOffersFound returned when no pattern matches the page text
	NoOffersFound = "No specific offers found"

	// Unavailable used when a product has no page to scan
	Unavailable = "No offer available"

	// FetchFailed used when the product page could not be downloaded
	FetchFailed = "Error fetching offers"

	// Separator joins individual matches
	Separator = " | "
)

// patterns order is the output order
var patterns = []*regexp.Regexp{
	// percentage discounts
	regexp.MustCompile(`(?i)(?:up\s+to\s+)?\d{1,3}(?:\.\d+)?%\s*off`),
	// free shipping
	regexp.MustCompile(`(?i)free\s+(?:shipping|delivery)(?:\s+on\s+orders?\s+(?:over|above)\s+[$₹]?\d[\d,]*(?:\.\d{2})?)?`),
	// installments
	regexp.MustCompile(`(?i)no[\s-]cost\s+emi|emi\s+available|\d+\s+(?:interest[\s-]free\s+)?(?:monthly\s+)?(?:payments|installments)(?:\s+of\s+[$₹]?\d[\d,]*(?:\.\d{2})?)?`),
	// coupons
	regexp.MustCompile(`(?i)(?:save\s+)?\d{1,3}%\s+(?:off\s+)?with\s+coupon|coupon\s+(?:for\s+)?\d{1,3}%\s+off`),
	// buy N get M free
	regexp.MustCompile(`(?i)buy\s+\d+\s+get\s+\d+\s+free`),
	// extra percentage
	regexp.MustCompile(`(?i)extra\s+\d{1,3}%\s*off`),
}

// Extract returns every offer phrase found in text joined with Separator,
// or NoOffersFound.
func Extract(text string) string {
	var found []string
	for _, re := range patterns {
		for _, m := range re.FindAllString(text, -1) {
			if m = strings.Join(strings.Fields(m), " "); m != "" {
				found = append(found, m)
			}
		}
	}

	if len(found) == 0 {
		return NoOffersFound
	}
	return strings.Join(found, Separator)
}
