package telegram

import (
	"fmt"
	"strings"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
)

const welcomeMessage = `Welcome to Ekonomi!

Ask me anything, or look up shopping prices in INR.

/help - list commands`

const helpMessage = `Commands:
/product <name> - search shops, prices in INR and current offers
/export <name> - the same results as an Excel file
/history - your previous questions and answers

Any other message is answered by the AI assistant.`

func buildProductPreview(query string, products []entity.ProductResult, limit int) string {
	if len(products) == 0 {
		return fmt.Sprintf("No products found for %q.", query)
	}

	total := len(products)
	if limit > 0 && total > limit {
		products = products[:limit]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Results for %q:\n\n", query)
	for i, p := range products {
		fmt.Fprintf(&sb, "%d) %s - ₹%.2f\n", i+1, p.Name, p.PriceInINR)
		fmt.Fprintf(&sb, "   Offer: %s\n", truncateString(p.Offer, 200))
		if p.URL != "" {
			fmt.Fprintf(&sb, "   %s\n", p.URL)
		}
		sb.WriteString("\n")
	}
	if total > len(products) {
		fmt.Fprintf(&sb, "...and %d more. Use /export for the full list.", total-len(products))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func buildHistoryDigest(history []entity.Conversation, limit int) string {
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}

	var sb strings.Builder
	sb.WriteString("Chat history (newest first):\n\n")
	for i, c := range history {
		fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, c.Timestamp.Format("2006-01-02 15:04"), truncateString(c.UserMessage, 200))
		fmt.Fprintf(&sb, "-> %s\n\n", truncateString(c.AIResponse, 300))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// truncateString shortens s to max runes, marking the cut with "..."
func truncateString(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
