package alerts

import (
	"html"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/dportela/procura/backend/internal/contracts"
)

// The legacy store kept dates as text and different imports used
// different formats. Tried in order; first match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02/01/2006 15:04:05",
}

// Truthy markers seen in legacy flag columns alongside regular booleans
var truthyFlags = map[string]bool{
	"sim": true,
	"s":   true,
	"x":   true,
	"y":   true,
	"yes": true,
	"1":   true,
}

var falsyFlags = map[string]bool{
	"nao": true,
	"não": true,
	"n":   true,
	"no":  true,
	"0":   true,
}

// Normalize coerces a raw order into the canonical form. It is total:
// any unparseable field collapses to its safe default (nil date, zero
// amount, false flag) and the record passes through, so a garbage row
// still classifies consistently as a pending, zero-amount, undated order.
func Normalize(raw contracts.RawOrder) contracts.Order {
	return contracts.Order{
		ID:            raw.ID,
		OrderNumber:   cleanText(raw.OrderNumber),
		RequestNumber: cleanText(raw.RequestNumber),

		Department:   cleanText(raw.Department),
		Description:  cleanText(raw.Description),
		SupplierID:   strings.TrimSpace(raw.SupplierID),
		SupplierName: cleanText(raw.SupplierName),

		RequestedQty: parseAmount(raw.RequestedQty),
		DeliveredQty: parseAmount(raw.DeliveredQty),
		PendingQty:   parseAmount(raw.PendingQty),
		Amount:       parseAmount(raw.Amount),

		RequestedDate:       parseDate(raw.RequestedDate),
		OrderDate:           parseDate(raw.OrderDate),
		PromisedDate:        parseDate(raw.PromisedDate),
		ContractualDeadline: parseDate(raw.ContractualDeadline),

		Delivered: parseFlag(raw.Delivered),

		State: contracts.StatePendingUndated,
	}
}

// NormalizeAll normalizes a snapshot in input order
func NormalizeAll(raw []contracts.RawOrder) []contracts.Order {
	orders := make([]contracts.Order, 0, len(raw))
	for _, r := range raw {
		orders = append(orders, Normalize(r))
	}
	return orders
}

// parseDate tries the known layouts and returns nil when none match.
// An unparseable date must never become today or epoch zero.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	return nil
}

// parseFlag coerces boolean-like text; anything unrecognized is false
func parseFlag(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return false
	}

	if truthyFlags[s] {
		return true
	}
	if falsyFlags[s] {
		return false
	}

	switch s {
	case "true", "t":
		return true
	default:
		return false
	}
}

// parseAmount coerces monetary and quantity text to decimal.
// Handles plain ("1234.56") and Brazilian ("1.234,56") punctuation
// plus a leading currency marker; unparseable values become zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	if strings.Contains(s, ",") {
		// Brazilian format: thousands dot, decimal comma
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return value
}

// cleanText strips any HTML that leaked into free-text columns from the
// old web forms, unescapes entities and collapses whitespace.
func cleanText(s string) string {
	s = html.UnescapeString(s)

	if strings.Contains(s, "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}

	return strings.Join(strings.Fields(s), " ")
}

// displayText substitutes the placeholder used by the renderers for
// empty values
func displayText(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
