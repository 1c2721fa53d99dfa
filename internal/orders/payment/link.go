// Package payment builds Venmo payment-request links handed to customers to
// complete payment externally.
package payment

import (
	"net/url"
	"strconv"
	"strings"
)

const baseURL = "https://venmo.com/"

// Link returns a payment-request URL encoding the recipient handle, the
// computed total, and a "Fundraiser - <playerName>" note.
func Link(recipientHandle string, amount int, playerName string) string {
	var link strings.Builder
	link.WriteString(baseURL)
	link.WriteString("?txn=pay&recipients=")
	link.WriteString(escape(recipientHandle))
	link.WriteString("&amount=")
	link.WriteString(strconv.Itoa(amount))
	link.WriteString("&note=")
	link.WriteString(escape("Fundraiser - " + playerName))
	return link.String()
}

// escape percent-encodes a query component, using %20 for spaces so the note
// renders verbatim in payment apps that do not decode "+".
func escape(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
