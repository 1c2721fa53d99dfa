// Package render builds the plain-text email copy for one order: the
// operator notification and the customer confirmation.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer is the minimal message-printer contract required by the renderer.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Printer returns the default English localizer.
func Printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// Order is the renderer's view of one committed order record.
type Order struct {
	Timestamp  string
	PlayerName string
	TeamName   string
	Email      string
	ShirtSize  string

	PlayerLineCount int
	PlayerLines     []string

	BusinessDesign          string
	BusinessDesignRequested bool
	BusinessLineCount       int
	BusinessLines           []string

	TotalAmount int
}

// OperatorEmail renders the internal notification with full order detail.
func OperatorEmail(loc Localizer, order Order, paymentLink string) (subject string, body string) {
	var b strings.Builder
	b.WriteString(loc.Sprintf("order.mail.operator_title"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Date/Time: %s\n\n", order.Timestamp)
	writeOrderDetail(&b, order)
	b.WriteString("\n")
	writePaymentPrompt(&b, loc, paymentLink)
	return loc.Sprintf("order.mail.operator_subject"), b.String()
}

// CustomerEmail renders the customer confirmation receipt with the payment
// call-to-action. When a business design was requested and a sales address
// is configured, the body also reminds the customer to email a logo file.
func CustomerEmail(loc Localizer, order Order, paymentLink string, salesAddress string) (subject string, body string) {
	var b strings.Builder
	b.WriteString(loc.Sprintf("order.mail.customer_greeting"))
	b.WriteString("\n\n")
	b.WriteString("Order Summary\n-----------------------\n")
	writeOrderDetail(&b, order)
	b.WriteString("-----------------------\n\n")
	writePaymentPrompt(&b, loc, paymentLink)
	if order.BusinessDesignRequested && strings.TrimSpace(salesAddress) != "" {
		b.WriteString("\n")
		b.WriteString(loc.Sprintf("order.mail.logo_reminder", salesAddress))
		b.WriteString("\n")
	}
	return loc.Sprintf("order.mail.customer_subject"), b.String()
}

func writeOrderDetail(b *strings.Builder, order Order) {
	fmt.Fprintf(b, "Player Name: %s\n", order.PlayerName)
	fmt.Fprintf(b, "Team/Coach: %s\n", order.TeamName)
	fmt.Fprintf(b, "Email: %s\n", order.Email)
	fmt.Fprintf(b, "Shirt Size: %s\n\n", order.ShirtSize)

	fmt.Fprintf(b, "Supporter Lines Purchased: %d\n", order.PlayerLineCount)
	b.WriteString("Supporter Names:\n")
	writeNameList(b, order.PlayerLines)

	fmt.Fprintf(b, "\nBusiness Design Purchased: %s\n", order.BusinessDesign)
	fmt.Fprintf(b, "Business Lines Purchased: %d\n", order.BusinessLineCount)
	b.WriteString("Business Names:\n")
	writeNameList(b, order.BusinessLines)

	fmt.Fprintf(b, "\nTotal Amount: $%d\n", order.TotalAmount)
}

func writeNameList(b *strings.Builder, names []string) {
	if len(names) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for idx, name := range names {
		b.WriteString("  " + strconv.Itoa(idx+1) + ". " + name + "\n")
	}
}

func writePaymentPrompt(b *strings.Builder, loc Localizer, paymentLink string) {
	b.WriteString(loc.Sprintf("order.mail.payment_prompt"))
	b.WriteString("\n")
	b.WriteString(paymentLink)
	b.WriteString("\n")
}
