package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "order.mail.operator_subject", "New Shirt Order")
	message.SetString(lang, "order.mail.operator_title", "New Shirt Order")
	message.SetString(lang, "order.mail.customer_subject", "Your Shirt Order Confirmation")
	message.SetString(lang, "order.mail.customer_greeting", "Thank you for your order!")
	message.SetString(lang, "order.mail.payment_prompt", "If you did not process your Venmo payment at checkout, please click here to finish payment:")
	message.SetString(lang, "order.mail.logo_reminder", "Since you purchased a business design, please email your logo file to %s.")
}
