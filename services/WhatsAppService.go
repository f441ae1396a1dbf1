package services

import (
	"fmt"
	"net/url"
	"strings"

	"okpups/entities"
)

// CleanWhatsAppNumber strips everything but digits, including a leading +.
func CleanWhatsAppNumber(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidWhatsAppNumber expects an international number: at least six
// digits and no leading zero in place of a country code.
func IsValidWhatsAppNumber(digits string) bool {
	if len(digits) < 6 {
		return false
	}
	if digits[0] == '0' {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// WhatsAppLink builds the wa.me deep link with the prefilled message.
func WhatsAppLink(number string, message string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}

// CustomerGreeting is the prefill a customer carries into the payment chat.
// Deliberately free of order details; those live in the created order.
func CustomerGreeting(name string) string {
	who := strings.TrimSpace(name)
	if who == "" {
		who = "Customer"
	}
	return "Hi OKPUPS Team — my name is " + who + ". I'm ready to make payment for my order now. Please send payment instructions and confirm availability. Thank you!"
}

// OrderConfirmationMessage is the admin-side prefill asking the customer to
// confirm an itemized order summary.
func OrderConfirmationMessage(order entities.Order, number string) string {
	var lines []string
	for _, it := range order.Items {
		lines = append(lines, fmt.Sprintf("- %s × %d — $%g", it.Name, it.Qty, it.Price))
	}
	name := order.CustomerName
	if name == "" {
		name = "(unknown)"
	}
	return fmt.Sprintf(
		"Is this your order to confirm?\n\nCustomer: %s\nPhone: %s\n\nOrder summary:\n%s\n\nSubtotal: $%g\n\nIf this is correct, please reply CONFIRM.\n\n— OKPUPS",
		name, number, strings.Join(lines, "\n"), order.Subtotal)
}
