package email

import (
	"fmt"
	"strings"

	"github.com/josiasngenda250/sentir-order-app/internal/model"
)

const htmlStyle = "font-family:system-ui,Segoe UI,Roboto,Arial;line-height:1.5"

// CustomerMessage формирует письмо-подтверждение для покупателя.
// Заказ должен быть уже сохранён: в письмо входит его идентификатор.
func CustomerMessage(o *model.Order) (subject, html string) {
	var b strings.Builder

	fmt.Fprintf(&b, `<div style=%q>`, htmlStyle)
	fmt.Fprintf(&b, "<h2>Thank you for your order, %s!</h2>", o.FullName)
	b.WriteString("<p>We’ve received your order from <strong>Sentir</strong>. Here’s your summary:</p>")
	b.WriteString("<p>")
	fmt.Fprintf(&b, "<strong>Product:</strong> %s (%s)<br/>", o.Product, o.ProductCode)
	fmt.Fprintf(&b, "<strong>Quantity:</strong> %d<br/>", o.Quantity)
	fmt.Fprintf(&b, "<strong>Shipping:</strong> %s ($%d CAD)<br/>", o.ShippingOption, o.ShippingCost)
	fmt.Fprintf(&b, "<strong>Item Subtotal:</strong> $%d CAD<br/>", o.ItemSubtotal)
	fmt.Fprintf(&b, "<strong>Order Total:</strong> $%d CAD<br/>", o.OrderTotal)
	fmt.Fprintf(&b, "<strong>Payment:</strong> %s<br/>", o.PaymentMethod.Label())
	fmt.Fprintf(&b, "<strong>Order ID:</strong> %s", o.ID)
	b.WriteString("</p>")
	b.WriteString("<h3>Shipping to</h3>")
	b.WriteString("<p>")
	writeAddress(&b, o)
	b.WriteString("</p>")
	writeRequests(&b, o.Requests)
	b.WriteString("<p>Reply to this email if you need any changes. — Sentir</p>")
	b.WriteString("</div>")

	return "Thanks for your order — Sentir", b.String()
}

// AdminMessage формирует уведомление о новом заказе для администраторов.
func AdminMessage(o *model.Order) (subject, html string) {
	var b strings.Builder

	fmt.Fprintf(&b, `<div style=%q>`, htmlStyle)
	b.WriteString("<h2>New Sentir order</h2>")
	b.WriteString("<p>")
	fmt.Fprintf(&b, "<strong>Name:</strong> %s<br/>", o.FullName)
	fmt.Fprintf(&b, "<strong>Email:</strong> %s<br/>", o.Email)
	fmt.Fprintf(&b, "<strong>Phone:</strong> %s<br/>", optional(o.Phone))
	fmt.Fprintf(&b, "<strong>Preferred contact:</strong> %s", optional(o.PreferredContact))
	b.WriteString("</p>")
	b.WriteString("<h3>Order</h3>")
	b.WriteString("<p>")
	fmt.Fprintf(&b, "<strong>Product:</strong> %s (%s)<br/>", o.Product, o.ProductCode)
	fmt.Fprintf(&b, "<strong>Qty:</strong> %d<br/>", o.Quantity)
	fmt.Fprintf(&b, "<strong>Shipping:</strong> %s ($%d)<br/>", o.ShippingOption, o.ShippingCost)
	fmt.Fprintf(&b, "<strong>Item Subtotal:</strong> $%d<br/>", o.ItemSubtotal)
	fmt.Fprintf(&b, "<strong>TOTAL:</strong> $%d<br/>", o.OrderTotal)
	fmt.Fprintf(&b, "<strong>Payment:</strong> %s", o.PaymentMethod)
	b.WriteString("</p>")
	b.WriteString("<h3>Ship to</h3>")
	b.WriteString("<p>")
	writeAddress(&b, o)
	b.WriteString("</p>")
	writeRequests(&b, o.Requests)
	fmt.Fprintf(&b, "<p><strong>Order ID:</strong> %s</p>", o.ID)
	b.WriteString("</div>")

	return fmt.Sprintf("New order — %s — $%d CAD", o.FullName, o.OrderTotal), b.String()
}

// TestMessage формирует проверочное письмо для диагностики интеграции.
func TestMessage() (subject, html string) {
	return "Sentir test email",
		"<div style='font-family:system-ui'>Hello from Sentir — if you received this, email is wired.</div>"
}

func writeAddress(b *strings.Builder, o *model.Order) {
	b.WriteString(o.Addr1)
	if o.Addr2 != nil {
		b.WriteString("<br/>" + *o.Addr2)
	}
	fmt.Fprintf(b, "<br/>%s, %s %s<br/>%s", o.City, o.Province, o.Postal, o.Country)
}

// writeRequests добавляет блок пожеланий покупателя. Текст пользовательский,
// поэтому угловые скобки экранируются, чтобы не ломать разметку письма.
func writeRequests(b *strings.Builder, requests *string) {
	if requests == nil {
		return
	}
	fmt.Fprintf(b, "<h3>Notes</h3><p>%s</p>", EscapeNotes(*requests))
}

// EscapeNotes экранирует открывающие угловые скобки в свободном тексте.
func EscapeNotes(s string) string {
	return strings.ReplaceAll(s, "<", "&lt;")
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
