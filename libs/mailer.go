package libs

import (
	"context"
	"fmt"
	"html"
	"strings"

	"electronics-store/config"
	"electronics-store/models"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
	}
}

// OrderPlaced sends the confirmation email. Users without an email address are skipped.
func (m *Mailer) OrderPlaced(_ context.Context, ident models.Identity, order *models.Order) error {
	if ident.Email == "" {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", ident.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%d - Electronics Store", order.ID))
	msg.SetBody("text/html", OrderConfirmationBody(order))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func OrderConfirmationBody(order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(item.ProductName), item.Quantity, item.Price.StringFixed(2), item.Subtotal().StringFixed(2))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h2>Thank you for your order, %s!</h2>
    <p><strong>Order Number:</strong> %d</p>
    <table cellpadding="6" border="1" style="border-collapse: collapse;">
        <tr><th>Product</th><th>Qty</th><th>Price</th><th>Subtotal</th></tr>
%s    </table>
    <p><strong>Total Amount:</strong> %s</p>
    <p><strong>Payment:</strong> %s</p>
    <p><strong>Ship to:</strong> %s, %s</p>
    <p>Your order has been received and is pending review. We'll notify you when it ships.</p>
</body>
</html>`,
		html.EscapeString(order.FullName), order.ID, rows.String(), order.TotalAmount.StringFixed(2),
		html.EscapeString(string(order.PaymentMethod)), html.EscapeString(order.Address), html.EscapeString(order.City))
}
