// email.go
package email

import (
	"fmt"
	"strconv"
	"strings"

	"ethioshop-backend/internal/dto"

	"gopkg.in/gomail.v2"
)

// Sender manda los correos transaccionales de la tienda por SMTP.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSender(host, port, user, pass string) *Sender {
	p, err := strconv.Atoi(port)
	if err != nil {
		p = 587
	}
	return &Sender{
		dialer: gomail.NewDialer(host, p, user, pass),
		from:   user,
	}
}

// SendOrderConfirmation arma el HTML de confirmación con los items populados
// y lo manda al comprador. El error sube al caller tal cual.
func (s *Sender) SendOrderConfirmation(to string, order *dto.OrderView) error {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "<li>%s x%d - $%.2f</li>", item.Name, item.Quantity, item.Price)
	}

	body := fmt.Sprintf(`
		<h1>Order Confirmation</h1>
		<p>Thank you for your order!</p>
		<p><strong>Order ID:</strong> %s</p>
		<ul>%s</ul>
		<p><strong>Total:</strong> $%.2f</p>
		<p>We will notify you when your order ships.</p>`,
		order.ID, items.String(), order.Total)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation - #%s", order.ID))
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
