// Package mail envía las notificaciones transaccionales por SMTP.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"

	"github.com/suministra/suministra-api/internal/application/orders"
	"github.com/suministra/suministra-api/internal/domain/entity"
)

var _ orders.Mailer = (*GomailSender)(nil)

// Config parámetros SMTP. Con Host vacío el sender queda deshabilitado y
// solo deja un log por correo (útil en desarrollo y tests).
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// GomailSender implementa orders.Mailer sobre gomail/SMTP.
type GomailSender struct {
	cfg Config
}

// NewGomailSender construye el sender.
func NewGomailSender(cfg Config) *GomailSender {
	return &GomailSender{cfg: cfg}
}

// SendCustomerOrderConfirmation envía al cliente la confirmación de su orden.
func (s *GomailSender) SendCustomerOrderConfirmation(_ context.Context, order *entity.CustomerOrder, customer *entity.Customer, items []*entity.CustomerOrderItem) error {
	subject := fmt.Sprintf("Confirmación de orden %s", order.Number)
	body := fmt.Sprintf(
		"Hola %s,\n\nRecibimos tu orden %s por un total de $%s (%d renglones).\n",
		customer.Name, order.Number, order.Total.StringFixed(0), len(items),
	)
	if order.Status == entity.CustomerOrderBackorder {
		body += "\nParte de la mercancía quedó en backorder; te avisaremos al reponer inventario.\n"
	}
	return s.send(customer.Email, subject, body)
}

// SendPurchaseOrderReceived avisa al fabricante que su orden fue recibida.
func (s *GomailSender) SendPurchaseOrderReceived(_ context.Context, order *entity.PurchaseOrder, manufacturer *entity.Manufacturer) error {
	if manufacturer.Email == "" {
		return nil
	}
	subject := fmt.Sprintf("Orden de compra %s recibida", order.Number)
	body := fmt.Sprintf(
		"La orden de compra %s fue recibida en bodega y el inventario quedó actualizado.\n",
		order.Number,
	)
	return s.send(manufacturer.Email, subject, body)
}

func (s *GomailSender) send(to, subject, body string) error {
	if s.cfg.Host == "" {
		log.Info().Str("to", to).Str("subject", subject).Msg("SMTP deshabilitado, correo omitido")
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", to, err)
	}
	return nil
}
