package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// HeaderEventType - заголовок NATS-сообщения с типом события.
const HeaderEventType = "Event-Type"

// NATSPublisher публикует события в один subject NATS.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// ConnectNATS подключается к серверу NATS с автоматическим переподключением.
func ConnectNATS(url, subject string, log logrus.FieldLogger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("payout-admin"),
		nats.MaxReconnects(100),
		nats.ReconnectWait(3*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.WithError(err).WithField("url", nc.ConnectedUrl()).Warn("nats: соединение потеряно")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("url", nc.ConnectedUrl()).Info("nats: переподключение")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats: connect %s: %w", url, err)
	}
	return NewNATSPublisher(nc, subject), nil
}

// NewNATSPublisher создаёт издателя поверх готового соединения.
func NewNATSPublisher(conn *nats.Conn, subject string) *NATSPublisher {
	return &NATSPublisher{conn: conn, subject: subject}
}

func (p *NATSPublisher) Publish(_ context.Context, ev Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("nats: marshal %s: %w", ev.Type, err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Header.Set(HeaderEventType, ev.Type)
	msg.Data = raw
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("nats: publish %s: %w", ev.Type, err)
	}
	return nil
}

// Close отправляет буферизованные сообщения и закрывает соединение.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
