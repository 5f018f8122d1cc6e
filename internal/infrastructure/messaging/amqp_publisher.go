// Package messaging publica avisos de stock en RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/sauna-pos/internal/application/ports"
)

var (
	_ ports.StockAlertPublisher = (*AMQPPublisher)(nil)
	_ ports.StockAlertPublisher = NopPublisher{}
)

const publishTimeout = 5 * time.Second

var errPublisherClosed = errors.New("publicador AMQP cerrado")

// channel es la parte de *amqp.Channel que usa el publicador.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// session es una conexión con su canal abierto.
type session struct {
	conn io.Closer
	ch   channel
}

func (s *session) close() error {
	_ = s.ch.Close()
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func dial(url string) func() (*session, error) {
	return func() (*session, error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, fmt.Errorf("dial AMQP: %w", err)
		}
		ch, err := conn.Channel()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("open channel: %w", err)
		}
		return &session{conn: conn, ch: ch}, nil
	}
}

// AMQPPublisher publica StockAlert como JSON en un exchange direct, con la cola como routing key.
// Si el broker cierra el canal, el siguiente Publish vuelve a conectar y a declarar la topología.
type AMQPPublisher struct {
	connect  func() (*session, error)
	mu       sync.Mutex // amqp.Channel no es seguro para uso concurrente
	sess     *session
	closed   bool
	exchange string
	queue    string
}

// NewAMQPPublisher conecta, declara exchange y cola durables y los enlaza.
func NewAMQPPublisher(url, exchange, queue string) (*AMQPPublisher, error) {
	return newPublisher(dial(url), exchange, queue)
}

func newPublisher(connect func() (*session, error), exchange, queue string) (*AMQPPublisher, error) {
	p := &AMQPPublisher{connect: connect, exchange: exchange, queue: queue}
	if err := p.reconnect(); err != nil {
		return nil, err
	}
	return p, nil
}

// reconnect reemplaza la sesión; se llama con mu tomado o desde el constructor.
func (p *AMQPPublisher) reconnect() error {
	if p.sess != nil {
		_ = p.sess.close()
		p.sess = nil
	}
	sess, err := p.connect()
	if err != nil {
		return err
	}
	if err := p.setup(sess.ch); err != nil {
		_ = sess.close()
		return fmt.Errorf("setup exchange and queue: %w", err)
	}
	p.sess = sess
	return nil
}

func (p *AMQPPublisher) setup(ch channel) error {
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(p.queue, p.queue, p.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Publish envía el aviso como mensaje persistente, reconectando si el canal quedó cerrado.
func (p *AMQPPublisher) Publish(ctx context.Context, alert ports.StockAlert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal stock alert: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errPublisherClosed
	}
	if p.sess == nil || p.sess.ch.IsClosed() {
		if err := p.reconnect(); err != nil {
			return fmt.Errorf("reconnect AMQP: %w", err)
		}
	}
	err = p.sess.ch.PublishWithContext(ctx, p.exchange, p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         "stock." + alert.Status,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish stock alert: %w", err)
	}
	return nil
}

// Close cierra canal y conexión.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.sess == nil {
		return nil
	}
	err := p.sess.close()
	p.sess = nil
	return err
}

// NopPublisher descarta los avisos (sin AMQP configurado).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, ports.StockAlert) error { return nil }
