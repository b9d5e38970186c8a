package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes messages fire-and-forget through a buffered inbox.
// Write errors are logged, never returned: a lost notification must not
// block or fail the caller.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	logger  *zap.Logger
}

func NewProducer(brokers []string, topic string, buf int, logger *zap.Logger) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
		logger:  logger,
	}
}

func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				p.drain()
				return
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

// Publish enqueues a message; if the inbox is full the message is dropped so
// a slow broker never backs up into the scheduler tick.
func (p *Producer) Publish(key, value []byte) {
	select {
	case p.inbox <- kafka.Message{Key: key, Value: value, Time: time.Now()}:
	default:
		p.logger.Warn("notification inbox full, dropping message", zap.ByteString("key", key))
	}
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		p.logger.Warn("publishing notification event", zap.ByteString("key", m.Key), zap.Error(err))
	}
}

// drain flushes whatever is buffered. The inbox stays open so a straggling
// Publish during shutdown is dropped instead of panicking.
func (p *Producer) drain() {
	for {
		select {
		case m := <-p.inbox:
			p.write(m)
		default:
			_ = p.w.Close()
			return
		}
	}
}

// WaitClosed blocks until the publish loop has flushed and exited.
func (p *Producer) WaitClosed() { <-p.closeCh }
