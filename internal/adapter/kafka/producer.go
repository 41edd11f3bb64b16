package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/drago-decor/internal/core/domain"
	"github.com/niksmo/drago-decor/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.EventsProducer = (*EventsProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// An EventsProducer publishes storefront events: placed orders and
// received contact messages, each to its own topic.
type EventsProducer struct {
	producer producer
	orders   topicEncoder
	contacts topicEncoder
	opPrefix string
}

func NewEventsProducer(opts ...ProducerOpt) (EventsProducer, error) {
	const op = "NewEventsProducer"

	if len(opts) != 3 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			if options.cl != nil {
				options.cl.Close()
			}
			return EventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "EventsProducer"
	return EventsProducer{
		producer: producer{opPrefix: opPrefix, cl: options.cl},
		orders:   options.orders,
		contacts: options.contacts,
		opPrefix: opPrefix,
	}, nil
}

func (p EventsProducer) Close() {
	p.producer.close()
}

func (p EventsProducer) ProduceOrderPlaced(
	ctx context.Context, id string, o domain.Order,
) error {
	const op = "ProduceOrderPlaced"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	b, err := p.orders.encoder.Encode(orderToSchemaV1(id, o))
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := &kgo.Record{Topic: p.orders.topic, Key: []byte(id), Value: b}
	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p EventsProducer) ProduceContactReceived(
	ctx context.Context, id string, m domain.ContactMessage,
) error {
	const op = "ProduceContactReceived"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	b, err := p.contacts.encoder.Encode(contactToSchemaV1(id, m))
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := &kgo.Record{Topic: p.contacts.topic, Key: []byte(id), Value: b}
	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}
