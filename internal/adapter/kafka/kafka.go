package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/drago-decor/internal/core/domain"
	"github.com/niksmo/drago-decor/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts = errors.New("too few options")
)

type ProducerOpt func(*producerOpts) error

type topicEncoder struct {
	topic   string
	encoder Encoder
}

type producerOpts struct {
	cl       ProducerClient
	orders   topicEncoder
	contacts topicEncoder
}

// ProducerClientOpt builds and pings a client. Extra options, such as
// [kgo.DialTLSConfig], are applied after the defaults.
func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, extra ...kgo.Opt,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kgoOpts := append([]kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		}, extra...)
		cl, err := kgo.NewClient(kgoOpts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerWithClientOpt uses an already built client.
func ProducerWithClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func OrdersTopicOpt(topic string, encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		te, err := newTopicEncoder(topic, encoder)
		if err != nil {
			return err
		}
		opts.orders = te
		return nil
	}
}

func ContactMessagesTopicOpt(topic string, encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		te, err := newTopicEncoder(topic, encoder)
		if err != nil {
			return err
		}
		opts.contacts = te
		return nil
	}
}

func newTopicEncoder(topic string, encoder Encoder) (topicEncoder, error) {
	if topic == "" {
		return topicEncoder{}, errors.New("topic is empty string")
	}
	if encoder == nil {
		return topicEncoder{}, errors.New("encoder is nil")
	}
	return topicEncoder{topic, encoder}, nil
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderToSchemaV1(id string, v domain.Order) (s schema.OrderPlacedV1) {
	s.OrderID = id
	s.UserEmail = v.UserEmail
	s.Status = string(v.Status)
	s.Total = v.Total

	s.Items = make([]schema.OrderItemV1, len(v.Items))
	for i, item := range v.Items {
		s.Items[i].ProductID = item.ProductID
		s.Items[i].VariantHex = item.VariantHex
		s.Items[i].Quantity = item.Quantity
		s.Items[i].UnitPrice = item.UnitPrice
	}
	return
}

func contactToSchemaV1(
	id string, v domain.ContactMessage,
) (s schema.ContactReceivedV1) {
	s.MessageID = id
	s.Name = v.Name
	s.Email = v.Email
	s.Message = v.Message
	return
}
