package kafka

import kafkago "github.com/segmentio/kafka-go"

type MessageWriter = messageWriter

func NewOrderEventPublisherWithWriter(w MessageWriter) *OrderEventPublisher {
	return newOrderEventPublisher(w)
}

var _ MessageWriter = (*kafkago.Writer)(nil)
