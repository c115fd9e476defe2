package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"curtainraiser/config"
	"curtainraiser/infras/kafka"
	"curtainraiser/infras/kafka/mocks"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "gallery", Value: map[string]string{"action": "created"}}

	out, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("gallery"), out.Key)
	assert.JSONEq(t, `{"action":"created"}`, string(out.Value))

	_, err = (&kafka.Message{Value: make(chan int)}).ToKafkaMessage()
	assert.Error(t, err)
}

func TestPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockMessageWriter(ctrl)
	publisher := kafka.NewWithWriter(writer, "curtainraiser.resources")

	writer.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafkaGo.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, "services", string(msgs[0].Key))

			var body map[string]string
			require.NoError(t, json.Unmarshal(msgs[0].Value, &body))
			assert.Equal(t, "deleted", body["action"])

			return nil
		})

	err := publisher.Publish(context.Background(), kafka.Message{Key: "services", Value: map[string]string{"action": "deleted"}})
	assert.NoError(t, err)

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker unreachable"))
	err = publisher.Publish(context.Background(), kafka.Message{Key: "services", Value: "x"})
	assert.Error(t, err)

	writer.EXPECT().Close().Return(nil)
	assert.NoError(t, publisher.Close())
}

func TestNew_DisabledIsNoop(t *testing.T) {
	publisher := kafka.New(&config.Config{})

	assert.NoError(t, publisher.Publish(context.Background(), kafka.Message{Key: "k", Value: "v"}))
	assert.NoError(t, publisher.Close())
}

func TestProvide_CleanupClosesPublisher(t *testing.T) {
	publisher, cleanup := kafka.Provide(&config.Config{})

	assert.NotNil(t, publisher)
	assert.NotPanics(t, cleanup)
}
