package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/logger"
	"github.com/feral-file/ff-model-indexer/internal/messaging"
	"github.com/feral-file/ff-model-indexer/internal/mocks"
	natspub "github.com/feral-file/ff-model-indexer/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testPublisherMocks struct {
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

var testConfig = natspub.Config{
	URL:            "nats://localhost:4222",
	StreamName:     "MODEL_EVENTS",
	MaxReconnects:  3,
	ReconnectWait:  time.Second,
	ConnectionName: "test",
}

func newPublisher(t *testing.T) (messaging.Publisher, *testPublisherMocks) {
	ctrl := gomock.NewController(t)
	tm := &testPublisherMocks{
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}

	tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.conn, tm.js, nil)
	tm.js.EXPECT().CreateOrUpdateStream(gomock.Any(), jetstream.StreamConfig{
		Name:     "MODEL_EVENTS",
		Subjects: []string{"models.>"},
		Storage:  jetstream.FileStorage,
	}).Return(nil, nil)

	pub, err := natspub.NewPublisher(context.Background(), testConfig, tm.natsJS)
	require.NoError(t, err)
	return pub, tm
}

func TestPublishEvent(t *testing.T) {
	pub, tm := newPublisher(t)

	event := &domain.ReconciledEvent{
		EventName: domain.EventLicensePurchased,
		EventMeta: domain.EventMeta{
			Chain:       domain.ChainEthereumMainnet,
			Stream:      domain.StreamLicenses,
			BlockNumber: 120,
			LogIndex:    4,
			TxHash:      "0xabc",
		},
		Payload: &domain.LicensePurchased{LicenseID: 7, ModelID: 3},
	}

	tm.js.EXPECT().
		Publish(gomock.Any(), "models.eip155_1.licenses.LicensePurchased", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
			var decoded map[string]any
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, "LicensePurchased", decoded["event_name"])
			assert.Equal(t, float64(120), decoded["block_number"])
			assert.NotEmpty(t, decoded["id"])
			return &jetstream.PubAck{Stream: "MODEL_EVENTS", Sequence: 1}, nil
		})

	require.NoError(t, pub.PublishEvent(context.Background(), event))
	assert.NotEmpty(t, event.ID, "an id is assigned before publishing")
}

func TestPublishEvent_KeepsExistingID(t *testing.T) {
	pub, tm := newPublisher(t)

	event := &domain.ReconciledEvent{
		ID:        "01HZX3J9Q0000000000000000",
		EventName: domain.EventModelListed,
		EventMeta: domain.EventMeta{Chain: domain.ChainBaseSepolia, Stream: domain.StreamModels},
		Payload:   &domain.ModelListed{},
	}

	tm.js.EXPECT().
		Publish(gomock.Any(), "models.eip155_84532.models.ModelListed", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("no responders"))

	err := pub.PublishEvent(context.Background(), event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no responders")
	assert.Equal(t, "01HZX3J9Q0000000000000000", event.ID)
}

func TestNewPublisher_StreamFailureClosesConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	natsJS := mocks.NewMockNatsJetStream(ctrl)
	conn := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)

	natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(conn, js, nil)
	js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).Return(nil, errors.New("insufficient resources"))
	conn.EXPECT().Close()

	pub, err := natspub.NewPublisher(context.Background(), testConfig, natsJS)
	assert.Error(t, err)
	assert.Nil(t, pub)
}

func TestClose(t *testing.T) {
	t.Run("drains", func(t *testing.T) {
		pub, tm := newPublisher(t)
		tm.conn.EXPECT().Drain().Return(nil)
		pub.Close()
	})

	t.Run("closes when drain fails", func(t *testing.T) {
		pub, tm := newPublisher(t)
		tm.conn.EXPECT().Drain().Return(errors.New("connection closed"))
		tm.conn.EXPECT().Close()
		pub.Close()
	})
}
