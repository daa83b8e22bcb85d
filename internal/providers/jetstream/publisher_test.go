package jetstream

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-protocol/noah-client/internal/adapter"
	"github.com/noah-protocol/noah-client/internal/domain"
	"github.com/noah-protocol/noah-client/internal/logger"
	"github.com/noah-protocol/noah-client/internal/mocks"
	"github.com/noah-protocol/noah-client/internal/orchestrator"
)

var testConfig = Config{
	URL:            "nats://127.0.0.1:4222",
	StreamName:     "NOAH_PROGRESS",
	MaxReconnects:  3,
	ReconnectWait:  time.Second,
	ConnectionName: "noah-test",
}

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testMocks struct {
	ctrl   *gomock.Controller
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func setupTest(t *testing.T) *testMocks {
	ctrl := gomock.NewController(t)
	return &testMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

func tearDownTest(tm *testMocks) {
	tm.ctrl.Finish()
}

func TestNewPublisher_EnsuresStream(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.conn, tm.js, nil)
	tm.js.EXPECT().EnsureStream(gomock.Any(), "NOAH_PROGRESS", []string{"noah.progress.>"}).Return(nil)
	tm.conn.EXPECT().Close()

	pub, err := NewPublisher(context.Background(), testConfig, tm.natsJS, adapter.NewJSON())
	require.NoError(t, err)
	pub.Close()
}

func TestNewPublisher_Errors(t *testing.T) {
	t.Run("connect", func(t *testing.T) {
		tm := setupTest(t)
		defer tearDownTest(tm)

		tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(nil, nil, errors.New("no servers available"))

		_, err := NewPublisher(context.Background(), testConfig, tm.natsJS, adapter.NewJSON())
		assert.ErrorContains(t, err, "no servers available")
	})

	t.Run("stream", func(t *testing.T) {
		tm := setupTest(t)
		defer tearDownTest(tm)

		tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.conn, tm.js, nil)
		tm.js.EXPECT().EnsureStream(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("jetstream not enabled"))
		tm.conn.EXPECT().Close()

		_, err := NewPublisher(context.Background(), testConfig, tm.natsJS, adapter.NewJSON())
		assert.ErrorContains(t, err, "jetstream not enabled")
	})
}

func TestPublishProgress(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	tm.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(tm.conn, tm.js, nil)
	tm.js.EXPECT().EnsureStream(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	pub, err := NewPublisher(context.Background(), testConfig, tm.natsJS, adapter.NewJSON())
	require.NoError(t, err)

	token := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	progress := orchestrator.Progress{
		RunID: "01J0000000000000000000000",
		Owner: common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Chain: domain.ChainAnvil,
		Mode:  orchestrator.ModeSequential,
		Step:  orchestrator.StepApproval,
		Token: &token,
		State: orchestrator.StateSigning,
	}

	tm.js.EXPECT().
		Publish(gomock.Any(), "noah.progress.31337.0x1111111111111111111111111111111111111111", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, "approval", decoded["step"])
			assert.Equal(t, "signing", decoded["state"])
			assert.Equal(t, "sequential", decoded["mode"])
			return &jetstream.PubAck{Stream: "NOAH_PROGRESS", Sequence: 1}, nil
		})
	require.NoError(t, pub.PublishProgress(context.Background(), progress))

	tm.js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
	assert.ErrorContains(t, pub.PublishProgress(context.Background(), progress), "failed to publish progress")
}
