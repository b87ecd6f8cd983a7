package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/mocks"
	"github.com/feral-file/ff-model-indexer/internal/providers/ethereum"
)

const rpcURL = "https://rpc.example"

func TestDial(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(dialer *mocks.MockEthClientDialer, eth *mocks.MockEthClient)
		wantErr string
	}{
		{
			name: "matching chain",
			setup: func(dialer *mocks.MockEthClientDialer, eth *mocks.MockEthClient) {
				dialer.EXPECT().Dial(gomock.Any(), rpcURL).Return(eth, nil)
				eth.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(11155111), nil)
			},
		},
		{
			name: "dial failure",
			setup: func(dialer *mocks.MockEthClientDialer, eth *mocks.MockEthClient) {
				dialer.EXPECT().Dial(gomock.Any(), rpcURL).Return(nil, errors.New("connection refused"))
			},
			wantErr: "connection refused",
		},
		{
			name: "endpoint serves another chain",
			setup: func(dialer *mocks.MockEthClientDialer, eth *mocks.MockEthClient) {
				dialer.EXPECT().Dial(gomock.Any(), rpcURL).Return(eth, nil)
				eth.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(1), nil)
				eth.EXPECT().Close()
			},
			wantErr: "rpc serves chain 1",
		},
		{
			name: "chain id unavailable",
			setup: func(dialer *mocks.MockEthClientDialer, eth *mocks.MockEthClient) {
				dialer.EXPECT().Dial(gomock.Any(), rpcURL).Return(eth, nil)
				eth.EXPECT().ChainID(gomock.Any()).Return(nil, errors.New("method not found"))
				eth.EXPECT().Close()
			},
			wantErr: "failed to get chain id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			dialer := mocks.NewMockEthClientDialer(ctrl)
			eth := mocks.NewMockEthClient(ctrl)
			tt.setup(dialer, eth)

			client, err := ethereum.Dial(context.Background(), dialer, rpcURL, domain.ChainEthereumSepolia)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, eth, client)
		})
	}
}
