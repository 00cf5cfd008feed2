package factory

import (
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/bindings"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
)

func TestCreatedContract(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.RuntimeConfig{Factory: config.FactoryConfig{Address: config.DefaultFactoryAddress}}
	f := NewCreateXAdapter(cfg, blockchain.NewClientAdapter(cfg, log), log)

	createx := bindings.NewCreateX()
	deployed := common.HexToAddress("0x1111111111111111111111111111111111111111")
	salt := common.HexToHash("0xabcd")

	withSalt, err := createx.GetEventID(bindings.CreateXContractCreationEventName)
	require.NoError(t, err)
	withoutSalt, err := createx.GetEventID(bindings.CreateXContractCreation0EventName)
	require.NoError(t, err)
	proxy, err := createx.GetEventID(bindings.CreateXCreate3ProxyContractCreationEventName)
	require.NoError(t, err)

	tests := []struct {
		name   string
		log    *types.Log
		want   common.Address
		wantOK bool
	}{
		{
			name:   "salted creation",
			log:    &types.Log{Topics: []common.Hash{withSalt, common.BytesToHash(deployed.Bytes()), salt}},
			want:   deployed,
			wantOK: true,
		},
		{
			name:   "unsalted creation",
			log:    &types.Log{Topics: []common.Hash{withoutSalt, common.BytesToHash(deployed.Bytes())}},
			want:   deployed,
			wantOK: true,
		},
		{
			name: "proxy creation is ignored",
			log:  &types.Log{Topics: []common.Hash{proxy, common.BytesToHash(deployed.Bytes()), salt}},
		},
		{
			name: "unrelated log",
			log:  &types.Log{Topics: []common.Hash{common.HexToHash("0x01")}},
		},
		{
			name: "anonymous log",
			log:  &types.Log{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := f.CreatedContract(tt.log)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, config.DefaultFactoryAddress, f.Address())
}
