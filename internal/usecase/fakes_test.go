package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/bindings"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// Anvil's first default account
const testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// CreateX CREATE3 proxy init code hash
var create3ProxyHash = common.HexToHash("0x21c35dbe1b344a2488cf3321d6ce542f8e9f305544ff09e4993a62319a497c1f")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCredential(t *testing.T) *domain.Credential {
	t.Helper()
	key, err := crypto.HexToECDSA(testPrivateKey)
	require.NoError(t, err)
	return &domain.Credential{Address: crypto.PubkeyToAddress(key.PublicKey), PrivateKey: key}
}

// staticCredentials hands out one credential and counts unlocks
type staticCredentials struct {
	cred  *domain.Credential
	calls int
}

func (s *staticCredentials) Credential(context.Context) (*domain.Credential, error) {
	s.calls++
	return s.cred, nil
}

func testConfig(chainID uint64, guard domain.SaltGuard) *config.RuntimeConfig {
	network := &config.Network{
		ChainID:   chainID,
		Name:      fmt.Sprintf("chain-%d", chainID),
		RPCURL:    "http://localhost:8545",
		Verifiers: []string{config.VerifierEtherscan},
	}
	registry, err := config.NewNetworkRegistry([]*config.Network{network})
	if err != nil {
		panic(err)
	}
	return &config.RuntimeConfig{
		Networks:          registry,
		Network:           network,
		Factory:           config.FactoryConfig{Address: config.DefaultFactoryAddress, SaltGuard: guard},
		ReceiptRetryDelay: time.Millisecond,
		VerifyTimeout:     time.Second,
	}
}

// fakeChain is an in-memory chain shared with fakeFactory
type fakeChain struct {
	mu       sync.Mutex
	chainID  uint64
	code     map[common.Address][]byte
	nonces   map[common.Address]uint64
	receipts map[common.Hash]*types.Receipt
	// receiptErrs are returned, in order, before receipts are served
	receiptErrs  []error
	receiptCalls int
	calls        int
}

func newFakeChain(chainID uint64) *fakeChain {
	return &fakeChain{
		chainID:  chainID,
		code:     make(map[common.Address][]byte),
		nonces:   make(map[common.Address]uint64),
		receipts: make(map[common.Hash]*types.Receipt),
	}
}

func (c *fakeChain) ChainID(context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.chainID, nil
}

func (c *fakeChain) CodeAt(_ context.Context, address common.Address) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.code[address], nil
}

func (c *fakeChain) NonceAt(_ context.Context, address common.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.nonces[address], nil
}

func (c *fakeChain) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.receiptCalls++
	if len(c.receiptErrs) > 0 {
		err := c.receiptErrs[0]
		c.receiptErrs = c.receiptErrs[1:]
		return nil, err
	}
	r, ok := c.receipts[txHash]
	if !ok {
		return nil, domain.NewTransientChainError("eth_getTransactionReceipt", ethereum.NotFound)
	}
	return r, nil
}

// fakeFactory mimics CreateX: deployments are always sender guarded
type fakeFactory struct {
	chain   *fakeChain
	address common.Address
	createx *bindings.CreateX

	sent      []common.Hash
	simulated int
	// omitEvent drops the ContractCreation log from receipts
	omitEvent bool
	// revert marks receipts as failed
	revert bool
	// eventAddress replaces the address reported by the creation event
	eventAddress *common.Address
}

func newFakeFactory(chain *fakeChain) *fakeFactory {
	return &fakeFactory{
		chain:   chain,
		address: config.DefaultFactoryAddress,
		createx: bindings.NewCreateX(),
	}
}

func (f *fakeFactory) create3Address(salt [32]byte) common.Address {
	proxy := crypto.CreateAddress2(f.address, salt, create3ProxyHash.Bytes())
	return crypto.CreateAddress(proxy, 1)
}

func (f *fakeFactory) Address() common.Address { return f.address }

func (f *fakeFactory) ComputeCreate3Address(_ context.Context, salt [32]byte) (common.Address, error) {
	f.chain.mu.Lock()
	f.chain.calls++
	f.chain.mu.Unlock()
	return f.create3Address(salt), nil
}

func (f *fakeFactory) ComputeCreateAddress(_ context.Context, deployer common.Address, nonce uint64) (common.Address, error) {
	return crypto.CreateAddress(deployer, nonce), nil
}

func (f *fakeFactory) SimulateDeployCreate3(_ context.Context, from common.Address, salt domain.Salt, _ []byte) (common.Address, error) {
	f.simulated++
	return f.create3Address(domain.GuardedSalt(from, salt)), nil
}

func (f *fakeFactory) DeployCreate3(_ context.Context, cred *domain.Credential, salt domain.Salt, initCode []byte) (common.Hash, error) {
	guarded := domain.GuardedSalt(cred.Address, salt)
	deployed := f.create3Address(guarded)

	f.chain.mu.Lock()
	defer f.chain.mu.Unlock()
	nonce := f.chain.nonces[cred.Address]
	f.chain.nonces[cred.Address] = nonce + 1

	txHash := crypto.Keccak256Hash(cred.Address.Bytes(), new(big.Int).SetUint64(nonce).Bytes(), initCode)
	f.sent = append(f.sent, txHash)

	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: txHash}
	if f.revert {
		receipt.Status = types.ReceiptStatusFailed
	} else {
		f.chain.code[deployed] = []byte{0x60, 0x80}
	}
	if !f.omitEvent && !f.revert {
		if f.eventAddress != nil {
			deployed = *f.eventAddress
		}
		eventID, _ := f.createx.GetEventID(bindings.CreateXContractCreationEventName)
		receipt.Logs = []*types.Log{{
			Address: f.address,
			Topics:  []common.Hash{eventID, common.BytesToHash(deployed.Bytes()), guarded},
			TxHash:  txHash,
		}}
	}
	f.chain.receipts[txHash] = receipt
	return txHash, nil
}

func (f *fakeFactory) CreatedContract(log *types.Log) (common.Address, bool) {
	return f.createx.UnpackCreatedContract(log)
}

// memoryRepo is an in-memory DeploymentRepository
type memoryRepo struct {
	mu      sync.Mutex
	records map[string]*models.Deployment
	creates int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[string]*models.Deployment)}
}

func repoKey(chainID uint64, name string) string {
	return fmt.Sprintf("%d/%s", chainID, name)
}

func (r *memoryRepo) GetDeployment(_ context.Context, chainID uint64, name string) (*models.Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.records[repoKey(chainID, name)]
	if !ok {
		return nil, fmt.Errorf("deployment %s: %w", name, domain.ErrNotFound)
	}
	return d, nil
}

func (r *memoryRepo) CreateDeploymentIfAbsent(_ context.Context, d *models.Deployment) (*models.Deployment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := repoKey(d.ChainID, d.Name)
	if existing, ok := r.records[key]; ok {
		return existing, false, nil
	}
	r.records[key] = d
	r.creates++
	return d, true, nil
}

func (r *memoryRepo) ListDeployments(_ context.Context, chainID uint64) ([]*models.Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Deployment
	for _, d := range r.records {
		if d.ChainID == chainID {
			out = append(out, d)
		}
	}
	return out, nil
}

// mapArtifacts serves artifacts keyed by contract name
type mapArtifacts map[string]*models.Artifact

func (m mapArtifacts) GetArtifact(_ context.Context, ref string) (*models.Artifact, error) {
	a, ok := m[ref]
	if !ok {
		return nil, fmt.Errorf("artifact %s: %w", ref, domain.ErrNotFound)
	}
	return a, nil
}

// addressArgsEncoder left-pads each argument as an address word
type addressArgsEncoder struct{}

func (addressArgsEncoder) EncodeConstructorArgs(_ json.RawMessage, args []string) ([]byte, error) {
	var out []byte
	for _, a := range args {
		if !common.IsHexAddress(a) {
			return nil, fmt.Errorf("not an address: %s", a)
		}
		out = append(out, common.LeftPadBytes(common.HexToAddress(a).Bytes(), 32)...)
	}
	return out, nil
}

// fakeVerifier records verification requests
type fakeVerifier struct {
	err      error
	requests []usecase.VerificationRequest
}

func (v *fakeVerifier) Verify(_ context.Context, req usecase.VerificationRequest) error {
	v.requests = append(v.requests, req)
	return v.err
}

// recordingSink collects progress events
type recordingSink struct {
	events []usecase.ProgressEvent
	errors []string
}

func (s *recordingSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event)
}

func (s *recordingSink) Info(string) {}

func (s *recordingSink) Error(msg string) {
	s.errors = append(s.errors, msg)
}

const bookSource = "contracts/libraries/Book.sol"

func testArtifacts() mapArtifacts {
	placeholder := domain.LibraryPlaceholder(bookSource, "Book")
	return mapArtifacts{
		"Counter": {
			SourceName:   "src/Counter.sol",
			ContractName: "Counter",
			ABI:          json.RawMessage(`[]`),
			Bytecode:     models.BytecodeObject{Object: "0x6080604052348015600f57600080fd5b50"},
		},
		"Book": {
			SourceName:   bookSource,
			ContractName: "Book",
			ABI:          json.RawMessage(`[]`),
			Bytecode:     models.BytecodeObject{Object: "0x60566050600b82828239"},
		},
		"BookManager": {
			SourceName:   "contracts/BookManager.sol",
			ContractName: "BookManager",
			ABI:          json.RawMessage(`[{"type":"constructor","inputs":[{"name":"owner","type":"address"}]}]`),
			Bytecode: models.BytecodeObject{
				Object: "0x6080" + placeholder + "6040",
				LinkReferences: models.LinkReferences{
					bookSource: {"Book": {{Start: 2, Length: 20}}},
				},
			},
		},
		"Controller": {
			SourceName:   "contracts/Controller.sol",
			ContractName: "Controller",
			ABI:          json.RawMessage(`[{"type":"constructor","inputs":[{"name":"manager","type":"address"}]}]`),
			Bytecode:     models.BytecodeObject{Object: "0x60806040"},
		},
	}
}

// harness wires DeployContract to in-memory fakes
type harness struct {
	cfg      *config.RuntimeConfig
	chain    *fakeChain
	factory  *fakeFactory
	repo     *memoryRepo
	verifier *fakeVerifier
	sink     *recordingSink
	deploy   *usecase.DeployContract
	creds    *staticCredentials
}

func newHarness(t *testing.T, chainID uint64, guard domain.SaltGuard) *harness {
	t.Helper()
	h := &harness{
		cfg:      testConfig(chainID, guard),
		chain:    newFakeChain(chainID),
		repo:     newMemoryRepo(),
		verifier: &fakeVerifier{},
		sink:     &recordingSink{},
		creds:    &staticCredentials{cred: testCredential(t)},
	}
	h.factory = newFakeFactory(h.chain)
	log := discardLogger()
	waiter := usecase.NewReceiptWaiter(h.cfg, h.chain, log)
	notifier := usecase.NewVerificationNotifier(h.cfg, h.verifier, h.sink, log)
	h.deploy = usecase.NewDeployContract(
		h.cfg, h.chain, h.factory, h.repo, testArtifacts(), addressArgsEncoder{},
		waiter, notifier, nil, h.sink, log,
	)
	return h
}
