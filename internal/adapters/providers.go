package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/abi"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/factory"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/interactive"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/plan"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/repository/contracts"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/senders"
	"github.com/trebuchet-org/treb-deploy/internal/adapters/verification"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// RepositorySet provides file-based repositories
var RepositorySet = wire.NewSet(
	deployments.NewFileRepository,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),

	contracts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.Repository)),

	plan.NewLoader,
	wire.Bind(new(usecase.PlanLoader), new(*plan.Loader)),
)

// BlockchainSet provides RPC-backed implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewClientAdapter,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.ClientAdapter)),
	wire.Bind(new(usecase.ChainProber), new(*blockchain.ClientAdapter)),

	factory.NewCreateXAdapter,
	wire.Bind(new(usecase.FactoryClient), new(*factory.CreateXAdapter)),
)

// EncodingSet provides ABI encoding
var EncodingSet = wire.NewSet(
	abi.NewArgumentEncoder,
	wire.Bind(new(usecase.ConstructorEncoder), new(*abi.ArgumentEncoder)),
)

// VerificationSet provides source verification through forge
var VerificationSet = wire.NewSet(
	verification.NewForgeVerifier,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.ForgeVerifier)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewNetworkConfirmer,
	wire.Bind(new(usecase.NetworkConfirmer), new(*interactive.NetworkConfirmer)),
)

// SendersSet provides credential providers
var SendersSet = wire.NewSet(
	senders.NewService,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	BlockchainSet,
	EncodingSet,
	VerificationSet,
	InteractiveSet,
	SendersSet,
)
