//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-deploy/internal/adapters"
	"github.com/trebuchet-org/treb-deploy/internal/config"
	"github.com/trebuchet-org/treb-deploy/internal/logging"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewReceiptWaiter,
		usecase.NewVerificationNotifier,
		usecase.NewDeployContract,
		usecase.NewRunPlan,
		usecase.NewPredictAddress,
		usecase.NewComputeCreateAddress,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewListNetworks,
		usecase.NewVerifyDeployment,

		// App
		NewApp,
	)
	return nil, nil
}
