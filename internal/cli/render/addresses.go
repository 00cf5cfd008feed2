package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// AddressRenderer renders address predictions
type AddressRenderer struct {
	out io.Writer
}

// NewAddressRenderer creates a new address renderer
func NewAddressRenderer(out io.Writer) *AddressRenderer {
	return &AddressRenderer{out: out}
}

// RenderPrediction renders a CREATE3 address prediction
func (r *AddressRenderer) RenderPrediction(result *usecase.PredictAddressResult) error {
	field(r.out, "Address", nameStyle.Sprint(result.Address.Hex()))
	field(r.out, "Deployer", result.Deployer.Hex())
	field(r.out, "Salt", result.Salt.Hex())
	field(r.out, "Salt guard", result.Guard)
	field(r.out, "Factory salt", result.PredictionSalt.Hex())
	field(r.out, "Factory", result.Factory.Hex())
	if result.Deployed {
		fmt.Fprintln(r.out, FormatWarning("code already exists at this address"))
	}
	return nil
}

// RenderCreateAddress renders a CREATE address derivation
func (r *AddressRenderer) RenderCreateAddress(result *usecase.ComputeCreateAddressResult) error {
	field(r.out, "Address", nameStyle.Sprint(result.Address.Hex()))
	field(r.out, "Origin", result.Origin.Hex())
	nonce := fmt.Sprintf("%d", result.Nonce)
	if result.NonceOnChain {
		nonce += labelStyle.Sprint(" (current account nonce)")
	}
	field(r.out, "Nonce", nonce)
	if result.FactoryAddress != nil {
		field(r.out, "Factory check", "matches "+result.FactoryAddress.Hex())
	}
	return nil
}
