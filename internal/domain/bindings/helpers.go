package bindings

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// GetEventID returns the event signature hash for a given event name
// This is a helper method that works alongside the generated ABI bindings
func (createx *CreateX) GetEventID(eventName string) (common.Hash, error) {
	event, exists := createx.abi.Events[eventName]
	if !exists {
		return common.Hash{}, fmt.Errorf("event %s not found", eventName)
	}
	return event.ID, nil
}

// UnpackCreatedContract returns the deployed address from either ContractCreation
// overload. The CREATE3 proxy event and unrelated logs report ok=false.
func (createx *CreateX) UnpackCreatedContract(log *types.Log) (common.Address, bool) {
	if log == nil || len(log.Topics) == 0 {
		return common.Address{}, false
	}
	switch log.Topics[0] {
	case createx.abi.Events[CreateXContractCreationEventName].ID:
		ev, err := createx.UnpackContractCreationEvent(log)
		if err != nil {
			return common.Address{}, false
		}
		return ev.NewContract, true
	case createx.abi.Events[CreateXContractCreation0EventName].ID:
		ev, err := createx.UnpackContractCreation0Event(log)
		if err != nil {
			return common.Address{}, false
		}
		return ev.NewContract, true
	}
	return common.Address{}, false
}

func (e *CreateXContractCreation) String() string {
	return fmt.Sprintf("%s: address=%s salt=%x", e.ContractEventName(), e.NewContract.Hex(), e.Salt)
}

func (e *CreateXContractCreation0) String() string {
	return fmt.Sprintf("%s: address=%s", e.ContractEventName(), e.NewContract.Hex())
}

func (e *CreateXCreate3ProxyContractCreation) String() string {
	return fmt.Sprintf("%s: proxy=%s salt=%x", e.ContractEventName(), e.NewContract.Hex(), e.Salt)
}
