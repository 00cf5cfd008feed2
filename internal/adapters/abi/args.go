package abi

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// ArgumentEncoder converts textual constructor arguments into ABI encoded bytes
// using the constructor inputs of the artifact ABI.
type ArgumentEncoder struct{}

// NewArgumentEncoder creates a new ArgumentEncoder
func NewArgumentEncoder() *ArgumentEncoder {
	return &ArgumentEncoder{}
}

// EncodeConstructorArgs parses each argument according to its constructor input type
func (e *ArgumentEncoder) EncodeConstructorArgs(abiJSON json.RawMessage, args []string) ([]byte, error) {
	var inputs abi.Arguments
	if len(abiJSON) > 0 {
		parsed, err := abi.JSON(strings.NewReader(string(abiJSON)))
		if err != nil {
			return nil, fmt.Errorf("failed to parse ABI: %w", err)
		}
		inputs = parsed.Constructor.Inputs
	}

	if len(args) != len(inputs) {
		return nil, fmt.Errorf("constructor takes %d arguments, got %d", len(inputs), len(args))
	}
	if len(inputs) == 0 {
		return nil, nil
	}

	values := make([]interface{}, len(inputs))
	for i, input := range inputs {
		v, err := parseValue(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		values[i] = v
	}

	return inputs.Pack(values...)
}

// parseValue converts s into the Go value abi.Pack expects for t
func parseValue(t abi.Type, s string) (interface{}, error) {
	s = strings.TrimSpace(s)

	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %q", s)
		}
		return common.HexToAddress(s), nil

	case abi.BoolTy:
		return strconv.ParseBool(s)

	case abi.StringTy:
		return s, nil

	case abi.BytesTy:
		return hexutil.Decode(s)

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.IntTy, abi.UintTy:
		return parseInteger(t, s)

	case abi.SliceTy, abi.ArrayTy:
		var items []json.RawMessage
		if err := json.Unmarshal([]byte(s), &items); err != nil {
			return nil, fmt.Errorf("expected a JSON array: %w", err)
		}
		if t.T == abi.ArrayTy && len(items) != t.Size {
			return nil, fmt.Errorf("expected %d elements, got %d", t.Size, len(items))
		}

		var out reflect.Value
		if t.T == abi.ArrayTy {
			out = reflect.New(t.GetType()).Elem()
		} else {
			out = reflect.MakeSlice(t.GetType(), len(items), len(items))
		}
		for i, raw := range items {
			item := string(raw)
			var str string
			if json.Unmarshal(raw, &str) == nil {
				item = str
			}
			v, err := parseValue(*t.Elem, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(v))
		}
		return out.Interface(), nil
	}

	return nil, fmt.Errorf("unsupported type %s", t.String())
}

func parseInteger(t abi.Type, s string) (interface{}, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	if t.T == abi.UintTy && n.Sign() < 0 {
		return nil, fmt.Errorf("negative value for unsigned type")
	}

	bits := n.BitLen()
	if t.T == abi.IntTy {
		// Two's complement: -2^(k-1) still fits in k bits
		if n.Sign() < 0 {
			bits = new(big.Int).Sub(new(big.Int).Neg(n), big.NewInt(1)).BitLen()
		}
		bits++
	}
	if bits > t.Size {
		return nil, fmt.Errorf("value %s overflows %s", n, t.String())
	}

	// Only 8, 16, 32 and 64 bit types pack from native Go integers
	v := reflect.New(t.GetType()).Elem()
	switch v.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(n.Uint64())
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(n.Int64())
	default:
		return n, nil
	}
	return v.Interface(), nil
}

var _ usecase.ConstructorEncoder = (*ArgumentEncoder)(nil)
