package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookPlaceholder = "__$5a2ea6afd4f7634e810a44a1cab25e81c7$__"

var bookLink = LibraryLink{
	SourceName:   "contracts/libraries/Book.sol",
	ContractName: "Book",
	Address:      common.HexToAddress("0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"),
}

func TestLibraryPlaceholder(t *testing.T) {
	ph := LibraryPlaceholder("contracts/libraries/Book.sol", "Book")
	assert.Equal(t, bookPlaceholder, ph)
	assert.Len(t, ph, 40)
	assert.Equal(t, ph, bookLink.Placeholder())
	assert.Equal(t, "contracts/libraries/Book.sol:Book", bookLink.FullyQualifiedName())
}

func TestLinkBytecode(t *testing.T) {
	bytecode := "0x6080" + bookPlaceholder + "5050" + bookPlaceholder + "00"

	linked := LinkBytecode(bytecode, []LibraryLink{bookLink})

	assert.Equal(t, "0x6080abcdef0123456789abcdef0123456789abcdef015050abcdef0123456789abcdef0123456789abcdef0100", linked)
	assert.Empty(t, UnlinkedPlaceholders(linked))
}

func TestLinkBytecode_Idempotent(t *testing.T) {
	bytecode := "0x6080" + bookPlaceholder + "00"

	once := LinkBytecode(bytecode, []LibraryLink{bookLink})
	twice := LinkBytecode(once, []LibraryLink{bookLink})

	assert.Equal(t, once, twice)
}

func TestLinkBytecode_NoPlaceholders(t *testing.T) {
	assert.Equal(t, "0x6080604052", LinkBytecode("0x6080604052", []LibraryLink{bookLink}))
	assert.Equal(t, "0x6080604052", LinkBytecode("0x6080604052", nil))
}

func TestLinkAndVerify_UnresolvedPlaceholder(t *testing.T) {
	other := LibraryPlaceholder("contracts/libraries/Shelf.sol", "Shelf")
	bytecode := "0x6080" + bookPlaceholder + other + other

	_, err := LinkAndVerify(bytecode, []LibraryLink{bookLink})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnlinkedLibrary))

	var unlinked *UnlinkedLibraryError
	require.ErrorAs(t, err, &unlinked)
	assert.Equal(t, []string{other}, unlinked.Placeholders)
}

func TestLinkAndVerify_Success(t *testing.T) {
	linked, err := LinkAndVerify("0x60"+bookPlaceholder, []LibraryLink{bookLink})
	require.NoError(t, err)
	assert.False(t, strings.Contains(linked, "__$"))

	code, err := DecodeBytecode(linked)
	require.NoError(t, err)
	assert.Len(t, code, 21)
	assert.Equal(t, byte(0x60), code[0])
	assert.Equal(t, bookLink.Address.Bytes(), code[1:])
}

func TestDecodeBytecode(t *testing.T) {
	code, err := DecodeBytecode("6080")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80}, code)

	_, err = DecodeBytecode("0x")
	assert.Error(t, err)

	_, err = DecodeBytecode("0x608")
	assert.Error(t, err)
}
