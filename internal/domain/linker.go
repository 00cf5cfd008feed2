package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// placeholderPattern matches solc >= 0.5 library placeholders
var placeholderPattern = regexp.MustCompile(`__\$[0-9a-fA-F]{34}\$__`)

// LibraryLink binds a fully qualified library to its deployed address
type LibraryLink struct {
	SourceName   string
	ContractName string
	Address      common.Address
}

// FullyQualifiedName returns "sourceName:contractName"
func (l LibraryLink) FullyQualifiedName() string {
	return l.SourceName + ":" + l.ContractName
}

// Placeholder returns the 40-character token solc leaves where the library address goes
func (l LibraryLink) Placeholder() string {
	return LibraryPlaceholder(l.SourceName, l.ContractName)
}

// LibraryPlaceholder returns "__$" + first 34 hex chars of keccak256("source:name") + "$__"
func LibraryPlaceholder(sourceName, contractName string) string {
	hash := crypto.Keccak256Hash([]byte(sourceName + ":" + contractName))
	return "__$" + hash.Hex()[2:36] + "$__"
}

// LinkBytecode substitutes every occurrence of each link's placeholder with the
// lowercase hex body of its address. Placeholders without a link are left
// untouched; use UnlinkedPlaceholders or LinkAndVerify to detect them.
func LinkBytecode(bytecode string, links []LibraryLink) string {
	for _, link := range links {
		addr := strings.ToLower(link.Address.Hex()[2:])
		bytecode = strings.ReplaceAll(bytecode, link.Placeholder(), addr)
	}
	return bytecode
}

// UnlinkedPlaceholders returns the distinct placeholders still present, in order of first appearance
func UnlinkedPlaceholders(bytecode string) []string {
	matches := placeholderPattern.FindAllString(bytecode, -1)
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// LinkAndVerify links the bytecode and fails with UnlinkedLibraryError if any
// placeholder survives. The result is safe to decode as hex.
func LinkAndVerify(bytecode string, links []LibraryLink) (string, error) {
	linked := LinkBytecode(bytecode, links)
	if leftover := UnlinkedPlaceholders(linked); len(leftover) > 0 {
		return "", &UnlinkedLibraryError{Placeholders: leftover}
	}
	return linked, nil
}

// DecodeBytecode decodes linked hex bytecode, with or without a 0x prefix
func DecodeBytecode(bytecode string) ([]byte, error) {
	b := strings.TrimPrefix(strings.TrimSpace(bytecode), "0x")
	if len(b) == 0 {
		return nil, fmt.Errorf("empty bytecode")
	}
	code, err := hexutil.Decode("0x" + b)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	return code, nil
}
