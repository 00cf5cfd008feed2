package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// LinkReference is a byte range in the bytecode that must hold a library address
type LinkReference struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// LinkReferences maps source name -> library name -> placeholder positions
type LinkReferences map[string]map[string][]LinkReference

// BytecodeObject represents bytecode information in a compilation artifact.
// Foundry writes an object, Hardhat a plain hex string; both decode here.
type BytecodeObject struct {
	Object         string         `json:"object"`
	LinkReferences LinkReferences `json:"linkReferences,omitempty"`
}

// UnmarshalJSON accepts either a hex string or a {object, linkReferences} object
func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Object)
	}
	type plain BytecodeObject
	return json.Unmarshal(data, (*plain)(b))
}

// Artifact represents a compilation artifact as written by Foundry or Hardhat
type Artifact struct {
	// Set by the repository from the artifact contents or its location
	SourceName   string `json:"sourceName"`
	ContractName string `json:"contractName"`

	ABI            json.RawMessage  `json:"abi"`
	Bytecode       BytecodeObject   `json:"bytecode"`
	LinkReferences LinkReferences   `json:"linkReferences,omitempty"` // Hardhat keeps these top level
	Metadata       ArtifactMetadata `json:"metadata"`
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// LibraryRef names a library the artifact must be linked against
type LibraryRef struct {
	SourceName   string
	ContractName string
}

func (l LibraryRef) String() string {
	return fmt.Sprintf("%s:%s", l.SourceName, l.ContractName)
}

// FullyQualifiedName returns "sourceName:contractName"
func (a *Artifact) FullyQualifiedName() string {
	return fmt.Sprintf("%s:%s", a.SourceName, a.ContractName)
}

// Info returns the artifact identity stored on deployment records
func (a *Artifact) Info() ArtifactInfo {
	return ArtifactInfo{
		SourceName:      a.SourceName,
		ContractName:    a.ContractName,
		CompilerVersion: a.Metadata.Compiler.Version,
	}
}

// RequiredLibraries lists the libraries referenced by the creation bytecode, sorted
func (a *Artifact) RequiredLibraries() []LibraryRef {
	refs := a.Bytecode.LinkReferences
	if len(refs) == 0 {
		refs = a.LinkReferences
	}

	var libs []LibraryRef
	for source, names := range refs {
		for name := range names {
			libs = append(libs, LibraryRef{SourceName: source, ContractName: name})
		}
	}
	sort.Slice(libs, func(i, j int) bool {
		return libs[i].String() < libs[j].String()
	})
	return libs
}
