package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

// maxSuggestions caps the "did you mean" list
const maxSuggestions = 3

// Repository discovers and indexes compiled artifacts. Both Foundry (out/)
// and Hardhat (artifacts/) layouts are understood.
type Repository struct {
	artifactsDir  string
	artifacts     map[string]*models.Artifact   // key: "sourceName:contractName"
	contractNames map[string][]*models.Artifact // key: contract name
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		artifactsDir:  cfg.ArtifactsDir,
		log:           log.With("component", "ArtifactRepository"),
		artifacts:     make(map[string]*models.Artifact),
		contractNames: make(map[string][]*models.Artifact),
	}
}

// Index walks the artifacts directory once
func (i *Repository) Index() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.indexed {
		return nil
	}

	if _, err := os.Stat(i.artifactsDir); err != nil {
		return fmt.Errorf("artifacts directory %s not found, compile the contracts first: %w", i.artifactsDir, err)
	}

	err := filepath.WalkDir(i.artifactsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		return i.processArtifact(path)
	})
	if err != nil {
		return err
	}

	i.indexed = true
	i.log.Debug("artifacts indexed", "dir", i.artifactsDir, "count", len(i.artifacts))
	return nil
}

// processArtifact processes a single artifact file
func (i *Repository) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not every JSON file under the output directory is an artifact
		i.log.Debug("skipping file", "path", artifactPath, "error", err)
		return nil
	}

	// Interfaces and abstract contracts have no creation code
	if artifact.Bytecode.Object == "" || artifact.Bytecode.Object == "0x" {
		return nil
	}

	// Foundry names the target in the metadata; Hardhat writes it top level
	for source, contract := range artifact.Metadata.Settings.CompilationTarget {
		artifact.SourceName = source
		artifact.ContractName = contract
	}
	if artifact.ContractName == "" || artifact.SourceName == "" {
		return nil
	}

	key := artifact.FullyQualifiedName()
	if _, exists := i.artifacts[key]; exists {
		return nil
	}
	i.artifacts[key] = &artifact
	i.contractNames[artifact.ContractName] = append(i.contractNames[artifact.ContractName], &artifact)
	return nil
}

// GetArtifact resolves "Name" or "path/To.sol:Name"
func (i *Repository) GetArtifact(ctx context.Context, ref string) (*models.Artifact, error) {
	if err := i.Index(); err != nil {
		return nil, err
	}
	i.mu.RLock()
	defer i.mu.RUnlock()

	if strings.Contains(ref, ":") {
		if artifact, ok := i.artifacts[ref]; ok {
			return artifact, nil
		}
		return nil, i.notFound(ref, lo.Keys(i.artifacts))
	}

	matches := i.contractNames[ref]
	switch len(matches) {
	case 0:
		return nil, i.notFound(ref, lo.Keys(i.contractNames))
	case 1:
		return matches[0], nil
	}

	names := lo.Map(matches, func(a *models.Artifact, _ int) string { return a.FullyQualifiedName() })
	sort.Strings(names)
	return nil, fmt.Errorf("contract name %s is ambiguous, use one of: %s", ref, strings.Join(names, ", "))
}

func (i *Repository) notFound(ref string, candidates []string) error {
	sort.Strings(candidates)
	matches := fuzzy.Find(ref, candidates)
	if len(matches) == 0 {
		return fmt.Errorf("artifact %s: %w", ref, domain.ErrNotFound)
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return fmt.Errorf("artifact %s: %w (did you mean %s?)", ref, domain.ErrNotFound, strings.Join(suggestions, ", "))
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
