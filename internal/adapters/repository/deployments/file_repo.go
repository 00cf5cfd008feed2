package deployments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/trebuchet-org/treb-deploy/internal/domain"
	"github.com/trebuchet-org/treb-deploy/internal/domain/config"
	"github.com/trebuchet-org/treb-deploy/internal/domain/models"
	"github.com/trebuchet-org/treb-deploy/internal/usecase"
)

const recordExt = ".json"

// FileRepository stores one JSON file per deployment at <root>/<chainID>/<name>.json
type FileRepository struct {
	rootDir string
	log     *slog.Logger
	mu      sync.RWMutex
}

// NewFileRepository creates a repository rooted at the configured deployments directory
func NewFileRepository(cfg *config.RuntimeConfig, log *slog.Logger) (*FileRepository, error) {
	if cfg.DeploymentsDir == "" {
		return nil, fmt.Errorf("%w: deployments directory is not set", domain.ErrInvalidConfig)
	}
	return &FileRepository{
		rootDir: cfg.DeploymentsDir,
		log:     log.With("component", "DeploymentRepository"),
	}, nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return &domain.ValidationError{Field: "deployment name", Value: name, Err: errors.New("must be a plain file name")}
	}
	return nil
}

func (r *FileRepository) chainDir(chainID uint64) string {
	return filepath.Join(r.rootDir, strconv.FormatUint(chainID, 10))
}

func (r *FileRepository) recordPath(chainID uint64, name string) string {
	return filepath.Join(r.chainDir(chainID), name+recordExt)
}

// GetDeployment returns the record for name on chainID or domain.ErrNotFound
func (r *FileRepository) GetDeployment(ctx context.Context, chainID uint64, name string) (*models.Deployment, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.read(r.recordPath(chainID, name))
}

func (r *FileRepository) read(path string) (*models.Deployment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("deployment %s: %w", filepath.Base(path), domain.ErrNotFound)
		}
		return nil, err
	}

	var d models.Deployment
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &d, nil
}

// CreateDeploymentIfAbsent writes the record unless one already exists. The
// file is written to a temporary path and hard-linked into place, so readers
// never see a partial record and a concurrent writer in another process
// loses cleanly.
func (r *FileRepository) CreateDeploymentIfAbsent(ctx context.Context, d *models.Deployment) (*models.Deployment, bool, error) {
	if err := validName(d.Name); err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.recordPath(d.ChainID, d.Name)
	if existing, err := r.read(path); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	if err := os.MkdirAll(r.chainDir(d.ChainID), 0755); err != nil {
		return nil, false, fmt.Errorf("failed to create deployments directory: %w", err)
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, false, err
	}

	tmp, err := os.CreateTemp(r.chainDir(d.ChainID), "."+d.Name+"-*.tmp")
	if err != nil {
		return nil, false, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return nil, false, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return nil, false, err
	}
	if err := tmp.Close(); err != nil {
		return nil, false, err
	}

	if err := os.Link(tmpPath, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			existing, rerr := r.read(path)
			if rerr != nil {
				return nil, false, rerr
			}
			r.log.Debug("record created by another process", "name", d.Name, "chainId", d.ChainID)
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to save deployment %s: %w", d.Name, err)
	}

	r.log.Debug("record saved", "name", d.Name, "chainId", d.ChainID, "path", path)
	return d, true, nil
}

// ListDeployments returns every record on chainID ordered by name
func (r *FileRepository) ListDeployments(ctx context.Context, chainID uint64) ([]*models.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.chainDir(chainID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var out []*models.Deployment
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != recordExt {
			continue
		}
		d, err := r.read(filepath.Join(r.chainDir(chainID), e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

var _ usecase.DeploymentRepository = (*FileRepository)(nil)
