package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/memns"
	"github.com/brettbedarf/memns/config"
)

// GetNodeType extracts the node type from JSON without full unmarshaling
func GetNodeType(data []byte) (memns.NodeCreateRequestType, error) {
	var meta struct {
		Type memns.NodeCreateRequestType `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", err
	}
	return meta.Type, nil
}

// UnmarshalNodeRequest converts a single JSON node definition, applying
// defaults from cfg
func UnmarshalNodeRequest(data []byte, cfg *config.Config) (*memns.NodeRequest, error) {
	var dto NodeRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	return convertNodeDTO(dto, cfg)
}

// LoadNodeRequestsFile reads a list of node definitions from a file.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadNodeRequestsFile(path string, cfg *config.Config) ([]*memns.NodeRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var dtos []NodeRequestDTO
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal nodes file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal nodes file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown nodes file extension: %s", path)
	}

	reqs := make([]*memns.NodeRequest, 0, len(dtos))
	for i, dto := range dtos {
		req, err := convertNodeDTO(dto, cfg)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Conversion logic with defaults in the unmarshaling layer
func convertNodeDTO(dto NodeRequestDTO, cfg *config.Config) (*memns.NodeRequest, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if dto.Path == "" {
		return nil, fmt.Errorf("missing path")
	}

	isStream := strings.Contains(dto.Path[strings.LastIndexAny(dto.Path, `/\`)+1:], ":")
	var defaultAttrs memns.Attributes
	switch dto.Type {
	case memns.DirNodeType:
		defaultAttrs = cfg.DefaultDirAttributes
	case memns.FileNodeType, memns.StreamNodeType:
		defaultAttrs = cfg.DefaultFileAttributes
	default:
		return nil, fmt.Errorf("unknown node type: %q", dto.Type)
	}
	if isStream != (dto.Type == memns.StreamNodeType) {
		return nil, fmt.Errorf("node type %q does not match path %s", dto.Type, dto.Path)
	}

	attrs := memns.Attributes(valueOrDefault(dto.Attributes, uint32(defaultAttrs)))
	if valueOrDefault(dto.ReadOnly, false) {
		attrs |= memns.AttrReadOnly
	}

	var security []byte
	if dto.SDDL != nil {
		security = []byte(*dto.SDDL)
	}

	return &memns.NodeRequest{
		Path:       dto.Path,
		Type:       dto.Type,
		UUID:       valueOrDefault(dto.UUID, uuid.New().String()),
		Attributes: attrs,
		Security:   security,
	}, nil
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
