package requests

import "github.com/brettbedarf/memns"

// NodeRequestDTO is the JSON/YAML representation of [memns.NodeRequest]
type NodeRequestDTO struct {
	Path       string                      `json:"path" yaml:"path"`
	Type       memns.NodeCreateRequestType `json:"type" yaml:"type"`
	UUID       *string                     `json:"uuid,omitempty" yaml:"uuid,omitempty"`             // Optional UUID for log correlation
	Attributes *uint32                     `json:"attributes,omitempty" yaml:"attributes,omitempty"` // FILE_ATTRIBUTE_* bitmask (Default from config)
	ReadOnly   *bool                       `json:"readonly,omitempty" yaml:"readonly,omitempty"`     // Shorthand for the read-only attribute
	SDDL       *string                     `json:"sddl,omitempty" yaml:"sddl,omitempty"`             // Security descriptor string (Default unset)
}
