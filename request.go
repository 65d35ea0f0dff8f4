package memns

// NodeRequest describes a node to be created in the namespace
type NodeRequest struct {
	Path       string
	Type       NodeCreateRequestType
	UUID       string // Optional UUID to correlate the request in logs
	Attributes Attributes
	Security   []byte // Opaque security descriptor; nil leaves it unset
}

// NodeCreateRequestType valid types are FileNodeType "file", DirNodeType "dir",
// StreamNodeType "stream"
type NodeCreateRequestType string

const (
	FileNodeType   NodeCreateRequestType = "file"
	DirNodeType    NodeCreateRequestType = "dir"
	StreamNodeType NodeCreateRequestType = "stream"
)

// IsDirectory reports whether the request creates a directory
func (r *NodeRequest) IsDirectory() bool {
	return r.Type == DirNodeType
}
