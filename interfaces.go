package memns

// NodeInfo provides read-only access to node information for the callback layer
type NodeInfo interface {
	// Path returns the full normalized path, including any stream suffix
	Path() string

	// FileIndex returns the process-lifetime identity; streams share their main's
	FileIndex() uint64

	IsDirectory() bool

	// Attributes returns the FILE_ATTRIBUTE_* style bitmask
	Attributes() Attributes

	// SecurityDescriptor returns a copy of the opaque descriptor blob
	SecurityDescriptor() []byte

	// IsStream returns true if the node is an alternate data stream
	IsStream() bool
}

// DescriptorSupplier produces the opaque security descriptor blob used for the
// root node. Failure is fatal to namespace initialization.
type DescriptorSupplier interface {
	RootDescriptor() ([]byte, error)
}
