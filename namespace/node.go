package namespace

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/brettbedarf/memns"
	"github.com/puzpuzpuz/xsync/v4"
)

// Node is one filesystem object: a file, a directory or an alternate stream.
// Nodes are owned by the [Table] they are added to; the table rewrites path
// and stream links under its own lock.
type Node struct {
	path       string           // Full normalized path incl. stream suffix. Protected by mu
	attributes memns.Attributes // Protected by mu
	security   []byte           // Opaque descriptor blob. Protected by mu
	mainStream *Node            // Non-owning; set only for alternate streams. Protected by mu
	mu         sync.RWMutex     // Protects the fields above

	isDir     bool
	fileIndex atomic.Uint64               // 0 until first added to a table
	streams   *xsync.Map[*Node, struct{}] // Alternate streams linked to this main node
}

// NewNode creates a detached node. The path is normalized and directories
// always carry [memns.AttrDirectory].
func NewNode(path string, isDir bool, attributes memns.Attributes, security []byte) *Node {
	if isDir {
		attributes |= memns.AttrDirectory
	}
	return &Node{
		path:       NormalizePath(path),
		isDir:      isDir,
		attributes: attributes,
		security:   slices.Clone(security),
		streams:    xsync.NewMap[*Node, struct{}](),
	}
}

// Path returns the full path of the node
func (n *Node) Path() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.path
}

func (n *Node) setPath(p string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = p
}

// Name returns the last path component, including any stream suffix
func (n *Node) Name() string {
	return baseName(n.Path())
}

// FileIndex returns the node identity; 0 if never added to a table
func (n *Node) FileIndex() uint64 {
	return n.fileIndex.Load()
}

func (n *Node) IsDirectory() bool {
	return n.isDir
}

func (n *Node) Attributes() memns.Attributes {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.attributes
}

// SetAttributes replaces the attribute bitmask. The directory flag of a
// directory cannot be cleared.
func (n *Node) SetAttributes(attributes memns.Attributes) {
	if n.isDir {
		attributes |= memns.AttrDirectory
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attributes = attributes
}

// SecurityDescriptor returns a copy of the descriptor blob
func (n *Node) SecurityDescriptor() []byte {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.security)
}

func (n *Node) SetSecurityDescriptor(security []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.security = slices.Clone(security)
}

// MainStream returns the main node of an alternate stream, or nil
func (n *Node) MainStream() *Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.mainStream
}

func (n *Node) IsStream() bool {
	return n.MainStream() != nil
}

// Streams returns the alternate streams linked to this node, sorted by path
func (n *Node) Streams() []*Node {
	streams := make([]*Node, 0, n.streams.Size())
	n.streams.Range(func(s *Node, _ struct{}) bool {
		streams = append(streams, s)
		return true
	})
	sortByPath(streams)
	return streams
}

// linkStream makes s an alternate stream of n, sharing its identity
func (n *Node) linkStream(s *Node) {
	s.mu.Lock()
	s.mainStream = n
	s.mu.Unlock()
	s.fileIndex.Store(n.fileIndex.Load())
	n.streams.Store(s, struct{}{})
}

// unlinkStream drops s from the stream set of n
func (n *Node) unlinkStream(s *Node) {
	n.streams.Delete(s)
}

func sortByPath(nodes []*Node) {
	slices.SortFunc(nodes, func(a, b *Node) int {
		return strings.Compare(a.Path(), b.Path())
	})
}

var _ memns.NodeInfo = (*Node)(nil)
