package namespace

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/brettbedarf/memns"
	"github.com/brettbedarf/memns/config"
	"github.com/brettbedarf/memns/internal/util"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Table is the authoritative in-memory namespace: a path→node map plus a
// directory→children index. A single lock guards both; public methods take
// it once and cascades run through the *Locked implementations.
type Table struct {
	cfg      *config.Config
	root     *Node
	nodes    map[string]*Node              // every node by full path, streams included
	children map[string]map[*Node]struct{} // directory path -> nodes whose parent path is that directory
	lastIdx  atomic.Uint64                 // last FileIndex assigned; only advanced under mu
	mu       sync.RWMutex
}

// NewTable bootstraps a namespace holding only the root directory. The root
// descriptor comes from supplier; its failure aborts initialization.
func NewTable(cfg *config.Config, supplier memns.DescriptorSupplier) (*Table, error) {
	logger := util.GetLogger("NewTable")

	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if supplier == nil {
		return nil, errors.New("failed to init root resources: no descriptor supplier")
	}
	security, err := supplier.RootDescriptor()
	if err != nil {
		logger.Error().Err(err).Msg("Root descriptor supplier failed")
		return nil, fmt.Errorf("failed to init root resources: %w", err)
	}

	root := NewNode(RootPath, true, memns.AttrDirectory, security)
	root.fileIndex.Store(fuse.FUSE_ROOT_ID)

	t := &Table{
		cfg:      cfg,
		root:     root,
		nodes:    map[string]*Node{RootPath: root},
		children: map[string]map[*Node]struct{}{RootPath: {}},
	}
	t.lastIdx.Store(fuse.FUSE_ROOT_ID)

	logger.Debug().Uint64("fileIndex", root.FileIndex()).Msg("Namespace root created")
	return t, nil
}

// Root returns the root directory node
func (t *Table) Root() *Node {
	return t.root
}

// Config returns the configuration the table was built with
func (t *Table) Config() *config.Config {
	return t.cfg
}

// Add inserts node under its path. The parent directory must exist, and an
// alternate stream requires its main file. Streams are linked to their main
// file and share its FileIndex; directories get an empty children bucket.
// Nothing is mutated when an error is returned.
func (t *Table) Add(node *Node) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.addLocked(node)
}

func (t *Table) addLocked(node *Node) error {
	logger := util.GetLogger("Table.Add")

	p := node.Path()
	parent := ParentPath(p)

	// Does target folder exist
	siblings, ok := t.children[parent]
	if !ok || p == RootPath {
		logger.Warn().Str("parent", parent).Str("path", p).Msg("No parent directory")
		return memns.NewError("add", p, memns.ErrPathNotFound)
	}
	if existing, ok := t.nodes[p]; ok && existing != node {
		logger.Warn().Str("path", p).Msg("Path already taken by another node")
		return memns.NewError("add", p, memns.ErrNameCollision)
	}

	var main *Node
	base, stream := SplitStreamName(p)
	if stream != "" {
		if main = t.nodes[JoinPath(parent, base)]; main == nil {
			logger.Warn().Str("path", p).Str("main", base).Msg("Alternate stream without main stream")
			return memns.NewError("add", p, memns.ErrPathNotFound)
		}
	}

	// preconditions hold; from here on the add can't fail
	if main != nil {
		main.linkStream(node)
		logger.Debug().Str("path", p).Str("stream", stream).Str("main", main.Path()).
			Msg("Linked alternate stream")
	} else if node.fileIndex.Load() == 0 {
		node.fileIndex.Store(t.lastIdx.Add(1))
	}

	if node.isDir {
		if _, ok := t.children[p]; !ok {
			t.children[p] = map[*Node]struct{}{}
		}
	}
	t.nodes[p] = node
	siblings[node] = struct{}{}

	logger.Debug().Str("path", p).Uint64("fileIndex", node.FileIndex()).Msg("Added node")
	return nil
}

// Find returns the node at path, or nil
func (t *Table) Find(path string) *Node {
	path = NormalizePath(path)

	t.mu.RLock()
	defer t.mu.RUnlock()
	n := t.nodes[path]
	if n == nil {
		logger := util.GetLogger("Table.Find")
		logger.Trace().Str("path", path).Msg("No node found")
	}
	return n
}

// ListChildren returns the nodes whose parent is the directory at path,
// sorted by path. Alternate streams are listed next to their main files.
// A missing directory yields an empty list.
func (t *Table) ListChildren(path string) []*Node {
	path = NormalizePath(path)

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.listChildrenLocked(path)
}

func (t *Table) listChildrenLocked(path string) []*Node {
	bucket := t.children[path]
	nodes := make([]*Node, 0, len(bucket))
	for n := range bucket {
		nodes = append(nodes, n)
	}
	sortByPath(nodes)
	return nodes
}

// ListStreams returns the alternate streams of the node at path. A missing
// node yields an empty list.
func (t *Table) ListStreams(path string) []*Node {
	path = NormalizePath(path)

	t.mu.RLock()
	defer t.mu.RUnlock()
	if n := t.nodes[path]; n != nil {
		return n.Streams()
	}
	return []*Node{}
}

// Len returns the number of nodes, root included
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Walk visits every node depth-first starting at path, parents before their
// children. Walk holds the read lock, so fn must not call back into t.
func (t *Table) Walk(path string, fn func(n *Node) bool) {
	path = NormalizePath(path)

	t.mu.RLock()
	defer t.mu.RUnlock()
	if n := t.nodes[path]; n != nil {
		t.walkLocked(n, fn)
	}
}

func (t *Table) walkLocked(n *Node, fn func(n *Node) bool) bool {
	if !fn(n) {
		return false
	}
	if !n.isDir {
		return true
	}
	for _, child := range t.listChildrenLocked(n.Path()) {
		if !t.walkLocked(child, fn) {
			return false
		}
	}
	return true
}

// CheckInvariants verifies the consistency of the path map, the directory
// index and the stream links, returning every violation found.
func (t *Table) CheckInvariants() error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var errs []error
	if r := t.nodes[RootPath]; r == nil || r != t.root || !r.isDir {
		errs = append(errs, errors.New("root missing or not a directory"))
	}

	expected := make(map[string]map[*Node]struct{}, len(t.children))
	for p, n := range t.nodes {
		if n.Path() != p {
			errs = append(errs, fmt.Errorf("node keyed %q reports path %q", p, n.Path()))
		}
		if n.isDir {
			if _, ok := t.children[p]; !ok {
				errs = append(errs, fmt.Errorf("directory %q has no children bucket", p))
			}
		}
		if _, stream := SplitStreamName(p); (stream != "") != (n.MainStream() != nil) {
			errs = append(errs, fmt.Errorf("stream link of %q does not match its name", p))
		}
		if main := n.MainStream(); main != nil {
			if _, ok := main.streams.Load(n); !ok {
				errs = append(errs, fmt.Errorf("stream %q not linked into its main stream", p))
			}
			if main.FileIndex() != n.FileIndex() {
				errs = append(errs, fmt.Errorf("stream %q does not share its main's file index", p))
			}
		}
		if p == RootPath {
			continue
		}
		parent := ParentPath(p)
		if _, ok := t.children[parent]; !ok {
			errs = append(errs, fmt.Errorf("parent %q of %q is not a directory", parent, p))
		}
		if expected[parent] == nil {
			expected[parent] = map[*Node]struct{}{}
		}
		expected[parent][n] = struct{}{}
	}

	for dir, bucket := range t.children {
		if n := t.nodes[dir]; n == nil || !n.isDir {
			errs = append(errs, fmt.Errorf("children bucket %q has no directory node", dir))
		}
		if len(bucket) != len(expected[dir]) {
			errs = append(errs, fmt.Errorf("directory %q lists %d children, want %d", dir, len(bucket), len(expected[dir])))
			continue
		}
		for n := range bucket {
			if _, ok := expected[dir][n]; !ok {
				errs = append(errs, fmt.Errorf("directory %q lists stray child %q", dir, n.Path()))
			}
		}
	}
	return errors.Join(errs...)
}
