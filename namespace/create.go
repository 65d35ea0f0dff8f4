package namespace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brettbedarf/memns"
	"github.com/brettbedarf/memns/internal/util"
)

// AddDirNode adds every missing directory in req's path and returns the
// leaf. It is equivalent to `mkdir -p`: existing directories are reused and
// an existing leaf directory is not an error. A non-directory anywhere on the
// path fails with ErrNameCollision.
func (t *Table) AddDirNode(req *memns.NodeRequest) (*Node, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mkdirAllLocked(NormalizePath(req.Path), req)
}

func (t *Table) mkdirAllLocked(dirPath string, req *memns.NodeRequest) (*Node, error) {
	logger := util.GetLogger("AddDirNode")

	cur := t.root
	newCnt := 0
	for _, name := range strings.Split(strings.TrimPrefix(dirPath, RootPath), "/") {
		if name == "" {
			continue
		}
		p := JoinPath(cur.Path(), name)
		if child := t.nodes[p]; child != nil {
			if !child.isDir {
				logger.Warn().Str("uuid", req.UUID).Str("path", p).Msg("Path component is not a directory")
				return nil, memns.NewError("mkdir", p, memns.ErrNameCollision)
			}
			cur = child
			continue
		}
		// Implicit ancestors share the request's attributes and descriptor
		node := NewNode(p, true, req.Attributes, req.Security)
		if err := t.addLocked(node); err != nil {
			return nil, err
		}
		newCnt++
		cur = node
	}
	if newCnt > 0 {
		logger.Debug().Str("uuid", req.UUID).Str("path", dirPath).Msg(fmt.Sprintf("Created %d new dir(s)", newCnt))
	}
	return cur, nil
}

// AddFileNode adds a file or alternate stream described by req, creating any
// missing ancestor directories first, and returns the new node.
func (t *Table) AddFileNode(req *memns.NodeRequest) (*Node, error) {
	logger := util.GetLogger("AddFileNode")

	p := NormalizePath(req.Path)
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.mkdirAllLocked(ParentPath(p), &memns.NodeRequest{
		UUID:       req.UUID,
		Attributes: t.cfg.DefaultDirAttributes,
		Security:   req.Security,
	}); err != nil {
		logger.Error().Err(err).Str("uuid", req.UUID).Str("path", p).Msg("Failed to create file's ancestor directory(s)")
		return nil, err
	}

	node := NewNode(p, false, req.Attributes, req.Security)
	if existing := t.nodes[p]; existing != nil {
		logger.Error().Str("uuid", req.UUID).Str("path", p).Msg("Node already exists")
		return nil, memns.NewError("add", p, memns.ErrNameCollision)
	}
	if err := t.addLocked(node); err != nil {
		logger.Error().Err(err).Str("uuid", req.UUID).Str("path", p).Msg("Failed to create file")
		return nil, err
	}
	return node, nil
}

// AddRequest dispatches req to AddDirNode or AddFileNode by its type
func (t *Table) AddRequest(req *memns.NodeRequest) (*Node, error) {
	switch req.Type {
	case memns.DirNodeType:
		return t.AddDirNode(req)
	case memns.FileNodeType, memns.StreamNodeType:
		return t.AddFileNode(req)
	default:
		return nil, fmt.Errorf("unknown node type: %q", req.Type)
	}
}

// Seed adds every request, directories first, then files, then alternate
// streams so that mains exist before their streams. Failed requests are
// skipped; the number added and the joined errors are returned.
func (t *Table) Seed(reqs []*memns.NodeRequest) (int, error) {
	logger := util.GetLogger("Seed")

	order := [...]memns.NodeCreateRequestType{memns.DirNodeType, memns.FileNodeType, memns.StreamNodeType}
	added := 0
	var errs []error
	for _, typ := range order {
		for _, req := range reqs {
			if req.Type != typ {
				continue
			}
			if _, err := t.AddRequest(req); err != nil {
				logger.Debug().Str("uuid", req.UUID).Str("path", req.Path).Err(err).Msg("Failed to add request")
				errs = append(errs, err)
				continue
			}
			added++
		}
	}
	for _, req := range reqs {
		if req.Type != memns.DirNodeType && req.Type != memns.FileNodeType && req.Type != memns.StreamNodeType {
			errs = append(errs, fmt.Errorf("unknown node type %q for %s", req.Type, req.Path))
		}
	}
	return added, errors.Join(errs...)
}
