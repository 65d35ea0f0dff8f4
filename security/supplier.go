// Package security supplies the opaque security descriptor used to bootstrap
// the namespace root. Descriptors are SDDL strings carried as bytes; the
// namespace never inspects them.
package security

import (
	"errors"
	"fmt"
	"os/user"
	"strings"

	"github.com/brettbedarf/memns"
	"github.com/brettbedarf/memns/config"
	"github.com/brettbedarf/memns/internal/util"
)

// rootDACL grants full access to authenticated users, inherited by objects and containers
const rootDACL = "D:PAI(A;OICI;FA;;;AU)"

// Unix ids are mapped onto SIDs the same way Samba does
const (
	unixUserSIDPrefix  = "S-1-22-1-"
	unixGroupSIDPrefix = "S-1-22-2-"
)

var ErrNoIdentity = errors.New("no identity for root descriptor")

// IdentityLookup returns the current process identity
type IdentityLookup func() (*user.User, error)

// ProcessSupplier derives the root descriptor from the identity of the
// running process: owner is the user, group its primary group.
type ProcessSupplier struct {
	Lookup IdentityLookup // Defaults to user.Current
}

func (s *ProcessSupplier) RootDescriptor() ([]byte, error) {
	logger := util.GetLogger("ProcessSupplier")

	lookup := s.Lookup
	if lookup == nil {
		lookup = user.Current
	}
	u, err := lookup()
	if err != nil {
		return nil, fmt.Errorf("failed to read process identity: %w", err)
	}
	if u == nil || u.Uid == "" {
		return nil, ErrNoIdentity
	}

	sddl := "O:" + toSID(u.Uid, unixUserSIDPrefix)
	if u.Gid != "" {
		sddl += "G:" + toSID(u.Gid, unixGroupSIDPrefix)
	}
	sddl += rootDACL

	logger.Debug().Str("sddl", sddl).Msg("Built root descriptor")
	return []byte(sddl), nil
}

// toSID returns id untouched when it already is a SID (Windows) or maps a
// numeric unix id under prefix
func toSID(id, prefix string) string {
	if strings.HasPrefix(id, "S-") {
		return id
	}
	return prefix + id
}

// StaticSupplier always returns the configured SDDL string
type StaticSupplier struct {
	SDDL string
}

func (s *StaticSupplier) RootDescriptor() ([]byte, error) {
	if s.SDDL == "" {
		return nil, ErrNoIdentity
	}
	return []byte(s.SDDL), nil
}

// FromConfig builds the supplier of the kind named by cfg.RootSupplier.
// Without a kind it picks a StaticSupplier when the config sets RootSDDL and
// a ProcessSupplier otherwise.
func FromConfig(cfg *config.Config) (memns.DescriptorSupplier, error) {
	kind := ProcessSupplierKind
	switch {
	case cfg != nil && cfg.RootSupplier != "":
		kind = cfg.RootSupplier
	case cfg != nil && cfg.RootSDDL != "":
		kind = StaticSupplierKind
	}
	return New(kind, cfg)
}

var (
	_ memns.DescriptorSupplier = (*ProcessSupplier)(nil)
	_ memns.DescriptorSupplier = (*StaticSupplier)(nil)
)
