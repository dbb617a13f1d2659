package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fxamacker/cbor/v2"
	"go.uber.org/multierr"
)

type Role string

const (
	RoleApprover    Role = "approver"
	RoleAuditor     Role = "auditor"
	RoleProcurement Role = "procurement"
)

var encMode, _ = cbor.CanonicalEncOptions().EncMode()

// Roster is the immutable approver set plus optional auditors. Build it with NewRoster.
type Roster struct {
	approvers []common.Address
	auditors  []common.Address
	members   map[common.Address]Role
	quorum    int
}

// ParseIdentity accepts a 0x-prefixed (or bare) 20-byte hex address in any letter case.
func ParseIdentity(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidIdentity, s)
	}
	return common.HexToAddress(s), nil
}

// IdentityKey is the stored form of an identity: lowercase 0x hex.
func IdentityKey(a common.Address) string { return strings.ToLower(a.Hex()) }

// NewRoster validates the configured sets. quorum <= 0 means every approver must sign.
// All problems are reported together, wrapped in ErrInvalidConfiguration.
func NewRoster(approvers, auditors []string, quorum int) (*Roster, error) {
	r := &Roster{members: make(map[common.Address]Role, len(approvers)+len(auditors))}
	var errs error

	if len(approvers) == 0 {
		errs = multierr.Append(errs, errors.New("approver list is empty"))
	}
	add := func(raw string, role Role) {
		a, err := ParseIdentity(raw)
		if err != nil {
			errs = multierr.Append(errs, err)
			return
		}
		if prev, dup := r.members[a]; dup {
			errs = multierr.Append(errs, fmt.Errorf("duplicate identity %s (already %s)", IdentityKey(a), prev))
			return
		}
		r.members[a] = role
		if role == RoleApprover {
			r.approvers = append(r.approvers, a)
		} else {
			r.auditors = append(r.auditors, a)
		}
	}
	for _, s := range approvers {
		add(s, RoleApprover)
	}
	for _, s := range auditors {
		add(s, RoleAuditor)
	}

	r.quorum = quorum
	if quorum <= 0 {
		r.quorum = len(r.approvers)
	}
	if len(approvers) > 0 && (r.quorum < 1 || r.quorum > len(approvers)) {
		errs = multierr.Append(errs, fmt.Errorf("quorum %d out of range 1..%d", quorum, len(approvers)))
	}

	if errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, errs)
	}
	return r, nil
}

func (r *Roster) IsApprover(a common.Address) bool { return r.members[a] == RoleApprover }

// RoleOf reports how the ledger sees an identity. Anyone outside the roster acts as procurement.
func (r *Roster) RoleOf(a common.Address) Role {
	if role, ok := r.members[a]; ok {
		return role
	}
	return RoleProcurement
}

func (r *Roster) Quorum() int { return r.quorum }

func (r *Roster) Size() int { return len(r.approvers) }

func (r *Roster) Approvers() []common.Address { return append([]common.Address(nil), r.approvers...) }

func (r *Roster) Auditors() []common.Address { return append([]common.Address(nil), r.auditors...) }

func keys(in []common.Address) []string {
	out := make([]string, len(in))
	for i, a := range in {
		out[i] = IdentityKey(a)
	}
	sort.Strings(out)
	return out
}

// Fingerprint is keccak256 over the canonical CBOR of the sorted sets and quorum.
// Ordering of the configured lists does not change it.
func (r *Roster) Fingerprint() string {
	payload := struct {
		Approvers []string `cbor:"1,keyasint"`
		Auditors  []string `cbor:"2,keyasint"`
		Quorum    int      `cbor:"3,keyasint"`
	}{keys(r.approvers), keys(r.auditors), r.quorum}
	b, err := encMode.Marshal(payload)
	if err != nil {
		// only plain strings and ints are encoded
		panic(err)
	}
	return hexutil.Encode(crypto.Keccak256(b))
}

func (r *Roster) Deployment() *Deployment {
	return &Deployment{
		ID:          DeploymentID,
		Fingerprint: r.Fingerprint(),
		Approvers:   keys(r.approvers),
		Auditors:    keys(r.auditors),
		Quorum:      r.quorum,
	}
}

// CheckDeployment fails when the persisted roster differs from this one.
func (r *Roster) CheckDeployment(d *Deployment) error {
	if d.Fingerprint != r.Fingerprint() {
		return fmt.Errorf("%w: approver set is immutable once deployed (deployed %d approvers, quorum %d)",
			ErrInvalidConfiguration, len(d.Approvers), d.Quorum)
	}
	return nil
}
