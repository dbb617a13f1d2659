package audit

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fxamacker/cbor/v2"
)

var ErrBrokenChain = errors.New("audit chain broken")

type Action string

const (
	ActionContractCreated       Action = "contract_created"
	ActionContractApproved      Action = "contract_approved"
	ActionModificationRequested Action = "modification_requested"
	ActionModificationApproved  Action = "modification_approved"
	ActionModificationRejected  Action = "modification_rejected"
)

// GenesisHash is the prev_hash of the first entry.
var GenesisHash = hexutil.Encode(make([]byte, 32))

var encMode, _ = cbor.CanonicalEncOptions().EncMode()

// Table: audit_entries. Seq comes from the audit sequence, so entries are gapless.
type Entry struct {
	Seq        uint64    `gorm:"column:seq;primaryKey;autoIncrement:false" json:"seq"`
	Identity   string    `gorm:"column:identity;size:64;not null;index:idx_audit_entries_identity" json:"identity"`
	Role       string    `gorm:"column:role;size:16;not null" json:"role"`
	Action     Action    `gorm:"column:action;size:32;not null" json:"action"`
	TargetID   uint64    `gorm:"column:target_id;not null;index:idx_audit_entries_target" json:"target_id"`
	Details    string    `gorm:"column:details;type:text" json:"details"`
	OccurredAt time.Time `gorm:"column:occurred_at;precision:6;not null" json:"timestamp"`
	PrevHash   string    `gorm:"column:prev_hash;type:char(66);not null" json:"prev_hash"`
	Hash       string    `gorm:"column:hash;type:char(66);not null" json:"hash"`
}

func (Entry) TableName() string { return "audit_entries" }

type sealPayload struct {
	Seq         uint64 `cbor:"1,keyasint"`
	PrevHash    []byte `cbor:"2,keyasint"`
	Identity    string `cbor:"3,keyasint"`
	Role        string `cbor:"4,keyasint"`
	Action      string `cbor:"5,keyasint"`
	TargetID    uint64 `cbor:"6,keyasint"`
	Details     string `cbor:"7,keyasint"`
	TimestampUS int64  `cbor:"8,keyasint"`
}

// Digest is keccak256 over the canonical CBOR of every field except Hash.
// Timestamps are hashed at microsecond precision, the precision the column keeps.
func (e *Entry) Digest() ([]byte, error) {
	prev, err := hexutil.Decode(e.PrevHash)
	if err != nil {
		return nil, fmt.Errorf("prev_hash: %w", err)
	}
	b, err := encMode.Marshal(sealPayload{
		Seq:         e.Seq,
		PrevHash:    prev,
		Identity:    e.Identity,
		Role:        e.Role,
		Action:      string(e.Action),
		TargetID:    e.TargetID,
		Details:     e.Details,
		TimestampUS: e.OccurredAt.UnixMicro(),
	})
	if err != nil {
		return nil, err
	}
	return crypto.Keccak256(b), nil
}

// Seal links the entry to its predecessor hash and sets Hash.
func (e *Entry) Seal(prevHash string) error {
	e.PrevHash = prevHash
	e.OccurredAt = e.OccurredAt.UTC().Truncate(time.Microsecond)
	d, err := e.Digest()
	if err != nil {
		return err
	}
	e.Hash = hexutil.Encode(d)
	return nil
}

// VerifyLink checks that the entry follows prevHash and that its own hash is intact.
func (e *Entry) VerifyLink(prevHash string) error {
	if e.PrevHash != prevHash {
		return fmt.Errorf("%w at seq %d: prev_hash mismatch", ErrBrokenChain, e.Seq)
	}
	d, err := e.Digest()
	if err != nil {
		return fmt.Errorf("%w at seq %d: %v", ErrBrokenChain, e.Seq, err)
	}
	h, err := hexutil.Decode(e.Hash)
	if err != nil || !bytes.Equal(d, h) {
		return fmt.Errorf("%w at seq %d: hash mismatch", ErrBrokenChain, e.Seq)
	}
	return nil
}
