package document

import (
	"errors"
	"fmt"
	"time"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrEmpty      = errors.New("no file uploaded")
	ErrTooLarge   = errors.New("file too large")
	ErrInvalidCID = errors.New("invalid content id")
)

// Documents are addressed the way IPFS addresses a single raw block: CIDv1, raw codec, sha2-256.
var prefix = cid.Prefix{
	Version:  1,
	Codec:    cid.Raw,
	MhType:   mh.SHA2_256,
	MhLength: -1,
}

func ComputeCID(data []byte) (cid.Cid, error) { return prefix.Sum(data) }

func ParseCID(s string) (cid.Cid, error) {
	c, err := cid.Decode(s)
	if err != nil {
		return cid.Undef, fmt.Errorf("%w: %v", ErrInvalidCID, err)
	}
	return c, nil
}

// Table: documents
type Document struct {
	CID         string    `gorm:"column:cid;primaryKey;size:128"`
	Name        string    `gorm:"column:name;size:255"`
	ContentType string    `gorm:"column:content_type;size:127"`
	Size        int64     `gorm:"column:size;not null"`
	Content     []byte    `gorm:"column:content;type:longblob;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Document) TableName() string { return "documents" }
