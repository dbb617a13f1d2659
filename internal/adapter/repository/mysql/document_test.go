package mysql

import (
	"bytes"
	"context"
	"errors"
	"testing"

	docDomain "contract-approval/internal/domain/document"

	"gorm.io/gorm"
)

func TestDocumentRepository_ContentAddressed(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewDocumentRepository(db)

	data := []byte("%PDF-1.4 contract body")
	c, err := docDomain.ComputeCID(data)
	if err != nil {
		t.Fatalf("ComputeCID: %v", err)
	}
	doc := &docDomain.Document{CID: c.String(), Name: "a.pdf", ContentType: "application/pdf", Size: int64(len(data)), Content: data}
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// same bytes again is a no-op
	again := &docDomain.Document{CID: c.String(), Name: "b.pdf", ContentType: "application/pdf", Size: int64(len(data)), Content: data}
	if err := repo.Create(ctx, again); err != nil {
		t.Fatalf("second Create: %v", err)
	}

	got, err := repo.GetByCID(ctx, c.String())
	if err != nil {
		t.Fatalf("GetByCID: %v", err)
	}
	if got.Name != "a.pdf" || !bytes.Equal(got.Content, data) {
		t.Fatalf("stored document mismatch: %+v", got)
	}
	if _, err := repo.GetByCID(ctx, "bafkreiunknown"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
