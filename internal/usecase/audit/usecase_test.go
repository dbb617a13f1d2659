package audit

import (
	"context"
	"strings"
	"testing"
	"time"

	"contract-approval/internal/adapter/repository/mysql"
	domain "contract-approval/internal/domain/audit"
	"contract-approval/internal/domain/uow"
	"contract-approval/internal/testutil/sqlitedb"

	"gorm.io/gorm"
)

func appendN(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	ctx := context.Background()
	rc := NewRecorder()
	guow := mysql.NewGormUoW(db)
	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		err := guow.WithinTx(ctx, func(r uow.Repos) error {
			_, err := rc.Append(ctx, r, Event{
				Identity: "0x1111111111111111111111111111111111111111",
				Role:     "approver",
				Action:   domain.ActionContractApproved,
				TargetID: uint64(i%3 + 1),
				Details:  "approval",
				At:       base.Add(time.Duration(i) * time.Second),
			})
			return err
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
}

func TestRecorder_ChainsFromGenesis(t *testing.T) {
	db := sqlitedb.Open(t)
	appendN(t, db, 3)

	rows, err := mysql.NewAuditRepository(db).ListAscending(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("ListAscending: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].PrevHash != domain.GenesisHash {
		t.Fatalf("first prev hash = %s, want genesis", rows[0].PrevHash)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].PrevHash != rows[i-1].Hash {
			t.Fatalf("entry %d not chained to %d", rows[i].Seq, rows[i-1].Seq)
		}
	}
	for i, r := range rows {
		if r.Seq != uint64(i+1) {
			t.Fatalf("row %d seq = %d", i, r.Seq)
		}
	}
}

func TestListRecent_Paging(t *testing.T) {
	db := sqlitedb.Open(t)
	appendN(t, db, 5)
	uc := NewUsecase(mysql.NewAuditRepository(db), nil)
	ctx := context.Background()

	page, err := uc.ListRecent(ctx, 0, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(page.Entries) != 2 || page.Entries[0].Seq != 5 || page.NextBefore != 4 {
		t.Fatalf("first page = %+v", page)
	}

	page, err = uc.ListRecent(ctx, page.NextBefore, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(page.Entries) == 0 || page.Entries[0].Seq != 3 {
		t.Fatalf("second page = %+v", page)
	}

	page, err = uc.ListRecent(ctx, 2, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(page.Entries) != 1 || page.NextBefore != 0 {
		t.Fatalf("last page = %+v", page)
	}

	byTarget, err := uc.ListByTarget(ctx, 1, 0)
	if err != nil {
		t.Fatalf("ListByTarget: %v", err)
	}
	if len(byTarget) != 2 {
		t.Fatalf("target 1 entries = %d, want 2", len(byTarget))
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultLimit},
		{-3, DefaultLimit},
		{MaxLimit + 1, MaxLimit},
		{7, 7},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Fatalf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestVerify(t *testing.T) {
	db := sqlitedb.Open(t)
	appendN(t, db, 4)
	uc := NewUsecase(mysql.NewAuditRepository(db), nil)
	ctx := context.Background()

	res, err := uc.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !res.Valid || res.Checked != 4 {
		t.Fatalf("intact chain = %+v", res)
	}

	// tamper with entry 3's details behind the recorder's back
	if err := db.Model(&domain.Entry{}).Where("seq = ?", 3).Update("details", "forged").Error; err != nil {
		t.Fatalf("tamper: %v", err)
	}
	res, err = uc.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res.Valid || res.BrokenAt != 3 || res.Checked != 2 {
		t.Fatalf("tampered chain = %+v", res)
	}
}

func TestVerify_DetectsGap(t *testing.T) {
	db := sqlitedb.Open(t)
	appendN(t, db, 3)
	if err := db.Where("seq = ?", 2).Delete(&domain.Entry{}).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}

	res, err := NewUsecase(mysql.NewAuditRepository(db), nil).Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res.Valid || res.BrokenAt != 2 || !strings.Contains(res.Reason, "missing entry 2") {
		t.Fatalf("gap = %+v", res)
	}
}

func TestVerify_EmptyTrail(t *testing.T) {
	db := sqlitedb.Open(t)
	res, err := NewUsecase(mysql.NewAuditRepository(db), nil).Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !res.Valid || res.Checked != 0 {
		t.Fatalf("empty trail = %+v", res)
	}
}
