package services

import (
	"errors"
	"strings"
	"testing"

	"adhub-backend/internal/models"
	"adhub-backend/internal/testutil"

	"gorm.io/gorm"
)

func TestAccountCode(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"Supermercado Lopes", "7", "SPRM#7"},
		{"Academia Fit", "12", "ACDM#12"},
		{"Yo", "3", "YOXX#3"},
		{"A B C", "1", "ABCX#1"},
		{"", "9", "XXXX#9"},
		{"Água Azul", "4", "ÁGZL#4"},
		{"Ótica São João", "21", "ÓTCS#21"},
	}

	for _, tt := range tests {
		if got := AccountCode(tt.name, tt.id); got != tt.want {
			t.Errorf("AccountCode(%q, %q) = %q, want %q", tt.name, tt.id, got, tt.want)
		}
	}
}

func TestObjectiveAndTypeCodes(t *testing.T) {
	if got := ObjectiveCode("Vendas"); got != "CONV" {
		t.Errorf("ObjectiveCode(Vendas) = %q", got)
	}
	if got := ObjectiveCode("Tráfego na loja"); got != "STOR" {
		t.Errorf("ObjectiveCode(Tráfego na loja) = %q", got)
	}
	if got := ObjectiveCode("Conversions"); got != "CONV" {
		t.Errorf("ObjectiveCode(Conversions) = %q", got)
	}
	if got := ObjectiveCode("Something Else"); got != "UNKN" {
		t.Errorf("unmapped objective = %q, want UNKN", got)
	}
	if got := TypeCode("carousel"); got != "CARR" {
		t.Errorf("TypeCode(carousel) = %q", got)
	}
	if got := TypeCode("banner"); got != "UNKN" {
		t.Errorf("unmapped type = %q, want UNKN", got)
	}
}

func TestSubmitDraftStampsCode(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewCreativeService(db)
	user := testutil.CreateTestUser(t, db, "user@example.com", "user")
	account := testutil.CreateTestAccount(t, db, "Supermercado Lopes", user.Email)

	draft, err := svc.CreateDraft(user.ID, &models.DraftCreateRequest{
		AccountID: account.ID,
		Name:      "Campanha de Natal",
		Type:      "carousel",
		Objective: "Conversions",
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if draft.Status != models.DraftStatusDraft {
		t.Fatalf("new draft status = %q", draft.Status)
	}
	if draft.Code != "" {
		t.Fatal("code should only be stamped at submission")
	}

	submitted, err := svc.SubmitDraft(draft.ID, user.ID)
	if err != nil {
		t.Fatalf("SubmitDraft: %v", err)
	}

	var stored models.CreativeDraft
	if err := db.First(&stored, submitted.ID).Error; err != nil {
		t.Fatalf("reload draft: %v", err)
	}
	if stored.Status != models.DraftStatusSubmitted {
		t.Errorf("status = %q, want submitted", stored.Status)
	}
	if !strings.HasPrefix(stored.Code, "JS-001-CONV-CARR-SPRM#") {
		t.Errorf("code = %q", stored.Code)
	}

	// second submission for the same account gets the next number
	second, err := svc.CreateDraft(user.ID, &models.DraftCreateRequest{
		AccountID: account.ID,
		Name:      "Campanha de Verão",
		Type:      "single",
		Objective: "Traffic",
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if _, err := svc.SubmitDraft(second.ID, user.ID); err != nil {
		t.Fatalf("SubmitDraft: %v", err)
	}
	stored = models.CreativeDraft{}
	if err := db.First(&stored, second.ID).Error; err != nil {
		t.Fatalf("reload draft: %v", err)
	}
	if !strings.HasPrefix(stored.Code, "JS-002-TRAF-SING-") {
		t.Errorf("second code = %q", stored.Code)
	}
}

func TestSubmittedDraftIsImmutable(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewCreativeService(db)
	user := testutil.CreateTestUser(t, db, "user@example.com", "user")
	account := testutil.CreateTestAccount(t, db, "Academia Fit", user.Email)

	draft, err := svc.CreateDraft(user.ID, &models.DraftCreateRequest{
		AccountID: account.ID,
		Name:      "Institucional",
		Objective: "Brand Awareness",
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if _, err := svc.SubmitDraft(draft.ID, user.ID); err != nil {
		t.Fatalf("SubmitDraft: %v", err)
	}

	if _, err := svc.SubmitDraft(draft.ID, user.ID); err == nil {
		t.Error("double submit should fail")
	}

	if _, err := svc.UpdateDraft(draft.ID, user.ID, &models.DraftUpdateRequest{Name: "Renamed"}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("update after submit: err = %v, want record not found", err)
	}

	if err := svc.DeleteDraft(draft.ID, user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("delete after submit: err = %v, want record not found", err)
	}
}

func TestDraftOwnershipScoping(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewCreativeService(db)
	owner := testutil.CreateTestUser(t, db, "owner@example.com", "user")
	other := testutil.CreateTestUser(t, db, "other@example.com", "user")
	account := testutil.CreateTestAccount(t, db, "Academia Fit", owner.Email)

	draft, err := svc.CreateDraft(owner.ID, &models.DraftCreateRequest{
		AccountID: account.ID,
		Name:      "Institucional",
		Objective: "Traffic",
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}

	if _, err := svc.GetDraft(draft.ID, other.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("foreign draft read: err = %v, want record not found", err)
	}

	summaries, pagination, err := svc.GetDrafts(owner.ID, &models.DraftListRequest{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("GetDrafts: %v", err)
	}
	if len(summaries) != 1 || pagination.Total != 1 {
		t.Errorf("owner should see exactly one draft, got %d", len(summaries))
	}

	summaries, _, err = svc.GetDrafts(other.ID, &models.DraftListRequest{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("GetDrafts: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("other user should see no drafts, got %d", len(summaries))
	}
}
