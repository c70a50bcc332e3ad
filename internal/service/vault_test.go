package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/anikeev/vaultkeep/internal/apperrors"
	"github.com/anikeev/vaultkeep/internal/models"
	"github.com/anikeev/vaultkeep/internal/service"
)

type mockVaultRepo struct {
	ListByOwnerFunc func(ctx context.Context, ownerID string) ([]models.VaultRecord, error)
	CreateFunc      func(ctx context.Context, ownerID, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error)
	UpdateFunc      func(ctx context.Context, ownerID, id, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error)
	DeleteFunc      func(ctx context.Context, ownerID, id string) error
	SearchFunc      func(ctx context.Context, ownerID, query string) ([]models.VaultRecord, error)
}

func (m *mockVaultRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.VaultRecord, error) {
	return m.ListByOwnerFunc(ctx, ownerID)
}
func (m *mockVaultRepo) Create(ctx context.Context, ownerID, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error) {
	return m.CreateFunc(ctx, ownerID, title, encryptedPayload, iv, tags)
}
func (m *mockVaultRepo) Update(ctx context.Context, ownerID, id, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error) {
	return m.UpdateFunc(ctx, ownerID, id, title, encryptedPayload, iv, tags)
}
func (m *mockVaultRepo) Delete(ctx context.Context, ownerID, id string) error {
	return m.DeleteFunc(ctx, ownerID, id)
}
func (m *mockVaultRepo) Search(ctx context.Context, ownerID, query string) ([]models.VaultRecord, error) {
	return m.SearchFunc(ctx, ownerID, query)
}

func TestVaultService_RejectsMissingOwner(t *testing.T) {
	// The repo must never be reached without a resolved caller; nil funcs
	// panic if any delegation happens.
	svc := service.NewVaultService(&mockVaultRepo{})
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{"list", func() error { _, err := svc.List(ctx, ""); return err }},
		{"create", func() error {
			_, err := svc.Create(ctx, "", "t", "p", "iv", nil)
			return err
		}},
		{"update", func() error {
			_, err := svc.Update(ctx, "", "r1", "t", "p", "iv", nil)
			return err
		}},
		{"delete", func() error { return svc.Delete(ctx, "", "r1") }},
		{"search", func() error { _, err := svc.Search(ctx, "", "q"); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, apperrors.ErrUnauthorized) {
				t.Errorf("error = %v; want ErrUnauthorized", err)
			}
		})
	}
}

func TestVaultService_ListDelegates(t *testing.T) {
	want := []models.VaultRecord{{ID: "r1", OwnerID: "u1", Title: "bank"}}
	repo := &mockVaultRepo{
		ListByOwnerFunc: func(ctx context.Context, ownerID string) ([]models.VaultRecord, error) {
			if ownerID != "u1" {
				t.Errorf("ownerID = %q; want u1", ownerID)
			}
			return want, nil
		},
	}
	svc := service.NewVaultService(repo)

	got, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("records = %+v; want %+v", got, want)
	}
}

func TestVaultService_CreatePassesFieldsVerbatim(t *testing.T) {
	now := time.Now().UTC()
	repo := &mockVaultRepo{
		CreateFunc: func(ctx context.Context, ownerID, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error) {
			if title != "bank" || encryptedPayload != "cAfe01" || iv != "000102" {
				t.Errorf("fields not passed verbatim: %q %q %q", title, encryptedPayload, iv)
			}
			return &models.VaultRecord{
				ID: "r1", OwnerID: ownerID, Title: title,
				EncryptedPayload: encryptedPayload, IV: iv, Tags: tags,
				CreatedAt: now, UpdatedAt: now,
			}, nil
		},
	}
	svc := service.NewVaultService(repo)

	record, err := svc.Create(context.Background(), "u1", "bank", "cAfe01", "000102", []string{"finance"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.EncryptedPayload != "cAfe01" || record.IV != "000102" {
		t.Errorf("record does not echo payload/iv: %+v", record)
	}
}

func TestVaultService_SentinelsPassThrough(t *testing.T) {
	repo := &mockVaultRepo{
		UpdateFunc: func(context.Context, string, string, string, string, string, []string) (*models.VaultRecord, error) {
			return nil, apperrors.ErrNotFound
		},
		CreateFunc: func(context.Context, string, string, string, string, []string) (*models.VaultRecord, error) {
			return nil, apperrors.ErrValidation
		},
	}
	svc := service.NewVaultService(repo)

	_, err := svc.Update(context.Background(), "u1", "r1", "t", "p", "iv", nil)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("update error = %v; want ErrNotFound", err)
	}
	if errors.Is(err, apperrors.ErrStorageUnavailable) {
		t.Errorf("update error %v must not be ErrStorageUnavailable", err)
	}

	_, err = svc.Create(context.Background(), "u1", "t", "p", "iv", nil)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("create error = %v; want ErrValidation", err)
	}
}

func TestVaultService_StorageFailureTranslated(t *testing.T) {
	repo := &mockVaultRepo{
		DeleteFunc: func(context.Context, string, string) error {
			return errors.New("connection refused")
		},
	}
	svc := service.NewVaultService(repo)

	err := svc.Delete(context.Background(), "u1", "r1")
	if !errors.Is(err, apperrors.ErrStorageUnavailable) {
		t.Errorf("error = %v; want ErrStorageUnavailable", err)
	}
}

func TestVaultService_SearchDelegatesQuery(t *testing.T) {
	repo := &mockVaultRepo{
		SearchFunc: func(ctx context.Context, ownerID, query string) ([]models.VaultRecord, error) {
			if query != "BANK" {
				t.Errorf("query = %q; want BANK", query)
			}
			return []models.VaultRecord{}, nil
		},
	}
	svc := service.NewVaultService(repo)

	records, err := svc.Search(context.Background(), "u1", "BANK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %+v; want empty", records)
	}
}
