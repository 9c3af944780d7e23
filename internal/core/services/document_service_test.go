package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "affidavit.pdf", "affidavit.pdf"},
		{"spaces become underscores", "court order final.docx", "court_order_final.docx"},
		{"path elements stripped", "../../etc/passwd", "passwd"},
		{"windows path stripped", `C:\evidence\photo.jpg`, "Cevidencephoto.jpg"},
		{"unsafe characters dropped", "brief<v2>?.pdf", "briefv2.pdf"},
		{"leading dots trimmed", "..hidden.pdf", "hidden.pdf"},
		{"unicode dropped", "заявление.pdf", "pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFileName(tt.in))
		})
	}
}

func newDocumentServiceForTest(t *testing.T, docs *fakeDocumentStore, cases *fakeCaseStore) *DocumentService {
	t.Helper()
	return NewDocumentService(docs, cases, t.TempDir())
}

func TestUploadDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("the case's client attaches a file", func(t *testing.T) {
		c := activeCase()
		svc := newDocumentServiceForTest(t, newFakeDocumentStore(), newFakeCaseStore(c))

		doc, err := svc.Upload(ctx, c.ID, "agreement.pdf", "Mina Rahman", 3, models.RoleClient, strings.NewReader("agreement body"))
		require.NoError(t, err)
		assert.Equal(t, "agreement.pdf", doc.FileName)

		stored := filepath.Join(svc.baseDir, doc.FilePath)
		body, err := os.ReadFile(stored)
		require.NoError(t, err)
		assert.Equal(t, "agreement body", string(body))
	})

	t.Run("a client from another case cannot attach files", func(t *testing.T) {
		c := activeCase()
		svc := newDocumentServiceForTest(t, newFakeDocumentStore(), newFakeCaseStore(c))

		_, err := svc.Upload(ctx, c.ID, "agreement.pdf", "Someone Else", 99, models.RoleClient, strings.NewReader("x"))
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("closed case rejects uploads", func(t *testing.T) {
		c := activeCase()
		c.Status = models.CaseClosed
		svc := newDocumentServiceForTest(t, newFakeDocumentStore(), newFakeCaseStore(c))

		_, err := svc.Upload(ctx, c.ID, "agreement.pdf", "Mina Rahman", 3, models.RoleClient, strings.NewReader("x"))
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
	})
}

func TestDeleteDocument(t *testing.T) {
	ctx := context.Background()

	setup := func(c *models.Case) (*fakeDocumentStore, *DocumentService) {
		docs := newFakeDocumentStore(&models.CaseDocument{
			ID:       42,
			CaseID:   c.ID,
			FileName: "agreement.pdf",
			FilePath: filepath.Join(c.ID.String(), "ab12cd34_agreement.pdf"),
		})
		return docs, newDocumentServiceForTest(t, docs, newFakeCaseStore(c))
	}

	t.Run("the assigned lawyer removes a document", func(t *testing.T) {
		docs, svc := setup(activeCase())
		require.NoError(t, svc.Delete(ctx, 42, 7, models.RoleLawyer))
		assert.Equal(t, []uint{42}, docs.deleted)
	})

	t.Run("a lawyer from another case cannot delete", func(t *testing.T) {
		docs, svc := setup(activeCase())
		err := svc.Delete(ctx, 42, 99, models.RoleLawyer)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		assert.Empty(t, docs.deleted)
	})

	t.Run("closed case keeps its documents", func(t *testing.T) {
		c := activeCase()
		c.Status = models.CaseClosed
		docs, svc := setup(c)
		err := svc.Delete(ctx, 42, 1, models.RoleAdmin)
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.Empty(t, docs.deleted)
	})
}
