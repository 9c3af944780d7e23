package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/adapters/persistence/repositories"
	"lexcase/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentService stores case documents on local disk and tracks them
// in the database
type DocumentService struct {
	documentRepo repositories.DocumentStore
	caseRepo     repositories.CaseStore
	baseDir      string
}

// NewDocumentService creates a new document service
func NewDocumentService(documentRepo repositories.DocumentStore, caseRepo repositories.CaseStore, baseDir string) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		caseRepo:     caseRepo,
		baseDir:      baseDir,
	}
}

// Upload stores a document for an open case. Only the case's parties
// and admins may attach files.
func (s *DocumentService) Upload(ctx context.Context, caseID uuid.UUID, fileName, uploadedBy string, actorID uint, role string, content io.Reader) (*models.CaseDocument, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := authorizeCaseAccess(c, actorID, role); err != nil {
		return nil, err
	}
	if c.Status == models.CaseClosed {
		return nil, domain.RuleErrorf("the case is closed, documents can no longer be added")
	}

	safeName := sanitizeFileName(fileName)
	if safeName == "" {
		return nil, fmt.Errorf("%w: empty file name", domain.ErrInvalidInput)
	}

	caseDir := filepath.Join(s.baseDir, caseID.String())
	if err := os.MkdirAll(caseDir, 0o755); err != nil {
		return nil, err
	}

	storedName := uuid.New().String()[:8] + "_" + safeName
	fullPath := filepath.Join(caseDir, storedName)

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		os.Remove(fullPath)
		return nil, err
	}

	doc := &models.CaseDocument{
		CaseID:     caseID,
		FileName:   safeName,
		FilePath:   filepath.Join(caseID.String(), storedName),
		UploadedBy: uploadedBy,
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		os.Remove(fullPath)
		return nil, err
	}
	return doc, nil
}

// ListByCase lists the documents of a case visible to the acting user
func (s *DocumentService) ListByCase(ctx context.Context, caseID uuid.UUID, actorID uint, role string) ([]*models.CaseDocument, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := authorizeCaseAccess(c, actorID, role); err != nil {
		return nil, err
	}
	return s.documentRepo.ListByCase(ctx, caseID)
}

// Resolve returns the document record and its absolute path for
// download, after an access check against the owning case
func (s *DocumentService) Resolve(ctx context.Context, documentID uint, actorID uint, role string) (*models.CaseDocument, string, error) {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", err
	}

	c, err := s.caseRepo.GetByID(ctx, doc.CaseID)
	if err != nil {
		return nil, "", err
	}
	if err := authorizeCaseAccess(c, actorID, role); err != nil {
		return nil, "", err
	}

	fullPath := filepath.Join(s.baseDir, doc.FilePath)
	if _, err := os.Stat(fullPath); err != nil {
		return nil, "", domain.ErrNotFound
	}
	return doc, fullPath, nil
}

// Delete removes a document from an open case, restricted to admins
// and the case's own lawyer
func (s *DocumentService) Delete(ctx context.Context, documentID uint, actorID uint, role string) error {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	c, err := s.caseRepo.GetByID(ctx, doc.CaseID)
	if err != nil {
		return err
	}
	if err := authorizeCaseAccess(c, actorID, role); err != nil {
		return err
	}
	if c.Status == models.CaseClosed {
		return domain.RuleErrorf("the case is closed, documents can no longer be changed")
	}

	if err := s.documentRepo.Delete(ctx, documentID); err != nil {
		return err
	}
	os.Remove(filepath.Join(s.baseDir, doc.FilePath))
	return nil
}

// sanitizeFileName strips path elements and unsafe characters from an
// uploaded file name
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, name)
	return strings.Trim(name, "._")
}
