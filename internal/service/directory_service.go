package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/repository"
)

type directoryService struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewDirectoryService(repo repository.Repository, logger *zap.Logger) DirectoryService {
	return &directoryService{
		repo:   repo,
		logger: logger,
	}
}

func (s *directoryService) CreateContact(contact *models.Contact) (*models.Contact, error) {
	if strings.TrimSpace(contact.Phone) == "" {
		return nil, fmt.Errorf("%w: contact phone is required", ErrValidation)
	}

	id, err := s.repo.Contact().Create(contact)
	if err != nil {
		return nil, err
	}

	return s.repo.Contact().GetByID(contact.TenantID, id)
}

func (s *directoryService) ListContacts(tenantID int64, page, limit int) ([]*models.Contact, int64, error) {
	offset := (page - 1) * limit

	contacts, err := s.repo.Contact().List(tenantID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Contact().CountByTenant(tenantID)
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

func (s *directoryService) CreateTemplate(template *models.Template) (*models.Template, error) {
	if strings.TrimSpace(template.Name) == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrValidation)
	}
	if strings.TrimSpace(template.Body) == "" {
		return nil, fmt.Errorf("%w: template body is required", ErrValidation)
	}

	id, err := s.repo.Template().Create(template)
	if err != nil {
		return nil, err
	}

	return s.repo.Template().GetByID(template.TenantID, id)
}

func (s *directoryService) ListTemplates(tenantID int64, page, limit int) ([]*models.Template, int64, error) {
	offset := (page - 1) * limit

	templates, err := s.repo.Template().List(tenantID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Template().CountByTenant(tenantID)
	if err != nil {
		return nil, 0, err
	}

	return templates, total, nil
}

func (s *directoryService) ListMessageLog(tenantID int64, page, limit int) ([]*models.MessageLogEntry, int64, error) {
	offset := (page - 1) * limit

	entries, err := s.repo.MessageLog().ListByTenant(tenantID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.MessageLog().CountByTenant(tenantID)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
