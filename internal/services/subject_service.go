package services

import (
	"context"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/subjects"
)

// SubjectService handles subject registry business logic
type SubjectService struct {
	logger *logging.Logger
	store  subjects.Store
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(logger *logging.Logger, store subjects.Store) *SubjectService {
	return &SubjectService{logger: logger, store: store}
}

// Get fetches one subject by ID
func (s *SubjectService) Get(ctx context.Context, subjectID int) (*models.Subject, error) {
	if subjectID < 1 {
		return nil, NewServiceError("INVALID_SUBJECT_ID", "subject_id must be a positive integer")
	}
	subject, err := s.store.Get(ctx, subjectID)
	if err == subjects.ErrNotFound {
		return nil, NewServiceErrorWithDetails("SUBJECT_NOT_FOUND", "Subject not found",
			map[string]interface{}{"subject_id": subjectID})
	}
	if err != nil {
		return nil, NewServiceErrorWithDetails("STORE_FAILED", "Failed to fetch subject",
			map[string]interface{}{"error": err.Error()})
	}
	return subject, nil
}

// List returns registered subjects with paging
func (s *SubjectService) List(ctx context.Context, limit, offset int) (*models.SubjectListResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	list, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, NewServiceErrorWithDetails("STORE_FAILED", "Failed to list subjects",
			map[string]interface{}{"error": err.Error()})
	}
	return &models.SubjectListResponse{Subjects: list, Count: len(list)}, nil
}

// Create registers a new subject
func (s *SubjectService) Create(ctx context.Context, req *models.CreateSubjectRequest) (*models.Subject, error) {
	if req.Name == "" {
		return nil, NewServiceError("INVALID_REQUEST", "name is required")
	}
	dob, err := req.ParseDateOfBirth()
	if err != nil {
		return nil, NewServiceError("INVALID_REQUEST", "date_of_birth must be YYYY-MM-DD")
	}

	subject := &models.Subject{
		Name:        req.Name,
		DateOfBirth: dob,
		Gender:      req.Gender,
		Address:     req.Address,
	}
	created, err := s.store.Create(ctx, subject)
	if err != nil {
		return nil, NewServiceErrorWithDetails("STORE_FAILED", "Failed to create subject",
			map[string]interface{}{"error": err.Error()})
	}

	s.logger.Info("Subject created", "subject_id", created.SubjectID)
	return created, nil
}
