package registration

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/gucci1909/regis/internal/intake"
	"github.com/gucci1909/regis/pkg/apperr"
	"github.com/gucci1909/regis/pkg/storage"
)

// Fields the processor never persists: the credential is stored as a hash
// instead, the confirmation and bank-name fields are dropped outright.
const (
	fieldPassword        = "password"
	fieldConfirmPassword = "confirmPassword"
	fieldNewBankName     = "newBankName"
)

var validate = validator.New()

type RegisterRequest struct {
	// Fields holds every submitted multipart value field verbatim.
	Fields map[string]string
	// Files maps each document slot to its staged file, nil when the slot
	// had no attached file.
	Files map[string]*intake.StagedFile
}

type Service interface {
	Register(ctx context.Context, category Category, req RegisterRequest) (string, error)
	ListPending(ctx context.Context, category Category) ([]bson.M, error)
	ChangeStatus(ctx context.Context, category Category, id, status string) error
}

type service struct {
	repo    Repository
	storage storage.ObjectStorage
	logger  *zap.Logger
}

func NewService(repo Repository, store storage.ObjectStorage, logger *zap.Logger) Service {
	return &service{repo: repo, storage: store, logger: logger}
}

func (s *service) Register(ctx context.Context, category Category, req RegisterRequest) (string, error) {
	for _, field := range category.RequiredFields {
		if strings.TrimSpace(req.Fields[field]) == "" {
			return "", apperr.New(apperr.Validation, "Missing required fields")
		}
	}

	if err := validate.Var(req.Fields["email"], "required,email"); err != nil {
		return "", apperr.New(apperr.Validation, "Invalid email format")
	}

	urls, err := s.uploadDocuments(ctx, category, req.Files)
	if err != nil {
		return "", err
	}

	doc := bson.M{}
	for key, value := range req.Fields {
		switch key {
		case fieldPassword, fieldConfirmPassword, fieldNewBankName:
			continue
		}
		doc[key] = value
	}

	if password := req.Fields[fieldPassword]; password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", apperr.Wrap(apperr.Internal, "failed to hash password", err)
		}
		doc[fieldPassword] = string(hash)
	}

	for _, slot := range category.DocumentSlots {
		if url, ok := urls[slot]; ok {
			doc[slot] = url
		} else {
			doc[slot] = nil
		}
	}

	now := time.Now().UTC()
	doc["status"] = StatusPending
	doc["createdAt"] = now
	doc["updatedAt"] = now

	id, err := s.repo.Insert(ctx, category, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperr.New(apperr.Conflict, "Already registered")
		}
		return "", apperr.Wrap(apperr.Internal, "failed to persist registration", err)
	}

	s.logger.Info("registration submitted",
		zap.String("category", category.Slug),
		zap.String("id", id.Hex()),
	)

	return id.Hex(), nil
}

// uploadDocuments pushes every attached slot to object storage concurrently.
// Slots without a file never touch the gateway. If any upload fails, the
// siblings are allowed to settle and every object that did make it is
// deleted best-effort before the error is returned.
func (s *service) uploadDocuments(ctx context.Context, category Category, files map[string]*intake.StagedFile) (map[string]string, error) {
	type result struct {
		slot string
		url  string
	}
	results := make([]result, len(category.DocumentSlots))

	var g errgroup.Group
	for i, slot := range category.DocumentSlots {
		staged := files[slot]
		if staged == nil {
			continue
		}
		i, slot, path := i, slot, staged.Path
		g.Go(func() error {
			url, err := s.storage.Upload(ctx, path)
			if err != nil {
				return err
			}
			results[i] = result{slot: slot, url: url}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, r := range results {
			if r.url == "" {
				continue
			}
			if delErr := s.storage.Delete(ctx, r.url); delErr != nil {
				s.logger.Warn("failed to delete orphaned upload",
					zap.String("url", r.url), zap.Error(delErr))
			}
		}
		return nil, apperr.Wrap(apperr.Upload, "Failed to upload file", err)
	}

	urls := make(map[string]string, len(category.DocumentSlots))
	for _, r := range results {
		if r.url != "" {
			urls[r.slot] = r.url
		}
	}
	return urls, nil
}

func (s *service) ListPending(ctx context.Context, category Category) ([]bson.M, error) {
	records, err := s.repo.ListPending(ctx, category)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list pending registrations", err)
	}
	return records, nil
}

func (s *service) ChangeStatus(ctx context.Context, category Category, id, status string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "Invalid identifier")
	}

	newStatus, err := ParseStatus(status)
	if err != nil {
		return apperr.New(apperr.Validation, "Invalid register status")
	}

	modified, err := s.repo.UpdateStatus(ctx, category, objectID, newStatus, time.Now().UTC())
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update registration status", err)
	}
	if modified == 0 {
		return apperr.New(apperr.NotFound, "Not found or already processed")
	}

	s.logger.Info("registration status changed",
		zap.String("category", category.Slug),
		zap.String("id", id),
		zap.String("status", string(newStatus)),
	)
	return nil
}
