package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/snackswap/snackswap/internal/common"
	"github.com/snackswap/snackswap/internal/server/config"
	"github.com/snackswap/snackswap/internal/server/models"
	"github.com/snackswap/snackswap/internal/server/repositories/foods"
	"github.com/snackswap/snackswap/internal/server/repositories/repomanager"
	"github.com/snackswap/snackswap/internal/validate"
)

type FoodService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewFoodService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *FoodService {
	return &FoodService{db: db, repomanager: m, config: cfg}
}

// GetRandomStorageKey returns a date-partitioned object key for an upload.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("foods/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *FoodService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return s3.NewPresignClient(client), nil
}

// GetPresignedPutURL returns an object key and a 15-minute presigned PUT URL
// the client uploads the listing photo to.
func (s *FoodService) GetPresignedPutURL(ctx context.Context) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PublicURL maps an uploaded object key to the address the catalog serves.
func (s *FoodService) PublicURL(key string) string {
	return strings.TrimRight(s.config.S3PublicBaseURL, "/") + "/" + key
}

// Create validates and inserts a listing owned by userID. An uploaded image
// key, when present, is resolved to its public URL.
func (s *FoodService) Create(ctx context.Context, userID string, food *models.Food, imageKey string) (*models.Food, error) {
	if food.FoodName == "" || food.Quantity == "" || food.PickupLocation == "" {
		return nil, fmt.Errorf("%w: name, quantity and pickup location are required", common.ErrInternal)
	}
	if !validate.FoodCategory(food.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", common.ErrInternal, food.Category)
	}

	food.UserID = userID
	if imageKey != "" {
		url := s.PublicURL(imageKey)
		food.ImageURL = &url
	}

	return s.repomanager.Foods(s.db).Create(ctx, food)
}

// List returns the catalog: available listings newest first, optionally
// filtered by search text and category.
func (s *FoodService) List(ctx context.Context, search string, category string) ([]*models.FoodWithOwner, error) {
	return s.repomanager.Foods(s.db).ListAvailable(ctx, foods.Filter{
		Search:   search,
		Category: category,
	})
}

// Get returns one listing.
func (s *FoodService) Get(ctx context.Context, id string) (*models.Food, error) {
	return s.repomanager.Foods(s.db).GetByID(ctx, id)
}

// Update applies edits to a listing after checking ownership.
func (s *FoodService) Update(ctx context.Context, userID string, id string, upd models.FoodUpdate) error {
	if upd.Category != "" && !validate.FoodCategory(upd.Category) {
		return fmt.Errorf("%w: unknown category %q", common.ErrInternal, upd.Category)
	}

	repo := s.repomanager.Foods(s.db)

	food, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if food.UserID != userID {
		return common.ErrNotOwner
	}

	return repo.Update(ctx, id, upd)
}

// Delete removes a listing after checking ownership.
func (s *FoodService) Delete(ctx context.Context, userID string, id string) error {
	repo := s.repomanager.Foods(s.db)

	food, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if food.UserID != userID {
		return common.ErrNotOwner
	}

	return repo.Delete(ctx, id)
}
