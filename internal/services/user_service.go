package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/ppob-wallet/internal/auth"
	"github.com/baharkarakas/ppob-wallet/internal/models"
	repo "github.com/baharkarakas/ppob-wallet/internal/repository"
	"github.com/baharkarakas/ppob-wallet/internal/storage"
)

// TokenIssuer is the part of the token codec login needs.
type TokenIssuer interface {
	Issue(c auth.Claims) (string, time.Time, error)
}

// ImageUpload is one profile picture as received from the client.
type ImageUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type UserService struct {
	users    repo.Users
	tokens   TokenIssuer
	images   storage.ImageStore
	maxImage int64
	log      *slog.Logger
}

func NewUserService(users repo.Users, tokens TokenIssuer, images storage.ImageStore, maxImage int64) *UserService {
	return &UserService{users: users, tokens: tokens, images: images, maxImage: maxImage, log: slog.Default()}
}

// Register stores a new user with a bcrypt hash. The unique index on email is
// the only duplicate check.
func (s *UserService) Register(ctx context.Context, email, firstName, lastName, password string) error {
	u := models.User{Email: email, FirstName: firstName, LastName: lastName}
	u.Normalize()

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash

	if _, err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// Login returns a signed token. Unknown email and wrong password fail the same
// way.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return "", ErrBadCredentials
	}
	if err != nil {
		return "", err
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		return "", ErrBadCredentials
	}

	tok, _, err := s.tokens.Issue(auth.Claims{
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ProfileImage: u.ProfileImage,
		Balance:      u.Balance,
	})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}

func (s *UserService) Profile(ctx context.Context, email string) (models.Profile, error) {
	u, err := s.users.GetByEmail(ctx, email)
	return profileOrErr(u, err)
}

func (s *UserService) UpdateProfile(ctx context.Context, email, firstName, lastName string) (models.Profile, error) {
	u, err := s.users.UpdateName(ctx, email, firstName, lastName)
	return profileOrErr(u, err)
}

// UpdateProfileImage stores the picture under a fresh name and points the user
// at its public URL.
func (s *UserService) UpdateProfileImage(ctx context.Context, email string, img ImageUpload) (models.Profile, error) {
	ext, ok := imageExt[img.ContentType]
	if !ok {
		return models.Profile{}, ErrImageFormat
	}
	if s.maxImage > 0 && img.Size > s.maxImage {
		return models.Profile{}, ErrImageTooLarge
	}

	name := uuid.NewString() + ext
	url, err := s.images.Save(ctx, name, img.Body, img.Size, img.ContentType)
	if err != nil {
		return models.Profile{}, fmt.Errorf("store image: %w", err)
	}
	u, err := s.users.UpdateImage(ctx, email, url)
	if err != nil {
		// nothing points at the object
		if derr := s.images.Delete(context.WithoutCancel(ctx), name); derr != nil {
			s.log.Warn("orphaned profile image", "name", name, "err", derr)
		}
	}
	return profileOrErr(u, err)
}

func profileOrErr(u models.User, err error) (models.Profile, error) {
	if errors.Is(err, repo.ErrNotFound) {
		return models.Profile{}, ErrUserNotFound
	}
	if err != nil {
		return models.Profile{}, err
	}
	return u.Profile(), nil
}
