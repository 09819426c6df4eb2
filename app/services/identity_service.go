package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mahbubzaman/gobazaar/app/models"
	"github.com/mahbubzaman/gobazaar/app/repositories"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Identity is the verified claim set from the external identity provider.
type Identity struct {
	UID   string
	Email string
	Name  string
	Photo string
}

type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// GoogleTokenVerifier validates Google-issued ID tokens against the
// configured OAuth client id.
type GoogleTokenVerifier struct {
	Audience string
}

func NewGoogleTokenVerifier(audience string) *GoogleTokenVerifier {
	return &GoogleTokenVerifier{Audience: audience}
}

func (v *GoogleTokenVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.Audience)
	if err != nil {
		return nil, fmt.Errorf("invalid identity token: %w", err)
	}

	identity := &Identity{UID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		identity.Photo = picture
	}

	return identity, nil
}

type IdentityService struct {
	userRepo repositories.UserRepositoryImpl
	verifier TokenVerifier
}

func NewIdentityService(userRepo repositories.UserRepositoryImpl, verifier TokenVerifier) *IdentityService {
	return &IdentityService{
		userRepo: userRepo,
		verifier: verifier,
	}
}

// SignIn verifies the identity token and upserts the local profile keyed by
// the provider's stable uid: created on first sight, profile fields refreshed
// after. The upsert is idempotent.
func (s *IdentityService) SignIn(ctx context.Context, rawToken string) (*models.User, error) {
	identity, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByProviderUID(ctx, identity.UID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &models.User{
			ProviderUID: identity.UID,
			Email:       identity.Email,
			Name:        identity.Name,
			Photo:       identity.Photo,
			Role:        models.RoleCustomer,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create profile for %s: %w", identity.UID, err)
		}
		log.Printf("IdentityService.SignIn: created profile %s for provider uid %s", user.ID, identity.UID)
		return user, nil
	}

	user.Email = identity.Email
	user.Name = identity.Name
	user.Photo = identity.Photo
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to refresh profile %s: %w", user.ID, err)
	}

	return user, nil
}

// AdminLogin authenticates the back-office credential pair.
func (s *IdentityService) AdminLogin(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != models.RoleAdmin || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
