package usecase

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	domainErrors "github.com/lavauto/lavauto-server/internal/domain/errors"
	"github.com/lavauto/lavauto-server/internal/domain/model"
	"github.com/lavauto/lavauto-server/internal/domain/repository"
)

var siretRegex = regexp.MustCompile(`^[0-9]{14}$`)

// Identity is the authenticated external identity onboarding a profile.
type Identity struct {
	SupabaseUserID string
	Email          string
}

// CreateProfileInput is the onboarding form.
type CreateProfileInput struct {
	Role        string
	FirstName   string
	LastName    string
	Phone       string
	Siret       string
	CompanyName string
	AvatarURL   string
}

// OnboardingService creates the local User+Profile pair on first login.
type OnboardingService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(users repository.UserRepository, logger *zap.Logger) *OnboardingService {
	return &OnboardingService{users: users, logger: logger}
}

// CreateProfile validates the selected role, requires a 14-digit SIRET
// for washers, and creates User and Profile in one step. Clients are
// validated immediately; washers wait for manual review.
func (s *OnboardingService) CreateProfile(ctx context.Context, identity Identity, in CreateProfileInput) (*model.User, error) {
	role := model.UserRole(strings.ToUpper(strings.TrimSpace(in.Role)))
	if !role.IsValid() {
		return nil, domainErrors.ErrInvalidRole
	}

	siret := strings.TrimSpace(in.Siret)
	if role == model.RoleLaveur {
		if !siretRegex.MatchString(siret) {
			return nil, domainErrors.ErrInvalidSiret
		}
	}

	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		// Match the original onboarding fallback: derive a display
		// name from the email's local part.
		firstName = strings.SplitN(identity.Email, "@", 2)[0]
	}

	user := &model.User{
		SupabaseUserID: identity.SupabaseUserID,
		Email:          identity.Email,
		FirstName:      firstName,
		LastName:       strings.TrimSpace(in.LastName),
		Phone:          strings.TrimSpace(in.Phone),
		Role:           role,
	}

	profile := &model.Profile{
		Status: model.ProfileStatusValidated,
	}
	if role == model.RoleLaveur {
		profile.Status = model.ProfileStatusValidationPending
		profile.Siret = &siret
		if company := strings.TrimSpace(in.CompanyName); company != "" {
			profile.CompanyName = &company
		}
	}
	if avatar := strings.TrimSpace(in.AvatarURL); avatar != "" {
		profile.AvatarURL = &avatar
	}

	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, err
	}

	s.logger.Info("Profile created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)))

	return user, nil
}
