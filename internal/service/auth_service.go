package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/expomeet/expomeet-server/internal/config"
	"github.com/expomeet/expomeet-server/internal/mail"
	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/repository"
	"github.com/expomeet/expomeet-server/internal/storage"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"

	// walk-in accounts are created at the gate and never logged into
	walkInPassword = "walkin-no-login"
)

var mobilePattern = regexp.MustCompile(`^\+\d{12}$`)

type Claims struct {
	UserID uint64 `json:"uid"`
	Role   string `json:"role"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type InvitedRegistration struct {
	Email        string
	Name         string
	Organization string
	Designation  string
	Mobile       string
	Country      string
	State        string
	City         string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, tokenString string) error
	ParseToken(ctx context.Context, tokenString string) (*Claims, error)
	Me(ctx context.Context, userID uint64) (*model.User, error)

	ValidateInvite(ctx context.Context, token string) (*model.InvitedBuyer, error)
	RegisterInvited(ctx context.Context, token string, in InvitedRegistration) (*model.PendingBuyer, error)
	RegisterWalkIn(ctx context.Context, email, name, organization, mobile string) (*model.User, *model.BuyerProfile, error)
	CreateInvite(ctx context.Context, email, name string) (*model.InvitedBuyer, error)
}

type authService struct {
	users      repository.UserRepository
	buyers     repository.BuyerProfileRepository
	sellers    repository.SellerProfileRepository
	invites    repository.InviteRepository
	revocation *storage.RevocationStore
	mailer     *mail.Mailer
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	inviteTTL  time.Duration
	now        func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	buyers repository.BuyerProfileRepository,
	sellers repository.SellerProfileRepository,
	invites repository.InviteRepository,
	revocation *storage.RevocationStore,
	mailer *mail.Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		users:      users,
		buyers:     buyers,
		sellers:    sellers,
		invites:    invites,
		revocation: revocation,
		mailer:     mailer,
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		inviteTTL:  cfg.InviteTokenTTL,
		now:        time.Now,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	role, err := model.ParseRole(in.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if role == model.RoleAdmin {
		return nil, fmt.Errorf("%w: admin accounts cannot self-register", ErrForbidden)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	if taken, err := s.users.UsernameTaken(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: username already registered", ErrConflict)
	}
	if taken, err := s.users.EmailTaken(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	switch role {
	case model.RoleBuyer:
		if err := s.buyers.Create(ctx, &model.BuyerProfile{UserID: u.ID}); err != nil {
			return nil, err
		}
	case model.RoleSeller:
		if err := s.sellers.Create(ctx, &model.SellerProfile{UserID: u.ID}); err != nil {
			return nil, err
		}
	}

	log.Printf("[auth] stage=registered user=%d role=%s", u.ID, role)
	return u, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, TokenPair, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// usernames and emails are both accepted at the login form
		u, err = s.users.FindByEmail(ctx, strings.ToLower(username))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, TokenPair{}, ErrInvalidToken
		}
		return nil, TokenPair{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, TokenPair{}, ErrInvalidToken
	}

	pair, err := s.issuePair(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	log.Printf("[auth] stage=login user=%d role=%s", u.ID, u.Role)
	return u, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	if claims.Kind != tokenKindRefresh {
		return TokenPair{}, fmt.Errorf("%w: not a refresh token", ErrInvalidToken)
	}
	if revoked, err := s.revocation.IsRevoked(ctx, claims.ID); err != nil {
		return TokenPair{}, err
	} else if revoked {
		return TokenPair{}, ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPair{}, ErrInvalidToken
		}
		return TokenPair{}, err
	}
	return s.issuePair(u)
}

func (s *authService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revocation.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}
	log.Printf("[auth] stage=logout user=%d", claims.UserID)
	return nil
}

func (s *authService) ParseToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Kind != tokenKindAccess {
		return nil, fmt.Errorf("%w: not an access token", ErrInvalidToken)
	}
	if revoked, err := s.revocation.IsRevoked(ctx, claims.ID); err != nil {
		return nil, err
	} else if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) Me(ctx context.Context, userID uint64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *authService) issuePair(u *model.User) (TokenPair, error) {
	access, err := s.sign(u, tokenKindAccess, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(u, tokenKindRefresh, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) sign(u *model.User, kind string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: u.ID,
		Role:   string(u.Role),
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) parse(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (s *authService) ValidateInvite(ctx context.Context, token string) (*model.InvitedBuyer, error) {
	inv, err := s.invites.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if inv.IsRegistered {
		return nil, ErrAlreadyUsed
	}
	if s.now().After(inv.ExpiresAt) {
		return nil, ErrTokenExpired
	}
	return inv, nil
}

func (s *authService) RegisterInvited(ctx context.Context, token string, in InvitedRegistration) (*model.PendingBuyer, error) {
	inv, err := s.ValidateInvite(ctx, token)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(in.Email, inv.Email) {
		return nil, fmt.Errorf("%w: email does not match invitation", ErrValidation)
	}
	if in.Mobile != "" && !mobilePattern.MatchString(in.Mobile) {
		return nil, fmt.Errorf("%w: mobile must be + followed by 12 digits", ErrValidation)
	}

	domains, err := s.invites.ListEnabledDomains(ctx)
	if err != nil {
		return nil, err
	}
	if len(domains) > 0 {
		at := strings.LastIndex(in.Email, "@")
		if at < 0 {
			return nil, fmt.Errorf("%w: invalid email", ErrValidation)
		}
		domain := strings.ToLower(in.Email[at+1:])
		allowed := false
		for _, d := range domains {
			if strings.EqualFold(d.Domain, domain) {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, fmt.Errorf("%w: email domain not permitted", ErrForbidden)
		}
	}

	pending := &model.PendingBuyer{
		InvitedBuyerID: inv.ID,
		Email:          strings.ToLower(in.Email),
		Name:           in.Name,
		Organization:   in.Organization,
		Designation:    in.Designation,
		Mobile:         in.Mobile,
		Country:        in.Country,
		State:          in.State,
		City:           in.City,
	}
	if err := s.invites.CreatePending(ctx, pending); err != nil {
		return nil, err
	}

	now := s.now()
	inv.IsRegistered = true
	inv.RegisteredAt = &now
	if err := s.invites.Save(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.mailer.SendRegistrationReceived(pending.Email, pending.Name); err != nil {
		log.Printf("[auth] stage=mail_fail to=%s err=%v", pending.Email, err)
	}
	log.Printf("[auth] stage=invited_registered invite=%d email=%s", inv.ID, pending.Email)
	return pending, nil
}

func (s *authService) RegisterWalkIn(ctx context.Context, email, name, organization, mobile string) (*model.User, *model.BuyerProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, fmt.Errorf("%w: valid email required", ErrValidation)
	}
	if taken, err := s.users.EmailTaken(ctx, email); err != nil {
		return nil, nil, err
	} else if taken {
		return nil, nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	username, err := s.uniqueUsername(ctx, email[:strings.Index(email, "@")])
	if err != nil {
		return nil, nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(walkInPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	u := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleBuyer,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, nil, err
	}

	catID := model.WalkInCategoryID
	p := &model.BuyerProfile{
		UserID:       u.ID,
		Name:         name,
		Organization: organization,
		Mobile:       mobile,
		CategoryID:   &catID,
	}
	if err := s.buyers.Create(ctx, p); err != nil {
		return nil, nil, err
	}

	log.Printf("[auth] stage=walkin_registered user=%d email=%s", u.ID, email)
	return u, p, nil
}

func (s *authService) CreateInvite(ctx context.Context, email, name string) (*model.InvitedBuyer, error) {
	inv := &model.InvitedBuyer{
		Email:           strings.ToLower(email),
		Name:            name,
		InvitationToken: uuid.NewString(),
		ExpiresAt:       s.now().Add(s.inviteTTL),
	}
	if err := s.invites.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *authService) uniqueUsername(ctx context.Context, base string) (string, error) {
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '.' {
			return r
		}
		return -1
	}, strings.ToLower(base))
	if base == "" {
		base = "walkin"
	}
	candidate := base
	for i := 1; ; i++ {
		taken, err := s.users.UsernameTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}
