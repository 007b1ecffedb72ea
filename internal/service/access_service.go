package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/repository"
	"gorm.io/gorm"
)

var attendeeSlugPattern = regexp.MustCompile(`^S(\d{1,3})SA(\d{1,2})$`)

// AccessSlug is a decoded badge identifier.
type AccessSlug struct {
	Kind            model.ScanType
	UserID          uint64
	SellerProfileID uint64
	AttendeeNumber  int
	Bare            bool // numeric badge without a role prefix
}

// ParseAccessSlug decodes the badge id printed on event passes:
// B<user id> for buyers, S<user id> for sellers, S<seller>SA<n> for
// additional seller attendees, or a bare numeric user id.
func ParseAccessSlug(slug string) (AccessSlug, error) {
	if m := attendeeSlugPattern.FindStringSubmatch(slug); m != nil {
		sellerProfileID, _ := strconv.ParseUint(m[1], 10, 64)
		attendeeNumber, _ := strconv.Atoi(m[2])
		return AccessSlug{
			Kind:            model.ScanTypeSellerAttendee,
			SellerProfileID: sellerProfileID,
			AttendeeNumber:  attendeeNumber,
		}, nil
	}

	if len(slug) > 1 && (slug[0] == 'B' || slug[0] == 'S') {
		id, err := strconv.ParseUint(slug[1:], 10, 64)
		if err != nil {
			return AccessSlug{}, fmt.Errorf("%w: malformed badge id %q", ErrValidation, slug)
		}
		kind := model.ScanTypeBuyer
		if slug[0] == 'S' {
			kind = model.ScanTypeSeller
		}
		return AccessSlug{Kind: kind, UserID: id}, nil
	}

	id, err := strconv.ParseUint(slug, 10, 64)
	if err != nil {
		return AccessSlug{}, fmt.Errorf("%w: malformed badge id %q", ErrValidation, slug)
	}
	return AccessSlug{UserID: id, Bare: true}, nil
}

// AccessInfo is what the gate scanner displays after a successful scan.
type AccessInfo struct {
	ScanType     model.ScanType `json:"scan_type"`
	UserID       *uint64        `json:"user_id,omitempty"`
	Name         string         `json:"name"`
	Organization string         `json:"organization,omitempty"`
	Designation  string         `json:"designation,omitempty"`
	Category     string         `json:"category,omitempty"`
	WalkIn       bool           `json:"walk_in"`
}

type AccessService interface {
	CheckAccess(ctx context.Context, slug string) (*AccessInfo, error)
	ListLogs(ctx context.Context, limit, offset int) ([]model.AccessLog, int64, error)
}

type accessService struct {
	users   repository.UserRepository
	buyers  repository.BuyerProfileRepository
	sellers repository.SellerProfileRepository
	logs    repository.AccessLogRepository
	now     func() time.Time
}

func NewAccessService(
	users repository.UserRepository,
	buyers repository.BuyerProfileRepository,
	sellers repository.SellerProfileRepository,
	logs repository.AccessLogRepository,
) AccessService {
	return &accessService{users: users, buyers: buyers, sellers: sellers, logs: logs, now: time.Now}
}

func (s *accessService) CheckAccess(ctx context.Context, slug string) (*AccessInfo, error) {
	parsed, err := ParseAccessSlug(slug)
	if err != nil {
		return nil, err
	}

	var info *AccessInfo
	switch parsed.Kind {
	case model.ScanTypeSellerAttendee:
		info, err = s.resolveAttendee(ctx, parsed)
	case model.ScanTypeBuyer:
		info, err = s.resolveBuyer(ctx, parsed.UserID)
	case model.ScanTypeSeller:
		info, err = s.resolveSeller(ctx, parsed.UserID)
	default:
		info, err = s.resolveBare(ctx, parsed.UserID)
	}
	if err != nil {
		return nil, err
	}

	// logging the scan must never fail the gate check
	if err := s.logs.Create(ctx, &model.AccessLog{
		ScannedID:    slug,
		ScanType:     info.ScanType,
		UserID:       info.UserID,
		ScanDatetime: s.now(),
	}); err != nil {
		log.Printf("[access] stage=log_fail slug=%s err=%v", slug, err)
	}
	return info, nil
}

func (s *accessService) resolveBuyer(ctx context.Context, userID uint64) (*AccessInfo, error) {
	p, err := s.buyers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	info := &AccessInfo{
		ScanType:     model.ScanTypeBuyer,
		UserID:       &p.UserID,
		Name:         p.Name,
		Organization: p.Organization,
		Designation:  p.Designation,
		WalkIn:       p.CategoryID != nil && *p.CategoryID == model.WalkInCategoryID,
	}
	if p.Category != nil {
		info.Category = p.Category.Name
	}
	return info, nil
}

func (s *accessService) resolveSeller(ctx context.Context, userID uint64) (*AccessInfo, error) {
	p, err := s.sellers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &AccessInfo{
		ScanType:     model.ScanTypeSeller,
		UserID:       &p.UserID,
		Name:         p.ContactName,
		Organization: p.BusinessName,
	}, nil
}

func (s *accessService) resolveAttendee(ctx context.Context, parsed AccessSlug) (*AccessInfo, error) {
	a, err := s.sellers.FindAttendee(ctx, parsed.SellerProfileID, parsed.AttendeeNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	sp, err := s.sellers.FindByID(ctx, parsed.SellerProfileID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	info := &AccessInfo{
		ScanType:    model.ScanTypeSellerAttendee,
		Name:        a.Name,
		Designation: a.Designation,
	}
	if sp != nil {
		info.Organization = sp.BusinessName
	}
	return info, nil
}

func (s *accessService) resolveBare(ctx context.Context, userID uint64) (*AccessInfo, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	switch u.Role {
	case model.RoleSeller:
		return s.resolveSeller(ctx, userID)
	default:
		return s.resolveBuyer(ctx, userID)
	}
}

func (s *accessService) ListLogs(ctx context.Context, limit, offset int) ([]model.AccessLog, int64, error) {
	return s.logs.List(ctx, limit, offset)
}
