package repository

import (
	"context"

	"github.com/expomeet/expomeet-server/internal/model"
	"gorm.io/gorm"
)

type InviteRepository interface {
	Create(ctx context.Context, i *model.InvitedBuyer) error
	FindByToken(ctx context.Context, token string) (*model.InvitedBuyer, error)
	Save(ctx context.Context, i *model.InvitedBuyer) error
	CreatePending(ctx context.Context, p *model.PendingBuyer) error
	ListEnabledDomains(ctx context.Context) ([]model.DomainRestriction, error)
}

type inviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) Create(ctx context.Context, i *model.InvitedBuyer) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *inviteRepository) FindByToken(ctx context.Context, token string) (*model.InvitedBuyer, error) {
	var i model.InvitedBuyer
	if err := r.db.WithContext(ctx).Where("invitation_token = ?", token).First(&i).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *inviteRepository) Save(ctx context.Context, i *model.InvitedBuyer) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *inviteRepository) CreatePending(ctx context.Context, p *model.PendingBuyer) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *inviteRepository) ListEnabledDomains(ctx context.Context) ([]model.DomainRestriction, error) {
	var list []model.DomainRestriction
	err := r.db.WithContext(ctx).Where("enabled = ?", true).Find(&list).Error
	return list, err
}
