package repository

import (
	"context"

	"github.com/expomeet/expomeet-server/internal/model"
	"gorm.io/gorm"
)

// TravelReportFilter narrows the admin transportation/accommodation report.
type TravelReportFilter struct {
	Search   string
	Type     string // flight | train | other
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

type TravelRepository interface {
	ListPlansByUser(ctx context.Context, userID uint64) ([]model.TravelPlan, error)
	FindPlanByUser(ctx context.Context, userID uint64) (*model.TravelPlan, error)
	CreatePlan(ctx context.Context, p *model.TravelPlan) error
	SaveTransportation(ctx context.Context, t *model.Transportation) error
	SaveAccommodation(ctx context.Context, a *model.Accommodation) error
	SaveGroundTransportation(ctx context.Context, g *model.GroundTransportation) error

	FindHostProperty(ctx context.Context, id uint64) (*model.HostProperty, error)
	ListHostProperties(ctx context.Context) ([]model.HostProperty, error)
	SaveHostProperty(ctx context.Context, p *model.HostProperty) error
	CountGuestsByProperty(ctx context.Context, propertyID uint64) (rooms int64, guests int64, err error)

	ListPlansForReport(ctx context.Context, f TravelReportFilter) ([]model.TravelPlan, int64, error)
}

type travelRepository struct {
	db *gorm.DB
}

func NewTravelRepository(db *gorm.DB) TravelRepository {
	return &travelRepository{db: db}
}

func (r *travelRepository) ListPlansByUser(ctx context.Context, userID uint64) ([]model.TravelPlan, error) {
	var list []model.TravelPlan
	err := r.db.WithContext(ctx).
		Preload("Transportation").
		Preload("Accommodation").
		Preload("Accommodation.HostProperty").
		Preload("GroundTransportation").
		Where("user_id = ?", userID).
		Find(&list).Error
	return list, err
}

func (r *travelRepository) FindPlanByUser(ctx context.Context, userID uint64) (*model.TravelPlan, error) {
	var p model.TravelPlan
	err := r.db.WithContext(ctx).
		Preload("Transportation").
		Preload("Accommodation").
		Preload("GroundTransportation").
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *travelRepository) CreatePlan(ctx context.Context, p *model.TravelPlan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *travelRepository) SaveTransportation(ctx context.Context, t *model.Transportation) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *travelRepository) SaveAccommodation(ctx context.Context, a *model.Accommodation) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *travelRepository) SaveGroundTransportation(ctx context.Context, g *model.GroundTransportation) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *travelRepository) FindHostProperty(ctx context.Context, id uint64) (*model.HostProperty, error) {
	var p model.HostProperty
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *travelRepository) ListHostProperties(ctx context.Context) ([]model.HostProperty, error) {
	var list []model.HostProperty
	err := r.db.WithContext(ctx).Order("name").Find(&list).Error
	return list, err
}

func (r *travelRepository) SaveHostProperty(ctx context.Context, p *model.HostProperty) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *travelRepository) CountGuestsByProperty(ctx context.Context, propertyID uint64) (int64, int64, error) {
	type agg struct {
		Rooms  int64
		Guests int64
	}
	var a agg
	err := r.db.WithContext(ctx).Model(&model.Accommodation{}).
		Select("COUNT(*) AS rooms, SUM(CASE WHEN room_type = 'shared' THEN 1 ELSE 2 END) AS guests").
		Where("host_property_id = ?", propertyID).
		Scan(&a).Error
	return a.Rooms, a.Guests, err
}

func (r *travelRepository) ListPlansForReport(ctx context.Context, f TravelReportFilter) ([]model.TravelPlan, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.TravelPlan{}).
		Preload("Transportation").
		Preload("Accommodation").
		Preload("Accommodation.HostProperty").
		Preload("GroundTransportation")
	if f.Type != "" {
		q = q.Joins("JOIN transportations ON transportations.travel_plan_id = travel_plans.id").
			Where("transportations.outbound_type = ? OR transportations.return_type = ?", f.Type, f.Type)
	}
	if f.Search != "" {
		q = q.Joins("JOIN users ON users.id = travel_plans.user_id").
			Where("users.username ILIKE ? OR users.email ILIKE ?", "%"+f.Search+"%", "%"+f.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "travel_plans.updated_at"
	switch f.SortBy {
	case "created_at", "updated_at", "status", "user_id":
		order = "travel_plans." + f.SortBy
	}
	if f.SortDesc {
		order += " DESC"
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var list []model.TravelPlan
	if err := q.Order(order).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
