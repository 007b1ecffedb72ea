package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/expomeet/expomeet-server/internal/bank"
	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/repository"
	"github.com/expomeet/expomeet-server/internal/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxBatchQuotaIDs caps the with-quota batch endpoint so one request
// cannot fan out into unbounded work.
const MaxBatchQuotaIDs = 20

// BuyerView is a buyer profile with its quota block and resolved image.
type BuyerView struct {
	Profile  model.BuyerProfile
	Quota    *BuyerQuota
	ImageURL string
}

type BatchQuotaResult struct {
	Buyers     []BuyerView
	InvalidIDs []uint64
}

type BuyerService interface {
	GetProfile(ctx context.Context, userID uint64) (*BuyerView, error)
	SaveProfile(ctx context.Context, userID uint64, p *model.BuyerProfile) (*BuyerView, error)
	SaveProfileImage(ctx context.Context, userID uint64, filename string, data []byte) (string, error)
	Dashboard(ctx context.Context, userID uint64) (map[string]interface{}, error)

	List(ctx context.Context, f repository.BuyerFilter) ([]model.BuyerProfile, int64, error)
	ByUserIDs(ctx context.Context, ids []uint64) ([]model.BuyerProfile, error)
	ByUserIDsWithQuota(ctx context.Context, ids []uint64) (*BatchQuotaResult, error)

	Categories(ctx context.Context) ([]model.BuyerCategory, error)
	Interests(ctx context.Context) ([]model.Interest, error)
	PropertyTypes(ctx context.Context) ([]model.PropertyType, error)
	OperatorTypes(ctx context.Context) ([]string, error)
	Countries(ctx context.Context) ([]string, error)
	States(country string) ([]string, error)
	ExportData(ctx context.Context) ([]BuyerExportRow, error)

	BankDetails(ctx context.Context, userID uint64) (*model.BuyerBankDetails, error)
	SaveBankDetails(ctx context.Context, userID uint64, d *model.BuyerBankDetails) (*model.BuyerBankDetails, *bank.BranchInfo, error)
}

type buyerService struct {
	buyers   repository.BuyerProfileRepository
	cats     repository.CategoryRepository
	meetings repository.MeetingRepository
	quota    QuotaService
	files    *storage.FileStore
	ifsc     *bank.Client
}

func NewBuyerService(
	buyers repository.BuyerProfileRepository,
	cats repository.CategoryRepository,
	meetings repository.MeetingRepository,
	quota QuotaService,
	files *storage.FileStore,
	ifsc *bank.Client,
) BuyerService {
	return &buyerService{buyers: buyers, cats: cats, meetings: meetings, quota: quota, files: files, ifsc: ifsc}
}

func (s *buyerService) GetProfile(ctx context.Context, userID uint64) (*BuyerView, error) {
	p, err := s.buyers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.view(ctx, p), nil
}

func (s *buyerService) SaveProfile(ctx context.Context, userID uint64, in *model.BuyerProfile) (*BuyerView, error) {
	existing, err := s.buyers.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		in.UserID = userID
		if err := s.buyers.Create(ctx, in); err != nil {
			return nil, err
		}
		return s.GetProfile(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Organization = in.Organization
	existing.Designation = in.Designation
	existing.Mobile = in.Mobile
	existing.Country = in.Country
	existing.State = in.State
	existing.City = in.City
	existing.Address = in.Address
	existing.Pincode = in.Pincode
	existing.GSTNumber = in.GSTNumber
	existing.OperatorType = in.OperatorType
	existing.Interests = in.Interests
	existing.PropertiesOfInterest = in.PropertiesOfInterest
	if in.CategoryID != nil {
		if _, err := s.cats.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown category", ErrValidation)
			}
			return nil, err
		}
		existing.CategoryID = in.CategoryID
	}
	if err := s.buyers.Save(ctx, existing); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *buyerService) SaveProfileImage(ctx context.Context, userID uint64, filename string, data []byte) (string, error) {
	if s.files == nil {
		return "", fmt.Errorf("%w: file storage not configured", ErrValidation)
	}
	p, err := s.buyers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	name, err := s.files.SaveProfileImage(userID, filename, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	p.ProfileImage = name
	if err := s.buyers.Save(ctx, p); err != nil {
		return "", err
	}
	return name, nil
}

func (s *buyerService) Dashboard(ctx context.Context, userID uint64) (map[string]interface{}, error) {
	view, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.meetings.CountsByStatusForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"profile":            view.Profile,
		"quota":              view.Quota,
		"meetings_by_status": counts,
	}, nil
}

// view attaches the quota block and image data URL, both best-effort.
func (s *buyerService) view(ctx context.Context, p *model.BuyerProfile) *BuyerView {
	v := &BuyerView{Profile: *p}
	if q, err := s.quota.BuyerQuotaForUser(ctx, p.UserID); err == nil {
		v.Quota = &q
	} else {
		log.Printf("[buyer] stage=quota_fail user=%d err=%v", p.UserID, err)
	}
	if s.files != nil && p.ProfileImage != "" {
		if url, err := s.files.FetchProfileImage(p.ProfileImage); err == nil {
			v.ImageURL = url
		} else {
			log.Printf("[buyer] stage=image_fail user=%d err=%v", p.UserID, err)
		}
	}
	return v
}

func (s *buyerService) List(ctx context.Context, f repository.BuyerFilter) ([]model.BuyerProfile, int64, error) {
	return s.buyers.List(ctx, f)
}

func (s *buyerService) ByUserIDs(ctx context.Context, ids []uint64) ([]model.BuyerProfile, error) {
	return s.buyers.FindByUserIDs(ctx, ids)
}

func (s *buyerService) ByUserIDsWithQuota(ctx context.Context, ids []uint64) (*BatchQuotaResult, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no user ids given", ErrValidation)
	}
	if len(ids) > MaxBatchQuotaIDs {
		return nil, fmt.Errorf("%w: at most %d user ids per request", ErrValidation, MaxBatchQuotaIDs)
	}

	profiles, err := s.buyers.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uint64]bool, len(profiles))
	for _, p := range profiles {
		found[p.UserID] = true
	}
	var invalid []uint64
	for _, id := range ids {
		if !found[id] {
			invalid = append(invalid, id)
		}
	}

	quotas, err := s.quota.BatchBuyerQuota(ctx, profiles)
	if err != nil {
		return nil, err
	}

	out := make([]BuyerView, 0, len(profiles))
	for _, p := range profiles {
		q := quotas[p.UserID]
		out = append(out, BuyerView{Profile: p, Quota: &q})
	}
	return &BatchQuotaResult{Buyers: out, InvalidIDs: invalid}, nil
}

func (s *buyerService) Categories(ctx context.Context) ([]model.BuyerCategory, error) {
	return s.cats.List(ctx)
}

func (s *buyerService) Interests(ctx context.Context) ([]model.Interest, error) {
	return s.cats.ListInterests(ctx)
}

func (s *buyerService) PropertyTypes(ctx context.Context) ([]model.PropertyType, error) {
	return s.cats.ListPropertyTypes(ctx)
}

func (s *buyerService) OperatorTypes(ctx context.Context) ([]string, error) {
	types, err := s.buyers.DistinctOperatorTypes(ctx)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return defaultOperatorTypes, nil
	}
	return types, nil
}

func (s *buyerService) Countries(ctx context.Context) ([]string, error) {
	countries, err := s.buyers.DistinctCountries(ctx)
	if err != nil {
		return nil, err
	}
	if len(countries) == 0 {
		return defaultCountries, nil
	}
	return countries, nil
}

func (s *buyerService) States(country string) ([]string, error) {
	if country == "" {
		return nil, fmt.Errorf("%w: country is required", ErrValidation)
	}
	states := statesByCountry[country]
	if states == nil {
		states = []string{}
	}
	return states, nil
}

// BuyerExportRow is the flattened buyer record the client renders into
// the printed directory.
type BuyerExportRow struct {
	Organization         string `json:"organization"`
	Name                 string `json:"name"`
	Designation          string `json:"designation"`
	Mobile               string `json:"mobile"`
	Email                string `json:"email"`
	Address              string `json:"address"`
	Interests            string `json:"interests"`
	PropertiesOfInterest string `json:"properties_of_interest"`
}

func (s *buyerService) ExportData(ctx context.Context) ([]BuyerExportRow, error) {
	profiles, err := s.buyers.ListForExport(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BuyerExportRow, 0, len(profiles))
	for _, p := range profiles {
		row := BuyerExportRow{
			Organization:         p.Organization,
			Name:                 p.Name,
			Designation:          p.Designation,
			Mobile:               p.Mobile,
			Address:              p.Address,
			Interests:            joinJSONArray(p.Interests),
			PropertiesOfInterest: joinJSONArray(p.PropertiesOfInterest),
		}
		if p.User != nil {
			row.Email = strings.ToLower(p.User.Email)
		}
		out = append(out, row)
	}
	return out, nil
}

// joinJSONArray flattens a JSON string array into "a, b, c" for export.
func joinJSONArray(raw datatypes.JSON) string {
	if len(raw) == 0 {
		return ""
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return ""
	}
	return strings.Join(values, ", ")
}

func (s *buyerService) BankDetails(ctx context.Context, userID uint64) (*model.BuyerBankDetails, error) {
	p, err := s.buyers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d, err := s.buyers.BankDetails(ctx, p.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return d, err
}

// SaveBankDetails validates the IFSC code and enriches the record with
// branch data from the lookup API when it is reachable.
func (s *buyerService) SaveBankDetails(ctx context.Context, userID uint64, d *model.BuyerBankDetails) (*model.BuyerBankDetails, *bank.BranchInfo, error) {
	p, err := s.buyers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if err := bank.ValidateIFSC(d.IFSCCode); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var branch *bank.BranchInfo
	if s.ifsc != nil {
		branch, err = s.ifsc.Lookup(ctx, d.IFSCCode)
		if err != nil {
			// lookup failures leave the manually entered fields as-is
			log.Printf("[bank] stage=lookup_fail ifsc=%s err=%v", d.IFSCCode, err)
			branch = nil
		} else {
			d.BankName = branch.Bank
			d.Branch = branch.Branch
			d.City = branch.City
			d.State = branch.State
		}
	}

	existing, err := s.buyers.BankDetails(ctx, p.ID)
	if err == nil {
		d.ID = existing.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	d.BuyerProfileID = p.ID
	if err := s.buyers.SaveBankDetails(ctx, d); err != nil {
		return nil, nil, err
	}
	return d, branch, nil
}
