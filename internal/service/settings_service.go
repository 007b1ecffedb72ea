package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/repository"
)

const (
	defaultEventDays       = 3
	defaultMeetingsPerDay  = 30
	settingDateLayout      = "2006-01-02"
	settingClockLayout     = "3:04 PM"
)

// SettingsService reads typed values out of the system_settings table.
type SettingsService interface {
	MeetingsEnabled(ctx context.Context) bool
	EventDays(ctx context.Context) int
	DefaultMeetingsPerDay(ctx context.Context) int
	EventWindow(ctx context.Context) (start, end time.Time, err error)
	DailyMeetingWindow(ctx context.Context) (start, end time.Time, err error)
	All(ctx context.Context) ([]model.SystemSetting, error)
	Set(ctx context.Context, key, value string) error
}

type settingsService struct {
	repo repository.SettingRepository
}

func NewSettingsService(repo repository.SettingRepository) SettingsService {
	return &settingsService{repo: repo}
}

// MeetingsEnabled defaults to true when the flag row is absent.
func (s *settingsService) MeetingsEnabled(ctx context.Context) bool {
	v, ok, err := s.repo.Get(ctx, model.SettingMeetingsEnabled)
	if err != nil || !ok {
		return true
	}
	enabled, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return enabled
}

// EventDays derives the event length from the configured start and end
// dates, inclusive. Missing or malformed settings fall back to 3 days.
func (s *settingsService) EventDays(ctx context.Context) int {
	start, end, err := s.EventWindow(ctx)
	if err != nil {
		return defaultEventDays
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return defaultEventDays
	}
	return days
}

func (s *settingsService) DefaultMeetingsPerDay(ctx context.Context) int {
	v, ok, err := s.repo.Get(ctx, model.SettingMaxSellerAttendeesPerDay)
	if err != nil || !ok {
		return defaultMeetingsPerDay
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("[settings] key=%s stage=parse_fail value=%q", model.SettingMaxSellerAttendeesPerDay, v)
		return defaultMeetingsPerDay
	}
	return n
}

func (s *settingsService) EventWindow(ctx context.Context) (time.Time, time.Time, error) {
	startRaw, ok, err := s.repo.Get(ctx, model.SettingEventStartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrSettingsMissing, model.SettingEventStartDate)
	}
	endRaw, ok, err := s.repo.Get(ctx, model.SettingEventEndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrSettingsMissing, model.SettingEventEndDate)
	}
	start, err := time.Parse(settingDateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrSettingsMissing, model.SettingEventStartDate)
	}
	end, err := time.Parse(settingDateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrSettingsMissing, model.SettingEventEndDate)
	}
	return start, end, nil
}

func (s *settingsService) DailyMeetingWindow(ctx context.Context) (time.Time, time.Time, error) {
	startRaw, ok, err := s.repo.Get(ctx, model.SettingMeetingStartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrSettingsMissing, model.SettingMeetingStartTime)
	}
	endRaw, ok, err := s.repo.Get(ctx, model.SettingMeetingEndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrSettingsMissing, model.SettingMeetingEndTime)
	}
	start, err := time.Parse(settingClockLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrSettingsMissing, model.SettingMeetingStartTime)
	}
	end, err := time.Parse(settingClockLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrSettingsMissing, model.SettingMeetingEndTime)
	}
	return start, end, nil
}

func (s *settingsService) All(ctx context.Context) ([]model.SystemSetting, error) {
	return s.repo.GetAll(ctx)
}

func (s *settingsService) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}
