package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/expomeet/expomeet-server/internal/ai"
	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/repository"
)

// NewChatToolRegistry wires the assistant's context tools against the
// live repositories. Tools are selected per message by keyword and role.
func NewChatToolRegistry(
	meetings repository.MeetingRepository,
	buyers repository.BuyerProfileRepository,
	sellers repository.SellerProfileRepository,
	stalls repository.StallRepository,
	slots repository.TimeSlotRepository,
	travel repository.TravelRepository,
	cats repository.CategoryRepository,
	quota QuotaService,
) *ai.Registry {
	reg := ai.NewRegistry()

	reg.Register(ai.Tool{
		Name:     "meeting-stats",
		Keywords: []string{"meeting", "meetings", "quota", "request"},
		Run: func(ctx context.Context, userID uint64, _ string) (string, error) {
			counts, err := meetings.CountsByStatusForUser(ctx, userID)
			if err != nil {
				return "", err
			}
			var b strings.Builder
			b.WriteString("Meeting counts by status:\n")
			for _, st := range []model.MeetingStatus{
				model.MeetingStatusPending, model.MeetingStatusAccepted,
				model.MeetingStatusCompleted, model.MeetingStatusCancelled,
				model.MeetingStatusRejected, model.MeetingStatusExpired,
			} {
				if n := counts[st]; n > 0 {
					fmt.Fprintf(&b, "- %s: %d\n", st, n)
				}
			}
			return b.String(), nil
		},
	})

	reg.Register(ai.Tool{
		Name:     "buyer-quota",
		Roles:    []string{"buyer"},
		Keywords: []string{"quota", "remaining", "how many meetings"},
		Run: func(ctx context.Context, userID uint64, _ string) (string, error) {
			q, err := quota.BuyerQuotaForUser(ctx, userID)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf(
				"Allowed accepted meetings: %d. Accepted so far: %d. Pending requests: %d. Remaining requests: %d.",
				q.AllowedQuota, q.AcceptedCount, q.PendingCount, q.RemainingRequestCount), nil
		},
	})

	reg.Register(ai.Tool{
		Name:     "meeting-details",
		Keywords: []string{"schedule", "when is", "upcoming", "accepted"},
		Run: func(ctx context.Context, userID uint64, _ string) (string, error) {
			list, err := meetings.ListInvolving(ctx, userID)
			if err != nil {
				return "", err
			}
			var b strings.Builder
			for _, m := range list {
				if m.Status != model.MeetingStatusAccepted {
					continue
				}
				date := "unscheduled"
				if m.MeetingDate != nil {
					date = m.MeetingDate.Format("2006-01-02")
				}
				fmt.Fprintf(&b, "- meeting #%d on %s (buyer %d, seller %d)\n", m.ID, date, m.BuyerID, m.SellerID)
			}
			if b.Len() == 0 {
				return "No accepted meetings scheduled.", nil
			}
			return "Accepted meetings:\n" + b.String(), nil
		},
	})

	reg.Register(ai.Tool{
		Name:     "stall-info",
		Roles:    []string{"seller"},
		Keywords: []string{"stall", "booth", "fascia"},
		Run: func(ctx context.Context, userID uint64, _ string) (string, error) {
			profile, err := sellers.FindByUserID(ctx, userID)
			if err != nil {
				return "", err
			}
			list, err := stalls.ListBySellerProfile(ctx, profile.ID)
			if err != nil {
				return "", err
			}
			var b strings.Builder
			for _, st := range list {
				typeName := "unassigned"
				if st.StallType != nil {
					typeName = st.StallType.Name
				}
				fmt.Fprintf(&b, "- stall #%d type=%s number=%s\n", st.ID, typeName, st.Number)
			}
			if b.Len() == 0 {
				return "No stalls assigned.", nil
			}
			return "Your stalls:\n" + b.String(), nil
		},
	})

	reg.Register(ai.Tool{
		Name:     "time-slots",
		Roles:    []string{"seller"},
		Keywords: []string{"slot", "slots", "availability"},
		Run: func(ctx context.Context, userID uint64, _ string) (string, error) {
			list, err := slots.ListAvailableBySeller(ctx, userID)
			if err != nil {
				return "", err
			}
			if len(list) == 0 {
				return "No free time slots.", nil
			}
			var b strings.Builder
			b.WriteString("Free time slots:\n")
			for _, sl := range list {
				fmt.Fprintf(&b, "- %s %s-%s\n", sl.SlotDate.Format("2006-01-02"), sl.StartTime, sl.EndTime)
			}
			return b.String(), nil
		},
	})

	reg.Register(ai.Tool{
		Name:     "travel-plan",
		Roles:    []string{"buyer"},
		Keywords: []string{"travel", "flight", "train", "arrival", "departure"},
		Run: func(ctx context.Context, userID uint64, _ string) (string, error) {
			plan, err := travel.FindPlanByUser(ctx, userID)
			if err != nil {
				return "No travel plan on file.", nil
			}
			t := plan.Transportation
			if t == nil {
				return "Travel plan exists but no transportation is recorded.", nil
			}
			var b strings.Builder
			if t.OutboundDepartureDatetime != nil {
				fmt.Fprintf(&b, "Outbound %s %s departs %s at %s.\n",
					t.OutboundType, t.OutboundNumber, t.OutboundDepartureLocation,
					t.OutboundDepartureDatetime.Format("2006-01-02 15:04"))
			}
			if t.ReturnDepartureDatetime != nil {
				fmt.Fprintf(&b, "Return %s %s departs %s at %s.\n",
					t.ReturnType, t.ReturnNumber, t.ReturnDepartureLocation,
					t.ReturnDepartureDatetime.Format("2006-01-02 15:04"))
			}
			if b.Len() == 0 {
				return "Transportation recorded without timings.", nil
			}
			return b.String(), nil
		},
	})

	reg.Register(ai.Tool{
		Name:     "accommodation",
		Roles:    []string{"buyer"},
		Keywords: []string{"hotel", "accommodation", "room", "stay", "check-in", "check in"},
		Run: func(ctx context.Context, userID uint64, _ string) (string, error) {
			plan, err := travel.FindPlanByUser(ctx, userID)
			if err != nil || plan.Accommodation == nil {
				return "No accommodation on file.", nil
			}
			a := plan.Accommodation
			place := a.HotelName
			if a.HostProperty != nil {
				place = a.HostProperty.Name
			}
			if place == "" {
				return "Accommodation recorded without a property.", nil
			}
			out := "Staying at " + place
			if a.CheckInDate != nil && a.CheckOutDate != nil {
				out += fmt.Sprintf(" from %s to %s",
					a.CheckInDate.Format("2006-01-02"), a.CheckOutDate.Format("2006-01-02"))
			}
			return out + ".", nil
		},
	})

	reg.Register(ai.Tool{
		Name:     "category-info",
		Roles:    []string{"buyer"},
		Keywords: []string{"category", "hosted", "deposit", "entry fee"},
		Run: func(ctx context.Context, userID uint64, _ string) (string, error) {
			p, err := buyers.FindByUserID(ctx, userID)
			if err != nil || p.CategoryID == nil {
				return "No buyer category assigned.", nil
			}
			c, err := cats.FindByID(ctx, *p.CategoryID)
			if err != nil {
				return "", err
			}
			out := "Buyer category: " + c.Name
			if ceiling, ok := c.MeetingCeiling(); ok {
				out += fmt.Sprintf(" (up to %d accepted meetings)", ceiling)
			}
			return out + ".", nil
		},
	})

	reg.Register(ai.Tool{
		Name:     "seller-search",
		Roles:    []string{"buyer"},
		Keywords: []string{"exhibitor", "seller", "company", "vendor"},
		Run: func(ctx context.Context, _ uint64, message string) (string, error) {
			query := searchTerm(message)
			if query == "" {
				return "", nil
			}
			list, err := sellers.SearchByName(ctx, query, 5)
			if err != nil {
				return "", err
			}
			if len(list) == 0 {
				return fmt.Sprintf("No exhibitors matching %q.", query), nil
			}
			var b strings.Builder
			b.WriteString("Matching exhibitors:\n")
			for _, sp := range list {
				fmt.Fprintf(&b, "- %s (user %d)\n", sp.BusinessName, sp.UserID)
			}
			return b.String(), nil
		},
	})

	return reg
}

// searchTerm pulls a quoted phrase out of the message, the only reliable
// way to know which company name the user means.
func searchTerm(message string) string {
	start := strings.IndexByte(message, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(message[start+1:], '"')
	if end < 0 {
		return ""
	}
	return message[start+1 : start+1+end]
}
