package service

import "github.com/expomeet/expomeet-server/internal/model"

// BuyerQuota is the quota block embedded in buyer-facing responses. The
// JSON keys are part of the client contract and must not change.
type BuyerQuota struct {
	RequestQuota          int  `json:"buyerMeetingRequestQuota"`
	QuotaExceeded         bool `json:"buyerMeetingQuotaExceeded"`
	CurrentRequestCount   int  `json:"currentMeetingRequestCount"`
	RemainingRequestCount int  `json:"remainingMeetingRequestCount"`
	AcceptedCount         int  `json:"currentBuyerAcceptedMeetingCount"`
	AllowedQuota          int  `json:"buyerAllowedMeetingQuota"`
	RemainingAcceptCount  int  `json:"buyerRemainingAcceptCount"`
	CanAccept             bool `json:"canBuyerAcceptMeetingRequest"`
	PendingCount          int  `json:"pendingMeetingRequestCount"`
}

type SellerQuota struct {
	RequestQuota          int  `json:"sellerMeetingRequestQuota"`
	QuotaExceeded         bool `json:"sellerMeetingQuotaExceeded"`
	CurrentRequestCount   int  `json:"currentMeetingRequestCount"`
	RemainingRequestCount int  `json:"remainingMeetingRequestCount"`
	AcceptedCount         int  `json:"currentSellerAcceptedMeetingCount"`
	AllowedQuota          int  `json:"sellerAllowedMeetingQuota"`
	RemainingAcceptCount  int  `json:"sellerRemainingAcceptCount"`
	CanAccept             bool `json:"canSellerAcceptMeetingRequest"`
	PendingCount          int  `json:"pendingMeetingRequestCount"`
}

// BuyerAllowedQuota resolves the per-day accepted-meeting ceiling for a
// buyer. A category ceiling of zero is honored; null or negative means
// the category does not set one and the event default applies. The
// ceiling is NOT multiplied by the event length.
func BuyerAllowedQuota(category *model.BuyerCategory, defaultPerDay int) int {
	if ceiling, ok := category.MeetingCeiling(); ok {
		return ceiling
	}
	return defaultPerDay
}

// ComputeBuyerQuota derives the full quota block from the allowed
// ceiling and the buyer's accepted/pending meeting counts. An accepted
// meeting consumes two request units, a pending one consumes one.
func ComputeBuyerQuota(allowed, accepted, pending int) BuyerQuota {
	requestQuota := allowed * 2
	used := 2*accepted + pending
	return BuyerQuota{
		RequestQuota:          requestQuota,
		QuotaExceeded:         used >= requestQuota,
		CurrentRequestCount:   accepted + pending,
		RemainingRequestCount: clampZero(requestQuota - used),
		AcceptedCount:         accepted,
		AllowedQuota:          allowed,
		RemainingAcceptCount:  clampZero(allowed - accepted),
		CanAccept:             allowed-accepted > 0,
		PendingCount:          pending,
	}
}

// SellerPerDayQuota sums the per-day meeting capacity across a seller's
// stalls: attendees times the stall type's per-attendee ceiling, with
// the event default standing in when the type does not set one. A seller
// with no resolvable capacity still gets one meeting per day.
func SellerPerDayQuota(stalls []model.Stall, defaultPerAttendee int) int {
	perDay := 0
	for _, st := range stalls {
		t := st.StallType
		if t == nil {
			continue
		}
		attendees := t.Attendees
		if attendees < 1 {
			attendees = 1
		}
		perAttendee := defaultPerAttendee
		if t.MaxMeetingsPerAttendee != nil && *t.MaxMeetingsPerAttendee >= 0 {
			perAttendee = *t.MaxMeetingsPerAttendee
		}
		perDay += attendees * perAttendee
	}
	if perDay == 0 {
		return 1
	}
	return perDay
}

// ComputeSellerQuota mirrors the buyer calculation but scales the
// allowed ceiling by the event length, and keeps the doubled request
// headroom the sellers were given.
func ComputeSellerQuota(perDay, eventDays, accepted, pending int) SellerQuota {
	if eventDays < 1 {
		eventDays = 1
	}
	allowed := perDay * eventDays
	requestQuota := allowed * 2
	used := 2*accepted + pending
	return SellerQuota{
		RequestQuota:          requestQuota,
		QuotaExceeded:         used >= requestQuota*2,
		CurrentRequestCount:   accepted + pending,
		RemainingRequestCount: clampZero(requestQuota*2 - used),
		AcceptedCount:         accepted,
		AllowedQuota:          allowed,
		RemainingAcceptCount:  clampZero(allowed - accepted),
		CanAccept:             allowed-accepted > 0,
		PendingCount:          pending,
	}
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
