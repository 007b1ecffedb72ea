package handler

import (
	"encoding/json"
	"testing"

	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/service"
)

func TestBuyerProfileResponseShape(t *testing.T) {
	view := &service.BuyerView{
		Profile: model.BuyerProfile{ID: 3, UserID: 7, Name: "Asha"},
		Quota: &service.BuyerQuota{
			RequestQuota: 10,
			AllowedQuota: 5,
			CanAccept:    true,
		},
		ImageURL: "data:image/png;base64,xyz",
	}
	raw, err := json.Marshal(toBuyerProfileResponse(view))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("err=%v", err)
	}

	for _, key := range []string{
		"name", "user_id",
		"buyerMeetingRequestQuota", "buyerAllowedMeetingQuota",
		"canBuyerAcceptMeetingRequest", "pendingMeetingRequestCount",
		"profile_image_url",
	} {
		if _, ok := got[key]; !ok {
			t.Fatalf("missing top-level key %q in %s", key, raw)
		}
	}
	for _, key := range []string{"Profile", "Quota", "ImageURL"} {
		if _, ok := got[key]; ok {
			t.Fatalf("unexpected nested key %q in %s", key, raw)
		}
	}
}

func TestBuyerProfileResponseNilQuota(t *testing.T) {
	view := &service.BuyerView{Profile: model.BuyerProfile{ID: 3, Name: "Asha"}}
	raw, err := json.Marshal(toBuyerProfileResponse(view))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("err=%v", err)
	}
	if _, ok := got["buyerMeetingRequestQuota"]; ok {
		t.Fatalf("quota keys present without a quota block: %s", raw)
	}
	if got["name"] != "Asha" {
		t.Fatalf("name=%v want Asha", got["name"])
	}
}
