package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

type recordingMeetingService struct {
	lastCall   string
	lastInput  service.CreateMeetingInput
	lastTarget uint64
}

func (s *recordingMeetingService) Create(_ context.Context, _ uint64, _ model.Role, in service.CreateMeetingInput) (*model.Meeting, error) {
	s.lastCall = "create"
	s.lastInput = in
	return &model.Meeting{ID: 1}, nil
}

func (s *recordingMeetingService) Accept(_ context.Context, _ uint64, _ model.Role, meetingID uint64) (*model.Meeting, error) {
	s.lastCall = "accept"
	s.lastTarget = meetingID
	return &model.Meeting{ID: meetingID, Status: model.MeetingStatusAccepted}, nil
}

func (s *recordingMeetingService) Reject(_ context.Context, _ uint64, _ model.Role, meetingID uint64) (*model.Meeting, error) {
	s.lastCall = "reject"
	s.lastTarget = meetingID
	return &model.Meeting{ID: meetingID, Status: model.MeetingStatusRejected}, nil
}

func (s *recordingMeetingService) Cancel(_ context.Context, _ uint64, meetingID uint64) (*model.Meeting, error) {
	s.lastCall = "cancel"
	s.lastTarget = meetingID
	return &model.Meeting{ID: meetingID, Status: model.MeetingStatusCancelled}, nil
}

func (s *recordingMeetingService) Confirm(_ context.Context, _ uint64, meetingID int64, _ uint64) (*model.Meeting, error) {
	s.lastCall = "confirm"
	return &model.Meeting{ID: uint64(meetingID), Status: model.MeetingStatusCompleted}, nil
}

func (s *recordingMeetingService) Get(_ context.Context, _ uint64, _ model.Role, meetingID uint64) (*model.Meeting, error) {
	s.lastCall = "get"
	return &model.Meeting{ID: meetingID}, nil
}

func (s *recordingMeetingService) List(_ context.Context, _ uint64, _ model.Role) ([]service.MeetingInfo, error) {
	s.lastCall = "list"
	return nil, nil
}

func newMeetingTestContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMeetingRequestBody(t *testing.T) {
	t.Run("requested_id names the counterpart", func(t *testing.T) {
		svc := &recordingMeetingService{}
		h := NewMeetingHandler(svc, nil)
		c, rec := newMeetingTestContext(t, http.MethodPost, `{"requested_id":9,"notes":"hi"}`)
		if err := h.Request(c); err != nil {
			t.Fatalf("err=%v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("status=%d want %d", rec.Code, http.StatusCreated)
		}
		if svc.lastCall != "create" || svc.lastInput.CounterpartID != 9 {
			t.Fatalf("call=%q counterpart=%d want create/9", svc.lastCall, svc.lastInput.CounterpartID)
		}
	})

	t.Run("missing requested_id rejected", func(t *testing.T) {
		svc := &recordingMeetingService{}
		h := NewMeetingHandler(svc, nil)
		c, rec := newMeetingTestContext(t, http.MethodPost, `{"notes":"hi"}`)
		if err := h.Request(c); err != nil {
			t.Fatalf("err=%v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status=%d want %d", rec.Code, http.StatusBadRequest)
		}
		if svc.lastCall != "" {
			t.Fatalf("unexpected service call %q", svc.lastCall)
		}
	})
}

func TestMeetingUpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCall   string
	}{
		{"accepted dispatches accept", `{"status":"accepted"}`, http.StatusOK, "accept"},
		{"rejected dispatches reject", `{"status":"rejected"}`, http.StatusOK, "reject"},
		{"other statuses rejected", `{"status":"completed"}`, http.StatusBadRequest, ""},
		{"missing status rejected", `{}`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &recordingMeetingService{}
			h := NewMeetingHandler(svc, nil)
			c, rec := newMeetingTestContext(t, http.MethodPut, tt.body)
			c.SetParamNames("id")
			c.SetParamValues("5")
			if err := h.UpdateStatus(c); err != nil {
				t.Fatalf("err=%v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want %d", rec.Code, tt.wantStatus)
			}
			if svc.lastCall != tt.wantCall {
				t.Fatalf("call=%q want %q", svc.lastCall, tt.wantCall)
			}
			if tt.wantCall != "" && svc.lastTarget != 5 {
				t.Fatalf("meeting id=%d want 5", svc.lastTarget)
			}
		})
	}
}
