package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"meetgrid/core/errors"
	"meetgrid/modules/availability/dto"
)

// fakeAvailabilityService returns canned results per event code.
type fakeAvailabilityService struct {
	lastUpsertName string
	lastUpsertReq  *dto.UpsertResponseRequest
}

func (f *fakeAvailabilityService) UpsertResponse(_ context.Context, eventCode, participantName string, req *dto.UpsertResponseRequest) (*dto.ResponseDTO, *errors.AppError) {
	if eventCode == "missing" {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if strings.TrimSpace(participantName) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Participant name is required", nil)
	}
	f.lastUpsertName = participantName
	f.lastUpsertReq = req
	return &dto.ResponseDTO{ParticipantName: participantName, PaintMode: req.PaintMode}, nil
}

func (f *fakeAvailabilityService) ListResponses(_ context.Context, eventCode string) ([]dto.ResponseDTO, *errors.AppError) {
	if eventCode == "missing" {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return []dto.ResponseDTO{{ParticipantName: "A", PaintMode: "available"}}, nil
}

func (f *fakeAvailabilityService) DeleteResponse(_ context.Context, eventCode, participantName string) *errors.AppError {
	if participantName == "ghost" {
		return errors.NewAppError(errors.ErrNotFound, "Response not found", nil)
	}
	return nil
}

func (f *fakeAvailabilityService) GetHeatmap(_ context.Context, eventCode string) (*dto.HeatmapResponse, *errors.AppError) {
	if eventCode == "down" {
		return nil, errors.NewAppError(errors.ErrServiceUnavailable, "Failed to list responses", nil)
	}
	return &dto.HeatmapResponse{EventCode: eventCode, TotalParticipants: 2, MaxOverlap: 2}, nil
}

func buildTestApp(svc *fakeAvailabilityService) *echo.Echo {
	e := echo.New()
	ctrl := NewAvailabilityController(svc)

	g := e.Group("/api/v1/events/:code")
	g.PUT("/responses/:name", ctrl.UpsertResponse)
	g.GET("/responses", ctrl.ListResponses)
	g.DELETE("/responses/:name", ctrl.DeleteResponse)
	g.GET("/heatmap", ctrl.GetHeatmap)
	return e
}

func TestUpsertResponseOK(t *testing.T) {
	svc := &fakeAvailabilityService{}
	app := buildTestApp(svc)

	body := `{"paint_mode":"available","timezone":"UTC","slots":[{"date_index":0,"time_index":0}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/events/abc/responses/Alice", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastUpsertName != "Alice" {
		t.Errorf("expected participant from path, got %q", svc.lastUpsertName)
	}
	if len(svc.lastUpsertReq.Slots) != 1 {
		t.Errorf("expected 1 slot bound from body, got %v", svc.lastUpsertReq.Slots)
	}
}

func TestUpsertResponseNotFound(t *testing.T) {
	app := buildTestApp(&fakeAvailabilityService{})

	body := `{"paint_mode":"available"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/events/missing/responses/Alice", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestListResponsesOK(t *testing.T) {
	app := buildTestApp(&fakeAvailabilityService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/abc/responses", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var envelope struct {
		Data []dto.ResponseDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ParticipantName != "A" {
		t.Errorf("unexpected payload: %+v", envelope.Data)
	}
}

func TestDeleteResponseNotFound(t *testing.T) {
	app := buildTestApp(&fakeAvailabilityService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/abc/responses/ghost", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestGetHeatmapServiceUnavailable(t *testing.T) {
	app := buildTestApp(&fakeAvailabilityService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/down/heatmap", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestGetHeatmapOK(t *testing.T) {
	app := buildTestApp(&fakeAvailabilityService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/abc/heatmap", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var envelope struct {
		Data dto.HeatmapResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Data.EventCode != "abc" || envelope.Data.MaxOverlap != 2 {
		t.Errorf("unexpected payload: %+v", envelope.Data)
	}
}
