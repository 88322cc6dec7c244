package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/conexa-api/internal/domain/event"
	"github.com/gravadigital/conexa-api/internal/domain/profile"
	"github.com/gravadigital/conexa-api/internal/domain/scan"
	"github.com/gravadigital/conexa-api/internal/middleware/authn"
	"github.com/gravadigital/conexa-api/internal/qrcode"
)

// stubAwarder answers every delegation with a canned result.
type stubAwarder struct {
	result scan.Result
	calls  int
}

func (s *stubAwarder) Award(actorID, eventID uuid.UUID, code string) (scan.Result, error) {
	s.calls++
	return s.result, nil
}

type stubProfileLookup struct{ known map[string]bool }

func (s *stubProfileLookup) ExistsByQRIdentifier(code string) (bool, error) {
	return s.known[code], nil
}
func (s *stubProfileLookup) ExistsByID(code string) (bool, error) { return false, nil }

type stubActivityLookup struct{}

func (stubActivityLookup) ExistsInEvent(eventID uuid.UUID, code string) (bool, error) {
	return false, nil
}
func (stubActivityLookup) EventIDByCode(code string) (uuid.UUID, bool, error) {
	return uuid.Nil, false, nil
}

type stubEventLookup struct{}

func (stubEventLookup) ActiveEventID(now time.Time) (uuid.UUID, bool, error) {
	return uuid.Nil, false, nil
}

// stubEventRepo and stubProfileRepo back the QR endpoint.
type stubEventRepo struct {
	stubEventLookup
	events map[uuid.UUID]*event.Event
}

func (s *stubEventRepo) Create(e *event.Event) error { return nil }
func (s *stubEventRepo) GetByID(id uuid.UUID) (*event.Event, error) {
	if e, ok := s.events[id]; ok {
		return e, nil
	}
	return nil, errStubNotFound
}
func (s *stubEventRepo) GetBySlug(slug string) (*event.Event, error) { return nil, errStubNotFound }
func (s *stubEventRepo) GetAll() ([]*event.Event, error)             { return nil, nil }
func (s *stubEventRepo) Update(e *event.Event) error                 { return nil }
func (s *stubEventRepo) Delete(id uuid.UUID) error                   { return nil }

type stubProfileRepo struct {
	stubProfileLookup
	profiles map[uuid.UUID]*profile.Profile
}

func (s *stubProfileRepo) Create(p *profile.Profile) error { return nil }
func (s *stubProfileRepo) GetByID(id uuid.UUID) (*profile.Profile, error) {
	if p, ok := s.profiles[id]; ok {
		return p, nil
	}
	return nil, errStubNotFound
}
func (s *stubProfileRepo) GetByEmail(email string) (*profile.Profile, error) {
	return nil, errStubNotFound
}
func (s *stubProfileRepo) Update(p *profile.Profile) error { return nil }

var errStubNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "record not found" }

type scanTestEnv struct {
	router  *gin.Engine
	awarder *stubAwarder
	userID  uuid.UUID
	eventID uuid.UUID
	profile *profile.Profile
}

func newScanTestEnv(t *testing.T, authenticated bool) *scanTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &scanTestEnv{
		awarder: &stubAwarder{result: scan.Result{Success: true, Message: "Pontos adicionados!"}},
		userID:  uuid.New(),
		eventID: uuid.New(),
	}

	env.profile = profile.NewProfile("maria@example.com", "hash", "Maria Silva")
	env.profile.ID = env.userID

	profiles := &stubProfileRepo{
		stubProfileLookup: stubProfileLookup{known: map[string]bool{}},
		profiles:          map[uuid.UUID]*profile.Profile{env.userID: env.profile},
	}
	events := &stubEventRepo{
		events: map[uuid.UUID]*event.Event{
			env.eventID: event.NewEvent("Conexa 2026", "", "", time.Now(), time.Now().Add(time.Hour)),
		},
	}

	service := scan.NewService(profiles, stubActivityLookup{}, events, env.awarder)
	handler := NewScanHandler(service, events, profiles, "https://app.conexa.events/")

	env.router = gin.New()
	if authenticated {
		env.router.Use(func(c *gin.Context) {
			c.Set(authn.ContextUserID, env.userID)
		})
	}
	env.router.POST("/api/scan", handler.ProcessScan)
	env.router.GET("/api/events/:id/qrcode", handler.MyQRCode)

	return env
}

func postScan(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/scan", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) scan.Result {
	t.Helper()
	var result scan.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestScanEndpointRequiresLogin(t *testing.T) {
	env := newScanTestEnv(t, false)

	w := postScan(t, env.router, gin.H{"code": uuid.New().String()})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	result := decodeResult(t, w)
	assert.False(t, result.Success)
	assert.Equal(t, scan.MsgLoginRequired, result.Message)
	assert.Zero(t, env.awarder.calls)
}

func TestScanEndpointMissingCode(t *testing.T) {
	env := newScanTestEnv(t, true)

	w := postScan(t, env.router, gin.H{})

	assert.Equal(t, http.StatusOK, w.Code)
	result := decodeResult(t, w)
	assert.False(t, result.Success)
	assert.Equal(t, scan.MsgNoCode, result.Message)
}

func TestScanEndpointInvalidEventID(t *testing.T) {
	env := newScanTestEnv(t, true)

	w := postScan(t, env.router, gin.H{"code": uuid.New().String(), "event_id": "not-a-uuid"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, env.awarder.calls)
}

func TestScanEndpointStructuredToken(t *testing.T) {
	env := newScanTestEnv(t, true)
	token := qrcode.Encode(qrcode.TypeActivity, env.eventID.String(), uuid.New().String())

	w := postScan(t, env.router, gin.H{"code": token, "event_id": env.eventID.String()})

	assert.Equal(t, http.StatusOK, w.Code)
	result := decodeResult(t, w)
	assert.True(t, result.Success)
	assert.Equal(t, "Pontos adicionados!", result.Message)
	assert.Equal(t, 1, env.awarder.calls)
}

func TestScanEndpointCrossEventToken(t *testing.T) {
	env := newScanTestEnv(t, true)
	token := qrcode.Encode(qrcode.TypeActivity, uuid.New().String(), uuid.New().String())

	w := postScan(t, env.router, gin.H{"code": token, "event_id": env.eventID.String()})

	assert.Equal(t, http.StatusOK, w.Code, "protocol failures are still HTTP 200")
	result := decodeResult(t, w)
	assert.False(t, result.Success)
	assert.Equal(t, scan.MsgOtherEvent, result.Message)
	assert.Zero(t, env.awarder.calls)
}

func TestScanEndpointUnknownCode(t *testing.T) {
	env := newScanTestEnv(t, true)

	w := postScan(t, env.router, gin.H{"code": "garbage"})

	assert.Equal(t, http.StatusOK, w.Code)
	result := decodeResult(t, w)
	assert.Equal(t, scan.MsgUnknownCode, result.Message)
}

func TestMyQRCodeEndpoint(t *testing.T) {
	env := newScanTestEnv(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+env.eventID.String()+"/qrcode", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Token string `json:"token"`
			URL   string `json:"url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	payload, ok := qrcode.Decode(envelope.Data.Token)
	require.True(t, ok)
	assert.Equal(t, qrcode.TypeUser, payload.Type)
	assert.Equal(t, env.eventID.String(), payload.EventID)
	assert.Equal(t, env.profile.QRIdentifier.String(), payload.Identifier)
	assert.Equal(t, "https://app.conexa.events/code/"+envelope.Data.Token, envelope.Data.URL)
}

func TestMyQRCodeUnknownEvent(t *testing.T) {
	env := newScanTestEnv(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+uuid.New().String()+"/qrcode", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
