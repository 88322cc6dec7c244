package scan

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/conexa-api/internal/qrcode"
)

// fakeProfiles resolves legacy user codes from in-memory sets.
type fakeProfiles struct {
	qrIdentifiers map[string]bool
	ids           map[string]bool
	err           error
	calls         int
}

func (f *fakeProfiles) ExistsByQRIdentifier(code string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.qrIdentifiers[code], nil
}

func (f *fakeProfiles) ExistsByID(code string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.ids[code], nil
}

// fakeActivities resolves legacy activity codes. scoped maps event id to the
// codes it owns; global maps a code to its owning event.
type fakeActivities struct {
	scoped map[uuid.UUID]map[string]bool
	global map[string]uuid.UUID
	err    error
	calls  int
}

func (f *fakeActivities) ExistsInEvent(eventID uuid.UUID, code string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.scoped[eventID][code], nil
}

func (f *fakeActivities) EventIDByCode(code string) (uuid.UUID, bool, error) {
	f.calls++
	if f.err != nil {
		return uuid.Nil, false, f.err
	}
	eventID, ok := f.global[code]
	return eventID, ok, nil
}

type fakeEvents struct {
	activeID uuid.UUID
	found    bool
	err      error
	calls    int
	lastNow  time.Time
}

func (f *fakeEvents) ActiveEventID(now time.Time) (uuid.UUID, bool, error) {
	f.calls++
	f.lastNow = now
	if f.err != nil {
		return uuid.Nil, false, f.err
	}
	return f.activeID, f.found, nil
}

// fakeAwarder records every delegation.
type fakeAwarder struct {
	result Result
	err    error

	calls       int
	lastActorID uuid.UUID
	lastEventID uuid.UUID
	lastCode    string
}

func (f *fakeAwarder) Award(actorID, eventID uuid.UUID, code string) (Result, error) {
	f.calls++
	f.lastActorID = actorID
	f.lastEventID = eventID
	f.lastCode = code
	if f.err != nil {
		return Result{}, f.err
	}
	return f.result, nil
}

type fixture struct {
	profiles   *fakeProfiles
	activities *fakeActivities
	events     *fakeEvents
	awarder    *fakeAwarder
	service    *Service
}

var testClock = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		profiles:   &fakeProfiles{qrIdentifiers: map[string]bool{}, ids: map[string]bool{}},
		activities: &fakeActivities{scoped: map[uuid.UUID]map[string]bool{}, global: map[string]uuid.UUID{}},
		events:     &fakeEvents{},
		awarder:    &fakeAwarder{result: Result{Success: true, Message: "Pontos adicionados!"}},
	}
	f.service = NewServiceWithClock(f.profiles, f.activities, f.events, f.awarder, func() time.Time { return testClock })
	return f
}

var (
	actorID   = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	eventA    = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	eventB    = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	legacyOne = "44444444-4444-4444-4444-444444444444"
)

func TestProcessScanRequiresLogin(t *testing.T) {
	f := newFixture()

	result := f.service.ProcessScan(uuid.Nil, legacyOne, eventA)

	assert.False(t, result.Success)
	assert.Equal(t, MsgLoginRequired, result.Message)
	assert.Zero(t, f.awarder.calls, "anonymous scans must never delegate")
	assert.Zero(t, f.profiles.calls, "anonymous scans must never hit the database")
}

func TestProcessScanEmptyInput(t *testing.T) {
	f := newFixture()

	for _, raw := range []string{"", "   ", "\t\n"} {
		result := f.service.ProcessScan(actorID, raw, eventA)

		assert.False(t, result.Success)
		assert.Equal(t, MsgNoCode, result.Message)
	}
	assert.Zero(t, f.awarder.calls)
}

func TestProcessScanStructuredTokenDelegates(t *testing.T) {
	f := newFixture()
	identifier := uuid.New().String()
	token := qrcode.Encode(qrcode.TypeActivity, eventA.String(), identifier)

	result := f.service.ProcessScan(actorID, token, eventA)

	assert.True(t, result.Success)
	require.Equal(t, 1, f.awarder.calls)
	assert.Equal(t, actorID, f.awarder.lastActorID)
	assert.Equal(t, eventA, f.awarder.lastEventID)
	assert.Equal(t, identifier, f.awarder.lastCode, "the embedded identifier is forwarded, not the raw token")
	assert.Zero(t, f.profiles.calls, "structured tokens skip legacy resolution")
	assert.Zero(t, f.activities.calls)
}

func TestProcessScanStructuredTokenFromURL(t *testing.T) {
	f := newFixture()
	identifier := uuid.New().String()
	raw := "https://app.conexa.events/scan/code/" + qrcode.Encode(qrcode.TypeUser, eventA.String(), identifier)

	result := f.service.ProcessScan(actorID, raw, uuid.Nil)

	assert.True(t, result.Success)
	require.Equal(t, 1, f.awarder.calls)
	assert.Equal(t, identifier, f.awarder.lastCode)
}

func TestProcessScanStructuredTokenWrongEvent(t *testing.T) {
	f := newFixture()
	token := qrcode.Encode(qrcode.TypeActivity, eventB.String(), uuid.New().String())

	result := f.service.ProcessScan(actorID, token, eventA)

	assert.False(t, result.Success)
	assert.Equal(t, MsgOtherEvent, result.Message)
	assert.Zero(t, f.awarder.calls, "cross-event tokens must not delegate")
}

func TestProcessScanStructuredTokenNoContext(t *testing.T) {
	f := newFixture()
	token := qrcode.Encode(qrcode.TypeActivity, eventB.String(), uuid.New().String())

	result := f.service.ProcessScan(actorID, token, uuid.Nil)

	assert.True(t, result.Success)
	assert.Equal(t, eventB, f.awarder.lastEventID, "without context the token's own event applies")
}

func TestProcessScanCorruptedToken(t *testing.T) {
	f := newFixture()

	for _, raw := range []string{
		qrcode.TokenPrefix + "not-base64!!!",
		qrcode.TokenPrefix,
		qrcode.TokenPrefix + "eyJ2IjoyfQ",
	} {
		result := f.service.ProcessScan(actorID, raw, eventA)

		assert.False(t, result.Success)
		assert.Equal(t, MsgUnknownCode, result.Message, "prefixed but undecodable codes are corrupted, not legacy")
	}
	assert.Zero(t, f.profiles.calls, "corrupted tokens never reach legacy resolution")
	assert.Zero(t, f.awarder.calls)
}

func TestProcessScanGarbageInput(t *testing.T) {
	f := newFixture()

	for _, raw := range []string{"hello", "12345", "not-a-uuid", "44444444-4444-4444-4444"} {
		result := f.service.ProcessScan(actorID, raw, eventA)

		assert.False(t, result.Success)
		assert.Equal(t, MsgUnknownCode, result.Message)
	}
	assert.Zero(t, f.profiles.calls, "non-UUID codes are rejected without any lookups")
	assert.Zero(t, f.activities.calls)
	assert.Zero(t, f.awarder.calls)
}

func TestProcessScanLegacyUserWithContext(t *testing.T) {
	f := newFixture()
	f.profiles.qrIdentifiers[legacyOne] = true
	f.awarder.result = Result{Success: true, Message: "Conexão realizada!"}

	result := f.service.ProcessScan(actorID, legacyOne, eventA)

	assert.True(t, result.Success)
	require.Equal(t, 1, f.awarder.calls)
	assert.Equal(t, eventA, f.awarder.lastEventID)
	assert.Equal(t, legacyOne, f.awarder.lastCode)
	assert.Zero(t, f.events.calls, "context event known, no active-event lookup")
}

func TestProcessScanLegacyUserByPrimaryID(t *testing.T) {
	f := newFixture()
	f.profiles.ids[legacyOne] = true

	result := f.service.ProcessScan(actorID, legacyOne, eventA)

	assert.True(t, result.Success)
	assert.Equal(t, 1, f.awarder.calls, "the oldest code generation still resolves")
}

func TestProcessScanLegacyUserNoContextActiveEvent(t *testing.T) {
	f := newFixture()
	f.profiles.qrIdentifiers[legacyOne] = true
	f.events.activeID = eventB
	f.events.found = true

	result := f.service.ProcessScan(actorID, legacyOne, uuid.Nil)

	assert.True(t, result.Success)
	assert.Equal(t, eventB, f.awarder.lastEventID, "context-free user scans bind to the active event")
	assert.Equal(t, testClock, f.events.lastNow, "active-event resolution uses the injected clock")
}

func TestProcessScanLegacyUserNoContextNoActiveEvent(t *testing.T) {
	f := newFixture()
	f.profiles.qrIdentifiers[legacyOne] = true
	f.events.found = false

	result := f.service.ProcessScan(actorID, legacyOne, uuid.Nil)

	assert.False(t, result.Success)
	assert.Equal(t, MsgNoActiveEvent, result.Message)
	assert.Zero(t, f.awarder.calls)
}

func TestProcessScanLegacyUserNoContextActiveEventError(t *testing.T) {
	f := newFixture()
	f.profiles.qrIdentifiers[legacyOne] = true
	f.events.err = errors.New("connection reset")

	result := f.service.ProcessScan(actorID, legacyOne, uuid.Nil)

	assert.False(t, result.Success)
	assert.Equal(t, MsgProcessFailed, result.Message)
	assert.Zero(t, f.awarder.calls)
}

func TestProcessScanLegacyUserLookupError(t *testing.T) {
	f := newFixture()
	f.profiles.err = errors.New("connection reset")

	result := f.service.ProcessScan(actorID, legacyOne, eventA)

	assert.False(t, result.Success)
	assert.Equal(t, MsgUserLookup, result.Message)
	assert.Zero(t, f.activities.calls, "a failed user lookup must not fall through to activities")
	assert.Zero(t, f.awarder.calls)
}

func TestProcessScanLegacyActivityInContext(t *testing.T) {
	f := newFixture()
	f.activities.scoped[eventA] = map[string]bool{legacyOne: true}

	result := f.service.ProcessScan(actorID, legacyOne, eventA)

	assert.True(t, result.Success)
	assert.Equal(t, eventA, f.awarder.lastEventID)
	assert.Equal(t, legacyOne, f.awarder.lastCode)
}

func TestProcessScanLegacyActivityScopedLookupWins(t *testing.T) {
	// The code exists in the context event and, through the legacy schema's
	// lack of cross-event uniqueness, in another event too. The scoped match
	// must win.
	f := newFixture()
	f.activities.scoped[eventA] = map[string]bool{legacyOne: true}
	f.activities.global = map[string]uuid.UUID{legacyOne: eventB}

	result := f.service.ProcessScan(actorID, legacyOne, eventA)

	assert.True(t, result.Success)
	assert.Equal(t, eventA, f.awarder.lastEventID)
}

func TestProcessScanLegacyActivityOtherEvent(t *testing.T) {
	f := newFixture()
	f.activities.global = map[string]uuid.UUID{legacyOne: eventB}

	result := f.service.ProcessScan(actorID, legacyOne, eventA)

	assert.False(t, result.Success)
	assert.Equal(t, MsgOtherEvent, result.Message)
	assert.Zero(t, f.awarder.calls)
}

func TestProcessScanLegacyActivityGlobalFallbackNoContext(t *testing.T) {
	f := newFixture()
	f.activities.global = map[string]uuid.UUID{legacyOne: eventB}

	result := f.service.ProcessScan(actorID, legacyOne, uuid.Nil)

	assert.True(t, result.Success)
	assert.Equal(t, eventB, f.awarder.lastEventID, "without context the owning event applies")
}

func TestProcessScanLegacyActivityUnknown(t *testing.T) {
	f := newFixture()

	result := f.service.ProcessScan(actorID, legacyOne, eventA)

	assert.False(t, result.Success)
	assert.Equal(t, MsgUnknownCode, result.Message)
	assert.Zero(t, f.awarder.calls)
}

func TestProcessScanLegacyActivityLookupError(t *testing.T) {
	f := newFixture()
	f.activities.err = errors.New("connection reset")

	result := f.service.ProcessScan(actorID, legacyOne, eventA)

	assert.False(t, result.Success)
	assert.Equal(t, MsgActivity, result.Message)
	assert.Zero(t, f.awarder.calls)
}

func TestProcessScanUserPrecedenceOverActivity(t *testing.T) {
	// A code registered both as a user identifier and as an activity code in
	// another event resolves as the user: identity beats activities.
	f := newFixture()
	f.profiles.qrIdentifiers[legacyOne] = true
	f.activities.global = map[string]uuid.UUID{legacyOne: eventB}

	result := f.service.ProcessScan(actorID, legacyOne, eventA)

	assert.True(t, result.Success)
	assert.Equal(t, eventA, f.awarder.lastEventID, "resolved as a user scan in the context event")
	assert.Zero(t, f.activities.calls, "activity resolution never runs for user codes")
}

func TestProcessScanAwardFailure(t *testing.T) {
	f := newFixture()
	f.profiles.qrIdentifiers[legacyOne] = true
	f.awarder.err = errors.New("deadlock detected")

	result := f.service.ProcessScan(actorID, legacyOne, eventA)

	assert.False(t, result.Success)
	assert.Equal(t, MsgProcessFailed, result.Message)
	assert.Equal(t, 1, f.awarder.calls, "the award operation is attempted exactly once")
}

func TestProcessScanAwardResultPassedThrough(t *testing.T) {
	f := newFixture()
	points := 10
	f.profiles.qrIdentifiers[legacyOne] = true
	f.awarder.result = Result{Success: false, Message: "Você já se conectou com essa pessoa."}

	result := f.service.ProcessScan(actorID, legacyOne, eventA)

	assert.False(t, result.Success)
	assert.Equal(t, "Você já se conectou com essa pessoa.", result.Message, "award outcomes are returned verbatim")

	f2 := newFixture()
	f2.activities.scoped[eventA] = map[string]bool{legacyOne: true}
	f2.awarder.result = Result{Success: true, Message: "Pontos adicionados!", Points: &points, Name: "Palestra principal"}

	result = f2.service.ProcessScan(actorID, legacyOne, eventA)

	assert.True(t, result.Success)
	require.NotNil(t, result.Points)
	assert.Equal(t, 10, *result.Points)
	assert.Equal(t, "Palestra principal", result.Name)
}

func TestProcessScanCaseInsensitiveLegacyCode(t *testing.T) {
	f := newFixture()
	upper := "44444444-4444-4444-4444-44444444444A"
	f.profiles.qrIdentifiers[upper] = true

	result := f.service.ProcessScan(actorID, upper, eventA)

	assert.True(t, result.Success, "uppercase hex digits are still a canonical UUID")
}
