package scan

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gravadigital/conexa-api/internal/logger"
	"github.com/gravadigital/conexa-api/internal/qrcode"
)

// Service is the scan dispatcher. It sequences extraction, structured
// decoding, legacy resolution and event-scope validation, then delegates to
// the award operation at most once per call. Every branch before delegation
// is read-only.
type Service struct {
	profiles   ProfileLookup
	activities ActivityLookup
	events     EventLookup
	awarder    Awarder
	now        func() time.Time
	log        *log.Logger
}

// NewService creates a scan service using the real wall clock
func NewService(profiles ProfileLookup, activities ActivityLookup, events EventLookup, awarder Awarder) *Service {
	return NewServiceWithClock(profiles, activities, events, awarder, time.Now)
}

// NewServiceWithClock creates a scan service with an injected clock. The
// clock only feeds active-event resolution; tests pass a fixed time.
func NewServiceWithClock(profiles ProfileLookup, activities ActivityLookup, events EventLookup, awarder Awarder, now func() time.Time) *Service {
	return &Service{
		profiles:   profiles,
		activities: activities,
		events:     events,
		awarder:    awarder,
		now:        now,
		log:        logger.ScanPipeline(),
	}
}

// ProcessScan resolves a raw scanned value for the acting user and delegates
// to the award operation. contextEventID is the event the user is currently
// viewing; pass uuid.Nil when no event context is known.
//
// The decision sequence stops at the first terminal outcome:
//
//  1. empty input                          -> "no code" failure
//  2. structured token, wrong event        -> cross-event failure
//  3. structured token, event ok           -> delegate with embedded ids
//  4. token prefix but undecodable        -> unrecognized-code failure
//  5. not a canonical UUID                 -> unrecognized-code failure
//  6. legacy user code                     -> delegate with context event,
//     or with the active event when none is known
//  7. legacy activity code                 -> delegate with resolved event,
//     unless it belongs to a different event than the context
//  8. nothing matched                      -> unrecognized-code failure
func (s *Service) ProcessScan(actorID uuid.UUID, rawCode string, contextEventID uuid.UUID) Result {
	if actorID == uuid.Nil {
		return Failure(MsgLoginRequired)
	}

	code := qrcode.Extract(rawCode)
	if code == "" {
		return Failure(MsgNoCode)
	}

	if payload, ok := qrcode.Decode(code); ok {
		return s.processToken(actorID, payload, contextEventID)
	}

	// A recognized marker with a corrupted payload must not be misread as a
	// legacy code, and a legacy code must look like a canonical UUID.
	if qrcode.HasTokenPrefix(code) || !qrcode.IsUUID(code) {
		return Failure(MsgUnknownCode)
	}

	return s.processLegacy(actorID, code, contextEventID)
}

// processToken handles a successfully decoded structured token. Tokens carry
// their own event id; a mismatch with the context is a hard boundary, never
// silently re-scoped.
func (s *Service) processToken(actorID uuid.UUID, payload qrcode.Payload, contextEventID uuid.UUID) Result {
	eventID, err := uuid.Parse(payload.EventID)
	if err != nil {
		// Decode already validated the shape; this cannot happen.
		return Failure(MsgUnknownCode)
	}

	if contextEventID != uuid.Nil && contextEventID != eventID {
		s.log.Debug("token rejected for wrong event", "token_event", eventID, "context_event", contextEventID)
		return Failure(MsgOtherEvent)
	}

	return s.delegate(actorID, eventID, payload.Identifier)
}

// processLegacy handles a bare UUID code. User identity takes precedence
// over activities: a code colliding between a user's legacy identifier and
// an activity scan code resolves as the user.
func (s *Service) processLegacy(actorID uuid.UUID, code string, contextEventID uuid.UUID) Result {
	isUser, err := s.resolveLegacyUser(code)
	if err != nil {
		s.log.Error("legacy user lookup failed", "error", err)
		return Failure(MsgUserLookup)
	}

	if isUser {
		if contextEventID != uuid.Nil {
			return s.delegate(actorID, contextEventID, code)
		}

		eventID, found, err := s.events.ActiveEventID(s.now())
		if err != nil {
			s.log.Error("active event lookup failed", "error", err)
			return Failure(MsgProcessFailed)
		}
		if !found {
			return Failure(MsgNoActiveEvent)
		}
		return s.delegate(actorID, eventID, code)
	}

	eventID, belongsToOtherEvent, err := s.resolveLegacyActivityEvent(code, contextEventID)
	if err != nil {
		s.log.Error("legacy activity lookup failed", "error", err)
		return Failure(MsgActivity)
	}
	if eventID == uuid.Nil {
		return Failure(MsgUnknownCode)
	}
	if belongsToOtherEvent {
		return Failure(MsgOtherEvent)
	}

	return s.delegate(actorID, eventID, code)
}

// resolveLegacyUser checks the two historic user code schemes in order:
// the dedicated qr_identifier first, the primary id as a fallback.
func (s *Service) resolveLegacyUser(code string) (bool, error) {
	found, err := s.profiles.ExistsByQRIdentifier(code)
	if err != nil {
		return false, err
	}
	if found {
		return true, nil
	}
	return s.profiles.ExistsByID(code)
}

// resolveLegacyActivityEvent finds the event owning an activity scan code.
// The event-scoped lookup runs first so a context match always wins; the
// global lookup is the compatibility fallback and flags codes from other
// events. A Nil event id with no error means nothing matched.
func (s *Service) resolveLegacyActivityEvent(code string, contextEventID uuid.UUID) (uuid.UUID, bool, error) {
	if contextEventID != uuid.Nil {
		found, err := s.activities.ExistsInEvent(contextEventID, code)
		if err != nil {
			return uuid.Nil, false, err
		}
		if found {
			return contextEventID, false, nil
		}
	}

	eventID, found, err := s.activities.EventIDByCode(code)
	if err != nil {
		return uuid.Nil, false, err
	}
	if !found {
		return uuid.Nil, false, nil
	}

	belongsToOtherEvent := contextEventID != uuid.Nil && eventID != contextEventID
	return eventID, belongsToOtherEvent, nil
}

// delegate performs the single outward effect of a scan
func (s *Service) delegate(actorID, eventID uuid.UUID, code string) Result {
	result, err := s.awarder.Award(actorID, eventID, code)
	if err != nil {
		s.log.Error("award operation failed", "event_id", eventID, "error", err)
		return Failure(MsgProcessFailed)
	}

	s.log.Debug("scan delegated", "event_id", eventID, "success", result.Success)
	return result
}
