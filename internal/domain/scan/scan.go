// Package scan implements the QR scan resolution protocol: it takes whatever
// string a camera produced and turns it into at most one call to the atomic
// award operation, honoring both structured tokens and the two legacy bare
// UUID code generations.
package scan

import (
	"time"

	"github.com/google/uuid"
)

// User-facing result messages. The wording is part of the protocol contract
// with the mobile frontend; do not rephrase.
const (
	MsgNoCode        = "Código não informado."
	MsgUnknownCode   = "Este QRCode não pertence a esse app"
	MsgOtherEvent    = "Esse QR Code pertence a outro evento."
	MsgUserLookup    = "Erro ao verificar usuário. Tente novamente."
	MsgActivity      = "Erro ao verificar atividade. Tente novamente."
	MsgNoActiveEvent = "Nenhum evento ativo no momento para realizar conexão."
	MsgLoginRequired = "Você precisa estar logado para escanear códigos."
	MsgProcessFailed = "Erro ao processar o código. Tente novamente."
)

// Result is the uniform outcome of a scan. Successful awards carry the
// points granted and/or the name of what was scanned, as reported by the
// award operation.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Points  *int   `json:"points,omitempty"`
	Name    string `json:"name,omitempty"`
}

// Failure builds a failed result with the given message
func Failure(message string) Result {
	return Result{Success: false, Message: message}
}

// Repository interfaces for the scan service. They are deliberately narrow:
// the service only ever needs existence checks and event resolution; all
// mutation goes through the Awarder.

// ProfileLookup resolves legacy user codes.
type ProfileLookup interface {
	// ExistsByQRIdentifier checks the dedicated scan identifier (current
	// legacy scheme).
	ExistsByQRIdentifier(code string) (bool, error)
	// ExistsByID checks the primary identifier (oldest legacy scheme).
	ExistsByID(code string) (bool, error)
}

// ActivityLookup resolves legacy activity codes.
type ActivityLookup interface {
	// ExistsInEvent checks for an activity with the given scan code scoped
	// to one event.
	ExistsInEvent(eventID uuid.UUID, code string) (bool, error)
	// EventIDByCode searches for an activity with the given scan code across
	// all events and returns the owning event of the first match. The legacy
	// schema never guaranteed cross-event uniqueness of scan codes, so the
	// tie-break is whatever the database returns first.
	EventIDByCode(code string) (uuid.UUID, bool, error)
}

// EventLookup resolves the active event for context-free legacy user scans.
type EventLookup interface {
	// ActiveEventID returns the event whose date range contains now,
	// inclusive on both ends. When several overlap, the one with the latest
	// start date wins. found=false is a legitimate outcome, not an error.
	ActiveEventID(now time.Time) (uuid.UUID, bool, error)
}

// Awarder is the storage-side atomic award operation. It is the sole
// serialization point of the protocol: it decides whether the code denotes
// an activity or another user, enforces idempotency and mutates points and
// connections in one transaction.
type Awarder interface {
	Award(actorID, eventID uuid.UUID, code string) (Result, error)
}
