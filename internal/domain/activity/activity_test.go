package activity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFromString(t *testing.T) {
	parsed, ok := TypeFromString("mission")
	require.True(t, ok)
	assert.Equal(t, TypeMission, parsed)

	parsed, ok = TypeFromString("hidden_point")
	require.True(t, ok)
	assert.Equal(t, TypeHiddenPoint, parsed)

	_, ok = TypeFromString("sponsor")
	assert.False(t, ok)
	_, ok = TypeFromString("")
	assert.False(t, ok)
}

func TestNewActivity(t *testing.T) {
	eventID := uuid.New()
	a := NewActivity(eventID, TypeMission, "Visitar o estande", "", "", 10)

	assert.Equal(t, eventID, a.EventID)
	assert.NotEqual(t, uuid.Nil, a.Identifier)
	assert.NotEqual(t, a.ID, a.Identifier, "scan identifier is independent from the primary id")
	require.NoError(t, a.Validate())
}

func TestActivityValidate(t *testing.T) {
	a := NewActivity(uuid.Nil, TypeMission, "Visitar o estande", "", "", 10)
	assert.Error(t, a.Validate(), "event binding is required")

	a = NewActivity(uuid.New(), Type("sponsor"), "Visitar o estande", "", "", 10)
	assert.Error(t, a.Validate())

	a = NewActivity(uuid.New(), TypeMission, "", "", "", 10)
	assert.Error(t, a.Validate())

	a = NewActivity(uuid.New(), TypeMission, "Visitar o estande", "", "", -1)
	assert.Error(t, a.Validate())
}

func TestTypeScan(t *testing.T) {
	var parsed Type
	require.NoError(t, parsed.Scan("hidden_point"))
	assert.Equal(t, TypeHiddenPoint, parsed)

	require.NoError(t, parsed.Scan([]byte("mission")))
	assert.Equal(t, TypeMission, parsed)

	assert.Error(t, parsed.Scan("sponsor"))
	assert.Error(t, parsed.Scan(nil))
	assert.Error(t, parsed.Scan(42))
}
