package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel(t *testing.T) {
	assert.Equal(t, "donation-update-17", Channel(17))
}

func TestEncodeEvent(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	b, err := encodeEvent(KindDonation, 3, map[string]any{"id": 9, "amount": 500}, at)
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(b, &ev))
	assert.Equal(t, KindDonation, ev.Type)
	assert.Equal(t, int64(3), ev.UserID)
	assert.True(t, ev.At.Equal(at))
	assert.Equal(t, time.UTC, ev.At.Location())
	assert.JSONEq(t, `{"id":9,"amount":500}`, string(ev.Record))
}

func TestEncodeEvent_Unmarshalable(t *testing.T) {
	_, err := encodeEvent(KindCause, 1, make(chan int), time.Now())
	assert.Error(t, err)
}
