package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitions_TerminalStatesAbsorb(t *testing.T) {
	for _, s := range []State{Submitted, Cancelled} {
		for ev := range eventNames {
			_, err := next(s, ev)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s on %s", ev, s)
		}
	}
}

func TestTransitions_AbandonFromAnyLiveState(t *testing.T) {
	for s := range transitions {
		target, err := next(s, EvAbandoned)
		assert.NoError(t, err, s.String())
		assert.Equal(t, Cancelled, target)
	}
}

func TestTransitions_Flow(t *testing.T) {
	testCases := []struct {
		from State
		ev   Event
		want State
	}{
		{Loading, EvStarted, Ready},
		{Ready, EvTimeSet, TimeSelected},
		{TimeSelected, EvTableSelected, TableSelected},
		{TableSelected, EvGuestsConfirmed, GuestCountSelected},
		{GuestCountSelected, EvReviewed, Confirming},
		{Confirming, EvSubmitted, Submitted},
		{Confirming, EvLapsed, TimeSelected},
		{Confirming, EvClosed, GuestCountSelected},
		{GuestCountSelected, EvClosed, TableSelected},
		{TableSelected, EvClosed, TimeSelected},
		{TableSelected, EvTimeSet, TimeSelected},
		{TimeSelected, EvTimeCleared, Ready},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String()+" "+tc.ev.String(), func(t *testing.T) {
			got, err := next(tc.from, tc.ev)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTransitions_Refused(t *testing.T) {
	testCases := []struct {
		from State
		ev   Event
	}{
		{Ready, EvPickerOpened},
		{Ready, EvTableSelected},
		{TimeSelected, EvReviewed},
		{TableSelected, EvSubmitted},
		{GuestCountSelected, EvSubmitted},
		{Loading, EvTimeSet},
	}

	for _, tc := range testCases {
		_, err := next(tc.from, tc.ev)
		var te *TransitionError
		if assert.ErrorAs(t, err, &te) {
			assert.Equal(t, tc.from, te.From)
			assert.Equal(t, "cannot "+tc.ev.String()+" while "+tc.from.String(), err.Error())
		}
	}
}

func TestState_MarshalText(t *testing.T) {
	b, err := GuestCountSelected.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "guest_count_selected", string(b))
	assert.Equal(t, "unknown", State(42).String())
	assert.True(t, Cancelled.Terminal())
	assert.False(t, Confirming.Terminal())
}
