package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shreejewels/storefront/internal/domain"
)

var rates = domain.MetalRate{Gold: 6250, Silver: 78, PreviousGold: 6200, PreviousSilver: 78}

func TestRespond_CombinedRatesWinsOverSingleMetal(t *testing.T) {
	reply := Respond("What are the gold and silver rates?", rates)
	assert.Equal(t, IntentBothRates, reply.Intent)
	assert.Contains(t, reply.Text, "6250")
	assert.Contains(t, reply.Text, "78")
	assert.Empty(t, reply.Redirect)
}

func TestRespond_Intents(t *testing.T) {
	tests := []struct {
		text     string
		intent   Intent
		contains string
		redirect string
	}{
		{"GOLD price today?", IntentGoldRate, "6250", ""},
		{"silver rate please", IntentSilver, "78", ""},
		{"Tell me about your scheme", IntentScheme, "schemes", "/schemes"},
		{"Where is the store?", IntentLocation, "Zaveri Bazaar", ""},
		{"What are your opening hours", IntentHours, "Monday", ""},
		{"Hello", IntentGreeting, "Welcome", ""},
		{"thank you", IntentThanks, "welcome", ""},
		{"do you sell watches", IntentFallback, "rates", ""},
		{"", IntentFallback, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			reply := Respond(tt.text, rates)
			assert.Equal(t, tt.intent, reply.Intent)
			assert.Contains(t, reply.Text, tt.contains)
			assert.Equal(t, tt.redirect, reply.Redirect)
		})
	}
}

func TestRespond_GoldBeforeScheme(t *testing.T) {
	reply := Respond("gold saving scheme", rates)
	assert.Equal(t, IntentGoldRate, reply.Intent)
}

func TestRespond_Trend(t *testing.T) {
	assert.Contains(t, Respond("gold", rates).Text, "up from")
	assert.NotContains(t, Respond("silver", rates).Text, "from the last update")
	assert.Equal(t, "78.50", money(78.5))
}
