// Package assistant answers storefront chat messages from a fixed list of intents.
package assistant

import (
	"fmt"
	"strings"

	"github.com/shreejewels/storefront/internal/domain"
)

// Reply is the answer to one message. Redirect is a storefront route the widget may navigate to.
type Reply struct {
	Text     string `json:"text"`
	Redirect string `json:"redirect,omitempty"`
	Intent   Intent `json:"intent"`
}

type Intent string

const (
	IntentBothRates Intent = "both_rates"
	IntentGoldRate  Intent = "gold_rate"
	IntentSilver    Intent = "silver_rate"
	IntentScheme    Intent = "scheme"
	IntentLocation  Intent = "location"
	IntentHours     Intent = "hours"
	IntentGreeting  Intent = "greeting"
	IntentThanks    Intent = "thanks"
	IntentFallback  Intent = "fallback"
)

// Facts are the canned store details quoted by the assistant
type Facts struct {
	StoreName string
	Address   string
	Hours     string
}

var DefaultFacts = Facts{
	StoreName: "Shree Jewels",
	Address:   "12 Temple Road, Zaveri Bazaar, Mumbai",
	Hours:     "Monday to Saturday, 10:30 AM to 8:30 PM. Closed on Sundays",
}

type rule struct {
	intent Intent
	match  func(text string) bool
	reply  func(rates domain.MetalRate, facts Facts) Reply
}

func anyOf(words ...string) func(string) bool {
	return func(text string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}

func allOf(words ...string) func(string) bool {
	return func(text string) bool {
		for _, w := range words {
			if !strings.Contains(text, w) {
				return false
			}
		}
		return true
	}
}

// rules are evaluated in order, first match wins
var rules = []rule{
	{IntentBothRates, allOf("gold", "silver"), func(r domain.MetalRate, _ Facts) Reply {
		return Reply{Text: fmt.Sprintf("Today's rates: gold ₹%s/g and silver ₹%s/g.", money(r.Gold), money(r.Silver))}
	}},
	{IntentGoldRate, anyOf("gold"), func(r domain.MetalRate, _ Facts) Reply {
		return Reply{Text: fmt.Sprintf("Today's gold rate is ₹%s per gram%s.", money(r.Gold), trendNote(r.GoldTrend()))}
	}},
	{IntentSilver, anyOf("silver"), func(r domain.MetalRate, _ Facts) Reply {
		return Reply{Text: fmt.Sprintf("Today's silver rate is ₹%s per gram%s.", money(r.Silver), trendNote(r.SilverTrend()))}
	}},
	{IntentScheme, anyOf("scheme", "saving", "plan", "emi"), func(domain.MetalRate, Facts) Reply {
		return Reply{Text: "Our monthly savings schemes help you plan your next purchase. Taking you to the schemes page.", Redirect: "/schemes"}
	}},
	{IntentLocation, anyOf("where", "location", "address", "store", "shop", "visit"), func(_ domain.MetalRate, f Facts) Reply {
		return Reply{Text: fmt.Sprintf("You can visit %s at %s.", f.StoreName, f.Address)}
	}},
	{IntentHours, anyOf("hour", "open", "close", "timing", "time"), func(_ domain.MetalRate, f Facts) Reply {
		return Reply{Text: fmt.Sprintf("We are open %s.", f.Hours)}
	}},
	{IntentGreeting, anyOf("hello", "hi", "hey", "namaste", "good morning", "good evening"), func(_ domain.MetalRate, f Facts) Reply {
		return Reply{Text: fmt.Sprintf("Hello! Welcome to %s. Ask me about today's gold and silver rates, our store or our schemes.", f.StoreName)}
	}},
	{IntentThanks, anyOf("thank", "thx"), func(domain.MetalRate, Facts) Reply {
		return Reply{Text: "You're welcome! Anything else I can help with?"}
	}},
}

// Respond answers text against the current rates with DefaultFacts
func Respond(text string, rates domain.MetalRate) Reply {
	return RespondWith(text, rates, DefaultFacts)
}

func RespondWith(text string, rates domain.MetalRate, facts Facts) Reply {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.match(lower) {
			reply := r.reply(rates, facts)
			reply.Intent = r.intent
			return reply
		}
	}
	return Reply{
		Text:   "I can help with today's gold and silver rates, our store location and hours, or our savings schemes.",
		Intent: IntentFallback,
	}
}

func money(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func trendNote(trend int) string {
	switch trend {
	case 1:
		return ", up from the last update"
	case -1:
		return ", down from the last update"
	}
	return ""
}
