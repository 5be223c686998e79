package handlers

import "expvar"

// Counters published on /debug/vars.
var (
	signInCounter     = expvar.NewMap("clubhouse_sign_ins")
	signUpCounter     = expvar.NewInt("clubhouse_sign_ups")
	escalationCounter = expvar.NewMap("clubhouse_escalations")
	messageCounter    = expvar.NewMap("clubhouse_messages")
)
