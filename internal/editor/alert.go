package editor

import "log"

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(title, message string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(title, message string)

func (f AlertFunc) Alert(title, message string) { f(title, message) }

// LogAlerter writes alerts to the standard logger. It suits headless runs.
type LogAlerter struct{}

func (LogAlerter) Alert(title, message string) { log.Printf("%s: %s", title, message) }
