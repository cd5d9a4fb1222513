package appstate

import (
	"log"

	"github.com/sqweek/dialog"
)

// showError is swapped out in tests.
var showError = func(title, message string) {
	dialog.Message("%s", message).Title(title).Error()
}

// DialogAlerter shows editor alerts as native message boxes.
type DialogAlerter struct{}

func (DialogAlerter) Alert(title, message string) {
	log.Printf("%s: %s", title, message)
	showError(title, message)
}
