// Package eventservice contains the calendar event module: the validation
// and mutation rules for creating, updating, patching and querying a user's
// events.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package eventservice
