// Package screen holds the view-models behind each admin screen. A screen is created when it
// is opened and dropped when it is left; it owns its lists, its last error and the field
// errors of its form, and nothing is shared between screens.
//
// Every mutation follows the same cycle: validate the form locally, call the gateway, and on
// success reload the whole list from the server. A failed call leaves the list as it was and
// records the gateway's message in Error.
package screen

import (
	"context"

	"store-admin/pkg/validation"
	"store-admin/services/admin/internal/gateway"
)

// state is the status shared by every screen.
type state struct {
	Loading     bool
	Error       string
	FieldErrors validation.FieldErrors
}

func (s *state) reset() {
	s.Error = ""
	s.FieldErrors = nil
}

func (s *state) failed(err error) error {
	s.Error = gateway.Message(err)
	return err
}

// load runs fetch with Loading raised. Error is cleared only when fetch succeeds.
func (s *state) load(fetch func() error) error {
	s.Loading = true
	defer func() { s.Loading = false }()

	if err := fetch(); err != nil {
		return s.failed(err)
	}
	s.Error = ""
	return nil
}

// mutate validates form (when not nil), runs call and then reload.
func (s *state) mutate(ctx context.Context, form any, extra validation.FieldErrors, call func() error, reload func(context.Context) error) error {
	s.reset()

	var fe validation.FieldErrors
	if form != nil {
		fe = validation.Check(form)
	}
	fe = append(fe, extra...)
	if len(fe) > 0 {
		s.FieldErrors = fe
		return fe
	}

	if err := call(); err != nil {
		return s.failed(err)
	}
	return reload(ctx)
}

func requireID(field, id string) validation.FieldErrors {
	if id == "" {
		return validation.FieldErrors{}.Add(field, "is required")
	}
	return nil
}
