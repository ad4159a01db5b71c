package wizard

import "errors"

var (
	// ErrNoNextStep is returned by Advance on the last step.
	ErrNoNextStep = errors.New("wizard: already on the last step")
	// ErrNoPreviousStep is returned by Retreat on the first step.
	ErrNoPreviousStep = errors.New("wizard: already on the first step")
	// ErrNotLastStep is returned by Submit before the last step is reached.
	ErrNotLastStep = errors.New("wizard: submit is only available on the last step")
	// ErrAlreadySubmitted is returned by Submit until Reset is called.
	ErrAlreadySubmitted = errors.New("wizard: form already submitted")
	// ErrNoStore is returned by Save when the engine has no store.
	ErrNoStore = errors.New("wizard: no store configured")
)
