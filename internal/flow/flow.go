// Package flow resolves which screen a visitor sees. Every transition is
// listed in a fixed table; anything else is rejected.
package flow

import (
	"errors"
	"fmt"
)

type State int

const (
	Loading State = iota
	Landing
	Registering
	AwaitingAdminAuth
	Dashboard
)

var stateNames = [...]string{"Loading", "Landing", "Registering", "AwaitingAdminAuth", "Dashboard"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

type Trigger int

const (
	LoadingDone Trigger = iota
	SessionRestored
	StartRegistration
	BackToLanding
	RegistrationSubmitted
	OpenAdminLogin
	CancelAdminLogin
	LoginSucceeded
	LoginFailed
	Logout
)

var triggerNames = [...]string{
	"LoadingDone", "SessionRestored", "StartRegistration", "BackToLanding", "RegistrationSubmitted",
	"OpenAdminLogin", "CancelAdminLogin", "LoginSucceeded", "LoginFailed", "Logout",
}

func (t Trigger) String() string {
	if t < 0 || int(t) >= len(triggerNames) {
		return fmt.Sprintf("Trigger(%d)", int(t))
	}
	return triggerNames[t]
}

var ErrInvalidTransition = errors.New("invalid transition")

type edge struct {
	from    State
	trigger Trigger
}

// Machine holds the transition table. The zero value is not usable; use New.
type Machine struct {
	table map[edge]State
}

// New returns the machine for the public site and admin dashboard.
func New() *Machine {
	return &Machine{table: map[edge]State{
		{Loading, LoadingDone}:     Landing,
		{Loading, SessionRestored}: Dashboard,
		{Landing, SessionRestored}: Dashboard,

		{Landing, StartRegistration}:         Registering,
		{Registering, BackToLanding}:         Landing,
		{Registering, RegistrationSubmitted}: Landing,

		{Landing, OpenAdminLogin}:             AwaitingAdminAuth,
		{AwaitingAdminAuth, OpenAdminLogin}:   AwaitingAdminAuth,
		{AwaitingAdminAuth, CancelAdminLogin}: Landing,
		{AwaitingAdminAuth, LoginSucceeded}:   Dashboard,
		{AwaitingAdminAuth, LoginFailed}:      AwaitingAdminAuth,

		{Dashboard, SessionRestored}: Dashboard,
	}}
}

// Fire applies trigger to state. Dashboard is only entered when authenticated
// is true; otherwise the request resolves to AwaitingAdminAuth. Logout leads
// to Landing from every state.
func (m *Machine) Fire(state State, trigger Trigger, authenticated bool) (State, error) {
	if trigger == Logout {
		return Landing, nil
	}
	next, ok := m.table[edge{state, trigger}]
	if !ok {
		return state, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, trigger, state)
	}
	if next == Dashboard && !authenticated {
		return AwaitingAdminAuth, nil
	}
	return next, nil
}

// Entry resolves the first screen of a visit: the dashboard when a session
// is restored, the landing page otherwise.
func (m *Machine) Entry(authenticated bool) State {
	trigger := LoadingDone
	if authenticated {
		trigger = SessionRestored
	}
	next, _ := m.Fire(Loading, trigger, authenticated)
	return next
}
