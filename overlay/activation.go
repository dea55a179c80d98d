package overlay

import "sync"

// Activation is a level-triggered flag: active while the modifier combination is held and the window has focus
type Activation struct {
	combination Modifiers
	onChange    func()

	mux      sync.Mutex
	active   bool
	attached bool
}

// NewActivation creates an activation for combination
func NewActivation(combination Modifiers, onChange func()) *Activation {
	if combination == 0 {
		combination = DefaultModifiers
	}
	if onChange == nil {
		onChange = func() {}
	}
	return &Activation{combination: combination, onChange: onChange}
}

// Attach registers key and focus listeners on host and returns the release func
func (a *Activation) Attach(host Host) (detach func()) {
	a.mux.Lock()
	a.attached = true
	a.mux.Unlock()
	releases := []func(){
		host.Listen(EventKeyDown, func(ev Event) { a.set(ev.Modifiers.Has(a.combination)) }),
		host.Listen(EventKeyUp, func(ev Event) { a.set(ev.Modifiers.Has(a.combination)) }),
		host.Listen(EventBlur, func(Event) { a.set(false) }),
	}
	return func() {
		for _, release := range releases {
			release()
		}
		a.mux.Lock()
		defer a.mux.Unlock()
		a.attached = false
		a.active = false
	}
}

// KeyDown handles a key press with the currently held modifiers
func (a *Activation) KeyDown(held Modifiers) {
	a.set(held.Has(a.combination))
}

// KeyUp handles a key release with the modifiers still held
func (a *Activation) KeyUp(held Modifiers) {
	a.set(held.Has(a.combination))
}

// Blur handles the window losing focus
func (a *Activation) Blur() {
	a.set(false)
}

func (a *Activation) set(active bool) {
	a.mux.Lock()
	if !a.attached || a.active == active {
		a.mux.Unlock()
		return
	}
	a.active = active
	a.mux.Unlock()
	a.onChange()
}

// Active returns the activation state
func (a *Activation) Active() bool {
	a.mux.Lock()
	defer a.mux.Unlock()
	return a.active
}
