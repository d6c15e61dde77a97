package fault

import "sync"

// Active holds the faults currently raised by the refresh loop so repeated failures are
// reported once.
type Active struct {
	faults []string
	sync.RWMutex
}

// Raise adds fault and returns true if it was not already active.
func (a *Active) Raise(fault string) bool {
	a.Lock()
	defer a.Unlock()
	for _, f := range a.faults {
		if f == fault {
			return false
		}
	}

	a.faults = append(a.faults, fault)
	return true
}

// Clear removes all faults and returns the ones that were active.
func (a *Active) Clear() []string {
	a.Lock()
	cleared := a.faults
	a.faults = nil
	a.Unlock()
	return cleared
}

func (a *Active) List() []string {
	a.RLock()
	defer a.RUnlock()
	return append([]string(nil), a.faults...)
}
