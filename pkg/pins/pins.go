// Package pins manages the user's pinned-games list. The list is small
// and capped; adding past the cap is rejected with a typed error rather
// than evicting an existing pin, and adding an already-pinned game
// unpins it, mirroring a toggle.
package pins

import (
	"github.com/steamtrack/steamtrack/pkg/constants"
	"github.com/steamtrack/steamtrack/pkg/errors"
)

// Pin is one saved game reference.
type Pin struct {
	AppID string `yaml:"appid" json:"appid"`
	Name  string `yaml:"name" json:"name"`
}

// Store holds an ordered pinned-games list.
type Store interface {
	// List returns the pins in insertion order.
	List() ([]Pin, error)

	// Add appends a pin. Exceeding the cap returns ErrPinListFull; the
	// existing list is untouched.
	Add(pin Pin) error

	// Remove deletes the pin with the given app ID. Removing an unknown
	// ID returns a not-found error.
	Remove(appID string) error

	// Toggle pins the game if absent and unpins it if present. It
	// reports whether the game is pinned afterwards.
	Toggle(pin Pin) (bool, error)

	// Clear empties the list.
	Clear() error
}

// validate rejects structurally unusable pins before they reach a store.
func validate(pin Pin) error {
	if pin.AppID == "" {
		return errors.NewValidationError("appid", pin.AppID, "app ID is required")
	}
	return nil
}

// checkCapacity enforces the pin cap against the current list length.
func checkCapacity(current int) error {
	if current >= constants.MaxPins {
		return errors.ErrPinListFull
	}
	return nil
}

// indexOf finds a pin by app ID within a list, or -1.
func indexOf(list []Pin, appID string) int {
	for i, p := range list {
		if p.AppID == appID {
			return i
		}
	}
	return -1
}
