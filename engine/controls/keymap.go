package controls

import (
	"fmt"

	"github.com/spaghettifunk/corridor/engine/core"
)

// KeyBindings names the keyboard key of each movement intent.
type KeyBindings struct {
	Forward  string `toml:"forward"`
	Backward string `toml:"backward"`
	Left     string `toml:"left"`
	Right    string `toml:"right"`
}

func DefaultKeyBindings() KeyBindings {
	return KeyBindings{Forward: "W", Backward: "S", Left: "A", Right: "D"}
}

// KeyMap resolves keyboard codes to movement keys.
type KeyMap map[core.KeyCode]MoveKey

func NewKeyMap(b KeyBindings) (KeyMap, error) {
	km := KeyMap{}
	for _, binding := range []struct {
		name string
		key  MoveKey
	}{
		{b.Forward, MoveForward},
		{b.Backward, MoveBackward},
		{b.Left, MoveLeft},
		{b.Right, MoveRight},
	} {
		code, err := core.ParseKeyCode(binding.name)
		if err != nil {
			return nil, fmt.Errorf("controls.keys.%s: %w", binding.key, err)
		}
		if prev, taken := km[code]; taken {
			return nil, fmt.Errorf("%w: key %q bound to both %s and %s", core.ErrInvalidConfig, binding.name, prev, binding.key)
		}
		km[code] = binding.key
	}
	return km, nil
}

func (km KeyMap) Lookup(code core.KeyCode) (MoveKey, bool) {
	k, ok := km[code]
	return k, ok
}
