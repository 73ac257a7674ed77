package viewer

import (
	"github.com/spaghettifunk/corridor/engine/core"
)

func (v *Viewer) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	state := v.state()
	key, bound := state.keyMap.Lookup(ke.KeyCode)
	if !bound {
		return false
	}
	state.controller.OnKeyEvent(key, ke.Action)
	return true
}

// onMouseMove forwards every pointer reading; none may be coalesced.
func (v *Viewer) onMouseMove(context core.EventContext) bool {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	v.state().controller.OnPointerMove(me.PosX, me.PosY)
	return true
}

func (v *Viewer) onAssetChanged(context core.EventContext) bool {
	ae, ok := context.Data.(*core.AssetEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if v.requestReload(ae.Path) {
		core.LogInfo("%s changed, reloading", ae.Path)
		return true
	}
	return false
}
