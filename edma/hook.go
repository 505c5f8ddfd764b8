package edma

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// Channel lifecycle hook positions. Item is the channel index; Detail
// carries position-specific data.
var (
	HookPosConfigure  = &HookPos{Name: "Configure"}
	HookPosStart      = &HookPos{Name: "Start"}
	HookPosStop       = &HookPos{Name: "Stop"}
	HookPosRelease    = &HookPos{Name: "Release"}
	HookPosCompletion = &HookPos{Name: "Completion"}
)

// HookCtx is the context that holds all the information about the site that
// a hook is triggered.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accepts Hooks.
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable
// object. Completion hooks run in interrupt-dispatch context and must not
// block.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other types that
// implement the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the registered Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
