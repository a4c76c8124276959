package debugs

import (
	"github.com/satorilang/satori/satvm"
)

// VMSnapshot flattens post-run VM state into plain Go values for
// starlark evaluation.
func VMSnapshot(vm *satvm.VM, chunk *satvm.Chunk) map[string]any {
	globals := make(map[string]any)
	for _, key := range vm.Globals().Keys() {
		value, _ := vm.Globals().Get(key)
		globals[key] = value.String()
	}

	return map[string]any{
		"globals":        globals,
		"loaded_modules": vm.LoadedModules().Keys(),
		"local_count":    vm.LocalCount(),
		"code_size":      len(chunk.Code),
		"constant_count": len(chunk.Constants),
	}
}
