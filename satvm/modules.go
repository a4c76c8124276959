package satvm

import "fmt"

// ModuleInit populates a VM's globals with the module's natives via
// RegisterNative.
type ModuleInit func(vm *VM)

// The process-level module registry. Built-in modules register here from
// their package init; the registry is read-only once VMs start running.
var moduleRegistry = map[string]ModuleInit{}

func RegisterModule(name string, init ModuleInit) {
	if _, ok := moduleRegistry[name]; ok {
		panic(fmt.Errorf("duplicated module %s", name))
	}
	moduleRegistry[name] = init
}

// RegisteredModules returns the registered module names, in no
// particular order.
func RegisteredModules() []string {
	names := make([]string, 0, len(moduleRegistry))
	for name := range moduleRegistry {
		names = append(names, name)
	}
	return names
}

// RegisterNative binds a qualified name ("module.member") to a native
// function in this VM's globals.
func (vm *VM) RegisterNative(qualifiedName string, fn func(vm *VM, args []Value) (Value, error)) {
	vm.globals.Set(qualifiedName, Native(&NativeFunc{
		Name: qualifiedName,
		Func: fn,
	}))
}

// loadModule is the OP_IMPORT handler. Loading is idempotent: a loaded
// module's initializer never runs twice in one VM.
func (vm *VM) loadModule(name string) error {
	if _, ok := vm.loadedModules.Get(name); ok {
		return nil
	}

	init, ok := moduleRegistry[name]
	if !ok {
		return fmt.Errorf("failed to load module: unknown module '%s'", name)
	}
	if vm.allowedModules != nil && !vm.allowedModules[name] {
		return fmt.Errorf("failed to load module: module '%s' is not allowed", name)
	}

	init(vm)
	vm.loadedModules.Set(name, Bool(true))
	return nil
}
