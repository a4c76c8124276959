package satstd

import (
	"fmt"
	"strings"

	"github.com/satorilang/satori/satvm"
)

func init() {
	satvm.RegisterModule("string", stringModuleInit)
}

func stringModuleInit(vm *satvm.VM) {
	vm.RegisterNative("string.to_upper", stringToUpper)
	vm.RegisterNative("string.to_lower", stringToLower)
}

func stringArg(name string, args []satvm.Value) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
	}
	if args[0].Kind != satvm.ValueString {
		return "", fmt.Errorf("%s expects a string argument, got %s", name, args[0].Kind)
	}
	return args[0].S, nil
}

func stringToUpper(vm *satvm.VM, args []satvm.Value) (satvm.Value, error) {
	s, err := stringArg("to_upper", args)
	if err != nil {
		return satvm.Nil(), err
	}
	return satvm.Str(strings.ToUpper(s)), nil
}

func stringToLower(vm *satvm.VM, args []satvm.Value) (satvm.Value, error) {
	s, err := stringArg("to_lower", args)
	if err != nil {
		return satvm.Nil(), err
	}
	return satvm.Str(strings.ToLower(s)), nil
}
