// Package satstd holds the built-in modules. Each module registers its
// initializer with the process-level registry from init, so importing
// this package (blank import in the CLI, direct in tests) makes every
// built-in available to OP_IMPORT.
package satstd

import (
	"fmt"
	"io"
	"strings"

	"github.com/satorilang/satori/satvm"
)

func init() {
	satvm.RegisterModule("io", ioModuleInit)
}

func ioModuleInit(vm *satvm.VM) {
	vm.RegisterNative("io.println", ioPrintln)
	vm.RegisterNative("io.print", ioPrint)
}

// printFormatted renders a format string, substituting each `{}` pair
// with the next argument after the format string. Pairs beyond the
// argument list render nothing.
func printFormatted(w io.Writer, format string, args []satvm.Value) {
	argIndex := 1
	for {
		idx := strings.Index(format, "{}")
		if idx < 0 {
			fmt.Fprint(w, format)
			return
		}
		fmt.Fprint(w, format[:idx])
		if argIndex < len(args) {
			fmt.Fprint(w, args[argIndex])
			argIndex++
		}
		format = format[idx+2:]
	}
}

func printValues(w io.Writer, args []satvm.Value) {
	if len(args) == 0 {
		return
	}

	if args[0].Kind != satvm.ValueString {
		fmt.Fprint(w, args[0])
		return
	}

	format := args[0].S
	if len(args) == 1 {
		fmt.Fprint(w, format)
		return
	}
	printFormatted(w, format, args)
}

func ioPrintln(vm *satvm.VM, args []satvm.Value) (satvm.Value, error) {
	printValues(vm.Stdout(), args)
	fmt.Fprintln(vm.Stdout())
	return satvm.Nil(), nil
}

func ioPrint(vm *satvm.VM, args []satvm.Value) (satvm.Value, error) {
	printValues(vm.Stdout(), args)
	return satvm.Nil(), nil
}
