package suireg

import (
	"encoding/hex"
	"strconv"

	"github.com/ModChain/visualsign/fields"
	"github.com/ModChain/visualsign/sui"
)

// RenderGenericMoveCall renders any MoveCall command with no protocol-aware
// visualizer registered: the target function and each argument, rendered
// by its source (gas coin, input, or a prior command's result) since the
// actual argument values are not resolvable without executing the
// transaction, which is explicitly out of scope.
func RenderGenericMoveCall(call *sui.MoveCallCommand) []*fields.AnnotatedField {
	out := []*fields.AnnotatedField{
		fields.Annotate(fields.Text("Package", call.Package.String())),
		fields.Annotate(fields.Text("Module", call.Module)),
		fields.Annotate(fields.Text("Function", call.Function)),
	}
	for _, t := range call.TypeArguments {
		out = append(out, fields.Annotate(fields.Text("Type argument", t)))
	}
	for i, arg := range call.Arguments {
		out = append(out, fields.Annotate(fields.Text("Argument "+strconv.Itoa(i), DescribeArgument(arg))))
	}
	return out
}

// DescribeArgument renders one Argument's source (the gas coin, a
// ProgrammableTransaction input, or a prior command's result) as a short
// display string; the argument's actual value is never resolvable without
// executing the transaction, which is explicitly out of scope.
func DescribeArgument(a sui.Argument) string {
	switch a.Kind {
	case sui.ArgGasCoin:
		return "gas coin"
	case sui.ArgInput:
		return "input #" + strconv.Itoa(int(a.Index))
	case sui.ArgResult:
		return "result of command #" + strconv.Itoa(int(a.Index))
	case sui.ArgNestedResult:
		return "result #" + strconv.Itoa(int(a.Sub)) + " of command #" + strconv.Itoa(int(a.Index))
	default:
		return "unknown argument"
	}
}

// RenderCallArg renders one ProgrammableTransaction input for display.
func RenderCallArg(arg sui.CallArg) *fields.AnnotatedField {
	switch arg.Kind {
	case sui.CallArgPure:
		return fields.Annotate(fields.Unknown("Input", "0x"+hex.EncodeToString(arg.Pure),
			"pure BCS-encoded value; interpretation depends on the consuming Move function's parameter type"))
	default:
		return fields.Annotate(fields.Address("Input object", arg.Object.ObjectID.String(), "", ""))
	}
}
