package sui

import (
	"encoding/hex"

	"github.com/ModChain/visualsign/visignerr"
)

// Address is a 32-byte Sui address or object ID, rendered 0x-hex the way
// the Sui CLI and explorers do.
type Address [32]byte

// String renders the address as 0x-prefixed hex, Sui's canonical form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// ObjectRef identifies a single object input: its ID, version, and digest.
type ObjectRef struct {
	ObjectID Address
	Version  uint64
	Digest   []byte // 32-byte object digest
}

// CallArgKind discriminates a ProgrammableTransaction's CallArg variants.
type CallArgKind int

const (
	CallArgPure CallArgKind = iota
	CallArgObjectImmOrOwned
	CallArgObjectShared
	CallArgObjectReceiving
)

// CallArg is one input to a ProgrammableTransaction: either raw BCS-encoded
// "pure" bytes or a reference to an on-chain object.
type CallArg struct {
	Kind       CallArgKind
	Pure       []byte
	Object     ObjectRef
	Mutable    bool // ObjectShared only
	InitialSharedVersion uint64 // ObjectShared only
}

// ArgumentKind discriminates a Command Argument's source.
type ArgumentKind int

const (
	ArgGasCoin ArgumentKind = iota
	ArgInput
	ArgResult
	ArgNestedResult
)

// Argument references a value flowing into a command: the transaction's gas
// coin, one of its CallArg inputs, or the output of an earlier command.
type Argument struct {
	Kind   ArgumentKind
	Index  uint16 // Input/Result index
	Sub    uint16 // NestedResult sub-index
}

// CommandKind discriminates the seven ProgrammableTransaction command
// variants.
type CommandKind int

const (
	CommandMoveCall CommandKind = iota
	CommandTransferObjects
	CommandSplitCoins
	CommandMergeCoins
	CommandPublish
	CommandMakeMoveVec
	CommandUpgrade
)

// MoveCallCommand invokes an on-chain Move function.
type MoveCallCommand struct {
	Package       Address
	Module        string
	Function      string
	TypeArguments []string
	Arguments     []Argument
}

// Command is one step of a ProgrammableTransaction. Exactly one of the
// typed fields matching Kind is populated.
type Command struct {
	Kind CommandKind

	MoveCall *MoveCallCommand

	// TransferObjects
	TransferObjects *TransferObjectsCommand
	// SplitCoins
	SplitCoins *SplitCoinsCommand
	// MergeCoins
	MergeCoins *MergeCoinsCommand
	// MakeMoveVec
	MakeMoveVec *MakeMoveVecCommand
	// Publish / Upgrade carry module bytecode, not semantically rendered
	// beyond a byte count. The raw bytes surface in an unknown field so
	// nothing is dropped; decoding Move bytecode is out of scope.
	Publish *PublishCommand
	Upgrade *UpgradeCommand
}

type TransferObjectsCommand struct {
	Objects   []Argument
	Recipient Argument
}

type SplitCoinsCommand struct {
	Coin    Argument
	Amounts []Argument
}

type MergeCoinsCommand struct {
	Destination Argument
	Sources     []Argument
}

type MakeMoveVecCommand struct {
	ElemType string // empty if not specified (Option::None)
	Elements []Argument
}

type PublishCommand struct {
	Modules      [][]byte
	Dependencies []Address
}

type UpgradeCommand struct {
	Modules      [][]byte
	Dependencies []Address
	Package      Address
	Ticket       Argument
}

// ProgrammableTransaction is the decoded transaction kind body: its inputs
// and the sequence of commands operating on them.
type ProgrammableTransaction struct {
	Inputs   []CallArg
	Commands []Command
}

func readAddress(c *Cursor) (Address, error) {
	b, err := c.ReadFixedBytes(32)
	if err != nil {
		return Address{}, err
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

func readObjectRef(c *Cursor) (ObjectRef, error) {
	id, err := readAddress(c)
	if err != nil {
		return ObjectRef{}, err
	}
	version, err := c.ReadUint64()
	if err != nil {
		return ObjectRef{}, err
	}
	digest, err := c.ReadFixedBytes(32)
	if err != nil {
		return ObjectRef{}, err
	}
	return ObjectRef{ObjectID: id, Version: version, Digest: digest}, nil
}

func readCallArg(c *Cursor) (CallArg, error) {
	tag, err := c.ReadByte()
	if err != nil {
		return CallArg{}, err
	}
	switch tag {
	case 0: // Pure
		data, err := c.ReadVecBytes()
		if err != nil {
			return CallArg{}, err
		}
		return CallArg{Kind: CallArgPure, Pure: data}, nil
	case 1: // Object
		objTag, err := c.ReadByte()
		if err != nil {
			return CallArg{}, err
		}
		switch objTag {
		case 0: // ImmOrOwnedObject
			ref, err := readObjectRef(c)
			if err != nil {
				return CallArg{}, err
			}
			return CallArg{Kind: CallArgObjectImmOrOwned, Object: ref}, nil
		case 1: // SharedObject
			id, err := readAddress(c)
			if err != nil {
				return CallArg{}, err
			}
			initialVersion, err := c.ReadUint64()
			if err != nil {
				return CallArg{}, err
			}
			mutable, err := c.ReadBool()
			if err != nil {
				return CallArg{}, err
			}
			return CallArg{
				Kind:                 CallArgObjectShared,
				Object:               ObjectRef{ObjectID: id},
				InitialSharedVersion: initialVersion,
				Mutable:              mutable,
			}, nil
		case 2: // Receiving
			ref, err := readObjectRef(c)
			if err != nil {
				return CallArg{}, err
			}
			return CallArg{Kind: CallArgObjectReceiving, Object: ref}, nil
		default:
			return CallArg{}, visignerr.Calldata("UnknownObjectArgTag", c.Pos(), nil)
		}
	default:
		return CallArg{}, visignerr.Calldata("UnknownCallArgTag", c.Pos(), nil)
	}
}

func readArgument(c *Cursor) (Argument, error) {
	tag, err := c.ReadByte()
	if err != nil {
		return Argument{}, err
	}
	switch tag {
	case 0:
		return Argument{Kind: ArgGasCoin}, nil
	case 1:
		idx, err := c.ReadUint16()
		if err != nil {
			return Argument{}, err
		}
		return Argument{Kind: ArgInput, Index: idx}, nil
	case 2:
		idx, err := c.ReadUint16()
		if err != nil {
			return Argument{}, err
		}
		return Argument{Kind: ArgResult, Index: idx}, nil
	case 3:
		idx, err := c.ReadUint16()
		if err != nil {
			return Argument{}, err
		}
		sub, err := c.ReadUint16()
		if err != nil {
			return Argument{}, err
		}
		return Argument{Kind: ArgNestedResult, Index: idx, Sub: sub}, nil
	default:
		return Argument{}, visignerr.Calldata("UnknownArgumentTag", c.Pos(), nil)
	}
}

func readArgumentVec(c *Cursor) ([]Argument, error) {
	n, err := c.ReadVecLen()
	if err != nil {
		return nil, err
	}
	out := make([]Argument, n)
	for i := range out {
		a, err := readArgument(c)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// readTypeTag reads a fully-qualified Move type tag. Only the subset needed
// to render a type name is decoded; nested struct type parameters are
// rendered recursively into the same dotted/bracketed display form the Sui
// CLI uses.
func readTypeTag(c *Cursor) (string, error) {
	tag, err := c.ReadByte()
	if err != nil {
		return "", err
	}
	switch tag {
	case 0:
		return "bool", nil
	case 1:
		return "u8", nil
	case 2:
		return "u64", nil
	case 3:
		return "u128", nil
	case 4:
		return "address", nil
	case 5:
		return "signer", nil
	case 6:
		inner, err := readTypeTag(c)
		if err != nil {
			return "", err
		}
		return "vector<" + inner + ">", nil
	case 7:
		return readStructTag(c)
	case 8:
		return "u16", nil
	case 9:
		return "u32", nil
	case 10:
		return "u256", nil
	default:
		return "", visignerr.Calldata("UnknownTypeTag", c.Pos(), nil)
	}
}

func readStructTag(c *Cursor) (string, error) {
	addr, err := readAddress(c)
	if err != nil {
		return "", err
	}
	module, err := c.ReadString()
	if err != nil {
		return "", err
	}
	name, err := c.ReadString()
	if err != nil {
		return "", err
	}
	n, err := c.ReadVecLen()
	if err != nil {
		return "", err
	}
	out := addr.String() + "::" + module + "::" + name
	if n > 0 {
		out += "<"
		for i := 0; i < n; i++ {
			if i > 0 {
				out += ", "
			}
			t, err := readTypeTag(c)
			if err != nil {
				return "", err
			}
			out += t
		}
		out += ">"
	}
	return out, nil
}

func readCommand(c *Cursor) (Command, error) {
	tag, err := c.ReadByte()
	if err != nil {
		return Command{}, err
	}
	switch tag {
	case 0: // MoveCall
		pkg, err := readAddress(c)
		if err != nil {
			return Command{}, err
		}
		module, err := c.ReadString()
		if err != nil {
			return Command{}, err
		}
		function, err := c.ReadString()
		if err != nil {
			return Command{}, err
		}
		n, err := c.ReadVecLen()
		if err != nil {
			return Command{}, err
		}
		typeArgs := make([]string, n)
		for i := range typeArgs {
			t, err := readTypeTag(c)
			if err != nil {
				return Command{}, err
			}
			typeArgs[i] = t
		}
		args, err := readArgumentVec(c)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandMoveCall, MoveCall: &MoveCallCommand{
			Package: pkg, Module: module, Function: function,
			TypeArguments: typeArgs, Arguments: args,
		}}, nil

	case 1: // TransferObjects
		objects, err := readArgumentVec(c)
		if err != nil {
			return Command{}, err
		}
		recipient, err := readArgument(c)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandTransferObjects, TransferObjects: &TransferObjectsCommand{
			Objects: objects, Recipient: recipient,
		}}, nil

	case 2: // SplitCoins
		coin, err := readArgument(c)
		if err != nil {
			return Command{}, err
		}
		amounts, err := readArgumentVec(c)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandSplitCoins, SplitCoins: &SplitCoinsCommand{
			Coin: coin, Amounts: amounts,
		}}, nil

	case 3: // MergeCoins
		dest, err := readArgument(c)
		if err != nil {
			return Command{}, err
		}
		sources, err := readArgumentVec(c)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandMergeCoins, MergeCoins: &MergeCoinsCommand{
			Destination: dest, Sources: sources,
		}}, nil

	case 4: // Publish
		nMod, err := c.ReadVecLen()
		if err != nil {
			return Command{}, err
		}
		modules := make([][]byte, nMod)
		for i := range modules {
			b, err := c.ReadVecBytes()
			if err != nil {
				return Command{}, err
			}
			modules[i] = b
		}
		nDep, err := c.ReadVecLen()
		if err != nil {
			return Command{}, err
		}
		deps := make([]Address, nDep)
		for i := range deps {
			a, err := readAddress(c)
			if err != nil {
				return Command{}, err
			}
			deps[i] = a
		}
		return Command{Kind: CommandPublish, Publish: &PublishCommand{Modules: modules, Dependencies: deps}}, nil

	case 5: // MakeMoveVec
		hasType, err := c.ReadBool()
		if err != nil {
			return Command{}, err
		}
		var elemType string
		if hasType {
			elemType, err = readTypeTag(c)
			if err != nil {
				return Command{}, err
			}
		}
		elems, err := readArgumentVec(c)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandMakeMoveVec, MakeMoveVec: &MakeMoveVecCommand{
			ElemType: elemType, Elements: elems,
		}}, nil

	case 6: // Upgrade
		nMod, err := c.ReadVecLen()
		if err != nil {
			return Command{}, err
		}
		modules := make([][]byte, nMod)
		for i := range modules {
			b, err := c.ReadVecBytes()
			if err != nil {
				return Command{}, err
			}
			modules[i] = b
		}
		nDep, err := c.ReadVecLen()
		if err != nil {
			return Command{}, err
		}
		deps := make([]Address, nDep)
		for i := range deps {
			a, err := readAddress(c)
			if err != nil {
				return Command{}, err
			}
			deps[i] = a
		}
		pkg, err := readAddress(c)
		if err != nil {
			return Command{}, err
		}
		ticket, err := readArgument(c)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandUpgrade, Upgrade: &UpgradeCommand{
			Modules: modules, Dependencies: deps, Package: pkg, Ticket: ticket,
		}}, nil

	default:
		return Command{}, visignerr.Calldata("UnknownCommandTag", c.Pos(), nil)
	}
}

// ParseProgrammableTransaction decodes a standalone inputs+commands body of
// a Sui ProgrammableTransaction from its BCS encoding. A full unsigned
// transaction wraps this body in the TransactionData envelope; use
// ParseTransactionData for that.
func ParseProgrammableTransaction(data []byte) (*ProgrammableTransaction, error) {
	c := NewCursor(data)
	ptb, err := readProgrammableTransaction(c)
	if err != nil {
		return nil, err
	}
	if err := c.AssertExhausted(); err != nil {
		return nil, err
	}
	return ptb, nil
}

// readProgrammableTransaction reads the inputs+commands body in place,
// leaving the cursor positioned after it so the TransactionData decoder can
// continue with sender/gas/expiration.
func readProgrammableTransaction(c *Cursor) (*ProgrammableTransaction, error) {
	nInputs, err := c.ReadVecLen()
	if err != nil {
		return nil, err
	}
	inputs := make([]CallArg, nInputs)
	for i := range inputs {
		arg, err := readCallArg(c)
		if err != nil {
			return nil, err
		}
		inputs[i] = arg
	}

	nCmds, err := c.ReadVecLen()
	if err != nil {
		return nil, err
	}
	commands := make([]Command, nCmds)
	for i := range commands {
		cmd, err := readCommand(c)
		if err != nil {
			return nil, err
		}
		commands[i] = cmd
	}

	return &ProgrammableTransaction{Inputs: inputs, Commands: commands}, nil
}
