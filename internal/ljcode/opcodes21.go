// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljcode

import "fmt"

// Op21 is an opcode in the LuaJIT 2.1 instruction set.
type Op21 uint8

// Defined [Op21] values, in LuaJIT 2.1 numbering.
const (
	// Comparison ops.
	Op21IsLT  Op21 = 0  // ISLT
	Op21IsGE  Op21 = 1  // ISGE
	Op21IsLE  Op21 = 2  // ISLE
	Op21IsGT  Op21 = 3  // ISGT
	Op21IsEqV Op21 = 4  // ISEQV
	Op21IsNeV Op21 = 5  // ISNEV
	Op21IsEqS Op21 = 6  // ISEQS
	Op21IsNeS Op21 = 7  // ISNES
	Op21IsEqN Op21 = 8  // ISEQN
	Op21IsNeN Op21 = 9  // ISNEN
	Op21IsEqP Op21 = 10 // ISEQP
	Op21IsNeP Op21 = 11 // ISNEP

	// Unary test and copy ops.
	Op21IsTC   Op21 = 12 // ISTC
	Op21IsFC   Op21 = 13 // ISFC
	Op21IsT    Op21 = 14 // IST
	Op21IsF    Op21 = 15 // ISF
	Op21IsType Op21 = 16 // ISTYPE
	Op21IsNum  Op21 = 17 // ISNUM

	// Unary ops.
	Op21Mov Op21 = 18 // MOV
	Op21Not Op21 = 19 // NOT
	Op21Unm Op21 = 20 // UNM
	Op21Len Op21 = 21 // LEN

	// Binary ops.
	Op21AddVN Op21 = 22 // ADDVN
	Op21SubVN Op21 = 23 // SUBVN
	Op21MulVN Op21 = 24 // MULVN
	Op21DivVN Op21 = 25 // DIVVN
	Op21ModVN Op21 = 26 // MODVN
	Op21AddNV Op21 = 27 // ADDNV
	Op21SubNV Op21 = 28 // SUBNV
	Op21MulNV Op21 = 29 // MULNV
	Op21DivNV Op21 = 30 // DIVNV
	Op21ModNV Op21 = 31 // MODNV
	Op21AddVV Op21 = 32 // ADDVV
	Op21SubVV Op21 = 33 // SUBVV
	Op21MulVV Op21 = 34 // MULVV
	Op21DivVV Op21 = 35 // DIVVV
	Op21ModVV Op21 = 36 // MODVV
	Op21Pow   Op21 = 37 // POW
	Op21Cat   Op21 = 38 // CAT

	// Constant ops.
	Op21KStr   Op21 = 39 // KSTR
	Op21KCData Op21 = 40 // KCDATA
	Op21KShort Op21 = 41 // KSHORT
	Op21KNum   Op21 = 42 // KNUM
	Op21KPri   Op21 = 43 // KPRI
	Op21KNil   Op21 = 44 // KNIL

	// Upvalue and function ops.
	Op21UGet  Op21 = 45 // UGET
	Op21USetV Op21 = 46 // USETV
	Op21USetS Op21 = 47 // USETS
	Op21USetN Op21 = 48 // USETN
	Op21USetP Op21 = 49 // USETP
	Op21UClo  Op21 = 50 // UCLO
	Op21FNew  Op21 = 51 // FNEW

	// Table ops.
	Op21TNew  Op21 = 52 // TNEW
	Op21TDup  Op21 = 53 // TDUP
	Op21GGet  Op21 = 54 // GGET
	Op21GSet  Op21 = 55 // GSET
	Op21TGetV Op21 = 56 // TGETV
	Op21TGetS Op21 = 57 // TGETS
	Op21TGetB Op21 = 58 // TGETB
	Op21TGetR Op21 = 59 // TGETR
	Op21TSetV Op21 = 60 // TSETV
	Op21TSetS Op21 = 61 // TSETS
	Op21TSetB Op21 = 62 // TSETB
	Op21TSetM Op21 = 63 // TSETM
	Op21TSetR Op21 = 64 // TSETR

	// Calls and vararg handling.
	Op21CallM  Op21 = 65 // CALLM
	Op21Call   Op21 = 66 // CALL
	Op21CallMT Op21 = 67 // CALLMT
	Op21CallT  Op21 = 68 // CALLT
	Op21IterC  Op21 = 69 // ITERC
	Op21IterN  Op21 = 70 // ITERN
	Op21VArg   Op21 = 71 // VARG
	Op21IsNext Op21 = 72 // ISNEXT

	// Returns.
	Op21RetM Op21 = 73 // RETM
	Op21Ret  Op21 = 74 // RET
	Op21Ret0 Op21 = 75 // RET0
	Op21Ret1 Op21 = 76 // RET1

	// Loops and branches.
	Op21ForI   Op21 = 77 // FORI
	Op21JForI  Op21 = 78 // JFORI
	Op21ForL   Op21 = 79 // FORL
	Op21IForL  Op21 = 80 // IFORL
	Op21JForL  Op21 = 81 // JFORL
	Op21IterL  Op21 = 82 // ITERL
	Op21IIterL Op21 = 83 // IITERL
	Op21JIterL Op21 = 84 // JITERL
	Op21Loop   Op21 = 85 // LOOP
	Op21ILoop  Op21 = 86 // ILOOP
	Op21JLoop  Op21 = 87 // JLOOP
	Op21Jmp    Op21 = 88 // JMP

	// Function headers.
	Op21FuncF  Op21 = 89 // FUNCF
	Op21IFuncF Op21 = 90 // IFUNCF
	Op21JFuncF Op21 = 91 // JFUNCF
	Op21FuncV  Op21 = 92 // FUNCV
	Op21IFuncV Op21 = 93 // IFUNCV
	Op21JFuncV Op21 = 94 // JFUNCV
	Op21FuncC  Op21 = 95 // FUNCC
	Op21FuncCW Op21 = 96 // FUNCCW

	maxOp21 = Op21FuncCW
)

var op21Info = [...]opInfo{
	Op21IsLT:   {"ISLT", FormatAD, OperandVar, OperandNone, OperandVar},
	Op21IsGE:   {"ISGE", FormatAD, OperandVar, OperandNone, OperandVar},
	Op21IsLE:   {"ISLE", FormatAD, OperandVar, OperandNone, OperandVar},
	Op21IsGT:   {"ISGT", FormatAD, OperandVar, OperandNone, OperandVar},
	Op21IsEqV:  {"ISEQV", FormatAD, OperandVar, OperandNone, OperandVar},
	Op21IsNeV:  {"ISNEV", FormatAD, OperandVar, OperandNone, OperandVar},
	Op21IsEqS:  {"ISEQS", FormatAD, OperandVar, OperandNone, OperandStr},
	Op21IsNeS:  {"ISNES", FormatAD, OperandVar, OperandNone, OperandStr},
	Op21IsEqN:  {"ISEQN", FormatAD, OperandVar, OperandNone, OperandNum},
	Op21IsNeN:  {"ISNEN", FormatAD, OperandVar, OperandNone, OperandNum},
	Op21IsEqP:  {"ISEQP", FormatAD, OperandVar, OperandNone, OperandPri},
	Op21IsNeP:  {"ISNEP", FormatAD, OperandVar, OperandNone, OperandPri},
	Op21IsTC:   {"ISTC", FormatAD, OperandDst, OperandNone, OperandVar},
	Op21IsFC:   {"ISFC", FormatAD, OperandDst, OperandNone, OperandVar},
	Op21IsT:    {"IST", FormatAD, OperandNone, OperandNone, OperandVar},
	Op21IsF:    {"ISF", FormatAD, OperandNone, OperandNone, OperandVar},
	Op21IsType: {"ISTYPE", FormatAD, OperandVar, OperandNone, OperandLit},
	Op21IsNum:  {"ISNUM", FormatAD, OperandVar, OperandNone, OperandLit},
	Op21Mov:    {"MOV", FormatAD, OperandDst, OperandNone, OperandVar},
	Op21Not:    {"NOT", FormatAD, OperandDst, OperandNone, OperandVar},
	Op21Unm:    {"UNM", FormatAD, OperandDst, OperandNone, OperandVar},
	Op21Len:    {"LEN", FormatAD, OperandDst, OperandNone, OperandVar},
	Op21AddVN:  {"ADDVN", FormatABC, OperandDst, OperandVar, OperandNum},
	Op21SubVN:  {"SUBVN", FormatABC, OperandDst, OperandVar, OperandNum},
	Op21MulVN:  {"MULVN", FormatABC, OperandDst, OperandVar, OperandNum},
	Op21DivVN:  {"DIVVN", FormatABC, OperandDst, OperandVar, OperandNum},
	Op21ModVN:  {"MODVN", FormatABC, OperandDst, OperandVar, OperandNum},
	Op21AddNV:  {"ADDNV", FormatABC, OperandDst, OperandVar, OperandNum},
	Op21SubNV:  {"SUBNV", FormatABC, OperandDst, OperandVar, OperandNum},
	Op21MulNV:  {"MULNV", FormatABC, OperandDst, OperandVar, OperandNum},
	Op21DivNV:  {"DIVNV", FormatABC, OperandDst, OperandVar, OperandNum},
	Op21ModNV:  {"MODNV", FormatABC, OperandDst, OperandVar, OperandNum},
	Op21AddVV:  {"ADDVV", FormatABC, OperandDst, OperandVar, OperandVar},
	Op21SubVV:  {"SUBVV", FormatABC, OperandDst, OperandVar, OperandVar},
	Op21MulVV:  {"MULVV", FormatABC, OperandDst, OperandVar, OperandVar},
	Op21DivVV:  {"DIVVV", FormatABC, OperandDst, OperandVar, OperandVar},
	Op21ModVV:  {"MODVV", FormatABC, OperandDst, OperandVar, OperandVar},
	Op21Pow:    {"POW", FormatABC, OperandDst, OperandVar, OperandVar},
	Op21Cat:    {"CAT", FormatABC, OperandDst, OperandRBase, OperandRBase},
	Op21KStr:   {"KSTR", FormatAD, OperandDst, OperandNone, OperandStr},
	Op21KCData: {"KCDATA", FormatAD, OperandDst, OperandNone, OperandCData},
	Op21KShort: {"KSHORT", FormatAD, OperandDst, OperandNone, OperandSignedLit},
	Op21KNum:   {"KNUM", FormatAD, OperandDst, OperandNone, OperandNum},
	Op21KPri:   {"KPRI", FormatAD, OperandDst, OperandNone, OperandPri},
	Op21KNil:   {"KNIL", FormatAD, OperandBase, OperandNone, OperandBase},
	Op21UGet:   {"UGET", FormatAD, OperandDst, OperandNone, OperandUpvalue},
	Op21USetV:  {"USETV", FormatAD, OperandUpvalue, OperandNone, OperandVar},
	Op21USetS:  {"USETS", FormatAD, OperandUpvalue, OperandNone, OperandStr},
	Op21USetN:  {"USETN", FormatAD, OperandUpvalue, OperandNone, OperandNum},
	Op21USetP:  {"USETP", FormatAD, OperandUpvalue, OperandNone, OperandPri},
	Op21UClo:   {"UCLO", FormatAD, OperandRBase, OperandNone, OperandJump},
	Op21FNew:   {"FNEW", FormatAD, OperandDst, OperandNone, OperandFunc},
	Op21TNew:   {"TNEW", FormatAD, OperandDst, OperandNone, OperandLit},
	Op21TDup:   {"TDUP", FormatAD, OperandDst, OperandNone, OperandTab},
	Op21GGet:   {"GGET", FormatAD, OperandDst, OperandNone, OperandStr},
	Op21GSet:   {"GSET", FormatAD, OperandVar, OperandNone, OperandStr},
	Op21TGetV:  {"TGETV", FormatABC, OperandDst, OperandVar, OperandVar},
	Op21TGetS:  {"TGETS", FormatABC, OperandDst, OperandVar, OperandStr},
	Op21TGetB:  {"TGETB", FormatABC, OperandDst, OperandVar, OperandLit},
	Op21TGetR:  {"TGETR", FormatABC, OperandDst, OperandVar, OperandVar},
	Op21TSetV:  {"TSETV", FormatABC, OperandVar, OperandVar, OperandVar},
	Op21TSetS:  {"TSETS", FormatABC, OperandVar, OperandVar, OperandStr},
	Op21TSetB:  {"TSETB", FormatABC, OperandVar, OperandVar, OperandLit},
	Op21TSetM:  {"TSETM", FormatAD, OperandBase, OperandNone, OperandNum},
	Op21TSetR:  {"TSETR", FormatABC, OperandVar, OperandVar, OperandVar},
	Op21CallM:  {"CALLM", FormatABC, OperandBase, OperandLit, OperandLit},
	Op21Call:   {"CALL", FormatABC, OperandBase, OperandLit, OperandLit},
	Op21CallMT: {"CALLMT", FormatAD, OperandBase, OperandNone, OperandLit},
	Op21CallT:  {"CALLT", FormatAD, OperandBase, OperandNone, OperandLit},
	Op21IterC:  {"ITERC", FormatABC, OperandBase, OperandLit, OperandLit},
	Op21IterN:  {"ITERN", FormatABC, OperandBase, OperandLit, OperandLit},
	Op21VArg:   {"VARG", FormatABC, OperandBase, OperandLit, OperandLit},
	Op21IsNext: {"ISNEXT", FormatAD, OperandBase, OperandNone, OperandJump},
	Op21RetM:   {"RETM", FormatAD, OperandBase, OperandNone, OperandLit},
	Op21Ret:    {"RET", FormatAD, OperandRBase, OperandNone, OperandLit},
	Op21Ret0:   {"RET0", FormatAD, OperandRBase, OperandNone, OperandLit},
	Op21Ret1:   {"RET1", FormatAD, OperandRBase, OperandNone, OperandLit},
	Op21ForI:   {"FORI", FormatAD, OperandBase, OperandNone, OperandJump},
	Op21JForI:  {"JFORI", FormatAD, OperandBase, OperandNone, OperandJump},
	Op21ForL:   {"FORL", FormatAD, OperandBase, OperandNone, OperandJump},
	Op21IForL:  {"IFORL", FormatAD, OperandBase, OperandNone, OperandJump},
	Op21JForL:  {"JFORL", FormatAD, OperandBase, OperandNone, OperandLit},
	Op21IterL:  {"ITERL", FormatAD, OperandBase, OperandNone, OperandJump},
	Op21IIterL: {"IITERL", FormatAD, OperandBase, OperandNone, OperandJump},
	Op21JIterL: {"JITERL", FormatAD, OperandBase, OperandNone, OperandLit},
	Op21Loop:   {"LOOP", FormatAD, OperandRBase, OperandNone, OperandJump},
	Op21ILoop:  {"ILOOP", FormatAD, OperandRBase, OperandNone, OperandJump},
	Op21JLoop:  {"JLOOP", FormatAD, OperandRBase, OperandNone, OperandLit},
	Op21Jmp:    {"JMP", FormatAD, OperandRBase, OperandNone, OperandJump},
	Op21FuncF:  {"FUNCF", FormatAD, OperandRBase, OperandNone, OperandNone},
	Op21IFuncF: {"IFUNCF", FormatAD, OperandRBase, OperandNone, OperandNone},
	Op21JFuncF: {"JFUNCF", FormatAD, OperandRBase, OperandNone, OperandLit},
	Op21FuncV:  {"FUNCV", FormatAD, OperandRBase, OperandNone, OperandNone},
	Op21IFuncV: {"IFUNCV", FormatAD, OperandRBase, OperandNone, OperandNone},
	Op21JFuncV: {"JFUNCV", FormatAD, OperandRBase, OperandNone, OperandLit},
	Op21FuncC:  {"FUNCC", FormatAD, OperandRBase, OperandNone, OperandNone},
	Op21FuncCW: {"FUNCCW", FormatAD, OperandRBase, OperandNone, OperandNone},
}

// IsValid reports whether op is defined in LuaJIT 2.1.
func (op Op21) IsValid() bool {
	return op <= maxOp21
}

func (op Op21) info() opInfo {
	if !op.IsValid() {
		return opInfo{}
	}
	return op21Info[op]
}

// Version returns [Version21].
func (op Op21) Version() Version { return Version21 }

// Number returns the opcode's numeric value.
func (op Op21) Number() uint8 { return uint8(op) }

// Name returns the opcode's mnemonic, like "KSTR".
func (op Op21) Name() string { return op.info().name }

// Format returns the operand layout of instructions using the opcode.
func (op Op21) Format() Format { return op.info().format }

// OperandTypes returns the types of the A, B, and C/D operands.
// Unused slots are [OperandNone].
func (op Op21) OperandTypes() [3]OperandType { return op.info().operandTypes() }

func (op Op21) String() string {
	if !op.IsValid() {
		return fmt.Sprintf("Op21(%d)", uint8(op))
	}
	return op.info().name
}

func (op Op21) isOpCode() {}
