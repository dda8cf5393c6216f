// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljcode

import "fmt"

// Op20 is an opcode in the LuaJIT 2.0 instruction set.
type Op20 uint8

// Defined [Op20] values, in LuaJIT 2.0 numbering.
const (
	// Comparison ops.
	Op20IsLT  Op20 = 0  // ISLT
	Op20IsGE  Op20 = 1  // ISGE
	Op20IsLE  Op20 = 2  // ISLE
	Op20IsGT  Op20 = 3  // ISGT
	Op20IsEqV Op20 = 4  // ISEQV
	Op20IsNeV Op20 = 5  // ISNEV
	Op20IsEqS Op20 = 6  // ISEQS
	Op20IsNeS Op20 = 7  // ISNES
	Op20IsEqN Op20 = 8  // ISEQN
	Op20IsNeN Op20 = 9  // ISNEN
	Op20IsEqP Op20 = 10 // ISEQP
	Op20IsNeP Op20 = 11 // ISNEP

	// Unary test and copy ops.
	Op20IsTC Op20 = 12 // ISTC
	Op20IsFC Op20 = 13 // ISFC
	Op20IsT  Op20 = 14 // IST
	Op20IsF  Op20 = 15 // ISF

	// Unary ops.
	Op20Mov Op20 = 16 // MOV
	Op20Not Op20 = 17 // NOT
	Op20Unm Op20 = 18 // UNM
	Op20Len Op20 = 19 // LEN

	// Binary ops.
	Op20AddVN Op20 = 20 // ADDVN
	Op20SubVN Op20 = 21 // SUBVN
	Op20MulVN Op20 = 22 // MULVN
	Op20DivVN Op20 = 23 // DIVVN
	Op20ModVN Op20 = 24 // MODVN
	Op20AddNV Op20 = 25 // ADDNV
	Op20SubNV Op20 = 26 // SUBNV
	Op20MulNV Op20 = 27 // MULNV
	Op20DivNV Op20 = 28 // DIVNV
	Op20ModNV Op20 = 29 // MODNV
	Op20AddVV Op20 = 30 // ADDVV
	Op20SubVV Op20 = 31 // SUBVV
	Op20MulVV Op20 = 32 // MULVV
	Op20DivVV Op20 = 33 // DIVVV
	Op20ModVV Op20 = 34 // MODVV
	Op20Pow   Op20 = 35 // POW
	Op20Cat   Op20 = 36 // CAT

	// Constant ops.
	Op20KStr   Op20 = 37 // KSTR
	Op20KCData Op20 = 38 // KCDATA
	Op20KShort Op20 = 39 // KSHORT
	Op20KNum   Op20 = 40 // KNUM
	Op20KPri   Op20 = 41 // KPRI
	Op20KNil   Op20 = 42 // KNIL

	// Upvalue and function ops.
	Op20UGet  Op20 = 43 // UGET
	Op20USetV Op20 = 44 // USETV
	Op20USetS Op20 = 45 // USETS
	Op20USetN Op20 = 46 // USETN
	Op20USetP Op20 = 47 // USETP
	Op20UClo  Op20 = 48 // UCLO
	Op20FNew  Op20 = 49 // FNEW

	// Table ops.
	Op20TNew  Op20 = 50 // TNEW
	Op20TDup  Op20 = 51 // TDUP
	Op20GGet  Op20 = 52 // GGET
	Op20GSet  Op20 = 53 // GSET
	Op20TGetV Op20 = 54 // TGETV
	Op20TGetS Op20 = 55 // TGETS
	Op20TGetB Op20 = 56 // TGETB
	Op20TSetV Op20 = 57 // TSETV
	Op20TSetS Op20 = 58 // TSETS
	Op20TSetB Op20 = 59 // TSETB
	Op20TSetM Op20 = 60 // TSETM

	// Calls and vararg handling.
	Op20CallM  Op20 = 61 // CALLM
	Op20Call   Op20 = 62 // CALL
	Op20CallMT Op20 = 63 // CALLMT
	Op20CallT  Op20 = 64 // CALLT
	Op20IterC  Op20 = 65 // ITERC
	Op20IterN  Op20 = 66 // ITERN
	Op20VArg   Op20 = 67 // VARG
	Op20IsNext Op20 = 68 // ISNEXT

	// Returns.
	Op20RetM Op20 = 69 // RETM
	Op20Ret  Op20 = 70 // RET
	Op20Ret0 Op20 = 71 // RET0
	Op20Ret1 Op20 = 72 // RET1

	// Loops and branches.
	Op20ForI   Op20 = 73 // FORI
	Op20JForI  Op20 = 74 // JFORI
	Op20ForL   Op20 = 75 // FORL
	Op20IForL  Op20 = 76 // IFORL
	Op20JForL  Op20 = 77 // JFORL
	Op20IterL  Op20 = 78 // ITERL
	Op20IIterL Op20 = 79 // IITERL
	Op20JIterL Op20 = 80 // JITERL
	Op20Loop   Op20 = 81 // LOOP
	Op20ILoop  Op20 = 82 // ILOOP
	Op20JLoop  Op20 = 83 // JLOOP
	Op20Jmp    Op20 = 84 // JMP

	// Function headers.
	Op20FuncF  Op20 = 85 // FUNCF
	Op20IFuncF Op20 = 86 // IFUNCF
	Op20JFuncF Op20 = 87 // JFUNCF
	Op20FuncV  Op20 = 88 // FUNCV
	Op20IFuncV Op20 = 89 // IFUNCV
	Op20JFuncV Op20 = 90 // JFUNCV
	Op20FuncC  Op20 = 91 // FUNCC
	Op20FuncCW Op20 = 92 // FUNCCW

	maxOp20 = Op20FuncCW
)

var op20Info = [...]opInfo{
	Op20IsLT:   {"ISLT", FormatAD, OperandVar, OperandNone, OperandVar},
	Op20IsGE:   {"ISGE", FormatAD, OperandVar, OperandNone, OperandVar},
	Op20IsLE:   {"ISLE", FormatAD, OperandVar, OperandNone, OperandVar},
	Op20IsGT:   {"ISGT", FormatAD, OperandVar, OperandNone, OperandVar},
	Op20IsEqV:  {"ISEQV", FormatAD, OperandVar, OperandNone, OperandVar},
	Op20IsNeV:  {"ISNEV", FormatAD, OperandVar, OperandNone, OperandVar},
	Op20IsEqS:  {"ISEQS", FormatAD, OperandVar, OperandNone, OperandStr},
	Op20IsNeS:  {"ISNES", FormatAD, OperandVar, OperandNone, OperandStr},
	Op20IsEqN:  {"ISEQN", FormatAD, OperandVar, OperandNone, OperandNum},
	Op20IsNeN:  {"ISNEN", FormatAD, OperandVar, OperandNone, OperandNum},
	Op20IsEqP:  {"ISEQP", FormatAD, OperandVar, OperandNone, OperandPri},
	Op20IsNeP:  {"ISNEP", FormatAD, OperandVar, OperandNone, OperandPri},
	Op20IsTC:   {"ISTC", FormatAD, OperandDst, OperandNone, OperandVar},
	Op20IsFC:   {"ISFC", FormatAD, OperandDst, OperandNone, OperandVar},
	Op20IsT:    {"IST", FormatAD, OperandNone, OperandNone, OperandVar},
	Op20IsF:    {"ISF", FormatAD, OperandNone, OperandNone, OperandVar},
	Op20Mov:    {"MOV", FormatAD, OperandDst, OperandNone, OperandVar},
	Op20Not:    {"NOT", FormatAD, OperandDst, OperandNone, OperandVar},
	Op20Unm:    {"UNM", FormatAD, OperandDst, OperandNone, OperandVar},
	Op20Len:    {"LEN", FormatAD, OperandDst, OperandNone, OperandVar},
	Op20AddVN:  {"ADDVN", FormatABC, OperandDst, OperandVar, OperandNum},
	Op20SubVN:  {"SUBVN", FormatABC, OperandDst, OperandVar, OperandNum},
	Op20MulVN:  {"MULVN", FormatABC, OperandDst, OperandVar, OperandNum},
	Op20DivVN:  {"DIVVN", FormatABC, OperandDst, OperandVar, OperandNum},
	Op20ModVN:  {"MODVN", FormatABC, OperandDst, OperandVar, OperandNum},
	Op20AddNV:  {"ADDNV", FormatABC, OperandDst, OperandVar, OperandNum},
	Op20SubNV:  {"SUBNV", FormatABC, OperandDst, OperandVar, OperandNum},
	Op20MulNV:  {"MULNV", FormatABC, OperandDst, OperandVar, OperandNum},
	Op20DivNV:  {"DIVNV", FormatABC, OperandDst, OperandVar, OperandNum},
	Op20ModNV:  {"MODNV", FormatABC, OperandDst, OperandVar, OperandNum},
	Op20AddVV:  {"ADDVV", FormatABC, OperandDst, OperandVar, OperandVar},
	Op20SubVV:  {"SUBVV", FormatABC, OperandDst, OperandVar, OperandVar},
	Op20MulVV:  {"MULVV", FormatABC, OperandDst, OperandVar, OperandVar},
	Op20DivVV:  {"DIVVV", FormatABC, OperandDst, OperandVar, OperandVar},
	Op20ModVV:  {"MODVV", FormatABC, OperandDst, OperandVar, OperandVar},
	Op20Pow:    {"POW", FormatABC, OperandDst, OperandVar, OperandVar},
	Op20Cat:    {"CAT", FormatABC, OperandDst, OperandRBase, OperandRBase},
	Op20KStr:   {"KSTR", FormatAD, OperandDst, OperandNone, OperandStr},
	Op20KCData: {"KCDATA", FormatAD, OperandDst, OperandNone, OperandCData},
	Op20KShort: {"KSHORT", FormatAD, OperandDst, OperandNone, OperandSignedLit},
	Op20KNum:   {"KNUM", FormatAD, OperandDst, OperandNone, OperandNum},
	Op20KPri:   {"KPRI", FormatAD, OperandDst, OperandNone, OperandPri},
	Op20KNil:   {"KNIL", FormatAD, OperandBase, OperandNone, OperandBase},
	Op20UGet:   {"UGET", FormatAD, OperandDst, OperandNone, OperandUpvalue},
	Op20USetV:  {"USETV", FormatAD, OperandUpvalue, OperandNone, OperandVar},
	Op20USetS:  {"USETS", FormatAD, OperandUpvalue, OperandNone, OperandStr},
	Op20USetN:  {"USETN", FormatAD, OperandUpvalue, OperandNone, OperandNum},
	Op20USetP:  {"USETP", FormatAD, OperandUpvalue, OperandNone, OperandPri},
	Op20UClo:   {"UCLO", FormatAD, OperandRBase, OperandNone, OperandJump},
	Op20FNew:   {"FNEW", FormatAD, OperandDst, OperandNone, OperandFunc},
	Op20TNew:   {"TNEW", FormatAD, OperandDst, OperandNone, OperandLit},
	Op20TDup:   {"TDUP", FormatAD, OperandDst, OperandNone, OperandTab},
	Op20GGet:   {"GGET", FormatAD, OperandDst, OperandNone, OperandStr},
	Op20GSet:   {"GSET", FormatAD, OperandVar, OperandNone, OperandStr},
	Op20TGetV:  {"TGETV", FormatABC, OperandDst, OperandVar, OperandVar},
	Op20TGetS:  {"TGETS", FormatABC, OperandDst, OperandVar, OperandStr},
	Op20TGetB:  {"TGETB", FormatABC, OperandDst, OperandVar, OperandLit},
	Op20TSetV:  {"TSETV", FormatABC, OperandVar, OperandVar, OperandVar},
	Op20TSetS:  {"TSETS", FormatABC, OperandVar, OperandVar, OperandStr},
	Op20TSetB:  {"TSETB", FormatABC, OperandVar, OperandVar, OperandLit},
	Op20TSetM:  {"TSETM", FormatAD, OperandBase, OperandNone, OperandNum},
	Op20CallM:  {"CALLM", FormatABC, OperandBase, OperandLit, OperandLit},
	Op20Call:   {"CALL", FormatABC, OperandBase, OperandLit, OperandLit},
	Op20CallMT: {"CALLMT", FormatAD, OperandBase, OperandNone, OperandLit},
	Op20CallT:  {"CALLT", FormatAD, OperandBase, OperandNone, OperandLit},
	Op20IterC:  {"ITERC", FormatABC, OperandBase, OperandLit, OperandLit},
	Op20IterN:  {"ITERN", FormatABC, OperandBase, OperandLit, OperandLit},
	Op20VArg:   {"VARG", FormatABC, OperandBase, OperandLit, OperandLit},
	Op20IsNext: {"ISNEXT", FormatAD, OperandBase, OperandNone, OperandJump},
	Op20RetM:   {"RETM", FormatAD, OperandBase, OperandNone, OperandLit},
	Op20Ret:    {"RET", FormatAD, OperandRBase, OperandNone, OperandLit},
	Op20Ret0:   {"RET0", FormatAD, OperandRBase, OperandNone, OperandLit},
	Op20Ret1:   {"RET1", FormatAD, OperandRBase, OperandNone, OperandLit},
	Op20ForI:   {"FORI", FormatAD, OperandBase, OperandNone, OperandJump},
	Op20JForI:  {"JFORI", FormatAD, OperandBase, OperandNone, OperandJump},
	Op20ForL:   {"FORL", FormatAD, OperandBase, OperandNone, OperandJump},
	Op20IForL:  {"IFORL", FormatAD, OperandBase, OperandNone, OperandJump},
	Op20JForL:  {"JFORL", FormatAD, OperandBase, OperandNone, OperandLit},
	Op20IterL:  {"ITERL", FormatAD, OperandBase, OperandNone, OperandJump},
	Op20IIterL: {"IITERL", FormatAD, OperandBase, OperandNone, OperandJump},
	Op20JIterL: {"JITERL", FormatAD, OperandBase, OperandNone, OperandLit},
	Op20Loop:   {"LOOP", FormatAD, OperandRBase, OperandNone, OperandJump},
	Op20ILoop:  {"ILOOP", FormatAD, OperandRBase, OperandNone, OperandJump},
	Op20JLoop:  {"JLOOP", FormatAD, OperandRBase, OperandNone, OperandLit},
	Op20Jmp:    {"JMP", FormatAD, OperandRBase, OperandNone, OperandJump},
	Op20FuncF:  {"FUNCF", FormatAD, OperandRBase, OperandNone, OperandNone},
	Op20IFuncF: {"IFUNCF", FormatAD, OperandRBase, OperandNone, OperandNone},
	Op20JFuncF: {"JFUNCF", FormatAD, OperandRBase, OperandNone, OperandLit},
	Op20FuncV:  {"FUNCV", FormatAD, OperandRBase, OperandNone, OperandNone},
	Op20IFuncV: {"IFUNCV", FormatAD, OperandRBase, OperandNone, OperandNone},
	Op20JFuncV: {"JFUNCV", FormatAD, OperandRBase, OperandNone, OperandLit},
	Op20FuncC:  {"FUNCC", FormatAD, OperandRBase, OperandNone, OperandNone},
	Op20FuncCW: {"FUNCCW", FormatAD, OperandRBase, OperandNone, OperandNone},
}

// IsValid reports whether op is defined in LuaJIT 2.0.
func (op Op20) IsValid() bool {
	return op <= maxOp20
}

func (op Op20) info() opInfo {
	if !op.IsValid() {
		return opInfo{}
	}
	return op20Info[op]
}

// Version returns [Version20].
func (op Op20) Version() Version { return Version20 }

// Number returns the opcode's numeric value.
func (op Op20) Number() uint8 { return uint8(op) }

// Name returns the opcode's mnemonic, like "KSTR".
func (op Op20) Name() string { return op.info().name }

// Format returns the operand layout of instructions using the opcode.
func (op Op20) Format() Format { return op.info().format }

// OperandTypes returns the types of the A, B, and C/D operands.
// Unused slots are [OperandNone].
func (op Op20) OperandTypes() [3]OperandType { return op.info().operandTypes() }

func (op Op20) String() string {
	if !op.IsValid() {
		return fmt.Sprintf("Op20(%d)", uint8(op))
	}
	return op.info().name
}

func (op Op20) isOpCode() {}
