// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/lassandro/gohack/pkg/assembler"
)

type testCase struct {
	Name     string
	Input    string
	Output   []string
	SymTable *assembler.SymTable
}

type failCase struct {
	Name  string
	Input string
	Error error
}

func testAssemblerSuccess(t *testing.T, test *testCase) {
	var symtarget *assembler.SymTable = nil

	if test.SymTable != nil {
		symtarget = assembler.NewSymTable("")
	}

	result, err := assembler.AssembleHackSource(
		strings.NewReader(test.Input), symtarget,
	)

	if err != nil {
		t.Fatal(err)
	}

	if len(result) != len(test.Output) {
		t.Fatalf(
			"Invalid program length\n"+
				"want:%d\n"+
				"have:%d",
			len(test.Output),
			len(result),
		)
	}

	for addr, want := range test.Output {
		if have := result[addr]; have != want {
			t.Fatalf(
				"Instruction encoding mismatch\n"+
					"want:%s (test.Output[%d])\n"+
					"have:%s",
				want,
				addr,
				have,
			)
		}
	}

	if test.SymTable != nil {
		if !reflect.DeepEqual(symtarget.Symbols, test.SymTable.Symbols) {
			t.Fatalf(
				"Symtable symbols mismatch\n"+
					"want:%v\n"+
					"have:%v",
				test.SymTable.Symbols,
				symtarget.Symbols,
			)
		}

		if !reflect.DeepEqual(symtarget.Labels, test.SymTable.Labels) {
			t.Fatalf(
				"Symtable labels mismatch\n"+
					"want:%v\n"+
					"have:%v",
				test.SymTable.Labels,
				symtarget.Labels,
			)
		}

		if !reflect.DeepEqual(symtarget.Variables, test.SymTable.Variables) {
			t.Fatalf(
				"Symtable variables mismatch\n"+
					"want:%v\n"+
					"have:%v",
				test.SymTable.Variables,
				symtarget.Variables,
			)
		}
	}
}

func testAssemblerFailure(t *testing.T, test *failCase) {
	result, err := assembler.AssembleHackSource(
		strings.NewReader(test.Input), nil,
	)

	if err == nil {
		t.Fatalf("Expected error\nwant:%v\nhave:nil", test.Error)
	}

	if result != nil {
		t.Fatalf("Expected no output on failure\nhave:%v", result)
	}

	var merr *multierror.Error

	if !errors.As(err, &merr) || len(merr.Errors) == 0 {
		t.Fatalf("Expected aggregated errors\nhave:%T", err)
	}

	if have := merr.Errors[0]; !reflect.DeepEqual(have, test.Error) {
		t.Fatalf(
			"Error mismatch\n"+
				"want:%#v\n"+
				"have:%#v",
			test.Error,
			have,
		)
	}
}

func TestAssembleAddress(t *testing.T) {
	tests := []testCase{
		{
			Name:   "Literal",
			Input:  "@2",
			Output: []string{"0000000000000010"},
		},
		{
			Name:   "LiteralZero",
			Input:  "@0",
			Output: []string{"0000000000000000"},
		},
		{
			Name:   "LiteralMax",
			Input:  "@32767",
			Output: []string{"0111111111111111"},
		},
		{
			Name:  "Reserved",
			Input: "@SP\n@LCL\n@ARG\n@THIS\n@THAT\n@R15\n@SCREEN\n@KBD",
			Output: []string{
				"0000000000000000",
				"0000000000000001",
				"0000000000000010",
				"0000000000000011",
				"0000000000000100",
				"0000000000001111",
				"0100000000000000",
				"0110000000000000",
			},
		},
		{
			Name:  "Variables",
			Input: "@foo\n@bar\n@foo",
			Output: []string{
				"0000000000010000",
				"0000000000010001",
				"0000000000010000",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			testAssemblerSuccess(t, &test)
		})
	}
}

func TestAssembleCompute(t *testing.T) {
	tests := []testCase{
		{
			Name:   "DestComp",
			Input:  "D=A",
			Output: []string{"1110110000010000"},
		},
		{
			Name:   "CompJump",
			Input:  "0;JMP",
			Output: []string{"1110101010000111"},
		},
		{
			Name:   "DestCompJump",
			Input:  "AMD=M+1;JLE",
			Output: []string{"1111110111111110"},
		},
		{
			Name:   "CompOnly",
			Input:  "D|M",
			Output: []string{"1111010101000000"},
		},
		{
			Name:   "Negation",
			Input:  "M=-1",
			Output: []string{"1110111010001000"},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			testAssemblerSuccess(t, &test)
		})
	}
}

func TestAssembleProgram(t *testing.T) {
	tests := []testCase{
		{
			Name:  "Add",
			Input: "@2\nD=A\n@3\nD=D+A\n@0\nM=D\n",
			Output: []string{
				"0000000000000010",
				"1110110000010000",
				"0000000000000011",
				"1110000010010000",
				"0000000000000000",
				"1110001100001000",
			},
		},
		{
			Name:  "Loop",
			Input: "(LOOP)\n@LOOP\n0;JMP\n",
			Output: []string{
				"0000000000000000",
				"1110101010000111",
			},
		},
		{
			Name: "Max",
			Input: "// Computes R2 = max(R0, R1)\n" +
				"   @R0\n" +
				"   D=M              // D = first number\n" +
				"   @R1\n" +
				"   D=D-M            // D = first number - second number\n" +
				"   @OUTPUT_FIRST\n" +
				"   D;JGT            // if D>0 (first is greater) goto output_first\n" +
				"   @R1\n" +
				"   D=M              // D = second number\n" +
				"   @OUTPUT_D\n" +
				"   0;JMP            // goto output_d\n" +
				"(OUTPUT_FIRST)\n" +
				"   @R0\n" +
				"   D=M              // D = first number\n" +
				"(OUTPUT_D)\n" +
				"   @R2\n" +
				"   M=D              // M[2] = D (greatest number)\n" +
				"(INFINITE_LOOP)\n" +
				"   @INFINITE_LOOP\n" +
				"   0;JMP            // infinite loop\n",
			Output: []string{
				"0000000000000000",
				"1111110000010000",
				"0000000000000001",
				"1111010011010000",
				"0000000000001010",
				"1110001100000001",
				"0000000000000001",
				"1111110000010000",
				"0000000000001100",
				"1110101010000111",
				"0000000000000000",
				"1111110000010000",
				"0000000000000010",
				"1110001100001000",
				"0000000000001110",
				"1110101010000111",
			},
		},
		{
			Name:  "ForwardReference",
			Input: "@END\n0;JMP\n@i\nM=1\n(END)\n@END\n0;JMP",
			Output: []string{
				"0000000000000100",
				"1110101010000111",
				"0000000000010000",
				"1110111111001000",
				"0000000000000100",
				"1110101010000111",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			testAssemblerSuccess(t, &test)
		})
	}
}

func TestAssembleSymTable(t *testing.T) {
	test := testCase{
		Name:  "Debug",
		Input: "@i\nM=0\n(LOOP)\n@i\nM=M+1\n@LOOP\n0;JMP",
		Output: []string{
			"0000000000010000",
			"1110101010001000",
			"0000000000010000",
			"1111110111001000",
			"0000000000000010",
			"1110101010000111",
		},
		SymTable: &assembler.SymTable{
			Symbols: map[uint16]int64{
				0: 0,
				1: 3,
				2: 14,
				3: 17,
				4: 23,
				5: 29,
			},
			Labels:    map[uint16]string{2: "LOOP"},
			Variables: map[string]uint16{"i": 16},
		},
	}

	testAssemblerSuccess(t, &test)
}

func TestAssembleFailure(t *testing.T) {
	tests := []failCase{
		{
			Name:  "Malformed",
			Input: "XYZ",
			Error: &assembler.MalformedInstructionError{
				assembler.Cursor{Line: 1, LineByte: 0},
				"XYZ",
			},
		},
		{
			Name:  "MalformedOnLaterLine",
			Input: "@1\nD=A\nD=*A",
			Error: &assembler.MalformedInstructionError{
				assembler.Cursor{Line: 3, LineByte: 7},
				"D=*A",
			},
		},
		{
			Name:  "EmptyAddress",
			Input: "@",
			Error: &assembler.MalformedInstructionError{
				assembler.Cursor{Line: 1, LineByte: 0},
				"@",
			},
		},
		{
			Name:  "UnclosedLabel",
			Input: "(LOOP\n@LOOP",
			Error: &assembler.MalformedInstructionError{
				assembler.Cursor{Line: 1, LineByte: 0},
				"(LOOP",
			},
		},
		{
			Name:  "UnknownComputation",
			Input: "D=A+A",
			Error: &assembler.UnknownComputationError{
				assembler.Cursor{Line: 1, LineByte: 0},
				"D=A+A",
				"A+A",
			},
		},
		{
			Name:  "UnknownDestination",
			Input: "X=A",
			Error: &assembler.UnknownDestinationError{
				assembler.Cursor{Line: 1, LineByte: 0},
				"X=A",
				"X",
			},
		},
		{
			Name:  "UnknownJump",
			Input: "0;JMX",
			Error: &assembler.UnknownJumpError{
				assembler.Cursor{Line: 1, LineByte: 0},
				"0;JMX",
				"JMX",
			},
		},
		{
			Name:  "OversizedLiteral",
			Input: "@32768",
			Error: &assembler.RangeError{
				assembler.Cursor{Line: 1, LineByte: 0},
				"@32768",
				32767,
				"32768",
			},
		},
		{
			Name:  "RedeclaredLabel",
			Input: "(A)\n@1\n(A)",
			Error: &assembler.RedeclaredLabelError{
				assembler.Cursor{Line: 3, LineByte: 7},
				"A",
				0,
			},
		},
		{
			Name:  "ReservedLabelFirst",
			Input: "(SP)\n@1",
			Error: &assembler.RedeclaredLabelError{
				assembler.Cursor{Line: 1, LineByte: 0},
				"SP",
				0,
			},
		},
		{
			Name:  "SignedOperand",
			Input: "@-1",
			Error: &assembler.MalformedInstructionError{
				assembler.Cursor{Line: 1, LineByte: 0},
				"@-1",
			},
		},
		{
			Name:  "ReservedLabel",
			Input: "@1\n(SCREEN)",
			Error: &assembler.RedeclaredLabelError{
				assembler.Cursor{Line: 2, LineByte: 3},
				"SCREEN",
				16384,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			testAssemblerFailure(t, &test)
		})
	}
}

func TestAssembleReportsEveryError(t *testing.T) {
	_, err := assembler.AssembleHackSource(
		strings.NewReader("@1\nXYZ\nD=A\n0;JXX\n@99999"), nil,
	)

	var merr *multierror.Error

	if !errors.As(err, &merr) {
		t.Fatalf("Expected aggregated errors\nhave:%v", err)
	}

	if count := len(merr.Errors); count != 3 {
		t.Fatalf("Error count mismatch\nwant:3\nhave:%d", count)
	}

	for i, want := range []int{2, 4, 5} {
		positioned, ok := merr.Errors[i].(assembler.InstructionError)

		if !ok {
			t.Fatalf("Error %d carries no position: %v", i, merr.Errors[i])
		}

		if have := positioned.GetPosition().Line; have != want {
			t.Fatalf("Error line mismatch\nwant:%d\nhave:%d", want, have)
		}
	}
}

func TestAssembleFailureLeavesSymTable(t *testing.T) {
	symtable := assembler.NewSymTable("broken.asm")

	_, err := assembler.AssembleHackSource(
		strings.NewReader("(LOOP)\n@i\nM=1\n@LOOP\n0;JXX\n"), symtable,
	)

	if err == nil {
		t.Fatalf("Expected error")
	}

	if len(symtable.Symbols) != 0 {
		t.Fatalf("Symbols filled on failure\nhave:%v", symtable.Symbols)
	}

	if len(symtable.Labels) != 0 {
		t.Fatalf("Labels filled on failure\nhave:%v", symtable.Labels)
	}

	if len(symtable.Variables) != 0 {
		t.Fatalf("Variables filled on failure\nhave:%v", symtable.Variables)
	}
}
