// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package litmus parses the small textual test format this module's
// reference CLI reads: thread blocks of one instruction per line,
// an initial-state section, and an observation clause. It is a thin
// wrapper around isa.Insn/litmuscore.Test construction, not part of
// the enumerator core itself (spec §1 lists parsers as an external
// collaborator).
package litmus

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"code.hybscloud.com/litmuscore"
	"code.hybscloud.com/litmuscore/isa"
)

// Parse reads a litmus test from src. The format:
//
//	test <name>
//	initial: x=0, y=0
//	observed: x, y
//	thread 0:
//	L: mov r1, 1
//	   store x, r1
//	   bz r1, L
//	thread 1:
//	   load r2, x
//
// Labels are optional per line, separated from the instruction by ":".
// Recognized opcodes: mov, load, store, bz, jmp, fence, xchg.
func Parse(src string) (litmuscore.Test, error) {
	test := litmuscore.Test{
		Program: map[string]litmuscore.CodeBlock{},
		Initial: litmuscore.InitialState{Globals: map[string]int64{}, Registers: map[int]map[string]int64{}},
	}

	var curThread int
	var curLabel string
	var curInstrs []litmuscore.Instruction
	addr := 0
	inThread := false

	flush := func() {
		if !inThread {
			return
		}
		label := curLabel
		if label == "" {
			label = threadLabel(curThread)
		}
		block := litmuscore.CodeBlock{Label: label, Instructions: curInstrs}
		test.Program[label] = block
		test.StartPoints = append(test.StartPoints, litmuscore.StartPoint{Thread: curThread, Entry: block})
	}

	scanner := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "test "):
			test.Name = strings.TrimSpace(strings.TrimPrefix(line, "test "))

		case strings.HasPrefix(line, "initial:"):
			if err := parseAssignments(strings.TrimPrefix(line, "initial:"), test.Initial.Globals); err != nil {
				return litmuscore.Test{}, fmt.Errorf("litmus: line %d: %w", lineNo, err)
			}

		case strings.HasPrefix(line, "observed:"):
			for _, name := range strings.Split(strings.TrimPrefix(line, "observed:"), ",") {
				name = strings.TrimSpace(name)
				if name != "" {
					test.Observed = append(test.Observed, name)
				}
			}

		case strings.HasPrefix(line, "thread "):
			flush()
			n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(line, "thread ")), ":"))
			if err != nil {
				return litmuscore.Test{}, fmt.Errorf("litmus: line %d: bad thread header: %w", lineNo, err)
			}
			curThread = n
			curLabel = ""
			curInstrs = nil
			addr = 0
			inThread = true

		default:
			if !inThread {
				return litmuscore.Test{}, fmt.Errorf("litmus: line %d: instruction outside thread block", lineNo)
			}
			label, body := splitLabel(line)
			if label != "" && len(curInstrs) == 0 {
				curLabel = label
			}
			insn, err := parseInsn(body)
			if err != nil {
				return litmuscore.Test{}, fmt.Errorf("litmus: line %d: %w", lineNo, err)
			}
			var labels []string
			if label != "" {
				labels = []string{label}
			}
			curInstrs = append(curInstrs, litmuscore.Instruction{Addr: addr, Op: insn, Labels: labels})
			addr++
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return litmuscore.Test{}, fmt.Errorf("litmus: %w", err)
	}
	return test, nil
}

func threadLabel(thread int) string { return "t" + strconv.Itoa(thread) }

func splitLabel(line string) (label, body string) {
	if idx := strings.Index(line, ":"); idx >= 0 {
		candidate := strings.TrimSpace(line[:idx])
		if candidate != "" && !strings.ContainsAny(candidate, " \t") {
			return candidate, strings.TrimSpace(line[idx+1:])
		}
	}
	return "", line
}

func parseAssignments(s string, into map[string]int64) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return fmt.Errorf("bad assignment %q", part)
		}
		v, err := strconv.ParseInt(strings.TrimSpace(kv[1]), 10, 64)
		if err != nil {
			return fmt.Errorf("bad value in %q: %w", part, err)
		}
		into[strings.TrimSpace(kv[0])] = v
	}
	return nil
}

func parseInsn(body string) (isa.Insn, error) {
	fields := strings.Fields(strings.ReplaceAll(body, ",", " "))
	if len(fields) == 0 {
		return isa.Insn{}, fmt.Errorf("empty instruction")
	}
	op := strings.ToLower(fields[0])
	args := fields[1:]

	switch op {
	case "mov":
		if len(args) != 2 {
			return isa.Insn{}, fmt.Errorf("mov wants reg, imm")
		}
		imm, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return isa.Insn{}, err
		}
		return isa.Insn{Op: isa.Mov, Reg: args[0], Imm: imm}, nil

	case "load":
		if len(args) != 2 {
			return isa.Insn{}, fmt.Errorf("load wants reg, loc")
		}
		return isa.Insn{Op: isa.Load, Reg: args[0], Loc: args[1]}, nil

	case "store":
		if len(args) != 2 {
			return isa.Insn{}, fmt.Errorf("store wants loc, reg-or-imm")
		}
		if imm, err := strconv.ParseInt(args[1], 10, 64); err == nil {
			return isa.Insn{Op: isa.Store, Loc: args[0], Imm: imm}, nil
		}
		return isa.Insn{Op: isa.Store, Loc: args[0], Reg: args[1]}, nil

	case "bz":
		if len(args) != 2 {
			return isa.Insn{}, fmt.Errorf("bz wants reg, target")
		}
		return isa.Insn{Op: isa.Bz, Reg: args[0], Target: args[1]}, nil

	case "jmp":
		if len(args) != 1 {
			return isa.Insn{}, fmt.Errorf("jmp wants target")
		}
		return isa.Insn{Op: isa.Jmp, Target: args[0]}, nil

	case "fence":
		return isa.Insn{Op: isa.Fence}, nil

	case "xchg":
		if len(args) != 3 {
			return isa.Insn{}, fmt.Errorf("xchg wants reg, loc, imm")
		}
		imm, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return isa.Insn{}, err
		}
		return isa.Insn{Op: isa.Xchg, Reg: args[0], Loc: args[1], Imm: imm}, nil

	default:
		return isa.Insn{}, fmt.Errorf("unknown opcode %q", op)
	}
}
