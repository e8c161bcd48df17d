// Copyright 2024 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// Command runvm is a small standalone driver for the two-engine execution
// core, in the spirit of go-ethereum's cmd/evm: a single binary with a
// subcommand per tool (run a snippet of code, or just inspect an EOF
// container), rather than a full node.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/ethdual/evmcore/core/vm"
	"github.com/ethdual/evmcore/core/vm/runtime"
)

var (
	codeFlag = &cli.StringFlag{
		Name:     "code",
		Usage:    "hex-encoded contract bytecode to execute",
		Required: true,
	}
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "hex-encoded calldata",
	}
	gasFlag = &cli.Uint64Flag{
		Name:  "gas",
		Usage: "gas limit for the run",
		Value: 10_000_000,
	}
	valueFlag = &cli.Uint64Flag{
		Name:  "value",
		Usage: "call value",
		Value: 0,
	}
	dumpFlag = &cli.BoolFlag{
		Name:  "dump",
		Usage: "print a note on inspecting storage (storage writes are not listed)",
	}
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "execute a bytecode snippet through the interpreter and print its output (no stack-VM handlers are installed, so only 0xFF-prefixed RISC-V images run to completion)",
	ArgsUsage: " ",
	Flags:     []cli.Flag{codeFlag, inputFlag, gasFlag, valueFlag, dumpFlag},
	Action:    runAction,
}

var eofParseCommand = &cli.Command{
	Name:      "eofparse",
	Usage:     "parse an EOF container and print its section layout",
	ArgsUsage: " ",
	Flags:     []cli.Flag{codeFlag},
	Action:    eofParseAction,
}

func main() {
	app := &cli.App{
		Name:  "runvm",
		Usage: "standalone driver for the dual-engine execution core",
		Commands: []*cli.Command{
			runCommand,
			eofParseCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func decodeHexFlag(ctx *cli.Context, name string) ([]byte, error) {
	s := strings.TrimPrefix(ctx.String(name), "0x")
	return hex.DecodeString(s)
}

func runAction(ctx *cli.Context) error {
	code, err := decodeHexFlag(ctx, codeFlag.Name)
	if err != nil {
		return fmt.Errorf("decoding --code: %w", err)
	}
	input, err := decodeHexFlag(ctx, inputFlag.Name)
	if err != nil {
		return fmt.Errorf("decoding --input: %w", err)
	}
	value := uint256.NewInt(ctx.Uint64(valueFlag.Name))

	storage := runtime.NewStorageHost()
	out, gasLeft, err := runtime.Execute(code, &runtime.Config{
		Origin:     common.Address{},
		TargetAddr: common.Address{1},
		GasLimit:   ctx.Uint64(gasFlag.Name),
		Value:      value,
		Input:      input,
		Storage:    storage,
	})
	if err != nil {
		return err
	}

	fmt.Printf("output:   0x%x\n", out)
	fmt.Printf("gas left: %d\n", gasLeft)
	if ctx.Bool(dumpFlag.Name) {
		fmt.Println("note: storage dump requires a known set of slots; inspect storage via the runtime.StorageHost returned to an embedding caller")
	}
	return nil
}

func eofParseAction(ctx *cli.Context) error {
	code, err := decodeHexFlag(ctx, codeFlag.Name)
	if err != nil {
		return fmt.Errorf("decoding --code: %w", err)
	}
	if !vm.IsEOF(code) {
		return fmt.Errorf("input is not an EOF container (missing magic bytes)")
	}
	container, err := vm.ParseContainer(code)
	if err != nil {
		return fmt.Errorf("parsing container: %w", err)
	}
	fmt.Printf("code sections: %d\n", len(container.CodeSections))
	for i, sec := range container.CodeSections {
		meta := container.Types[i]
		fmt.Printf("  section %d: %d bytes, inputs=%d outputs=%d maxStackHeight=%d\n",
			i, len(sec), meta.Inputs, meta.Outputs, meta.MaxStackHeight)
	}
	fmt.Printf("data section: %d bytes\n", len(container.Data))
	return nil
}
