// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
)

// CodeSectionMeta describes the type-section entry for one code section:
// how many stack inputs/outputs it expects and the maximum stack height it
// can reach. The driver itself never checks these (that's the analysis
// pass's job, assumed to have already run); they are carried through for
// callers (e.g. a CALLF handler in the caller-supplied instruction table)
// that do need them.
type CodeSectionMeta struct {
	Inputs         uint8
	Outputs        uint8
	MaxStackHeight uint16
}

// Container is a parsed EOF (section-format) bytecode body: one or more
// code sections plus an optional data section, each reachable by index.
// This is deliberately a structural parse only -- the full EOF validator
// (stack-height simulation, jump-destination checks, unreachable-code
// detection, the cases enumerated in go-ethereum's eof_validation_test.go)
// is an analysis pass scoped out of this driver.
type Container struct {
	Types        []CodeSectionMeta
	CodeSections [][]byte
	Data         []byte
}

// Code returns code section idx, or false if idx is out of range.
func (c *Container) Code(idx int) ([]byte, bool) {
	if idx < 0 || idx >= len(c.CodeSections) {
		return nil, false
	}
	return c.CodeSections[idx], true
}

// IsEOF reports whether b begins with the EOF magic (0xEF00).
func IsEOF(b []byte) bool {
	return len(b) >= 2 && b[0] == eofMagic0 && b[1] == eofMagic1
}

// ParseContainer structurally decodes an EOF1 container: magic, version, a
// type section (4 bytes per code section: inputs, outputs, max-stack-height
// big-endian uint16), one or more code sections, and an optional data
// section, terminated by a 0x00 header byte followed by the concatenated
// section bodies. The wire layout is grounded on go-ethereum's
// eof_test.go fixtures (magic/version/kind bytes) extended with the type
// section the function-stack module requires.
func ParseContainer(b []byte) (*Container, error) {
	if !IsEOF(b) {
		return nil, fmt.Errorf("%w: missing EOF magic", ErrInvalidCodeSection)
	}
	if len(b) < 3 || b[2] != eofVersion1 {
		return nil, fmt.Errorf("%w: unsupported EOF version", ErrInvalidCodeSection)
	}
	p := 3

	readKind := func() (byte, error) {
		if p >= len(b) {
			return 0, fmt.Errorf("%w: truncated header", ErrInvalidCodeSection)
		}
		k := b[p]
		p++
		return k, nil
	}
	readU16 := func() (uint16, error) {
		if p+2 > len(b) {
			return 0, fmt.Errorf("%w: truncated header", ErrInvalidCodeSection)
		}
		v := binary.BigEndian.Uint16(b[p : p+2])
		p += 2
		return v, nil
	}

	kind, err := readKind()
	if err != nil {
		return nil, err
	}
	if kind != eofSectionKindType {
		return nil, fmt.Errorf("%w: expected type section", ErrInvalidCodeSection)
	}
	typeSize, err := readU16()
	if err != nil {
		return nil, err
	}
	if typeSize%4 != 0 || typeSize == 0 {
		return nil, fmt.Errorf("%w: invalid type section size", ErrInvalidCodeSection)
	}
	numSections := int(typeSize / 4)

	kind, err = readKind()
	if err != nil {
		return nil, err
	}
	if kind != eofSectionKindCode {
		return nil, fmt.Errorf("%w: expected code section header", ErrInvalidCodeSection)
	}
	codeSizes := make([]uint16, numSections)
	for i := range codeSizes {
		sz, err := readU16()
		if err != nil {
			return nil, err
		}
		if sz == 0 {
			return nil, fmt.Errorf("%w: empty code section", ErrInvalidCodeSection)
		}
		codeSizes[i] = sz
	}

	var dataSize uint16
	if p < len(b) && b[p] == eofSectionKindData {
		p++
		dataSize, err = readU16()
		if err != nil {
			return nil, err
		}
	}

	k, err := readKind()
	if err != nil {
		return nil, err
	}
	if k != eofSectionTerm {
		return nil, fmt.Errorf("%w: missing section terminator", ErrInvalidCodeSection)
	}

	// Type section body.
	if p+int(typeSize) > len(b) {
		return nil, fmt.Errorf("%w: truncated type section body", ErrInvalidCodeSection)
	}
	types := make([]CodeSectionMeta, numSections)
	for i := 0; i < numSections; i++ {
		off := p + i*4
		types[i] = CodeSectionMeta{
			Inputs:         b[off],
			Outputs:        b[off+1],
			MaxStackHeight: binary.BigEndian.Uint16(b[off+2 : off+4]),
		}
	}
	p += int(typeSize)

	// Code section bodies.
	codeSections := make([][]byte, numSections)
	for i, sz := range codeSizes {
		if p+int(sz) > len(b) {
			return nil, fmt.Errorf("%w: truncated code section body", ErrInvalidCodeSection)
		}
		codeSections[i] = b[p : p+int(sz)]
		p += int(sz)
	}

	// Data section body (may be shorter than declared for a still-deploying
	// container; go-ethereum's eof_test.go does not exercise that case here
	// so we require the full declared length, matching runtime contracts).
	if p+int(dataSize) > len(b) {
		return nil, fmt.Errorf("%w: truncated data section body", ErrInvalidCodeSection)
	}
	data := b[p : p+int(dataSize)]

	return &Container{Types: types, CodeSections: codeSections, Data: data}, nil
}

// containerCache memoizes ParseContainer results keyed by code hash, the way
// go-ethereum's Contract caches jump-destination analysis per code hash
// (contract_test.go: Contract.jumpdests map[common.Hash]bitvec) and the way
// Tosca caches jump-destination analysis with golang-lru. 1024 entries is
// generous for a single process running many contracts with repeated code.
var containerCache = newContainerCache(1024)

// containerCacheT wraps *lru.Cache, which is already safe for concurrent
// use; the driver itself is strictly single-threaded, but the
// cache is process-global and may back several drivers at once.
type containerCacheT struct {
	lru *lru.Cache
}

func newContainerCache(size int) *containerCacheT {
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return &containerCacheT{lru: c}
}

func (c *containerCacheT) get(hash common.Hash) (*Container, bool) {
	v, ok := c.lru.Get(hash)
	if !ok {
		return nil, false
	}
	return v.(*Container), true
}

func (c *containerCacheT) add(hash common.Hash, container *Container) {
	c.lru.Add(hash, container)
}

// parseContainerCached parses b, consulting/populating containerCache by
// codeHash.
func parseContainerCached(codeHash common.Hash, b []byte) (*Container, error) {
	if codeHash != (common.Hash{}) {
		if c, ok := containerCache.get(codeHash); ok {
			return c, nil
		}
	}
	c, err := ParseContainer(b)
	if err != nil {
		return nil, err
	}
	if codeHash != (common.Hash{}) {
		containerCache.add(codeHash, c)
	}
	return c, nil
}
