package mir

import (
	"github.com/jlang-gyoji/gyoji/lang/token"
	"github.com/jlang-gyoji/gyoji/lang/typegraph"
)

// Param is one function parameter's name and type.
type Param struct {
	Name string
	Type *typegraph.Type
}

// Function is one lowered function: its signature, every basic block
// allocated for it (including blocks unreachable from Entry), and the
// type of each temporary it defines
// (spec §3 "MIR Function").
type Function struct {
	Name    string
	Return  *typegraph.Type
	Params  []Param
	Blocks  map[BlockID]*BasicBlock
	Entry   BlockID
	TmpVars map[TmpID]*typegraph.Type
	Src     token.SourceRef

	nextBlock BlockID
	nextTmp   TmpID
}

// NewFunction returns an empty Function ready to receive blocks via
// NewBlock and temporaries via NewTmp.
func NewFunction(name string, ret *typegraph.Type, params []Param, src token.SourceRef) *Function {
	return &Function{
		Name:    name,
		Return:  ret,
		Params:  params,
		Blocks:  make(map[BlockID]*BasicBlock),
		TmpVars: make(map[TmpID]*typegraph.Type),
		Src:     src,
	}
}

// NewBlock allocates and registers a fresh, empty BasicBlock.
func (f *Function) NewBlock(src token.SourceRef) *BasicBlock {
	id := f.nextBlock
	f.nextBlock++
	b := &BasicBlock{ID: id, Src: src}
	f.Blocks[id] = b
	return b
}

// NewTmp allocates a fresh temporary of type t.
func (f *Function) NewTmp(t *typegraph.Type) TmpID {
	id := f.nextTmp
	f.nextTmp++
	f.TmpVars[id] = t
	return id
}

// Validate checks every block's BasicBlock invariant and that Entry
// names a block that exists.
func (f *Function) Validate() bool {
	if _, ok := f.Blocks[f.Entry]; !ok {
		return false
	}
	for _, b := range f.Blocks {
		if !b.Validate() {
			return false
		}
	}
	return true
}
