package transform

import (
	"fmt"
	"math/big"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

func litInt(v int64) *ast.LitInt { return &ast.LitInt{Value: big.NewInt(v)} }

func mustNewIdent(name string) ident.Ident { return ident.New(name) }

func ordinalField(i int) string { return fmt.Sprintf("r%d", i) }
