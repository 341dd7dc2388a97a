package core_test

import (
	"testing"

	"github.com/CodMac/dts-flow/core"
	"github.com/stretchr/testify/assert"
)

func TestFormatSymbolPath(t *testing.T) {
	module := &core.Symbol{Name: "m", Kind: core.SymbolModule}
	ns := &core.Symbol{Name: "N", Kind: core.SymbolNamespace, Parent: module}
	foo := &core.Symbol{Name: "Foo", Kind: core.SymbolValue, Parent: ns}
	def := &core.Symbol{Name: "Bar", Kind: core.SymbolValue, IsDefault: true}

	assert.Equal(t, `"m".N.Foo`, core.FormatSymbolPath(foo, "Foo", false))
	assert.Equal(t, "fallback", core.FormatSymbolPath(nil, "fallback", false))
	assert.Equal(t, "Bar", core.FormatSymbolPath(def, "Bar", false))
	assert.Equal(t, "default", core.FormatSymbolPath(def, "Bar", true))
}
