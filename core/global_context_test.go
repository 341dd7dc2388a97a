package core_test

import (
	"sync"
	"testing"

	"github.com/CodMac/dts-flow/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalContext_RegisterFileContext(t *testing.T) {
	gc := core.NewGlobalContext("run-1")

	var wg sync.WaitGroup
	for _, path := range []string{"b.d.ts", "a.d.ts", "c.d.ts"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f := core.NewFactory(nil, nil)
			f.GetOrCreateModule(path)
			gc.RegisterFileContext(core.NewFileContext(path, nil, nil, f))
		}()
	}
	wg.Wait()

	files := gc.Files()
	require.Len(t, files, 3)
	assert.Equal(t, "a.d.ts", files[0].FilePath)
	assert.Equal(t, "c.d.ts", files[2].FilePath)
	assert.Equal(t, 3, gc.Stats().Modules)

	fc, ok := gc.FindByFilePath("b.d.ts")
	require.True(t, ok)
	assert.Equal(t, "b.d.ts", fc.Output.Name())

	closed := 0
	gc.AddCloser(func() { closed++ })
	gc.Close()
	gc.Close()
	assert.Equal(t, 1, closed)
}

func TestRegistries_Unregistered(t *testing.T) {
	_, err := core.GetWalker("cobol")
	assert.EqualError(t, err, "no walker registered for language: cobol")

	_, err = core.GetMemberExtractor("cobol", nil)
	assert.Error(t, err)

	_, err = core.NewSession("cobol", nil, nil)
	assert.Error(t, err)
}
