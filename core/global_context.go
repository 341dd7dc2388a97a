package core

import (
	"sort"
	"sync"
)

// GlobalContext 汇总一次命令行调用中所有文件的翻译结果。
// 各文件的运行互相独立，只有这份汇总在 goroutine 间共享。
type GlobalContext struct {
	RunID        string
	fileContexts map[string]*FileContext
	closers      []func()
	mutex        sync.RWMutex
}

func NewGlobalContext(runID string) *GlobalContext {
	return &GlobalContext{
		RunID:        runID,
		fileContexts: make(map[string]*FileContext),
	}
}

// RegisterFileContext 登记一个已完成的文件运行
func (gc *GlobalContext) RegisterFileContext(fc *FileContext) {
	gc.mutex.Lock()
	defer gc.mutex.Unlock()
	gc.fileContexts[fc.FilePath] = fc
}

func (gc *GlobalContext) FindByFilePath(path string) (*FileContext, bool) {
	gc.mutex.RLock()
	defer gc.mutex.RUnlock()
	fc, ok := gc.fileContexts[path]
	return fc, ok
}

// Files 按路径排序返回所有文件运行
func (gc *GlobalContext) Files() []*FileContext {
	gc.mutex.RLock()
	defer gc.mutex.RUnlock()

	result := make([]*FileContext, 0, len(gc.fileContexts))
	for _, fc := range gc.fileContexts {
		result = append(result, fc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FilePath < result[j].FilePath })
	return result
}

// Stats 汇总所有文件的注册表规模
func (gc *GlobalContext) Stats() Stats {
	var total Stats
	for _, fc := range gc.Files() {
		s := fc.Factory.Stats()
		total.Modules += s.Modules
		total.Declarations += s.Declarations
		total.Functions += s.Functions
	}
	return total
}

// AddCloser 登记在导出完成后才能释放的资源（语法树、解析器）
func (gc *GlobalContext) AddCloser(fn func()) {
	gc.mutex.Lock()
	defer gc.mutex.Unlock()
	gc.closers = append(gc.closers, fn)
}

// Close 释放所有登记的资源，之后不可再访问各文件的语法节点
func (gc *GlobalContext) Close() {
	gc.mutex.Lock()
	defer gc.mutex.Unlock()
	for _, fn := range gc.closers {
		fn()
	}
	gc.closers = nil
}
