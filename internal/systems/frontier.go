package systems

import (
	"container/heap"

	"tactics-core/internal/domain"
)

// frontierItem is a tile waiting for expansion together with the cost it was reached at.
type frontierItem struct {
	Pos   domain.Position
	Cost  int
	Index int // position in the heap
}

// frontier is a min-heap on Cost implementing heap.Interface.
// Entries are never updated in place: a cheaper route pushes a new item and the
// stale one is skipped when popped.
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	return f[i].Cost < f[j].Cost
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].Index = i
	f[j].Index = j
}

func (f *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.Index = len(*f)
	*f = append(*f, item)
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // avoid holding on to popped items
	item.Index = -1
	*f = old[:n-1]
	return item
}

func (f *frontier) push(p domain.Position, cost int) {
	heap.Push(f, &frontierItem{Pos: p, Cost: cost})
}

func (f *frontier) pop() *frontierItem {
	return heap.Pop(f).(*frontierItem)
}
